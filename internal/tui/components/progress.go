package components

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// Splash timings: the bar fills over SplashDuration in SplashInterval ticks
// and the screen stays up for SplashHold once full.
const (
	SplashDuration = 2500 * time.Millisecond
	SplashInterval = 40 * time.Millisecond
	SplashHold     = 300 * time.Millisecond
)

// Splash renders the loading screen progress.
type Splash struct {
	bar   progress.Model
	title string
	ticks int
}

// NewSplash creates a splash for title.
func NewSplash(title string) Splash {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 40
	return Splash{bar: bar, title: title}
}

// Tick advances the bar by one interval.
func (s Splash) Tick() Splash {
	if !s.Done() {
		s.ticks++
	}
	return s
}

// Done reports whether the bar is full.
func (s Splash) Done() bool { return s.percent() >= 100 }

// Percent is the whole-number completion shown to the user.
func (s Splash) Percent() int { return int(math.Floor(s.percent())) }

func (s Splash) percent() float64 {
	steps := float64(SplashDuration) / float64(SplashInterval)
	return math.Min(100, float64(s.ticks)*100/steps)
}

// View renders the title, the bar and the percentage.
func (s Splash) View(titleStyle, labelStyle lipgloss.Style) string {
	return lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(s.title),
		"",
		s.bar.ViewAs(s.percent()/100),
		labelStyle.Render(fmt.Sprintf("%d%%", s.Percent())),
	)
}

// Meter renders a horizontal gauge, e.g. a skill proficiency.
func Meter(percent int, width int, fill string) string {
	bar := progress.New(progress.WithSolidFill(fill), progress.WithoutPercentage())
	bar.Width = width
	ratio := math.Max(0, math.Min(1, float64(percent)/100))
	return bar.ViewAs(ratio)
}
