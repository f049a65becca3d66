package tui

import (
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/rajshekhar/folio/internal/tui/components"
)

// Palette holds the colour tokens for one mode.
type Palette struct {
	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Success    lipgloss.Color
	Danger     lipgloss.Color
	Warning    lipgloss.Color
}

var (
	darkPalette = Palette{
		Background: lipgloss.Color("#0f172a"),
		Surface:    lipgloss.Color("#1e293b"),
		Border:     lipgloss.Color("#334155"),
		Text:       lipgloss.Color("#f1f5f9"),
		Muted:      lipgloss.Color("#94a3b8"),
		Primary:    lipgloss.Color("#60a5fa"),
		Secondary:  lipgloss.Color("#c084fc"),
		Success:    lipgloss.Color("#4ade80"),
		Danger:     lipgloss.Color("#f87171"),
		Warning:    lipgloss.Color("#facc15"),
	}
	lightPalette = Palette{
		Background: lipgloss.Color("#f8fafc"),
		Surface:    lipgloss.Color("#e2e8f0"),
		Border:     lipgloss.Color("#cbd5e1"),
		Text:       lipgloss.Color("#0f172a"),
		Muted:      lipgloss.Color("#64748b"),
		Primary:    lipgloss.Color("#2563eb"),
		Secondary:  lipgloss.Color("#7c3aed"),
		Success:    lipgloss.Color("#16a34a"),
		Danger:     lipgloss.Color("#dc2626"),
		Warning:    lipgloss.Color("#ca8a04"),
	}
)

// Styles is the full style sheet for one mode.
type Styles struct {
	Dark    bool
	Palette Palette

	App       lipgloss.Style
	Title     lipgloss.Style
	Hero      lipgloss.Style
	Role      lipgloss.Style
	Cursor    lipgloss.Style
	Heading   lipgloss.Style
	Body      lipgloss.Style
	Muted     lipgloss.Style
	Accent    lipgloss.Style
	Link      lipgloss.Style
	Label     lipgloss.Style
	Error     lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Navbar    lipgloss.Style
	Footer    lipgloss.Style
	ScrollTip lipgloss.Style
	Input     lipgloss.Style
	Focused   lipgloss.Style
	Chip      lipgloss.Style
	ChipOn    lipgloss.Style

	ChatBox       lipgloss.Style
	ChatHeader    lipgloss.Style
	UserMsg       lipgloss.Style
	AssistantMsg  lipgloss.Style
	ErrorMsg      lipgloss.Style
	Reaction      lipgloss.Style
	Banner        lipgloss.Style
	BannerHint    lipgloss.Style
	QuickAction   lipgloss.Style
	SplashTitle   lipgloss.Style
	SplashPercent lipgloss.Style

	Card   components.CardStyle
	Toast  components.ToastStyles
	Steps  components.StepStyles
	Button components.ButtonStyles
}

// NewStyles builds the style sheet for dark or light mode.
func NewStyles(dark bool) Styles {
	p := lightPalette
	if dark {
		p = darkPalette
	}

	text := lipgloss.NewStyle().Foreground(p.Text)
	muted := lipgloss.NewStyle().Foreground(p.Muted)
	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)

	s := Styles{
		Dark:    dark,
		Palette: p,

		App:       lipgloss.NewStyle().Background(p.Background).Foreground(p.Text),
		Title:     lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Hero:      lipgloss.NewStyle().Bold(true).Foreground(p.Text).MarginBottom(1),
		Role:      lipgloss.NewStyle().Bold(true).Foreground(p.Secondary),
		Cursor:    lipgloss.NewStyle().Foreground(p.Primary).Blink(true),
		Heading:   lipgloss.NewStyle().Bold(true).Foreground(p.Primary).MarginTop(1).MarginBottom(1),
		Body:      text,
		Muted:     muted,
		Accent:    lipgloss.NewStyle().Foreground(p.Secondary),
		Link:      lipgloss.NewStyle().Foreground(p.Primary).Underline(true),
		Label:     lipgloss.NewStyle().Bold(true).Foreground(p.Text).Width(10),
		Error:     lipgloss.NewStyle().Foreground(p.Danger),
		Tab:       muted.Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().Bold(true).Foreground(p.Background).Background(p.Primary).Padding(0, 1),
		Navbar: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(p.Border),
		Footer: muted.
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(p.Border),
		ScrollTip: lipgloss.NewStyle().Foreground(p.Background).Background(p.Primary).Padding(0, 1),
		Input:     box,
		Focused:   box.BorderForeground(p.Primary),
		Chip:      muted.Padding(0, 1),
		ChipOn:    lipgloss.NewStyle().Foreground(p.Background).Background(p.Secondary).Padding(0, 1),

		ChatBox: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Secondary).
			Padding(0, 1),
		ChatHeader:    lipgloss.NewStyle().Bold(true).Foreground(p.Secondary),
		UserMsg:       lipgloss.NewStyle().Foreground(p.Primary),
		AssistantMsg:  text,
		ErrorMsg:      lipgloss.NewStyle().Foreground(p.Danger),
		Reaction:      lipgloss.NewStyle().Foreground(p.Warning),
		Banner:        lipgloss.NewStyle().Foreground(p.Danger).Bold(true),
		BannerHint:    muted,
		QuickAction:   lipgloss.NewStyle().Foreground(p.Secondary),
		SplashTitle:   lipgloss.NewStyle().Bold(true).Foreground(p.Primary).MarginBottom(1),
		SplashPercent: muted,

		Card: components.CardStyle{
			Border:   box.MarginBottom(1),
			Title:    lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
			Subtitle: lipgloss.NewStyle().Foreground(p.Secondary),
			Body:     text,
			Tag:      lipgloss.NewStyle().Foreground(p.Text).Background(p.Surface).Padding(0, 1),
			Muted:    muted,
			Badge:    lipgloss.NewStyle().Foreground(p.Warning),
			Width:    72,
		},
		Toast: components.ToastStyles{
			Info:    lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
			Success: lipgloss.NewStyle().Foreground(p.Success).Bold(true),
			Error:   lipgloss.NewStyle().Foreground(p.Danger).Bold(true),
		},
		Steps: components.StepStyles{
			Pending:   muted,
			Current:   lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
			Done:      lipgloss.NewStyle().Foreground(p.Success),
			Connector: lipgloss.NewStyle().Foreground(p.Border),
		},
		Button: components.ButtonStyles{
			Normal:   lipgloss.NewStyle().Foreground(p.Primary),
			Focus:    lipgloss.NewStyle().Bold(true).Foreground(p.Background).Background(p.Primary),
			Disabled: muted.Faint(true),
		},
	}
	return s
}

// StyleSheet is the shared, theme-aware style holder. It implements
// theme.Applier so the theme store can swap palettes.
type StyleSheet struct {
	mu     sync.RWMutex
	styles Styles
}

// NewStyleSheet starts in the given mode.
func NewStyleSheet(dark bool) *StyleSheet {
	return &StyleSheet{styles: NewStyles(dark)}
}

// ApplyTheme rebuilds every style for the new mode.
func (s *StyleSheet) ApplyTheme(dark bool) {
	styles := NewStyles(dark)
	s.mu.Lock()
	s.styles = styles
	s.mu.Unlock()
}

// Current returns the active styles.
func (s *StyleSheet) Current() Styles {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.styles
}
