package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CardStyle defines the visual appearance of a Card.
type CardStyle struct {
	Border   lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Tag      lipgloss.Style
	Muted    lipgloss.Style
	Badge    lipgloss.Style
	Width    int
}

// CardData is the content of a card.
type CardData struct {
	Title       string
	Subtitle    string
	Badge       string
	Description string
	Bullets     []string
	Tags        []string
	Footer      []string
}

// Card renders a bordered content block.
type Card struct {
	data  CardData
	style CardStyle
}

// NewCard creates a card.
func NewCard(data CardData, style CardStyle) Card {
	return Card{data: data, style: style}
}

// View renders the card.
func (c Card) View() string {
	inner := c.style.Width - c.style.Border.GetHorizontalFrameSize()
	if inner < 10 {
		inner = 10
	}

	var lines []string
	title := c.style.Title.Render(c.data.Title)
	if c.data.Badge != "" {
		title += " " + c.style.Badge.Render(c.data.Badge)
	}
	lines = append(lines, title)
	if c.data.Subtitle != "" {
		lines = append(lines, c.style.Subtitle.Render(c.data.Subtitle))
	}
	if c.data.Description != "" {
		lines = append(lines, c.style.Body.Width(inner).Render(c.data.Description))
	}
	for _, b := range c.data.Bullets {
		lines = append(lines, c.style.Body.Width(inner).Render("• "+b))
	}
	if len(c.data.Tags) > 0 {
		tags := make([]string, 0, len(c.data.Tags))
		for _, t := range c.data.Tags {
			tags = append(tags, c.style.Tag.Render(t))
		}
		lines = append(lines, lipgloss.NewStyle().Width(inner).Render(strings.Join(tags, " ")))
	}
	for _, f := range c.data.Footer {
		lines = append(lines, c.style.Muted.Render(f))
	}

	return c.style.Border.Width(c.style.Width).Render(strings.Join(lines, "\n"))
}

// ButtonStyles styles a Button per state.
type ButtonStyles struct {
	Normal   lipgloss.Style
	Focus    lipgloss.Style
	Disabled lipgloss.Style
}

// Button is a labelled action hint, e.g. "[ Send ctrl+s ]".
type Button struct {
	Label    string
	Disabled bool
	Focus    bool
}

// View renders the button.
func (b Button) View(styles ButtonStyles) string {
	label := "[ " + b.Label + " ]"
	switch {
	case b.Disabled:
		return styles.Disabled.Render(label)
	case b.Focus:
		return styles.Focus.Render(label)
	default:
		return styles.Normal.Render(label)
	}
}
