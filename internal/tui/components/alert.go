package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ToastKind selects the toast colouring.
type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastSuccess
	ToastError
)

// ToastStyles holds one style per kind.
type ToastStyles struct {
	Info    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
}

// Toast is a transient notification line.
type Toast struct {
	Kind ToastKind
	Text string
}

// View renders the toast, or "" when it has no text.
func (t Toast) View(styles ToastStyles) string {
	if strings.TrimSpace(t.Text) == "" {
		return ""
	}
	switch t.Kind {
	case ToastSuccess:
		return styles.Success.Render("✓ " + t.Text)
	case ToastError:
		return styles.Error.Render("✗ " + t.Text)
	default:
		return styles.Info.Render("• " + t.Text)
	}
}

// Banner renders a dismissible error banner with its key hint.
func Banner(text, hint string, style, hintStyle lipgloss.Style) string {
	if text == "" {
		return ""
	}
	return style.Render(text + "  " + hintStyle.Render(hint))
}
