package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// chromeHeight is the rows used by the navbar, toast line and footer.
const chromeHeight = 5

// View renders the current state of the model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	s := m.styles.Current()
	if !m.splashDone {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.splash.View(s.SplashTitle, s.SplashPercent))
	}

	body := m.viewport.View()
	if m.chat.IsOpen() {
		body = lipgloss.Place(m.width, m.viewport.Height, lipgloss.Right, lipgloss.Top, m.renderChat(s))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderNavbar(s),
		body,
		m.toast.View(s.Toast),
		m.renderFooter(s),
	)
}

func (m Model) renderNavbar(s Styles) string {
	tabs := make([]string, 0, len(sectionNames))
	for i, name := range sectionNames {
		if Section(i) == m.section {
			tabs = append(tabs, s.ActiveTab.Render(name))
			continue
		}
		tabs = append(tabs, s.Tab.Render(name))
	}
	left := s.Title.Render(m.deps.Owner.DisplayName()) + "  " + strings.Join(tabs, "")

	mode := "☀ light"
	if s.Dark {
		mode = "☾ dark"
	}
	right := s.Muted.Render(mode)
	if m.chat.Waiting() && !m.chat.IsOpen() {
		right = s.Accent.Render(m.spinner.View()+" assistant replying ") + right
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return s.Navbar.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderFooter(s Styles) string {
	hints := m.help.View(m.keys)
	if m.viewport.YOffset > scrollTipOffset && !m.chat.IsOpen() {
		hints = s.ScrollTip.Render("↑ top (g)") + " " + hints
	}
	return s.Footer.Width(m.width).Render(hints)
}
