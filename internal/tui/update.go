package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rajshekhar/folio/internal/domain/portfolio"
	"github.com/rajshekhar/folio/internal/tui/components"
)

// Update handles Bubbletea messages and updates model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	if m.quitting {
		return m, tea.Quit
	}
	m.refresh()
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return nil

	case splashTickMsg:
		m.splash = m.splash.Tick()
		if m.splash.Done() {
			return splashHold()
		}
		return splashTick()
	case splashDoneMsg:
		m.splashDone = true
		return nil

	case typewriterTickMsg:
		m.typewriter = m.typewriter.Advance()
		if d := m.typewriter.Delay(); d > 0 {
			return typewriterTick(d)
		}
		return nil

	case spinner.TickMsg:
		if m.loaded && !m.chat.Waiting() {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case ContentLoadedMsg:
		m.applySnapshot(msg)
		return nil

	case ContactSubmittedMsg:
		return m.handleContactSubmitted(msg)
	case InterestSubmittedMsg:
		return m.handleInterestSubmitted(msg)

	case ChatReplyMsg:
		m.chat.CompleteSend(m.ctx, msg.Pending, msg.Reply, msg.Err)
		return nil

	case ThemeToggledMsg:
		if msg.Err != nil {
			m.deps.Logger.Warn(m.ctx, "theme preference not saved", "error", msg.Err)
			return m.showToast(components.ToastError, "Theme changed but could not be saved", toastDuration)
		}
		return nil

	case ClipboardMsg:
		if msg.Err != nil {
			m.deps.Logger.Warn(m.ctx, "clipboard write failed", "error", msg.Err)
			return m.showToast(components.ToastError, "Could not copy to clipboard", toastDuration)
		}
		return m.showToast(components.ToastSuccess, msg.What+" copied to clipboard", toastDuration)

	case toastExpiredMsg:
		if msg.ID == m.toastID {
			m.toast = components.Toast{}
		}
		return nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}

	// Cursor blink and other component messages go to whatever has focus.
	if m.chat.IsOpen() {
		var cmd tea.Cmd
		m.chatInput, cmd = m.chatInput.Update(msg)
		return cmd
	}
	return m.form.update(msg)
}

func (m *Model) applySnapshot(msg ContentLoadedMsg) {
	m.loaded = true
	m.snapshot = msg.Snapshot
	m.categories = portfolio.ProjectCategories(m.snapshot.Projects)
	if m.category >= len(m.categories) {
		m.category = 0
	}
	m.chat.SetGrounding(m.snapshot.Grounding(m.deps.Owner))
	if err := m.snapshot.Err(); err != nil {
		m.deps.Logger.Warn(m.ctx, "portfolio content partially unavailable", "error", err)
	} else {
		m.deps.Logger.Debug(m.ctx, "portfolio content loaded",
			"skills", len(m.snapshot.Skills),
			"projects", len(m.snapshot.Projects),
			"experience", len(m.snapshot.Experience))
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return nil
	}
	if !m.splashDone {
		return nil
	}
	if key.Matches(msg, m.keys.ToggleTheme) {
		if m.deps.Theme == nil {
			m.styles.ApplyTheme(!m.styles.Current().Dark)
			return nil
		}
		return toggleTheme(m.ctx, m.deps.Theme)
	}
	if m.chat.IsOpen() {
		return m.handleChatKey(msg)
	}
	if key.Matches(msg, m.keys.ToggleChat) {
		return m.openChat()
	}

	switch {
	case key.Matches(msg, m.keys.NextSection):
		return m.switchSection(m.section + 1)
	case key.Matches(msg, m.keys.PrevSection):
		return m.switchSection(m.section - 1)
	}

	if m.section == SectionContact {
		if cmd, handled := m.handleContactKey(msg); handled {
			return cmd
		}
	}

	switch {
	case msg.String() == "q":
		m.quitting = true
		return nil
	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
		return nil
	}

	if m.section == SectionProjects {
		switch {
		case key.Matches(msg, m.keys.NextFilter):
			m.setCategory(m.category + 1)
			return nil
		case key.Matches(msg, m.keys.PrevFilter):
			m.setCategory(m.category - 1)
			return nil
		case key.Matches(msg, m.keys.ShowMore):
			m.projectLimit += projectPage
			return nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

func (m *Model) switchSection(target Section) tea.Cmd {
	count := Section(len(sectionNames))
	m.section = (target + count) % count
	m.viewport.GotoTop()
	m.form.blur()
	if m.section == SectionContact {
		return m.enterContact()
	}
	return nil
}

// setCategory wraps around the category list and resets paging.
func (m *Model) setCategory(idx int) {
	n := len(m.categories)
	if n == 0 {
		return
	}
	m.category = (idx + n) % n
	m.projectLimit = projectPage
}
