package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rajshekhar/folio/internal/domain/chat"
	"github.com/rajshekhar/folio/internal/tui/components"
)

// chatChrome is the number of panel rows outside the transcript.
const chatChrome = 16

// chatWidth is the overlay width for a terminal of the given width.
func chatWidth(width int) int {
	return min(72, max(30, width-4))
}

func (m *Model) openChat() tea.Cmd {
	m.chat.Open()
	m.form.blur()
	return m.chatInput.Focus()
}

func (m *Model) closeChat() {
	m.chat.Close()
	m.chatInput.Blur()
}

// handleChatKey processes keys while the chat overlay is open.
func (m *Model) handleChatKey(msg tea.KeyMsg) tea.Cmd {
	// One completion at a time. The draft in the input is kept.
	if m.chat.Waiting() && m.startsCompletion(msg) {
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.CloseChat), key.Matches(msg, m.keys.ToggleChat):
		m.closeChat()
		return nil
	case key.Matches(msg, m.keys.Confirm):
		text := m.chatInput.Value()
		m.chatInput.Reset()
		return m.sendChat(text)
	case key.Matches(msg, m.keys.ClearChat):
		m.chat.Clear()
		return nil
	case key.Matches(msg, m.keys.Retry):
		return m.retryChat()
	case key.Matches(msg, m.keys.ThumbsUp):
		return m.reactLatest(chat.ThumbsUp)
	case key.Matches(msg, m.keys.ThumbsDown):
		return m.reactLatest(chat.ThumbsDown)
	case key.Matches(msg, m.keys.Copy):
		if last, ok := m.chat.LastAssistant(); ok {
			return copyToClipboard(m.deps.Clipboard, "Message", last.Content)
		}
		return nil
	case key.Matches(msg, m.keys.DismissBanner):
		m.chat.DismissBanner()
		return nil
	}

	for i, binding := range m.keys.Quick {
		if key.Matches(msg, binding) {
			actions := chat.QuickActions(m.deps.Owner)
			if i < len(actions) {
				return m.sendChat(actions[i].Message)
			}
			return nil
		}
	}

	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return cmd
}

// startsCompletion reports whether msg sends, retries or fires a quick action.
func (m *Model) startsCompletion(msg tea.KeyMsg) bool {
	return key.Matches(msg, m.keys.Confirm, m.keys.Retry) || key.Matches(msg, m.keys.Quick...)
}

func (m *Model) sendChat(text string) tea.Cmd {
	pending, ok := m.chat.BeginSend(text)
	if !ok {
		return nil
	}
	return tea.Batch(runCompletion(m.ctx, m.deps.Completer, pending), m.spinner.Tick)
}

// retryChat re-issues the newest failed reply.
func (m *Model) retryChat() tea.Cmd {
	msgs := m.chat.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == chat.RoleAssistant && msgs[i].IsError {
			pending, err := m.chat.Retry(msgs[i].ID)
			if err != nil {
				m.deps.Logger.Debug(m.ctx, "retry skipped", "error", err)
				return nil
			}
			return tea.Batch(runCompletion(m.ctx, m.deps.Completer, pending), m.spinner.Tick)
		}
	}
	return nil
}

func (m *Model) reactLatest(kind chat.Reaction) tea.Cmd {
	last, ok := m.chat.LastAssistant()
	if !ok {
		return nil
	}
	if err := m.chat.React(last.ID, kind); err != nil {
		m.deps.Logger.Debug(m.ctx, "reaction ignored", "error", err)
	}
	return nil
}

func (m Model) renderChat(s Styles) string {
	width := chatWidth(m.width)
	inner := width - s.ChatBox.GetHorizontalFrameSize()
	now := m.deps.Now()

	var lines []string
	lines = append(lines, s.ChatHeader.Render(fmt.Sprintf("✦ %s's AI Assistant", m.deps.Owner.DisplayName())))
	lines = append(lines, s.Muted.Render("Ask about projects, skills or experience"), "")

	var transcript []string
	for _, msg := range m.chat.Messages() {
		transcript = append(transcript, renderChatMessage(s, msg, inner, now))
	}
	if m.chat.Waiting() {
		transcript = append(transcript, s.Muted.Render(m.spinner.View()+" thinking..."))
	}
	// Newest messages stay visible when the transcript outgrows the panel.
	rows := strings.Split(strings.Join(transcript, "\n\n"), "\n")
	if limit := max(6, m.height-chatChrome); len(rows) > limit {
		rows = rows[len(rows)-limit:]
	}
	lines = append(lines, rows...)
	if banner := components.Banner(m.chat.Banner(), "ctrl+x dismiss · ctrl+r retry", s.Banner, s.BannerHint); banner != "" {
		lines = append(lines, "", banner)
	}

	var quick []string
	for i, action := range chat.QuickActions(m.deps.Owner) {
		quick = append(quick, s.QuickAction.Render(fmt.Sprintf("F%d %s", i+1, action.Label)))
	}
	lines = append(lines, "", strings.Join(quick, s.Muted.Render(" · ")))
	input := s.Focused
	if m.chat.Waiting() {
		input = s.Input
	}
	lines = append(lines, input.Width(inner-2).Render(m.chatInput.View()))
	lines = append(lines, m.help.View(chatKeys{m.keys}))

	return s.ChatBox.Width(width).Render(strings.Join(lines, "\n"))
}

func renderChatMessage(s Styles, msg chat.Message, width int, now time.Time) string {
	body := lipgloss.NewStyle().Width(width).Render(msg.Content)
	meta := chat.RelativeTime(msg.Timestamp, now)

	switch {
	case msg.Role == chat.RoleUser:
		return s.UserMsg.Render("You") + " " + s.Muted.Render(meta) + "\n" + s.UserMsg.Render(body)
	case msg.IsError:
		return s.ErrorMsg.Render("Assistant") + " " + s.Muted.Render(meta) + "\n" + s.ErrorMsg.Render(body)
	}

	header := s.ChatHeader.Render("Assistant") + " " + s.Muted.Render(meta)
	if msg.Reactions.ThumbsUp {
		header += " " + s.Reaction.Render("👍")
	}
	if msg.Reactions.ThumbsDown {
		header += " " + s.Reaction.Render("👎")
	}
	return header + "\n" + s.AssistantMsg.Render(body)
}
