package tui

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/rajshekhar/folio/internal/application/theme"
	"github.com/rajshekhar/folio/internal/domain/chat"
	"github.com/rajshekhar/folio/internal/domain/contact"
	"github.com/rajshekhar/folio/internal/tui/components"
)

func TestUpdateSplashTicksUntilFull(t *testing.T) {
	h := newHarness(t)
	m := NewModel(context.Background(), h.deps())

	var cmd tea.Cmd
	for !m.splash.Done() {
		var updated tea.Model
		updated, cmd = m.Update(splashTickMsg{})
		m = updated.(Model)
	}
	require.NotNil(t, cmd)
	require.Equal(t, 100, m.splash.Percent())
	require.False(t, m.SplashDone())

	m = press(t, m, tea.KeyTab)
	require.Equal(t, SectionHome, m.Section(), "keys are ignored while the splash is up")

	m = step(t, m, splashDoneMsg{})
	require.True(t, m.SplashDone())
}

func TestUpdateTypewriterAdvances(t *testing.T) {
	h := newHarness(t)
	m := h.model(t)

	updated, cmd := m.Update(typewriterTickMsg{})
	m = updated.(Model)
	require.Equal(t, "S", m.typewriter.Text())
	require.NotNil(t, cmd)
}

func TestUpdateSectionNavigationWraps(t *testing.T) {
	h := newHarness(t)
	m := h.model(t)

	m = press(t, m, tea.KeyTab, tea.KeyTab)
	require.Equal(t, SectionSkills, m.Section())

	m = press(t, m, tea.KeyShiftTab, tea.KeyShiftTab, tea.KeyShiftTab)
	require.Equal(t, SectionContact, m.Section())
	require.Equal(t, inputName, m.form.focus)

	m = press(t, m, tea.KeyTab)
	require.Equal(t, SectionHome, m.Section())
	require.Equal(t, inputNone, m.form.focus)
}

func TestUpdateQuitKeys(t *testing.T) {
	h := newHarness(t)
	m := h.model(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	require.Empty(t, updated.View())
}

func TestUpdateProjectFilterAndPaging(t *testing.T) {
	h := newHarness(t)
	m := h.model(t)
	m = press(t, m, tea.KeyTab, tea.KeyTab, tea.KeyTab)
	require.Equal(t, SectionProjects, m.Section())

	require.Contains(t, m.viewport.View()+m.renderSection(), "1 remaining")
	m = typeText(t, m, "m")
	require.Equal(t, 12, m.projectLimit)
	require.NotContains(t, m.renderSection(), "remaining")

	m = press(t, m, tea.KeyRight)
	require.Equal(t, "Big Data", m.currentCategory())
	require.Equal(t, projectPage, m.projectLimit)
	view := m.renderSection()
	require.Contains(t, view, "Streaming Fraud Monitor")
	require.Contains(t, view, "Log Lake")
	require.NotContains(t, view, "Task Board API")

	m = press(t, m, tea.KeyLeft, tea.KeyLeft)
	require.Equal(t, "AI", m.currentCategory())
}

func TestUpdateScrollToTop(t *testing.T) {
	h := newHarness(t)
	m := h.model(t)
	m = press(t, m, tea.KeyTab, tea.KeyTab, tea.KeyTab)

	m.viewport.SetYOffset(scrollTipOffset + 5)
	require.Greater(t, m.ScrollOffset(), scrollTipOffset)
	require.Contains(t, m.View(), "↑ top (g)")

	m = typeText(t, m, "g")
	require.Zero(t, m.ScrollOffset())
	require.NotContains(t, m.View(), "↑ top (g)")
}

func goToContact(t *testing.T, m Model) Model {
	t.Helper()
	return press(t, m, tea.KeyShiftTab)
}

func TestUpdateContactWizardSubmits(t *testing.T) {
	h := newHarness(t)
	m := goToContact(t, h.model(t))

	m = typeText(t, m, "Jane Doe")
	m = press(t, m, tea.KeyEnter)
	require.Equal(t, inputEmail, m.form.focus)
	m = typeText(t, m, "jane@example.com")
	m = press(t, m, tea.KeyEnter)
	require.Equal(t, contact.StepSubject, m.Wizard().Step())
	require.Equal(t, inputSubject, m.form.focus)

	m = typeText(t, m, "Project inquiry")
	m = press(t, m, tea.KeyEnter)
	require.Equal(t, contact.StepMessage, m.Wizard().Step())
	m = typeText(t, m, "Hello, I would like to talk about a data project.")
	require.True(t, m.Wizard().CanSubmit())

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = updated.(Model)
	require.True(t, m.Wizard().Submitting())
	require.Contains(t, m.renderSection(), "Sending...")

	m = step(t, m, findMsg[ContactSubmittedMsg](t, cmd))
	require.Len(t, h.backend.contacts, 1)
	sent := h.backend.contacts[0]
	require.Equal(t, "Jane Doe", sent.Name)
	require.Equal(t, "jane@example.com", sent.Email)
	require.Equal(t, "Project inquiry", sent.Subject)
	require.Nil(t, sent.Attachment)

	require.Equal(t, contact.StepIdentity, m.Wizard().Step())
	require.Empty(t, m.form.name.Value())
	require.Equal(t, components.ToastSuccess, m.Toast().Kind)
	require.Equal(t, contact.MsgSubmitSucceeded, m.Toast().Text)
}

func TestUpdateContactFailureKeepsDraft(t *testing.T) {
	h := newHarness(t)
	h.backend.err = errors.New("502")
	m := goToContact(t, h.model(t))

	m = typeText(t, m, "Jane Doe")
	m = press(t, m, tea.KeyCtrlN)
	m = typeText(t, m, "jane@example.com")
	m = press(t, m, tea.KeyEnter)
	m = typeText(t, m, "Project inquiry")
	m = press(t, m, tea.KeyEnter)
	m = typeText(t, m, "Hello, I would like to talk.")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = step(t, updated.(Model), findMsg[ContactSubmittedMsg](t, cmd))

	require.Equal(t, contact.StepMessage, m.Wizard().Step())
	require.Equal(t, "Jane Doe", m.Wizard().Value(contact.FieldName))
	require.Equal(t, contact.MsgSubmitFailed, m.Toast().Text)
}

func TestUpdateContactAdvanceBlockedByInvalidStep(t *testing.T) {
	h := newHarness(t)
	m := goToContact(t, h.model(t))

	m = typeText(t, m, "J")
	m = press(t, m, tea.KeyCtrlN, tea.KeyEnter)

	require.Equal(t, contact.StepIdentity, m.Wizard().Step())
	require.Equal(t, "Name must be at least 2 characters", m.Wizard().Error(contact.FieldName))
	require.Equal(t, "Email is required", m.Wizard().Error(contact.FieldEmail))
	view := m.renderSection()
	require.Contains(t, view, "Email is required")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Nil(t, cmd, "submit is only possible from the last step")
	require.Empty(t, h.backend.contacts)
}

func TestUpdateContactBackKeepsData(t *testing.T) {
	h := newHarness(t)
	m := goToContact(t, h.model(t))

	m = typeText(t, m, "Jane Doe")
	m = press(t, m, tea.KeyCtrlN)
	m = typeText(t, m, "jane@example.com")
	m = press(t, m, tea.KeyEnter)
	require.Equal(t, contact.StepSubject, m.Wizard().Step())

	m = press(t, m, tea.KeyEsc)
	require.Equal(t, contact.StepIdentity, m.Wizard().Step())
	require.Equal(t, "Jane Doe", m.Wizard().Value(contact.FieldName))
	require.Equal(t, "Jane Doe", m.form.name.Value())

	m = press(t, m, tea.KeyEsc)
	require.Equal(t, inputNone, m.form.focus)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd, "q quits once no input has focus")
}

func TestUpdateContactAttachment(t *testing.T) {
	h := newHarness(t)
	m := goToContact(t, h.model(t))
	m.wizard.UpdateField(contact.FieldName, "Jane Doe")
	m.wizard.UpdateField(contact.FieldEmail, "jane@example.com")
	m.wizard.UpdateField(contact.FieldSubject, "Project inquiry")
	require.True(t, m.wizard.Advance())
	require.True(t, m.wizard.Advance())
	m = press(t, m, tea.KeyCtrlN)
	require.Equal(t, inputMessage, m.form.focus)
	m = press(t, m, tea.KeyCtrlN)
	require.Equal(t, inputAttachment, m.form.focus)

	dir := t.TempDir()
	good := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(good, []byte("plain text notes\n"), 0o600))
	bad := filepath.Join(dir, "archive.zip")
	require.NoError(t, os.WriteFile(bad, []byte("PK\x03\x04\x14\x00\x00\x00\x08\x00"), 0o600))

	m = typeText(t, m, bad)
	m = press(t, m, tea.KeyEnter)
	require.Nil(t, m.Wizard().Attachment())
	require.Equal(t, contact.MsgAttachmentType, m.Toast().Text)

	m.form.attachment.Reset()
	m = typeText(t, m, good)
	m = press(t, m, tea.KeyEnter)
	require.NotNil(t, m.Wizard().Attachment())
	require.Equal(t, "notes.txt", m.Wizard().Attachment().Name)
	require.Equal(t, contact.MsgAttachmentUploaded, m.Toast().Text)
	require.Contains(t, m.renderSection(), "notes.txt")

	m = press(t, m, tea.KeyCtrlX)
	require.Nil(t, m.Wizard().Attachment())
}

func TestUpdateInterestForm(t *testing.T) {
	h := newHarness(t)
	m := goToContact(t, h.model(t))
	m = press(t, m, tea.KeyCtrlP)
	require.Equal(t, inputInterest, m.form.focus)

	m = typeText(t, m, "not-an-email")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	require.Nil(t, cmd)
	require.Equal(t, "Please enter a valid email address", m.interest.Error())

	m.form.interest.Reset()
	m = typeText(t, m, "visitor@example.com")
	require.Empty(t, m.interest.Error())
	updated, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = step(t, updated.(Model), findMsg[InterestSubmittedMsg](t, cmd))

	require.Equal(t, []string{"visitor@example.com"}, h.backend.interests)
	require.Equal(t, contact.MsgInterestSucceeded, m.Toast().Text)
	require.Empty(t, m.form.interest.Value())
}

func TestUpdateCopyOwnerEmail(t *testing.T) {
	h := newHarness(t)
	m := goToContact(t, h.model(t))

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	m = step(t, updated.(Model), findMsg[ClipboardMsg](t, cmd))

	email := m.snapshot.About.Email
	require.Contains(t, h.clipboard.String(), base64.StdEncoding.EncodeToString([]byte(email)))
	require.Equal(t, "Email copied to clipboard", m.Toast().Text)
}

func openChat(t *testing.T, m Model) Model {
	t.Helper()
	m = press(t, m, tea.KeyCtrlO)
	require.True(t, m.Conversation().IsOpen())
	return m
}

func TestUpdateChatSendsSingleTurn(t *testing.T) {
	h := newHarness(t)
	m := openChat(t, h.model(t))

	m = typeText(t, m, "  What does he build?  ")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	require.Equal(t, 2, m.Conversation().Len())
	require.True(t, m.Conversation().Waiting())
	require.Empty(t, m.chatInput.Value())

	m = step(t, m, findMsg[ChatReplyMsg](t, cmd))
	require.False(t, m.Conversation().Waiting())
	require.Equal(t, 3, m.Conversation().Len())
	require.Equal(t, "He builds data pipelines.", m.Conversation().Last().Content)

	require.Len(t, h.completer.requests, 1)
	req := h.completer.requests[0]
	require.Equal(t, "What does he build?", req.User)
	require.Equal(t, m.Conversation().SystemPrompt(), req.System)
}

func TestUpdateChatRefusesSendsWhileWaiting(t *testing.T) {
	h := newHarness(t)
	m := openChat(t, h.model(t))

	m = typeText(t, m, "Hi")
	updated, first := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	require.True(t, m.Conversation().Waiting())

	m = typeText(t, m, "again")
	for _, k := range []tea.KeyType{tea.KeyEnter, tea.KeyF1, tea.KeyCtrlR} {
		updated, cmd := m.Update(tea.KeyMsg{Type: k})
		m = updated.(Model)
		require.Nil(t, cmd, k.String())
	}
	require.Equal(t, 2, m.Conversation().Len())
	require.Equal(t, "again", m.chatInput.Value())

	m = step(t, m, findMsg[ChatReplyMsg](t, first))
	require.False(t, m.Conversation().Waiting())
	require.Len(t, h.completer.requests, 1)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	require.NotNil(t, cmd)
	require.Equal(t, 4, m.Conversation().Len())
	require.Equal(t, "again", m.Conversation().Last().Content)
}

func TestUpdateChatIgnoresBlankInput(t *testing.T) {
	h := newHarness(t)
	m := openChat(t, h.model(t))

	m = typeText(t, m, "   ")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, cmd)
	require.Equal(t, 1, m.Conversation().Len())
}

func TestUpdateChatFailureRetry(t *testing.T) {
	h := newHarness(t)
	h.completer.errs = []error{errors.New("429")}
	h.completer.replies = []string{"", "Recovered answer"}
	m := openChat(t, h.model(t))

	m = typeText(t, m, "Hi")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = step(t, updated.(Model), findMsg[ChatReplyMsg](t, cmd))

	last := m.Conversation().Last()
	require.True(t, last.IsError)
	require.Equal(t, chat.FallbackReply, last.Content)
	require.Equal(t, chat.BannerText, m.Conversation().Banner())
	require.Contains(t, m.View(), chat.BannerText)

	updated, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m = updated.(Model)
	require.Equal(t, 2, m.Conversation().Len(), "failed reply removed, user message kept once")
	require.Empty(t, m.Conversation().Banner())

	m = step(t, m, findMsg[ChatReplyMsg](t, cmd))
	require.Equal(t, 3, m.Conversation().Len())
	require.Equal(t, "Recovered answer", m.Conversation().Last().Content)
	require.Len(t, h.completer.requests, 2)
	require.Equal(t, "Hi", h.completer.requests[1].User)
}

func TestUpdateChatWithoutCompleterFallsBack(t *testing.T) {
	h := newHarness(t)
	deps := h.deps()
	deps.Completer = nil
	m := NewModel(context.Background(), deps)
	m = step(t, m, splashDoneMsg{})
	m = openChat(t, m)

	m = typeText(t, m, "Hello")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = step(t, updated.(Model), findMsg[ChatReplyMsg](t, cmd))

	require.True(t, m.Conversation().Last().IsError)
	require.Equal(t, chat.BannerText, m.Conversation().Banner())

	m = press(t, m, tea.KeyCtrlX)
	require.Empty(t, m.Conversation().Banner())
}

func TestUpdateChatQuickActionReactionsAndClear(t *testing.T) {
	h := newHarness(t)
	m := openChat(t, h.model(t))

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyF2})
	m = step(t, updated.(Model), findMsg[ChatReplyMsg](t, cmd))
	require.Equal(t, chat.QuickActions(testOwner)[1].Message, h.completer.requests[0].User)

	m = press(t, m, tea.KeyCtrlU)
	require.True(t, m.Conversation().Last().Reactions.ThumbsUp)
	m = press(t, m, tea.KeyCtrlD)
	require.False(t, m.Conversation().Last().Reactions.ThumbsUp)
	require.True(t, m.Conversation().Last().Reactions.ThumbsDown)

	updated, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	m = step(t, updated.(Model), findMsg[ClipboardMsg](t, cmd))
	require.Contains(t, h.clipboard.String(), base64.StdEncoding.EncodeToString([]byte("He builds data pipelines.")))

	m = press(t, m, tea.KeyCtrlL)
	require.Equal(t, 1, m.Conversation().Len())

	m = press(t, m, tea.KeyEsc)
	require.False(t, m.Conversation().IsOpen())
	require.Equal(t, 1, m.Conversation().Len())
}

func TestUpdateReplyLandsAfterClose(t *testing.T) {
	h := newHarness(t)
	m := openChat(t, h.model(t))

	m = typeText(t, m, "Hi")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = press(t, updated.(Model), tea.KeyEsc)
	require.True(t, m.Conversation().Waiting())
	require.Contains(t, m.View(), "assistant replying")

	m = step(t, m, findMsg[ChatReplyMsg](t, cmd))
	require.Equal(t, 3, m.Conversation().Len())
}

func TestUpdateThemeToggle(t *testing.T) {
	h := newHarness(t)
	m := h.model(t)
	require.True(t, m.Styles().Dark)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	m = step(t, updated.(Model), findMsg[ThemeToggledMsg](t, cmd))

	require.False(t, m.Styles().Dark)
	require.Equal(t, lightPalette, m.Styles().Palette)
	value, ok, err := h.kv.Get(context.Background(), theme.StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, theme.Light, value)
	require.Contains(t, m.View(), "☀ light")
}

func TestUpdateThemePersistFailureShowsToast(t *testing.T) {
	h := newHarness(t)
	m := h.model(t)

	m = step(t, m, ThemeToggledMsg{Dark: false, Err: errors.New("disk full")})
	require.Equal(t, components.ToastError, m.Toast().Kind)
}
