package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rajshekhar/folio/internal/domain/contact"
	"github.com/rajshekhar/folio/internal/tui/components"
)

// formInput identifies one input of the contact section.
type formInput int

const (
	inputNone formInput = iota - 1
	inputName
	inputEmail
	inputSubject
	inputMessage
	inputAttachment
	inputInterest
)

var inputFields = map[formInput]contact.Field{
	inputName:    contact.FieldName,
	inputEmail:   contact.FieldEmail,
	inputSubject: contact.FieldSubject,
	inputMessage: contact.FieldMessage,
}

// focusOrder lists the inputs reachable with ctrl+n on a wizard step. The
// quick-contact email is always last.
func focusOrder(step contact.Step) []formInput {
	switch step {
	case contact.StepIdentity:
		return []formInput{inputName, inputEmail, inputInterest}
	case contact.StepSubject:
		return []formInput{inputSubject, inputInterest}
	default:
		return []formInput{inputMessage, inputAttachment, inputInterest}
	}
}

type contactForm struct {
	name       textinput.Model
	email      textinput.Model
	subject    textinput.Model
	attachment textinput.Model
	interest   textinput.Model
	message    textarea.Model
	focus      formInput
}

func newContactForm() contactForm {
	newInput := func(placeholder string, limit int) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = limit
		in.Width = 48
		return in
	}
	message := textarea.New()
	message.Placeholder = "Tell me about your project..."
	message.CharLimit = 1000
	message.ShowLineNumbers = false
	message.SetWidth(60)
	message.SetHeight(5)

	return contactForm{
		name:       newInput("Your name", 50),
		email:      newInput("you@example.com", 100),
		subject:    newInput("What's this about?", 100),
		attachment: newInput("Path to a file (optional), enter to attach", 0),
		interest:   newInput("you@example.com", 100),
		message:    message,
		focus:      inputNone,
	}
}

func (f *contactForm) resize(width int) {
	w := min(60, max(20, width-20))
	f.name.Width = w
	f.email.Width = w
	f.subject.Width = w
	f.attachment.Width = w
	f.interest.Width = w
	f.message.SetWidth(w + 2)
}

func (f *contactForm) focused() bool { return f.focus != inputNone }

func (f *contactForm) setFocus(target formInput) tea.Cmd {
	f.blur()
	f.focus = target
	switch target {
	case inputMessage:
		return f.message.Focus()
	case inputNone:
		return nil
	default:
		return f.input(target).Focus()
	}
}

func (f *contactForm) blur() {
	f.name.Blur()
	f.email.Blur()
	f.subject.Blur()
	f.attachment.Blur()
	f.interest.Blur()
	f.message.Blur()
	f.focus = inputNone
}

// move shifts focus by delta within the step's order, wrapping around.
func (f *contactForm) move(step contact.Step, delta int) tea.Cmd {
	order := focusOrder(step)
	pos := 0
	for i, in := range order {
		if in == f.focus {
			pos = (i + delta + len(order)) % len(order)
			return f.setFocus(order[pos])
		}
	}
	return f.setFocus(order[pos])
}

func (f *contactForm) input(in formInput) *textinput.Model {
	switch in {
	case inputName:
		return &f.name
	case inputEmail:
		return &f.email
	case inputSubject:
		return &f.subject
	case inputAttachment:
		return &f.attachment
	case inputInterest:
		return &f.interest
	default:
		return nil
	}
}

func (f *contactForm) value(in formInput) string {
	if in == inputMessage {
		return f.message.Value()
	}
	if ti := f.input(in); ti != nil {
		return ti.Value()
	}
	return ""
}

func (f *contactForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case inputNone:
		return nil
	case inputMessage:
		f.message, cmd = f.message.Update(msg)
	default:
		ti := f.input(f.focus)
		*ti, cmd = ti.Update(msg)
	}
	return cmd
}

func (f *contactForm) clearWizard() {
	f.name.Reset()
	f.email.Reset()
	f.subject.Reset()
	f.attachment.Reset()
	f.message.Reset()
}

// syncForm pushes the focused input's value into the domain forms.
func (m *Model) syncForm() {
	in := m.form.focus
	value := m.form.value(in)
	if field, ok := inputFields[in]; ok {
		if value != m.wizard.Value(field) {
			m.wizard.UpdateField(field, value)
		}
		return
	}
	if in == inputInterest && value != m.interest.Email() {
		m.interest.UpdateEmail(value)
	}
}

func (m *Model) enterContact() tea.Cmd {
	return m.form.setFocus(focusOrder(m.wizard.Step())[0])
}

// handleContactKey processes keys on the contact section. It reports false
// when the key should fall through to page navigation.
func (m *Model) handleContactKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.NextField):
		return m.form.move(m.wizard.Step(), 1), true
	case key.Matches(msg, m.keys.PrevField):
		return m.form.move(m.wizard.Step(), -1), true
	case key.Matches(msg, m.keys.Submit):
		return m.submitWizard(), true
	case key.Matches(msg, m.keys.Detach):
		if m.wizard.Attachment() != nil {
			m.wizard.RemoveAttachment()
			return m.showToast(components.ToastInfo, "Attachment removed", toastDuration), true
		}
		return nil, true
	case key.Matches(msg, m.keys.Copy):
		return m.copyOwnerEmail(), true
	case key.Matches(msg, m.keys.Back):
		if !m.form.focused() {
			return nil, false
		}
		if m.wizard.Step() > contact.FirstStep {
			m.wizard.Retreat()
			return m.enterContact(), true
		}
		m.form.blur()
		return nil, true
	case key.Matches(msg, m.keys.Confirm):
		return m.confirmContact()
	}

	if !m.form.focused() {
		return nil, false
	}
	cmd := m.form.update(msg)
	m.syncForm()
	return cmd, true
}

func (m *Model) confirmContact() (tea.Cmd, bool) {
	switch m.form.focus {
	case inputNone:
		return m.enterContact(), true
	case inputName:
		return m.form.setFocus(inputEmail), true
	case inputEmail, inputSubject:
		m.syncForm()
		if m.wizard.Advance() {
			return m.enterContact(), true
		}
		return nil, true
	case inputMessage:
		cmd := m.form.update(tea.KeyMsg{Type: tea.KeyEnter})
		m.syncForm()
		return cmd, true
	case inputAttachment:
		return m.attachFromPath(), true
	case inputInterest:
		return m.submitInterestForm(), true
	}
	return nil, true
}

func (m *Model) submitWizard() tea.Cmd {
	if m.form.focus != inputNone {
		m.syncForm()
	}
	submission, err := m.wizard.BeginSubmit()
	if err != nil {
		if !errors.Is(err, contact.ErrSubmitInFlight) {
			m.deps.Logger.Debug(m.ctx, "contact submission skipped", "reason", err)
		}
		return nil
	}
	return submitContact(m.ctx, m.deps.Contact, submission)
}

func (m *Model) submitInterestForm() tea.Cmd {
	m.syncForm()
	email, err := m.interest.BeginSubmit()
	if err != nil {
		return nil
	}
	return submitInterest(m.ctx, m.deps.Interest, email)
}

func (m *Model) attachFromPath() tea.Cmd {
	path := expandHome(strings.TrimSpace(m.form.attachment.Value()))
	if path == "" {
		return nil
	}
	a, err := contact.AttachmentFromFile(path)
	if err == nil {
		err = m.wizard.AttachFile(a)
	}
	notice := contact.NoticeForAttachment(err)
	if err == nil {
		m.form.attachment.Reset()
	} else {
		m.deps.Logger.Warn(m.ctx, "attachment rejected", "path", path, "error", err)
	}
	return m.showNotice(notice, toastDuration)
}

func (m *Model) copyOwnerEmail() tea.Cmd {
	email := m.deps.Owner.Email
	if m.snapshot.About != nil && m.snapshot.About.Email != "" {
		email = m.snapshot.About.Email
	}
	if email == "" {
		return nil
	}
	return copyToClipboard(m.deps.Clipboard, "Email", email)
}

func (m *Model) handleContactSubmitted(msg ContactSubmittedMsg) tea.Cmd {
	notice := m.wizard.CompleteSubmit(m.ctx, msg.Err)
	var cmds []tea.Cmd
	if notice.Kind == contact.NoticeSuccess {
		m.form.clearWizard()
		if m.section == SectionContact {
			cmds = append(cmds, m.enterContact())
		}
	}
	cmds = append(cmds, m.showNotice(notice, toastDuration))
	return tea.Batch(cmds...)
}

func (m *Model) handleInterestSubmitted(msg InterestSubmittedMsg) tea.Cmd {
	notice := m.interest.CompleteSubmit(m.ctx, msg.Err)
	if notice.Kind == contact.NoticeSuccess {
		m.form.interest.Reset()
	}
	return m.showNotice(notice, interestToastDuration)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
