package contact

import (
	"context"
	"errors"

	"github.com/rajshekhar/folio/internal/ports"
)

var (
	// ErrNotFinalStep is returned when submission is attempted before step 3.
	ErrNotFinalStep = errors.New("contact: submit is only allowed from the final step")
	// ErrSubmitInFlight is returned while a previous submission is pending.
	ErrSubmitInFlight = errors.New("contact: submission already in flight")
	// ErrInvalidDraft is returned when at least one field fails its rules.
	ErrInvalidDraft = errors.New("contact: draft has invalid fields")
)

const (
	MsgSubmitSucceeded = "Message sent successfully! I'll get back to you soon."
	MsgSubmitFailed    = "Failed to send message. Please try again."
)

// Submission is the payload sent for one contact request.
type Submission struct {
	Fields
	Attachment *Attachment
}

// Submitter delivers a contact submission to the backend.
type Submitter interface {
	SubmitContact(ctx context.Context, submission Submission) error
}

// Wizard drives the three-step contact form. It is not safe for concurrent
// use; the UI mutates it from a single goroutine.
type Wizard struct {
	fields     Fields
	step       Step
	errs       FieldErrors
	touched    map[Field]bool
	attachment *Attachment
	submitting bool

	submitter Submitter
	logger    ports.Logger
}

// NewWizard returns an empty wizard on step 1.
func NewWizard(submitter Submitter, logger ports.Logger) *Wizard {
	w := &Wizard{submitter: submitter, logger: logger}
	w.Reset()
	return w
}

// Step returns the current page.
func (w *Wizard) Step() Step { return w.step }

// Fields returns a copy of the draft.
func (w *Wizard) Fields() Fields { return w.fields }

// Value returns the draft value of field.
func (w *Wizard) Value(field Field) string { return w.fields.Get(field) }

// Error returns the current message for field, or "".
func (w *Wizard) Error(field Field) string { return w.errs[field] }

// Errors returns a copy of the current field errors.
func (w *Wizard) Errors() FieldErrors {
	out := make(FieldErrors, len(w.errs))
	for k, v := range w.errs {
		out[k] = v
	}
	return out
}

// Touched reports whether field has been edited or checked.
func (w *Wizard) Touched(field Field) bool { return w.touched[field] }

// Attachment returns the accepted attachment, if any.
func (w *Wizard) Attachment() *Attachment { return w.attachment }

// Submitting reports whether a submission is awaiting its outcome.
func (w *Wizard) Submitting() bool { return w.submitting }

// UpdateField stores value and re-validates that field only.
func (w *Wizard) UpdateField(field Field, value string) {
	if _, ok := rules[field]; !ok {
		return
	}
	w.fields.Set(field, value)
	w.touched[field] = true
	w.check(field)
}

// AttachFile accepts a if it passes CheckAttachment. A rejected attachment
// leaves any previously accepted one untouched.
func (w *Wizard) AttachFile(a Attachment) error {
	if err := CheckAttachment(a); err != nil {
		return err
	}
	w.attachment = &a
	return nil
}

// RemoveAttachment drops the attachment.
func (w *Wizard) RemoveAttachment() { w.attachment = nil }

// Advance moves forward when every field on the current step is valid. It
// returns false, leaving the step unchanged, otherwise or on the last step.
func (w *Wizard) Advance() bool {
	if w.step >= LastStep {
		return false
	}
	valid := true
	for _, field := range w.step.Fields() {
		w.touched[field] = true
		if !w.check(field) {
			valid = false
		}
	}
	if !valid {
		return false
	}
	w.step++
	return true
}

// Retreat moves back one step without touching the draft.
func (w *Wizard) Retreat() {
	if w.step > FirstStep {
		w.step--
	}
}

// CanSubmit reports whether Submit would issue a request.
func (w *Wizard) CanSubmit() bool {
	return w.step == LastStep && !w.submitting && w.fields.Validate() == nil
}

// BeginSubmit validates the whole draft and, when it passes, marks the wizard
// as submitting and returns the payload to send. Every failing field gets its
// message even if it sits on an earlier step.
func (w *Wizard) BeginSubmit() (Submission, error) {
	if w.step != LastStep {
		return Submission{}, ErrNotFinalStep
	}
	if w.submitting {
		return Submission{}, ErrSubmitInFlight
	}
	valid := true
	for _, field := range AllFields {
		w.touched[field] = true
		if !w.check(field) {
			valid = false
		}
	}
	if !valid {
		return Submission{}, ErrInvalidDraft
	}

	w.submitting = true
	submission := Submission{Fields: w.fields}
	if w.attachment != nil {
		a := *w.attachment
		submission.Attachment = &a
	}
	return submission, nil
}

// CompleteSubmit records the outcome of the request started by BeginSubmit.
// Success resets the wizard; failure keeps the draft so the user can retry.
func (w *Wizard) CompleteSubmit(ctx context.Context, err error) Notice {
	w.submitting = false
	if err != nil {
		if w.logger != nil {
			w.logger.Error(ctx, "contact submission failed", "error", err)
		}
		return Notice{Kind: NoticeError, Text: MsgSubmitFailed}
	}
	if w.logger != nil {
		w.logger.Info(ctx, "contact submission sent", "has_attachment", w.attachment != nil)
	}
	w.Reset()
	return Notice{Kind: NoticeSuccess, Text: MsgSubmitSucceeded}
}

// Submit runs BeginSubmit, the request and CompleteSubmit in sequence. It
// returns an empty notice when the draft was not eligible.
func (w *Wizard) Submit(ctx context.Context) Notice {
	submission, err := w.BeginSubmit()
	if err != nil {
		if w.logger != nil {
			w.logger.Debug(ctx, "contact submission skipped", "reason", err)
		}
		return Notice{}
	}
	return w.CompleteSubmit(ctx, w.submitter.SubmitContact(ctx, submission))
}

// Reset clears the draft, errors and attachment and returns to step 1.
func (w *Wizard) Reset() {
	w.fields = Fields{}
	w.step = FirstStep
	w.errs = make(FieldErrors)
	w.touched = make(map[Field]bool)
	w.attachment = nil
}

func (w *Wizard) check(field Field) bool {
	if msg := ValidateField(field, w.fields.Get(field)); msg != "" {
		w.errs[field] = msg
		return false
	}
	delete(w.errs, field)
	return true
}
