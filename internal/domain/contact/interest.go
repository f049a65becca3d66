package contact

import (
	"context"

	"github.com/rajshekhar/folio/internal/ports"
)

const (
	MsgInterestSucceeded = "Thank you for showing interest! We've sent you a confirmation email."
	MsgInterestFailed    = "Failed to send email. Please try again."
)

// InterestSubmitter sends the quick-contact email.
type InterestSubmitter interface {
	SubmitInterest(ctx context.Context, email string) error
}

// InterestForm is the single-field quick-contact form.
type InterestForm struct {
	email      string
	err        string
	submitting bool

	submitter InterestSubmitter
	logger    ports.Logger
}

// NewInterestForm returns an empty form.
func NewInterestForm(submitter InterestSubmitter, logger ports.Logger) *InterestForm {
	return &InterestForm{submitter: submitter, logger: logger}
}

// Email returns the current value.
func (f *InterestForm) Email() string { return f.email }

// Error returns the current validation message, or "".
func (f *InterestForm) Error() string { return f.err }

// Submitting reports whether a request is pending.
func (f *InterestForm) Submitting() bool { return f.submitting }

// UpdateEmail stores value. Errors are cleared and only reported on submit.
func (f *InterestForm) UpdateEmail(value string) {
	f.email = value
	f.err = ""
}

// BeginSubmit validates the address and marks the form as submitting.
func (f *InterestForm) BeginSubmit() (string, error) {
	if f.submitting {
		return "", ErrSubmitInFlight
	}
	if msg := ValidateField(FieldEmail, f.email); msg != "" {
		f.err = msg
		return "", ErrInvalidDraft
	}
	f.err = ""
	f.submitting = true
	return f.email, nil
}

// CompleteSubmit records the outcome; success clears the field.
func (f *InterestForm) CompleteSubmit(ctx context.Context, err error) Notice {
	f.submitting = false
	if err != nil {
		if f.logger != nil {
			f.logger.Error(ctx, "interest submission failed", "error", err)
		}
		return Notice{Kind: NoticeError, Text: MsgInterestFailed}
	}
	f.email = ""
	return Notice{Kind: NoticeSuccess, Text: MsgInterestSucceeded}
}

// Submit runs the whole exchange synchronously.
func (f *InterestForm) Submit(ctx context.Context) Notice {
	email, err := f.BeginSubmit()
	if err != nil {
		return Notice{}
	}
	return f.CompleteSubmit(ctx, f.submitter.SubmitInterest(ctx, email))
}
