// Package contact models the multi-step contact wizard and the quick-contact
// form. Field rules and their messages live here so the client and the dev
// backend reject exactly the same drafts.
package contact

import (
	"fmt"

	"github.com/rajshekhar/folio/internal/validation"
)

// Field names a text input of the wizard.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldSubject Field = "subject"
	FieldMessage Field = "message"
)

// AllFields lists the text fields in form order.
var AllFields = []Field{FieldName, FieldEmail, FieldSubject, FieldMessage}

// Label is the human-facing field name.
func (f Field) Label() string {
	switch f {
	case FieldName:
		return "Name"
	case FieldEmail:
		return "Email"
	case FieldSubject:
		return "Subject"
	case FieldMessage:
		return "Message"
	default:
		return string(f)
	}
}

type rule struct {
	tag      string
	messages map[string]string
}

var rules = map[Field]rule{
	FieldName: {
		tag: "required,min=2,max=50,person_name",
		messages: map[string]string{
			"required":    "Name is required",
			"min":         "Name must be at least 2 characters",
			"max":         "Name must be less than 50 characters",
			"person_name": "Name can only contain letters and spaces",
		},
	},
	FieldEmail: {
		tag: "required,email,max=100",
		messages: map[string]string{
			"required": "Email is required",
			"email":    "Please enter a valid email address",
			"max":      "Email must be less than 100 characters",
		},
	},
	FieldSubject: {
		tag: "required,min=5,max=100",
		messages: map[string]string{
			"required": "Subject is required",
			"min":      "Subject must be at least 5 characters",
			"max":      "Subject must be less than 100 characters",
		},
	},
	FieldMessage: {
		tag: "required,min=10,max=1000",
		messages: map[string]string{
			"required": "Message is required",
			"min":      "Message must be at least 10 characters",
			"max":      "Message must be less than 1000 characters",
		},
	},
}

// ValidateField checks value against the rules for field and returns the
// message to show, or "" when the value is acceptable.
func ValidateField(field Field, value string) string {
	r, ok := rules[field]
	if !ok {
		return fmt.Sprintf("unknown field %q", field)
	}
	tag, err := validation.FirstFailedTag(value, r.tag)
	if err != nil {
		return err.Error()
	}
	if tag == "" {
		return ""
	}
	if msg, ok := r.messages[tag]; ok {
		return msg
	}
	return fmt.Sprintf("%s is invalid", field.Label())
}

// Fields is the text portion of a contact submission.
type Fields struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Get returns the value of field.
func (f Fields) Get(field Field) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldEmail:
		return f.Email
	case FieldSubject:
		return f.Subject
	case FieldMessage:
		return f.Message
	default:
		return ""
	}
}

// Set assigns value to field. Unknown fields are ignored.
func (f *Fields) Set(field Field, value string) {
	switch field {
	case FieldName:
		f.Name = value
	case FieldEmail:
		f.Email = value
	case FieldSubject:
		f.Subject = value
	case FieldMessage:
		f.Message = value
	}
}

// FieldErrors maps each failing field to its message.
type FieldErrors map[Field]string

// Validate checks every field and returns the failures, or nil.
func (f Fields) Validate() FieldErrors {
	return f.validate(AllFields)
}

func (f Fields) validate(fields []Field) FieldErrors {
	var errs FieldErrors
	for _, field := range fields {
		if msg := ValidateField(field, f.Get(field)); msg != "" {
			if errs == nil {
				errs = make(FieldErrors)
			}
			errs[field] = msg
		}
	}
	return errs
}

// Error renders the failures in form order.
func (e FieldErrors) Error() string {
	out := ""
	for _, field := range AllFields {
		msg, ok := e[field]
		if !ok {
			continue
		}
		if out != "" {
			out += "; "
		}
		out += string(field) + ": " + msg
	}
	return out
}

// Step is a wizard page.
type Step int

const (
	StepIdentity Step = 1
	StepSubject  Step = 2
	StepMessage  Step = 3
)

// FirstStep and LastStep bound the wizard.
const (
	FirstStep = StepIdentity
	LastStep  = StepMessage
)

// Fields lists the inputs shown on the step.
func (s Step) Fields() []Field {
	switch s {
	case StepIdentity:
		return []Field{FieldName, FieldEmail}
	case StepSubject:
		return []Field{FieldSubject}
	case StepMessage:
		return []Field{FieldMessage}
	default:
		return nil
	}
}

// Title is the step heading.
func (s Step) Title() string {
	switch s {
	case StepIdentity:
		return "Your Details"
	case StepSubject:
		return "Subject"
	case StepMessage:
		return "Message"
	default:
		return ""
	}
}
