package tui

import (
	"github.com/rajshekhar/folio/internal/application/content"
	"github.com/rajshekhar/folio/internal/domain/chat"
)

// Section identifies a page of the portfolio.
type Section int

const (
	SectionHome Section = iota
	SectionAbout
	SectionSkills
	SectionProjects
	SectionExperience
	SectionContact
)

var sectionNames = []string{"Home", "About", "Skills", "Projects", "Experience", "Contact"}

func (s Section) String() string {
	if int(s) < 0 || int(s) >= len(sectionNames) {
		return "Unknown"
	}
	return sectionNames[s]
}

// Loading Messages

// ContentLoadedMsg carries the content snapshot.
type ContentLoadedMsg struct {
	Snapshot content.Snapshot
}

type splashTickMsg struct{}

type splashDoneMsg struct{}

type typewriterTickMsg struct{}

// Submission Messages

// ContactSubmittedMsg reports the outcome of the contact POST.
type ContactSubmittedMsg struct {
	Err error
}

// InterestSubmittedMsg reports the outcome of the quick-contact POST.
type InterestSubmittedMsg struct {
	Err error
}

// Chat Messages

// ChatReplyMsg carries a completion result for a pending turn.
type ChatReplyMsg struct {
	Pending chat.Pending
	Reply   string
	Err     error
}

// Misc Messages

// ThemeToggledMsg reports the persisted toggle.
type ThemeToggledMsg struct {
	Dark bool
	Err  error
}

// ClipboardMsg reports a copy request.
type ClipboardMsg struct {
	What string
	Err  error
}

type toastExpiredMsg struct {
	ID int
}
