package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StepState is the rendering state of one wizard step.
type StepState int

const (
	StepPending StepState = iota
	StepCurrent
	StepDone
)

// StepEntry represents a single step for rendering.
type StepEntry struct {
	Number int
	Title  string
	State  StepState
}

// StepStyles styles each state.
type StepStyles struct {
	Pending   lipgloss.Style
	Current   lipgloss.Style
	Done      lipgloss.Style
	Connector lipgloss.Style
}

// StepIndicator renders wizard progress as numbered steps.
type StepIndicator struct {
	entries []StepEntry
}

// NewStepIndicator builds the indicator for titles with current (1-based)
// highlighted and earlier steps marked done.
func NewStepIndicator(titles []string, current int) StepIndicator {
	entries := make([]StepEntry, 0, len(titles))
	for i, title := range titles {
		n := i + 1
		state := StepPending
		switch {
		case n < current:
			state = StepDone
		case n == current:
			state = StepCurrent
		}
		entries = append(entries, StepEntry{Number: n, Title: title, State: state})
	}
	return StepIndicator{entries: entries}
}

// Entries returns the ordered step entries.
func (s StepIndicator) Entries() []StepEntry {
	clone := make([]StepEntry, len(s.entries))
	copy(clone, s.entries)
	return clone
}

// View renders the steps on one line.
func (s StepIndicator) View(styles StepStyles) string {
	parts := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		var label string
		switch e.State {
		case StepDone:
			label = styles.Done.Render(fmt.Sprintf("✓ %s", e.Title))
		case StepCurrent:
			label = styles.Current.Render(fmt.Sprintf("(%d) %s", e.Number, e.Title))
		default:
			label = styles.Pending.Render(fmt.Sprintf("%d %s", e.Number, e.Title))
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, styles.Connector.Render(" ── "))
}
