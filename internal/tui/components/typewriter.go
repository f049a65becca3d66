package components

import "time"

// Typewriter timings.
const (
	TypeDelay   = 100 * time.Millisecond
	DeleteDelay = 50 * time.Millisecond
	HoldDelay   = 2 * time.Second
)

// Typewriter cycles through words forever, typing each one a character at a
// time, holding it, then deleting it. It is an immutable value; callers
// schedule Advance after Delay.
type Typewriter struct {
	words    [][]rune
	word     int
	length   int
	deleting bool
}

// NewTypewriter creates a Typewriter over words. Empty words are skipped.
func NewTypewriter(words ...string) Typewriter {
	tw := Typewriter{}
	for _, w := range words {
		if w != "" {
			tw.words = append(tw.words, []rune(w))
		}
	}
	return tw
}

// Text is the currently visible prefix.
func (t Typewriter) Text() string {
	if len(t.words) == 0 {
		return ""
	}
	return string(t.current()[:t.length])
}

// Deleting reports whether the current word is being erased.
func (t Typewriter) Deleting() bool { return t.deleting }

// Delay is how long to wait before the next Advance. Zero means the
// typewriter has nothing to show and should not be scheduled.
func (t Typewriter) Delay() time.Duration {
	if len(t.words) == 0 {
		return 0
	}
	full := len(t.current())
	switch {
	case !t.deleting && t.length < full:
		return TypeDelay
	case !t.deleting:
		return HoldDelay
	case t.length > 0:
		return DeleteDelay
	default:
		// Moving to the next word types its first character.
		return TypeDelay
	}
}

// Advance applies one transition.
func (t Typewriter) Advance() Typewriter {
	if len(t.words) == 0 {
		return t
	}
	full := len(t.current())
	switch {
	case !t.deleting && t.length < full:
		t.length++
	case !t.deleting:
		t.deleting = true
	case t.length > 0:
		t.length--
	default:
		t.deleting = false
		t.word = (t.word + 1) % len(t.words)
		t.length = 1
	}
	return t
}

func (t Typewriter) current() []rune {
	return t.words[t.word]
}
