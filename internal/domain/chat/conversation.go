package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rajshekhar/folio/internal/domain/portfolio"
	"github.com/rajshekhar/folio/internal/ports"
)

const (
	// FallbackReply replaces the assistant reply whenever the completion
	// call fails for any reason, including a missing credential.
	FallbackReply = "I'm sorry, I'm having trouble connecting right now. Please try again in a moment!"
	// BannerText is the dismissible error shown above the input.
	BannerText = "Failed to get AI response. Please try again."
)

var (
	// ErrMessageNotFound is returned for an unknown message ID.
	ErrMessageNotFound = errors.New("chat: message not found")
	// ErrNotAssistantMessage is returned when reacting to a user message.
	ErrNotAssistantMessage = errors.New("chat: reactions are only allowed on assistant messages")
	// ErrNotRetryable is returned when retrying a message that did not fail
	// or has no user message before it.
	ErrNotRetryable = errors.New("chat: message cannot be retried")
	// ErrReplyPending is returned when retrying while another reply is in
	// flight. Replies are appended in arrival order.
	ErrReplyPending = errors.New("chat: a reply is still pending")
)

// Pending is a completion the caller must run and report back through
// CompleteSend.
type Pending struct {
	UserMessageID int
	Request       CompletionRequest
}

// Conversation is the chat widget state. It is not safe for concurrent use.
type Conversation struct {
	messages []Message
	nextID   int
	open     bool
	pending  int
	banner   string

	owner  portfolio.Owner
	prompt string

	completer Completer
	logger    ports.Logger
	now       func() time.Time
}

// Option customizes a Conversation.
type Option func(*Conversation)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Conversation) { c.now = now }
}

// WithLogger attaches a logger.
func WithLogger(logger ports.Logger) Option {
	return func(c *Conversation) { c.logger = logger }
}

// NewConversation returns a closed conversation holding only the greeting.
// The system prompt starts from fallback text until SetGrounding is called.
func NewConversation(owner portfolio.Owner, completer Completer, opts ...Option) *Conversation {
	c := &Conversation{
		owner:     owner,
		completer: completer,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.prompt = BuildSystemPrompt(Grounding{Owner: owner})
	c.messages = []Message{c.greeting()}
	return c
}

// Messages returns a copy of the conversation in order.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len reports the number of messages.
func (c *Conversation) Len() int { return len(c.messages) }

// Last returns the newest message.
func (c *Conversation) Last() Message { return c.messages[len(c.messages)-1] }

// LastAssistant returns the newest assistant message.
func (c *Conversation) LastAssistant() (Message, bool) {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Role == RoleAssistant {
			return c.messages[i], true
		}
	}
	return Message{}, false
}

// IsOpen reports widget visibility.
func (c *Conversation) IsOpen() bool { return c.open }

// Open shows the widget.
func (c *Conversation) Open() { c.open = true }

// Close hides the widget. Messages and in-flight requests are kept.
func (c *Conversation) Close() { c.open = false }

// Toggle flips visibility.
func (c *Conversation) Toggle() { c.open = !c.open }

// Waiting reports whether a reply is outstanding.
func (c *Conversation) Waiting() bool { return c.pending > 0 }

// Banner returns the current error banner text, or "".
func (c *Conversation) Banner() string { return c.banner }

// DismissBanner clears the error banner.
func (c *Conversation) DismissBanner() { c.banner = "" }

// SystemPrompt returns the prompt sent with every completion.
func (c *Conversation) SystemPrompt() string { return c.prompt }

// SetGrounding rebuilds the system prompt from a content snapshot.
func (c *Conversation) SetGrounding(g Grounding) {
	if g.Owner.Name == "" && g.Owner.FullName == "" {
		g.Owner = c.owner
	}
	c.prompt = BuildSystemPrompt(g)
}

// BeginSend appends the trimmed text as a user message and returns the
// completion to run. Blank text is ignored and reported with ok=false.
func (c *Conversation) BeginSend(text string) (Pending, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Pending{}, false
	}
	c.banner = ""
	msg := Message{ID: c.allocID(), Role: RoleUser, Content: text, Timestamp: c.now()}
	c.messages = append(c.messages, msg)
	c.pending++
	return Pending{
		UserMessageID: msg.ID,
		Request:       CompletionRequest{System: c.prompt, User: text},
	}, true
}

// CompleteSend appends the assistant reply for p. Any error produces the
// fallback reply flagged as an error and raises the banner.
func (c *Conversation) CompleteSend(ctx context.Context, p Pending, reply string, err error) Message {
	if c.pending > 0 {
		c.pending--
	}
	msg := Message{ID: c.allocID(), Role: RoleAssistant, Timestamp: c.now()}
	if err == nil && strings.TrimSpace(reply) == "" {
		err = errors.New("empty completion")
	}
	if err != nil {
		if c.logger != nil {
			c.logger.Error(ctx, "completion failed", "error", err, "user_message_id", p.UserMessageID)
		}
		msg.Content = FallbackReply
		msg.IsError = true
		c.banner = BannerText
	} else {
		msg.Content = reply
	}
	c.messages = append(c.messages, msg)
	return msg
}

// Send runs a whole turn synchronously. It reports ok=false, adding nothing,
// for blank text.
func (c *Conversation) Send(ctx context.Context, text string) (Message, bool) {
	p, ok := c.BeginSend(text)
	if !ok {
		return Message{}, false
	}
	reply, err := c.run(ctx, p)
	return c.CompleteSend(ctx, p, reply, err), true
}

// Run issues the completion for p using the configured Completer.
func (c *Conversation) Run(ctx context.Context, p Pending) (string, error) {
	return c.run(ctx, p)
}

func (c *Conversation) run(ctx context.Context, p Pending) (string, error) {
	if c.completer == nil {
		return "", errors.New("no completer configured")
	}
	return c.completer.Complete(ctx, p.Request)
}

// Retry removes the failed assistant message id and returns a completion for
// the user message right before it. The user message is not duplicated and
// the new reply is appended at the end, so Retry is refused while any reply
// is pending.
func (c *Conversation) Retry(id int) (Pending, error) {
	if c.pending > 0 {
		return Pending{}, ErrReplyPending
	}
	idx := c.index(id)
	if idx < 0 {
		return Pending{}, ErrMessageNotFound
	}
	failed := c.messages[idx]
	if failed.Role != RoleAssistant || !failed.IsError || idx == 0 || c.messages[idx-1].Role != RoleUser {
		return Pending{}, ErrNotRetryable
	}
	prev := c.messages[idx-1]

	c.messages = append(c.messages[:idx], c.messages[idx+1:]...)
	c.banner = ""
	c.pending++
	return Pending{
		UserMessageID: prev.ID,
		Request:       CompletionRequest{System: c.prompt, User: prev.Content},
	}, nil
}

// React toggles kind on an assistant message and clears the opposite toggle.
func (c *Conversation) React(id int, kind Reaction) error {
	idx := c.index(id)
	if idx < 0 {
		return ErrMessageNotFound
	}
	msg := &c.messages[idx]
	if msg.Role != RoleAssistant {
		return ErrNotAssistantMessage
	}
	switch kind {
	case ThumbsUp:
		msg.Reactions.ThumbsUp = !msg.Reactions.ThumbsUp
		msg.Reactions.ThumbsDown = false
	case ThumbsDown:
		msg.Reactions.ThumbsDown = !msg.Reactions.ThumbsDown
		msg.Reactions.ThumbsUp = false
	}
	return nil
}

// Clear resets to a fresh greeting and drops the banner. Outstanding replies
// still land when they complete. IDs keep increasing across clears.
func (c *Conversation) Clear() {
	c.messages = []Message{c.greeting()}
	c.banner = ""
}

func (c *Conversation) greeting() Message {
	return Message{ID: c.allocID(), Role: RoleAssistant, Content: Greeting(c.owner), Timestamp: c.now()}
}

func (c *Conversation) allocID() int {
	c.nextID++
	return c.nextID
}

func (c *Conversation) index(id int) int {
	for i, m := range c.messages {
		if m.ID == id {
			return i
		}
	}
	return -1
}
