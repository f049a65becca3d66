// Package chat implements the portfolio assistant: an append-only
// conversation whose replies come from a single-turn completion call.
package chat

import (
	"context"
	"fmt"
	"time"
)

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Reaction is a feedback toggle on an assistant message.
type Reaction int

const (
	ThumbsUp Reaction = iota
	ThumbsDown
)

func (r Reaction) String() string {
	if r == ThumbsDown {
		return "thumbs_down"
	}
	return "thumbs_up"
}

// Reactions records the toggles on a message. At most one is set.
type Reactions struct {
	ThumbsUp   bool
	ThumbsDown bool
}

// Message is one entry of the conversation.
type Message struct {
	ID        int
	Role      Role
	Content   string
	Timestamp time.Time
	Reactions Reactions
	IsError   bool
}

// CompletionRequest is a single-turn prompt: the system prompt and one user
// message, with no earlier history.
type CompletionRequest struct {
	System string
	User   string
}

// Completer produces an assistant reply.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompleterFunc adapts a function to Completer.
type CompleterFunc func(ctx context.Context, req CompletionRequest) (string, error)

// Complete implements Completer.
func (f CompleterFunc) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	return f(ctx, req)
}

// RelativeTime renders how long ago ts was: "Just now", "5m ago", "2h ago"
// or "3d ago".
func RelativeTime(ts, now time.Time) string {
	diff := now.Sub(ts)
	minutes := int(diff / time.Minute)
	hours := int(diff / time.Hour)
	days := int(diff / (24 * time.Hour))

	switch {
	case minutes < 1:
		return "Just now"
	case minutes < 60:
		return fmt.Sprintf("%dm ago", minutes)
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	default:
		return fmt.Sprintf("%dd ago", days)
	}
}
