package tui

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/aymanbagabas/go-osc52/v2"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rajshekhar/folio/internal/application/content"
	"github.com/rajshekhar/folio/internal/domain/chat"
	"github.com/rajshekhar/folio/internal/domain/contact"
	"github.com/rajshekhar/folio/internal/tui/components"
)

var (
	errNoCompleter = errors.New("no completer configured")
	errNoBackend   = errors.New("no backend configured")
)

func splashTick() tea.Cmd {
	return tea.Tick(components.SplashInterval, func(time.Time) tea.Msg { return splashTickMsg{} })
}

func splashHold() tea.Cmd {
	return tea.Tick(components.SplashHold, func(time.Time) tea.Msg { return splashDoneMsg{} })
}

func typewriterTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return typewriterTickMsg{} })
}

func expireToast(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return toastExpiredMsg{ID: id} })
}

func loadContent(ctx context.Context, loader ContentLoader) tea.Cmd {
	return func() tea.Msg {
		if loader == nil {
			return ContentLoadedMsg{Snapshot: content.Snapshot{Errs: map[string]error{"content": errNoBackend}}}
		}
		return ContentLoadedMsg{Snapshot: loader.LoadAll(ctx)}
	}
}

func submitContact(ctx context.Context, submitter contact.Submitter, submission contact.Submission) tea.Cmd {
	return func() tea.Msg {
		if submitter == nil {
			return ContactSubmittedMsg{Err: errNoBackend}
		}
		return ContactSubmittedMsg{Err: submitter.SubmitContact(ctx, submission)}
	}
}

func submitInterest(ctx context.Context, submitter contact.InterestSubmitter, email string) tea.Cmd {
	return func() tea.Msg {
		if submitter == nil {
			return InterestSubmittedMsg{Err: errNoBackend}
		}
		return InterestSubmittedMsg{Err: submitter.SubmitInterest(ctx, email)}
	}
}

// runCompletion calls the completer directly rather than through the
// conversation so the command goroutine never touches conversation state.
func runCompletion(ctx context.Context, completer chat.Completer, p chat.Pending) tea.Cmd {
	return func() tea.Msg {
		if completer == nil {
			return ChatReplyMsg{Pending: p, Err: errNoCompleter}
		}
		reply, err := completer.Complete(ctx, p.Request)
		return ChatReplyMsg{Pending: p, Reply: reply, Err: err}
	}
}

func toggleTheme(ctx context.Context, store ThemeStore) tea.Cmd {
	return func() tea.Msg {
		err := store.Toggle(ctx)
		return ThemeToggledMsg{Dark: store.IsDarkMode(), Err: err}
	}
}

func copyToClipboard(w io.Writer, what, text string) tea.Cmd {
	return func() tea.Msg {
		_, err := osc52.New(text).WriteTo(w)
		return ClipboardMsg{What: what, Err: err}
	}
}
