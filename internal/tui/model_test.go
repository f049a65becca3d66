package tui

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/rajshekhar/folio/internal/application/content"
	"github.com/rajshekhar/folio/internal/application/theme"
	"github.com/rajshekhar/folio/internal/domain/chat"
	"github.com/rajshekhar/folio/internal/domain/contact"
	"github.com/rajshekhar/folio/internal/domain/portfolio"
	"github.com/rajshekhar/folio/internal/infrastructure/devserver"
	"github.com/rajshekhar/folio/internal/infrastructure/logging"
	"github.com/rajshekhar/folio/internal/infrastructure/storage"
	"github.com/rajshekhar/folio/internal/tui/components"
)

var testOwner = portfolio.Owner{
	Name:     "Raj",
	FullName: "Raj Shekhar",
	Title:    "Software Developer",
	Email:    "raj@example.com",
	Location: "Bangalore, India",
	Roles:    []string{"Software Developer", "Big Data Engineer"},
}

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeLoader struct {
	snapshot content.Snapshot
	calls    int
}

func (f *fakeLoader) LoadAll(context.Context) content.Snapshot {
	f.calls++
	return f.snapshot
}

type fakeBackend struct {
	mu        sync.Mutex
	contacts  []contact.Submission
	interests []string
	err       error
}

func (f *fakeBackend) SubmitContact(_ context.Context, s contact.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contacts = append(f.contacts, s)
	return f.err
}

func (f *fakeBackend) SubmitInterest(_ context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.interests = append(f.interests, email)
	return f.err
}

type fakeCompleter struct {
	mu       sync.Mutex
	requests []chat.CompletionRequest
	replies  []string
	errs     []error
}

func (f *fakeCompleter) Complete(_ context.Context, req chat.CompletionRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := len(f.requests)
	f.requests = append(f.requests, req)
	var (
		reply string
		err   error
	)
	if i < len(f.replies) {
		reply = f.replies[i]
	}
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return reply, err
}

type harness struct {
	loader    *fakeLoader
	backend   *fakeBackend
	completer *fakeCompleter
	kv        *storage.MemoryStore
	theme     *theme.Store
	clipboard *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	fixtures := devserver.DefaultFixtures()
	about := fixtures.About[0]
	kv := storage.NewMemoryStore()
	store, err := theme.Load(context.Background(), kv, logging.NewNoOpLogger())
	require.NoError(t, err)

	return &harness{
		loader: &fakeLoader{snapshot: content.Snapshot{
			About:      &about,
			Abouts:     fixtures.About,
			Skills:     fixtures.Skills,
			Projects:   fixtures.Projects,
			Experience: fixtures.Experience,
			Errs:       map[string]error{},
		}},
		backend:   &fakeBackend{},
		completer: &fakeCompleter{replies: []string{"He builds data pipelines."}},
		kv:        kv,
		theme:     store,
		clipboard: &bytes.Buffer{},
	}
}

func (h *harness) deps() Deps {
	return Deps{
		Owner:     testOwner,
		Content:   h.loader,
		Contact:   h.backend,
		Interest:  h.backend,
		Completer: h.completer,
		Theme:     h.theme,
		Clipboard: h.clipboard,
		Now:       func() time.Time { return testNow },
	}
}

// model returns a model past the splash with content loaded.
func (h *harness) model(t *testing.T) Model {
	t.Helper()
	m := NewModel(context.Background(), h.deps())
	m = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = step(t, m, splashDoneMsg{})
	m = step(t, m, ContentLoadedMsg{Snapshot: h.loader.LoadAll(context.Background())})
	return m
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func press(t *testing.T, m Model, keys ...tea.KeyType) Model {
	t.Helper()
	for _, k := range keys {
		m = step(t, m, tea.KeyMsg{Type: k})
	}
	return m
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	return step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

// run executes cmd and any batched commands, returning the produced
// messages. Only use it for commands that do not sleep.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findMsg[T tea.Msg](t *testing.T, cmd tea.Cmd) T {
	t.Helper()
	for _, msg := range run(cmd) {
		if found, ok := msg.(T); ok {
			return found
		}
	}
	var zero T
	t.Fatalf("no %T produced", zero)
	return zero
}

func TestNewModelStartsOnSplash(t *testing.T) {
	h := newHarness(t)
	m := NewModel(context.Background(), h.deps())

	require.Equal(t, SectionHome, m.Section())
	require.False(t, m.SplashDone())
	require.False(t, m.Loaded())
	require.True(t, m.Styles().Dark)
	require.Equal(t, contact.StepIdentity, m.Wizard().Step())
	require.Equal(t, 1, m.Conversation().Len())
	require.False(t, m.Conversation().IsOpen())
}

func TestModelInitLoadsContent(t *testing.T) {
	h := newHarness(t)
	m := NewModel(context.Background(), h.deps())
	require.NotNil(t, m.Init())

	msg := loadContent(context.Background(), h.loader)()
	loaded, ok := msg.(ContentLoadedMsg)
	require.True(t, ok)
	require.Equal(t, 1, h.loader.calls)
	require.Len(t, loaded.Snapshot.Projects, 7)
}

func TestContentLoadGroundsChat(t *testing.T) {
	h := newHarness(t)
	m := h.model(t)

	require.True(t, m.Loaded())
	require.Equal(t, []string{portfolio.AllCategories, "Big Data", "Full Stack", "Backend", "AI"}, m.categories)
	require.Contains(t, m.Conversation().SystemPrompt(), "Streaming Fraud Monitor")
}

func TestLoadWithoutBackendReportsFailure(t *testing.T) {
	msg := loadContent(context.Background(), nil)()
	loaded := msg.(ContentLoadedMsg)
	require.Error(t, loaded.Snapshot.Err())
}

func TestThemeFollowsStore(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.kv.Set(context.Background(), theme.StorageKey, theme.Light))
	store, err := theme.Load(context.Background(), h.kv, logging.NewNoOpLogger())
	require.NoError(t, err)
	h.theme = store

	m := NewModel(context.Background(), h.deps())
	require.False(t, m.Styles().Dark)
	require.Equal(t, lightPalette, m.Styles().Palette)
}

func TestToastExpiresOnlyForItsOwnID(t *testing.T) {
	h := newHarness(t)
	m := h.model(t)

	m = step(t, m, ClipboardMsg{What: "Email"})
	require.Equal(t, components.ToastSuccess, m.Toast().Kind)
	first := m.toastID

	m = step(t, m, ClipboardMsg{Err: errors.New("no tty")})
	require.Equal(t, components.ToastError, m.Toast().Kind)

	m = step(t, m, toastExpiredMsg{ID: first})
	require.NotEmpty(t, m.Toast().Text)

	m = step(t, m, toastExpiredMsg{ID: m.toastID})
	require.Empty(t, m.Toast().Text)
}
