// Package tui implements folio's interactive terminal portfolio.
package tui

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rajshekhar/folio/internal/application/content"
	"github.com/rajshekhar/folio/internal/application/theme"
	"github.com/rajshekhar/folio/internal/domain/chat"
	"github.com/rajshekhar/folio/internal/domain/contact"
	"github.com/rajshekhar/folio/internal/domain/portfolio"
	"github.com/rajshekhar/folio/internal/infrastructure/logging"
	"github.com/rajshekhar/folio/internal/ports"
	"github.com/rajshekhar/folio/internal/tui/components"
)

const (
	defaultWidth  = 100
	defaultHeight = 32

	// projectPage is how many more projects "show more" reveals.
	projectPage = 6
	// scrollTipOffset is the scroll depth after which the back-to-top hint shows.
	scrollTipOffset = 10

	toastDuration         = 3 * time.Second
	interestToastDuration = 4 * time.Second
)

// ContentLoader fetches every section's content in one pass.
type ContentLoader interface {
	LoadAll(ctx context.Context) content.Snapshot
}

// ThemeStore is the persisted light/dark preference.
type ThemeStore interface {
	IsDarkMode() bool
	Toggle(ctx context.Context) error
	Register(a theme.Applier)
}

// Deps are the collaborators the TUI drives.
type Deps struct {
	Owner     portfolio.Owner
	Content   ContentLoader
	Contact   contact.Submitter
	Interest  contact.InterestSubmitter
	Completer chat.Completer
	Theme     ThemeStore
	Logger    ports.Logger
	// Clipboard receives OSC 52 sequences. Defaults to stderr.
	Clipboard io.Writer
	Now       func() time.Time
}

// Model contains the Bubbletea state for the portfolio TUI.
type Model struct {
	ctx    context.Context
	deps   Deps
	styles *StyleSheet
	keys   keyMap
	help   help.Model

	width  int
	height int

	splash     components.Splash
	splashDone bool
	loaded     bool
	snapshot   content.Snapshot
	typewriter components.Typewriter
	spinner    spinner.Model

	section  Section
	viewport viewport.Model

	categories   []string
	category     int
	projectLimit int

	wizard   *contact.Wizard
	interest *contact.InterestForm
	form     contactForm

	chat      *chat.Conversation
	chatInput textinput.Model

	toast   components.Toast
	toastID int

	quitting bool
}

// NewModel constructs the TUI for deps. ctx carries the session's
// correlation ID into every command.
func NewModel(ctx context.Context, deps Deps) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if deps.Logger == nil {
		deps.Logger = logging.NewNoOpLogger()
	}
	if deps.Clipboard == nil {
		deps.Clipboard = os.Stderr
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	logger := deps.Logger.With("layer", "presentation", "component", "tui")
	deps.Logger = logger

	dark := true
	if deps.Theme != nil {
		dark = deps.Theme.IsDarkMode()
	}
	sheet := NewStyleSheet(dark)
	if deps.Theme != nil {
		deps.Theme.Register(sheet)
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	chatInput := textinput.New()
	chatInput.Placeholder = "Ask me anything..."
	chatInput.CharLimit = 500

	roles := deps.Owner.Roles
	if len(roles) == 0 && deps.Owner.Title != "" {
		roles = []string{deps.Owner.Title}
	}

	m := Model{
		ctx:          ctx,
		deps:         deps,
		styles:       sheet,
		keys:         defaultKeyMap(),
		help:         help.New(),
		width:        defaultWidth,
		height:       defaultHeight,
		splash:       components.NewSplash(deps.Owner.DisplayName()),
		typewriter:   components.NewTypewriter(roles...),
		spinner:      spin,
		viewport:     viewport.New(defaultWidth, defaultHeight-chromeHeight),
		categories:   []string{portfolio.AllCategories},
		projectLimit: projectPage,
		wizard:       contact.NewWizard(deps.Contact, logger),
		interest:     contact.NewInterestForm(deps.Interest, logger),
		form:         newContactForm(),
		chat: chat.NewConversation(deps.Owner, deps.Completer,
			chat.WithLogger(logger), chat.WithClock(deps.Now)),
		chatInput: chatInput,
	}
	m.refresh()
	return m
}

// Init starts the splash, the content load and the animations.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		splashTick(),
		loadContent(m.ctx, m.deps.Content),
		m.spinner.Tick,
		textinput.Blink,
	}
	if d := m.typewriter.Delay(); d > 0 {
		cmds = append(cmds, typewriterTick(d))
	}
	return tea.Batch(cmds...)
}

// Section returns the page on screen.
func (m Model) Section() Section { return m.section }

// Loaded reports whether the content snapshot has arrived.
func (m Model) Loaded() bool { return m.loaded }

// SplashDone reports whether the loading screen has been dismissed.
func (m Model) SplashDone() bool { return m.splashDone }

// Wizard exposes the contact wizard state.
func (m Model) Wizard() *contact.Wizard { return m.wizard }

// Conversation exposes the chat state.
func (m Model) Conversation() *chat.Conversation { return m.chat }

// Toast returns the notification on screen, if any.
func (m Model) Toast() components.Toast { return m.toast }

// Styles returns the active styles.
func (m Model) Styles() Styles { return m.styles.Current() }

// ScrollOffset is the section viewport's vertical offset.
func (m Model) ScrollOffset() int { return m.viewport.YOffset }

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.viewport.Width = width
	m.viewport.Height = max(1, height-chromeHeight)
	m.help.Width = width
	m.form.resize(width)
	m.chatInput.Width = max(10, chatWidth(width)-8)
}

// refresh re-renders the section into the viewport, keeping the offset
// within range.
func (m *Model) refresh() {
	m.viewport.SetContent(m.renderSection())
}

func (m *Model) showToast(kind components.ToastKind, text string, d time.Duration) tea.Cmd {
	m.toastID++
	m.toast = components.Toast{Kind: kind, Text: text}
	return expireToast(m.toastID, d)
}

func (m *Model) showNotice(n contact.Notice, d time.Duration) tea.Cmd {
	switch n.Kind {
	case contact.NoticeSuccess:
		return m.showToast(components.ToastSuccess, n.Text, d)
	case contact.NoticeError:
		return m.showToast(components.ToastError, n.Text, toastDuration)
	default:
		return nil
	}
}

var _ tea.Model = Model{}
