package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/five82/garenne/internal/api"
	"github.com/five82/garenne/internal/session"
)

const appTitle = "🐇 SPI LOEN"

// View represents the current active view.
type View int

const (
	ViewLogin View = iota
	ViewDashboard
	ViewCreate
)

func (v View) String() string {
	switch v {
	case ViewDashboard:
		return "dashboard"
	case ViewCreate:
		return "create"
	default:
		return "login"
	}
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    api.Service
	Logger    zerolog.Logger
	ThemeName string
	PrefsPath string
	// Username prefills the login form.
	Username string
	// Now defaults to time.Now.
	Now func() time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	client    api.Service
	log       zerolog.Logger
	prefsPath string
	now       func() time.Time
	keys      keyMap

	// UI state
	theme  Theme
	view   View
	width  int
	height int
	ready  bool

	// Action state
	loading bool
	errMsg  string

	// Session
	username  string
	claims    session.Claims
	hasClaims bool

	// Data state
	fiches    []api.Fiche
	reload    reloadState
	selected  int
	searching bool
	search    textinput.Model

	// Detail pane
	detail    viewport.Model
	detailFor string

	// Forms
	login  loginForm
	create createForm

	// Overlays
	modal    Modal
	showHelp bool
}

// New creates a new Bubble Tea model. The initial view is the dashboard when
// the client already holds a token, the login form otherwise.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Prairie"
	}

	search := newInput("nom ou numéro d'arrivée", 64)

	m := Model{
		ctx:       ctx,
		client:    opts.Client,
		log:       opts.Logger,
		prefsPath: opts.PrefsPath,
		now:       now,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(themeName),
		view:      ViewLogin,
		username:  strings.TrimSpace(opts.Username),
		search:    search,
		detail:    viewport.New(0, 0),
		login:     newLoginForm(opts.Username),
		create:    newCreateForm(now()),
	}

	if token, ok := m.client.Token(); ok {
		m.view = ViewDashboard
		m.setClaims(token)
	}
	m.refreshDetail()
	return m
}

// CurrentView reports the active view.
func (m Model) CurrentView() View {
	return m.view
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.view == ViewDashboard {
		return requestReload
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case reloadRequestMsg:
		return m, m.startReload()

	case fichesLoadedMsg:
		return m.handleFichesLoaded(msg)

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case ficheCreatedMsg:
		return m.handleFicheCreated(msg)

	case confirmDeleteMsg:
		return m.handleConfirmDelete(msg)

	case ficheDeletedMsg:
		return m.handleFicheDeleted(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Chargement..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	if m.view == ViewLogin {
		return m.renderLogin()
	}
	return m.renderMain()
}

// handleKey routes keyboard input to overlays first, then to the active view.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		m.cancelReload()
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		modal, cmd, done := m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}

	switch m.view {
	case ViewLogin:
		return m.handleLoginKey(msg)
	case ViewCreate:
		return m.handleCreateKey(msg)
	default:
		return m.handleDashboardKey(msg)
	}
}

// logout forgets the session and returns to the login form. Safe to repeat.
func (m *Model) logout() {
	if err := m.client.Logout(); err != nil {
		m.log.Warn().Err(err).Msg("clear session token")
	}
	m.cancelReload()
	m.loading = false
	m.fiches = nil
	m.selected = 0
	m.claims, m.hasClaims = session.Claims{}, false
	m.modal = nil
	m.searching = false
	m.search.Blur()
	m.view = ViewLogin
	m.login = newLoginForm(m.username)
	m.refreshDetail()
}

// setError replaces the banner with err's message.
func (m *Model) setError(err error, fallback string) {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		msg = fallback
	}
	m.log.Warn().Err(err).Str("view", m.view.String()).Msg("action failed")
	m.errMsg = msg
}

// resize fits the detail viewport to the terminal.
func (m *Model) resize() {
	listWidth := m.width * ListPanePercent / 100
	m.detail.Width = max(m.width-listWidth-4, 10)
	m.detail.Height = max(m.contentHeight()-2, 1)
	m.refreshDetail()
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
