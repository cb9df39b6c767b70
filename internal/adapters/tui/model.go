// Package tui provides the interactive zone explorer.
package tui

import (
	"context"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/waypoint/internal/core/domain"
	"go.trai.ch/waypoint/internal/engine/loader"
	"go.trai.ch/waypoint/internal/ui/style"
)

// Router commits zone selections.
type Router interface {
	Sync(ctx context.Context, candidate domain.ZoneKey, enabled bool)
}

// Zones is the bundle loader cache as seen by the explorer.
type Zones interface {
	State(key domain.ZoneKey) loader.EntryState
	GetOrLoad(ctx context.Context, key domain.ZoneKey) *loader.Future[*domain.Bundle]
}

// Active is the active-zone store as seen by the explorer.
type Active interface {
	ActiveKey() domain.ZoneKey
	Invalidate()
}

// Focus tracks terminal focus. It is the ports.Host the router sees while
// the explorer runs: always available, visible while focused.
type Focus struct {
	hidden atomic.Bool
}

// Available reports true: the explorer is a client context.
func (f *Focus) Available() bool { return true }

// Visible reports whether the terminal last reported focus.
func (f *Focus) Visible() bool { return !f.hidden.Load() }

func (f *Focus) set(visible bool) { f.hidden.Store(!visible) }

// Model is the explorer state.
type Model struct {
	Keys        []domain.ZoneKey
	SelectedIdx int
	// Routing is passed to the router as its enabled flag.
	Routing   bool
	ActiveKey domain.ZoneKey
	Bundle    *domain.Bundle
	BundleErr error
	// Failures holds the last load error per zone until the zone loads again.
	Failures  map[domain.ZoneKey]string
	LastEvent string
	Width     int

	ctx    context.Context
	router Router
	zones  Zones
	active Active
	focus  *Focus

	keys    keyMap
	help    help.Model
	spinner spinner.Model
}

// NewModel creates an explorer over keys. Routing starts enabled.
// A nil focus starts a fresh one.
func NewModel(
	ctx context.Context,
	keys []domain.ZoneKey,
	router Router,
	zones Zones,
	active Active,
	focus *Focus,
) *Model {
	if focus == nil {
		focus = &Focus{}
	}

	return &Model{
		Keys:     keys,
		Routing:  true,
		Failures: make(map[domain.ZoneKey]string),
		ctx:      ctx,
		router:   router,
		zones:    zones,
		active:   active,
		focus:    focus,
		keys:     defaultKeyMap(),
		help:     help.New(),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(style.Yellow)),
		),
	}
}

// Visible reports whether the terminal last reported focus.
func (m *Model) Visible() bool {
	return m.focus.Visible()
}

// Init starts the spinner and draws the current active zone.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg { return MsgRedraw{} },
	)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.help.Width = msg.Width

	case tea.FocusMsg:
		m.focus.set(true)

	case tea.BlurMsg:
		m.focus.set(false)

	case MsgRedraw:
		m.ActiveKey = m.active.ActiveKey()
		m.Bundle = nil
		m.BundleErr = nil
		if m.ActiveKey.IsZero() {
			return m, nil
		}
		return m, m.awaitBundle(m.ActiveKey)

	case MsgBundleLoaded:
		if msg.Key == m.ActiveKey {
			m.Bundle = msg.Bundle
			m.BundleErr = msg.Err
		}

	case MsgActivity:
		m.handleActivity(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.SelectedIdx > 0 {
			m.SelectedIdx--
		}
	case key.Matches(msg, m.keys.Down):
		if m.SelectedIdx < len(m.Keys)-1 {
			m.SelectedIdx++
		}
	case key.Matches(msg, m.keys.Routing):
		m.Routing = !m.Routing
	case key.Matches(msg, m.keys.Visit):
		if m.SelectedIdx < len(m.Keys) {
			return m, m.visit(m.Keys[m.SelectedIdx])
		}
	}
	return m, nil
}

func (m *Model) handleActivity(msg MsgActivity) {
	subject := domain.ZoneKey(msg.Subject)
	switch {
	case !msg.Done:
		m.LastEvent = msg.Operation + " " + msg.Subject
	case msg.Err != nil:
		m.Failures[subject] = msg.Err.Error()
		m.LastEvent = msg.Operation + " " + msg.Subject + " failed"
	default:
		delete(m.Failures, subject)
		m.LastEvent = msg.Operation + " " + msg.Subject + " done"
	}
}

// visit routes to key and asks the host to redraw. It runs as a command so
// that the redraw message can be delivered to the running program.
func (m *Model) visit(k domain.ZoneKey) tea.Cmd {
	ctx, router, active, routing := m.ctx, m.router, m.active, m.Routing
	return func() tea.Msg {
		router.Sync(ctx, k, routing)
		active.Invalidate()
		return nil
	}
}

func (m *Model) awaitBundle(k domain.ZoneKey) tea.Cmd {
	ctx, zones := m.ctx, m.zones
	return func() tea.Msg {
		b, err := zones.GetOrLoad(ctx, k).Wait(ctx)
		return MsgBundleLoaded{Key: k, Bundle: b, Err: err}
	}
}
