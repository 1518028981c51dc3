// Package ui implements the interactive render loop as a bubbletea program.
//
// The model is a pure function of the latest published snapshot plus local
// view state (current view, selection, help overlay). Update and View do no
// network calls, no ranking, and no file writes; the only shared-state
// access is a single atomic read of the snapshot store per frame.
package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nihcosnosaj/redwood-tui/internal/state"
	"github.com/nihcosnosaj/redwood-tui/pkg/geo"
)

// frameInterval is how often the UI re-reads the snapshot store and redraws.
const frameInterval = 150 * time.Millisecond

// View identifies the current screen layout.
type View int

const (
	// ViewDashboard lists all nearby aircraft, closest first.
	ViewDashboard View = iota

	// ViewSpotter shows a detail card for the selected aircraft.
	ViewSpotter
)

// Options configure the UI model.
type Options struct {
	// Store is the snapshot store the acquisition loop publishes into.
	Store *state.Store

	// Ref is the resolved reference coordinate, shown in the status bar.
	Ref geo.Coordinate

	// RadiusKM is the detection radius, shown in the status bar.
	RadiusKM float64

	// DefaultView selects the startup view: "spotter" or "dashboard".
	DefaultView string
}

// frameMsg drives the redraw cadence.
type frameMsg time.Time

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

type keyMap struct {
	Dashboard key.Binding
	Spotter   key.Binding
	Up        key.Binding
	Down      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Dashboard, k.Spotter, k.Up, k.Down, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Dashboard, k.Spotter},
		{k.Up, k.Down},
		{k.Help, k.Quit},
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Dashboard: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "dashboard"),
		),
		Spotter: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "spotter"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous aircraft"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next aircraft"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Model is the bubbletea model for the dashboard.
type Model struct {
	store    *state.Store
	ref      geo.Coordinate
	radiusKM float64

	snap     *state.Snapshot
	now      time.Time
	view     View
	selected int
	showHelp bool

	keys keyMap
	help help.Model
	spin spinner.Model

	width  int
	height int
}

// NewModel builds the initial model. The first frame renders from the
// store's pending snapshot; real data appears once the poller publishes.
func NewModel(opts Options) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))

	view := ViewDashboard
	if opts.DefaultView == "spotter" {
		view = ViewSpotter
	}

	return Model{
		store:    opts.Store,
		ref:      opts.Ref,
		radiusKM: opts.RadiusKM,
		snap:     opts.Store.Current(),
		now:      time.Now(),
		view:     view,
		keys:     defaultKeyMap(),
		help:     help.New(),
		spin:     sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(frameTick(), m.spin.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
		case key.Matches(msg, m.keys.Dashboard):
			m.view = ViewDashboard
		case key.Matches(msg, m.keys.Spotter):
			m.view = ViewSpotter
		case key.Matches(msg, m.keys.Down):
			if n := len(m.snap.Aircraft); n > 0 {
				m.selected = (m.selected + 1) % n
			}
		case key.Matches(msg, m.keys.Up):
			if n := len(m.snap.Aircraft); n > 0 {
				m.selected = (m.selected + n - 1) % n
			}
		}
		return m, nil

	case frameMsg:
		// The one shared-state read per frame; everything below renders
		// from this copy.
		m.snap = m.store.Current()
		m.now = time.Time(msg)
		m.clampSelection()
		return m, frameTick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

// clampSelection keeps the selection inside the list when the list shrinks
// between cycles.
func (m *Model) clampSelection() {
	if n := len(m.snap.Aircraft); n == 0 {
		m.selected = 0
	} else if m.selected >= n {
		m.selected = n - 1
	}
}
