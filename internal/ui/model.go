package ui

import (
	"reflect"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"quickopen/internal/eventbus"
	"quickopen/internal/palette"
	"quickopen/internal/surface"
	"quickopen/internal/target"
	"quickopen/internal/theme"
)

// Mode is the modal lifecycle state: the palette is either closed (host
// surface visible) or open (query box focused).
type Mode int

const (
	ModeClosed Mode = iota
	ModeOpen
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Model implements the Bubble Tea model for the quick-open palette and
// its host settings surface.
type Model struct {
	coord    *palette.Coordinator
	searcher palette.Searcher
	builder  *target.Builder
	provider *surface.Provider
	bus      *eventbus.Bus
	signals  <-chan eventbus.Event

	mode        Mode
	section     int
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool

	queryPos    int
	queryCursor cursor.Model
	spin        spinner.Model

	highlight      *target.Ref
	highlightSeq   int
	preview        *palette.OpenRemote
	viewportOffset int

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI state around an already-wired coordinator.
func NewModel(coord *palette.Coordinator, searcher palette.Searcher, builder *target.Builder, provider *surface.Provider, bus *eventbus.Bus, signals <-chan eventbus.Event, width, height int, showFooter bool) *Model {
	m := &Model{
		coord:      coord,
		searcher:   searcher,
		builder:    builder,
		provider:   provider,
		bus:        bus,
		signals:    signals,
		mode:       ModeClosed,
		showFooter: showFooter,
	}
	if width > 0 {
		m.width = width
		m.fixedWidth = true
	}
	if height > 0 {
		m.height = height
		m.fixedHeight = true
	}

	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = *styles.Cursor
	}
	if styles.Filter != nil {
		c.TextStyle = *styles.Filter
	}
	c.SetChar(" ")
	m.queryCursor = c

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	if styles.Loading != nil {
		sp.Style = *styles.Loading
	}
	m.spin = sp

	m.registerHandlers()
	return m
}

// Init schedules the initial index build (behind the settle delay, so the
// surface finishes its own first render) and starts listening for signals.
func (m *Model) Init() tea.Cmd {
	m.builder.Schedule()
	return waitForSignal(m.signals)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if m.mode == ModeOpen {
		var cmd tea.Cmd
		m.queryCursor, cmd = m.queryCursor.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):          m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):   m.handleWindowSizeMsg,
		reflect.TypeOf(remoteResultsMsg{}):    m.handleRemoteResultsMsg,
		reflect.TypeOf(signalMsg{}):           m.handleSignalMsg,
		reflect.TypeOf(highlightExpiredMsg{}): m.handleHighlightExpiredMsg,
		reflect.TypeOf(spinner.TickMsg{}):     m.handleSpinnerTickMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = size.Width
	}
	if !m.fixedHeight {
		m.height = size.Height
	}
	return nil
}

func (m *Model) handleRemoteResultsMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(remoteResultsMsg)
	if !ok {
		return nil
	}
	// A stale generation is discarded inside Commit; nothing else to do.
	if m.coord.Commit(res.gen, res.results) {
		m.viewportOffset = 0
	}
	return nil
}

func (m *Model) handleSignalMsg(msg tea.Msg) tea.Cmd {
	sig, ok := msg.(signalMsg)
	if !ok {
		return nil
	}
	if sig.event.Type == eventbus.SurfaceLoaded {
		m.clampSection()
	}
	return waitForSignal(m.signals)
}

func (m *Model) handleHighlightExpiredMsg(msg tea.Msg) tea.Cmd {
	expired, ok := msg.(highlightExpiredMsg)
	if !ok {
		return nil
	}
	if expired.seq == m.highlightSeq {
		m.highlight = nil
	}
	return nil
}

func (m *Model) handleSpinnerTickMsg(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(spinner.TickMsg)
	if !ok {
		return nil
	}
	if m.mode != ModeOpen || !m.coord.State().Loading {
		return nil
	}
	var cmd tea.Cmd
	m.spin, cmd = m.spin.Update(tick)
	return cmd
}

func (m *Model) sections() []surface.Section {
	s := m.provider.Surface()
	if s == nil {
		return nil
	}
	return s.Sections
}

func (m *Model) clampSection() {
	sections := m.sections()
	if len(sections) == 0 {
		m.section = 0
		return
	}
	if m.section >= len(sections) {
		m.section = len(sections) - 1
	}
	if m.section < 0 {
		m.section = 0
	}
}
