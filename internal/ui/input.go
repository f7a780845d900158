package ui

import (
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"quickopen/internal/eventbus"
	"quickopen/internal/logging/events"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch m.mode {
	case ModeOpen:
		return m.handleOpenKey(keyMsg)
	default:
		return m.handleClosedKey(keyMsg)
	}
}

func (m *Model) handleClosedKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "ctrl+k":
		return m.openPalette()
	case "tab":
		m.moveSection(1)
	case "shift+tab":
		m.moveSection(-1)
	case "esc":
		m.preview = nil
		m.highlight = nil
	}
	return nil
}

func (m *Model) handleOpenKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "ctrl+k":
		// Already open: consume the hotkey so it has no second effect.
		return nil
	case "esc":
		m.closePalette()
		return nil
	case "enter":
		return m.activateSelection()
	case "up":
		if m.coord.State().CursorUp() {
			events.Palette.Cursor(m.coord.State().Cursor)
			m.syncViewport()
		}
		return nil
	case "down":
		if m.coord.State().CursorDown() {
			events.Palette.Cursor(m.coord.State().Cursor)
			m.syncViewport()
		}
		return nil
	case "ctrl+u":
		if m.coord.State().Query == "" {
			return nil
		}
		m.queryPos = 0
		return m.runQuery("")
	case "ctrl+a":
		m.queryPos = 0
		return nil
	case "ctrl+e":
		m.queryPos = len([]rune(m.coord.State().Query))
		return nil
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		return m.deleteQueryRune()
	case tea.KeyLeft:
		if m.queryPos > 0 {
			m.queryPos--
		}
		return nil
	case tea.KeyRight:
		if m.queryPos < len([]rune(m.coord.State().Query)) {
			m.queryPos++
		}
		return nil
	case tea.KeySpace:
		return m.insertQueryText(" ")
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return nil
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return nil
			}
		}
		return m.insertQueryText(string(msg.Runes))
	}
	return nil
}

func (m *Model) queryPosClamped() int {
	runes := []rune(m.coord.State().Query)
	pos := m.queryPos
	if pos < 0 {
		pos = 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}
	return pos
}

func (m *Model) insertQueryText(text string) tea.Cmd {
	if text == "" {
		return nil
	}
	runes := []rune(m.coord.State().Query)
	insert := []rune(text)
	pos := m.queryPosClamped()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	m.queryPos = pos + len(insert)
	return m.runQuery(string(updated))
}

func (m *Model) deleteQueryRune() tea.Cmd {
	runes := []rune(m.coord.State().Query)
	pos := m.queryPosClamped()
	if pos == 0 || len(runes) == 0 {
		return nil
	}
	updated := append(append([]rune(nil), runes[:pos-1]...), runes[pos:]...)
	m.queryPos = pos - 1
	return m.runQuery(string(updated))
}

// runQuery starts a new query generation. The remote leg only runs when
// the coordinator asks for it; an empty query clears the palette without
// ever leaving this function.
func (m *Model) runQuery(text string) tea.Cmd {
	gen, runRemote := m.coord.Begin(text)
	m.viewportOffset = 0
	if !runRemote {
		return nil
	}
	return tea.Batch(
		remoteSearchCmd(m.searcher, gen, strings.TrimSpace(text)),
		m.spin.Tick,
	)
}

func (m *Model) openPalette() tea.Cmd {
	m.mode = ModeOpen
	m.preview = nil
	m.queryPos = 0
	m.viewportOffset = 0
	events.Palette.Open()
	return m.queryCursor.Focus()
}

func (m *Model) closePalette() {
	m.coord.Close()
	m.mode = ModeClosed
	m.queryPos = 0
	m.viewportOffset = 0
	m.queryCursor.Blur()
	events.Palette.Close()
}

func (m *Model) moveSection(delta int) {
	sections := m.sections()
	if len(sections) == 0 {
		return
	}
	m.section = (m.section + delta + len(sections)) % len(sections)
	m.bus.Publish(eventbus.Event{Type: eventbus.ViewChanged})
}
