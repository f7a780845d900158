package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"quickopen/internal/logging/events"
	"quickopen/internal/palette"
)

// activateSelection resolves the row under the cursor into its navigation
// effect. With no results this is a no-op and the palette stays open;
// otherwise the palette always closes, whatever the effect was.
func (m *Model) activateSelection() tea.Cmd {
	effect := m.coord.Activate()
	if effect == nil {
		return nil
	}
	m.mode = ModeClosed
	m.queryPos = 0
	m.viewportOffset = 0
	m.queryCursor.Blur()
	events.Palette.Close()

	switch e := effect.(type) {
	case palette.FocusTarget:
		events.Palette.Activate("target", e.Target.Ref.Key())
		m.focusSection(e.Target.Ref.Section)
		ref := e.Target.Ref
		m.highlight = &ref
		m.highlightSeq++
		m.preview = nil
		return expireHighlightCmd(m.highlightSeq)
	case palette.OpenRemote:
		events.Palette.Activate("remote", e.Path)
		preview := e
		m.preview = &preview
		m.highlight = nil
	}
	return nil
}

// focusSection switches the host view to the section owning the target.
func (m *Model) focusSection(sectionID string) {
	for i, sec := range m.sections() {
		if sec.ID == sectionID {
			m.section = i
			return
		}
	}
}

// syncViewport keeps the palette cursor visible within the result rows
// that fit on screen.
func (m *Model) syncViewport() {
	st := m.coord.State()
	maxVisible := m.maxVisibleResults()
	if maxVisible <= 0 || len(st.Results) == 0 {
		m.viewportOffset = 0
		return
	}
	if st.Cursor < m.viewportOffset {
		m.viewportOffset = st.Cursor
	}
	if st.Cursor >= m.viewportOffset+maxVisible {
		m.viewportOffset = st.Cursor - maxVisible + 1
	}
	maxOffset := len(st.Results) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.viewportOffset > maxOffset {
		m.viewportOffset = maxOffset
	}
	if m.viewportOffset < 0 {
		m.viewportOffset = 0
	}
}
