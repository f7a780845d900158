package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"quickopen/internal/palette"
)

type styledLine struct {
	text        string
	style       *lipgloss.Style
	prefix      string
	prefixStyle *lipgloss.Style
}

func render(style *lipgloss.Style, value string) string {
	if style == nil || value == "" {
		return value
	}
	return style.Render(value)
}

func (l styledLine) render(width int) string {
	text := l.text
	if width > 0 {
		avail := width - lipgloss.Width(l.prefix)
		if avail < 0 {
			avail = 0
		}
		if lipgloss.Width(text) > avail {
			text = truncate.StringWithTail(text, uint(avail), "…")
		}
	}
	return render(l.prefixStyle, l.prefix) + render(l.style, text)
}

func renderLines(lines []styledLine, width int) string {
	rows := make([]string, len(lines))
	for i, line := range lines {
		rows[i] = line.render(width)
	}
	return strings.Join(rows, "\n")
}

func limitHeight(lines []styledLine, height int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	return lines[:height]
}

// maxVisibleResults reports how many palette rows fit between the prompt
// and the status/footer chrome.
func (m *Model) maxVisibleResults() int {
	if m.height <= 0 {
		return palette.MaxResults
	}
	chrome := 6
	if m.showFooter {
		chrome += 2
	}
	visible := m.height - chrome
	if visible < 1 {
		visible = 1
	}
	return visible
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.mode == ModeOpen {
		return m.viewPalette()
	}
	return m.viewSurface()
}

// viewSurface renders the host settings screen: section tabs, the active
// section's controls, and any transient highlight or remote preview left
// behind by the last activation.
func (m *Model) viewSurface() string {
	s := m.provider.Surface()
	lines := make([]styledLine, 0, 16)

	title := "quickopen"
	if s != nil && s.Title != "" {
		title = s.Title
	}
	lines = append(lines, styledLine{text: title, style: styles.Header})

	sections := m.sections()
	if len(sections) == 0 {
		lines = append(lines, styledLine{text: "(no surface loaded)", style: styles.Error})
	} else {
		m.clampSection()
		tabs := make([]string, 0, len(sections))
		for i, sec := range sections {
			style := styles.SectionTab
			if i == m.section {
				style = styles.SectionTabActive
			}
			tabs = append(tabs, render(style, sec.Title))
		}
		lines = append(lines, styledLine{text: strings.Join(tabs, "  ")})
		lines = append(lines, styledLine{})

		sec := sections[m.section]
		lines = append(lines, styledLine{text: sec.Title, style: styles.GroupTitle})
		for _, ctl := range sec.Controls {
			if m.highlight != nil && m.highlight.Section == sec.ID && m.highlight.Control == ctl.ID {
				row := fmt.Sprintf("  %-32s %s", ctl.Label, ctl.Value)
				lines = append(lines, styledLine{text: row, style: styles.Highlight})
				continue
			}
			row := render(styles.ControlLabel, fmt.Sprintf("  %-32s ", ctl.Label)) +
				render(styles.ControlValue, ctl.Value)
			lines = append(lines, styledLine{text: row})
		}
	}

	if m.preview != nil {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{
			text:  fmt.Sprintf("Preview %s:%d-%d", m.preview.Path, m.preview.RangeStart, m.preview.RangeEnd),
			style: styles.Preview,
		})
	}

	lines = append(lines, styledLine{})
	lines = append(lines, styledLine{text: "ctrl+k search  tab/shift+tab sections  q quit", style: styles.Footer})
	lines = limitHeight(lines, m.height)
	return renderLines(lines, m.width)
}

// viewPalette renders the open palette: prompt, result rows, and status.
func (m *Model) viewPalette() string {
	st := m.coord.State()
	lines := make([]styledLine, 0, 16)
	lines = append(lines, styledLine{text: "Quick Open", style: styles.Header})
	lines = append(lines, styledLine{text: m.promptLine()})
	lines = append(lines, styledLine{})

	m.syncViewport()
	rows := st.Results
	start := 0
	if maxVisible := m.maxVisibleResults(); maxVisible > 0 && len(rows) > maxVisible {
		start = m.viewportOffset
		if start+maxVisible > len(rows) {
			start = len(rows) - maxVisible
		}
		rows = rows[start : start+maxVisible]
	}
	for i, row := range rows {
		lines = append(lines, m.buildResultLine(row, start+i == st.Cursor))
	}

	trimmed := strings.TrimSpace(st.Query)
	switch {
	case st.Loading:
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: m.spin.View() + "searching…", style: styles.Loading})
	case len(st.Results) == 0 && trimmed != "":
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: fmt.Sprintf("No matches for %q", trimmed), style: styles.Info})
	}

	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: "↑/↓ move  enter open  esc close  ctrl+u clear", style: styles.Footer})
	}
	lines = limitHeight(lines, m.height)
	return renderLines(lines, m.width)
}

func (m *Model) buildResultLine(row palette.Unified, selected bool) styledLine {
	badge := "⚙"
	text := row.Label()
	if row.Kind == palette.KindRemote {
		badge = "⇢"
		if row.Remote.RangeStart > 0 {
			text = fmt.Sprintf("%s:%d-%d", row.Remote.Path, row.Remote.RangeStart, row.Remote.RangeEnd)
		}
	}
	detail := row.Group()
	if selected {
		full := badge + " " + text
		if detail != "" {
			full = fmt.Sprintf("%s — %s", full, detail)
		}
		if m.width > 0 {
			if pad := m.width - 2 - lipgloss.Width(full); pad > 0 {
				full += strings.Repeat(" ", pad)
			}
		}
		return styledLine{
			prefix:      "▌ ",
			prefixStyle: styles.SelectedIndicator,
			text:        full,
			style:       styles.SelectedItem,
		}
	}
	full := render(styles.Badge, badge) + " " + render(styles.Item, text)
	if detail != "" {
		full += render(styles.ItemDetail, " — "+detail)
	}
	return styledLine{
		prefix:      "▌ ",
		prefixStyle: styles.ItemIndicator,
		text:        full,
	}
}

func (m *Model) promptLine() string {
	prompt := render(styles.FilterPrompt, "» ")
	runes := []rune(m.coord.State().Query)
	if len(runes) == 0 {
		placeholder := []rune("(type to search)")
		caret := m.renderQueryCursor(string(placeholder[0]), styles.FilterPlaceholder)
		return prompt + caret + render(styles.FilterPlaceholder, string(placeholder[1:]))
	}
	pos := m.queryPosClamped()
	before := render(styles.Filter, string(runes[:pos]))
	caretRune := " "
	if pos < len(runes) {
		caretRune = string(runes[pos])
	}
	caret := m.renderQueryCursor(caretRune, styles.Filter)
	var after string
	if pos < len(runes) {
		after = render(styles.Filter, string(runes[pos+1:]))
	}
	return prompt + before + caret + after
}

func (m *Model) renderQueryCursor(char string, textStyle *lipgloss.Style) string {
	if char == "" {
		char = " "
	}
	m.queryCursor.SetChar(char)
	if textStyle != nil {
		m.queryCursor.TextStyle = *textStyle
	}
	return m.queryCursor.View()
}
