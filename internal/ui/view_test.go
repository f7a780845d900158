package ui

import (
	"strings"
	"testing"

	"quickopen/internal/palette"
	"quickopen/internal/remote"
)

func TestPromptPlaceholder(t *testing.T) {
	m, _ := newTestModel(t)
	m.handleKeyMsg(keyMsg("ctrl+k"))
	prompt := m.promptLine()
	if !strings.Contains(prompt, "type to search") {
		t.Fatalf("expected placeholder in prompt, got %q", prompt)
	}
}

func TestViewSurfaceShowsActiveSection(t *testing.T) {
	m, _ := newTestModel(t)
	out := m.View()
	if !strings.Contains(out, "Settings") {
		t.Fatalf("expected surface title, got %q", out)
	}
	if !strings.Contains(out, "Error rate threshold") {
		t.Fatalf("expected first section controls, got %q", out)
	}
	if strings.Contains(out, "Theme") {
		t.Fatalf("expected only the active section, got %q", out)
	}
}

func TestViewSurfaceShowsControlValues(t *testing.T) {
	m, _ := newTestModel(t)
	out := m.View()
	if !strings.Contains(out, "2%") {
		t.Fatalf("expected control value column, got %q", out)
	}
	if !strings.Contains(out, "250ms") {
		t.Fatalf("expected second control value, got %q", out)
	}
}

func TestViewSurfaceWithoutSurface(t *testing.T) {
	m, _ := newTestModel(t)
	m.provider.Swap(nil)
	out := m.View()
	if !strings.Contains(out, "(no surface loaded)") {
		t.Fatalf("expected missing-surface notice, got %q", out)
	}
}

func TestViewSurfaceShowsPreviewStrip(t *testing.T) {
	m, _ := newTestModel(t)
	m.preview = &palette.OpenRemote{Path: "docs/alerting.md", RangeStart: 3, RangeEnd: 9}
	out := m.View()
	if !strings.Contains(out, "docs/alerting.md:3-9") {
		t.Fatalf("expected preview strip, got %q", out)
	}
}

func TestViewPaletteNoMatches(t *testing.T) {
	m, _ := newTestModel(t)
	m.handleKeyMsg(keyMsg("ctrl+k"))
	gen, _ := m.coord.Begin("zzz")
	m.coord.Commit(gen, nil)
	out := m.View()
	if !strings.Contains(out, `No matches for "zzz"`) {
		t.Fatalf("expected no-match notice, got %q", out)
	}
}

func TestViewPaletteListsMergedRows(t *testing.T) {
	m, _ := newTestModel(t)
	m.handleKeyMsg(keyMsg("ctrl+k"))
	gen, _ := m.coord.Begin("rate")
	m.coord.Commit(gen, []remote.Result{{Path: "docs/alerting.md", RangeStart: 10, RangeEnd: 14}})
	out := m.View()
	if !strings.Contains(out, "Error rate threshold") {
		t.Fatalf("expected local row, got %q", out)
	}
	if !strings.Contains(out, "docs/alerting.md:10-14") {
		t.Fatalf("expected remote row with range, got %q", out)
	}
}

func TestViewPaletteLoadingIndicator(t *testing.T) {
	m, _ := newTestModel(t)
	m.handleKeyMsg(keyMsg("ctrl+k"))
	m.coord.Begin("err")
	out := m.View()
	if !strings.Contains(out, "searching…") {
		t.Fatalf("expected loading indicator, got %q", out)
	}
}

func TestMaxVisibleResultsTracksHeight(t *testing.T) {
	m, _ := newTestModel(t)
	m.height = 0
	if got := m.maxVisibleResults(); got != palette.MaxResults {
		t.Fatalf("expected full cap with unknown height, got %d", got)
	}
	m.height = 10
	if got := m.maxVisibleResults(); got <= 0 || got >= 10 {
		t.Fatalf("expected bounded visible rows, got %d", got)
	}
}
