package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"quickopen/internal/eventbus"
	"quickopen/internal/palette"
	"quickopen/internal/remote"
)

// highlightDuration is how long an activated local target stays
// highlighted on the host surface.
const highlightDuration = 1500 * time.Millisecond

// remoteResultsMsg carries a finished remote search back into the update
// loop, stamped with the generation it belongs to.
type remoteResultsMsg struct {
	gen     uint64
	query   string
	results []remote.Result
}

func remoteSearchCmd(searcher palette.Searcher, gen uint64, query string) tea.Cmd {
	return func() tea.Msg {
		results := searcher.Search(context.Background(), gen, query)
		return remoteResultsMsg{gen: gen, query: query, results: results}
	}
}

// signalMsg wraps a bus event forwarded into the program.
type signalMsg struct {
	event eventbus.Event
}

func waitForSignal(ch <-chan eventbus.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return signalMsg{event: event}
	}
}

// highlightExpiredMsg clears a transient target highlight. seq guards
// against an old timer clearing a newer highlight.
type highlightExpiredMsg struct {
	seq int
}

func expireHighlightCmd(seq int) tea.Cmd {
	return tea.Tick(highlightDuration, func(time.Time) tea.Msg {
		return highlightExpiredMsg{seq: seq}
	})
}
