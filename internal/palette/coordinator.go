package palette

import (
	"context"
	"strings"

	"quickopen/internal/logging/events"
	"quickopen/internal/remote"
	"quickopen/internal/target"
)

// MaxResults caps the committed unified result list.
const MaxResults = 15

// Searcher issues one remote query at a time, failing soft to an empty
// result set, and can abort whatever is in flight. The generation pairs
// cancellation with query recency: an older generation's call must never
// abort a newer one's request.
type Searcher interface {
	Search(ctx context.Context, gen uint64, query string) []remote.Result
	Cancel()
}

// IndexSource supplies the current local index snapshot.
type IndexSource interface {
	Index() []target.Target
}

// Coordinator fans a query out to the local index (synchronously) and the
// remote searcher (asynchronously) and commits only the newest
// generation's results. It is driven from the single UI update loop and
// is not safe for concurrent use.
type Coordinator struct {
	index   IndexSource
	remote  Searcher
	matcher target.Matcher

	generation uint64
	pending    []target.Target
	state      State
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithMatcher selects the local match mode.
func WithMatcher(m target.Matcher) CoordinatorOption {
	return func(c *Coordinator) { c.matcher = m }
}

// NewCoordinator wires the coordinator to its index source and remote
// searcher. Both are required; pass a no-op searcher when remote search
// is disabled.
func NewCoordinator(index IndexSource, remote Searcher, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{index: index, remote: remote}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State exposes the palette state for rendering and cursor navigation.
func (c *Coordinator) State() *State {
	return &c.state
}

// Begin starts a new query generation. Local matches are computed
// synchronously and held back until Commit merges them with the remote
// results. An empty (or whitespace) query clears the palette immediately
// and issues no remote request; runRemote is false in that case.
func (c *Coordinator) Begin(query string) (gen uint64, runRemote bool) {
	c.generation++
	c.state.Query = query

	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		c.pending = nil
		c.state.Results = nil
		c.state.Cursor = 0
		c.state.Loading = false
		c.remote.Cancel()
		events.Query.Cleared()
		return c.generation, false
	}

	c.pending = target.SearchWith(c.index.Index(), trimmed, c.matcher)
	c.state.Loading = true
	events.Query.Begin(trimmed, c.generation, len(c.pending))
	return c.generation, true
}

// Commit lands the remote results for a generation. Results belonging to
// a superseded generation are discarded without touching any state; that
// check, not request serialization, is what keeps commits in
// query-submission order. Reports whether the commit was applied.
func (c *Coordinator) Commit(gen uint64, remoteResults []remote.Result) bool {
	if gen != c.generation {
		events.Query.Stale(gen, c.generation)
		return false
	}

	merged := make([]Unified, 0, MaxResults)
	seen := make(map[string]struct{}, MaxResults)
	for _, t := range c.pending {
		if len(merged) == MaxResults {
			break
		}
		row := fromTarget(t)
		if _, dup := seen[row.DedupeKey]; dup {
			continue
		}
		seen[row.DedupeKey] = struct{}{}
		merged = append(merged, row)
	}
	for _, r := range remoteResults {
		if len(merged) == MaxResults {
			break
		}
		row := fromRemote(r)
		if _, dup := seen[row.DedupeKey]; dup {
			continue
		}
		seen[row.DedupeKey] = struct{}{}
		merged = append(merged, row)
	}

	c.state.Results = merged
	c.state.Cursor = 0
	c.state.Loading = false
	events.Query.Commit(gen, len(merged))
	return true
}

// Activate resolves the row under the cursor into its navigation effect
// and unconditionally closes out the palette state. Returns nil when
// there is nothing to activate; the palette then stays as it is.
func (c *Coordinator) Activate() Effect {
	row, ok := c.state.Current()
	if !ok {
		return nil
	}
	c.Close()
	return effectFor(row)
}

// Close clears the palette state, invalidates any in-flight generation,
// and aborts the outstanding remote request.
func (c *Coordinator) Close() {
	c.generation++
	c.pending = nil
	c.state.Clear()
	c.remote.Cancel()
}
