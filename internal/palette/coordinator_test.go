package palette

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickopen/internal/remote"
	"quickopen/internal/target"
)

type fakeIndex struct {
	targets []target.Target
}

func (f *fakeIndex) Index() []target.Target { return f.targets }

type fakeSearcher struct {
	searches  []string
	cancelled int
	results   []remote.Result
}

func (f *fakeSearcher) Search(_ context.Context, _ uint64, query string) []remote.Result {
	f.searches = append(f.searches, query)
	return f.results
}

func (f *fakeSearcher) Cancel() { f.cancelled++ }

func newTarget(section, control, label string) target.Target {
	return target.Target{
		ID:         section + "/" + control,
		Label:      label,
		GroupTitle: section,
		SearchText: target.SearchText(label, section),
		Ref:        target.Ref{Section: section, Control: control},
	}
}

func TestBeginEmptyQueryClearsAndSkipsRemote(t *testing.T) {
	searcher := &fakeSearcher{}
	c := NewCoordinator(&fakeIndex{}, searcher)
	c.State().Results = []Unified{{DedupeKey: "old"}}
	c.State().Loading = true

	_, runRemote := c.Begin("   ")

	assert.False(t, runRemote)
	assert.Empty(t, c.State().Results)
	assert.False(t, c.State().Loading)
	assert.Empty(t, searcher.searches, "empty query must not issue a remote request")
	assert.Equal(t, 1, searcher.cancelled, "empty query aborts the in-flight request")
}

func TestBeginSetsLoadingAndReportsGeneration(t *testing.T) {
	idx := &fakeIndex{targets: []target.Target{newTarget("alerts", "rate", "Error rate threshold")}}
	c := NewCoordinator(idx, &fakeSearcher{})

	gen1, run1 := c.Begin("error")
	gen2, run2 := c.Begin("error rate")

	assert.True(t, run1)
	assert.True(t, run2)
	assert.Greater(t, gen2, gen1)
	assert.True(t, c.State().Loading)
}

func TestCommitDiscardsStaleGeneration(t *testing.T) {
	idx := &fakeIndex{targets: []target.Target{newTarget("alerts", "rate", "foo threshold")}}
	c := NewCoordinator(idx, &fakeSearcher{})

	genFoo, _ := c.Begin("foo")
	genBar, _ := c.Begin("bar")

	// foo's network call resolves last-in-flight but belongs to a
	// superseded generation: nothing it carries may ever land.
	applied := c.Commit(genFoo, []remote.Result{{ID: "1", Path: "foo.go"}})
	assert.False(t, applied)
	assert.Empty(t, c.State().Results)
	assert.True(t, c.State().Loading)

	applied = c.Commit(genBar, []remote.Result{{ID: "2", Path: "bar.go"}})
	require.True(t, applied)
	require.Len(t, c.State().Results, 1)
	assert.Equal(t, "bar.go", c.State().Results[0].Remote.Path)
	assert.False(t, c.State().Loading)
}

func TestCommitMergesLocalFirst(t *testing.T) {
	idx := &fakeIndex{targets: []target.Target{
		newTarget("alerts", "rate", "Error rate threshold"),
		newTarget("alerts", "latency", "Error latency budget"),
	}}
	c := NewCoordinator(idx, &fakeSearcher{})

	gen, _ := c.Begin("error")
	require.True(t, c.Commit(gen, []remote.Result{{ID: "1", Path: "errors.go"}}))

	results := c.State().Results
	require.Len(t, results, 3)
	assert.Equal(t, KindTarget, results[0].Kind)
	assert.Equal(t, KindTarget, results[1].Kind)
	assert.Equal(t, KindRemote, results[2].Kind)
	assert.Equal(t, 0, c.State().Cursor)
}

func TestCommitDeduplicatesByKeyKeepingLocal(t *testing.T) {
	local := newTarget("alerts", "rate", "Error rate threshold")
	local.Ref = target.Ref{Section: "docs", Control: "x"} // DedupeKey "docs/x"
	idx := &fakeIndex{targets: []target.Target{local}}
	c := NewCoordinator(idx, &fakeSearcher{})

	gen, _ := c.Begin("error")
	require.True(t, c.Commit(gen, []remote.Result{
		{ID: "1", Path: "docs/x"},
		{ID: "2", Path: "docs/y"},
	}))

	results := c.State().Results
	require.Len(t, results, 2)
	assert.Equal(t, KindTarget, results[0].Kind, "local entry wins the shared dedupe key")
	assert.Equal(t, "docs/x", results[0].DedupeKey)
	assert.Equal(t, "docs/y", results[1].DedupeKey)
}

func TestCommitTruncatesToCap(t *testing.T) {
	targets := make([]target.Target, 0, 10)
	for i := 0; i < 10; i++ {
		targets = append(targets, newTarget("s", fmt.Sprintf("c%d", i), fmt.Sprintf("shared %d", i)))
	}
	idx := &fakeIndex{targets: targets}
	c := NewCoordinator(idx, &fakeSearcher{})

	remoteResults := make([]remote.Result, 0, 10)
	for i := 0; i < 10; i++ {
		remoteResults = append(remoteResults, remote.Result{ID: fmt.Sprintf("r%d", i), Path: fmt.Sprintf("p%d.go", i)})
	}

	gen, _ := c.Begin("shared")
	require.True(t, c.Commit(gen, remoteResults))

	results := c.State().Results
	require.Len(t, results, MaxResults)
	for i := 0; i < 10; i++ {
		assert.Equal(t, KindTarget, results[i].Kind, "local rows fill the first slots")
	}
	for i := 10; i < MaxResults; i++ {
		assert.Equal(t, KindRemote, results[i].Kind)
	}
}

func TestCommitResetsCursor(t *testing.T) {
	idx := &fakeIndex{targets: []target.Target{
		newTarget("s", "a", "match one"),
		newTarget("s", "b", "match two"),
	}}
	c := NewCoordinator(idx, &fakeSearcher{})

	gen, _ := c.Begin("match")
	require.True(t, c.Commit(gen, nil))
	c.State().CursorDown()
	assert.Equal(t, 1, c.State().Cursor)

	gen, _ = c.Begin("match one")
	require.True(t, c.Commit(gen, nil))
	assert.Equal(t, 0, c.State().Cursor)
}

func TestActivateTargetProducesFocusEffectAndClears(t *testing.T) {
	idx := &fakeIndex{targets: []target.Target{newTarget("alerts", "rate", "Error rate threshold")}}
	searcher := &fakeSearcher{}
	c := NewCoordinator(idx, searcher)

	gen, _ := c.Begin("error")
	require.True(t, c.Commit(gen, nil))

	effect := c.Activate()
	focus, ok := effect.(FocusTarget)
	require.True(t, ok, "expected FocusTarget, got %T", effect)
	assert.Equal(t, "alerts", focus.Target.Ref.Section)
	assert.Empty(t, c.State().Results)
	assert.Empty(t, c.State().Query)
	assert.Equal(t, 0, c.State().Cursor)
}

func TestActivateRemoteProducesOpenEffect(t *testing.T) {
	c := NewCoordinator(&fakeIndex{}, &fakeSearcher{})
	gen, _ := c.Begin("foo")
	require.True(t, c.Commit(gen, []remote.Result{{ID: "1", Path: "a/b.go", RangeStart: 3, RangeEnd: 9}}))

	effect := c.Activate()
	open, ok := effect.(OpenRemote)
	require.True(t, ok, "expected OpenRemote, got %T", effect)
	assert.Equal(t, "a/b.go", open.Path)
	assert.Equal(t, 3, open.RangeStart)
	assert.Equal(t, 9, open.RangeEnd)
}

func TestActivateWithNoResultsIsNoOp(t *testing.T) {
	c := NewCoordinator(&fakeIndex{}, &fakeSearcher{})
	gen, _ := c.Begin("nothing")
	require.True(t, c.Commit(gen, nil))

	assert.Nil(t, c.Activate())
}

func TestCloseInvalidatesInFlightGeneration(t *testing.T) {
	idx := &fakeIndex{targets: []target.Target{newTarget("s", "a", "match")}}
	searcher := &fakeSearcher{}
	c := NewCoordinator(idx, searcher)

	gen, _ := c.Begin("match")
	c.Close()

	assert.False(t, c.Commit(gen, []remote.Result{{ID: "1", Path: "late.go"}}))
	assert.Empty(t, c.State().Results)
	assert.Equal(t, 1, searcher.cancelled)
}
