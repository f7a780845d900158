package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanFlattensInSectionOrder(t *testing.T) {
	s, err := Parse([]byte(sampleSurface))
	require.NoError(t, err)
	p := NewProvider(s)

	targets := p.Scan()
	require.Len(t, targets, 3)
	assert.Equal(t, "alerts/error-rate", targets[0].ID)
	assert.Equal(t, "alerts/latency", targets[1].ID)
	assert.Equal(t, "display/theme", targets[2].ID)
	assert.Equal(t, "Alerts", targets[0].GroupTitle)
	assert.Contains(t, targets[0].SearchText, "failure rate")
}

func TestScanIsIdempotent(t *testing.T) {
	s, err := Parse([]byte(sampleSurface))
	require.NoError(t, err)
	p := NewProvider(s)

	first := p.Scan()
	second := p.Scan()
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestScanSkipsMalformedControls(t *testing.T) {
	p := NewProvider(&Surface{Sections: []Section{{
		ID:    "s",
		Title: "S",
		Controls: []Control{
			{ID: "", Label: "No ID"},
			{ID: "no-label", Label: "  "},
			{ID: "ok", Label: "Fine"},
		},
	}}})

	targets := p.Scan()
	require.Len(t, targets, 1)
	assert.Equal(t, "s/ok", targets[0].ID)
}

func TestScanNilSurfaceReturnsNothing(t *testing.T) {
	p := NewProvider(nil)
	assert.Empty(t, p.Scan())
}

func TestSwapReplacesSnapshot(t *testing.T) {
	p := NewProvider(nil)
	p.Swap(&Surface{Sections: []Section{{
		ID:       "x",
		Title:    "X",
		Controls: []Control{{ID: "a", Label: "A"}},
	}}})

	targets := p.Scan()
	require.Len(t, targets, 1)
	assert.Equal(t, "x/a", targets[0].ID)
}
