package events

import "quickopen/internal/logging"

type PaletteTracer struct{}

type QueryTracer struct{}

var (
	Palette = PaletteTracer{}
	Query   = QueryTracer{}
)

func (PaletteTracer) Open() {
	logging.Trace("palette.open", nil)
}

func (PaletteTracer) Close() {
	logging.Trace("palette.close", nil)
}

func (PaletteTracer) Cursor(cursor int) {
	logging.Trace("palette.cursor", map[string]interface{}{"cursor": cursor})
}

func (PaletteTracer) Activate(kind, key string) {
	logging.Trace("palette.activate", map[string]interface{}{"kind": kind, "key": key})
}

func (QueryTracer) Begin(query string, generation uint64, local int) {
	logging.Trace("query.begin", map[string]interface{}{
		"query":      query,
		"generation": generation,
		"local":      local,
	})
}

func (QueryTracer) Cleared() {
	logging.Trace("query.cleared", nil)
}

func (QueryTracer) Commit(generation uint64, total int) {
	logging.Trace("query.commit", map[string]interface{}{
		"generation": generation,
		"results":    total,
	})
}

func (QueryTracer) Stale(generation, current uint64) {
	logging.Trace("query.stale", map[string]interface{}{
		"generation": generation,
		"current":    current,
	})
}
