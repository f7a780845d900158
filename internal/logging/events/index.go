package events

import "quickopen/internal/logging"

type IndexTracer struct{}

type RemoteTracer struct{}

var (
	Index  = IndexTracer{}
	Remote = RemoteTracer{}
)

func (IndexTracer) Scheduled() {
	logging.Trace("index.scheduled", nil)
}

func (IndexTracer) Rebuilt(targets int) {
	logging.Trace("index.rebuilt", map[string]interface{}{"targets": targets})
}

func (IndexTracer) Skipped(section, control string) {
	logging.Trace("index.skipped", map[string]interface{}{"section": section, "control": control})
}

func (RemoteTracer) Request(query string) {
	logging.Trace("remote.request", map[string]interface{}{"query": query})
}

func (RemoteTracer) Results(query string, count int) {
	logging.Trace("remote.results", map[string]interface{}{"query": query, "count": count})
}

// Cancelled records a superseded request. Cancellation is expected during
// fast typing and is never reported through the error log.
func (RemoteTracer) Cancelled(query string) {
	logging.Trace("remote.cancelled", map[string]interface{}{"query": query})
}
