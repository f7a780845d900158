package events

import "quickopen/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Shutdown() {
	logging.Trace("app.shutdown", nil)
}
