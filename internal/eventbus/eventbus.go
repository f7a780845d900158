// Package eventbus carries the in-process signals the palette consumes:
// surface reloads, view changes, and index rebuilds. Handlers are
// registered with Subscribe, which returns the matching unsubscribe so
// owners can tear down without leaking listeners.
package eventbus

import "sync"

// Type identifies a signal.
type Type string

const (
	// ViewChanged means the visible surface changed enough that the
	// target index should be rebuilt.
	ViewChanged Type = "view.changed"
	// SurfaceLoaded means the surface definition was (re)loaded.
	SurfaceLoaded Type = "surface.loaded"
	// IndexRebuilt means a new target index snapshot was swapped in.
	IndexRebuilt Type = "index.rebuilt"
)

// Event is a signal with an optional payload. Most subscribers only care
// about the occurrence, not the payload.
type Event struct {
	Type    Type
	Payload interface{}
}

// Handler consumes a published event.
type Handler func(Event)

// Bus is a minimal synchronous pub/sub hub. Publish runs handlers on the
// caller's goroutine, so handlers must be quick and non-blocking.
type Bus struct {
	mu       sync.Mutex
	nextID   int
	handlers map[Type]map[int]Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[Type]map[int]Handler)}
}

// Subscribe registers a handler for one event type and returns its
// unsubscribe function. Unsubscribing twice is harmless.
func (b *Bus) Subscribe(t Type, h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.handlers[t] == nil {
		b.handlers[t] = make(map[int]Handler)
	}
	id := b.nextID
	b.nextID++
	b.handlers[t][id] = h
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers[t], id)
	}
}

// Publish delivers the event to every handler subscribed to its type.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	handlers := make([]Handler, 0, len(b.handlers[e.Type]))
	for _, h := range b.handlers[e.Type] {
		handlers = append(handlers, h)
	}
	b.mu.Unlock()
	for _, h := range handlers {
		h(e)
	}
}
