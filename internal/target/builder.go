package target

import (
	"sync"
	"time"

	"quickopen/internal/logging/events"
)

// DefaultSettle is the pause between a rebuild trigger and the scan, so a
// surface that is still rendering settles before it is indexed.
const DefaultSettle = 250 * time.Millisecond

// Builder owns the current index snapshot and the settle-delay rebuild
// timer. At most one timer is pending; a new trigger resets it instead of
// stacking another rebuild.
type Builder struct {
	provider Provider
	settle   time.Duration
	onSwap   func(count int)

	mu    sync.Mutex
	index []Target
	timer *time.Timer
}

// NewBuilder wraps a provider. onSwap, when non-nil, runs after every
// snapshot swap with the new target count.
func NewBuilder(provider Provider, settle time.Duration, onSwap func(count int)) *Builder {
	if settle <= 0 {
		settle = DefaultSettle
	}
	return &Builder{provider: provider, settle: settle, onSwap: onSwap}
}

// Index returns the current snapshot. The slice is never mutated after the
// swap, so callers may read it without further synchronization.
func (b *Builder) Index() []Target {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.index
}

// Rebuild scans the provider immediately and swaps in the new snapshot.
func (b *Builder) Rebuild() int {
	scanned := b.provider.Scan()
	b.mu.Lock()
	b.index = scanned
	b.mu.Unlock()
	events.Index.Rebuilt(len(scanned))
	if b.onSwap != nil {
		b.onSwap(len(scanned))
	}
	return len(scanned)
}

// Schedule arms (or re-arms) the settle timer. Rapid repeated triggers
// collapse into a single rebuild once the surface has been quiet for the
// settle duration.
func (b *Builder) Schedule() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.settle, func() { b.Rebuild() })
	events.Index.Scheduled()
}

// Stop cancels any pending rebuild timer.
func (b *Builder) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}
