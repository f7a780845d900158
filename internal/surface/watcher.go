package surface

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"quickopen/internal/eventbus"
	"quickopen/internal/logging"
)

// Watcher reloads the surface definition when its file changes on disk
// and publishes SurfaceLoaded plus ViewChanged so the index rebuilds.
// A reload that fails keeps the previous surface.
type Watcher struct {
	path     string
	provider *Provider
	bus      *eventbus.Bus

	fsw    *fsnotify.Watcher
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWatcher prepares a watcher for the surface file. Start must be
// called to begin watching.
func NewWatcher(path string, provider *Provider, bus *eventbus.Bus) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{path: path, provider: provider, bus: bus, ctx: ctx, cancel: cancel}
}

// Start begins watching the surface file's directory. Watching the
// directory rather than the file survives editors that replace the file
// on save.
func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("surface watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		fsw.Close()
		return fmt.Errorf("surface watcher: %w", err)
	}
	w.fsw = fsw

	w.wg.Add(1)
	go w.loop()
	return nil
}

// Stop cancels the watch loop and waits for it to exit.
func (w *Watcher) Stop() {
	w.cancel()
	if w.fsw != nil {
		w.fsw.Close()
	}
	w.wg.Wait()
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.reload()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logging.Error(fmt.Errorf("surface watcher: %w", err))
		}
	}
}

func (w *Watcher) reload() {
	s, err := Load(w.path)
	if err != nil {
		logging.Error(err)
		return
	}
	w.provider.Swap(s)
	w.bus.Publish(eventbus.Event{Type: eventbus.SurfaceLoaded, Payload: s})
	w.bus.Publish(eventbus.Event{Type: eventbus.ViewChanged})
}
