package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"quickopen/internal/eventbus"
	"quickopen/internal/logging/events"
	"quickopen/internal/palette"
	"quickopen/internal/remote"
	"quickopen/internal/surface"
	"quickopen/internal/target"
	"quickopen/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	SurfacePath string
	Endpoint    string
	Settle      time.Duration
	RemoteLimit int
	Fuzzy       bool
	Width       int
	Height      int
	ShowFooter  bool
}

// noopSearcher satisfies the remote leg when no endpoint is configured;
// every query resolves to local results only.
type noopSearcher struct{}

func (noopSearcher) Search(context.Context, uint64, string) []remote.Result { return nil }
func (noopSearcher) Cancel() {}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	s, err := surface.Load(cfg.SurfacePath)
	if err != nil {
		return fmt.Errorf("load surface: %w", err)
	}

	bus := eventbus.NewBus()
	provider := surface.NewProvider(s)
	builder := target.NewBuilder(provider, cfg.Settle, func(count int) {
		bus.Publish(eventbus.Event{Type: eventbus.IndexRebuilt, Payload: count})
	})
	defer builder.Stop()

	offView := bus.Subscribe(eventbus.ViewChanged, func(eventbus.Event) {
		builder.Schedule()
	})
	defer offView()

	// Signals feed the UI's waitForSignal command. The bus publishes on
	// the caller's goroutine, so sends must never block.
	signals := make(chan eventbus.Event, 16)
	forward := func(evt eventbus.Event) {
		select {
		case signals <- evt:
		default:
		}
	}
	offLoaded := bus.Subscribe(eventbus.SurfaceLoaded, forward)
	defer offLoaded()
	offRebuilt := bus.Subscribe(eventbus.IndexRebuilt, forward)
	defer offRebuilt()

	var searcher palette.Searcher = noopSearcher{}
	if cfg.Endpoint != "" {
		opts := []remote.Option{}
		if cfg.RemoteLimit > 0 {
			opts = append(opts, remote.WithLimit(cfg.RemoteLimit))
		}
		searcher = remote.NewClient(cfg.Endpoint, opts...)
	}
	defer searcher.Cancel()

	coordOpts := []palette.CoordinatorOption{}
	if cfg.Fuzzy {
		coordOpts = append(coordOpts, palette.WithMatcher(target.MatchFuzzy))
	}
	coord := palette.NewCoordinator(builder, searcher, coordOpts...)

	watcher := surface.NewWatcher(cfg.SurfacePath, provider, bus)
	if err := watcher.Start(); err != nil {
		return fmt.Errorf("watch surface: %w", err)
	}
	defer watcher.Stop()

	model := ui.NewModel(coord, searcher, builder, provider, bus, signals, cfg.Width, cfg.Height, cfg.ShowFooter)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	events.App.Shutdown()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
