package surface

import (
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"quickopen/internal/logging/events"
	"quickopen/internal/target"
)

// Provider adapts a Surface snapshot into palette targets. The snapshot is
// swapped whole on reload, so a scan never observes a half-loaded surface.
type Provider struct {
	mu      sync.RWMutex
	surface *Surface
}

// NewProvider wraps an initial surface, which may be nil.
func NewProvider(s *Surface) *Provider {
	return &Provider{surface: s}
}

// Swap replaces the surface snapshot.
func (p *Provider) Swap(s *Surface) {
	p.mu.Lock()
	p.surface = s
	p.mu.Unlock()
}

// Surface returns the current snapshot.
func (p *Provider) Surface() *Surface {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.surface
}

// Scan walks every section and returns the flat target list in section
// order. It never fails: malformed controls are skipped with a trace
// diagnostic and the rest of the surface still indexes.
func (p *Provider) Scan() []target.Target {
	s := p.Surface()
	if s == nil {
		return nil
	}
	perSection := make([][]target.Target, len(s.Sections))
	g := new(errgroup.Group)
	for i, sec := range s.Sections {
		i, sec := i, sec
		g.Go(func() error {
			perSection[i] = scanSection(sec)
			return nil
		})
	}
	g.Wait() // section scans never error

	out := make([]target.Target, 0, 16)
	for _, batch := range perSection {
		out = append(out, batch...)
	}
	return out
}

func scanSection(sec Section) []target.Target {
	targets := make([]target.Target, 0, len(sec.Controls))
	for _, ctl := range sec.Controls {
		id := strings.TrimSpace(ctl.ID)
		label := strings.TrimSpace(ctl.Label)
		if id == "" || label == "" {
			events.Index.Skipped(sec.ID, ctl.ID)
			continue
		}
		ref := target.Ref{Section: sec.ID, Control: id}
		targets = append(targets, target.Target{
			ID:         ref.Key(),
			Label:      label,
			GroupTitle: sec.Title,
			SearchText: target.SearchText(label, sec.Title, ctl.Aliases...),
			Ref:        ref,
		})
	}
	return targets
}
