// Package palette holds the query coordination engine: the unified result
// model, the palette state machine, and the generation-stamped coordinator
// that keeps fast typists from ever seeing stale results.
package palette

import (
	"quickopen/internal/remote"
	"quickopen/internal/target"
)

// Kind discriminates the two result sources.
type Kind int

const (
	// KindTarget is a locally addressable control from the surface index.
	KindTarget Kind = iota
	// KindRemote is a hit from the remote content index.
	KindRemote
)

// Unified is a single palette row sourced from either the local target
// index or the remote content index. DedupeKey is the row's stable
// identity: a target's navigation key, or a remote result's path.
type Unified struct {
	Kind      Kind
	DedupeKey string
	Target    target.Target // set when Kind == KindTarget
	Remote    remote.Result // set when Kind == KindRemote
}

// Label returns the display text for the row.
func (u Unified) Label() string {
	if u.Kind == KindTarget {
		return u.Target.Label
	}
	return u.Remote.Path
}

// Group returns the secondary display text: the owning section for a
// target, or the snippet for a remote hit.
func (u Unified) Group() string {
	if u.Kind == KindTarget {
		return u.Target.GroupTitle
	}
	return u.Remote.Snippet
}

func fromTarget(t target.Target) Unified {
	return Unified{Kind: KindTarget, DedupeKey: t.Ref.Key(), Target: t}
}

func fromRemote(r remote.Result) Unified {
	return Unified{Kind: KindRemote, DedupeKey: r.Path, Remote: r}
}
