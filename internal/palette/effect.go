package palette

import "quickopen/internal/target"

// Effect is the single navigation side effect produced by activating a
// palette row. The host application decides how to render it.
type Effect interface {
	isEffect()
}

// FocusTarget asks the host to scroll to and transiently highlight a
// local control.
type FocusTarget struct {
	Target target.Target
}

// OpenRemote asks the host to open or preview remote content at a path
// and line range.
type OpenRemote struct {
	Path       string
	RangeStart int
	RangeEnd   int
}

func (FocusTarget) isEffect() {}
func (OpenRemote) isEffect()  {}

func effectFor(u Unified) Effect {
	if u.Kind == KindTarget {
		return FocusTarget{Target: u.Target}
	}
	return OpenRemote{
		Path:       u.Remote.Path,
		RangeStart: u.Remote.RangeStart,
		RangeEnd:   u.Remote.RangeEnd,
	}
}
