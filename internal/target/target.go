package target

import "strings"

// Target is a locally addressable, labeled control discovered on the host
// surface. Ref is only ever used to navigate; it never feeds display or
// matching.
type Target struct {
	ID         string
	Label      string
	GroupTitle string
	SearchText string
	Ref        Ref
}

// Ref locates a control on the surface.
type Ref struct {
	Section string
	Control string
}

// Key returns the stable navigation identity used for de-duplication
// against remote results.
func (r Ref) Key() string {
	return r.Section + "/" + r.Control
}

// Provider supplies the current set of addressable targets. Scan never
// fails: implementations return whatever they could collect and log any
// diagnostics themselves.
type Provider interface {
	Scan() []Target
}

// SearchText derives the matchable text for a target. It is computed once
// at index-build time, never per keystroke.
func SearchText(label, group string, aliases ...string) string {
	parts := make([]string, 0, 2+len(aliases))
	if label != "" {
		parts = append(parts, label)
	}
	if group != "" {
		parts = append(parts, group)
	}
	for _, alias := range aliases {
		if alias != "" {
			parts = append(parts, alias)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}
