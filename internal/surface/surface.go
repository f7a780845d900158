// Package surface models the host application's settings screen: an
// externally owned tree of sections containing labeled controls. The
// palette never mutates the surface; it only scans it into targets.
package surface

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Surface is the full settings tree, decoded from TOML.
type Surface struct {
	Title    string    `toml:"title"`
	Sections []Section `toml:"sections"`
}

// Section is one page of the settings screen.
type Section struct {
	ID       string    `toml:"id"`
	Title    string    `toml:"title"`
	Controls []Control `toml:"controls"`
}

// Control is a labeled, navigable setting within a section. Aliases are
// extra search terms that never show in the UI.
type Control struct {
	ID      string   `toml:"id"`
	Label   string   `toml:"label"`
	Value   string   `toml:"value"`
	Aliases []string `toml:"aliases"`
}

// Load reads and parses a surface definition file.
func Load(path string) (*Surface, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read surface file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a surface definition and validates the parts that would
// corrupt navigation if wrong. Cosmetic problems (empty labels, missing
// values) are left to the scanner, which skips them with a diagnostic.
func Parse(data []byte) (*Surface, error) {
	var s Surface
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse surface file: %w", err)
	}
	seen := make(map[string]struct{}, len(s.Sections))
	for _, sec := range s.Sections {
		id := strings.TrimSpace(sec.ID)
		if id == "" {
			return nil, fmt.Errorf("surface section %q has no id", sec.Title)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("duplicate surface section id %q", id)
		}
		seen[id] = struct{}{}
	}
	return &s, nil
}
