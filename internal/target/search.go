package target

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// MaxMatches caps how many local targets a single query may return.
const MaxMatches = 15

// Matcher selects how query text is compared against target search text.
type Matcher int

const (
	// MatchSubstring is the default case-insensitive substring match.
	MatchSubstring Matcher = iota
	// MatchFuzzy additionally admits fuzzy matches, keeping index order.
	MatchFuzzy
)

// Search returns up to MaxMatches targets matching the query, in index
// build order. An empty or whitespace-only query matches nothing; showing
// "everything" on an empty palette is deliberately avoided.
func Search(index []Target, query string) []Target {
	return SearchWith(index, query, MatchSubstring)
}

// SearchWith is Search with an explicit matcher. Results are never
// re-ranked: index build order is the display order.
func SearchWith(index []Target, query string, matcher Matcher) []Target {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil
	}
	matches := make([]Target, 0, MaxMatches)
	for _, t := range index {
		if len(matches) == MaxMatches {
			break
		}
		ok := strings.Contains(t.SearchText, needle)
		if !ok && matcher == MatchFuzzy {
			ok = fuzzy.MatchNormalizedFold(needle, t.SearchText)
		}
		if ok {
			matches = append(matches, t)
		}
	}
	return matches
}
