package palette

// State is the palette's visible state. The coordinator exclusively owns
// Results; navigation only ever moves Cursor within it.
type State struct {
	Query   string
	Results []Unified
	Cursor  int
	Loading bool
}

// CursorUp moves the cursor one row up, clamped at the first row.
// Reports whether the cursor moved.
func (s *State) CursorUp() bool {
	if len(s.Results) == 0 || s.Cursor <= 0 {
		return false
	}
	s.Cursor--
	return true
}

// CursorDown moves the cursor one row down, clamped at the last row.
// Reports whether the cursor moved.
func (s *State) CursorDown() bool {
	if len(s.Results) == 0 || s.Cursor >= len(s.Results)-1 {
		return false
	}
	s.Cursor++
	return true
}

// Current returns the row under the cursor, if any.
func (s *State) Current() (Unified, bool) {
	if len(s.Results) == 0 {
		return Unified{}, false
	}
	s.clampCursor()
	return s.Results[s.Cursor], true
}

// Clear resets query, results, cursor, and loading.
func (s *State) Clear() {
	s.Query = ""
	s.Results = nil
	s.Cursor = 0
	s.Loading = false
}

func (s *State) clampCursor() {
	if len(s.Results) == 0 {
		s.Cursor = 0
		return
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	}
	if s.Cursor >= len(s.Results) {
		s.Cursor = len(s.Results) - 1
	}
}
