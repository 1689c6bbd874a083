package domain

import "sort"

// SelectionMode is the state of the roster selection machine
type SelectionMode int

const (
	ModeBrowsing SelectionMode = iota
	ModeSelecting
)

// Selection is the bulk-selection state for a roster view. The acting user's
// own id is never selectable. Entering or leaving selection mode clears the
// selected set.
type Selection struct {
	mode     SelectionMode
	selfID   string
	selected map[string]bool
}

// NewSelection creates a selection in browsing mode for the given acting user
func NewSelection(selfID string) *Selection {
	return &Selection{
		mode:     ModeBrowsing,
		selfID:   selfID,
		selected: make(map[string]bool),
	}
}

// Mode returns the current selection mode
func (s *Selection) Mode() SelectionMode {
	return s.mode
}

// ToggleMode switches between browsing and selecting, clearing the set
func (s *Selection) ToggleMode() {
	if s.mode == ModeBrowsing {
		s.mode = ModeSelecting
	} else {
		s.mode = ModeBrowsing
	}
	s.selected = make(map[string]bool)
}

// Toggle flips membership of id in the selected set. It is a no-op while
// browsing and for the acting user's own id.
func (s *Selection) Toggle(id string) {
	if s.mode != ModeSelecting || id == s.selfID {
		return
	}
	if s.selected[id] {
		delete(s.selected, id)
	} else {
		s.selected[id] = true
	}
}

// Selected reports whether id is currently selected
func (s *Selection) Selected(id string) bool {
	return s.selected[id]
}

// Count returns the number of selected ids
func (s *Selection) Count() int {
	return len(s.selected)
}

// IDs returns a sorted snapshot of the selected ids for bulk actions
func (s *Selection) IDs() []string {
	ids := make([]string, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clear empties the selected set and returns to browsing mode. Called after
// a bulk action completes, regardless of individual call outcomes.
func (s *Selection) Clear() {
	s.mode = ModeBrowsing
	s.selected = make(map[string]bool)
}
