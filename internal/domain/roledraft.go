package domain

import (
	"sort"
	"strings"
)

// RoleDraft is the working set of role ids edited in the role-assignment
// flow. It is initialized from the member's current roles and edited only by
// explicit toggles; saving diffs the working set against the current set.
type RoleDraft struct {
	current []string
	working map[string]bool
}

// NewRoleDraft creates a draft seeded from the member's current role ids
func NewRoleDraft(currentIDs []string) *RoleDraft {
	d := &RoleDraft{}
	d.Reset(currentIDs)
	return d
}

// Reset re-seeds the working set from a fresh current set. Called whenever
// the member's roles are refetched while the draft is open.
func (d *RoleDraft) Reset(currentIDs []string) {
	d.current = append([]string(nil), currentIDs...)
	d.working = make(map[string]bool, len(currentIDs))
	for _, id := range currentIDs {
		d.working[id] = true
	}
}

// SetWorking replaces the working set wholesale, used when the edited set
// arrives fully formed rather than as a series of toggles.
func (d *RoleDraft) SetWorking(ids []string) {
	d.working = make(map[string]bool, len(ids))
	for _, id := range ids {
		d.working[id] = true
	}
}

// Toggle flips a role id in the working set
func (d *RoleDraft) Toggle(id string) {
	if d.working[id] {
		delete(d.working, id)
	} else {
		d.working[id] = true
	}
}

// Has reports whether a role id is in the working set
func (d *RoleDraft) Has(id string) bool {
	return d.working[id]
}

// WorkingIDs returns the sorted working set
func (d *RoleDraft) WorkingIDs() []string {
	ids := make([]string, 0, len(d.working))
	for id := range d.working {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// HasChanges reports whether the working set differs from the current set.
// The comparison is order-insensitive: both sides are sorted and serialized.
func (d *RoleDraft) HasChanges() bool {
	current := append([]string(nil), d.current...)
	sort.Strings(current)
	return strings.Join(d.WorkingIDs(), ",") != strings.Join(current, ",")
}

// Diff splits the draft into the role ids to assign and the ids to remove.
// Saving issues one assign/remove call per differing id; there is no bulk
// update endpoint.
func (d *RoleDraft) Diff() (toAssign, toRemove []string) {
	currentSet := make(map[string]bool, len(d.current))
	for _, id := range d.current {
		currentSet[id] = true
	}

	for _, id := range d.WorkingIDs() {
		if !currentSet[id] {
			toAssign = append(toAssign, id)
		}
	}

	current := append([]string(nil), d.current...)
	sort.Strings(current)
	for _, id := range current {
		if !d.working[id] {
			toRemove = append(toRemove, id)
		}
	}

	return toAssign, toRemove
}
