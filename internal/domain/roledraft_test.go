package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleDraft_NoChangesInitially(t *testing.T) {
	d := NewRoleDraft([]string{"r1", "r2"})

	assert.False(t, d.HasChanges())
	toAssign, toRemove := d.Diff()
	assert.Empty(t, toAssign)
	assert.Empty(t, toRemove)
}

func TestRoleDraft_ToggleTwiceIsNoChange(t *testing.T) {
	d := NewRoleDraft([]string{"r1"})

	d.Toggle("r2")
	assert.True(t, d.HasChanges())

	d.Toggle("r2")
	assert.False(t, d.HasChanges())
}

func TestRoleDraft_OrderInsensitiveComparison(t *testing.T) {
	d := NewRoleDraft([]string{"r2", "r1", "r3"})
	d.SetWorking([]string{"r3", "r2", "r1"})

	assert.False(t, d.HasChanges())
}

func TestRoleDraft_Diff(t *testing.T) {
	tests := []struct {
		name       string
		current    []string
		working    []string
		wantAssign []string
		wantRemove []string
	}{
		{
			name:       "Pure additions",
			current:    []string{"r1"},
			working:    []string{"r1", "r2", "r3"},
			wantAssign: []string{"r2", "r3"},
		},
		{
			name:       "Pure removals",
			current:    []string{"r1", "r2"},
			working:    []string{},
			wantRemove: []string{"r1", "r2"},
		},
		{
			name:       "Mixed",
			current:    []string{"r1", "r2"},
			working:    []string{"r2", "r3"},
			wantAssign: []string{"r3"},
			wantRemove: []string{"r1"},
		},
		{
			name:    "Identical sets",
			current: []string{"r1"},
			working: []string{"r1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewRoleDraft(tt.current)
			d.SetWorking(tt.working)

			toAssign, toRemove := d.Diff()
			assert.Equal(t, tt.wantAssign, toAssign)
			assert.Equal(t, tt.wantRemove, toRemove)
		})
	}
}

func TestRoleDraft_ResetDiscardsEdits(t *testing.T) {
	d := NewRoleDraft([]string{"r1"})
	d.Toggle("r2")
	assert.True(t, d.HasChanges())

	d.Reset([]string{"r1", "r5"})
	assert.False(t, d.HasChanges())
	assert.Equal(t, []string{"r1", "r5"}, d.WorkingIDs())
	assert.True(t, d.Has("r5"))
	assert.False(t, d.Has("r2"))
}
