package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testRoster() []Member {
	return []Member{
		{ID: "u1", FullName: "Anna Meyer", Email: "anna@example.com", Role: "admin"},
		{ID: "u2", FullName: "Ben Osei", Email: "ben@example.com", Role: "member"},
		{ID: "u3", FullName: "Carla Annandale", Email: "carla@church.org", Role: "member"},
		{ID: "u4", FullName: "Dmitri Volkov", Email: "dmitri@example.com", Role: "leader"},
	}
}

func TestFilterMembers(t *testing.T) {
	tests := []struct {
		name       string
		search     string
		roleFilter string
		wantIDs    []string
	}{
		{
			name:    "No filters returns everyone",
			wantIDs: []string{"u1", "u2", "u3", "u4"},
		},
		{
			name:    "Search matches name case-insensitively",
			search:  "ANNA",
			wantIDs: []string{"u1", "u3"},
		},
		{
			name:    "Search matches email",
			search:  "church.org",
			wantIDs: []string{"u3"},
		},
		{
			name:       "Role filter alone",
			roleFilter: "member",
			wantIDs:    []string{"u2", "u3"},
		},
		{
			name:       "Search and role filter combine as AND",
			search:     "anna",
			roleFilter: "member",
			wantIDs:    []string{"u3"},
		},
		{
			name:    "No matches yields empty non-nil slice",
			search:  "zzz",
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := FilterMembers(testRoster(), tt.search, tt.roleFilter)

			gotIDs := make([]string, 0, len(filtered))
			for _, m := range filtered {
				gotIDs = append(gotIDs, m.ID)
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
			assert.NotNil(t, filtered)
		})
	}
}

func TestCountMembersByRole(t *testing.T) {
	counts := CountMembersByRole(testRoster())

	assert.Equal(t, 1, counts["admin"])
	assert.Equal(t, 2, counts["member"])
	assert.Equal(t, 1, counts["leader"])
	assert.Len(t, counts, 3)
}

func TestCountMembersByRole_IgnoresFilters(t *testing.T) {
	// Counts are always computed over the unfiltered collection; a filtered
	// view must not change them.
	all := testRoster()
	filtered := FilterMembers(all, "anna", "")

	assert.Len(t, filtered, 2)
	assert.Equal(t, CountMembersByRole(all), map[string]int{"admin": 1, "member": 2, "leader": 1})
}
