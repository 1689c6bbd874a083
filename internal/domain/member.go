package domain

import (
	"strings"
	"time"
)

// Member represents a church member. Role is the legacy single role string;
// the full role set lives in the per-church roles map.
type Member struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// MatchesSearch reports whether the member matches a case-insensitive
// substring search against name or email. An empty search matches everything.
func (m Member) MatchesSearch(search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(m.FullName), needle) ||
		strings.Contains(strings.ToLower(m.Email), needle)
}

// FilterMembers applies the search and role filters as an AND over the
// collection. An empty roleFilter matches all roles.
func FilterMembers(members []Member, search, roleFilter string) []Member {
	filtered := make([]Member, 0, len(members))
	for _, m := range members {
		if !m.MatchesSearch(search) {
			continue
		}
		if roleFilter != "" && m.Role != roleFilter {
			continue
		}
		filtered = append(filtered, m)
	}
	return filtered
}

// CountMembersByRole groups the unfiltered collection by its legacy role
// string. Filter chips show these totals regardless of the active filter.
func CountMembersByRole(members []Member) map[string]int {
	counts := make(map[string]int)
	for _, m := range members {
		counts[m.Role]++
	}
	return counts
}
