package domain

import "time"

// TeamType is the closed set of known team types. Unknown values coming from
// the backend fall back to TeamTypeOther instead of failing at runtime.
type TeamType string

const (
	TeamTypeWorship     TeamType = "worship"
	TeamTypePrayer      TeamType = "prayer"
	TeamTypeHospitality TeamType = "hospitality"
	TeamTypeMedia       TeamType = "media"
	TeamTypeKids        TeamType = "kids"
	TeamTypeYouth       TeamType = "youth"
	TeamTypeOutreach    TeamType = "outreach"
	TeamTypeOther       TeamType = "other"
)

// ParseTeamType maps an arbitrary string to a known team type
func ParseTeamType(s string) TeamType {
	switch TeamType(s) {
	case TeamTypeWorship, TeamTypePrayer, TeamTypeHospitality, TeamTypeMedia,
		TeamTypeKids, TeamTypeYouth, TeamTypeOutreach:
		return TeamType(s)
	default:
		return TeamTypeOther
	}
}

// Team represents a ministry team within a church
type Team struct {
	ID          string    `json:"id"`
	ChurchID    string    `json:"church_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Type        TeamType  `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TeamRole is the role of a member within a team
type TeamRole string

const (
	TeamRoleAdmin  TeamRole = "admin"
	TeamRoleMember TeamRole = "member"
)

// TeamMember is the join between a user and a team
type TeamMember struct {
	ID       string   `json:"id"`
	TeamID   string   `json:"team_id"`
	UserID   string   `json:"user_id"`
	FullName string   `json:"full_name"`
	Email    string   `json:"email"`
	Role     TeamRole `json:"role"`
	Position string   `json:"position,omitempty"`
	JoinedAt time.Time `json:"joined_at"`
}
