package domain

import "time"

// GroupRole is the role of a member within a team group
type GroupRole string

const (
	GroupRoleLeader GroupRole = "leader"
	GroupRoleMember GroupRole = "member"
)

// TeamGroup is a sub-group within a team. A team member may belong to at
// most one group per team; the check lives in the team member repository.
type TeamGroup struct {
	ID          string    `json:"id"`
	TeamID      string    `json:"team_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TeamGroupMember is the join between a user and a team group
type TeamGroupMember struct {
	ID       string    `json:"id"`
	GroupID  string    `json:"group_id"`
	UserID   string    `json:"user_id"`
	FullName string    `json:"full_name"`
	Role     GroupRole `json:"role"`
	Position string    `json:"position,omitempty"`
	JoinedAt time.Time `json:"joined_at"`
}
