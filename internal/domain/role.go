package domain

// Role is a church-level role assignable to members, many-to-many
type Role struct {
	ID           string `json:"id"`
	ChurchID     string `json:"church_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	IsSystemRole bool   `json:"is_system_role"`
}

// UserRolesMap maps a member id to the ids of their assigned roles
type UserRolesMap map[string][]string
