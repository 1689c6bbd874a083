package repository

import (
	"context"
	"fmt"

	"chms-be/internal/domain"
	"chms-be/pkg/database"

	"github.com/jackc/pgx/v5"
)

type GroupRepository struct {
	db *database.PostgresDB
}

func NewGroupRepository(db *database.PostgresDB) *GroupRepository {
	return &GroupRepository{db: db}
}

// ListByTeam returns all groups of a team
func (r *GroupRepository) ListByTeam(ctx context.Context, teamID string) ([]domain.TeamGroup, error) {
	query := `
		SELECT id, team_id, name, COALESCE(description, ''), created_at
		FROM team_groups
		WHERE team_id = $1
		ORDER BY name
	`

	rows, err := r.db.ReadPool.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	groups := make([]domain.TeamGroup, 0)
	for rows.Next() {
		var g domain.TeamGroup
		if err := rows.Scan(&g.ID, &g.TeamID, &g.Name, &g.Description, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}

	return groups, rows.Err()
}

// GetByID returns a group, or nil when absent
func (r *GroupRepository) GetByID(ctx context.Context, groupID string) (*domain.TeamGroup, error) {
	query := `
		SELECT id, team_id, name, COALESCE(description, ''), created_at
		FROM team_groups
		WHERE id = $1
	`

	var g domain.TeamGroup
	err := r.db.ReadPool.QueryRow(ctx, query, groupID).Scan(
		&g.ID, &g.TeamID, &g.Name, &g.Description, &g.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return &g, nil
}

// Create inserts a new group
func (r *GroupRepository) Create(ctx context.Context, group *domain.TeamGroup) error {
	query := `
		INSERT INTO team_groups (team_id, name, description)
		VALUES ($1, $2, NULLIF($3, ''))
		RETURNING id, created_at
	`

	err := r.db.Pool.QueryRow(ctx, query, group.TeamID, group.Name, group.Description).
		Scan(&group.ID, &group.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

// Update updates a group's editable fields
func (r *GroupRepository) Update(ctx context.Context, group *domain.TeamGroup) error {
	query := `UPDATE team_groups SET name = $2, description = NULLIF($3, '') WHERE id = $1`

	if _, err := r.db.Pool.Exec(ctx, query, group.ID, group.Name, group.Description); err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}
	return nil
}

// Delete removes a group; its memberships cascade
func (r *GroupRepository) Delete(ctx context.Context, groupID string) error {
	if _, err := r.db.Pool.Exec(ctx, `DELETE FROM team_groups WHERE id = $1`, groupID); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}

// ListMembers returns all members of a group
func (r *GroupRepository) ListMembers(ctx context.Context, groupID string) ([]domain.TeamGroupMember, error) {
	query := `
		SELECT tgm.id, tgm.group_id, tgm.user_id, u.full_name,
		       tgm.role, COALESCE(tgm.position, ''), tgm.joined_at
		FROM team_group_members tgm
		JOIN users u ON u.id = tgm.user_id
		WHERE tgm.group_id = $1
		ORDER BY u.full_name
	`

	rows, err := r.db.ReadPool.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}
	defer rows.Close()

	members := make([]domain.TeamGroupMember, 0)
	for rows.Next() {
		var m domain.TeamGroupMember
		var role string
		if err := rows.Scan(&m.ID, &m.GroupID, &m.UserID, &m.FullName, &role, &m.Position, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		m.Role = domain.GroupRole(role)
		members = append(members, m)
	}

	return members, rows.Err()
}

// AddMember inserts a group membership
func (r *GroupRepository) AddMember(ctx context.Context, member *domain.TeamGroupMember) error {
	query := `
		INSERT INTO team_group_members (group_id, user_id, role, position)
		VALUES ($1, $2, $3, NULLIF($4, ''))
		RETURNING id, joined_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		member.GroupID, member.UserID, string(member.Role), member.Position,
	).Scan(&member.ID, &member.JoinedAt)
	if err != nil {
		return fmt.Errorf("failed to add group member: %w", err)
	}
	return nil
}

// RemoveMember deletes a group membership
func (r *GroupRepository) RemoveMember(ctx context.Context, groupID, userID string) error {
	query := `DELETE FROM team_group_members WHERE group_id = $1 AND user_id = $2`

	if _, err := r.db.Pool.Exec(ctx, query, groupID, userID); err != nil {
		return fmt.Errorf("failed to remove group member: %w", err)
	}
	return nil
}

// UpdateMemberRole changes a group member's role
func (r *GroupRepository) UpdateMemberRole(ctx context.Context, groupID, userID string, role domain.GroupRole) error {
	query := `UPDATE team_group_members SET role = $3 WHERE group_id = $1 AND user_id = $2`

	if _, err := r.db.Pool.Exec(ctx, query, groupID, userID, string(role)); err != nil {
		return fmt.Errorf("failed to update group member role: %w", err)
	}
	return nil
}

// UpdateMemberPosition changes a group member's position string
func (r *GroupRepository) UpdateMemberPosition(ctx context.Context, groupID, userID, position string) error {
	query := `UPDATE team_group_members SET position = NULLIF($3, '') WHERE group_id = $1 AND user_id = $2`

	if _, err := r.db.Pool.Exec(ctx, query, groupID, userID, position); err != nil {
		return fmt.Errorf("failed to update group member position: %w", err)
	}
	return nil
}

// UserGroupForTeam returns the group a user belongs to within a team, or nil
func (r *GroupRepository) UserGroupForTeam(ctx context.Context, teamID, userID string) (*domain.TeamGroup, error) {
	query := `
		SELECT tg.id, tg.team_id, tg.name, COALESCE(tg.description, ''), tg.created_at
		FROM team_groups tg
		JOIN team_group_members tgm ON tgm.group_id = tg.id
		WHERE tg.team_id = $1 AND tgm.user_id = $2
	`

	var g domain.TeamGroup
	err := r.db.ReadPool.QueryRow(ctx, query, teamID, userID).Scan(
		&g.ID, &g.TeamID, &g.Name, &g.Description, &g.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user group: %w", err)
	}

	return &g, nil
}
