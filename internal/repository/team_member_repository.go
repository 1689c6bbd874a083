package repository

import (
	"context"
	"fmt"

	"chms-be/internal/domain"
	"chms-be/pkg/database"

	"github.com/jackc/pgx/v5"
)

type TeamMemberRepository struct {
	db *database.PostgresDB
}

func NewTeamMemberRepository(db *database.PostgresDB) *TeamMemberRepository {
	return &TeamMemberRepository{db: db}
}

// ListByTeam returns all members of a team
func (r *TeamMemberRepository) ListByTeam(ctx context.Context, teamID string) ([]domain.TeamMember, error) {
	query := `
		SELECT tm.id, tm.team_id, tm.user_id, u.full_name, u.email,
		       tm.role, COALESCE(tm.position, ''), tm.joined_at
		FROM team_members tm
		JOIN users u ON u.id = tm.user_id
		WHERE tm.team_id = $1
		ORDER BY u.full_name
	`

	rows, err := r.db.ReadPool.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	defer rows.Close()

	members := make([]domain.TeamMember, 0)
	for rows.Next() {
		var m domain.TeamMember
		var role string
		if err := rows.Scan(&m.ID, &m.TeamID, &m.UserID, &m.FullName, &m.Email,
			&role, &m.Position, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team member: %w", err)
		}
		m.Role = domain.TeamRole(role)
		members = append(members, m)
	}

	return members, rows.Err()
}

// Add inserts a team membership
func (r *TeamMemberRepository) Add(ctx context.Context, member *domain.TeamMember) error {
	query := `
		INSERT INTO team_members (team_id, user_id, role, position)
		VALUES ($1, $2, $3, NULLIF($4, ''))
		RETURNING id, joined_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		member.TeamID, member.UserID, string(member.Role), member.Position,
	).Scan(&member.ID, &member.JoinedAt)
	if err != nil {
		return fmt.Errorf("failed to add team member: %w", err)
	}
	return nil
}

// Remove deletes a team membership; any group membership cascades
func (r *TeamMemberRepository) Remove(ctx context.Context, teamID, userID string) error {
	query := `DELETE FROM team_members WHERE team_id = $1 AND user_id = $2`

	if _, err := r.db.Pool.Exec(ctx, query, teamID, userID); err != nil {
		return fmt.Errorf("failed to remove team member: %w", err)
	}
	return nil
}

// UpdateRole changes a member's team role
func (r *TeamMemberRepository) UpdateRole(ctx context.Context, teamID, userID string, role domain.TeamRole) error {
	query := `UPDATE team_members SET role = $3 WHERE team_id = $1 AND user_id = $2`

	if _, err := r.db.Pool.Exec(ctx, query, teamID, userID, string(role)); err != nil {
		return fmt.Errorf("failed to update team member role: %w", err)
	}
	return nil
}

// UpdatePosition changes a member's position string
func (r *TeamMemberRepository) UpdatePosition(ctx context.Context, teamID, userID, position string) error {
	query := `UPDATE team_members SET position = NULLIF($3, '') WHERE team_id = $1 AND user_id = $2`

	if _, err := r.db.Pool.Exec(ctx, query, teamID, userID, position); err != nil {
		return fmt.Errorf("failed to update team member position: %w", err)
	}
	return nil
}

// IsTeamLeader reports whether a user is a team admin
func (r *TeamMemberRepository) IsTeamLeader(ctx context.Context, teamID, userID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM team_members
			WHERE team_id = $1 AND user_id = $2 AND role = 'admin'
		)
	`

	var isLeader bool
	if err := r.db.ReadPool.QueryRow(ctx, query, teamID, userID).Scan(&isLeader); err != nil {
		return false, fmt.Errorf("failed to check team leader: %w", err)
	}
	return isLeader, nil
}

// MyMembership returns the caller's membership in a team, or nil
func (r *TeamMemberRepository) MyMembership(ctx context.Context, teamID, userID string) (*domain.TeamMember, error) {
	query := `
		SELECT tm.id, tm.team_id, tm.user_id, u.full_name, u.email,
		       tm.role, COALESCE(tm.position, ''), tm.joined_at
		FROM team_members tm
		JOIN users u ON u.id = tm.user_id
		WHERE tm.team_id = $1 AND tm.user_id = $2
	`

	var m domain.TeamMember
	var role string
	err := r.db.ReadPool.QueryRow(ctx, query, teamID, userID).Scan(
		&m.ID, &m.TeamID, &m.UserID, &m.FullName, &m.Email, &role, &m.Position, &m.JoinedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team membership: %w", err)
	}
	m.Role = domain.TeamRole(role)

	return &m, nil
}

// CanUserBeAddedToGroup checks the at-most-one-group-per-team invariant: the
// user must be a member of the team and not already belong to another group
// of the same team.
func (r *TeamMemberRepository) CanUserBeAddedToGroup(ctx context.Context, teamID, userID string) error {
	member, err := r.MyMembership(ctx, teamID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return domain.ErrNotTeamMember
	}

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM team_group_members tgm
			JOIN team_groups tg ON tg.id = tgm.group_id
			WHERE tg.team_id = $1 AND tgm.user_id = $2
		)
	`

	var inGroup bool
	if err := r.db.ReadPool.QueryRow(ctx, query, teamID, userID).Scan(&inGroup); err != nil {
		return fmt.Errorf("failed to check group membership: %w", err)
	}
	if inGroup {
		return domain.ErrAlreadyInGroup
	}
	return nil
}
