package repository

import (
	"context"
	"fmt"

	"chms-be/internal/domain"
	"chms-be/pkg/database"

	"github.com/jackc/pgx/v5"
)

type TeamRepository struct {
	db *database.PostgresDB
}

func NewTeamRepository(db *database.PostgresDB) *TeamRepository {
	return &TeamRepository{db: db}
}

// ListByChurch returns all teams of a church
func (r *TeamRepository) ListByChurch(ctx context.Context, churchID string) ([]domain.Team, error) {
	query := `
		SELECT id, church_id, name, description, type, created_at, updated_at
		FROM teams
		WHERE church_id = $1
		ORDER BY name
	`

	rows, err := r.db.ReadPool.Query(ctx, query, churchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	teams := make([]domain.Team, 0)
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}

	return teams, rows.Err()
}

// GetByID returns a team, or nil when absent
func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (*domain.Team, error) {
	query := `
		SELECT id, church_id, name, description, type, created_at, updated_at
		FROM teams
		WHERE id = $1
	`

	row := r.db.ReadPool.QueryRow(ctx, query, teamID)
	team, err := scanTeam(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &team, nil
}

// Create inserts a new team and fills in its generated fields
func (r *TeamRepository) Create(ctx context.Context, team *domain.Team) error {
	query := `
		INSERT INTO teams (church_id, name, description, type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		team.ChurchID, team.Name, team.Description, string(team.Type),
	).Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

// Update updates a team's editable fields
func (r *TeamRepository) Update(ctx context.Context, team *domain.Team) error {
	query := `
		UPDATE teams
		SET name = $2, description = $3, type = $4, updated_at = now()
		WHERE id = $1
	`

	if _, err := r.db.Pool.Exec(ctx, query, team.ID, team.Name, team.Description, string(team.Type)); err != nil {
		return fmt.Errorf("failed to update team: %w", err)
	}
	return nil
}

// Delete removes a team; members, groups, events and documents cascade
func (r *TeamRepository) Delete(ctx context.Context, teamID string) error {
	if _, err := r.db.Pool.Exec(ctx, `DELETE FROM teams WHERE id = $1`, teamID); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	return nil
}

func scanTeam(row pgx.Row) (domain.Team, error) {
	var team domain.Team
	var teamType string
	err := row.Scan(&team.ID, &team.ChurchID, &team.Name, &team.Description,
		&teamType, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return team, err
		}
		return team, fmt.Errorf("failed to scan team: %w", err)
	}
	team.Type = domain.ParseTeamType(teamType)
	return team, nil
}
