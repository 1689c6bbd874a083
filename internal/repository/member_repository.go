package repository

import (
	"context"
	"fmt"

	"chms-be/internal/domain"
	"chms-be/pkg/database"

	"github.com/jackc/pgx/v5"
)

type MemberRepository struct {
	db *database.PostgresDB
}

func NewMemberRepository(db *database.PostgresDB) *MemberRepository {
	return &MemberRepository{db: db}
}

// ListByChurch returns all members of a church ordered by name
func (r *MemberRepository) ListByChurch(ctx context.Context, churchID string) ([]domain.Member, error) {
	query := `
		SELECT u.id, u.full_name, u.email, cm.role, cm.created_at
		FROM church_members cm
		JOIN users u ON u.id = cm.user_id
		WHERE cm.church_id = $1
		ORDER BY u.full_name
	`

	rows, err := r.db.ReadPool.Query(ctx, query, churchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	members := make([]domain.Member, 0)
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.ID, &m.FullName, &m.Email, &m.Role, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}

	return members, rows.Err()
}

// GetByID returns a single member of a church, or nil when absent
func (r *MemberRepository) GetByID(ctx context.Context, churchID, userID string) (*domain.Member, error) {
	query := `
		SELECT u.id, u.full_name, u.email, cm.role, cm.created_at
		FROM church_members cm
		JOIN users u ON u.id = cm.user_id
		WHERE cm.church_id = $1 AND cm.user_id = $2
	`

	var m domain.Member
	err := r.db.ReadPool.QueryRow(ctx, query, churchID, userID).Scan(
		&m.ID, &m.FullName, &m.Email, &m.Role, &m.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return &m, nil
}
