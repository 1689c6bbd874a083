package repository

import (
	"context"
	"fmt"

	"chms-be/internal/domain"
	"chms-be/pkg/database"

	"github.com/jackc/pgx/v5"
)

type InvitationRepository struct {
	db *database.PostgresDB
}

func NewInvitationRepository(db *database.PostgresDB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

// ListByChurch returns all membership requests for a church with the invited
// user's snapshot joined in, newest first.
func (r *InvitationRepository) ListByChurch(ctx context.Context, churchID string) ([]domain.MembershipRequest, error) {
	query := `
		SELECT mr.id, mr.church_id, mr.status, mr.message, mr.created_at,
		       u.id, u.full_name, u.email
		FROM membership_requests mr
		JOIN users u ON u.id = mr.user_id
		WHERE mr.church_id = $1
		ORDER BY mr.created_at DESC
	`

	rows, err := r.db.ReadPool.Query(ctx, query, churchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list membership requests: %w", err)
	}
	defer rows.Close()

	requests := make([]domain.MembershipRequest, 0)
	for rows.Next() {
		var req domain.MembershipRequest
		var status string
		if err := rows.Scan(&req.ID, &req.ChurchID, &status, &req.Message, &req.CreatedAt,
			&req.User.ID, &req.User.FullName, &req.User.Email); err != nil {
			return nil, fmt.Errorf("failed to scan membership request: %w", err)
		}
		req.Status = domain.RequestStatus(status)
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

// GetByID returns a single membership request, or nil when absent
func (r *InvitationRepository) GetByID(ctx context.Context, requestID string) (*domain.MembershipRequest, error) {
	query := `
		SELECT mr.id, mr.church_id, mr.status, mr.message, mr.created_at,
		       u.id, u.full_name, u.email
		FROM membership_requests mr
		JOIN users u ON u.id = mr.user_id
		WHERE mr.id = $1
	`

	var req domain.MembershipRequest
	var status string
	err := r.db.ReadPool.QueryRow(ctx, query, requestID).Scan(
		&req.ID, &req.ChurchID, &status, &req.Message, &req.CreatedAt,
		&req.User.ID, &req.User.FullName, &req.User.Email)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get membership request: %w", err)
	}
	req.Status = domain.RequestStatus(status)

	return &req, nil
}
