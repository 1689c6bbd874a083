package repository

import (
	"context"
	"fmt"

	"chms-be/internal/domain"
	"chms-be/pkg/database"

	"github.com/jackc/pgx/v5"
)

type DocumentRepository struct {
	db *database.PostgresDB
}

func NewDocumentRepository(db *database.PostgresDB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// ListByTeam returns a team's documents, newest first
func (r *DocumentRepository) ListByTeam(ctx context.Context, teamID string) ([]domain.TeamDocument, error) {
	query := `
		SELECT id, team_id, file_name, file_size, storage_path,
		       COALESCE(event_id::text, ''), uploaded_by, created_at
		FROM team_documents
		WHERE team_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.ReadPool.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	docs := make([]domain.TeamDocument, 0)
	for rows.Next() {
		var d domain.TeamDocument
		if err := rows.Scan(&d.ID, &d.TeamID, &d.FileName, &d.FileSize,
			&d.StoragePath, &d.EventID, &d.UploadedBy, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, d)
	}

	return docs, rows.Err()
}

// GetByID returns a document, or nil when absent
func (r *DocumentRepository) GetByID(ctx context.Context, documentID string) (*domain.TeamDocument, error) {
	query := `
		SELECT id, team_id, file_name, file_size, storage_path,
		       COALESCE(event_id::text, ''), uploaded_by, created_at
		FROM team_documents
		WHERE id = $1
	`

	var d domain.TeamDocument
	err := r.db.ReadPool.QueryRow(ctx, query, documentID).Scan(
		&d.ID, &d.TeamID, &d.FileName, &d.FileSize, &d.StoragePath,
		&d.EventID, &d.UploadedBy, &d.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return &d, nil
}

// Create inserts a document metadata row
func (r *DocumentRepository) Create(ctx context.Context, doc *domain.TeamDocument) error {
	query := `
		INSERT INTO team_documents (team_id, file_name, file_size, storage_path, event_id, uploaded_by)
		VALUES ($1, $2, $3, $4, NULLIF($5, '')::uuid, $6)
		RETURNING id, created_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		doc.TeamID, doc.FileName, doc.FileSize, doc.StoragePath, doc.EventID, doc.UploadedBy,
	).Scan(&doc.ID, &doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

// Delete removes a document metadata row
func (r *DocumentRepository) Delete(ctx context.Context, documentID string) error {
	if _, err := r.db.Pool.Exec(ctx, `DELETE FROM team_documents WHERE id = $1`, documentID); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}
