package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"chms-be/internal/domain"
	"chms-be/internal/repository"
	"chms-be/pkg/apperrors"
	"chms-be/pkg/redis"

	"go.uber.org/zap"
)

// Storage is the Supabase Storage surface used by the document service
type Storage interface {
	UploadObject(ctx context.Context, bucket, path, contentType string, data []byte) error
	DeleteObject(ctx context.Context, bucket, path string) error
	CreateSignedURL(ctx context.Context, bucket, path string, expiresIn time.Duration) (string, error)
}

type DocumentService struct {
	documentRepo *repository.DocumentRepository
	storage      Storage
	bucket       string
	cacheService *CacheService
	logger       *zap.Logger
}

func NewDocumentService(documentRepo *repository.DocumentRepository, storage Storage, bucket string, cacheService *CacheService, logger *zap.Logger) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		storage:      storage,
		bucket:       bucket,
		cacheService: cacheService,
		logger:       logger,
	}
}

// GetDocuments returns a team's documents
func (s *DocumentService) GetDocuments(ctx context.Context, teamID string) ([]domain.TeamDocument, error) {
	key := s.cacheService.Keys().KeyTeamDocuments(teamID)

	var docs []domain.TeamDocument
	if s.cacheService.GetCollection(ctx, key, &docs) {
		return docs, nil
	}

	docs, err := s.documentRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load documents", err)
	}

	s.cacheService.StoreCollection(key, redis.TTLDocuments, docs)
	return docs, nil
}

// UploadRequest carries everything needed to store a document. DisplayName
// defaults to the picked file's name and must end up non-empty. Data must be
// present: editing the name never enables an upload without a file.
type UploadRequest struct {
	TeamID      string
	DisplayName string
	SourceName  string
	ContentType string
	Data        []byte
	EventID     string
	UploadedBy  string
}

// UploadDocument stores the file in the Storage bucket, records its metadata
// and invalidates the team's document list.
func (s *DocumentService) UploadDocument(ctx context.Context, req UploadRequest) (*domain.TeamDocument, error) {
	if len(req.Data) == 0 {
		return nil, apperrors.NewValidationError("A file is required", nil)
	}

	name := req.DisplayName
	if name == "" {
		name = req.SourceName
	}
	if name == "" {
		return nil, apperrors.NewValidationError("A document name is required", nil)
	}

	path := fmt.Sprintf("%s/%s-%s", req.TeamID, randomHex(8), name)
	if err := s.storage.UploadObject(ctx, s.bucket, path, req.ContentType, req.Data); err != nil {
		return nil, err
	}

	doc := &domain.TeamDocument{
		TeamID:      req.TeamID,
		FileName:    name,
		FileSize:    int64(len(req.Data)),
		StoragePath: path,
		EventID:     req.EventID,
		UploadedBy:  req.UploadedBy,
	}
	if err := s.documentRepo.Create(ctx, doc); err != nil {
		// The object is already stored; best-effort cleanup keeps the bucket
		// from accumulating orphans.
		if cleanupErr := s.storage.DeleteObject(ctx, s.bucket, path); cleanupErr != nil {
			s.logger.Warn("Failed to clean up orphaned object",
				zap.String("path", path),
				zap.Error(cleanupErr))
		}
		return nil, apperrors.NewInternalError("Failed to save document", err)
	}

	s.cacheService.Invalidate(s.cacheService.Keys().KeyTeamDocuments(req.TeamID))

	s.logger.Info("Document uploaded",
		zap.String("team_id", req.TeamID),
		zap.String("document_id", doc.ID),
		zap.Int64("file_size", doc.FileSize))
	return doc, nil
}

// DeleteDocument removes the stored object and its metadata row
func (s *DocumentService) DeleteDocument(ctx context.Context, teamID, documentID string) error {
	doc, err := s.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		return apperrors.NewInternalError("Failed to load document", err)
	}
	if doc == nil {
		return apperrors.NewNotFoundError("Document not found")
	}

	if err := s.storage.DeleteObject(ctx, s.bucket, doc.StoragePath); err != nil {
		return err
	}
	if err := s.documentRepo.Delete(ctx, documentID); err != nil {
		return apperrors.NewInternalError("Failed to delete document", err)
	}

	s.cacheService.Invalidate(s.cacheService.Keys().KeyTeamDocuments(teamID))
	return nil
}

// GetDocumentURL creates a short-lived signed download URL
func (s *DocumentService) GetDocumentURL(ctx context.Context, documentID string) (string, error) {
	doc, err := s.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		return "", apperrors.NewInternalError("Failed to load document", err)
	}
	if doc == nil {
		return "", apperrors.NewNotFoundError("Document not found")
	}

	return s.storage.CreateSignedURL(ctx, s.bucket, doc.StoragePath, time.Hour)
}

func randomHex(n int) string {
	bytes := make([]byte, n)
	// crypto/rand never fails on supported platforms; uploads use upsert so
	// even a colliding path cannot error
	_, _ = rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
