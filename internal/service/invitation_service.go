package service

import (
	"context"

	"chms-be/internal/domain"
	"chms-be/internal/repository"
	"chms-be/pkg/apperrors"
	"chms-be/pkg/redis"

	"go.uber.org/zap"
)

type InvitationService struct {
	invitationRepo *repository.InvitationRepository
	rpc            RPCCaller
	cacheService   *CacheService
	logger         *zap.Logger
}

func NewInvitationService(invitationRepo *repository.InvitationRepository, rpc RPCCaller, cacheService *CacheService, logger *zap.Logger) *InvitationService {
	return &InvitationService{
		invitationRepo: invitationRepo,
		rpc:            rpc,
		cacheService:   cacheService,
		logger:         logger,
	}
}

// List returns a church's membership requests with user snapshots
func (s *InvitationService) List(ctx context.Context, churchID string) ([]domain.MembershipRequest, error) {
	key := s.cacheService.Keys().KeyChurchRequests(churchID)

	var requests []domain.MembershipRequest
	if s.cacheService.GetCollection(ctx, key, &requests) {
		return requests, nil
	}

	requests, err := s.invitationRepo.ListByChurch(ctx, churchID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load membership requests", err)
	}

	s.cacheService.StoreCollection(key, redis.TTLRequests, requests)
	return requests, nil
}

// Accept resolves a pending request into a membership. On success the
// request, member and role-map collections are all invalidated: accepting
// creates a member row and seeds their roles.
func (s *InvitationService) Accept(ctx context.Context, churchID, requestID string) error {
	if err := s.resolve(ctx, requestID, "accept_membership_request"); err != nil {
		return err
	}

	keys := s.cacheService.Keys()
	s.cacheService.Invalidate(
		keys.KeyChurchRequests(churchID),
		keys.KeyChurchMembers(churchID),
		keys.KeyChurchRolesMap(churchID),
	)

	s.logger.Info("Membership request accepted",
		zap.String("church_id", churchID),
		zap.String("request_id", requestID))
	return nil
}

// Decline resolves a pending request without creating a membership
func (s *InvitationService) Decline(ctx context.Context, churchID, requestID string) error {
	if err := s.resolve(ctx, requestID, "decline_membership_request"); err != nil {
		return err
	}

	s.cacheService.Invalidate(s.cacheService.Keys().KeyChurchRequests(churchID))

	s.logger.Info("Membership request declined",
		zap.String("church_id", churchID),
		zap.String("request_id", requestID))
	return nil
}

func (s *InvitationService) resolve(ctx context.Context, requestID, fn string) error {
	request, err := s.invitationRepo.GetByID(ctx, requestID)
	if err != nil {
		return apperrors.NewInternalError("Failed to load membership request", err)
	}
	if request == nil {
		return apperrors.NewNotFoundError("Membership request not found")
	}
	if request.Status.Terminal() {
		return apperrors.NewConflictError(domain.ErrRequestResolved.Error())
	}

	if err := s.rpc.RPC(ctx, fn, map[string]interface{}{"request_id": requestID}, nil); err != nil {
		return err
	}
	return nil
}
