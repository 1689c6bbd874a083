package service

import (
	"context"

	"chms-be/internal/domain"
	"chms-be/internal/repository"
	"chms-be/pkg/apperrors"
	"chms-be/pkg/redis"

	"go.uber.org/zap"
)

// RPCCaller is the escape hatch into Supabase Postgres functions. Member
// removal goes through a function rather than plain SQL because it has to
// detach roles, team memberships and auth state in one transaction.
type RPCCaller interface {
	RPC(ctx context.Context, fn string, params map[string]interface{}, result interface{}) error
}

type MemberService struct {
	memberRepo   *repository.MemberRepository
	rpc          RPCCaller
	cacheService *CacheService
	logger       *zap.Logger
}

func NewMemberService(memberRepo *repository.MemberRepository, rpc RPCCaller, cacheService *CacheService, logger *zap.Logger) *MemberService {
	return &MemberService{
		memberRepo:   memberRepo,
		rpc:          rpc,
		cacheService: cacheService,
		logger:       logger,
	}
}

// List returns the members of a church with cache-aside on the collection
func (s *MemberService) List(ctx context.Context, churchID string) ([]domain.Member, error) {
	key := s.cacheService.Keys().KeyChurchMembers(churchID)

	var members []domain.Member
	if s.cacheService.GetCollection(ctx, key, &members) {
		return members, nil
	}

	members, err := s.memberRepo.ListByChurch(ctx, churchID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load members", err)
	}

	s.cacheService.StoreCollection(key, redis.TTLMembers, members)
	return members, nil
}

// RemoveOutcome is the per-member result of a bulk removal
type RemoveOutcome struct {
	UserID  string `json:"user_id"`
	Removed bool   `json:"removed"`
	Message string `json:"message,omitempty"`
}

// RemoveMembers removes each member with an independent call. There is no
// batching and no all-or-nothing guarantee: a failure mid-sequence leaves the
// earlier removals in place and is reported per id. The member and role
// collections are invalidated once the sequence finishes.
func (s *MemberService) RemoveMembers(ctx context.Context, churchID string, userIDs []string) []RemoveOutcome {
	outcomes := make([]RemoveOutcome, 0, len(userIDs))

	for _, userID := range userIDs {
		err := s.rpc.RPC(ctx, "remove_church_member", map[string]interface{}{
			"church_id": churchID,
			"user_id":   userID,
		}, nil)

		outcome := RemoveOutcome{UserID: userID, Removed: err == nil}
		if err != nil {
			outcome.Message = apperrors.ResolveMessage(err, "Failed to remove member")
			s.logger.Warn("Member removal failed",
				zap.String("church_id", churchID),
				zap.String("user_id", userID),
				zap.Error(err))
		}
		outcomes = append(outcomes, outcome)
	}

	keys := s.cacheService.Keys()
	s.cacheService.Invalidate(
		keys.KeyChurchMembers(churchID),
		keys.KeyChurchRolesMap(churchID),
	)

	return outcomes
}
