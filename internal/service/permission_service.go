package service

import (
	"context"

	"chms-be/internal/domain"
	"chms-be/internal/repository"
	"chms-be/pkg/apperrors"
	"chms-be/pkg/redis"

	"go.uber.org/zap"
)

type PermissionService struct {
	roleRepo     *repository.RoleRepository
	cacheService *CacheService
	logger       *zap.Logger
}

func NewPermissionService(roleRepo *repository.RoleRepository, cacheService *CacheService, logger *zap.Logger) *PermissionService {
	return &PermissionService{
		roleRepo:     roleRepo,
		cacheService: cacheService,
		logger:       logger,
	}
}

// GetChurchRoles returns a church's role definitions
func (s *PermissionService) GetChurchRoles(ctx context.Context, churchID string) ([]domain.Role, error) {
	key := s.cacheService.Keys().KeyChurchRoles(churchID)

	var roles []domain.Role
	if s.cacheService.GetCollection(ctx, key, &roles) {
		return roles, nil
	}

	roles, err := s.roleRepo.ListChurchRoles(ctx, churchID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load roles", err)
	}

	s.cacheService.StoreCollection(key, redis.TTLRoles, roles)
	return roles, nil
}

// GetUserRolesMap returns the per-church userID -> roleIDs mapping
func (s *PermissionService) GetUserRolesMap(ctx context.Context, churchID string) (domain.UserRolesMap, error) {
	key := s.cacheService.Keys().KeyChurchRolesMap(churchID)

	var rolesMap domain.UserRolesMap
	if s.cacheService.GetCollection(ctx, key, &rolesMap) {
		return rolesMap, nil
	}

	rolesMap, err := s.roleRepo.UserRolesMap(ctx, churchID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load user roles", err)
	}

	s.cacheService.StoreCollection(key, redis.TTLRoles, rolesMap)
	return rolesMap, nil
}

// AssignRoleToUser assigns a single role and invalidates the roles map
func (s *PermissionService) AssignRoleToUser(ctx context.Context, churchID, userID, roleID string) error {
	if err := s.roleRepo.Assign(ctx, userID, roleID); err != nil {
		return apperrors.NewInternalError("Failed to assign role", err)
	}
	s.cacheService.Invalidate(s.cacheService.Keys().KeyChurchRolesMap(churchID))
	return nil
}

// RemoveRoleFromUser removes a single role and invalidates the roles map
func (s *PermissionService) RemoveRoleFromUser(ctx context.Context, churchID, userID, roleID string) error {
	if err := s.roleRepo.Remove(ctx, userID, roleID); err != nil {
		return apperrors.NewInternalError("Failed to remove role", err)
	}
	s.cacheService.Invalidate(s.cacheService.Keys().KeyChurchRolesMap(churchID))
	return nil
}

// ApplyRoleDiff saves an edited role set as one assign/remove call per
// differing id; there is no bulk-update endpoint. The roles map is
// invalidated even on partial failure since earlier calls already landed.
func (s *PermissionService) ApplyRoleDiff(ctx context.Context, churchID, userID string, currentIDs, workingIDs []string) error {
	draft := domain.NewRoleDraft(currentIDs)
	draft.SetWorking(workingIDs)
	if !draft.HasChanges() {
		return nil
	}

	toAssign, toRemove := draft.Diff()

	defer s.cacheService.Invalidate(s.cacheService.Keys().KeyChurchRolesMap(churchID))

	for _, roleID := range toRemove {
		if err := s.roleRepo.Remove(ctx, userID, roleID); err != nil {
			return apperrors.NewInternalError("Failed to remove role", err)
		}
	}
	for _, roleID := range toAssign {
		if err := s.roleRepo.Assign(ctx, userID, roleID); err != nil {
			return apperrors.NewInternalError("Failed to assign role", err)
		}
	}

	s.logger.Info("Role diff applied",
		zap.String("church_id", churchID),
		zap.String("user_id", userID),
		zap.Int("assigned", len(toAssign)),
		zap.Int("removed", len(toRemove)))
	return nil
}
