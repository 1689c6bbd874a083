package service

import (
	"context"

	"chms-be/internal/domain"
	"chms-be/internal/repository"
	"chms-be/pkg/apperrors"
	"chms-be/pkg/redis"

	"go.uber.org/zap"
)

type GroupService struct {
	groupRepo      *repository.GroupRepository
	teamMemberRepo *repository.TeamMemberRepository
	cacheService   *CacheService
	logger         *zap.Logger
}

func NewGroupService(groupRepo *repository.GroupRepository, teamMemberRepo *repository.TeamMemberRepository, cacheService *CacheService, logger *zap.Logger) *GroupService {
	return &GroupService{
		groupRepo:      groupRepo,
		teamMemberRepo: teamMemberRepo,
		cacheService:   cacheService,
		logger:         logger,
	}
}

// GetGroupsByTeam returns a team's groups
func (s *GroupService) GetGroupsByTeam(ctx context.Context, teamID string) ([]domain.TeamGroup, error) {
	key := s.cacheService.Keys().KeyTeamGroups(teamID)

	var groups []domain.TeamGroup
	if s.cacheService.GetCollection(ctx, key, &groups) {
		return groups, nil
	}

	groups, err := s.groupRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load groups", err)
	}

	s.cacheService.StoreCollection(key, redis.TTLGroups, groups)
	return groups, nil
}

// GetGroup returns a single group
func (s *GroupService) GetGroup(ctx context.Context, groupID string) (*domain.TeamGroup, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load group", err)
	}
	if group == nil {
		return nil, apperrors.NewNotFoundError("Group not found")
	}
	return group, nil
}

// CreateGroup creates a group and invalidates the team's group list
func (s *GroupService) CreateGroup(ctx context.Context, group *domain.TeamGroup) error {
	if group.Name == "" {
		return apperrors.NewValidationError("Group name is required", nil)
	}

	if err := s.groupRepo.Create(ctx, group); err != nil {
		return apperrors.NewInternalError("Failed to create group", err)
	}

	s.cacheService.Invalidate(s.cacheService.Keys().KeyTeamGroups(group.TeamID))
	return nil
}

// UpdateGroup updates a group
func (s *GroupService) UpdateGroup(ctx context.Context, group *domain.TeamGroup) error {
	if group.Name == "" {
		return apperrors.NewValidationError("Group name is required", nil)
	}

	if err := s.groupRepo.Update(ctx, group); err != nil {
		return apperrors.NewInternalError("Failed to update group", err)
	}

	s.cacheService.Invalidate(s.cacheService.Keys().KeyTeamGroups(group.TeamID))
	return nil
}

// DeleteGroup deletes a group and invalidates its collections
func (s *GroupService) DeleteGroup(ctx context.Context, teamID, groupID string) error {
	if err := s.groupRepo.Delete(ctx, groupID); err != nil {
		return apperrors.NewInternalError("Failed to delete group", err)
	}

	keys := s.cacheService.Keys()
	s.cacheService.Invalidate(keys.KeyTeamGroups(teamID), keys.KeyGroupMembers(groupID))
	return nil
}

// GetGroupMembers returns a group's members
func (s *GroupService) GetGroupMembers(ctx context.Context, groupID string) ([]domain.TeamGroupMember, error) {
	key := s.cacheService.Keys().KeyGroupMembers(groupID)

	var members []domain.TeamGroupMember
	if s.cacheService.GetCollection(ctx, key, &members) {
		return members, nil
	}

	members, err := s.groupRepo.ListMembers(ctx, groupID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load group members", err)
	}

	s.cacheService.StoreCollection(key, redis.TTLGroups, members)
	return members, nil
}

// AddGroupMember adds a team member to a group after checking the
// one-group-per-team invariant.
func (s *GroupService) AddGroupMember(ctx context.Context, teamID string, member *domain.TeamGroupMember) error {
	err := s.teamMemberRepo.CanUserBeAddedToGroup(ctx, teamID, member.UserID)
	switch err {
	case nil:
	case domain.ErrNotTeamMember:
		return apperrors.NewValidationError(err.Error(), nil)
	case domain.ErrAlreadyInGroup:
		return apperrors.NewConflictError(err.Error())
	default:
		return apperrors.NewInternalError("Failed to check group eligibility", err)
	}

	if member.Role == "" {
		member.Role = domain.GroupRoleMember
	}

	if err := s.groupRepo.AddMember(ctx, member); err != nil {
		return apperrors.NewInternalError("Failed to add group member", err)
	}

	s.cacheService.Invalidate(s.cacheService.Keys().KeyGroupMembers(member.GroupID))
	return nil
}

// RemoveGroupMember removes a user from a group
func (s *GroupService) RemoveGroupMember(ctx context.Context, groupID, userID string) error {
	if err := s.groupRepo.RemoveMember(ctx, groupID, userID); err != nil {
		return apperrors.NewInternalError("Failed to remove group member", err)
	}

	s.cacheService.Invalidate(s.cacheService.Keys().KeyGroupMembers(groupID))
	return nil
}

// UpdateGroupMemberRole changes a group member's role
func (s *GroupService) UpdateGroupMemberRole(ctx context.Context, groupID, userID string, role domain.GroupRole) error {
	if role != domain.GroupRoleLeader && role != domain.GroupRoleMember {
		return apperrors.NewValidationError("Unknown group role", map[string]interface{}{"role": role})
	}

	if err := s.groupRepo.UpdateMemberRole(ctx, groupID, userID, role); err != nil {
		return apperrors.NewInternalError("Failed to update group member role", err)
	}

	s.cacheService.Invalidate(s.cacheService.Keys().KeyGroupMembers(groupID))
	return nil
}

// UpdateGroupMemberPosition changes a group member's position label
func (s *GroupService) UpdateGroupMemberPosition(ctx context.Context, groupID, userID, position string) error {
	if err := s.groupRepo.UpdateMemberPosition(ctx, groupID, userID, position); err != nil {
		return apperrors.NewInternalError("Failed to update group member position", err)
	}

	s.cacheService.Invalidate(s.cacheService.Keys().KeyGroupMembers(groupID))
	return nil
}

// GetUserGroupForTeam returns the group a user belongs to in a team, or nil
func (s *GroupService) GetUserGroupForTeam(ctx context.Context, teamID, userID string) (*domain.TeamGroup, error) {
	group, err := s.groupRepo.UserGroupForTeam(ctx, teamID, userID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load user group", err)
	}
	return group, nil
}
