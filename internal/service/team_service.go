package service

import (
	"context"

	"chms-be/internal/domain"
	"chms-be/internal/repository"
	"chms-be/pkg/apperrors"
	"chms-be/pkg/redis"

	"go.uber.org/zap"
)

type TeamService struct {
	teamRepo       *repository.TeamRepository
	teamMemberRepo *repository.TeamMemberRepository
	cacheService   *CacheService
	logger         *zap.Logger
}

func NewTeamService(teamRepo *repository.TeamRepository, teamMemberRepo *repository.TeamMemberRepository, cacheService *CacheService, logger *zap.Logger) *TeamService {
	return &TeamService{
		teamRepo:       teamRepo,
		teamMemberRepo: teamMemberRepo,
		cacheService:   cacheService,
		logger:         logger,
	}
}

// GetTeamsByChurch returns a church's teams
func (s *TeamService) GetTeamsByChurch(ctx context.Context, churchID string) ([]domain.Team, error) {
	key := s.cacheService.Keys().KeyChurchTeams(churchID)

	var teams []domain.Team
	if s.cacheService.GetCollection(ctx, key, &teams) {
		return teams, nil
	}

	teams, err := s.teamRepo.ListByChurch(ctx, churchID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load teams", err)
	}

	s.cacheService.StoreCollection(key, redis.TTLTeams, teams)
	return teams, nil
}

// GetTeam returns a single team
func (s *TeamService) GetTeam(ctx context.Context, teamID string) (*domain.Team, error) {
	key := s.cacheService.Keys().KeyTeamByID(teamID)

	var team domain.Team
	if s.cacheService.GetCollection(ctx, key, &team) {
		return &team, nil
	}

	found, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load team", err)
	}
	if found == nil {
		return nil, apperrors.NewNotFoundError("Team not found")
	}

	s.cacheService.StoreCollection(key, redis.TTLTeamByID, found)
	return found, nil
}

// CreateTeam creates a team and invalidates the church's team list
func (s *TeamService) CreateTeam(ctx context.Context, team *domain.Team) error {
	if team.Name == "" {
		return apperrors.NewValidationError("Team name is required", nil)
	}
	team.Type = domain.ParseTeamType(string(team.Type))

	if err := s.teamRepo.Create(ctx, team); err != nil {
		return apperrors.NewInternalError("Failed to create team", err)
	}

	s.cacheService.Invalidate(s.cacheService.Keys().KeyChurchTeams(team.ChurchID))
	return nil
}

// UpdateTeam updates a team and invalidates both its entry and the list
func (s *TeamService) UpdateTeam(ctx context.Context, team *domain.Team) error {
	if team.Name == "" {
		return apperrors.NewValidationError("Team name is required", nil)
	}
	team.Type = domain.ParseTeamType(string(team.Type))

	if err := s.teamRepo.Update(ctx, team); err != nil {
		return apperrors.NewInternalError("Failed to update team", err)
	}

	keys := s.cacheService.Keys()
	s.cacheService.Invalidate(keys.KeyTeamByID(team.ID), keys.KeyChurchTeams(team.ChurchID))
	return nil
}

// DeleteTeam deletes a team and invalidates everything scoped to it
func (s *TeamService) DeleteTeam(ctx context.Context, churchID, teamID string) error {
	if err := s.teamRepo.Delete(ctx, teamID); err != nil {
		return apperrors.NewInternalError("Failed to delete team", err)
	}

	keys := s.cacheService.Keys()
	s.cacheService.Invalidate(
		keys.KeyChurchTeams(churchID),
		keys.KeyTeamByID(teamID),
		keys.KeyTeamMembers(teamID),
		keys.KeyTeamGroups(teamID),
		keys.KeyTeamCalendar(teamID),
		keys.KeyTeamDocuments(teamID),
	)
	return nil
}

// GetTeamMembers returns a team's members
func (s *TeamService) GetTeamMembers(ctx context.Context, teamID string) ([]domain.TeamMember, error) {
	key := s.cacheService.Keys().KeyTeamMembers(teamID)

	var members []domain.TeamMember
	if s.cacheService.GetCollection(ctx, key, &members) {
		return members, nil
	}

	members, err := s.teamMemberRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load team members", err)
	}

	s.cacheService.StoreCollection(key, redis.TTLMembers, members)
	return members, nil
}

// AddTeamMember adds a user to a team
func (s *TeamService) AddTeamMember(ctx context.Context, member *domain.TeamMember) error {
	if member.Role == "" {
		member.Role = domain.TeamRoleMember
	}

	if err := s.teamMemberRepo.Add(ctx, member); err != nil {
		return apperrors.NewInternalError("Failed to add team member", err)
	}

	s.cacheService.Invalidate(s.cacheService.Keys().KeyTeamMembers(member.TeamID))
	return nil
}

// RemoveTeamMember removes a user from a team. Group membership cascades,
// so the group collections are invalidated as well.
func (s *TeamService) RemoveTeamMember(ctx context.Context, teamID, userID string) error {
	if err := s.teamMemberRepo.Remove(ctx, teamID, userID); err != nil {
		return apperrors.NewInternalError("Failed to remove team member", err)
	}

	keys := s.cacheService.Keys()
	s.cacheService.Invalidate(keys.KeyTeamMembers(teamID), keys.KeyTeamGroups(teamID))
	return nil
}

// UpdateMemberRole changes a team member's role
func (s *TeamService) UpdateMemberRole(ctx context.Context, teamID, userID string, role domain.TeamRole) error {
	if role != domain.TeamRoleAdmin && role != domain.TeamRoleMember {
		return apperrors.NewValidationError("Unknown team role", map[string]interface{}{"role": role})
	}

	if err := s.teamMemberRepo.UpdateRole(ctx, teamID, userID, role); err != nil {
		return apperrors.NewInternalError("Failed to update member role", err)
	}

	s.cacheService.Invalidate(s.cacheService.Keys().KeyTeamMembers(teamID))
	return nil
}

// UpdateMemberPosition changes a team member's position label
func (s *TeamService) UpdateMemberPosition(ctx context.Context, teamID, userID, position string) error {
	if err := s.teamMemberRepo.UpdatePosition(ctx, teamID, userID, position); err != nil {
		return apperrors.NewInternalError("Failed to update member position", err)
	}

	s.cacheService.Invalidate(s.cacheService.Keys().KeyTeamMembers(teamID))
	return nil
}

// CheckIsTeamLeader reports whether a user administers the team
func (s *TeamService) CheckIsTeamLeader(ctx context.Context, teamID, userID string) (bool, error) {
	isLeader, err := s.teamMemberRepo.IsTeamLeader(ctx, teamID, userID)
	if err != nil {
		return false, apperrors.NewInternalError("Failed to check team leader", err)
	}
	return isLeader, nil
}

// GetMyTeamMembership returns the caller's membership in a team, or nil
func (s *TeamService) GetMyTeamMembership(ctx context.Context, teamID, userID string) (*domain.TeamMember, error) {
	member, err := s.teamMemberRepo.MyMembership(ctx, teamID, userID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load team membership", err)
	}
	return member, nil
}

// CanUserBeAddedToGroup checks the one-group-per-team invariant
func (s *TeamService) CanUserBeAddedToGroup(ctx context.Context, teamID, userID string) error {
	err := s.teamMemberRepo.CanUserBeAddedToGroup(ctx, teamID, userID)
	switch err {
	case nil:
		return nil
	case domain.ErrNotTeamMember:
		return apperrors.NewValidationError(err.Error(), nil)
	case domain.ErrAlreadyInGroup:
		return apperrors.NewConflictError(err.Error())
	default:
		return apperrors.NewInternalError("Failed to check group eligibility", err)
	}
}
