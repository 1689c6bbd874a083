package handler

import (
	"encoding/json"
	"net/http"

	"chms-be/internal/domain"
	"chms-be/internal/middleware"
	"chms-be/internal/service"

	"github.com/go-chi/chi/v5"
)

type TeamHandler struct {
	teamService *service.TeamService
}

func NewTeamHandler(teamService *service.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// List handles GET /api/v1/churches/{churchID}/teams
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	churchID := chi.URLParam(r, "churchID")

	teams, err := h.teamService.GetTeamsByChurch(ctx, churchID)
	if err != nil {
		respondError(w, err, "Failed to load teams")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"teams": teams})
}

// Get handles GET /api/v1/teams/{teamID}
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	teamID := chi.URLParam(r, "teamID")

	team, err := h.teamService.GetTeam(ctx, teamID)
	if err != nil {
		respondError(w, err, "Failed to load team")
		return
	}

	respondJSON(w, http.StatusOK, team)
}

// TeamRequest is the create/update body for a team
type TeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// Create handles POST /api/v1/churches/{churchID}/teams
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	churchID := chi.URLParam(r, "churchID")

	var req TeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	team := &domain.Team{
		ChurchID:    churchID,
		Name:        req.Name,
		Description: req.Description,
		Type:        domain.TeamType(req.Type),
	}
	if err := h.teamService.CreateTeam(ctx, team); err != nil {
		respondError(w, err, "Failed to create team")
		return
	}

	respondJSON(w, http.StatusCreated, team)
}

// Update handles PUT /api/v1/churches/{churchID}/teams/{teamID}
func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	churchID := chi.URLParam(r, "churchID")
	teamID := chi.URLParam(r, "teamID")

	var req TeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	team := &domain.Team{
		ID:          teamID,
		ChurchID:    churchID,
		Name:        req.Name,
		Description: req.Description,
		Type:        domain.TeamType(req.Type),
	}
	if err := h.teamService.UpdateTeam(ctx, team); err != nil {
		respondError(w, err, "Failed to update team")
		return
	}

	respondJSON(w, http.StatusOK, team)
}

// Delete handles DELETE /api/v1/churches/{churchID}/teams/{teamID}
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	churchID := chi.URLParam(r, "churchID")
	teamID := chi.URLParam(r, "teamID")

	if err := h.teamService.DeleteTeam(ctx, churchID, teamID); err != nil {
		respondError(w, err, "Failed to delete team")
		return
	}

	respondMessage(w, http.StatusOK, "Team deleted")
}

// ListMembers handles GET /api/v1/teams/{teamID}/members
func (h *TeamHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	teamID := chi.URLParam(r, "teamID")

	members, err := h.teamService.GetTeamMembers(ctx, teamID)
	if err != nil {
		respondError(w, err, "Failed to load team members")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"members": members})
}

// TeamMemberRequest is the add body for a team member
type TeamMemberRequest struct {
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
	Position string `json:"position"`
}

// AddMember handles POST /api/v1/teams/{teamID}/members
func (h *TeamHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	teamID := chi.URLParam(r, "teamID")

	var req TeamMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		respondMessage(w, http.StatusBadRequest, "A user id is required")
		return
	}

	member := &domain.TeamMember{
		TeamID:   teamID,
		UserID:   req.UserID,
		Role:     domain.TeamRole(req.Role),
		Position: req.Position,
	}
	if err := h.teamService.AddTeamMember(ctx, member); err != nil {
		respondError(w, err, "Failed to add team member")
		return
	}

	respondJSON(w, http.StatusCreated, member)
}

// RemoveMember handles DELETE /api/v1/teams/{teamID}/members/{userID}
func (h *TeamHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	teamID := chi.URLParam(r, "teamID")
	userID := chi.URLParam(r, "userID")

	if err := h.teamService.RemoveTeamMember(ctx, teamID, userID); err != nil {
		respondError(w, err, "Failed to remove team member")
		return
	}

	respondMessage(w, http.StatusOK, "Team member removed")
}

// UpdateMemberRole handles PUT /api/v1/teams/{teamID}/members/{userID}/role
func (h *TeamHandler) UpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	teamID := chi.URLParam(r, "teamID")
	userID := chi.URLParam(r, "userID")

	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.teamService.UpdateMemberRole(ctx, teamID, userID, domain.TeamRole(req.Role)); err != nil {
		respondError(w, err, "Failed to update member role")
		return
	}

	respondMessage(w, http.StatusOK, "Member role updated")
}

// UpdateMemberPosition handles PUT /api/v1/teams/{teamID}/members/{userID}/position
func (h *TeamHandler) UpdateMemberPosition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	teamID := chi.URLParam(r, "teamID")
	userID := chi.URLParam(r, "userID")

	var req struct {
		Position string `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.teamService.UpdateMemberPosition(ctx, teamID, userID, req.Position); err != nil {
		respondError(w, err, "Failed to update member position")
		return
	}

	respondMessage(w, http.StatusOK, "Member position updated")
}

// MyMembership handles GET /api/v1/teams/{teamID}/members/me. It reports the
// caller's membership and whether they administer the team.
func (h *TeamHandler) MyMembership(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	teamID := chi.URLParam(r, "teamID")

	claims := middleware.ClaimsFromContext(ctx)
	if claims == nil {
		respondMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	member, err := h.teamService.GetMyTeamMembership(ctx, teamID, claims.Sub)
	if err != nil {
		respondError(w, err, "Failed to load team membership")
		return
	}

	isLeader, err := h.teamService.CheckIsTeamLeader(ctx, teamID, claims.Sub)
	if err != nil {
		respondError(w, err, "Failed to check team leader")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"membership": member,
		"is_leader":  isLeader,
	})
}

// GroupEligibility handles GET /api/v1/teams/{teamID}/members/{userID}/group-eligibility
func (h *TeamHandler) GroupEligibility(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	teamID := chi.URLParam(r, "teamID")
	userID := chi.URLParam(r, "userID")

	if err := h.teamService.CanUserBeAddedToGroup(ctx, teamID, userID); err != nil {
		respondError(w, err, "User cannot be added to a group")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"eligible": true})
}
