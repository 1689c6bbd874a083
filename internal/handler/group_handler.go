package handler

import (
	"encoding/json"
	"net/http"

	"chms-be/internal/domain"
	"chms-be/internal/middleware"
	"chms-be/internal/service"

	"github.com/go-chi/chi/v5"
)

type GroupHandler struct {
	groupService *service.GroupService
}

func NewGroupHandler(groupService *service.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

// List handles GET /api/v1/teams/{teamID}/groups
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	teamID := chi.URLParam(r, "teamID")

	groups, err := h.groupService.GetGroupsByTeam(ctx, teamID)
	if err != nil {
		respondError(w, err, "Failed to load groups")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"groups": groups})
}

// Get handles GET /api/v1/teams/{teamID}/groups/{groupID}
func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	groupID := chi.URLParam(r, "groupID")

	group, err := h.groupService.GetGroup(ctx, groupID)
	if err != nil {
		respondError(w, err, "Failed to load group")
		return
	}

	respondJSON(w, http.StatusOK, group)
}

// GroupRequest is the create/update body for a group
type GroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Create handles POST /api/v1/teams/{teamID}/groups
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	teamID := chi.URLParam(r, "teamID")

	var req GroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	group := &domain.TeamGroup{
		TeamID:      teamID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.groupService.CreateGroup(ctx, group); err != nil {
		respondError(w, err, "Failed to create group")
		return
	}

	respondJSON(w, http.StatusCreated, group)
}

// Update handles PUT /api/v1/teams/{teamID}/groups/{groupID}
func (h *GroupHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	teamID := chi.URLParam(r, "teamID")
	groupID := chi.URLParam(r, "groupID")

	var req GroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	group := &domain.TeamGroup{
		ID:          groupID,
		TeamID:      teamID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.groupService.UpdateGroup(ctx, group); err != nil {
		respondError(w, err, "Failed to update group")
		return
	}

	respondJSON(w, http.StatusOK, group)
}

// Delete handles DELETE /api/v1/teams/{teamID}/groups/{groupID}
func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	teamID := chi.URLParam(r, "teamID")
	groupID := chi.URLParam(r, "groupID")

	if err := h.groupService.DeleteGroup(ctx, teamID, groupID); err != nil {
		respondError(w, err, "Failed to delete group")
		return
	}

	respondMessage(w, http.StatusOK, "Group deleted")
}

// ListMembers handles GET /api/v1/teams/{teamID}/groups/{groupID}/members
func (h *GroupHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	groupID := chi.URLParam(r, "groupID")

	members, err := h.groupService.GetGroupMembers(ctx, groupID)
	if err != nil {
		respondError(w, err, "Failed to load group members")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"members": members})
}

// GroupMemberRequest is the add body for a group member
type GroupMemberRequest struct {
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
	Position string `json:"position"`
}

// AddMember handles POST /api/v1/teams/{teamID}/groups/{groupID}/members.
// Membership in another group of the same team is rejected with a conflict.
func (h *GroupHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	teamID := chi.URLParam(r, "teamID")
	groupID := chi.URLParam(r, "groupID")

	var req GroupMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		respondMessage(w, http.StatusBadRequest, "A user id is required")
		return
	}

	member := &domain.TeamGroupMember{
		GroupID:  groupID,
		UserID:   req.UserID,
		Role:     domain.GroupRole(req.Role),
		Position: req.Position,
	}
	if err := h.groupService.AddGroupMember(ctx, teamID, member); err != nil {
		respondError(w, err, "Failed to add group member")
		return
	}

	respondJSON(w, http.StatusCreated, member)
}

// RemoveMember handles DELETE /api/v1/teams/{teamID}/groups/{groupID}/members/{userID}
func (h *GroupHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	groupID := chi.URLParam(r, "groupID")
	userID := chi.URLParam(r, "userID")

	if err := h.groupService.RemoveGroupMember(ctx, groupID, userID); err != nil {
		respondError(w, err, "Failed to remove group member")
		return
	}

	respondMessage(w, http.StatusOK, "Group member removed")
}

// UpdateMemberRole handles PUT /api/v1/teams/{teamID}/groups/{groupID}/members/{userID}/role
func (h *GroupHandler) UpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	groupID := chi.URLParam(r, "groupID")
	userID := chi.URLParam(r, "userID")

	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.groupService.UpdateGroupMemberRole(ctx, groupID, userID, domain.GroupRole(req.Role)); err != nil {
		respondError(w, err, "Failed to update group member role")
		return
	}

	respondMessage(w, http.StatusOK, "Group member role updated")
}

// UpdateMemberPosition handles PUT /api/v1/teams/{teamID}/groups/{groupID}/members/{userID}/position
func (h *GroupHandler) UpdateMemberPosition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	groupID := chi.URLParam(r, "groupID")
	userID := chi.URLParam(r, "userID")

	var req struct {
		Position string `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.groupService.UpdateGroupMemberPosition(ctx, groupID, userID, req.Position); err != nil {
		respondError(w, err, "Failed to update group member position")
		return
	}

	respondMessage(w, http.StatusOK, "Group member position updated")
}

// MyGroup handles GET /api/v1/teams/{teamID}/groups/me. It returns the group
// the caller belongs to within the team, or null.
func (h *GroupHandler) MyGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	teamID := chi.URLParam(r, "teamID")

	claims := middleware.ClaimsFromContext(ctx)
	if claims == nil {
		respondMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	group, err := h.groupService.GetUserGroupForTeam(ctx, teamID, claims.Sub)
	if err != nil {
		respondError(w, err, "Failed to load group")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"group": group})
}
