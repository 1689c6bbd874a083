package handler

import (
	"encoding/json"
	"net/http"

	"chms-be/internal/service"

	"github.com/go-chi/chi/v5"
)

type RoleHandler struct {
	permissionService *service.PermissionService
}

func NewRoleHandler(permissionService *service.PermissionService) *RoleHandler {
	return &RoleHandler{permissionService: permissionService}
}

// List handles GET /api/v1/churches/{churchID}/roles
func (h *RoleHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	churchID := chi.URLParam(r, "churchID")

	roles, err := h.permissionService.GetChurchRoles(ctx, churchID)
	if err != nil {
		respondError(w, err, "Failed to load roles")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"roles": roles})
}

// UserRolesMap handles GET /api/v1/churches/{churchID}/roles/map
func (h *RoleHandler) UserRolesMap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	churchID := chi.URLParam(r, "churchID")

	rolesMap, err := h.permissionService.GetUserRolesMap(ctx, churchID)
	if err != nil {
		respondError(w, err, "Failed to load user roles")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"user_roles": rolesMap})
}

// RoleDiffRequest is the edited role set for a member: the roles they had
// when the editor opened and the working set being saved.
type RoleDiffRequest struct {
	CurrentIDs []string `json:"current_ids"`
	WorkingIDs []string `json:"working_ids"`
}

// ApplyDiff handles PUT /api/v1/churches/{churchID}/members/{userID}/roles.
// The diff is applied as one assign/remove call per differing id.
func (h *RoleHandler) ApplyDiff(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	churchID := chi.URLParam(r, "churchID")
	userID := chi.URLParam(r, "userID")

	var req RoleDiffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.permissionService.ApplyRoleDiff(ctx, churchID, userID, req.CurrentIDs, req.WorkingIDs); err != nil {
		respondError(w, err, "Failed to update roles")
		return
	}

	respondMessage(w, http.StatusOK, "Roles updated")
}

// RoleAssignmentRequest targets a single role
type RoleAssignmentRequest struct {
	RoleID string `json:"role_id"`
}

// Assign handles POST /api/v1/churches/{churchID}/members/{userID}/roles
func (h *RoleHandler) Assign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	churchID := chi.URLParam(r, "churchID")
	userID := chi.URLParam(r, "userID")

	var req RoleAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RoleID == "" {
		respondMessage(w, http.StatusBadRequest, "A role id is required")
		return
	}

	if err := h.permissionService.AssignRoleToUser(ctx, churchID, userID, req.RoleID); err != nil {
		respondError(w, err, "Failed to assign role")
		return
	}

	respondMessage(w, http.StatusOK, "Role assigned")
}

// Remove handles DELETE /api/v1/churches/{churchID}/members/{userID}/roles/{roleID}
func (h *RoleHandler) Remove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	churchID := chi.URLParam(r, "churchID")
	userID := chi.URLParam(r, "userID")
	roleID := chi.URLParam(r, "roleID")

	if err := h.permissionService.RemoveRoleFromUser(ctx, churchID, userID, roleID); err != nil {
		respondError(w, err, "Failed to remove role")
		return
	}

	respondMessage(w, http.StatusOK, "Role removed")
}
