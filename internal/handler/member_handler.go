package handler

import (
	"encoding/json"
	"net/http"

	"chms-be/internal/domain"
	"chms-be/internal/middleware"
	"chms-be/internal/service"

	"github.com/go-chi/chi/v5"
)

type MemberHandler struct {
	memberService *service.MemberService
}

func NewMemberHandler(memberService *service.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// MemberListResponse carries the filtered roster plus the chip counts
// computed over the unfiltered collection.
type MemberListResponse struct {
	Members []domain.Member `json:"members"`
	Total   int             `json:"total"`
	Counts  map[string]int  `json:"counts"`
}

// List handles GET /api/v1/churches/{churchID}/members?search=&role=
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	churchID := chi.URLParam(r, "churchID")

	members, err := h.memberService.List(ctx, churchID)
	if err != nil {
		respondError(w, err, "Failed to load members")
		return
	}

	search := r.URL.Query().Get("search")
	roleFilter := r.URL.Query().Get("role")

	respondJSON(w, http.StatusOK, MemberListResponse{
		Members: domain.FilterMembers(members, search, roleFilter),
		Total:   len(members),
		Counts:  domain.CountMembersByRole(members),
	})
}

// BulkRemoveRequest names the members to remove
type BulkRemoveRequest struct {
	UserIDs []string `json:"user_ids"`
}

// BulkRemove handles POST /api/v1/churches/{churchID}/members/remove.
// Each id is removed with an independent call; the response reports the
// outcome per id.
func (h *MemberHandler) BulkRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	churchID := chi.URLParam(r, "churchID")

	var req BulkRemoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.UserIDs) == 0 {
		respondMessage(w, http.StatusBadRequest, "At least one user id is required")
		return
	}

	// The acting user cannot remove themselves through the bulk flow
	if claims := middleware.ClaimsFromContext(ctx); claims != nil {
		for _, id := range req.UserIDs {
			if id == claims.Sub {
				respondMessage(w, http.StatusBadRequest, "You cannot remove yourself")
				return
			}
		}
	}

	outcomes := h.memberService.RemoveMembers(ctx, churchID, req.UserIDs)
	respondJSON(w, http.StatusOK, map[string]interface{}{"results": outcomes})
}
