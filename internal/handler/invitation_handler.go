package handler

import (
	"net/http"

	"chms-be/internal/domain"
	"chms-be/internal/service"

	"github.com/go-chi/chi/v5"
)

type InvitationHandler struct {
	invitationService *service.InvitationService
}

func NewInvitationHandler(invitationService *service.InvitationService) *InvitationHandler {
	return &InvitationHandler{invitationService: invitationService}
}

// InvitationListResponse carries the (optionally filtered) requests and the
// per-status badge counts over the unfiltered collection.
type InvitationListResponse struct {
	Requests []domain.MembershipRequest   `json:"requests"`
	Counts   map[domain.RequestStatus]int `json:"counts"`
}

// List handles GET /api/v1/churches/{churchID}/invitations?status=
func (h *InvitationHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	churchID := chi.URLParam(r, "churchID")

	requests, err := h.invitationService.List(ctx, churchID)
	if err != nil {
		respondError(w, err, "Failed to load invitations")
		return
	}

	response := InvitationListResponse{
		Requests: requests,
		Counts:   domain.CountRequestsByStatus(requests),
	}

	if status := domain.RequestStatus(r.URL.Query().Get("status")); status != "" {
		if !status.Valid() {
			respondMessage(w, http.StatusBadRequest, "Unknown invitation status")
			return
		}
		response.Requests = domain.FilterRequestsByStatus(requests, status)
	}

	respondJSON(w, http.StatusOK, response)
}

// Accept handles POST /api/v1/churches/{churchID}/invitations/{requestID}/accept
func (h *InvitationHandler) Accept(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	churchID := chi.URLParam(r, "churchID")
	requestID := chi.URLParam(r, "requestID")

	if err := h.invitationService.Accept(ctx, churchID, requestID); err != nil {
		respondError(w, err, "Failed to accept invitation")
		return
	}

	respondMessage(w, http.StatusOK, "Invitation accepted")
}

// Decline handles POST /api/v1/churches/{churchID}/invitations/{requestID}/decline
func (h *InvitationHandler) Decline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	churchID := chi.URLParam(r, "churchID")
	requestID := chi.URLParam(r, "requestID")

	if err := h.invitationService.Decline(ctx, churchID, requestID); err != nil {
		respondError(w, err, "Failed to decline invitation")
		return
	}

	respondMessage(w, http.StatusOK, "Invitation declined")
}
