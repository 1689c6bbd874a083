package handler

import (
	"encoding/json"
	"net/http"

	"chms-be/internal/domain"
	"chms-be/internal/repository"
	"chms-be/internal/service"

	"github.com/go-chi/chi/v5"
)

type CalendarHandler struct {
	calendarService *service.CalendarService
}

func NewCalendarHandler(calendarService *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService}
}

// List handles GET /api/v1/teams/{teamID}/calendar?start=&end=&search=.
// Events come back both as a flat list and grouped by date for agenda views.
func (h *CalendarHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	teamID := chi.URLParam(r, "teamID")

	query := r.URL.Query()
	filter := repository.EventFilter{
		Start:  query.Get("start"),
		End:    query.Get("end"),
		Search: query.Get("search"),
	}

	events, err := h.calendarService.GetCalendarEvents(ctx, teamID, filter)
	if err != nil {
		respondError(w, err, "Failed to load calendar events")
		return
	}

	grouped := domain.GroupEventsByDate(events)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"events":   events,
		"dates":    grouped.Dates,
		"by_date":  grouped.Events,
	})
}

// Create handles POST /api/v1/teams/{teamID}/calendar
func (h *CalendarHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	teamID := chi.URLParam(r, "teamID")

	var payload domain.EventPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	event, err := h.calendarService.CreateCalendarEvent(ctx, teamID, payload)
	if err != nil {
		respondError(w, err, "Failed to create event")
		return
	}

	respondJSON(w, http.StatusCreated, event)
}

// Update handles PUT /api/v1/teams/{teamID}/calendar/{eventID}
func (h *CalendarHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	teamID := chi.URLParam(r, "teamID")
	eventID := chi.URLParam(r, "eventID")

	var payload domain.EventPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	event, err := h.calendarService.UpdateCalendarEvent(ctx, teamID, eventID, payload)
	if err != nil {
		respondError(w, err, "Failed to update event")
		return
	}

	respondJSON(w, http.StatusOK, event)
}

// Delete handles DELETE /api/v1/teams/{teamID}/calendar/{eventID}
func (h *CalendarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	teamID := chi.URLParam(r, "teamID")
	eventID := chi.URLParam(r, "eventID")

	if err := h.calendarService.DeleteCalendarEvent(ctx, teamID, eventID); err != nil {
		respondError(w, err, "Failed to delete event")
		return
	}

	respondMessage(w, http.StatusOK, "Event deleted")
}
