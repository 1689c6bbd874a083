package service

import (
	"context"

	"chms-be/internal/domain"
	"chms-be/internal/repository"
	"chms-be/pkg/apperrors"
	"chms-be/pkg/redis"

	"go.uber.org/zap"
)

type CalendarService struct {
	calendarRepo *repository.CalendarRepository
	cacheService *CacheService
	logger       *zap.Logger
}

func NewCalendarService(calendarRepo *repository.CalendarRepository, cacheService *CacheService, logger *zap.Logger) *CalendarService {
	return &CalendarService{
		calendarRepo: calendarRepo,
		cacheService: cacheService,
		logger:       logger,
	}
}

// GetCalendarEvents returns a team's events, optionally narrowed by date
// range or search. Only the unfiltered listing is cached; filtered reads go
// straight to the database.
func (s *CalendarService) GetCalendarEvents(ctx context.Context, teamID string, filter repository.EventFilter) ([]domain.TeamCalendarEvent, error) {
	unfiltered := filter == (repository.EventFilter{})
	key := s.cacheService.Keys().KeyTeamCalendar(teamID)

	if unfiltered {
		var events []domain.TeamCalendarEvent
		if s.cacheService.GetCollection(ctx, key, &events) {
			return events, nil
		}
	}

	events, err := s.calendarRepo.ListEvents(ctx, teamID, filter)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load calendar events", err)
	}

	if unfiltered {
		s.cacheService.StoreCollection(key, redis.TTLCalendar, events)
	}
	return events, nil
}

// SearchEvents is the server-side title search used by the document linking
// flow; results supersede the static list while the query is non-empty.
func (s *CalendarService) SearchEvents(ctx context.Context, teamID, search string) ([]domain.TeamCalendarEvent, error) {
	return s.GetCalendarEvents(ctx, teamID, repository.EventFilter{Search: search})
}

// CreateCalendarEvent creates an event from a composed payload
func (s *CalendarService) CreateCalendarEvent(ctx context.Context, teamID string, payload domain.EventPayload) (*domain.TeamCalendarEvent, error) {
	if err := validateEventPayload(payload); err != nil {
		return nil, err
	}

	event, err := s.calendarRepo.CreateEvent(ctx, teamID, payload)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to create event", err)
	}

	s.cacheService.Invalidate(s.cacheService.Keys().KeyTeamCalendar(teamID))
	return event, nil
}

// UpdateCalendarEvent updates an event from a composed payload
func (s *CalendarService) UpdateCalendarEvent(ctx context.Context, teamID, eventID string, payload domain.EventPayload) (*domain.TeamCalendarEvent, error) {
	if err := validateEventPayload(payload); err != nil {
		return nil, err
	}

	event, err := s.calendarRepo.UpdateEvent(ctx, eventID, payload)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to update event", err)
	}
	if event == nil {
		return nil, apperrors.NewNotFoundError("Event not found")
	}

	s.cacheService.Invalidate(s.cacheService.Keys().KeyTeamCalendar(teamID))
	return event, nil
}

// DeleteCalendarEvent deletes an event
func (s *CalendarService) DeleteCalendarEvent(ctx context.Context, teamID, eventID string) error {
	if err := s.calendarRepo.DeleteEvent(ctx, eventID); err != nil {
		return apperrors.NewInternalError("Failed to delete event", err)
	}

	s.cacheService.Invalidate(s.cacheService.Keys().KeyTeamCalendar(teamID))
	return nil
}

// validateEventPayload enforces the assignment exclusivity and time rules on
// payloads arriving over the wire, where the draft builder's guarantees do
// not apply.
func validateEventPayload(payload domain.EventPayload) error {
	if payload.Title == "" {
		return apperrors.NewValidationError("Event title is required", nil)
	}
	if payload.Date == "" {
		return apperrors.NewValidationError("Event date is required", nil)
	}
	if payload.GroupID != "" && len(payload.MemberIDs) > 0 {
		return apperrors.NewValidationError("Event cannot be assigned to both a group and members", nil)
	}
	if payload.IsAllDay && (payload.StartTime != "" || payload.EndTime != "") {
		return apperrors.NewValidationError("All-day events cannot carry start or end times", nil)
	}
	if !payload.IsAllDay && payload.StartTime != "" && payload.EndTime != "" {
		startH, startM, err := domain.ParseClock(payload.StartTime)
		if err != nil {
			return apperrors.NewValidationError("Invalid start time", nil)
		}
		endH, endM, err := domain.ParseClock(payload.EndTime)
		if err != nil {
			return apperrors.NewValidationError("Invalid end time", nil)
		}
		// The clock ordering only binds same-day events; a multi-day event's
		// end clock belongs to a later day.
		sameDay := payload.EndDate == "" || payload.EndDate == payload.Date
		if sameDay && endH*60+endM <= startH*60+startM {
			return apperrors.NewValidationError(domain.ErrEndBeforeStart.Error(), nil)
		}
	}
	return nil
}
