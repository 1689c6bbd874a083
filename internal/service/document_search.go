package service

import (
	"context"
	"time"

	"chms-be/internal/domain"
	"chms-be/pkg/debounce"

	"go.uber.org/zap"
)

// searchDebounce is how long typing must be quiet before a search fires
const searchDebounce = 300 * time.Millisecond

// EventSearcher is the calendar surface the searcher needs
type EventSearcher interface {
	SearchEvents(ctx context.Context, teamID, search string) ([]domain.TeamCalendarEvent, error)
}

// DocumentSearcher coordinates the debounced server-side event search used
// when linking a document to a calendar event. Keystrokes restart the timer;
// the search fires only after a quiet period; Close cancels anything pending
// so no result is delivered after the linking flow is dismissed.
type DocumentSearcher struct {
	calendar EventSearcher
	deb      *debounce.Debouncer
	logger   *zap.Logger
}

// NewDocumentSearcher creates a searcher bound to one linking session
func NewDocumentSearcher(calendar EventSearcher, logger *zap.Logger) *DocumentSearcher {
	return &DocumentSearcher{
		calendar: calendar,
		deb:      debounce.New(searchDebounce),
		logger:   logger,
	}
}

// SetQuery registers a keystroke. An empty query cancels any pending search
// (the caller reverts to the static list); a non-empty query schedules a
// search that delivers its result asynchronously.
func (s *DocumentSearcher) SetQuery(teamID, query string, deliver func([]domain.TeamCalendarEvent, error)) {
	if query == "" {
		s.deb.Cancel()
		return
	}

	s.deb.Call(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		events, err := s.calendar.SearchEvents(ctx, teamID, query)
		if err != nil {
			s.logger.Warn("Event search failed",
				zap.String("team_id", teamID),
				zap.String("query", query),
				zap.Error(err))
		}
		deliver(events, err)
	})
}

// Close cancels any pending search permanently. Safe to call more than once.
func (s *DocumentSearcher) Close() {
	s.deb.Stop()
}
