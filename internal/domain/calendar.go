package domain

import (
	"fmt"
	"sort"
	"time"
)

// TeamCalendarEvent is a scheduled event on a team calendar. Assignment is a
// tagged choice: either a single group id or an explicit list of member user
// ids, never both.
type TeamCalendarEvent struct {
	ID          string    `json:"id"`
	TeamID      string    `json:"team_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        string    `json:"date"`               // YYYY-MM-DD
	EndDate     string    `json:"end_date,omitempty"` // YYYY-MM-DD
	IsAllDay    bool      `json:"is_all_day"`
	StartTime   string    `json:"start_time,omitempty"` // HH:MM
	EndTime     string    `json:"end_time,omitempty"`   // HH:MM
	GroupID     string    `json:"group_id,omitempty"`
	MemberIDs   []string  `json:"member_ids"`
	CreatedAt   time.Time `json:"created_at"`
}

// FormatLocalDate serializes a date from its local year/month/day components.
// Building the string from an ISO/UTC conversion shifts dates picked near
// local midnight into the neighbouring day.
func FormatLocalDate(t time.Time) string {
	year, month, day := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// FormatClock serializes a time of day to a zero-padded 24-hour HH:MM string
func FormatClock(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// ParseClock parses a HH:MM string into hour and minute
func ParseClock(s string) (hour, minute int, err error) {
	if _, err = fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return 0, 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("time %q out of range", s)
	}
	return hour, minute, nil
}

// EventsByDate is a date-keyed grouping of events with its keys sorted
type EventsByDate struct {
	Dates  []string
	Events map[string][]TeamCalendarEvent
}

// GroupEventsByDate groups events by their YYYY-MM-DD date. Events within a
// day keep their fetched order.
func GroupEventsByDate(events []TeamCalendarEvent) EventsByDate {
	grouped := make(map[string][]TeamCalendarEvent)
	for _, e := range events {
		grouped[e.Date] = append(grouped[e.Date], e)
	}

	dates := make([]string, 0, len(grouped))
	for date := range grouped {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	return EventsByDate{Dates: dates, Events: grouped}
}
