package repository

import (
	"context"
	"fmt"

	"chms-be/internal/domain"
	"chms-be/pkg/database"

	"github.com/jackc/pgx/v5"
)

type CalendarRepository struct {
	db *database.PostgresDB
}

func NewCalendarRepository(db *database.PostgresDB) *CalendarRepository {
	return &CalendarRepository{db: db}
}

// EventFilter narrows a calendar listing. Zero values mean no constraint.
type EventFilter struct {
	Start  string // YYYY-MM-DD inclusive
	End    string // YYYY-MM-DD inclusive
	Search string // case-insensitive substring on title
}

// ListEvents returns a team's events, optionally narrowed by date range and
// title search, ordered by date then start time.
func (r *CalendarRepository) ListEvents(ctx context.Context, teamID string, filter EventFilter) ([]domain.TeamCalendarEvent, error) {
	query := `
		SELECT id, team_id, title, COALESCE(description, ''),
		       to_char(date, 'YYYY-MM-DD'),
		       COALESCE(to_char(end_date, 'YYYY-MM-DD'), ''),
		       is_all_day,
		       COALESCE(to_char(start_time, 'HH24:MI'), ''),
		       COALESCE(to_char(end_time, 'HH24:MI'), ''),
		       COALESCE(group_id::text, ''), COALESCE(member_ids, '{}'), created_at
		FROM team_calendar_events
		WHERE team_id = $1
	`
	args := []interface{}{teamID}

	if filter.Start != "" {
		args = append(args, filter.Start)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if filter.End != "" {
		args = append(args, filter.End)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND title ILIKE $%d", len(args))
	}

	query += " ORDER BY date, start_time NULLS FIRST"

	rows, err := r.db.ReadPool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}
	defer rows.Close()

	events := make([]domain.TeamCalendarEvent, 0)
	for rows.Next() {
		var e domain.TeamCalendarEvent
		if err := rows.Scan(&e.ID, &e.TeamID, &e.Title, &e.Description,
			&e.Date, &e.EndDate, &e.IsAllDay, &e.StartTime, &e.EndTime,
			&e.GroupID, &e.MemberIDs, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan calendar event: %w", err)
		}
		if e.MemberIDs == nil {
			e.MemberIDs = []string{}
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

// GetEvent returns a single event, or nil when absent
func (r *CalendarRepository) GetEvent(ctx context.Context, eventID string) (*domain.TeamCalendarEvent, error) {
	query := `
		SELECT id, team_id, title, COALESCE(description, ''),
		       to_char(date, 'YYYY-MM-DD'),
		       COALESCE(to_char(end_date, 'YYYY-MM-DD'), ''),
		       is_all_day,
		       COALESCE(to_char(start_time, 'HH24:MI'), ''),
		       COALESCE(to_char(end_time, 'HH24:MI'), ''),
		       COALESCE(group_id::text, ''), COALESCE(member_ids, '{}'), created_at
		FROM team_calendar_events
		WHERE id = $1
	`

	var e domain.TeamCalendarEvent
	err := r.db.ReadPool.QueryRow(ctx, query, eventID).Scan(
		&e.ID, &e.TeamID, &e.Title, &e.Description,
		&e.Date, &e.EndDate, &e.IsAllDay, &e.StartTime, &e.EndTime,
		&e.GroupID, &e.MemberIDs, &e.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get calendar event: %w", err)
	}
	if e.MemberIDs == nil {
		e.MemberIDs = []string{}
	}

	return &e, nil
}

// CreateEvent inserts an event from a composed payload. The group/member
// exclusivity is already enforced by the payload builder; NULLIF keeps an
// empty group id out of the column.
func (r *CalendarRepository) CreateEvent(ctx context.Context, teamID string, payload domain.EventPayload) (*domain.TeamCalendarEvent, error) {
	query := `
		INSERT INTO team_calendar_events
			(team_id, title, description, date, end_date, is_all_day, start_time, end_time, group_id, member_ids)
		VALUES ($1, $2, NULLIF($3, ''), $4::date, NULLIF($5, '')::date, $6,
		        NULLIF($7, '')::time, NULLIF($8, '')::time, NULLIF($9, '')::uuid, $10)
		RETURNING id
	`

	var eventID string
	err := r.db.Pool.QueryRow(ctx, query,
		teamID, payload.Title, payload.Description, payload.Date, payload.EndDate,
		payload.IsAllDay, payload.StartTime, payload.EndTime, payload.GroupID, payload.MemberIDs,
	).Scan(&eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar event: %w", err)
	}

	return r.GetEvent(ctx, eventID)
}

// UpdateEvent replaces an event's fields from a composed payload
func (r *CalendarRepository) UpdateEvent(ctx context.Context, eventID string, payload domain.EventPayload) (*domain.TeamCalendarEvent, error) {
	query := `
		UPDATE team_calendar_events
		SET title = $2, description = NULLIF($3, ''), date = $4::date,
		    end_date = NULLIF($5, '')::date, is_all_day = $6,
		    start_time = NULLIF($7, '')::time, end_time = NULLIF($8, '')::time,
		    group_id = NULLIF($9, '')::uuid, member_ids = $10
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		eventID, payload.Title, payload.Description, payload.Date, payload.EndDate,
		payload.IsAllDay, payload.StartTime, payload.EndTime, payload.GroupID, payload.MemberIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to update calendar event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}

	return r.GetEvent(ctx, eventID)
}

// DeleteEvent removes an event
func (r *CalendarRepository) DeleteEvent(ctx context.Context, eventID string) error {
	if _, err := r.db.Pool.Exec(ctx, `DELETE FROM team_calendar_events WHERE id = $1`, eventID); err != nil {
		return fmt.Errorf("failed to delete calendar event: %w", err)
	}
	return nil
}
