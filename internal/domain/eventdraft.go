package domain

import "time"

// EventDraft is the working state for composing a calendar event. Assignment
// is exclusive: assigning a group clears the member list and vice versa.
// All-day events omit start/end times from the payload but keep the
// last-edited values so toggling all-day off restores them.
type EventDraft struct {
	Title       string
	Description string
	Date        time.Time
	EndDate     *time.Time
	allDay      bool
	startTime   string // HH:MM, retained across all-day toggles
	endTime     string
	groupID     string
	memberIDs   []string
}

// NewEventDraft creates a draft for the given day with default times
func NewEventDraft(date time.Time) *EventDraft {
	return &EventDraft{
		Date:      date,
		startTime: "09:00",
		endTime:   "10:00",
	}
}

// AssignGroup assigns the event to a group, clearing any member assignment
func (d *EventDraft) AssignGroup(groupID string) {
	d.groupID = groupID
	d.memberIDs = nil
}

// AssignMembers assigns the event to explicit members, clearing any group
func (d *EventDraft) AssignMembers(memberIDs []string) {
	d.memberIDs = append([]string(nil), memberIDs...)
	d.groupID = ""
}

// GroupID returns the assigned group id, if any
func (d *EventDraft) GroupID() string {
	return d.groupID
}

// MemberIDs returns the assigned member ids, if any
func (d *EventDraft) MemberIDs() []string {
	return append([]string(nil), d.memberIDs...)
}

// SetAllDay toggles the all-day flag. Times are not discarded; they are
// simply omitted from the payload while the flag is on.
func (d *EventDraft) SetAllDay(allDay bool) {
	d.allDay = allDay
}

// AllDay reports the all-day flag
func (d *EventDraft) AllDay() bool {
	return d.allDay
}

// StartTime returns the current start time (HH:MM)
func (d *EventDraft) StartTime() string {
	return d.startTime
}

// EndTime returns the current end time (HH:MM)
func (d *EventDraft) EndTime() string {
	return d.endTime
}

// multiDay reports whether the event ends on a later day than it starts, in
// which case the start and end clocks are independent.
func (d *EventDraft) multiDay() bool {
	return d.EndDate != nil && FormatLocalDate(*d.EndDate) != FormatLocalDate(d.Date)
}

// SetStartTime applies a new start time. If the existing end time would no
// longer be after the start, the end auto-advances by one hour from the new
// start, clamped at 23:59 so the end never crosses into the next day.
func (d *EventDraft) SetStartTime(value string) error {
	startH, startM, err := ParseClock(value)
	if err != nil {
		return err
	}
	d.startTime = FormatClock(startH, startM)

	if d.multiDay() {
		return nil
	}
	endH, endM, err := ParseClock(d.endTime)
	if err != nil || endH*60+endM <= startH*60+startM {
		end := startH*60 + startM + 60
		if end > 23*60+59 {
			end = 23*60 + 59
		}
		d.endTime = FormatClock(end/60, end%60)
	}
	return nil
}

// SetEndTime applies a new end time. For a same-day event a value at or
// before the start is rejected and the existing end time is kept.
func (d *EventDraft) SetEndTime(value string) error {
	endH, endM, err := ParseClock(value)
	if err != nil {
		return err
	}
	if !d.multiDay() {
		startH, startM, err := ParseClock(d.startTime)
		if err == nil && endH*60+endM <= startH*60+startM {
			return ErrEndBeforeStart
		}
	}
	d.endTime = FormatClock(endH, endM)
	return nil
}

// Payload builds the save payload. MemberIDs is always a non-nil slice so
// the group/member exclusivity is visible in the serialized form.
func (d *EventDraft) Payload() EventPayload {
	p := EventPayload{
		Title:       d.Title,
		Description: d.Description,
		Date:        FormatLocalDate(d.Date),
		IsAllDay:    d.allDay,
		GroupID:     d.groupID,
		MemberIDs:   []string{},
	}
	if d.EndDate != nil {
		p.EndDate = FormatLocalDate(*d.EndDate)
	}
	if !d.allDay {
		p.StartTime = d.startTime
		p.EndTime = d.endTime
	}
	if d.groupID == "" {
		p.MemberIDs = append(p.MemberIDs, d.memberIDs...)
	}
	return p
}

// EventPayload is the wire form of a create/update calendar event request
type EventPayload struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Date        string   `json:"date"`
	EndDate     string   `json:"end_date,omitempty"`
	IsAllDay    bool     `json:"is_all_day"`
	StartTime   string   `json:"start_time,omitempty"`
	EndTime     string   `json:"end_time,omitempty"`
	GroupID     string   `json:"group_id,omitempty"`
	MemberIDs   []string `json:"member_ids"`
}
