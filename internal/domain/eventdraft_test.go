package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventDraft_AssignmentIsExclusive(t *testing.T) {
	d := NewEventDraft(time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local))

	d.AssignMembers([]string{"u1", "u2"})
	assert.Empty(t, d.GroupID())
	assert.Equal(t, []string{"u1", "u2"}, d.MemberIDs())

	d.AssignGroup("g1")
	assert.Equal(t, "g1", d.GroupID())
	assert.Empty(t, d.MemberIDs(), "assigning a group clears the member list")

	d.AssignMembers([]string{"u3"})
	assert.Empty(t, d.GroupID(), "assigning members clears the group")
	assert.Equal(t, []string{"u3"}, d.MemberIDs())
}

func TestEventDraft_AllDayOmitsTimesButRetainsThem(t *testing.T) {
	d := NewEventDraft(time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local))
	d.Title = "Rehearsal"
	require.NoError(t, d.SetStartTime("14:00"))
	require.NoError(t, d.SetEndTime("16:30"))

	d.SetAllDay(true)
	p := d.Payload()
	assert.True(t, p.IsAllDay)
	assert.Empty(t, p.StartTime)
	assert.Empty(t, p.EndTime)

	// Toggling back restores the last-edited times
	d.SetAllDay(false)
	p = d.Payload()
	assert.Equal(t, "14:00", p.StartTime)
	assert.Equal(t, "16:30", p.EndTime)
}

func TestEventDraft_StartTimeAutoAdvancesEnd(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		wantEnd   string
	}{
		{
			name:    "End before new start advances by one hour",
			start:   "11:30",
			wantEnd: "12:30",
		},
		{
			name:    "End equal to new start advances by one hour",
			start:   "10:00",
			wantEnd: "11:00",
		},
		{
			name:    "Late start clamps end at end of day",
			start:   "23:45",
			wantEnd: "23:59",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewEventDraft(time.Now())
			// Defaults are 09:00-10:00
			require.NoError(t, d.SetStartTime(tt.start))
			assert.Equal(t, tt.start, d.StartTime())
			assert.Equal(t, tt.wantEnd, d.EndTime())
		})
	}
}

func TestEventDraft_StartTimeKeepsValidEnd(t *testing.T) {
	d := NewEventDraft(time.Now())
	require.NoError(t, d.SetEndTime("17:00"))
	require.NoError(t, d.SetStartTime("10:00"))

	assert.Equal(t, "17:00", d.EndTime(), "an end still after the new start is untouched")
}

func TestEventDraft_EndTimeRejectedWhenNotAfterStart(t *testing.T) {
	d := NewEventDraft(time.Now())
	require.NoError(t, d.SetStartTime("12:00"))

	err := d.SetEndTime("12:00")
	assert.ErrorIs(t, err, ErrEndBeforeStart)

	err = d.SetEndTime("09:15")
	assert.ErrorIs(t, err, ErrEndBeforeStart)

	// The previous end time is kept after a rejection
	assert.Equal(t, "13:00", d.EndTime())
}

func TestEventDraft_MultiDayClocksAreIndependent(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	end := time.Date(2025, 3, 11, 0, 0, 0, 0, time.Local)

	d := NewEventDraft(start)
	d.EndDate = &end
	require.NoError(t, d.SetStartTime("22:00"))
	assert.Equal(t, "10:00", d.EndTime(), "a next-day end clock is never auto-advanced")

	require.NoError(t, d.SetEndTime("02:00"), "an end clock before the start clock is valid across days")
	assert.Equal(t, "02:00", d.EndTime())
}

func TestEventDraft_PayloadMemberIDsNeverNil(t *testing.T) {
	d := NewEventDraft(time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local))

	p := d.Payload()
	assert.NotNil(t, p.MemberIDs)
	assert.Empty(t, p.MemberIDs)

	d.AssignGroup("g1")
	p = d.Payload()
	assert.Equal(t, "g1", p.GroupID)
	assert.NotNil(t, p.MemberIDs)
	assert.Empty(t, p.MemberIDs, "member ids stay empty while a group is assigned")
}

func TestEventDraft_PayloadDates(t *testing.T) {
	start := time.Date(2025, 1, 31, 23, 30, 0, 0, time.Local)
	end := time.Date(2025, 2, 1, 0, 0, 0, 0, time.Local)

	d := NewEventDraft(start)
	d.EndDate = &end

	p := d.Payload()
	assert.Equal(t, "2025-01-31", p.Date)
	assert.Equal(t, "2025-02-01", p.EndDate)
}
