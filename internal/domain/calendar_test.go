package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatLocalDate(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{
			name:     "Plain date",
			input:    time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local),
			expected: "2025-06-15",
		},
		{
			name:     "Just before local midnight stays on the same day",
			input:    time.Date(2025, 12, 31, 23, 59, 59, 0, time.Local),
			expected: "2025-12-31",
		},
		{
			name:     "Single-digit month and day are zero-padded",
			input:    time.Date(2025, 3, 5, 0, 0, 0, 0, time.Local),
			expected: "2025-03-05",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatLocalDate(tt.input))
		})
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "09:05", FormatClock(9, 5))
	assert.Equal(t, "00:00", FormatClock(0, 0))
	assert.Equal(t, "23:59", FormatClock(23, 59))
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantHour   int
		wantMinute int
		wantErr    bool
	}{
		{name: "Valid time", input: "14:30", wantHour: 14, wantMinute: 30},
		{name: "Midnight", input: "00:00"},
		{name: "Hour out of range", input: "24:00", wantErr: true},
		{name: "Minute out of range", input: "12:60", wantErr: true},
		{name: "Garbage", input: "noon", wantErr: true},
		{name: "Empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hour, minute, err := ParseClock(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantHour, hour)
			assert.Equal(t, tt.wantMinute, minute)
		})
	}
}

func TestGroupEventsByDate(t *testing.T) {
	events := []TeamCalendarEvent{
		{ID: "e1", Date: "2025-04-02", Title: "Practice"},
		{ID: "e2", Date: "2025-04-01", Title: "Setup"},
		{ID: "e3", Date: "2025-04-02", Title: "Service"},
	}

	grouped := GroupEventsByDate(events)

	assert.Equal(t, []string{"2025-04-01", "2025-04-02"}, grouped.Dates)
	assert.Len(t, grouped.Events["2025-04-01"], 1)
	assert.Len(t, grouped.Events["2025-04-02"], 2)

	// Fetch order within a day is preserved
	assert.Equal(t, "e1", grouped.Events["2025-04-02"][0].ID)
	assert.Equal(t, "e3", grouped.Events["2025-04-02"][1].ID)
}

func TestGroupEventsByDate_Empty(t *testing.T) {
	grouped := GroupEventsByDate(nil)
	assert.Empty(t, grouped.Dates)
	assert.Empty(t, grouped.Events)
}
