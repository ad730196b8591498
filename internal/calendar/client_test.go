package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	calendar "google.golang.org/api/calendar/v3"
)

func TestToEvent(t *testing.T) {
	tests := []struct {
		name     string
		input    *calendar.Event
		expected Event
	}{
		{
			name: "timed event",
			input: &calendar.Event{
				Id:      "evt1",
				Summary: "Valhalla Show",
				Status:  "confirmed",
				Start:   &calendar.EventDateTime{DateTime: "2025-08-15T22:00:00-05:00"},
				End:     &calendar.EventDateTime{DateTime: "2025-08-15T23:00:00-05:00"},
			},
			expected: Event{
				ID:      "evt1",
				Summary: "Valhalla Show",
				Status:  StatusConfirmed,
				Start:   EventTime{DateTime: "2025-08-15T22:00:00-05:00"},
				End:     EventTime{DateTime: "2025-08-15T23:00:00-05:00"},
			},
		},
		{
			name: "all-day event keeps date-only endpoints",
			input: &calendar.Event{
				Id:      "evt2",
				Summary: "Conference",
				Status:  "confirmed",
				Start:   &calendar.EventDateTime{Date: "2025-08-15"},
				End:     &calendar.EventDateTime{Date: "2025-08-17"},
			},
			expected: Event{
				ID:      "evt2",
				Summary: "Conference",
				Status:  StatusConfirmed,
				Start:   EventTime{Date: "2025-08-15"},
				End:     EventTime{Date: "2025-08-17"},
			},
		},
		{
			name: "missing endpoints",
			input: &calendar.Event{
				Id:     "evt3",
				Status: "tentative",
			},
			expected: Event{
				ID:     "evt3",
				Status: StatusTentative,
			},
		},
		{
			name:     "nil event",
			input:    nil,
			expected: Event{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, toEvent(tt.input))
		})
	}
}

func TestEventTimeIsZero(t *testing.T) {
	assert.True(t, EventTime{}.IsZero())
	assert.False(t, EventTime{DateTime: "2025-08-15T22:00:00-05:00"}.IsZero())
	assert.False(t, EventTime{Date: "2025-08-15"}.IsZero())
}
