package calendar

import (
	calendar "google.golang.org/api/calendar/v3"
)

// Event status values returned by the Calendar API.
const (
	StatusConfirmed = "confirmed"
	StatusTentative = "tentative"
	StatusCancelled = "cancelled"
)

// EventTime is one endpoint of an event. Exactly one of DateTime (RFC 3339
// with offset) or Date (YYYY-MM-DD, all-day events) is set; both may be empty
// on malformed API responses.
type EventTime struct {
	DateTime string
	Date     string
}

// IsZero reports whether neither endpoint field is set.
func (t EventTime) IsZero() bool {
	return t.DateTime == "" && t.Date == ""
}

// Event represents a calendar event as the bot consumes it. Start and End
// keep the API's raw value shape so display code can distinguish all-day
// (date-only) endpoints from timed ones.
type Event struct {
	ID      string
	Summary string
	Start   EventTime
	End     EventTime
	Status  string
}

// toEvent converts a Google Calendar event to the bot's Event type.
func toEvent(e *calendar.Event) Event {
	if e == nil {
		return Event{}
	}

	event := Event{
		ID:      e.Id,
		Summary: e.Summary,
		Status:  e.Status,
	}
	if e.Start != nil {
		event.Start = EventTime{DateTime: e.Start.DateTime, Date: e.Start.Date}
	}
	if e.End != nil {
		event.End = EventTime{DateTime: e.End.DateTime, Date: e.End.Date}
	}

	return event
}
