package calendar

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/phauna/phaunabot/internal/google"
)

// Client wraps the Google Calendar service for a single calendar.
//
// The underlying service is built lazily on first use so the bot can start
// before the OAuth consent flow has been completed; until a token exists
// every calendar operation fails with an authentication error and nothing
// is cached.
type Client struct {
	oauth      *google.OAuth
	calendarID string
	timeZone   string

	mu  sync.Mutex
	svc *calendar.Service
}

// NewClient creates a Calendar client for the given calendar ID. Timed
// events are created with the supplied IANA timezone name, matching what the
// calendar UI shows for them.
func NewClient(oauth *google.OAuth, calendarID, timeZone string) *Client {
	return &Client{
		oauth:      oauth,
		calendarID: calendarID,
		timeZone:   timeZone,
	}
}

// service returns the cached Calendar service, building it from the stored
// OAuth token on first use.
func (c *Client) service(ctx context.Context) (*calendar.Service, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.svc != nil {
		return c.svc, nil
	}

	ts, err := c.oauth.TokenSource(ctx)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token: %w", err)
	}

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(oauth2.NewClient(ctx, ts)))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}

	c.svc = svc
	return svc, nil
}

// ListUpcoming lists up to max future or in-progress events ordered by start
// time, with recurring events expanded to single occurrences.
func (c *Client) ListUpcoming(ctx context.Context, max int64) ([]Event, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}

	result, err := svc.Events.List(c.calendarID).
		TimeMin(time.Now().Format(time.RFC3339)).
		MaxResults(max).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	var events []Event
	for _, item := range result.Items {
		events = append(events, toEvent(item))
	}

	return events, nil
}

// Insert creates a timed event from ISO-8601 start and end timestamps.
func (c *Client) Insert(ctx context.Context, summary, startISO, endISO string) (*Event, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}

	event := &calendar.Event{
		Summary: summary,
		Start: &calendar.EventDateTime{
			DateTime: startISO,
			TimeZone: c.timeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: endISO,
			TimeZone: c.timeZone,
		},
	}

	created, err := svc.Events.Insert(c.calendarID, event).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	result := toEvent(created)
	return &result, nil
}

// InsertAllDay creates an all-day event spanning startDate up to but not
// including endDateExclusive, both in YYYY-MM-DD form. The exclusive end is
// the Calendar API's convention for all-day events.
func (c *Client) InsertAllDay(ctx context.Context, summary, startDate, endDateExclusive string) (*Event, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}

	event := &calendar.Event{
		Summary: summary,
		Start:   &calendar.EventDateTime{Date: startDate},
		End:     &calendar.EventDateTime{Date: endDateExclusive},
	}

	created, err := svc.Events.Insert(c.calendarID, event).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	result := toEvent(created)
	return &result, nil
}
