package bot

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phauna/phaunabot/internal/calendar"
	"github.com/phauna/phaunabot/internal/timefmt"
)

type sentReply struct {
	chatID int64
	text   string
}

type fakeReplier struct {
	replies []sentReply
	err     error
}

func (r *fakeReplier) Reply(chatID int64, text string) error {
	r.replies = append(r.replies, sentReply{chatID: chatID, text: text})
	return r.err
}

type insertCall struct {
	summary string
	start   string
	end     string
}

type fakeCalendar struct {
	events    []calendar.Event
	created   *calendar.Event
	listErr   error
	insertErr error

	listCalls   []int64
	insertCalls []insertCall
	allDayCalls []insertCall
}

func (c *fakeCalendar) ListUpcoming(_ context.Context, max int64) ([]calendar.Event, error) {
	c.listCalls = append(c.listCalls, max)
	if c.listErr != nil {
		return nil, c.listErr
	}
	return c.events, nil
}

func (c *fakeCalendar) Insert(_ context.Context, summary, startISO, endISO string) (*calendar.Event, error) {
	c.insertCalls = append(c.insertCalls, insertCall{summary: summary, start: startISO, end: endISO})
	if c.insertErr != nil {
		return nil, c.insertErr
	}
	return c.created, nil
}

func (c *fakeCalendar) InsertAllDay(_ context.Context, summary, startDate, endDateExclusive string) (*calendar.Event, error) {
	c.allDayCalls = append(c.allDayCalls, insertCall{summary: summary, start: startDate, end: endDateExclusive})
	if c.insertErr != nil {
		return nil, c.insertErr
	}
	return c.created, nil
}

func (c *fakeCalendar) called() bool {
	return len(c.listCalls)+len(c.insertCalls)+len(c.allDayCalls) > 0
}

const allowedChat int64 = 123456789

func newTestDispatcher(replier *fakeReplier, cal *fakeCalendar) *Dispatcher {
	return NewDispatcher(Config{
		Replier:        replier,
		Calendar:       cal,
		AllowedChatIDs: []string{"123456789"},
		UTCOffsetHours: timefmt.DefaultOffsetHours,
	})
}

func lastReply(t *testing.T, r *fakeReplier) sentReply {
	t.Helper()
	require.NotEmpty(t, r.replies)
	return r.replies[len(r.replies)-1]
}

func TestHandleMessageUnauthorized(t *testing.T) {
	replier := &fakeReplier{}
	cal := &fakeCalendar{}
	d := newTestDispatcher(replier, cal)

	d.HandleMessage(context.Background(), 555, "/listevents")

	reply := lastReply(t, replier)
	assert.Equal(t, int64(555), reply.chatID)
	assert.Equal(t, "Access Denied", reply.text)
	assert.False(t, cal.called(), "no collaborator call for unauthorized chats")
}

func TestHandleMessageStart(t *testing.T) {
	replier := &fakeReplier{}
	d := newTestDispatcher(replier, &fakeCalendar{})

	d.HandleMessage(context.Background(), allowedChat, "/start")

	assert.Equal(t, "Hi I'm PhaunaBot!", lastReply(t, replier).text)
}

func TestHandleMessageUnknownCommand(t *testing.T) {
	replier := &fakeReplier{}
	cal := &fakeCalendar{}
	d := newTestDispatcher(replier, cal)

	d.HandleMessage(context.Background(), allowedChat, "/frobnicate now")

	assert.Equal(t, "Command not recognized", lastReply(t, replier).text)
	assert.False(t, cal.called())
}

func TestHandleMessageEmptyText(t *testing.T) {
	replier := &fakeReplier{}
	d := newTestDispatcher(replier, &fakeCalendar{})

	d.HandleMessage(context.Background(), allowedChat, "   ")

	assert.Equal(t, "Command not recognized", lastReply(t, replier).text)
}

func TestHandleMessageHelp(t *testing.T) {
	replier := &fakeReplier{}
	cal := &fakeCalendar{}
	d := newTestDispatcher(replier, cal)

	d.HandleMessage(context.Background(), allowedChat, "/addevent ?")

	reply := lastReply(t, replier)
	assert.Contains(t, reply.text, "/addevent")
	assert.Contains(t, reply.text, "SUMMARY")
	assert.False(t, cal.called(), "help requests never reach the handler")
}

func TestHandleMessageHelpUnknownCommand(t *testing.T) {
	replier := &fakeReplier{}
	d := newTestDispatcher(replier, &fakeCalendar{})

	d.HandleMessage(context.Background(), allowedChat, "/frobnicate ?")

	assert.Equal(t, "Command not recognized", lastReply(t, replier).text)
}

func TestHandleMessageListEventsDefaultCount(t *testing.T) {
	replier := &fakeReplier{}
	cal := &fakeCalendar{
		events: []calendar.Event{
			{
				Summary: "Show",
				Start:   calendar.EventTime{DateTime: "2025-08-15T10:00:00-05:00"},
				End:     calendar.EventTime{DateTime: "2025-08-15T11:00:00-05:00"},
			},
		},
	}
	d := newTestDispatcher(replier, cal)

	d.HandleMessage(context.Background(), allowedChat, "/listevents")

	require.Equal(t, []int64{5}, cal.listCalls)
	assert.Equal(t, "• Show: 8/15/2025 10:00 am", lastReply(t, replier).text)
}

func TestHandleMessageListEventsExplicitCount(t *testing.T) {
	replier := &fakeReplier{}
	cal := &fakeCalendar{}
	d := newTestDispatcher(replier, cal)

	d.HandleMessage(context.Background(), allowedChat, "/listevents 3")

	assert.Equal(t, []int64{3}, cal.listCalls)
	assert.Equal(t, "No upcoming events", lastReply(t, replier).text)
}

func TestHandleMessageListEventsBadCount(t *testing.T) {
	replier := &fakeReplier{}
	cal := &fakeCalendar{}
	d := newTestDispatcher(replier, cal)

	d.HandleMessage(context.Background(), allowedChat, "/listevents soon")

	assert.Contains(t, lastReply(t, replier).text, "Error!")
	assert.False(t, cal.called())
}

func TestHandleMessageListEventsFailure(t *testing.T) {
	replier := &fakeReplier{}
	cal := &fakeCalendar{listErr: errors.New("api down")}
	d := newTestDispatcher(replier, cal)

	d.HandleMessage(context.Background(), allowedChat, "/listevents")

	reply := lastReply(t, replier)
	assert.Equal(t, calendarFailureReply, reply.text)
	assert.NotContains(t, reply.text, "api down", "internal detail never reaches the chat")
}

func TestHandleMessageAddEvent(t *testing.T) {
	replier := &fakeReplier{}
	cal := &fakeCalendar{
		created: &calendar.Event{
			Summary: "Valhalla Show",
			Status:  calendar.StatusConfirmed,
			Start:   calendar.EventTime{DateTime: "2025-08-15T22:00:00-05:00"},
			End:     calendar.EventTime{DateTime: "2025-08-15T23:00:00-05:00"},
		},
	}
	d := newTestDispatcher(replier, cal)

	d.HandleMessage(context.Background(), allowedChat, `/addevent "Valhalla Show" 8/15/2025 10:00 pm 11:00 pm`)

	require.Len(t, cal.insertCalls, 1)
	call := cal.insertCalls[0]
	assert.Equal(t, "Valhalla Show", call.summary)
	assert.Equal(t, "2025-08-15T22:00:00-05:00", call.start)
	assert.Equal(t, "2025-08-15T23:00:00-05:00", call.end)

	reply := lastReply(t, replier)
	assert.Contains(t, reply.text, "Event created:")
	assert.Contains(t, reply.text, "• Valhalla Show: 8/15/2025 10:00 pm")
}

func TestHandleMessageAddEventArityError(t *testing.T) {
	replier := &fakeReplier{}
	cal := &fakeCalendar{}
	d := newTestDispatcher(replier, cal)

	// Three tokens total: one argument short.
	d.HandleMessage(context.Background(), allowedChat, `/addevent "Valhalla Show" 8/15/2025`)

	assert.Contains(t, lastReply(t, replier).text, "Error! an add-event message")
	assert.False(t, cal.called(), "arity errors never reach the collaborator")
}

func TestHandleMessageAddEventBadDate(t *testing.T) {
	replier := &fakeReplier{}
	cal := &fakeCalendar{}
	d := newTestDispatcher(replier, cal)

	d.HandleMessage(context.Background(), allowedChat, `/addevent "Show" tomorrow 10:00 pm 11:00 pm`)

	assert.Contains(t, lastReply(t, replier).text, "Error!")
	assert.False(t, cal.called())
}

func TestHandleMessageAddEventNotConfirmed(t *testing.T) {
	replier := &fakeReplier{}
	cal := &fakeCalendar{
		created: &calendar.Event{Summary: "Show", Status: calendar.StatusTentative},
	}
	d := newTestDispatcher(replier, cal)

	d.HandleMessage(context.Background(), allowedChat, `/addevent "Show" 8/15/2025 10:00 pm 11:00 pm`)

	assert.Equal(t, notConfirmedReply, lastReply(t, replier).text)
}

func TestHandleMessageAddEventFailure(t *testing.T) {
	replier := &fakeReplier{}
	cal := &fakeCalendar{insertErr: errors.New("quota exceeded")}
	d := newTestDispatcher(replier, cal)

	d.HandleMessage(context.Background(), allowedChat, `/addevent "Show" 8/15/2025 10:00 pm 11:00 pm`)

	reply := lastReply(t, replier)
	assert.Equal(t, calendarFailureReply, reply.text)
	assert.NotContains(t, reply.text, "quota")
}

func TestHandleMessageAddEventSpan(t *testing.T) {
	replier := &fakeReplier{}
	cal := &fakeCalendar{
		created: &calendar.Event{
			Summary: "Tour",
			Status:  calendar.StatusConfirmed,
			Start:   calendar.EventTime{Date: "2025-08-15"},
			End:     calendar.EventTime{Date: "2025-08-18"},
		},
	}
	d := newTestDispatcher(replier, cal)

	d.HandleMessage(context.Background(), allowedChat, `/addeventspan "Tour" 8/15/2025 8/17/2025`)

	require.Len(t, cal.allDayCalls, 1)
	call := cal.allDayCalls[0]
	assert.Equal(t, "Tour", call.summary)
	assert.Equal(t, "2025-08-15", call.start)
	assert.Equal(t, "2025-08-18", call.end, "all-day end date is exclusive")

	reply := lastReply(t, replier)
	assert.Contains(t, reply.text, "Event created:")
	// The API reports the stored exclusive end date.
	assert.Contains(t, reply.text, "• Tour: 8/15/2025 - 8/18/2025")
}

func TestHandleMessageAddEventSpanArityError(t *testing.T) {
	replier := &fakeReplier{}
	cal := &fakeCalendar{}
	d := newTestDispatcher(replier, cal)

	d.HandleMessage(context.Background(), allowedChat, `/addeventspan "Tour" 8/15/2025`)

	assert.Contains(t, lastReply(t, replier).text, "Error! an add-event-span message")
	assert.False(t, cal.called())
}

func TestHandleMessageReplyFailureDoesNotPanic(t *testing.T) {
	replier := &fakeReplier{err: errors.New("send failed")}
	d := newTestDispatcher(replier, &fakeCalendar{})

	d.HandleMessage(context.Background(), allowedChat, "/start")
	// The failure is logged and counted; the loop keeps serving.
}
