package bot

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/phauna/phaunabot/internal/calendar"
	"github.com/phauna/phaunabot/internal/instrumentation"
	"github.com/phauna/phaunabot/internal/logging"
	"github.com/phauna/phaunabot/internal/timefmt"
)

// Canonical command names. Lookup is exact and case-sensitive.
const (
	cmdStart        = "/start"
	cmdListEvents   = "/listevents"
	cmdAddEvent     = "/addevent"
	cmdAddEventSpan = "/addeventspan"
)

// Fixed replies. The wording predates this rewrite; keep it stable, chats
// have muscle memory.
const (
	accessDeniedReply    = "Access Denied"
	greetingReply        = "Hi I'm PhaunaBot!"
	unknownCommandReply  = "Command not recognized"
	calendarFailureReply = "Something went wrong talking to the calendar. Please try again."
	notConfirmedReply    = "The calendar did not confirm the event."
	noUpcomingReply      = "No upcoming events"
)

// Usage replies, sent on arity mismatches and malformed arguments. The
// offending input is never echoed back.
const (
	usageStart        = "Error! /start takes no arguments"
	usageListEvents   = "Error! a list-events message should be in the format: /listevents NUMBER_OF_EVENTS"
	usageAddEvent     = `Error! an add-event message should be in the format: /addevent "SUMMARY" M/D/YYYY START_TIME END_TIME`
	usageAddEventSpan = `Error! an add-event-span message should be in the format: /addeventspan "SUMMARY" START_DATE END_DATE`
)

// defaultListCount is how many events /listevents shows when no count is
// given.
const defaultListCount = 5

// commandTable builds the static command registry. Registered once at
// construction; dispatch never mutates it.
func commandTable(d *Dispatcher) map[string]Command {
	commands := []Command{
		{
			Name:    cmdStart,
			MinArgs: 0,
			MaxArgs: 0,
			Usage:   usageStart,
			Help:    "/start greets the bot",
			Handler: d.handleStart,
		},
		{
			Name:    cmdListEvents,
			MinArgs: 0,
			MaxArgs: 1,
			Usage:   usageListEvents,
			Help:    "/listevents [count] lists the next events on the calendar (default 5)",
			Handler: d.handleListEvents,
		},
		{
			Name:    cmdAddEvent,
			MinArgs: 4,
			MaxArgs: 4,
			Usage:   usageAddEvent,
			Help:    `/addevent "SUMMARY" M/D/YYYY START_TIME END_TIME creates an event on one day, e.g. /addevent "Valhalla Show" 8/15/2025 10:00 pm 11:00 pm`,
			Handler: d.handleAddEvent,
		},
		{
			Name:    cmdAddEventSpan,
			MinArgs: 3,
			MaxArgs: 3,
			Usage:   usageAddEventSpan,
			Help:    `/addeventspan "SUMMARY" START_DATE END_DATE creates an all-day event spanning the given dates, e.g. /addeventspan "Tour" 8/15/2025 8/17/2025`,
			Handler: d.handleAddEventSpan,
		},
	}

	table := make(map[string]Command, len(commands))
	for _, cmd := range commands {
		table[cmd.Name] = cmd
	}
	return table
}

func (d *Dispatcher) handleStart(ctx context.Context, chatID int64, _ []string) {
	d.metrics.RecordMessage(ctx, cmdStart, instrumentation.ResultOK)
	d.send(ctx, chatID, greetingReply)
}

func (d *Dispatcher) handleListEvents(ctx context.Context, chatID int64, args []string) {
	logger := logging.WithCommand(d.logger, cmdListEvents)

	count := int64(defaultListCount)
	if len(args) == 1 {
		n, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || n < 1 {
			d.metrics.RecordMessage(ctx, cmdListEvents, instrumentation.ResultUsageError)
			d.send(ctx, chatID, usageListEvents)
			return
		}
		count = n
	}

	events, err := d.calendar.ListUpcoming(ctx, count)
	if err != nil {
		logger.Error("failed to list events", logging.ChatHash(chatID), logging.Err(err))
		d.metrics.RecordCalendarOperation(ctx, "list", logging.StatusError)
		d.metrics.RecordMessage(ctx, cmdListEvents, instrumentation.ResultFailure)
		d.send(ctx, chatID, calendarFailureReply)
		return
	}
	d.metrics.RecordCalendarOperation(ctx, "list", logging.StatusSuccess)

	if len(events) == 0 {
		d.metrics.RecordMessage(ctx, cmdListEvents, instrumentation.ResultOK)
		d.send(ctx, chatID, noUpcomingReply)
		return
	}

	logger.Info("listed events", logging.ChatHash(chatID), slog.Int(logging.KeyCount, len(events)))
	d.metrics.RecordMessage(ctx, cmdListEvents, instrumentation.ResultOK)
	d.send(ctx, chatID, FormatEventList(events))
}

func (d *Dispatcher) handleAddEvent(ctx context.Context, chatID int64, args []string) {
	logger := logging.WithCommand(d.logger, cmdAddEvent)
	summary, date, startTime, endTime := args[0], args[1], args[2], args[3]

	startISO, err := timefmt.Encode(date, startTime, d.offsetHours)
	if err != nil {
		d.metrics.RecordMessage(ctx, cmdAddEvent, instrumentation.ResultUsageError)
		d.send(ctx, chatID, usageAddEvent)
		return
	}
	endISO, err := timefmt.Encode(date, endTime, d.offsetHours)
	if err != nil {
		d.metrics.RecordMessage(ctx, cmdAddEvent, instrumentation.ResultUsageError)
		d.send(ctx, chatID, usageAddEvent)
		return
	}

	created, err := d.calendar.Insert(ctx, summary, startISO, endISO)
	if err != nil {
		logger.Error("failed to create event", logging.ChatHash(chatID), logging.Err(err))
		d.metrics.RecordCalendarOperation(ctx, "insert", logging.StatusError)
		d.metrics.RecordMessage(ctx, cmdAddEvent, instrumentation.ResultFailure)
		d.send(ctx, chatID, calendarFailureReply)
		return
	}
	d.metrics.RecordCalendarOperation(ctx, "insert", logging.StatusSuccess)

	d.confirmCreation(ctx, chatID, logger, cmdAddEvent, created)
}

func (d *Dispatcher) handleAddEventSpan(ctx context.Context, chatID int64, args []string) {
	logger := logging.WithCommand(d.logger, cmdAddEventSpan)
	summary, startDate, endDate := args[0], args[1], args[2]

	start, err := timefmt.EncodeDate(startDate)
	if err != nil {
		d.metrics.RecordMessage(ctx, cmdAddEventSpan, instrumentation.ResultUsageError)
		d.send(ctx, chatID, usageAddEventSpan)
		return
	}
	end, err := timefmt.EncodeDate(endDate)
	if err != nil {
		d.metrics.RecordMessage(ctx, cmdAddEventSpan, instrumentation.ResultUsageError)
		d.send(ctx, chatID, usageAddEventSpan)
		return
	}

	// All-day events end on an exclusive date; a span through END_DATE
	// must be stored as ending the day after.
	endExclusive, err := timefmt.NextDay(end)
	if err != nil {
		d.metrics.RecordMessage(ctx, cmdAddEventSpan, instrumentation.ResultUsageError)
		d.send(ctx, chatID, usageAddEventSpan)
		return
	}

	created, err := d.calendar.InsertAllDay(ctx, summary, start, endExclusive)
	if err != nil {
		logger.Error("failed to create event span", logging.ChatHash(chatID), logging.Err(err))
		d.metrics.RecordCalendarOperation(ctx, "insert", logging.StatusError)
		d.metrics.RecordMessage(ctx, cmdAddEventSpan, instrumentation.ResultFailure)
		d.send(ctx, chatID, calendarFailureReply)
		return
	}
	d.metrics.RecordCalendarOperation(ctx, "insert", logging.StatusSuccess)

	d.confirmCreation(ctx, chatID, logger, cmdAddEventSpan, created)
}

// confirmCreation answers an event-creation command based on the status the
// calendar reported. Only "confirmed" counts as success.
func (d *Dispatcher) confirmCreation(ctx context.Context, chatID int64, logger *slog.Logger, command string, created *calendar.Event) {
	if created == nil || created.Status != calendar.StatusConfirmed {
		status := ""
		if created != nil {
			status = created.Status
		}
		logger.Warn("event not confirmed", logging.ChatHash(chatID), logging.Status(status))
		d.metrics.RecordMessage(ctx, command, instrumentation.ResultFailure)
		d.send(ctx, chatID, notConfirmedReply)
		return
	}

	logger.Info("event created", logging.ChatHash(chatID))
	d.metrics.RecordMessage(ctx, command, instrumentation.ResultOK)
	d.send(ctx, chatID, "Event created:\n"+FormatEventList([]calendar.Event{*created}))
}
