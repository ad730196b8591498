package bot

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/phauna/phaunabot/internal/calendar"
	"github.com/phauna/phaunabot/internal/instrumentation"
	"github.com/phauna/phaunabot/internal/logging"
)

// Replier sends a reply to a chat. Sends are fire-and-forget from the
// handlers' perspective; failures are logged and counted, not retried.
type Replier interface {
	Reply(chatID int64, text string) error
}

// Calendar is the calendar collaborator as the handlers consume it.
type Calendar interface {
	// ListUpcoming returns up to max future or in-progress events ordered
	// by start time, recurring events expanded to single occurrences.
	ListUpcoming(ctx context.Context, max int64) ([]calendar.Event, error)

	// Insert creates a timed event from ISO-8601 start and end timestamps.
	Insert(ctx context.Context, summary, startISO, endISO string) (*calendar.Event, error)

	// InsertAllDay creates an all-day event; the end date is exclusive.
	InsertAllDay(ctx context.Context, summary, startDate, endDateExclusive string) (*calendar.Event, error)
}

// HandlerFunc handles one dispatched command. args excludes the command
// name and has already passed the command's arity rule. Handlers trap their
// own failures and always answer the chat.
type HandlerFunc func(ctx context.Context, chatID int64, args []string)

// Command describes one entry in the command table.
type Command struct {
	Name string

	// MinArgs and MaxArgs bound the argument count after the command name.
	MinArgs int
	MaxArgs int

	// Usage is the reply sent on an arity mismatch or malformed argument.
	Usage string

	// Help is the reply sent for the "<command> ?" help request.
	Help string

	Handler HandlerFunc
}

// Config carries the dispatcher's collaborators and settings.
type Config struct {
	Replier        Replier
	Calendar       Calendar
	AllowedChatIDs []string
	UTCOffsetHours float64
	Logger         *slog.Logger
	Metrics        *instrumentation.Metrics
}

// Dispatcher routes inbound messages to command handlers. The command table
// and allow-list are built once at construction and read-only afterwards, so
// one Dispatcher may handle messages concurrently without locking.
type Dispatcher struct {
	commands    map[string]Command
	allowed     map[string]struct{}
	replier     Replier
	calendar    Calendar
	offsetHours float64
	logger      *slog.Logger
	metrics     *instrumentation.Metrics
}

// NewDispatcher builds the dispatcher and registers the command table.
func NewDispatcher(cfg Config) *Dispatcher {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = &instrumentation.Metrics{}
	}

	allowed := make(map[string]struct{}, len(cfg.AllowedChatIDs))
	for _, id := range cfg.AllowedChatIDs {
		allowed[id] = struct{}{}
	}

	d := &Dispatcher{
		allowed:     allowed,
		replier:     cfg.Replier,
		calendar:    cfg.Calendar,
		offsetHours: cfg.UTCOffsetHours,
		logger:      logger,
		metrics:     metrics,
	}
	d.commands = commandTable(d)

	return d
}

// HandleMessage processes one inbound chat message end to end: gate,
// tokenize, help check, dispatch. It never returns an error; every outcome
// is answered on the chat and logged.
func (d *Dispatcher) HandleMessage(ctx context.Context, chatID int64, text string) {
	start := time.Now()

	if !d.authorized(chatID) {
		d.logger.Warn("message from unauthorized chat", logging.ChatHash(chatID))
		d.metrics.RecordMessage(ctx, "", instrumentation.ResultDenied)
		d.send(ctx, chatID, accessDeniedReply)
		return
	}

	tokens := Tokenize(text)
	if len(tokens) == 0 {
		d.metrics.RecordMessage(ctx, "", instrumentation.ResultUnknown)
		d.send(ctx, chatID, unknownCommandReply)
		return
	}
	name := tokens[0]

	// A "?" second token is a help request; it is resolved before the
	// primary dispatch so "/addevent ?" never reaches the handler.
	if len(tokens) >= 2 && tokens[1] == "?" {
		d.metrics.RecordMessage(ctx, name, instrumentation.ResultHelp)
		d.handleHelp(ctx, chatID, name)
		return
	}

	cmd, ok := d.commands[name]
	if !ok {
		d.logger.Debug("unrecognized command", logging.ChatHash(chatID))
		d.metrics.RecordMessage(ctx, "", instrumentation.ResultUnknown)
		d.send(ctx, chatID, unknownCommandReply)
		return
	}

	args := tokens[1:]
	if len(args) < cmd.MinArgs || len(args) > cmd.MaxArgs {
		d.logger.Debug("arity mismatch",
			logging.Command(cmd.Name),
			logging.ChatHash(chatID),
			slog.Int("args", len(args)))
		d.metrics.RecordMessage(ctx, name, instrumentation.ResultUsageError)
		d.send(ctx, chatID, cmd.Usage)
		return
	}

	cmd.Handler(ctx, chatID, args)
	d.metrics.RecordCommandDuration(ctx, name, time.Since(start))
}

// handleHelp answers "<name> ?" from the command table.
func (d *Dispatcher) handleHelp(ctx context.Context, chatID int64, name string) {
	cmd, ok := d.commands[name]
	if !ok {
		d.send(ctx, chatID, unknownCommandReply)
		return
	}
	d.send(ctx, chatID, cmd.Help)
}

// authorized reports whether the chat is on the allow-list. Chat IDs are
// compared in their decimal string form, matching how the list is
// configured.
func (d *Dispatcher) authorized(chatID int64) bool {
	_, ok := d.allowed[formatChatID(chatID)]
	return ok
}

func formatChatID(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

// send delivers a reply and records any transport failure. Send failures
// never propagate; the message-processing loop must keep serving.
func (d *Dispatcher) send(ctx context.Context, chatID int64, text string) {
	if err := d.replier.Reply(chatID, text); err != nil {
		d.logger.Error("failed to send reply", logging.ChatHash(chatID), logging.Err(err))
		d.metrics.RecordReplyFailure(ctx)
	}
}
