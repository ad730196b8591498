package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrCommand   = "command"
	attrResult    = "result"
	attrOperation = "operation"
	attrStatus    = "status"
)

// Message handling results.
const (
	ResultOK         = "ok"
	ResultDenied     = "denied"
	ResultUnknown    = "unknown_command"
	ResultHelp       = "help"
	ResultUsageError = "usage_error"
	ResultFailure    = "failure"
)

// Metrics records the bot's observability metrics. The zero value is a
// usable no-op recorder, handed out when instrumentation is disabled.
type Metrics struct {
	messagesTotal      metric.Int64Counter
	commandDuration    metric.Float64Histogram
	calendarOpsTotal   metric.Int64Counter
	replyFailuresTotal metric.Int64Counter
}

// NewMetrics creates a Metrics instance with all instruments initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.messagesTotal, err = meter.Int64Counter(
		"bot_messages_total",
		metric.WithDescription("Total number of inbound chat messages by command and result"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot_messages_total counter: %w", err)
	}

	m.commandDuration, err = meter.Float64Histogram(
		"bot_command_duration_seconds",
		metric.WithDescription("Command handling duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot_command_duration_seconds histogram: %w", err)
	}

	m.calendarOpsTotal, err = meter.Int64Counter(
		"calendar_api_operations_total",
		metric.WithDescription("Total number of Calendar API operations by operation and status"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar_api_operations_total counter: %w", err)
	}

	m.replyFailuresTotal, err = meter.Int64Counter(
		"telegram_reply_failures_total",
		metric.WithDescription("Total number of failed Telegram reply sends"),
		metric.WithUnit("{reply}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram_reply_failures_total counter: %w", err)
	}

	return m, nil
}

// RecordMessage records one handled inbound message. command may be empty
// when no command was dispatched (denied or unrecognized messages).
func (m *Metrics) RecordMessage(ctx context.Context, command, result string) {
	if m == nil || m.messagesTotal == nil {
		return
	}
	m.messagesTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrCommand, command),
		attribute.String(attrResult, result),
	))
}

// RecordCommandDuration records how long a dispatched command took.
func (m *Metrics) RecordCommandDuration(ctx context.Context, command string, d time.Duration) {
	if m == nil || m.commandDuration == nil {
		return
	}
	m.commandDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String(attrCommand, command),
	))
}

// RecordCalendarOperation records one Calendar API call.
func (m *Metrics) RecordCalendarOperation(ctx context.Context, operation, status string) {
	if m == nil || m.calendarOpsTotal == nil {
		return
	}
	m.calendarOpsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	))
}

// RecordReplyFailure records a failed Telegram send.
func (m *Metrics) RecordReplyFailure(ctx context.Context) {
	if m == nil || m.replyFailuresTotal == nil {
		return
	}
	m.replyFailuresTotal.Add(ctx, 1)
}
