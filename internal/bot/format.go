package bot

import (
	"fmt"
	"strings"

	"github.com/phauna/phaunabot/internal/calendar"
	"github.com/phauna/phaunabot/internal/timefmt"
)

// Placeholders rendered when an event endpoint is missing entirely.
const (
	noTitleFallback    = "No title"
	noStartPlaceholder = "No start date"
	noEndPlaceholder   = "No end date"
)

// FormatEventList renders events as a bullet list, one line per event.
//
// An event contained in a single day shows one timestamp. An event whose
// start and end fall on different days shows both dates with the times
// suppressed, which is how all-day spans read best in chat.
func FormatEventList(events []calendar.Event) string {
	lines := make([]string, 0, len(events))
	for _, event := range events {
		lines = append(lines, formatEvent(event))
	}
	return strings.Join(lines, "\n")
}

func formatEvent(event calendar.Event) string {
	summary := strings.TrimSpace(event.Summary)
	if summary == "" {
		summary = noTitleFallback
	}

	rawStart := rawValue(event.Start)
	rawEnd := rawValue(event.End)

	if rawStart == "" || rawEnd == "" {
		return fmt.Sprintf("• %s: %s - %s", summary,
			displayPoint(rawStart, noStartPlaceholder),
			displayPoint(rawEnd, noEndPlaceholder))
	}

	// Stored values start with the YYYY-MM-DD day in both the timed and
	// all-day shapes, so the prefixes decide whether the event spans days.
	if datePrefix(rawStart) != datePrefix(rawEnd) {
		return fmt.Sprintf("• %s: %s - %s", summary,
			displayDate(rawStart, noStartPlaceholder),
			displayDate(rawEnd, noEndPlaceholder))
	}

	return fmt.Sprintf("• %s: %s", summary, displayPoint(rawStart, noStartPlaceholder))
}

// rawValue picks the stored representation of one endpoint, preferring the
// timed value over the date-only one.
func rawValue(t calendar.EventTime) string {
	if t.DateTime != "" {
		return t.DateTime
	}
	return t.Date
}

// displayPoint formats one endpoint with its time, falling back to the
// placeholder rather than failing.
func displayPoint(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	display, err := timefmt.Display(value)
	if err != nil {
		return placeholder
	}
	return display
}

// displayDate formats the date part of one endpoint, falling back to the
// placeholder rather than failing.
func displayDate(value, placeholder string) string {
	display, err := timefmt.DisplayDate(value)
	if err != nil {
		return placeholder
	}
	return display
}

// datePrefix extracts the YYYY-MM-DD day from a stored calendar value.
func datePrefix(value string) string {
	if len(value) > 10 {
		return value[:10]
	}
	return value
}
