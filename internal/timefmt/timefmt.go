package timefmt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DefaultOffsetHours is the UTC offset applied when no offset is configured.
const DefaultOffsetHours = -5

// TimeSpec is the intermediate value produced while encoding a user-entered
// date and time. Hour is always in 24-hour form after meridiem resolution.
type TimeSpec struct {
	Year        int
	Month       int
	Day         int
	Hour        int
	Minute      int
	OffsetHours float64
}

// Parse combines a "M/D/YYYY" date token and a "h:mm AM|PM" time token into
// a TimeSpec. The meridiem is case-insensitive and the internal space is
// optional ("7:00PM" and "7:00 pm" are both accepted).
func Parse(date, clock string, offsetHours float64) (TimeSpec, error) {
	spec := TimeSpec{OffsetHours: offsetHours}

	year, month, day, err := parseDate(date)
	if err != nil {
		return spec, err
	}
	spec.Year, spec.Month, spec.Day = year, month, day

	hour, minute, err := parseClock(clock)
	if err != nil {
		return spec, err
	}
	spec.Hour, spec.Minute = hour, minute

	return spec, nil
}

// parseDate splits a "M/D/YYYY" token into its integer components.
func parseDate(date string) (year, month, day int, err error) {
	parts := strings.Split(date, "/")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid date %q: want M/D/YYYY", date)
	}
	month, err = strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, 0, fmt.Errorf("invalid month in date %q", date)
	}
	day, err = strconv.Atoi(parts[1])
	if err != nil || day < 1 || day > 31 {
		return 0, 0, 0, fmt.Errorf("invalid day in date %q", date)
	}
	year, err = strconv.Atoi(parts[2])
	if err != nil || year < 1 {
		return 0, 0, 0, fmt.Errorf("invalid year in date %q", date)
	}
	return year, month, day, nil
}

// parseClock resolves a 12-hour "h:mm AM|PM" token into 24-hour hour and
// minute values. PM adds 12 unless the hour is 12; 12 AM becomes 0.
func parseClock(clock string) (hour, minute int, err error) {
	s := strings.TrimSpace(clock)
	if len(s) < 3 {
		return 0, 0, fmt.Errorf("invalid time %q: want h:mm AM|PM", clock)
	}

	meridiem := strings.ToLower(s[len(s)-2:])
	if meridiem != "am" && meridiem != "pm" {
		return 0, 0, fmt.Errorf("invalid time %q: missing AM/PM", clock)
	}

	hm := strings.TrimSpace(s[:len(s)-2])
	parts := strings.Split(hm, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q: want h:mm AM|PM", clock)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 1 || hour > 12 {
		return 0, 0, fmt.Errorf("invalid hour in time %q", clock)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in time %q", clock)
	}

	if meridiem == "pm" && hour != 12 {
		hour += 12
	}
	if meridiem == "am" && hour == 12 {
		hour = 0
	}

	return hour, minute, nil
}

// Encode renders a user-entered date and time as a zero-padded ISO-8601
// timestamp, "YYYY-MM-DDTHH:MM:00±HH:MM".
func Encode(date, clock string, offsetHours float64) (string, error) {
	spec, err := Parse(date, clock, offsetHours)
	if err != nil {
		return "", err
	}
	return spec.ISO8601(), nil
}

// ISO8601 renders the value as "YYYY-MM-DDTHH:MM:00±HH:MM".
func (s TimeSpec) ISO8601() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:00%s",
		s.Year, s.Month, s.Day, s.Hour, s.Minute, FormatOffset(s.OffsetHours))
}

// FormatOffset splits a decimal hour count into signed whole-hour and
// fractional-minute components, rendered as "±HH:MM".
func FormatOffset(hours float64) string {
	sign := "+"
	if hours < 0 {
		sign = "-"
		hours = -hours
	}
	whole := int(hours)
	minutes := int(math.Round((hours - float64(whole)) * 60))
	return fmt.Sprintf("%s%02d:%02d", sign, whole, minutes)
}

// EncodeDate renders a user-entered "M/D/YYYY" date as the zero-padded
// "YYYY-MM-DD" form all-day calendar events use.
func EncodeDate(date string) (string, error) {
	year, month, day, err := parseDate(date)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), nil
}

// NextDay returns the day after a "YYYY-MM-DD" value. All-day calendar
// events end on an exclusive date, so a span through D ends on D+1.
func NextDay(isoDate string) (string, error) {
	t, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", isoDate, err)
	}
	return t.AddDate(0, 0, 1).Format("2006-01-02"), nil
}

// DisplayDate formats the day of a stored calendar value as "M/D/YYYY"
// without zero padding. The value may be a full RFC 3339 timestamp or a
// date-only "YYYY-MM-DD" value.
func DisplayDate(value string) (string, error) {
	if len(value) > 10 {
		value = value[:10]
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return "", fmt.Errorf("invalid calendar date %q: %w", value, err)
	}
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year()), nil
}

// Display formats a stored calendar timestamp as "M/D/YYYY h:mm am/pm"
// without zero padding on the month, day or hour. The value may be a full
// RFC 3339 timestamp or a date-only "YYYY-MM-DD" value; date-only values
// display as 12:00 am. The wall-clock fields are rendered as stored, not
// shifted into any other offset.
func Display(value string) (string, error) {
	var t time.Time
	var err error
	if len(value) == len("2006-01-02") {
		t, err = time.Parse("2006-01-02", value)
	} else {
		t, err = time.Parse(time.RFC3339, value)
	}
	if err != nil {
		return "", fmt.Errorf("invalid calendar timestamp %q: %w", value, err)
	}

	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	meridiem := "am"
	if t.Hour() >= 12 {
		meridiem = "pm"
	}

	return fmt.Sprintf("%d/%d/%d %d:%02d %s",
		int(t.Month()), t.Day(), t.Year(), hour, t.Minute(), meridiem), nil
}
