// Package dates parses record date values and measures calendar deltas.
package dates

import (
	"strings"
	"time"
)

// Day is the length of one calendar day used for deltas.
const Day = 24 * time.Hour

// Accepted layouts, tried in order. Values without a zone parse as UTC.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Parse converts a record value into a time. Accepts time.Time and strings in
// RFC 3339, "2006-01-02T15:04:05" or "2006-01-02" form. Anything else,
// including the empty string, reports false.
func Parse(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return time.Time{}, false
		}
		return t, true
	case *time.Time:
		if t == nil || t.IsZero() {
			return time.Time{}, false
		}
		return *t, true
	case string:
		return ParseString(t)
	default:
		return time.Time{}, false
	}
}

// ParseString parses a date string using the accepted layouts.
func ParseString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DaysUntil returns ceil((deadline - asOf) / 24h). Negative values mean the
// deadline has passed.
func DaysUntil(deadline, asOf time.Time) int {
	diff := deadline.Sub(asOf)
	d := int(diff / Day)
	if diff%Day > 0 {
		d++
	}
	return d
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Format renders t in the date-only layout used by stored records.
func Format(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatValue renders t date-only at midnight and as RFC 3339 otherwise.
func FormatValue(t time.Time) string {
	if t.Equal(StartOfDay(t)) {
		return Format(t)
	}
	return t.Format(time.RFC3339)
}
