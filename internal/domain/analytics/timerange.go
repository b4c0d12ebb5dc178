package analytics

import (
	"fmt"
	"slices"
	"time"

	"github.com/kailas-cloud/hireboard/internal/domain"
	"github.com/kailas-cloud/hireboard/internal/domain/record"
)

// TimeRange restricts analytics to a trailing window.
type TimeRange string

// Supported time ranges.
const (
	RangeAll     TimeRange = "all"
	RangeMonth   TimeRange = "1month"
	Range3Months TimeRange = "3months"
	Range6Months TimeRange = "6months"
)

const monthLayout = "2006-01"

var rangeMonths = map[TimeRange]int{
	RangeAll:     0,
	RangeMonth:   1,
	Range3Months: 3,
	Range6Months: 6,
}

// ParseTimeRange converts a query value; "" means RangeAll.
func ParseTimeRange(s string) (TimeRange, error) {
	if s == "" {
		return RangeAll, nil
	}
	tr := TimeRange(s)
	if _, ok := rangeMonths[tr]; !ok {
		return "", fmt.Errorf("%w: unsupported range %q", domain.ErrInvalidQuery, s)
	}
	return tr, nil
}

// Cutoff returns the earliest date inside the window ending at asOf.
// RangeAll reports false.
func (tr TimeRange) Cutoff(asOf time.Time) (time.Time, bool) {
	m := rangeMonths[tr]
	if m == 0 {
		return time.Time{}, false
	}
	return asOf.AddDate(0, -m, 0), true
}

// WithinRange keeps records whose date in field falls on or after the
// window cutoff. RangeAll returns the input unchanged.
func WithinRange(records []record.Record, field string, asOf time.Time, tr TimeRange) []record.Record {
	cutoff, ok := tr.Cutoff(asOf)
	if !ok {
		return records
	}
	out := make([]record.Record, 0, len(records))
	for _, r := range records {
		if t, ok := r.Time(field); ok && !t.Before(cutoff) {
			out = append(out, r)
		}
	}
	return out
}

// GroupByMonth tallies records by the calendar month ("2006-01") of field,
// keys in chronological order.
func GroupByMonth(records []record.Record, field string) Counts {
	var raw Counts
	for _, r := range records {
		if t, ok := r.Time(field); ok {
			raw.Add(t.UTC().Format(monthLayout))
		}
	}
	keys := raw.Keys()
	slices.Sort(keys)
	var c Counts
	for _, k := range keys {
		c.AddN(k, raw.Get(k))
	}
	return c
}
