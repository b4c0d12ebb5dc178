package analytics

import (
	"slices"
	"time"

	"github.com/kailas-cloud/hireboard/internal/domain/dates"
	"github.com/kailas-cloud/hireboard/internal/domain/record"
)

// DefaultUrgencyThresholdDays marks deadlines within a week as urgent.
const DefaultUrgencyThresholdDays = 7

// DeadlineOptions tunes UpcomingDeadlines.
type DeadlineOptions struct {
	// UrgentWithin is the urgency threshold in days. Zero selects
	// DefaultUrgencyThresholdDays.
	UrgentWithin int
	// ExcludePast drops deadlines that have already passed before ranking.
	ExcludePast bool
}

func (o DeadlineOptions) threshold() int {
	if o.UrgentWithin <= 0 {
		return DefaultUrgencyThresholdDays
	}
	return o.UrgentWithin
}

// Deadline is a record ranked by how soon its deadline falls.
type Deadline struct {
	Record        record.Record
	Deadline      time.Time
	DaysRemaining int
	IsUrgent      bool
}

// UpcomingDeadlines ranks records carrying a parsable date in field by
// ascending deadline and keeps the first n. DaysRemaining is the ceiling of
// the day delta from asOf; a deadline is urgent when 0 <= DaysRemaining <=
// threshold. Passed deadlines are kept (never urgent) unless ExcludePast.
func UpcomingDeadlines(
	records []record.Record, field string, asOf time.Time, n int, opts DeadlineOptions,
) []Deadline {
	if n <= 0 {
		return []Deadline{}
	}
	limit := opts.threshold()
	out := make([]Deadline, 0, len(records))
	for _, r := range records {
		t, ok := r.Time(field)
		if !ok {
			continue
		}
		days := dates.DaysUntil(t, asOf)
		if opts.ExcludePast && days < 0 {
			continue
		}
		out = append(out, Deadline{
			Record:        r,
			Deadline:      t,
			DaysRemaining: days,
			IsUrgent:      days >= 0 && days <= limit,
		})
	}
	slices.SortStableFunc(out, func(a, b Deadline) int { return a.Deadline.Compare(b.Deadline) })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// MostRecent returns at most n records with a parsable date in field,
// newest first. Ties keep input order.
func MostRecent(records []record.Record, field string, n int) []record.Record {
	if n <= 0 {
		return []record.Record{}
	}
	type dated struct {
		r record.Record
		t time.Time
	}
	var ds []dated
	for _, r := range records {
		if t, ok := r.Time(field); ok {
			ds = append(ds, dated{r, t})
		}
	}
	slices.SortStableFunc(ds, func(a, b dated) int { return b.t.Compare(a.t) })
	out := make([]record.Record, 0, min(n, len(ds)))
	for _, d := range ds {
		if len(out) == n {
			break
		}
		out = append(out, d.r)
	}
	return out
}
