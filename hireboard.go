// Package hireboard filters and aggregates job-search records: applications,
// postings, interviewers and the like.
//
// Every function here is pure. Records come in as plain maps and are never
// mutated; use NewRecords to normalize decoded JSON or YAML first.
package hireboard

import (
	"time"

	"github.com/kailas-cloud/hireboard/internal/domain/analytics"
	"github.com/kailas-cloud/hireboard/internal/domain/dates"
	"github.com/kailas-cloud/hireboard/internal/domain/query"
	"github.com/kailas-cloud/hireboard/internal/domain/record"
)

// Record maps field names to normalized values.
type Record = record.Record

// Spec is a declarative filter. The zero value matches everything.
type Spec = query.Spec

// SortKey orders records by one field.
type SortKey = query.SortKey

// MissingFieldPolicy decides how constraints treat absent fields.
type MissingFieldPolicy = query.MissingFieldPolicy

// Missing-field policies.
const (
	MissingFieldNoMatch = query.MissingFieldNoMatch
	MissingFieldIgnore  = query.MissingFieldIgnore
)

// All is the selection meaning "no constraint".
const All = query.All

// Aggregation result types.
type (
	Entry              = analytics.Entry
	Counts             = analytics.Counts
	Share              = analytics.Share
	StatusDistribution = analytics.StatusDistribution
	Deadline           = analytics.Deadline
	DeadlineOptions    = analytics.DeadlineOptions
	Predicate          = analytics.Predicate
)

// NewRecords normalizes decoded field maps into records.
func NewRecords(raw []map[string]any) []Record { return record.NewAll(raw) }

// Filter returns the records matching spec, sorted and limited per spec.
func Filter(records []Record, spec Spec) []Record { return query.Filter(records, spec) }

// Matches reports whether one record satisfies spec.
func Matches(r Record, spec Spec) bool { return query.Matches(r, spec) }

// Sort returns a stably sorted copy of records.
func Sort(records []Record, keys ...SortKey) []Record { return query.Sort(records, keys...) }

// DistinctValues returns the unique values of field in first-seen order.
func DistinctValues(records []Record, field string) []string {
	return query.DistinctValues(records, field)
}

// DistinctValuesFromArrayField returns the unique elements of an array field.
func DistinctValuesFromArrayField(records []Record, field string) []string {
	return query.DistinctValuesFromArrayField(records, field)
}

// ComputeStatusDistribution tallies statusField with rounded percentages.
func ComputeStatusDistribution(records []Record, statusField string) StatusDistribution {
	return analytics.ComputeStatusDistribution(records, statusField)
}

// FieldEquals matches records whose field equals value.
func FieldEquals(field, value string) Predicate { return analytics.FieldEquals(field, value) }

// FieldIn matches records whose field is one of values.
func FieldIn(field string, values ...string) Predicate { return analytics.FieldIn(field, values...) }

// Rate returns the rounded percentage of records satisfying pred.
func Rate(records []Record, pred Predicate) int { return analytics.Rate(records, pred) }

// GroupAndCount counts records per value of field in first-seen order.
func GroupAndCount(records []Record, field string) Counts {
	return analytics.GroupAndCount(records, field)
}

// GroupAndCountArray counts each element of an array field.
func GroupAndCountArray(records []Record, field string) Counts {
	return analytics.GroupAndCountArray(records, field)
}

// TopN returns the n largest groups, ties in first-seen order.
func TopN(c Counts, n int) []Entry { return analytics.TopN(c, n) }

// UpcomingDeadlines ranks records by the date in field relative to asOf.
func UpcomingDeadlines(records []Record, field string, asOf time.Time, n int, opts DeadlineOptions) []Deadline {
	return analytics.UpcomingDeadlines(records, field, asOf, n, opts)
}

// ParseDate reads a time.Time, RFC 3339 or YYYY-MM-DD value.
func ParseDate(v any) (time.Time, bool) { return dates.Parse(v) }

// DaysUntil returns the ceiling of the day delta from asOf to deadline.
func DaysUntil(deadline, asOf time.Time) int { return dates.DaysUntil(deadline, asOf) }
