package analytics

import (
	"slices"

	"github.com/kailas-cloud/hireboard/internal/domain/record"
)

// Predicate selects records for counting.
type Predicate func(record.Record) bool

// FieldEquals matches records whose field string form equals value.
func FieldEquals(field, value string) Predicate {
	return func(r record.Record) bool {
		v, ok := r.Text(field)
		return ok && v == value
	}
}

// FieldIn matches records whose field string form is one of values.
func FieldIn(field string, values ...string) Predicate {
	return func(r record.Record) bool {
		v, ok := r.Text(field)
		return ok && slices.Contains(values, v)
	}
}

// Count returns how many records satisfy pred.
func Count(records []record.Record, pred Predicate) int {
	n := 0
	for _, r := range records {
		if pred(r) {
			n++
		}
	}
	return n
}

// Percent returns round(100 * count / total) with halves rounded up,
// computed in integers. A zero total yields 0.
func Percent(count, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*count + total) / (2 * total)
}

// Rate returns the percentage of records satisfying pred, 0 for no records.
func Rate(records []record.Record, pred Predicate) int {
	return Percent(Count(records, pred), len(records))
}

// Share is one status with its count and rounded percentage.
type Share struct {
	Status     string `json:"status"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// StatusDistribution is the per-status breakdown of a record list.
// Percentages are rounded independently and need not sum to 100.
type StatusDistribution struct {
	Total       int
	Counts      Counts
	Percentages map[string]int
}

// ComputeStatusDistribution tallies statusField across records. Records
// without a status count toward Total only. Empty input yields empty counts
// and nil percentages.
func ComputeStatusDistribution(records []record.Record, statusField string) StatusDistribution {
	d := StatusDistribution{
		Total:  len(records),
		Counts: GroupAndCount(records, statusField),
	}
	if d.Total == 0 {
		return d
	}
	d.Percentages = make(map[string]int, d.Counts.Len())
	for _, e := range d.Counts.Entries() {
		d.Percentages[e.Key] = Percent(e.Count, d.Total)
	}
	return d
}

// Shares returns the distribution in first-seen status order.
func (d StatusDistribution) Shares() []Share {
	out := make([]Share, 0, d.Counts.Len())
	for _, e := range d.Counts.Entries() {
		out = append(out, Share{Status: e.Key, Count: e.Count, Percentage: d.Percentages[e.Key]})
	}
	return out
}
