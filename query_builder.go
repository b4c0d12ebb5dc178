package hireboard

import (
	"maps"
	"slices"

	"github.com/kailas-cloud/hireboard/internal/domain/query"
)

// Query is a fluent builder over a fixed record list.
type Query struct {
	records []Record
	spec    Spec
}

// From starts a query over records.
func From(records []Record) *Query {
	return &Query{records: records}
}

// Search matches q case-insensitively against fields. Later calls replace
// earlier ones.
func (b *Query) Search(q string, fields ...string) *Query {
	b.spec.Query = q
	b.spec.SearchFields = fields
	return b
}

// Where adds an exact constraint; "" and All leave field unconstrained.
func (b *Query) Where(field, value string) *Query {
	if b.spec.Exact == nil {
		b.spec.Exact = make(map[string]string)
	}
	b.spec.Exact[field] = value
	return b
}

// Has requires the array field to contain value.
func (b *Query) Has(field, value string) *Query {
	if b.spec.Membership == nil {
		b.spec.Membership = make(map[string]string)
	}
	b.spec.Membership[field] = value
	return b
}

// SortBy appends a sort key.
func (b *Query) SortBy(field string, desc bool) *Query {
	b.spec.Sort = append(b.spec.Sort, SortKey{Field: field, Desc: desc})
	return b
}

// Limit caps the result size. Zero means unlimited.
func (b *Query) Limit(n int) *Query {
	b.spec.Limit = n
	return b
}

// IgnoreMissing lets records without a constrained field pass.
func (b *Query) IgnoreMissing() *Query {
	b.spec.MissingFields = MissingFieldIgnore
	return b
}

// Spec returns a copy of the accumulated filter.
func (b *Query) Spec() Spec {
	s := b.spec
	s.SearchFields = slices.Clone(b.spec.SearchFields)
	s.Exact = maps.Clone(b.spec.Exact)
	s.Membership = maps.Clone(b.spec.Membership)
	s.Sort = slices.Clone(b.spec.Sort)
	return s
}

// Records runs the query.
func (b *Query) Records() []Record {
	return query.Filter(b.records, b.spec)
}

// Count returns how many records match, ignoring Limit.
func (b *Query) Count() int {
	s := b.spec
	s.Limit = 0
	s.Sort = nil
	return len(query.Filter(b.records, s))
}

// UnknownFields lists constrained or sorted fields no record carries.
func (b *Query) UnknownFields() []string {
	return query.UnknownFields(b.records, b.spec)
}
