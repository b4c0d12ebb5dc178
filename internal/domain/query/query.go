// Package query filters, sorts and facets record lists with declarative
// predicates. Every function is pure; inputs are never mutated.
package query

import (
	"slices"
	"strings"

	"github.com/kailas-cloud/hireboard/internal/domain/record"
)

// All is the facet selection meaning "no constraint", as is "".
const All = "all"

// MissingFieldPolicy decides how an exact or membership constraint treats a
// record that lacks the constrained field.
type MissingFieldPolicy int

const (
	// MissingFieldNoMatch rejects records without the field.
	MissingFieldNoMatch MissingFieldPolicy = iota
	// MissingFieldIgnore lets records without the field pass the constraint.
	MissingFieldIgnore
)

// String returns the policy name.
func (p MissingFieldPolicy) String() string {
	if p == MissingFieldIgnore {
		return "ignore"
	}
	return "no_match"
}

// SortKey orders records by one field.
type SortKey struct {
	Field string
	Desc  bool
}

// Spec is a declarative filter. The zero value matches everything.
//
// A record matches when the search matches AND every exact constraint holds
// AND every membership constraint holds.
type Spec struct {
	// Query is matched case-insensitively as a substring of any search field.
	// Empty matches all records. No trimming is applied.
	Query        string
	SearchFields []string
	// Exact maps field -> value compared against the field's string form.
	Exact map[string]string
	// Membership maps array field -> value that must be one of its elements.
	Membership    map[string]string
	Sort          []SortKey
	Limit         int
	MissingFields MissingFieldPolicy
}

// IsEmpty reports whether the spec constrains nothing.
func (s Spec) IsEmpty() bool {
	if s.Query != "" {
		return false
	}
	for _, v := range s.Exact {
		if !unconstrained(v) {
			return false
		}
	}
	for _, v := range s.Membership {
		if !unconstrained(v) {
			return false
		}
	}
	return true
}

// Filter returns the records matching spec in their original relative order,
// then applies the spec's sort keys and limit.
func Filter(records []record.Record, spec Spec) []record.Record {
	out := make([]record.Record, 0, len(records))
	needle := strings.ToLower(spec.Query)
	for _, r := range records {
		if matches(r, spec, needle) {
			out = append(out, r)
		}
	}
	if len(spec.Sort) > 0 {
		out = Sort(out, spec.Sort...)
	}
	if spec.Limit > 0 && len(out) > spec.Limit {
		out = out[:spec.Limit]
	}
	return out
}

// Matches reports whether a single record satisfies spec.
func Matches(r record.Record, spec Spec) bool {
	return matches(r, spec, strings.ToLower(spec.Query))
}

func matches(r record.Record, spec Spec, needle string) bool {
	if !matchesSearch(r, spec.SearchFields, needle) {
		return false
	}
	for f, want := range spec.Exact {
		if !matchesExact(r, f, want, spec.MissingFields) {
			return false
		}
	}
	for f, want := range spec.Membership {
		if !matchesMembership(r, f, want, spec.MissingFields) {
			return false
		}
	}
	return true
}

func matchesSearch(r record.Record, fields []string, needle string) bool {
	if needle == "" {
		return true
	}
	for _, f := range fields {
		if s, ok := r.Text(f); ok && strings.Contains(strings.ToLower(s), needle) {
			return true
		}
		if elems, ok := r.Strings(f); ok {
			for _, e := range elems {
				if strings.Contains(strings.ToLower(e), needle) {
					return true
				}
			}
		}
	}
	return false
}

func matchesExact(r record.Record, f, want string, policy MissingFieldPolicy) bool {
	if unconstrained(want) {
		return true
	}
	if !r.Has(f) {
		return policy == MissingFieldIgnore
	}
	got, ok := r.Text(f)
	return ok && got == want
}

func matchesMembership(r record.Record, f, want string, policy MissingFieldPolicy) bool {
	if unconstrained(want) {
		return true
	}
	if !r.Has(f) {
		return policy == MissingFieldIgnore
	}
	elems, ok := r.Strings(f)
	return ok && slices.Contains(elems, want)
}

func unconstrained(v string) bool {
	return v == "" || v == All
}

// DistinctValues returns the unique string forms of field in first-seen
// order. Records without the field contribute nothing.
func DistinctValues(records []record.Record, field string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, r := range records {
		v, ok := r.Text(field)
		if !ok || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// DistinctValuesFromArrayField flattens an array field across records and
// returns unique elements in first-seen order.
func DistinctValuesFromArrayField(records []record.Record, field string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, r := range records {
		elems, _ := r.Strings(field)
		for _, e := range elems {
			if seen[e] {
				continue
			}
			seen[e] = true
			out = append(out, e)
		}
	}
	return out
}

// UnknownFields returns the fields spec refers to that no record carries,
// sorted. Returns nil for an empty record list.
func UnknownFields(records []record.Record, spec Spec) []string {
	if len(records) == 0 {
		return nil
	}
	named := make(map[string]bool)
	for _, f := range spec.SearchFields {
		named[f] = true
	}
	for f := range spec.Exact {
		named[f] = true
	}
	for f := range spec.Membership {
		named[f] = true
	}
	for _, k := range spec.Sort {
		named[k.Field] = true
	}
	for f := range named {
		for _, r := range records {
			if r.Has(f) {
				delete(named, f)
				break
			}
		}
	}
	if len(named) == 0 {
		return nil
	}
	out := make([]string, 0, len(named))
	for f := range named {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}
