// Package record defines the uniform record shape consumed by the query and
// aggregation engines.
package record

import (
	"fmt"
	"strconv"
	"time"

	"github.com/kailas-cloud/hireboard/internal/domain/dates"
)

// IDField is the field holding the record identifier.
const IDField = "id"

// CreatedAtField is the field stamped on insert.
const CreatedAtField = "createdAt"

// UpdatedAtField is stamped on insert alongside CreatedAtField.
const UpdatedAtField = "updatedAt"

// Record maps field names to values. Values are strings, float64, bool,
// time.Time or []string once normalized.
type Record map[string]any

// New returns a normalized copy of fields. Integers become float64 and
// slices become []string so every consumer sees one representation.
func New(fields map[string]any) Record {
	r := make(Record, len(fields))
	for k, v := range fields {
		r[k] = normalize(v)
	}
	return r
}

// NewAll normalizes a batch of raw field maps.
func NewAll(raw []map[string]any) []Record {
	out := make([]Record, 0, len(raw))
	for _, m := range raw {
		out = append(out, New(m))
	}
	return out
}

func normalize(v any) any {
	switch t := v.(type) {
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case uint64:
		return float64(t)
	case float32:
		return float64(t)
	case []string:
		return append([]string(nil), t...)
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := scalarText(normalize(e)); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return v
	}
}

// ID returns the record identifier, or "" when absent.
func (r Record) ID() string {
	s, _ := r.Text(IDField)
	return s
}

// Has reports whether the field is present and non-nil.
func (r Record) Has(field string) bool {
	v, ok := r[field]
	return ok && v != nil
}

// Text returns the scalar string form of a field: strings as-is, bools as
// "true"/"false", numbers in shortest decimal form. Arrays, maps and absent
// fields report false.
func (r Record) Text(field string) (string, bool) {
	v, ok := r[field]
	if !ok || v == nil {
		return "", false
	}
	return scalarText(v)
}

// Strings returns the field as a string slice. Only array fields qualify.
func (r Record) Strings(field string) ([]string, bool) {
	switch t := r[field].(type) {
	case []string:
		return t, true
	case []any:
		s, _ := normalize(t).([]string)
		return s, true
	default:
		return nil, false
	}
}

// Time parses the field as a date.
func (r Record) Time(field string) (time.Time, bool) {
	return dates.Parse(r[field])
}

// Number returns the field as float64.
func (r Record) Number(field string) (float64, bool) {
	switch t := normalize(r[field]).(type) {
	case float64:
		return t, true
	default:
		return 0, false
	}
}

// Clone returns a shallow copy with array values duplicated.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		if s, ok := v.([]string); ok {
			v = append([]string(nil), s...)
		}
		out[k] = v
	}
	return out
}

func scalarText(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int, int32, int64, uint64, float32:
		return scalarText(normalize(t))
	case time.Time:
		return dates.FormatValue(t), true
	case fmt.Stringer:
		return t.String(), true
	default:
		return "", false
	}
}
