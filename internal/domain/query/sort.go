package query

import (
	"cmp"
	"slices"

	"github.com/kailas-cloud/hireboard/internal/domain/record"
)

// Sort returns a stably sorted copy of records. Dates compare
// chronologically, numbers numerically, anything else by string form.
// Records missing a key sort after those that have it, in either direction.
func Sort(records []record.Record, keys ...SortKey) []record.Record {
	out := slices.Clone(records)
	if len(keys) == 0 {
		return out
	}
	slices.SortStableFunc(out, func(a, b record.Record) int {
		for _, k := range keys {
			if c := compareField(a, b, k); c != 0 {
				return c
			}
		}
		return 0
	})
	return out
}

func compareField(a, b record.Record, k SortKey) int {
	aok, bok := a.Has(k.Field), b.Has(k.Field)
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	}

	c := compareValues(a, b, k.Field)
	if k.Desc {
		return -c
	}
	return c
}

func compareValues(a, b record.Record, f string) int {
	if at, ok := a.Time(f); ok {
		if bt, ok := b.Time(f); ok {
			return at.Compare(bt)
		}
	}
	if an, ok := a.Number(f); ok {
		if bn, ok := b.Number(f); ok {
			return cmp.Compare(an, bn)
		}
	}
	as, _ := a.Text(f)
	bs, _ := b.Text(f)
	return cmp.Compare(as, bs)
}
