package chi

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/hireboard/internal/domain"
	domana "github.com/kailas-cloud/hireboard/internal/domain/analytics"
	"github.com/kailas-cloud/hireboard/internal/domain/dates"
	"github.com/kailas-cloud/hireboard/internal/domain/query"
	analyticsuc "github.com/kailas-cloud/hireboard/internal/usecase/analytics"
	"github.com/kailas-cloud/hireboard/internal/usecase/listing"
)

// Reserved listing parameters; every other parameter is a field constraint.
const (
	paramQuery      = "q"
	paramSort       = "sort"
	paramOrder      = "order"
	paramLimit      = "limit"
	membershipParam = "has."
)

// invalidParam wraps a parameter parse failure as ErrInvalidQuery.
func invalidParam(name string, err error) error {
	return fmt.Errorf("parameter %q: %v: %w", name, err, domain.ErrInvalidQuery)
}

func bindInt(q url.Values, name string) (int, error) {
	var v int
	if err := runtime.BindQueryParameter("form", true, false, name, q, &v); err != nil {
		return 0, invalidParam(name, err)
	}
	return v, nil
}

func bindBool(q url.Values, name string) (bool, error) {
	var v bool
	if err := runtime.BindQueryParameter("form", true, false, name, q, &v); err != nil {
		return false, invalidParam(name, err)
	}
	return v, nil
}

// bindDate parses an optional YYYY-MM-DD or RFC 3339 parameter.
func bindDate(q url.Values, name string) (time.Time, error) {
	raw := q.Get(name)
	if raw == "" {
		return time.Time{}, nil
	}
	t, ok := dates.ParseString(raw)
	if !ok {
		return time.Time{}, invalidParam(name, fmt.Errorf("not a date: %q", raw))
	}
	return t, nil
}

// listParams reads q, sort, order, limit, has.<field> and <field> parameters.
func listParams(q url.Values) (listing.Params, error) {
	p := listing.Params{Query: q.Get(paramQuery)}

	limit, err := bindInt(q, paramLimit)
	if err != nil {
		return listing.Params{}, err
	}
	p.Limit = limit

	keys, err := sortParams(q.Get(paramSort), q.Get(paramOrder))
	if err != nil {
		return listing.Params{}, err
	}
	p.Sort = keys

	for name, values := range q {
		if len(values) == 0 {
			continue
		}
		switch name {
		case paramQuery, paramSort, paramOrder, paramLimit:
			continue
		}
		if f, ok := strings.CutPrefix(name, membershipParam); ok {
			if p.Membership == nil {
				p.Membership = make(map[string]string)
			}
			p.Membership[f] = values[0]
			continue
		}
		if p.Exact == nil {
			p.Exact = make(map[string]string)
		}
		p.Exact[name] = values[0]
	}
	return p, nil
}

// sortParams parses "field1,-field2". A leading "-" sorts that key
// descending; order=desc flips every key without a prefix.
func sortParams(sortParam, order string) ([]query.SortKey, error) {
	var desc bool
	switch strings.ToLower(order) {
	case "", "asc":
	case "desc":
		desc = true
	default:
		return nil, invalidParam(paramOrder, fmt.Errorf("must be asc or desc, got %q", order))
	}
	if sortParam == "" {
		return nil, nil
	}

	var keys []query.SortKey
	for _, part := range strings.Split(sortParam, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if f, ok := strings.CutPrefix(part, "-"); ok {
			keys = append(keys, query.SortKey{Field: f, Desc: true})
			continue
		}
		keys = append(keys, query.SortKey{Field: part, Desc: desc})
	}
	return keys, nil
}

func deadlineParams(q url.Values) (listing.DeadlineParams, error) {
	var p listing.DeadlineParams
	var err error
	if p.AsOf, err = bindDate(q, "as_of"); err != nil {
		return p, err
	}
	if p.Limit, err = bindInt(q, paramLimit); err != nil {
		return p, err
	}
	if p.UrgentWithin, err = bindInt(q, "urgent_days"); err != nil {
		return p, err
	}
	if p.ExcludePast, err = bindBool(q, "exclude_past"); err != nil {
		return p, err
	}
	return p, nil
}

func reportParams(q url.Values) (analyticsuc.ReportParams, error) {
	var p analyticsuc.ReportParams
	var err error
	if p.AsOf, err = bindDate(q, "as_of"); err != nil {
		return p, err
	}
	p.Range = domana.TimeRange(q.Get("range"))
	if p.UrgentWithin, err = bindInt(q, "urgent_days"); err != nil {
		return p, err
	}
	if p.Top, err = bindInt(q, "top"); err != nil {
		return p, err
	}
	if p.Deadlines, err = bindInt(q, "deadlines"); err != nil {
		return p, err
	}
	return p, nil
}
