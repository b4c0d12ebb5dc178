package listing

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/hireboard/internal/domain"
	"github.com/kailas-cloud/hireboard/internal/domain/analytics"
	domcol "github.com/kailas-cloud/hireboard/internal/domain/collection"
	"github.com/kailas-cloud/hireboard/internal/domain/query"
	domrec "github.com/kailas-cloud/hireboard/internal/domain/record"
	"github.com/kailas-cloud/hireboard/internal/logger"
	"github.com/kailas-cloud/hireboard/internal/metrics"
)

// Params narrows a listing. Zero values mean "no constraint"; an empty
// Sort selects the collection's default order.
type Params struct {
	Query      string
	Exact      map[string]string
	Membership map[string]string
	Sort       []query.SortKey
	Limit      int
}

// Result is one page of a listing.
type Result struct {
	Items []domrec.Record
	// Total counts the records in scope after the collection's base
	// constraints, Matched those that also passed Params, before Limit.
	Total   int
	Matched int
	// Facets maps each facet field to its distinct values over the
	// unfiltered scope, so filter dropdowns stay stable while narrowing.
	Facets map[string][]string
}

// DeadlineParams tunes a deadline ranking. A zero AsOf means now.
type DeadlineParams struct {
	AsOf         time.Time
	Limit        int
	UrgentWithin int
	ExcludePast  bool
}

// Service filters, sorts and ranks collection records.
type Service struct {
	source        RecordSource
	catalog       Catalog
	defaultLimit  int
	maxLimit      int
	deadlineLimit int
	urgencyWindow int
	now           func() time.Time
}

// New creates a listing service.
func New(source RecordSource, catalog Catalog) *Service {
	return &Service{
		source:        source,
		catalog:       catalog,
		maxLimit:      500,
		deadlineLimit: 5,
		urgencyWindow: analytics.DefaultUrgencyThresholdDays,
		now:           time.Now,
	}
}

// WithLimits configures list sizes. defaultLimit 0 returns every match.
func (s *Service) WithLimits(defaultLimit, maxLimit int) *Service {
	if defaultLimit >= 0 {
		s.defaultLimit = defaultLimit
	}
	if maxLimit > 0 {
		s.maxLimit = maxLimit
	}
	return s
}

// WithDeadlineDefaults configures the ranking size and urgency window used
// when a request leaves them unset.
func (s *Service) WithDeadlineDefaults(limit, urgentWithin int) *Service {
	if limit > 0 {
		s.deadlineLimit = limit
	}
	if urgentWithin > 0 {
		s.urgencyWindow = urgentWithin
	}
	return s
}

// WithClock overrides the reference time for deadline rankings.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// List filters a collection.
func (s *Service) List(ctx context.Context, collection string, p Params) (Result, error) {
	col, err := s.catalog.Get(collection)
	if err != nil {
		return Result{}, fmt.Errorf("get collection: %w", err)
	}
	limit, err := s.limit(p.Limit)
	if err != nil {
		return Result{}, err
	}
	keys, err := sortKeys(col, p.Sort)
	if err != nil {
		return Result{}, err
	}

	scoped, err := s.scope(ctx, col)
	if err != nil {
		return Result{}, err
	}

	spec := query.Spec{
		Query:        p.Query,
		SearchFields: col.SearchFields(),
		Exact:        p.Exact,
		Membership:   p.Membership,
		Sort:         keys,
	}
	matched := query.Filter(scoped, spec)
	metrics.ObserveQuery(collection, len(scoped), len(matched))

	// Declared search fields are often sparse; only caller-named fields are reported.
	named := query.Spec{Exact: p.Exact, Membership: p.Membership, Sort: p.Sort}
	if unknown := query.UnknownFields(scoped, named); len(unknown) > 0 {
		logger.FromContext(ctx).Debug("filter references fields no record carries",
			zap.String("collection", collection),
			zap.Strings("fields", unknown),
		)
	}

	if undeclared := undeclaredFields(col, p); len(undeclared) > 0 {
		logger.FromContext(ctx).Debug("filter constrains fields the collection does not declare",
			zap.String("collection", collection),
			zap.Strings("fields", undeclared),
		)
	}

	items := matched
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return Result{
		Items:   items,
		Total:   len(scoped),
		Matched: len(matched),
		Facets:  facets(col, scoped),
	}, nil
}

// Get returns one record of a collection.
func (s *Service) Get(ctx context.Context, collection, id string) (domrec.Record, error) {
	if _, err := s.catalog.Get(collection); err != nil {
		return nil, fmt.Errorf("get collection: %w", err)
	}
	rec, err := s.source.Get(ctx, collection, id)
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

// Deadlines ranks a collection's records by its deadline field.
func (s *Service) Deadlines(ctx context.Context, collection string, p DeadlineParams) ([]analytics.Deadline, error) {
	col, err := s.catalog.Get(collection)
	if err != nil {
		return nil, fmt.Errorf("get collection: %w", err)
	}
	if !col.HasDeadline() {
		return nil, fmt.Errorf("collection %s has no deadline field: %w", collection, domain.ErrInvalidQuery)
	}
	if p.Limit < 0 || p.UrgentWithin < 0 {
		return nil, fmt.Errorf("limit and urgency window must be >= 0: %w", domain.ErrInvalidQuery)
	}

	scoped, err := s.scope(ctx, col)
	if err != nil {
		return nil, err
	}

	asOf := p.AsOf
	if asOf.IsZero() {
		asOf = s.now()
	}
	n := p.Limit
	if n == 0 {
		n = s.deadlineLimit
	}
	urgent := p.UrgentWithin
	if urgent == 0 {
		urgent = s.urgencyWindow
	}
	return analytics.UpcomingDeadlines(scoped, col.DeadlineField(), asOf, n, analytics.DeadlineOptions{
		UrgentWithin: urgent,
		ExcludePast:  p.ExcludePast,
	}), nil
}

// scope loads a collection and applies its base constraints.
func (s *Service) scope(ctx context.Context, col domcol.Collection) ([]domrec.Record, error) {
	recs, err := s.source.FetchAll(ctx, col.Name())
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}
	if base := col.Base(); len(base) > 0 {
		recs = query.Filter(recs, query.Spec{Exact: base})
	}
	return recs, nil
}

func (s *Service) limit(requested int) (int, error) {
	switch {
	case requested < 0:
		return 0, fmt.Errorf("limit must be >= 0, got %d: %w", requested, domain.ErrInvalidQuery)
	case requested == 0:
		return s.defaultLimit, nil
	case requested > s.maxLimit:
		return s.maxLimit, nil
	default:
		return requested, nil
	}
}

func sortKeys(col domcol.Collection, requested []query.SortKey) ([]query.SortKey, error) {
	if len(requested) == 0 {
		def := col.DefaultSort()
		keys := make([]query.SortKey, 0, len(def))
		for _, k := range def {
			keys = append(keys, query.SortKey{Field: k.Field, Desc: k.Desc})
		}
		return keys, nil
	}
	for _, k := range requested {
		if _, ok := col.FieldByName(k.Field); ok {
			continue
		}
		if k.Field == domrec.IDField || k.Field == domrec.CreatedAtField {
			continue
		}
		return nil, fmt.Errorf("cannot sort %s by %q: %w", col.Name(), k.Field, domain.ErrInvalidQuery)
	}
	return requested, nil
}

// undeclaredFields lists exact and membership constraints outside the
// collection's fields. They still filter, since records may carry them.
func undeclaredFields(col domcol.Collection, p Params) []string {
	var out []string
	for _, m := range []map[string]string{p.Exact, p.Membership} {
		for _, name := range slices.Sorted(maps.Keys(m)) {
			switch name {
			case domrec.IDField, domrec.CreatedAtField, domrec.UpdatedAtField:
				continue
			}
			if _, ok := col.FieldByName(name); !ok && !slices.Contains(out, name) {
				out = append(out, name)
			}
		}
	}
	return out
}

func facets(col domcol.Collection, recs []domrec.Record) map[string][]string {
	out := make(map[string][]string)
	for _, f := range col.ExactFacets() {
		out[f] = query.DistinctValues(recs, f)
	}
	for _, f := range col.MembershipFacets() {
		out[f] = query.DistinctValuesFromArrayField(recs, f)
	}
	return out
}
