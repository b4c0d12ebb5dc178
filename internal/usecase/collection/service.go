package collection

import (
	"context"
	"fmt"

	domcol "github.com/kailas-cloud/hireboard/internal/domain/collection"
)

// Summary is a collection definition with its stored record count.
type Summary struct {
	Collection domcol.Collection
	Count      int
}

// Service exposes the collection catalog.
type Service struct {
	catalog Catalog
	counter Counter
}

// New creates a collection service.
func New(catalog Catalog, counter Counter) *Service {
	return &Service{catalog: catalog, counter: counter}
}

// List returns every collection in catalog order with its record count.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	cols := s.catalog.All()
	out := make([]Summary, 0, len(cols))
	for _, col := range cols {
		n, err := s.counter.Count(ctx, col.Name())
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", col.Name(), err)
		}
		out = append(out, Summary{Collection: col, Count: n})
	}
	return out, nil
}

// Get returns one collection with its record count.
func (s *Service) Get(ctx context.Context, name string) (Summary, error) {
	col, err := s.catalog.Get(name)
	if err != nil {
		return Summary{}, fmt.Errorf("get collection: %w", err)
	}
	n, err := s.counter.Count(ctx, name)
	if err != nil {
		return Summary{}, fmt.Errorf("count %s: %w", name, err)
	}
	return Summary{Collection: col, Count: n}, nil
}
