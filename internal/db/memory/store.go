// Package memory is an in-process db.Store used for local runs and tests.
package memory

import (
	"cmp"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/kailas-cloud/hireboard/internal/db"
	"github.com/kailas-cloud/hireboard/internal/fixture"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

//go:embed fixtures/*.yaml
var fixtures embed.FS

// SeedEpoch stamps seeded documents. Each fixture entry is one second older
// than the one before it so listings keep file order.
var SeedEpoch = time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)

// Fixtures returns the built-in sample records, one file per collection.
func Fixtures() fs.FS {
	sub, err := fs.Sub(fixtures, "fixtures")
	if err != nil {
		panic(err)
	}
	return sub
}

// Store keeps documents in a mutex-guarded map.
type Store struct {
	mu   sync.RWMutex
	docs map[string]map[string]db.Document
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{docs: make(map[string]map[string]db.Document)}
}

// Seed loads every fixture file in fsys into the store.
func (s *Store) Seed(ctx context.Context, fsys fs.FS) (int, error) {
	return Seed(ctx, s, fsys)
}

// Putter is the write side of a db.DocumentStore.
type Putter interface {
	Put(ctx context.Context, collection string, doc db.Document) error
}

// Seed loads every fixture file in fsys into dst, one collection per file.
// Entries without an "id" get a positional one. Existing documents with the
// same id are replaced, so seeding twice is harmless.
func Seed(ctx context.Context, dst Putter, fsys fs.FS) (int, error) {
	sets, err := fixture.ReadFS(fsys)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, collection := range slices.Sorted(maps.Keys(sets)) {
		for i, rec := range sets[collection] {
			id, _ := rec["id"].(string)
			if id == "" {
				id = fmt.Sprintf("%d", i+1)
				rec["id"] = id
			}
			data, err := json.Marshal(rec)
			if err != nil {
				return n, fmt.Errorf("seed %s/%s: %w", collection, id, err)
			}
			doc := db.Document{
				ID:        id,
				CreatedAt: SeedEpoch.Add(-time.Duration(i) * time.Second),
				Data:      data,
			}
			if err := dst.Put(ctx, collection, doc); err != nil {
				return n, err
			}
			n++
		}
	}
	return n, nil
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() {}

// WaitForReady returns immediately.
func (s *Store) WaitForReady(context.Context, time.Duration) error { return nil }

// Put inserts or replaces a document.
func (s *Store) Put(ctx context.Context, collection string, doc db.Document) error {
	if err := ctx.Err(); err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	doc.Data = slices.Clone(doc.Data)

	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.docs[collection]
	if !ok {
		col = make(map[string]db.Document)
		s.docs[collection] = col
	}
	col[doc.ID] = doc
	return nil
}

// Get returns one document or db.ErrKeyNotFound.
func (s *Store) Get(_ context.Context, collection, id string) (db.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[collection][id]
	if !ok {
		return db.Document{}, db.ErrKeyNotFound
	}
	doc.Data = slices.Clone(doc.Data)
	return doc, nil
}

// List returns documents newest first, ties broken by ID.
func (s *Store) List(ctx context.Context, collection string) ([]db.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, &db.Error{Op: db.OpZRange, Err: err}
	}
	s.mu.RLock()
	out := make([]db.Document, 0, len(s.docs[collection]))
	for _, doc := range s.docs[collection] {
		doc.Data = slices.Clone(doc.Data)
		out = append(out, doc)
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b db.Document) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

// Count returns the number of documents in the collection.
func (s *Store) Count(_ context.Context, collection string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs[collection]), nil
}
