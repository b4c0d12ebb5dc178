package record

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/hireboard/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	putFn  func(ctx context.Context, collection string, doc db.Document) error
	getFn  func(ctx context.Context, collection, id string) (db.Document, error)
	listFn func(ctx context.Context, collection string) ([]db.Document, error)
}

func (m *mockStore) Put(ctx context.Context, collection string, doc db.Document) error {
	if m.putFn != nil {
		return m.putFn(ctx, collection, doc)
	}
	return nil
}

func (m *mockStore) Get(ctx context.Context, collection, id string) (db.Document, error) {
	if m.getFn != nil {
		return m.getFn(ctx, collection, id)
	}
	return db.Document{}, db.ErrKeyNotFound
}

func (m *mockStore) List(ctx context.Context, collection string) ([]db.Document, error) {
	if m.listFn != nil {
		return m.listFn(ctx, collection)
	}
	return nil, nil
}

var fixedNow = time.Date(2024, 1, 20, 9, 30, 0, 0, time.UTC)

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms,
		WithIDGenerator(func() string { return "gen-1" }),
		WithClock(func() time.Time { return fixedNow }),
	)
	return repo, ms
}
