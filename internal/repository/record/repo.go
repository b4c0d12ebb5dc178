package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/hireboard/internal/db"
	"github.com/kailas-cloud/hireboard/internal/domain"
	domrec "github.com/kailas-cloud/hireboard/internal/domain/record"
	"github.com/kailas-cloud/hireboard/internal/logger"
	"github.com/kailas-cloud/hireboard/internal/metrics"
)

// store is the consumer interface for record documents (ISP).
type store interface {
	Put(ctx context.Context, collection string, doc db.Document) error
	Get(ctx context.Context, collection, id string) (db.Document, error)
	List(ctx context.Context, collection string) ([]db.Document, error)
}

// Repo is the record source: it maps store documents to records.
type Repo struct {
	store store
	newID func() string
	now   func() time.Time
}

// Option configures a Repo.
type Option func(*Repo)

// WithIDGenerator overrides the record ID source.
func WithIDGenerator(fn func() string) Option { return func(r *Repo) { r.newID = fn } }

// WithClock overrides the insert timestamp source.
func WithClock(fn func() time.Time) Option { return func(r *Repo) { r.now = fn } }

// New creates a record repository.
func New(s store, opts ...Option) *Repo {
	r := &Repo{store: s, newID: uuid.NewString, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FetchAll returns every record in the collection, newest first. Documents
// that fail to decode are logged and skipped.
func (r *Repo) FetchAll(ctx context.Context, collection string) ([]domrec.Record, error) {
	docs, err := r.store.List(ctx, collection)
	if err != nil {
		metrics.ObserveStoreError(db.Op(err))
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}

	out := make([]domrec.Record, 0, len(docs))
	for _, doc := range docs {
		rec, err := decode(doc)
		if err != nil {
			logger.FromContext(ctx).Warn("skipping undecodable record",
				zap.String("collection", collection),
				zap.String("id", doc.ID),
				zap.Error(err),
			)
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// Get returns one record or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, collection, id string) (domrec.Record, error) {
	doc, err := r.store.Get(ctx, collection, id)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, fmt.Errorf("record %s/%s: %w", collection, id, domain.ErrNotFound)
		}
		metrics.ObserveStoreError(db.Op(err))
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return decode(doc)
}

// Insert stores rec with a fresh ID and creation time and returns the
// stored form. updatedAt equals createdAt. A caller-provided "id" is kept.
func (r *Repo) Insert(ctx context.Context, collection string, rec domrec.Record) (domrec.Record, error) {
	stored := rec.Clone()
	id := stored.ID()
	if id == "" {
		id = r.newID()
		stored[domrec.IDField] = id
	}
	created := r.now().UTC()
	stored[domrec.CreatedAtField] = created.Format(time.RFC3339)
	stored[domrec.UpdatedAtField] = stored[domrec.CreatedAtField]

	data, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	if err := r.store.Put(ctx, collection, db.Document{ID: id, CreatedAt: created, Data: data}); err != nil {
		metrics.ObserveStoreError(db.Op(err))
		return nil, fmt.Errorf("put %s/%s: %w", collection, id, err)
	}
	return domrec.New(stored), nil
}

func decode(doc db.Document) (domrec.Record, error) {
	var m map[string]any
	if err := json.Unmarshal(doc.Data, &m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", doc.ID, err)
	}
	if m == nil {
		return nil, fmt.Errorf("decode %s: not an object", doc.ID)
	}
	rec := domrec.New(m)
	rec[domrec.IDField] = doc.ID
	if !rec.Has(domrec.CreatedAtField) && !doc.CreatedAt.IsZero() {
		rec[domrec.CreatedAtField] = doc.CreatedAt.UTC().Format(time.RFC3339)
	}
	return rec, nil
}
