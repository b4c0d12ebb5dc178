// Package postgres is a db.Store backed by a single JSONB table.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kailas-cloud/hireboard/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS hireboard_records (
	collection TEXT        NOT NULL,
	id         TEXT        NOT NULL,
	data       JSONB       NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS hireboard_records_listing
	ON hireboard_records (collection, created_at DESC);
`

// Config holds connection parameters for the PostgreSQL store.
type Config struct {
	URL      string
	MaxConns int32
}

// Store implements db.Store over a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore opens a pool. Connectivity is checked by WaitForReady.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("url is required")
	}
	pc, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	return &Store{pool: pool}, nil
}

// EnsureSchema creates the records table and its listing index.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return &db.Error{Op: db.OpSchema, Err: err}
	}
	return nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close releases the pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// WaitForReady polls Ping until the database responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// Put upserts a document.
func (s *Store) Put(ctx context.Context, collection string, doc db.Document) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO hireboard_records (collection, id, data, created_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data`,
		collection, doc.ID, doc.Data, doc.CreatedAt,
	)
	if err != nil {
		return &db.Error{Op: db.OpInsert, Err: fmt.Errorf("%s/%s: %w", collection, doc.ID, err)}
	}
	return nil
}

// Get returns one document or db.ErrKeyNotFound.
func (s *Store) Get(ctx context.Context, collection, id string) (db.Document, error) {
	doc := db.Document{ID: id}
	err := s.pool.QueryRow(ctx,
		`SELECT data, created_at FROM hireboard_records WHERE collection = $1 AND id = $2`,
		collection, id,
	).Scan(&doc.Data, &doc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return db.Document{}, db.ErrKeyNotFound
		}
		return db.Document{}, &db.Error{Op: db.OpSelect, Err: err}
	}
	return doc, nil
}

// List returns every document in the collection, newest first.
func (s *Store) List(ctx context.Context, collection string) ([]db.Document, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, data, created_at FROM hireboard_records
		 WHERE collection = $1
		 ORDER BY created_at DESC, id`,
		collection,
	)
	if err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}

	docs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (db.Document, error) {
		var d db.Document
		err := row.Scan(&d.ID, &d.Data, &d.CreatedAt)
		return d, err
	})
	if err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	return docs, nil
}

// Count returns the number of documents in the collection.
func (s *Store) Count(ctx context.Context, collection string) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM hireboard_records WHERE collection = $1`, collection,
	).Scan(&n)
	if err != nil {
		return 0, &db.Error{Op: db.OpSelect, Err: err}
	}
	return n, nil
}
