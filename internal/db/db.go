package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
type Store interface {
	Pinger
	DocumentStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Document is one stored record payload.
type Document struct {
	ID        string
	CreatedAt time.Time
	Data      []byte
}

// DocumentStore keeps opaque JSON documents grouped by collection.
type DocumentStore interface {
	// Put inserts or replaces a document.
	Put(ctx context.Context, collection string, doc Document) error
	// Get returns one document or ErrKeyNotFound.
	Get(ctx context.Context, collection, id string) (Document, error)
	// List returns every document in the collection, newest first.
	List(ctx context.Context, collection string) ([]Document, error)
	// Count returns the number of documents in the collection.
	Count(ctx context.Context, collection string) (int, error)
}
