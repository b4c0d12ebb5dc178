package listing

import (
	"context"

	domcol "github.com/kailas-cloud/hireboard/internal/domain/collection"
	domrec "github.com/kailas-cloud/hireboard/internal/domain/record"
)

// RecordSource loads records of a collection.
type RecordSource interface {
	FetchAll(ctx context.Context, collection string) ([]domrec.Record, error)
	Get(ctx context.Context, collection, id string) (domrec.Record, error)
}

// Catalog resolves collection definitions.
type Catalog interface {
	Get(name string) (domcol.Collection, error)
}
