package record

import (
	"context"

	domcol "github.com/kailas-cloud/hireboard/internal/domain/collection"
	domrec "github.com/kailas-cloud/hireboard/internal/domain/record"
)

// Writer persists new records.
type Writer interface {
	Insert(ctx context.Context, collection string, rec domrec.Record) (domrec.Record, error)
}

// Catalog resolves collection definitions.
type Catalog interface {
	Get(name string) (domcol.Collection, error)
}
