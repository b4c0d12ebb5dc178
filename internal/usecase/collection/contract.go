package collection

import (
	"context"

	domcol "github.com/kailas-cloud/hireboard/internal/domain/collection"
)

// Catalog resolves collection definitions.
type Catalog interface {
	Get(name string) (domcol.Collection, error)
	All() []domcol.Collection
}

// Counter counts stored records per collection.
type Counter interface {
	Count(ctx context.Context, collection string) (int, error)
}
