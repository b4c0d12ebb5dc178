package analytics

import (
	"context"

	domrec "github.com/kailas-cloud/hireboard/internal/domain/record"
)

// RecordSource loads records of a collection.
type RecordSource interface {
	FetchAll(ctx context.Context, collection string) ([]domrec.Record, error)
}
