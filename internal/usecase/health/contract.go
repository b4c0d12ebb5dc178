package health

import "context"

// DBPinger checks store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// RecordCounter reads a collection's size, exercising the data path.
type RecordCounter interface {
	Count(ctx context.Context, collection string) (int, error)
}
