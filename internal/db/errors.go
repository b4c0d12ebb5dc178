package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrKeyNotFound = errors.New("db: key not found")
)

// Op constants name the failing backend command for error context.
const (
	OpGet    = "GET"
	OpSet    = "SET"
	OpMGet   = "MGET"
	OpZAdd   = "ZADD"
	OpZRange = "ZRANGE"
	OpZCard  = "ZCARD"
	OpSelect = "SELECT"
	OpInsert = "INSERT"
	OpSchema = "CREATE TABLE"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// Op returns the operation name of a wrapped *Error, or "" when err is
// not a store error.
func Op(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Op
	}
	return ""
}
