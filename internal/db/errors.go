package db

import "errors"

// Sentinel errors for engine operations.
var (
	ErrIndexNotFound = errors.New("db: index not found")
	ErrIndexExists   = errors.New("db: index already exists")
	ErrBulkRejected  = errors.New("db: bulk request partially rejected")
)

// Op names used for error context and metric labels.
const (
	OpPing        = "ping"
	OpCreateIndex = "create_index"
	OpDropIndex   = "drop_index"
	OpIndexExists = "index_exists"
	OpBulk        = "bulk"
	OpSearch      = "search"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
