package store

import (
	"github.com/pkg/errors"
)

var (
	// ErrEmptyText rejects a todo whose text is blank after trimming.
	ErrEmptyText = errors.New("todo text is empty")
	// ErrIDsExhausted rejects an add once the id counter reached jsonstore.MaxID.
	ErrIDsExhausted = errors.New("no todo ids left")
	// ErrNotFound is returned by callers that need a failure for an unknown id.
	ErrNotFound = errors.New("todo not found")
	// ErrKeepFile blocks saves over a todos file that could not be loaded
	// and is still in place.
	ErrKeepFile = errors.New("todos file could not be loaded, not overwriting it")
)

// WriteError reports that the todos could not be written to disk. The
// in-memory state is still authoritative.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return "save " + e.Path + ": " + e.Err.Error()
}

func (e *WriteError) Unwrap() error { return e.Err }

// CorruptionError reports a todos file that exists but could not be read
// or parsed. The store starts empty in that case.
type CorruptionError struct {
	Path   string
	Backup string // where the bad file was moved, if it was
	Err    error
}

func (e *CorruptionError) Error() string {
	return "load " + e.Path + ": " + e.Err.Error()
}

func (e *CorruptionError) Unwrap() error { return e.Err }
