package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested record does not exist in the database.
var ErrNotFound = errors.New("not found")

// PersistenceError wraps a failed read or write against the message store.
// Callers must not assume a write took effect when this error is returned.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("repository: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func persistenceErr(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}
