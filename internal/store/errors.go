package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no session matches an id
var ErrNotFound = errors.New("session not found")

// ValidationError reports which input field was rejected and why
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PersistenceError wraps a failed read or write of the durable slot
type PersistenceError struct {
	Op  string // "read", "write", "decode", "encode"
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s slot %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
