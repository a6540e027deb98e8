package store

import (
	"errors"
	"fmt"
)

// ErrMissingDocument signals an update aimed at a document that does not
// exist. Point lookups do not use it; GetByID returns nil for absence.
var ErrMissingDocument = errors.New("document does not exist")

type ErrorKind string

const (
	KindRead  ErrorKind = "read"
	KindWrite ErrorKind = "write"
)

// Error wraps an underlying store failure with the operation and collection
// it came from.
type Error struct {
	Op         string
	Collection string
	Kind       ErrorKind
	Err        error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store: %s %s failed: %v", e.Op, e.Collection, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newReadError(op, collection string, err error) *Error {
	return &Error{Op: op, Collection: collection, Kind: KindRead, Err: err}
}

func newWriteError(op, collection string, err error) *Error {
	return &Error{Op: op, Collection: collection, Kind: KindWrite, Err: err}
}

// IsReadError reports whether err is a store read failure.
func IsReadError(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Kind == KindRead
}

// IsWriteError reports whether err is a store write failure.
func IsWriteError(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Kind == KindWrite
}
