package store

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("document not found")

// StoreWriteError is returned when the document store rejects a create,
// update or delete. It is never retried automatically.
type StoreWriteError struct {
	Op  string
	ID  string
	Err error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("store %s %s: %v", e.Op, e.ID, e.Err)
}

func (e *StoreWriteError) Unwrap() error { return e.Err }

// StoreReadError is returned when a subscription cannot be established or a
// live subscription fails to deliver a snapshot.
type StoreReadError struct {
	Collection string
	Err        error
}

func (e *StoreReadError) Error() string {
	return fmt.Sprintf("store read %s: %v", e.Collection, e.Err)
}

func (e *StoreReadError) Unwrap() error { return e.Err }

// UploadError is returned when a blob write fails.
type UploadError struct {
	Path string
	Err  error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s: %v", e.Path, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }
