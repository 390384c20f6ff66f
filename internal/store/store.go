// Package store defines the external persistence collaborators: a schemaless
// document store with a collection-level live feed, and a blob store.
package store

import "context"

// Fields is the wire form of a document: JSON-compatible values keyed by field name.
type Fields map[string]any

// Document is one stored document and its id.
type Document struct {
	ID     string
	Fields Fields
}

// SnapshotFunc receives the full current collection, never a delta.
type SnapshotFunc func(docs []Document)

// ErrorFunc receives asynchronous read failures of a live subscription.
type ErrorFunc func(err error)

// DocumentStore persists documents grouped in collections and pushes the whole
// collection to watchers on every change.
type DocumentStore interface {
	Set(ctx context.Context, collection, id string, fields Fields) error
	// Merge shallow-merges fields into an existing document. It returns
	// ErrNotFound when the document does not exist.
	Merge(ctx context.Context, collection, id string, fields Fields) error
	// Delete removes the document. Deleting a missing document is not an error.
	Delete(ctx context.Context, collection, id string) error
	// Watch delivers the collection once immediately and again after every
	// change until cancel is called or ctx is done.
	Watch(ctx context.Context, collection string, onChange SnapshotFunc, onError ErrorFunc) (cancel func(), err error)
}

// BlobStore stores uploaded files and returns a retrievable URL.
type BlobStore interface {
	Write(ctx context.Context, path string, data []byte, contentType string) (string, error)
}
