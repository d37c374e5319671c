package storage

import (
	"context"
	"io"
)

// DocumentStore persists document bytes keyed by an opaque storage key.
// Metadata lives in the database; the store only sees content.
type DocumentStore interface {
	// Put writes the contents of body under key.
	Put(ctx context.Context, key string, contentType string, body io.Reader, size int64) error

	// Get returns a reader over the contents stored under key. The caller
	// must close it.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the contents stored under key.
	Delete(ctx context.Context, key string) error
}
