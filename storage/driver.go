// Package storage is the durable client-storage boundary: small blobs put
// and read under stable keys. A renamed key silently resets whatever state
// was stored under it, so keys are part of the contract.
package storage

import (
	"context"
	"io"
)

// Driver is the interface that every storage backend must implement.
type Driver interface {
	// Put streams data to the storage backend.
	Put(ctx context.Context, key string, r io.Reader) error
	// Get retrieves a reader for the blob.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the blob from the backend.
	Delete(ctx context.Context, key string) error
}
