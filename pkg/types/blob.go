package types

import (
	"context"
	"errors"
)

// BlobStore is a key-value store of opaque blobs. Set replaces the whole
// value stored under key; there are no partial updates.
type BlobStore interface {
	// Get returns the blob stored under key.
	// Returns ErrBlobNotFound if nothing is stored under key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores blob under key, replacing any previous value.
	Set(ctx context.Context, key string, blob []byte) error

	// Close releases backend resources. Idempotent.
	Close() error
}

// Blob store errors.
var (
	ErrBlobNotFound = errors.New("blob not found")
	ErrStoreClosed  = errors.New("blob store is closed")
	ErrInvalidKey   = errors.New("invalid blob key")
)
