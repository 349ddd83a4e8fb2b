// Package shelf is the public entry point for the lending ledger. It opens the
// blob store named by a Config and loads the ledger on top of it, keeping
// implementation details internal.
package shelf

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/shelf/internal/blob"
	"github.com/mesh-intelligence/shelf/internal/ledger"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

// Version is the shelf release version.
const Version = "0.3.0"

// Option configures the ledger opened by Open.
type Option = ledger.Option

// Ledger options re-exported for callers outside this module.
var (
	WithClock  = ledger.WithClock
	WithLogger = ledger.WithLogger
	WithKey    = ledger.WithKey
)

// Open creates the blob store selected by cfg and loads the ledger from it,
// seeding sample data on first use. The caller must Close the returned
// Library.
//
// Example:
//
//	lib, err := shelf.Open(ctx, types.Config{
//	    Backend: types.BackendFile,
//	    DataDir: ".shelf-db",
//	})
//	defer lib.Close()
func Open(ctx context.Context, cfg types.Config, opts ...Option) (types.Library, error) {
	blobs, err := blob.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.Backend, err)
	}

	store, err := ledger.Open(ctx, blobs, opts...)
	if err != nil {
		_ = blobs.Close()
		return nil, err
	}
	return store, nil
}
