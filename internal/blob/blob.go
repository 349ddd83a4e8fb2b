// Package blob implements the key-value blob stores that persist the lending
// ledger: an in-memory map, atomic files in a data directory, a SQLite
// database, and a PostgreSQL table.
package blob

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// Open creates the blob store selected by cfg.Backend.
// The caller must Close the returned store.
func Open(ctx context.Context, cfg types.Config) (types.BlobStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case types.BackendMemory:
		return NewMemory(), nil
	case types.BackendFile:
		s, err := OpenFile(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case types.BackendSQLite:
		s, err := OpenSQLite(ctx, cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case types.BackendPostgres:
		s, err := OpenPostgres(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, types.ErrBackendUnknown
	}
}

// validateKey rejects keys that are empty or could escape a directory when
// used as a file name.
func validateKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", types.ErrInvalidKey, key)
	}
	return nil
}

// dataDirOrDefault returns dir, or the working directory when dir is empty.
func dataDirOrDefault(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}

// newRevision generates a UUID v7 that stamps each stored blob version.
func newRevision() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

// timestamp formats t the way revisions are recorded.
func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
