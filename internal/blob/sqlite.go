package blob

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// sqliteFileName is the database file created inside the data directory.
const sqliteFileName = "shelf.db"

// Schema DDL for the SQLite blob table.
const createBlobsSQLite = `CREATE TABLE IF NOT EXISTS blobs (
    blob_key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    revision TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

const (
	selectBlobSQLite  = `SELECT value FROM blobs WHERE blob_key = ?`
	selectRevSQLite   = `SELECT revision FROM blobs WHERE blob_key = ?`
	sqliteBusyTimeout = `PRAGMA busy_timeout = 5000`
)

// upsertBlobSQLite replaces the blob and its revision in one statement.
const upsertBlobSQLite = `INSERT INTO blobs (blob_key, value, revision, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT(blob_key) DO UPDATE SET value = excluded.value, revision = excluded.revision, updated_at = excluded.updated_at`

// SQLite is a BlobStore backed by a single SQLite table. Every Set stamps the
// row with a fresh UUID v7 revision.
type SQLite struct {
	mu     sync.RWMutex
	db     *sql.DB
	path   string
	closed bool
}

// OpenSQLite opens or creates shelf.db in dataDir and ensures the blob table
// exists. An empty dataDir means the working directory.
func OpenSQLite(ctx context.Context, dataDir string) (*SQLite, error) {
	dir := dataDirOrDefault(dataDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dir, sqliteFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}

	// SQLite only supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(ctx, sqliteBusyTimeout); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, createBlobsSQLite); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating blobs table: %w", err)
	}

	return &SQLite{db: db, path: dbPath}, nil
}

// Path returns the database file location.
func (s *SQLite) Path() string {
	return s.path
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, types.ErrStoreClosed
	}
	var value []byte
	err := s.db.QueryRowContext(ctx, selectBlobSQLite, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying blob %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLite) Set(ctx context.Context, key string, blob []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.ErrStoreClosed
	}
	if blob == nil {
		blob = []byte{}
	}
	_, err := s.db.ExecContext(ctx, upsertBlobSQLite, key, blob, newRevision(), timestamp(time.Now()))
	if err != nil {
		return fmt.Errorf("upserting blob %s: %w", key, err)
	}
	return nil
}

// Revision returns the revision stamped by the last Set of key.
// Returns ErrBlobNotFound if nothing is stored under key.
func (s *SQLite) Revision(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", types.ErrStoreClosed
	}
	var rev string
	err := s.db.QueryRowContext(ctx, selectRevSQLite, key).Scan(&rev)
	if errors.Is(err, sql.ErrNoRows) {
		return "", types.ErrBlobNotFound
	}
	if err != nil {
		return "", fmt.Errorf("querying revision %s: %w", key, err)
	}
	return rev, nil
}

// Close closes the database. Idempotent.
func (s *SQLite) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
