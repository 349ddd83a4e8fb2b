package blob

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

const (
	dialectPostgres = "postgres"
	blobsTable      = "shelf_blobs"

	colBlobKey   = "blob_key"
	colValue     = "value"
	colRevision  = "revision"
	colUpdatedAt = "updated_at"
)

// Pool settings for the postgres backend. The ledger issues one statement
// per operation, so a small pool is enough.
const (
	pgMaxConns          = int32(4)
	pgMinConns          = int32(1)
	pgMaxConnIdleTime   = 5 * time.Minute
	pgHealthCheckPeriod = time.Minute
	pgConnectTimeout    = 5 * time.Second
)

const createBlobsPostgres = `CREATE TABLE IF NOT EXISTS shelf_blobs (
    blob_key TEXT PRIMARY KEY,
    value BYTEA NOT NULL,
    revision TEXT NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
)`

// Postgres is a BlobStore backed by a PostgreSQL table. Statements are built
// with goqu and executed through a pgx connection pool.
type Postgres struct {
	mu     sync.RWMutex
	pool   *pgxpool.Pool
	closed bool
}

// OpenPostgres connects to the database at dsn and ensures the blob table
// exists.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing dsn: %w", err)
	}
	cfg.MaxConns = pgMaxConns
	cfg.MinConns = pgMinConns
	cfg.MaxConnIdleTime = pgMaxConnIdleTime
	cfg.HealthCheckPeriod = pgHealthCheckPeriod
	cfg.ConnConfig.ConnectTimeout = pgConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, createBlobsPostgres); err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating blobs table: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return nil, types.ErrStoreClosed
	}
	query, args, err := buildSelectQuery(colValue, key)
	if err != nil {
		return nil, err
	}
	var value []byte
	err = p.pool.QueryRow(ctx, query, args...).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, types.ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying blob %s: %w", key, err)
	}
	return value, nil
}

func (p *Postgres) Set(ctx context.Context, key string, blob []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return types.ErrStoreClosed
	}
	if blob == nil {
		blob = []byte{}
	}
	query, args, err := buildUpsertQuery(key, blob, newRevision(), time.Now().UTC())
	if err != nil {
		return err
	}
	if _, err := p.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("upserting blob %s: %w", key, err)
	}
	return nil
}

// Revision returns the revision stamped by the last Set of key.
// Returns ErrBlobNotFound if nothing is stored under key.
func (p *Postgres) Revision(ctx context.Context, key string) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return "", types.ErrStoreClosed
	}
	query, args, err := buildSelectQuery(colRevision, key)
	if err != nil {
		return "", err
	}
	var rev string
	err = p.pool.QueryRow(ctx, query, args...).Scan(&rev)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", types.ErrBlobNotFound
	}
	if err != nil {
		return "", fmt.Errorf("querying revision %s: %w", key, err)
	}
	return rev, nil
}

// Close closes the pool. Idempotent.
func (p *Postgres) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	p.pool.Close()
	return nil
}

func buildSelectQuery(column, key string) (string, []any, error) {
	query, args, err := goqu.Dialect(dialectPostgres).
		From(blobsTable).
		Select(column).
		Where(goqu.C(colBlobKey).Eq(key)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("building select query: %w", err)
	}
	return query, args, nil
}

func buildUpsertQuery(key string, blob []byte, revision string, at time.Time) (string, []any, error) {
	query, args, err := goqu.Dialect(dialectPostgres).
		Insert(blobsTable).
		Rows(goqu.Record{
			colBlobKey:   key,
			colValue:     blob,
			colRevision:  revision,
			colUpdatedAt: at,
		}).
		OnConflict(goqu.DoUpdate(colBlobKey, goqu.Record{
			colValue:     goqu.L("EXCLUDED." + colValue),
			colRevision:  goqu.L("EXCLUDED." + colRevision),
			colUpdatedAt: goqu.L("EXCLUDED." + colUpdatedAt),
		})).
		Prepared(true).
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("building upsert query: %w", err)
	}
	return query, args, nil
}
