package blob

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// envPostgresDSN enables the postgres tests when set.
const envPostgresDSN = "SHELF_TEST_POSTGRES_DSN"

// exerciseStore runs the BlobStore contract against s. The store must be
// empty under the keys used here.
func exerciseStore(t *testing.T, s types.BlobStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key reports ErrBlobNotFound", func(t *testing.T) {
		_, err := s.Get(ctx, "absent")
		assert.ErrorIs(t, err, types.ErrBlobNotFound)
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "ledger", []byte(`{"books":[],"members":[]}`)))
		got, err := s.Get(ctx, "ledger")
		require.NoError(t, err)
		assert.JSONEq(t, `{"books":[],"members":[]}`, string(got))
	})

	t.Run("set replaces the whole blob", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "ledger", []byte(`{"books":[{"isbn":"1"}],"members":[]}`)))
		require.NoError(t, s.Set(ctx, "ledger", []byte(`{}`)))
		got, err := s.Get(ctx, "ledger")
		require.NoError(t, err)
		assert.Equal(t, `{}`, string(got))
	})

	t.Run("keys are independent", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "a", []byte("A")))
		require.NoError(t, s.Set(ctx, "b", []byte("B")))
		a, err := s.Get(ctx, "a")
		require.NoError(t, err)
		b, err := s.Get(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, "A", string(a))
		assert.Equal(t, "B", string(b))
	})

	t.Run("invalid keys rejected", func(t *testing.T) {
		for _, key := range []string{"", "..", "a/b", `a\b`} {
			assert.ErrorIs(t, s.Set(ctx, key, []byte("x")), types.ErrInvalidKey, "key %q", key)
			_, err := s.Get(ctx, key)
			assert.ErrorIs(t, err, types.ErrInvalidKey, "key %q", key)
		}
	})

	t.Run("closed store rejects operations", func(t *testing.T) {
		require.NoError(t, s.Close())
		require.NoError(t, s.Close(), "Close must be idempotent")
		_, err := s.Get(ctx, "ledger")
		assert.ErrorIs(t, err, types.ErrStoreClosed)
		assert.ErrorIs(t, s.Set(ctx, "ledger", []byte("x")), types.ErrStoreClosed)
	})
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestMemoryStoreCopiesBlobs(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	in := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", in))
	in[0] = 'X'

	out, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(out))
	out[0] = 'Y'

	again, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestFileStore(t *testing.T) {
	s, err := OpenFile(t.TempDir())
	require.NoError(t, err)
	exerciseStore(t, s)
}

func TestFileStoreCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s, err := OpenFile(dir)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set(context.Background(), "library_management_data", []byte("{}")))
	_, err = os.Stat(filepath.Join(dir, "library_management_data.json"))
	assert.NoError(t, err)
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenFile(dir)
	require.NoError(t, err)
	defer s.Close()

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Set(context.Background(), "k", []byte("v")))
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "k.json", entries[0].Name())
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := OpenFile(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "k", []byte("persisted")))
	require.NoError(t, s.Close())

	s2, err := OpenFile(dir)
	require.NoError(t, err)
	defer s2.Close()
	got, err := s2.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "persisted", string(got))
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQLite(context.Background(), t.TempDir())
	require.NoError(t, err)
	exerciseStore(t, s)
}

func TestSQLiteStoreRevisionChangesOnSet(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := OpenSQLite(ctx, dir)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Revision(ctx, "k")
	assert.ErrorIs(t, err, types.ErrBlobNotFound)

	require.NoError(t, s.Set(ctx, "k", []byte("v1")))
	rev1, err := s.Revision(ctx, "k")
	require.NoError(t, err)
	assert.NotEmpty(t, rev1)

	require.NoError(t, s.Set(ctx, "k", []byte("v2")))
	rev2, err := s.Revision(ctx, "k")
	require.NoError(t, err)
	assert.NotEqual(t, rev1, rev2)

	assert.Equal(t, filepath.Join(dir, "shelf.db"), s.Path())
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := OpenSQLite(ctx, dir)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "k", []byte("persisted")))
	require.NoError(t, s.Close())

	s2, err := OpenSQLite(ctx, dir)
	require.NoError(t, err)
	defer s2.Close()
	got, err := s2.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "persisted", string(got))
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv(envPostgresDSN)
	if dsn == "" {
		t.Skipf("%s not set", envPostgresDSN)
	}
	ctx := context.Background()
	s, err := OpenPostgres(ctx, dsn)
	require.NoError(t, err)

	// Start from a clean table so the contract's absence checks hold.
	_, err = s.pool.Exec(ctx, "DELETE FROM "+blobsTable)
	require.NoError(t, err)

	exerciseStore(t, s)
}

func TestBuildPostgresQueries(t *testing.T) {
	query, args, err := buildSelectQuery(colValue, "ledger")
	require.NoError(t, err)
	assert.Contains(t, query, `"shelf_blobs"`)
	assert.Contains(t, query, `"blob_key"`)
	assert.Contains(t, query, "$1")
	assert.Equal(t, []any{"ledger"}, args)

	query, args, err = buildUpsertQuery("ledger", []byte("{}"), "rev", timeFixture)
	require.NoError(t, err)
	assert.Contains(t, query, `INSERT INTO "shelf_blobs"`)
	assert.Contains(t, query, "ON CONFLICT")
	assert.Contains(t, query, "EXCLUDED.value")
	assert.Contains(t, query, "EXCLUDED.revision")
	assert.Len(t, args, 4)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		cfg     types.Config
		wantErr error
		check   func(t *testing.T, s types.BlobStore)
	}{
		{
			name:    "empty backend",
			cfg:     types.Config{},
			wantErr: types.ErrBackendEmpty,
		},
		{
			name:    "unknown backend",
			cfg:     types.Config{Backend: "redis"},
			wantErr: types.ErrBackendUnknown,
		},
		{
			name:    "postgres without dsn",
			cfg:     types.Config{Backend: types.BackendPostgres},
			wantErr: types.ErrDSNEmpty,
		},
		{
			name: "memory",
			cfg:  types.Config{Backend: types.BackendMemory},
			check: func(t *testing.T, s types.BlobStore) {
				assert.IsType(t, &Memory{}, s)
			},
		},
		{
			name: "file",
			cfg:  types.Config{Backend: types.BackendFile, DataDir: t.TempDir()},
			check: func(t *testing.T, s types.BlobStore) {
				assert.IsType(t, &File{}, s)
			},
		},
		{
			name: "sqlite",
			cfg:  types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()},
			check: func(t *testing.T, s types.BlobStore) {
				assert.IsType(t, &SQLite{}, s)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(ctx, tt.cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, s)
				return
			}
			require.NoError(t, err)
			defer s.Close()
			tt.check(t, s)
		})
	}
}

var timeFixture = time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
