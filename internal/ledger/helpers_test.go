package ledger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelf/internal/blob"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

const (
	seedBorrowedISBN  = "9781617294945"
	seedAvailableISBN = "9780134685991"
	seedBorrowerID    = "MEM001"
)

// clockAt returns a clock frozen at noon UTC on the given date.
func clockAt(year int, month time.Month, day int) func() time.Time {
	at := time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

// quietLogger discards everything below error level.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

// openSeeded opens a store over a fresh memory blob store, which seeds it.
func openSeeded(t *testing.T, opts ...Option) (*Store, *blob.Memory) {
	t.Helper()
	mem := blob.NewMemory()
	opts = append([]Option{WithClock(clockAt(2026, 1, 10)), WithLogger(quietLogger())}, opts...)
	s, err := Open(context.Background(), mem, opts...)
	require.NoError(t, err)
	return s, mem
}

// openWith opens a store over a blob pre-loaded with doc.
func openWith(t *testing.T, doc types.Document, opts ...Option) (*Store, *blob.Memory) {
	t.Helper()
	mem := blob.NewMemory()
	data, err := encodeDocument(doc)
	require.NoError(t, err)
	require.NoError(t, mem.Set(context.Background(), DefaultKey, data))
	opts = append([]Option{WithClock(clockAt(2026, 1, 10)), WithLogger(quietLogger())}, opts...)
	s, err := Open(context.Background(), mem, opts...)
	require.NoError(t, err)
	return s, mem
}

// storedDocument decodes what is currently persisted under DefaultKey.
func storedDocument(t *testing.T, mem *blob.Memory) types.Document {
	t.Helper()
	data, err := mem.Get(context.Background(), DefaultKey)
	require.NoError(t, err)
	doc, err := decodeDocument(data)
	require.NoError(t, err)
	return doc
}

// requireConsistent asserts the loan invariants that must hold after every
// operation: loan fields are all set or all absent, and each member's
// borrowed set is exactly the books that name the member as borrower.
func requireConsistent(t *testing.T, doc types.Document) {
	t.Helper()

	want := make(map[string][]string)
	for _, b := range doc.Books {
		borrowed := b.BorrowedBy != nil
		assert.Equal(t, borrowed, b.BorrowDate != nil, "book %s: borrowDate presence must match borrowedBy", b.ISBN)
		assert.Equal(t, borrowed, b.DueDate != nil, "book %s: dueDate presence must match borrowedBy", b.ISBN)
		if id, ok := b.Borrower(); ok {
			want[id] = append(want[id], b.ISBN)
		}
	}
	for _, m := range doc.Members {
		got := append([]string{}, m.BorrowedBooks...)
		exp := append([]string{}, want[m.ID]...)
		sort.Strings(got)
		sort.Strings(exp)
		assert.Equal(t, exp, got, "member %s borrowed set", m.ID)
		delete(want, m.ID)
	}
	assert.Empty(t, want, "books reference members that do not exist")
}

// failingStore wraps a BlobStore and fails every Set once armed.
type failingStore struct {
	types.BlobStore
	failSet bool
}

var errDiskFull = errors.New("disk full")

func (f *failingStore) Set(ctx context.Context, key string, blob []byte) error {
	if f.failSet {
		return errDiskFull
	}
	return f.BlobStore.Set(ctx, key, blob)
}
