// Package ledger implements the lending ledger: the single owner of the book
// catalogue and member roster, and the only writer of their persisted form.
//
// Every successful mutation rewrites the whole ledger document to the blob
// store before it becomes visible. A mutation is applied to a copy of the
// document, the copy is persisted, and only then does it replace the current
// state, so a rejected or failed operation leaves the ledger untouched.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// DefaultKey is the blob store key the ledger document is stored under.
const DefaultKey = "library_management_data"

// LoanPeriodDays is the number of calendar days between borrow and due date.
const LoanPeriodDays = 14

const (
	logMsgSeeded           = "ledger seeded with sample data"
	logMsgLoaded           = "ledger loaded"
	logMsgPersistFailed    = "persisting ledger failed"
	logMsgBookAdded        = "book added"
	logMsgMemberRegistered = "member registered"
	logMsgBookBorrowed     = "book borrowed"
	logMsgBookReturned     = "book returned"
	logMsgBorrowerMissing  = "borrowing member not found during return; skipping member update"
	logMsgMemberIDTaken    = "generated member id already exists"
	logAttrKey             = "key"
	logAttrBooks           = "books"
	logAttrMembers         = "members"
	logAttrISBN            = "isbn"
	logAttrMemberID        = "member_id"
	logAttrDueDate         = "due_date"
	logAttrOverdue         = "overdue"
	logAttrError           = "error"
)

// Store is the lending ledger. It is safe for use by multiple goroutines,
// though each operation runs to completion, persist included, before the
// next one starts.
type Store struct {
	mu     sync.RWMutex
	blobs  types.BlobStore
	key    string
	now    func() time.Time
	logger *slog.Logger
	doc    types.Document
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the source of the current time. The current date is the UTC
// calendar date of the returned time.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithKey overrides the blob store key.
func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

// Open loads the ledger from blobs. When nothing is stored under the key the
// ledger is seeded with sample data, which is persisted immediately. Stored
// data is taken verbatim, without validation. The Store takes ownership of
// blobs and closes it in Close.
func Open(ctx context.Context, blobs types.BlobStore, opts ...Option) (*Store, error) {
	s := &Store{
		blobs:  blobs,
		key:    DefaultKey,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	data, err := blobs.Get(ctx, s.key)
	switch {
	case errors.Is(err, types.ErrBlobNotFound):
		doc := seedDocument()
		if err := s.persist(ctx, doc); err != nil {
			return nil, fmt.Errorf("persisting seed: %w", err)
		}
		s.doc = doc
		s.logger.Info(logMsgSeeded, logAttrKey, s.key,
			logAttrBooks, len(doc.Books), logAttrMembers, len(doc.Members))
	case err != nil:
		return nil, fmt.Errorf("loading ledger: %w", err)
	default:
		doc, err := decodeDocument(data)
		if err != nil {
			return nil, fmt.Errorf("decoding ledger: %w", err)
		}
		s.doc = doc
		s.logger.Debug(logMsgLoaded, logAttrKey, s.key,
			logAttrBooks, len(doc.Books), logAttrMembers, len(doc.Members))
	}
	return s, nil
}

// Close closes the underlying blob store.
func (s *Store) Close() error {
	return s.blobs.Close()
}

// Snapshot returns a deep copy of the whole ledger document.
func (s *Store) Snapshot() types.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// today returns the current calendar date.
func (s *Store) today() types.Date {
	return types.DateOf(s.now())
}

// commit persists next and makes it the current document. On failure the
// current document is left as it was. The caller must hold s.mu.
func (s *Store) commit(ctx context.Context, next types.Document) error {
	if err := s.persist(ctx, next); err != nil {
		s.logger.Error(logMsgPersistFailed, logAttrKey, s.key, logAttrError, err)
		return err
	}
	s.doc = next
	return nil
}

// persist writes the full document to the blob store.
func (s *Store) persist(ctx context.Context, doc types.Document) error {
	data, err := encodeDocument(doc)
	if err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}
	if err := s.blobs.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("writing ledger: %w", err)
	}
	return nil
}

var _ types.Library = (*Store)(nil)
