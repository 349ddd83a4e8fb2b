package types

import (
	"context"
	"errors"
)

// Library is the command and query surface of the lending ledger.
// Mutations return a Result rather than an error; queries return copies so
// callers cannot bypass the ledger's invariants.
type Library interface {
	// AddBook catalogues a new, available book.
	// Fails with ErrDuplicateKey if the ISBN is already catalogued.
	AddBook(ctx context.Context, isbn, title, author string, year int) Result

	// RegisterMember creates a member with a generated MEM### ID.
	// Fails with ErrDuplicateKey if the email is already registered.
	RegisterMember(ctx context.Context, name, email, phone string) Result

	// BorrowBook lends a book to a member for the fixed loan period.
	// Checks, in order: the book exists, it is not on loan, the member exists.
	BorrowBook(ctx context.Context, isbn, memberID string) Result

	// ReturnBook ends the current loan of a book.
	ReturnBook(ctx context.Context, isbn string) Result

	Books() []Book
	Members() []Member
	AvailableBooks() []Book
	BorrowedBooks() []Book
	OverdueBooks() []Book
	SearchBooks(query string) []Book
	Book(isbn string) (Book, bool)
	Member(id string) (Member, bool)
	Statistics() Statistics

	// Close releases the underlying blob store.
	Close() error
}

// Ledger operation errors.
var (
	ErrDuplicateKey     = errors.New("duplicate key")
	ErrNotFound         = errors.New("not found")
	ErrAlreadyBorrowed  = errors.New("book is already borrowed")
	ErrNotBorrowed      = errors.New("book is not borrowed")
	ErrValidationFailed = errors.New("validation failed")
	ErrPersistFailed    = errors.New("persisting ledger failed")
)
