package ledger

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// AddBook catalogues a new book with no borrower. The year is stored as
// given; range checks belong to the caller.
func (s *Store) AddBook(ctx context.Context, isbn, title, author string, year int) types.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc.BookIndex(isbn) >= 0 {
		return reject(types.ErrDuplicateKey, "Book with ISBN %s already exists.", isbn)
	}

	next := s.doc.Clone()
	next.Books = append(next.Books, types.Book{
		ISBN:   isbn,
		Title:  title,
		Author: author,
		Year:   year,
	})
	if err := s.commit(ctx, next); err != nil {
		return persistFailed(err)
	}

	s.logger.Debug(logMsgBookAdded, logAttrISBN, isbn)
	return types.Result{
		Success: true,
		Message: fmt.Sprintf("Book \"%s\" added successfully.", title),
	}
}

// RegisterMember adds a member whose ID is MEM followed by the member count
// plus one, zero-padded to three digits. Registration date is today.
func (s *Store) RegisterMember(ctx context.Context, name, email, phone string) types.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.doc.Members {
		if m.Email == email {
			return reject(types.ErrDuplicateKey, "Member with email %s already exists.", email)
		}
	}

	id := memberID(len(s.doc.Members) + 1)
	if s.doc.MemberIndex(id) >= 0 {
		// Only reachable when members were removed from the stored blob.
		s.logger.Warn(logMsgMemberIDTaken, logAttrMemberID, id)
		return reject(types.ErrDuplicateKey, "Generated member ID %s already exists.", id)
	}

	next := s.doc.Clone()
	next.Members = append(next.Members, types.Member{
		ID:               id,
		Name:             name,
		Email:            email,
		Phone:            phone,
		RegistrationDate: s.today(),
		BorrowedBooks:    []string{},
	})
	if err := s.commit(ctx, next); err != nil {
		return persistFailed(err)
	}

	s.logger.Debug(logMsgMemberRegistered, logAttrMemberID, id)
	return types.Result{
		Success:  true,
		Message:  fmt.Sprintf("Member \"%s\" registered successfully with ID %s.", name, id),
		MemberID: id,
	}
}

// BorrowBook lends the book to the member for LoanPeriodDays. An unknown ISBN
// is reported before a loan conflict, and both before an unknown member.
func (s *Store) BorrowBook(ctx context.Context, isbn, memberID string) types.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	bi := s.doc.BookIndex(isbn)
	if bi < 0 {
		return reject(types.ErrNotFound, "Book with ISBN %s not found.", isbn)
	}
	book := s.doc.Books[bi]
	if borrower, ok := book.Borrower(); ok {
		return reject(types.ErrAlreadyBorrowed, "Book \"%s\" is already borrowed by %s.", book.Title, borrower)
	}
	mi := s.doc.MemberIndex(memberID)
	if mi < 0 {
		return reject(types.ErrNotFound, "Member with ID %s not found.", memberID)
	}

	today := s.today()
	due := today.AddDays(LoanPeriodDays)

	next := s.doc.Clone()
	next.Books[bi].Lend(memberID, today, due)
	next.Members[mi].BorrowedBooks = append(next.Members[mi].BorrowedBooks, isbn)
	if err := s.commit(ctx, next); err != nil {
		return persistFailed(err)
	}

	s.logger.Debug(logMsgBookBorrowed, logAttrISBN, isbn, logAttrMemberID, memberID, logAttrDueDate, due)
	return types.Result{
		Success: true,
		Message: fmt.Sprintf("Book \"%s\" borrowed successfully by %s. Due: %s", book.Title, s.doc.Members[mi].Name, due),
	}
}

// ReturnBook ends the book's loan. If the borrowing member no longer exists
// the return still succeeds and only the book is updated.
func (s *Store) ReturnBook(ctx context.Context, isbn string) types.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	bi := s.doc.BookIndex(isbn)
	if bi < 0 {
		return reject(types.ErrNotFound, "Book with ISBN %s not found.", isbn)
	}
	book := s.doc.Books[bi]
	borrower, ok := book.Borrower()
	if !ok {
		return reject(types.ErrNotBorrowed, "Book \"%s\" is not currently borrowed.", book.Title)
	}

	overdue := book.OverdueOn(s.today())

	next := s.doc.Clone()
	if mi := next.MemberIndex(borrower); mi >= 0 {
		next.Members[mi].Unlend(isbn)
	} else {
		s.logger.Warn(logMsgBorrowerMissing, logAttrISBN, isbn, logAttrMemberID, borrower)
	}
	next.Books[bi].Release()
	if err := s.commit(ctx, next); err != nil {
		return persistFailed(err)
	}

	s.logger.Debug(logMsgBookReturned, logAttrISBN, isbn, logAttrMemberID, borrower, logAttrOverdue, overdue)
	if overdue {
		return types.Result{
			Success: true,
			Message: fmt.Sprintf("Book \"%s\" returned. Note: This book was overdue.", book.Title),
			Overdue: true,
		}
	}
	return types.Result{
		Success: true,
		Message: fmt.Sprintf("Book \"%s\" returned successfully.", book.Title),
	}
}

// memberID formats the n-th member ID.
func memberID(n int) string {
	return fmt.Sprintf("MEM%03d", n)
}

// reject builds a failed Result whose Err wraps kind.
func reject(kind error, format string, args ...any) types.Result {
	msg := fmt.Sprintf(format, args...)
	return types.Result{
		Message: msg,
		Err:     fmt.Errorf("%w: %s", kind, msg),
	}
}

// persistFailed builds the Result for a mutation whose write failed.
func persistFailed(err error) types.Result {
	return types.Result{
		Message: fmt.Sprintf("Could not save library data: %v", err),
		Err:     fmt.Errorf("%w: %w", types.ErrPersistFailed, err),
	}
}
