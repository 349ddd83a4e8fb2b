package ledger

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// Books returns every catalogued book in insertion order.
func (s *Store) Books() []types.Book {
	return s.filterBooks(func(types.Book) bool { return true })
}

// Members returns every registered member in registration order.
func (s *Store) Members() []types.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Member, len(s.doc.Members))
	for i, m := range s.doc.Members {
		out[i] = m.Clone()
	}
	return out
}

// AvailableBooks returns the books with no current borrower.
func (s *Store) AvailableBooks() []types.Book {
	return s.filterBooks(types.Book.Available)
}

// BorrowedBooks returns the books currently on loan.
func (s *Store) BorrowedBooks() []types.Book {
	return s.filterBooks(func(b types.Book) bool { return !b.Available() })
}

// OverdueBooks returns the books on loan whose due date is before today.
func (s *Store) OverdueBooks() []types.Book {
	today := s.today()
	return s.filterBooks(func(b types.Book) bool { return b.OverdueOn(today) })
}

// SearchBooks returns the books whose title or author contains query,
// ignoring case, or whose ISBN contains query exactly.
func (s *Store) SearchBooks(query string) []types.Book {
	lower := cases.Lower(language.Und)
	q := lower.String(query)
	return s.filterBooks(func(b types.Book) bool {
		return strings.Contains(lower.String(b.Title), q) ||
			strings.Contains(lower.String(b.Author), q) ||
			strings.Contains(b.ISBN, query)
	})
}

// Book returns the book with the given ISBN.
func (s *Store) Book(isbn string) (types.Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.doc.BookIndex(isbn)
	if i < 0 {
		return types.Book{}, false
	}
	return s.doc.Books[i].Clone(), true
}

// Member returns the member with the given ID.
func (s *Store) Member(id string) (types.Member, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.doc.MemberIndex(id)
	if i < 0 {
		return types.Member{}, false
	}
	return s.doc.Members[i].Clone(), true
}

// Statistics counts books by loan status, members, and overdue loans as of
// today.
func (s *Store) Statistics() types.Statistics {
	today := s.today()

	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := types.Statistics{
		TotalBooks:        len(s.doc.Books),
		RegisteredMembers: len(s.doc.Members),
	}
	for _, b := range s.doc.Books {
		if b.Available() {
			stats.AvailableBooks++
			continue
		}
		stats.BorrowedBooks++
		if b.OverdueOn(today) {
			stats.OverdueBooks++
		}
	}
	return stats
}

func (s *Store) filterBooks(keep func(types.Book) bool) []types.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Book, 0, len(s.doc.Books))
	for _, b := range s.doc.Books {
		if keep(b) {
			out = append(out, b.Clone())
		}
	}
	return out
}
