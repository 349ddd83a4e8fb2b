package types

// Member is a registered library patron. BorrowedBooks holds the ISBNs of
// every book whose BorrowedBy is this member's ID; order is irrelevant.
type Member struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Phone            string   `json:"phone"`
	RegistrationDate Date     `json:"registrationDate"`
	BorrowedBooks    []string `json:"borrowedBooks"`
}

// HasBorrowed reports whether isbn is in the member's borrowed set.
func (m Member) HasBorrowed(isbn string) bool {
	for _, b := range m.BorrowedBooks {
		if b == isbn {
			return true
		}
	}
	return false
}

// Unlend removes every occurrence of isbn from the borrowed set.
func (m *Member) Unlend(isbn string) {
	kept := make([]string, 0, len(m.BorrowedBooks))
	for _, b := range m.BorrowedBooks {
		if b != isbn {
			kept = append(kept, b)
		}
	}
	m.BorrowedBooks = kept
}

// Clone returns a deep copy of m. BorrowedBooks is never nil in the copy.
func (m Member) Clone() Member {
	c := m
	c.BorrowedBooks = append([]string{}, m.BorrowedBooks...)
	return c
}
