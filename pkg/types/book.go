package types

// Book is a catalogue entry keyed by ISBN. BorrowedBy, BorrowDate and DueDate
// are either all set (the book is on loan) or all nil (the book is available).
// Nil fields serialize as null; every key is always present.
type Book struct {
	ISBN       string  `json:"isbn"`
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	Year       int     `json:"year"`
	BorrowedBy *string `json:"borrowedBy"`
	BorrowDate *Date   `json:"borrowDate"`
	DueDate    *Date   `json:"dueDate"`
}

// Borrower returns the ID of the member holding the book. The second result
// is false when the book is available; an empty borrower counts as absent.
func (b Book) Borrower() (string, bool) {
	if b.BorrowedBy == nil || *b.BorrowedBy == "" {
		return "", false
	}
	return *b.BorrowedBy, true
}

// Available reports whether the book has no current borrower.
func (b Book) Available() bool {
	_, borrowed := b.Borrower()
	return !borrowed
}

// OverdueOn reports whether the book is on loan and its due date is strictly
// before today.
func (b Book) OverdueOn(today Date) bool {
	if b.Available() || b.DueDate == nil {
		return false
	}
	return b.DueDate.Before(today)
}

// Lend marks the book as borrowed by memberID from borrowed until due.
func (b *Book) Lend(memberID string, borrowed, due Date) {
	id := memberID
	b.BorrowedBy = &id
	b.BorrowDate = datePtr(borrowed)
	b.DueDate = datePtr(due)
}

// Release clears all loan fields.
func (b *Book) Release() {
	b.BorrowedBy = nil
	b.BorrowDate = nil
	b.DueDate = nil
}

// Clone returns a deep copy of b. The copy shares no pointers with b.
func (b Book) Clone() Book {
	c := b
	if b.BorrowedBy != nil {
		id := *b.BorrowedBy
		c.BorrowedBy = &id
	}
	if b.BorrowDate != nil {
		c.BorrowDate = datePtr(*b.BorrowDate)
	}
	if b.DueDate != nil {
		c.DueDate = datePtr(*b.DueDate)
	}
	return c
}
