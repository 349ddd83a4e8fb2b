package types

// Document is the full ledger state: the ordered book catalogue and the
// ordered member roster. It is the unit of persistence; every mutation
// rewrites the whole document.
type Document struct {
	Books   []Book   `json:"books"`
	Members []Member `json:"members"`
}

// Clone returns a deep copy of d. Both slices are non-nil in the copy so the
// serialized form always carries arrays.
func (d Document) Clone() Document {
	c := Document{
		Books:   make([]Book, len(d.Books)),
		Members: make([]Member, len(d.Members)),
	}
	for i, b := range d.Books {
		c.Books[i] = b.Clone()
	}
	for i, m := range d.Members {
		c.Members[i] = m.Clone()
	}
	return c
}

// BookIndex returns the position of the book with the given ISBN, or -1.
func (d Document) BookIndex(isbn string) int {
	for i, b := range d.Books {
		if b.ISBN == isbn {
			return i
		}
	}
	return -1
}

// MemberIndex returns the position of the member with the given ID, or -1.
func (d Document) MemberIndex(id string) int {
	for i, m := range d.Members {
		if m.ID == id {
			return i
		}
	}
	return -1
}
