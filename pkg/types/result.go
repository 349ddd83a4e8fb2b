package types

// Result is the outcome of a mutating ledger operation. Message is always
// human-readable and names the offending key or entity. On failure Err wraps
// one of the ledger sentinel errors so callers can match it with errors.Is.
type Result struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	MemberID string `json:"memberId,omitempty"` // set by RegisterMember on success
	Overdue  bool   `json:"overdue,omitempty"`  // set by ReturnBook when the loan was late
	Err      error  `json:"-"`
}

// Statistics summarizes the ledger. It is computed fresh on each call.
type Statistics struct {
	TotalBooks        int `json:"totalBooks"`
	AvailableBooks    int `json:"availableBooks"`
	BorrowedBooks     int `json:"borrowedBooks"`
	RegisteredMembers int `json:"registeredMembers"`
	OverdueBooks      int `json:"overdueBooks"`
}
