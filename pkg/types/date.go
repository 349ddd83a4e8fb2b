package types

import "time"

// DateLayout is the wire format of calendar dates in the ledger document.
const DateLayout = "2006-01-02"

// Date is a calendar date in YYYY-MM-DD form. Dates loaded from a blob are
// kept verbatim; well-formed dates order lexically in calendar order.
type Date string

// DateOf returns the UTC calendar date of t.
func DateOf(t time.Time) Date {
	return Date(t.UTC().Format(DateLayout))
}

// AddDays returns the date n calendar days after d. A date that does not
// parse is returned unchanged.
func (d Date) AddDays(n int) Date {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return d
	}
	return Date(t.AddDate(0, 0, n).Format(DateLayout))
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d < other
}

func (d Date) String() string {
	return string(d)
}

// datePtr returns a pointer to a copy of d.
func datePtr(d Date) *Date {
	return &d
}
