// Package validate checks and normalizes user input before it reaches the
// ledger. Every rejection wraps types.ErrValidationFailed and carries the
// message shown to the user.
package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

const minYear = 1000

// Messages shown for rejected input.
const (
	MsgAllFieldsRequired = "All fields are required."
	MsgInvalidYear       = "Invalid year. Please enter a valid year."
	MsgInvalidEmail      = "Invalid email format."
	MsgISBNRequired      = "Please enter an ISBN."
	MsgMemberIDRequired  = "Please enter a member ID."
	MsgQueryRequired     = "Please enter a search term."
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// BookInput is a normalized book submission.
type BookInput struct {
	ISBN   string
	Title  string
	Author string
	Year   int
}

// MemberInput is a normalized member registration.
type MemberInput struct {
	Name  string
	Email string
	Phone string
}

func fail(msg string) error {
	return fmt.Errorf("%w: %s", types.ErrValidationFailed, msg)
}

// Book trims every field, requires all of them, and checks that year is an
// integer between 1000 and the current year.
func Book(isbn, title, author, year string, now time.Time) (BookInput, error) {
	in := BookInput{
		ISBN:   strings.TrimSpace(isbn),
		Title:  strings.TrimSpace(title),
		Author: strings.TrimSpace(author),
	}
	year = strings.TrimSpace(year)
	if in.ISBN == "" || in.Title == "" || in.Author == "" || year == "" {
		return BookInput{}, fail(MsgAllFieldsRequired)
	}

	y, err := strconv.Atoi(year)
	if err != nil || y < minYear || y > now.Year() {
		return BookInput{}, fail(MsgInvalidYear)
	}
	in.Year = y
	return in, nil
}

// Member trims every field, requires all of them, and checks the email shape.
func Member(name, email, phone string) (MemberInput, error) {
	in := MemberInput{
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
		Phone: strings.TrimSpace(phone),
	}
	if in.Name == "" || in.Email == "" || in.Phone == "" {
		return MemberInput{}, fail(MsgAllFieldsRequired)
	}
	if !emailPattern.MatchString(in.Email) {
		return MemberInput{}, fail(MsgInvalidEmail)
	}
	return in, nil
}

// MemberID trims and upper-cases id.
func MemberID(id string) (string, error) {
	id = strings.ToUpper(strings.TrimSpace(id))
	if id == "" {
		return "", fail(MsgMemberIDRequired)
	}
	return id, nil
}

// ISBN trims isbn.
func ISBN(isbn string) (string, error) {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		return "", fail(MsgISBNRequired)
	}
	return isbn, nil
}

// Query trims a search term.
func Query(q string) (string, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", fail(MsgQueryRequired)
	}
	return q, nil
}

// Message returns the user-facing part of a validation error.
func Message(err error) string {
	msg := err.Error()
	prefix := types.ErrValidationFailed.Error() + ": "
	return strings.TrimPrefix(msg, prefix)
}
