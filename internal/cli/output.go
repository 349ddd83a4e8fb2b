package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const noValue = "-"

// writeJSON prints v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError("marshal JSON: %s", err)
	}
	fmt.Fprintln(w, string(out))
	return nil
}

// writeTable renders rows under header with tabwriter, trimming trailing
// whitespace from each line.
func writeTable(w io.Writer, header []string, rows [][]string) {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()

	for _, line := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}

// report prints the outcome of a ledger mutation. A rejected operation
// becomes a user error; a failed save becomes a system error.
func (a *app) report(cmd *cobra.Command, res types.Result) error {
	if !res.Success {
		if errors.Is(res.Err, types.ErrPersistFailed) {
			return sysError("%s", res.Message)
		}
		return userError("%s", res.Message)
	}
	if a.flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), res)
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Message)
	return nil
}

func bookStatus(b types.Book, today types.Date) string {
	switch {
	case b.Available():
		return "available"
	case b.OverdueOn(today):
		return "overdue"
	default:
		return "borrowed"
	}
}

func dateOrNone(d *types.Date) string {
	if d == nil {
		return noValue
	}
	return d.String()
}

func (a *app) printBooks(cmd *cobra.Command, books []types.Book) error {
	w := cmd.OutOrStdout()
	if a.flags.jsonMode {
		return writeJSON(w, books)
	}
	if len(books) == 0 {
		fmt.Fprintln(w, "No books found.")
		return nil
	}

	today := types.DateOf(a.now())
	rows := make([][]string, 0, len(books))
	for _, b := range books {
		borrower, ok := b.Borrower()
		if !ok {
			borrower = noValue
		}
		rows = append(rows, []string{
			b.ISBN,
			b.Title,
			b.Author,
			fmt.Sprint(b.Year),
			bookStatus(b, today),
			borrower,
			dateOrNone(b.DueDate),
		})
	}
	writeTable(w, []string{"ISBN", "TITLE", "AUTHOR", "YEAR", "STATUS", "BORROWER", "DUE"}, rows)
	fmt.Fprintf(w, "Total: %d book(s)\n", len(books))
	return nil
}

func (a *app) printBook(cmd *cobra.Command, b types.Book) error {
	w := cmd.OutOrStdout()
	if a.flags.jsonMode {
		return writeJSON(w, b)
	}
	borrower, ok := b.Borrower()
	if !ok {
		borrower = noValue
	}
	fmt.Fprintf(w, "ISBN:      %s\n", b.ISBN)
	fmt.Fprintf(w, "Title:     %s\n", b.Title)
	fmt.Fprintf(w, "Author:    %s\n", b.Author)
	fmt.Fprintf(w, "Year:      %d\n", b.Year)
	fmt.Fprintf(w, "Status:    %s\n", bookStatus(b, types.DateOf(a.now())))
	fmt.Fprintf(w, "Borrower:  %s\n", borrower)
	fmt.Fprintf(w, "Borrowed:  %s\n", dateOrNone(b.BorrowDate))
	fmt.Fprintf(w, "Due:       %s\n", dateOrNone(b.DueDate))
	return nil
}

func (a *app) printMembers(cmd *cobra.Command, members []types.Member) error {
	w := cmd.OutOrStdout()
	if a.flags.jsonMode {
		return writeJSON(w, members)
	}
	if len(members) == 0 {
		fmt.Fprintln(w, "No members found.")
		return nil
	}

	rows := make([][]string, 0, len(members))
	for _, m := range members {
		rows = append(rows, []string{
			m.ID,
			m.Name,
			m.Email,
			m.Phone,
			m.RegistrationDate.String(),
			fmt.Sprint(len(m.BorrowedBooks)),
		})
	}
	writeTable(w, []string{"ID", "NAME", "EMAIL", "PHONE", "REGISTERED", "BORROWED"}, rows)
	fmt.Fprintf(w, "Total: %d member(s)\n", len(members))
	return nil
}

// printMember shows a member and the titles of the books they hold.
func (a *app) printMember(cmd *cobra.Command, lib types.Library, m types.Member) error {
	w := cmd.OutOrStdout()
	if a.flags.jsonMode {
		return writeJSON(w, m)
	}
	fmt.Fprintf(w, "ID:          %s\n", m.ID)
	fmt.Fprintf(w, "Name:        %s\n", m.Name)
	fmt.Fprintf(w, "Email:       %s\n", m.Email)
	fmt.Fprintf(w, "Phone:       %s\n", m.Phone)
	fmt.Fprintf(w, "Registered:  %s\n", m.RegistrationDate)
	if len(m.BorrowedBooks) == 0 {
		fmt.Fprintln(w, "Borrowed:    none")
		return nil
	}
	fmt.Fprintln(w, "Borrowed:")
	for _, isbn := range m.BorrowedBooks {
		title := "(unknown)"
		if b, ok := lib.Book(isbn); ok {
			title = b.Title
		}
		fmt.Fprintf(w, "  %s  %s\n", isbn, title)
	}
	return nil
}

func (a *app) printStatistics(cmd *cobra.Command, s types.Statistics) error {
	w := cmd.OutOrStdout()
	if a.flags.jsonMode {
		return writeJSON(w, s)
	}
	fmt.Fprintf(w, "Total books:        %d\n", s.TotalBooks)
	fmt.Fprintf(w, "Available books:    %d\n", s.AvailableBooks)
	fmt.Fprintf(w, "Borrowed books:     %d\n", s.BorrowedBooks)
	fmt.Fprintf(w, "Registered members: %d\n", s.RegisteredMembers)
	fmt.Fprintf(w, "Overdue books:      %d\n", s.OverdueBooks)
	return nil
}
