package ledger

import "github.com/mesh-intelligence/shelf/pkg/types"

// seedDocument returns the sample ledger installed on first startup: three
// books, five members, and one open loan.
func seedDocument() types.Document {
	springInAction := types.Book{
		ISBN:   "9781617294945",
		Title:  "Spring in Action",
		Author: "Craig Walls",
		Year:   2020,
	}
	springInAction.Lend("MEM001", "2025-12-20", "2026-01-03")

	return types.Document{
		Books: []types.Book{
			{
				ISBN:   "9780134685991",
				Title:  "Effective Java",
				Author: "Joshua Bloch",
				Year:   2018,
			},
			springInAction,
			{
				ISBN:   "9781492052205",
				Title:  "Fluent Python",
				Author: "Luciano Ramalho",
				Year:   2021,
			},
		},
		Members: []types.Member{
			{
				ID:               "MEM001",
				Name:             "John Doe",
				Email:            "john.doe@email.com",
				Phone:            "555-0101",
				RegistrationDate: "2025-01-15",
				BorrowedBooks:    []string{"9781617294945"},
			},
			{
				ID:               "MEM002",
				Name:             "Jane Smith",
				Email:            "jane.smith@email.com",
				Phone:            "555-0102",
				RegistrationDate: "2025-02-20",
				BorrowedBooks:    []string{},
			},
			{
				ID:               "MEM003",
				Name:             "Bob Wilson",
				Email:            "bob.wilson@email.com",
				Phone:            "555-0103",
				RegistrationDate: "2025-03-10",
				BorrowedBooks:    []string{},
			},
			{
				ID:               "MEM004",
				Name:             "Alice Brown",
				Email:            "alice.brown@email.com",
				Phone:            "555-0104",
				RegistrationDate: "2025-04-05",
				BorrowedBooks:    []string{},
			},
			{
				ID:               "MEM005",
				Name:             "Charlie Davis",
				Email:            "charlie.davis@email.com",
				Phone:            "555-0105",
				RegistrationDate: "2025-05-12",
				BorrowedBooks:    []string{},
			},
		},
	}
}
