package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/internal/validate"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

func (a *app) newBookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Manage the book catalogue",
	}
	cmd.AddCommand(a.newBookAddCmd())
	cmd.AddCommand(a.newBookListCmd())
	cmd.AddCommand(a.newBookShowCmd())
	cmd.AddCommand(a.newBookSearchCmd())
	return cmd
}

func (a *app) newBookAddCmd() *cobra.Command {
	var isbn, title, author, year string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book to the catalogue",
		Example: `  shelf book add --isbn 9780262033848 --title "Introduction to Algorithms" \
    --author "Thomas H. Cormen" --year 2009`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := validate.Book(isbn, title, author, year, a.now())
			if err != nil {
				return userError("%s", validate.Message(err))
			}
			return a.withLibrary(cmd, func(lib types.Library) error {
				return a.report(cmd, lib.AddBook(cmd.Context(), in.ISBN, in.Title, in.Author, in.Year))
			})
		},
	}
	cmd.Flags().StringVar(&isbn, "isbn", "", "ISBN of the book")
	cmd.Flags().StringVar(&title, "title", "", "title of the book")
	cmd.Flags().StringVar(&author, "author", "", "author of the book")
	cmd.Flags().StringVar(&year, "year", "", "publication year")
	return cmd
}

func (a *app) newBookListCmd() *cobra.Command {
	var available, borrowed, overdue bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List books",
		Long: `List the catalogue in insertion order.

Use --available, --borrowed or --overdue to filter by loan status.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withLibrary(cmd, func(lib types.Library) error {
				var books []types.Book
				switch {
				case available:
					books = lib.AvailableBooks()
				case borrowed:
					books = lib.BorrowedBooks()
				case overdue:
					books = lib.OverdueBooks()
				default:
					books = lib.Books()
				}
				return a.printBooks(cmd, books)
			})
		},
	}
	cmd.Flags().BoolVar(&available, "available", false, "only books not on loan")
	cmd.Flags().BoolVar(&borrowed, "borrowed", false, "only books on loan")
	cmd.Flags().BoolVar(&overdue, "overdue", false, "only books on loan past their due date")
	cmd.MarkFlagsMutuallyExclusive("available", "borrowed", "overdue")
	return cmd
}

func (a *app) newBookShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <isbn>",
		Short: "Display a book with its loan details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			isbn, err := validate.ISBN(args[0])
			if err != nil {
				return userError("%s", validate.Message(err))
			}
			return a.withLibrary(cmd, func(lib types.Library) error {
				b, ok := lib.Book(isbn)
				if !ok {
					return userError("Book with ISBN %s not found.", isbn)
				}
				return a.printBook(cmd, b)
			})
		},
	}
}

func (a *app) newBookSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search books by title, author or ISBN",
		Long: `Search matches title and author ignoring case, and ISBN exactly as
typed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := validate.Query(args[0])
			if err != nil {
				return userError("%s", validate.Message(err))
			}
			return a.withLibrary(cmd, func(lib types.Library) error {
				return a.printBooks(cmd, lib.SearchBooks(q))
			})
		},
	}
}
