package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/internal/validate"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

func (a *app) newBorrowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "borrow <isbn> <member-id>",
		Short: "Lend a book to a member for 14 days",
		Example: `  shelf borrow 9780134685991 MEM002
  shelf borrow 9780134685991 mem002`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			isbn, err := validate.ISBN(args[0])
			if err != nil {
				return userError("%s", validate.Message(err))
			}
			memberID, err := validate.MemberID(args[1])
			if err != nil {
				return userError("%s", validate.Message(err))
			}
			return a.withLibrary(cmd, func(lib types.Library) error {
				return a.report(cmd, lib.BorrowBook(cmd.Context(), isbn, memberID))
			})
		},
	}
}

func (a *app) newReturnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "return <isbn>",
		Short: "Return a borrowed book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			isbn, err := validate.ISBN(args[0])
			if err != nil {
				return userError("%s", validate.Message(err))
			}
			return a.withLibrary(cmd, func(lib types.Library) error {
				return a.report(cmd, lib.ReturnBook(cmd.Context(), isbn))
			})
		},
	}
}
