package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/internal/validate"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

func (a *app) newMemberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage library members",
	}
	cmd.AddCommand(a.newMemberRegisterCmd())
	cmd.AddCommand(a.newMemberListCmd())
	cmd.AddCommand(a.newMemberShowCmd())
	return cmd
}

func (a *app) newMemberRegisterCmd() *cobra.Command {
	var name, email, phone string

	cmd := &cobra.Command{
		Use:     "register",
		Short:   "Register a new member",
		Example: `  shelf member register --name "Ada Lovelace" --email ada@example.com --phone 555-0199`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := validate.Member(name, email, phone)
			if err != nil {
				return userError("%s", validate.Message(err))
			}
			return a.withLibrary(cmd, func(lib types.Library) error {
				return a.report(cmd, lib.RegisterMember(cmd.Context(), in.Name, in.Email, in.Phone))
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "email address (must be unique)")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	return cmd
}

func (a *app) newMemberListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List members in registration order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withLibrary(cmd, func(lib types.Library) error {
				return a.printMembers(cmd, lib.Members())
			})
		},
	}
}

func (a *app) newMemberShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <member-id>",
		Short: "Display a member and the books they hold",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := validate.MemberID(args[0])
			if err != nil {
				return userError("%s", validate.Message(err))
			}
			return a.withLibrary(cmd, func(lib types.Library) error {
				m, ok := lib.Member(id)
				if !ok {
					return userError("Member with ID %s not found.", id)
				}
				return a.printMember(cmd, lib, m)
			})
		},
	}
}
