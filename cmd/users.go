package cmd

import (
	"github.com/spf13/cobra"

	"emsctl/internal/formatting"
)

// newUsersCmd creates the users command group.
func newUsersCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List accounts (administrators only)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		Args:  cobra.NoArgs,
		RunE: opts.run(func(cmd *cobra.Command, args []string) error {
			s, err := opts.openRestored(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			users, err := s.client.ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			return formatting.RenderTable(s.out, userTable(users), s.output)
		}),
	})

	return cmd
}
