package cmd

import (
	"github.com/spf13/cobra"

	"emsctl/internal/cli"
	"emsctl/internal/client"
	"emsctl/internal/session"
)

type signupOptions struct {
	username      string
	email         string
	role          string
	passwordStdin bool
}

// newSignupCmd creates the signup command.
func newSignupCmd(opts *rootOptions) *cobra.Command {
	so := &signupOptions{}

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Long: `Create an account on the EMS backend. Signing up does not log you in.

Examples:
  emsctl signup --username jane --email jane@example.com
  emsctl signup --username boss --email boss@example.com --role admin`,
		Args: cobra.NoArgs,
		RunE: opts.run(func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			req := client.SignupRequest{Username: so.username, Email: so.email}
			if so.role != "" {
				role, err := session.ParseRole(so.role)
				if err != nil {
					return err
				}
				req.Role = role
			}

			var prompter cli.Prompter = cli.TerminalPrompter{}
			if so.passwordStdin {
				prompter = cli.NewReaderPrompter(cmd.InOrStdin())
			}
			if req.Password, err = prompter.ReadPassword("Password: "); err != nil {
				return err
			}

			if err := s.client.Signup(cmd.Context(), req); err != nil {
				return err
			}
			s.notify("Account %s created. Log in with: emsctl auth login %s", req.Username, req.Username)
			return nil
		}),
	}
	cmd.Flags().StringVar(&so.username, "username", "", "Account username")
	cmd.Flags().StringVar(&so.email, "email", "", "Account email address")
	cmd.Flags().StringVar(&so.role, "role", "", "Account role (employee, admin or superuser)")
	cmd.Flags().BoolVar(&so.passwordStdin, "password-stdin", false, "Read the password from standard input")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
