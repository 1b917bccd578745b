package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"emsctl/internal/cli"
	"emsctl/internal/client"
	"emsctl/internal/formatting"
)

type loginOptions struct {
	passwordStdin bool
	sessionOnly   bool
}

// newAuthLoginCmd creates the auth login command.
func newAuthLoginCmd(opts *rootOptions) *cobra.Command {
	lo := &loginOptions{}

	cmd := &cobra.Command{
		Use:   "login [USERNAME|EMAIL]",
		Short: "Log in to the EMS backend",
		Long: `Log in with a username or email address and a password.

The session is remembered until you log out or the refresh token expires.
Use --session-only to keep it for this invocation only.

Examples:
  emsctl auth login jane@example.com
  emsctl auth login jane --password-stdin < password.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, args []string) error {
			return runAuthLogin(cmd, args, opts, lo)
		}),
	}
	cmd.Flags().BoolVar(&lo.passwordStdin, "password-stdin", false, "Read the password from standard input")
	cmd.Flags().BoolVar(&lo.sessionOnly, "session-only", false, "Do not remember the session after emsctl exits")
	return cmd
}

func (lo *loginOptions) prompts(cmd *cobra.Command) (identity, password cli.Prompter) {
	identity = cli.TerminalPrompter{}
	password = cli.TerminalPrompter{}
	if lo.passwordStdin {
		password = cli.NewReaderPrompter(cmd.InOrStdin())
	}
	return identity, password
}

func runAuthLogin(cmd *cobra.Command, args []string, opts *rootOptions, lo *loginOptions) error {
	s, err := opts.open(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	identityPrompt, passwordPrompt := lo.prompts(cmd)

	var identifier string
	if len(args) == 1 {
		identifier = args[0]
	} else {
		if lo.passwordStdin {
			return errors.New("a username or email argument is required with --password-stdin")
		}
		if identifier, err = identityPrompt.ReadLine("Username or email: "); err != nil {
			return err
		}
	}

	password, err := passwordPrompt.ReadPassword("Password: ")
	if err != nil {
		return err
	}

	progress := cli.StartProgress(s.errOut, "Logging in...", s.quiet)
	profile, err := s.client.Login(cmd.Context(), client.Credentials{
		Identifier:  identifier,
		Password:    password,
		SessionOnly: lo.sessionOnly,
	})
	progress.Stop("")
	if err != nil {
		return err
	}

	if s.output.Format.Structured() {
		return formatting.RenderFields(s.out, nil, profile, s.output)
	}
	s.notify("Logged in as %s (%s)", profile.DisplayName(), profile.Role)
	return nil
}
