package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"emsctl/internal/session"
)

// newAuthWatchCmd creates the auth watch command.
func newAuthWatchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow logins and logouts made by other emsctl processes",
		Long: `Watch the session file and report when another emsctl process logs in
or out. Runs until interrupted. Requires the file session store.`,
		Args: cobra.NoArgs,
		RunE: opts.run(func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			cmd.SetContext(ctx)

			s, err := opts.openRestored(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if p := s.client.CurrentProfile(); p != nil {
				fmt.Fprintf(s.out, "Logged in as %s (%s)\n", p.DisplayName(), p.Role)
			} else {
				fmt.Fprintln(s.out, "Not logged in")
			}

			cancel := s.client.Session().OnEnd(func(e session.EndEvent) {
				fmt.Fprintln(s.out, describeEnd(e))
			})
			defer cancel()

			return s.client.WatchExternalChanges(ctx)
		}),
	}
}
