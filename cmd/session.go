package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"emsctl/internal/cli"
	"emsctl/internal/client"
	"emsctl/internal/config"
	"emsctl/internal/formatting"
	"emsctl/internal/refresh"
	"emsctl/pkg/logging"
)

// errNotLoggedIn is returned by commands that need a remembered session
// when none is stored.
var errNotLoggedIn = fmt.Errorf("not logged in: %w", refresh.ErrNoSession)

// rootOptions carries the global flags to every subcommand.
type rootOptions struct {
	flags cli.CommandFlags
	// baseURL is the backend of the last opened client, for error hints.
	baseURL string
}

// cmdSession is an opened client plus everything a command needs to report
// its result.
type cmdSession struct {
	cfg    config.Config
	client *client.Client
	closer io.Closer
	output formatting.Options
	out    io.Writer
	errOut io.Writer
	quiet  bool
}

func (s *cmdSession) Close() {
	if err := s.closer.Close(); err != nil {
		logging.Error("CLI", err, "Failed to close the session store")
	}
}

// open loads the configuration, sets up logging and builds the client. It
// does not touch the backend.
func (o *rootOptions) open(cmd *cobra.Command) (*cmdSession, error) {
	output, err := o.flags.OutputOptions()
	if err != nil {
		return nil, err
	}

	cfg, err := o.flags.LoadConfig()
	if err != nil {
		return nil, err
	}
	o.baseURL = cfg.Server.BaseURL

	level := logging.ParseLevel(cfg.Logging.Level)
	if level == logging.LevelInfo {
		// Routine client logs would drown command output.
		level = logging.LevelWarn
	}
	logging.Init(level, logging.Format(cfg.Logging.Format), cmd.ErrOrStderr())

	c, closer, err := client.NewFromConfig(cmd.Context(), cfg)
	if err != nil {
		return nil, err
	}

	return &cmdSession{
		cfg:    cfg,
		client: c,
		closer: closer,
		output: output,
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
		quiet:  o.flags.Quiet,
	}, nil
}

// openRestored opens a client and resumes the remembered session, if any.
// Commands still run without one; the client then refuses role-scoped
// requests before they reach the network.
func (o *rootOptions) openRestored(cmd *cobra.Command) (*cmdSession, error) {
	s, err := o.open(cmd)
	if err != nil {
		return nil, err
	}
	if _, err := s.client.Restore(cmd.Context()); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// run wraps a command body with error guidance.
func (o *rootOptions) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return cli.Explain(fn(cmd, args), o.baseURL)
	}
}

// notify prints a confirmation unless --quiet is set or the output is
// structured.
func (s *cmdSession) notify(format string, args ...interface{}) {
	if s.quiet || s.output.Format.Structured() {
		return
	}
	fmt.Fprintln(s.out, formatting.Success(s.output, fmt.Sprintf(format, args...)))
}
