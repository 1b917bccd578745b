package cmd

import (
	"errors"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"emsctl/internal/cli"
	"emsctl/internal/client"
	"emsctl/internal/endpoint"
	"emsctl/internal/refresh"
	"emsctl/internal/transport"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeAuthRequired indicates the command needs a session and there
	// is none, or the backend no longer accepts it.
	ExitCodeAuthRequired = 2
	// ExitCodeAuthFailed indicates login was rejected or the session could
	// not be refreshed.
	ExitCodeAuthFailed = 3
)

const rootLong = `emsctl is a command line client for the Employee Management System.

It keeps you logged in across invocations, renews expired access tokens
transparently and routes every request to the endpoint your role is
allowed to use: administrators see everyone's attendance and performance
records, employees see their own.`

// rootCmd represents the base command for the emsctl application.
var rootCmd = newRootCmd()

// newRootCmd builds the complete command tree around a fresh set of flags.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "emsctl",
		Short: "Command line client for the Employee Management System",
		Long:  rootLong,
		// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
		SilenceUsage: true,
	}
	cli.RegisterCommonFlags(cmd, &opts.flags)

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newAuthCmd(opts))
	cmd.AddCommand(newSignupCmd(opts))
	cmd.AddCommand(newAttendanceCmd(opts))
	cmd.AddCommand(newPerformanceCmd(opts))
	cmd.AddCommand(newEmployeesCmd(opts))
	cmd.AddCommand(newUsersCmd(opts))
	return cmd
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "emsctl version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}

	var failure *refresh.FailureError
	if errors.As(err, &failure) {
		return ExitCodeAuthFailed
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
		return ExitCodeAuthFailed
	}

	var authErr *transport.AuthFailureError
	if errors.As(err, &authErr) {
		return ExitCodeAuthRequired
	}

	var roleErr *endpoint.InvalidRoleError
	if errors.As(err, &roleErr) {
		return ExitCodeAuthRequired
	}

	if errors.Is(err, refresh.ErrNoSession) {
		return ExitCodeAuthRequired
	}

	return ExitCodeError
}
