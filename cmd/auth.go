package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"emsctl/internal/cli"
	"emsctl/internal/formatting"
	"emsctl/internal/session"
)

const authLong = `Manage your emsctl session.

Logging in stores an access token and a refresh token. Expired access
tokens are renewed automatically; when the refresh token is rejected the
session ends and you need to log in again.

Examples:
  emsctl auth login jane@example.com   # Log in and stay logged in
  emsctl auth login jane --session-only  # Forget the session when emsctl exits
  emsctl auth status                   # Show the stored session
  emsctl auth whoami                   # Show your profile
  emsctl auth refresh                  # Renew the access token now
  emsctl auth logout                   # End the session`

// newAuthCmd creates the auth command group.
func newAuthCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Log in, log out and inspect the session",
		Long:  authLong,
	}
	cmd.AddCommand(newAuthLoginCmd(opts))
	cmd.AddCommand(newAuthLogoutCmd(opts))
	cmd.AddCommand(newAuthStatusCmd(opts))
	cmd.AddCommand(newAuthRefreshCmd(opts))
	cmd.AddCommand(newAuthWhoamiCmd(opts))
	cmd.AddCommand(newAuthWatchCmd(opts))
	return cmd
}

func newAuthLogoutCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and forget the stored tokens",
		Args:  cobra.NoArgs,
		RunE: opts.run(func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.client.Logout(cmd.Context()); err != nil {
				return fmt.Errorf("failed to logout: %w", err)
			}
			s.notify("Logged out from %s", s.cfg.Server.BaseURL)
			return nil
		}),
	}
}

// statusView is the structured form of auth status.
type statusView struct {
	Endpoint         string     `json:"endpoint"`
	LoggedIn         bool       `json:"loggedIn"`
	Persistent       bool       `json:"persistent"`
	AccessExpiresAt  *time.Time `json:"accessExpiresAt,omitempty"`
	RefreshExpiresAt *time.Time `json:"refreshExpiresAt,omitempty"`
	AccessExpired    bool       `json:"accessExpired"`
	RefreshExpired   bool       `json:"refreshExpired"`
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func newAuthStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored session without contacting the backend",
		Args:  cobra.NoArgs,
		RunE: opts.run(func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			st, err := s.client.Status(cmd.Context())
			if err != nil {
				return err
			}
			view := statusView{
				Endpoint:         s.cfg.Server.BaseURL,
				LoggedIn:         st.LoggedIn,
				Persistent:       st.Persistent,
				AccessExpiresAt:  optionalTime(st.AccessExpiresAt),
				RefreshExpiresAt: optionalTime(st.RefreshExpiresAt),
				AccessExpired:    st.AccessExpired(),
				RefreshExpired:   st.RefreshExpired(),
			}

			fields := []formatting.Field{
				{Name: "Endpoint", Value: view.Endpoint},
				{Name: "Status", Value: statusText(view)},
			}
			if st.LoggedIn {
				fields = append(fields,
					formatting.Field{Name: "Access token expires", Value: formatTime(st.AccessExpiresAt)},
					formatting.Field{Name: "Refresh token expires", Value: formatTime(st.RefreshExpiresAt)},
				)
			}
			if err := formatting.RenderFields(s.out, fields, view, s.output); err != nil {
				return err
			}
			if view.RefreshExpired && !s.output.Format.Structured() {
				fmt.Fprintln(s.errOut, formatting.Warning(s.output, "The session can no longer be renewed. Run: emsctl auth login"))
			}
			return nil
		}),
	}
}

func statusText(v statusView) string {
	switch {
	case !v.LoggedIn:
		return "Not logged in"
	case v.RefreshExpired:
		return "Expired"
	case v.AccessExpired:
		return "Logged in (access token will be renewed on next use)"
	case v.Persistent:
		return "Logged in"
	default:
		return "Logged in (this process only)"
	}
}

func newAuthRefreshCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Renew the access token now",
		Args:  cobra.NoArgs,
		RunE: opts.run(func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			progress := cli.StartProgress(s.errOut, "Refreshing access token...", s.quiet)
			if _, err := s.client.Refresh(cmd.Context()); err != nil {
				progress.Stop("")
				return err
			}
			progress.Stop("")

			expiry := "unknown"
			if exp := s.client.Binder().Expiry(); !exp.IsZero() {
				expiry = formatTime(exp)
			}
			s.notify("Access token refreshed (expires %s)", expiry)
			return nil
		}),
	}
}

func newAuthWhoamiCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the profile of the logged in user",
		Args:  cobra.NoArgs,
		RunE: opts.run(func(cmd *cobra.Command, args []string) error {
			s, err := opts.openRestored(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			profile := s.client.CurrentProfile()
			if profile == nil {
				return errNotLoggedIn
			}
			return formatting.RenderFields(s.out, profileFields(profile), profile, s.output)
		}),
	}
}

// describeEnd renders a session end event for humans.
func describeEnd(e session.EndEvent) string {
	switch e.Reason {
	case session.ReasonLogout:
		return "Logged out"
	case session.ReasonRefreshFailed:
		return "Session expired: the backend rejected the refresh token"
	case session.ReasonExternal:
		return "Logged out by another emsctl process"
	default:
		return fmt.Sprintf("Session ended (%s)", e.Reason)
	}
}
