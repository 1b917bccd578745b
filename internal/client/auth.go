package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"emsctl/internal/credentials"
	"emsctl/internal/endpoint"
	"emsctl/internal/session"
	"emsctl/internal/transport"
	"emsctl/pkg/token"
)

// Credentials identify a user at login.
type Credentials struct {
	// Identifier is an email address or a username.
	Identifier string
	Password   string
	// SessionOnly keeps the tokens in memory for this process instead of
	// remembering them across restarts.
	SessionOnly bool
}

// SignupRequest registers a new account.
type SignupRequest struct {
	Username string       `json:"username"`
	Email    string       `json:"email"`
	Password string       `json:"password"`
	Role     session.Role `json:"role,omitempty"`
}

// ErrMissingCredentials is returned by Login before any network call when
// the identifier or password is empty.
var ErrMissingCredentials = errors.New("identifier and password are required")

type loginResponse struct {
	credentials.TokenPair
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Login authenticates, stores the issued tokens and loads the profile. The
// session is remembered across restarts unless creds.SessionOnly is set.
func (c *Client) Login(ctx context.Context, creds Credentials) (*session.Profile, error) {
	identifier := strings.TrimSpace(creds.Identifier)
	if identifier == "" || creds.Password == "" {
		return nil, ErrMissingCredentials
	}

	field := "username"
	if strings.Contains(identifier, "@") {
		field = "email"
	}
	body := map[string]string{field: identifier, "password": creds.Password}

	var resp loginResponse
	if err := c.do(ctx, c.plain, http.MethodPost, endpoint.LoginPath, body, &resp); err != nil {
		c.logger.Info("SECURITY_AUDIT: login failed", "event", "login_failed", "error", err.Error())
		return nil, loginError(err)
	}
	if err := resp.Validate(); err != nil {
		return nil, fmt.Errorf("login response: %w", err)
	}
	role, err := session.ParseRole(resp.Role)
	if err != nil {
		return nil, fmt.Errorf("login response: %w", err)
	}

	persistent := !creds.SessionOnly
	if err := c.store.Write(ctx, resp.TokenPair, persistent); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	c.binder.Set(resp.Access)

	profile := session.Profile{ID: resp.ID, Username: resp.Username, Email: resp.Email, Role: role}
	if full, err := c.fetchProfile(ctx); err != nil {
		c.logger.Warn("Could not load full profile after login", "error", err.Error())
	} else {
		profile = *full
	}
	c.session.Set(profile)

	c.logger.Info("SECURITY_AUDIT: login succeeded",
		"event", "login_succeeded",
		"user_id", profile.ID,
		"role", string(profile.Role),
		"persistent", persistent,
	)
	return c.session.Current(), nil
}

// loginError turns a 401 from the login endpoint into an APIError. The
// login call is not an authenticated request, so there is nothing to
// refresh and no AuthFailureError to report.
func loginError(err error) error {
	var authErr *transport.AuthFailureError
	if errors.As(err, &authErr) {
		return &APIError{
			StatusCode: http.StatusUnauthorized,
			Method:     authErr.Method,
			Path:       authErr.Path,
			Detail:     authErr.Detail,
		}
	}
	return err
}

// Signup registers a new account. It does not log in.
func (c *Client) Signup(ctx context.Context, req SignupRequest) error {
	if req.Role != "" && !req.Role.Valid() {
		return fmt.Errorf("invalid role %q", string(req.Role))
	}
	if err := c.do(ctx, c.plain, http.MethodPost, endpoint.SignupPath, req, nil); err != nil {
		return loginError(err)
	}
	c.logger.Info("Account created", "username", req.Username, "role", string(req.Role))
	return nil
}

// Logout discards the session everywhere: stored tokens, the bound access
// token and the profile. Session listeners see session.ReasonLogout.
func (c *Client) Logout(ctx context.Context) error {
	err := c.refresh.Teardown(ctx, session.ReasonLogout)
	c.logger.Info("SECURITY_AUDIT: logged out", "event", "logout")
	return err
}

// CurrentProfile returns the active profile, or nil when logged out.
func (c *Client) CurrentProfile() *session.Profile {
	return c.session.Current()
}

// Restore resumes a remembered session: it binds the stored access token
// and loads the profile. It returns nil, nil when nothing is stored.
//
// An expired access token is refreshed on the way. If the session can no
// longer be refreshed it is torn down and the error is returned.
func (c *Client) Restore(ctx context.Context) (*session.Profile, error) {
	stored, err := c.store.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read stored session: %w", err)
	}
	if stored == nil {
		return nil, nil
	}
	c.binder.Set(stored.Access)

	profile, err := c.RefreshProfile(ctx)
	if err != nil {
		var authErr *transport.AuthFailureError
		if errors.As(err, &authErr) && c.binder.Current() != "" {
			// Refresh succeeded yet the profile is still refused.
			_ = c.refresh.Teardown(ctx, session.ReasonRefreshFailed)
		}
		return nil, err
	}
	return profile, nil
}

// RefreshProfile fetches the profile again and replaces the active one.
func (c *Client) RefreshProfile(ctx context.Context) (*session.Profile, error) {
	profile, err := c.fetchProfile(ctx)
	if err != nil {
		return nil, err
	}
	c.session.Set(*profile)
	return c.session.Current(), nil
}

func (c *Client) fetchProfile(ctx context.Context) (*session.Profile, error) {
	var raw struct {
		session.Profile
		Role string `json:"role"`
	}
	if err := c.do(ctx, c.api, http.MethodGet, endpoint.MyProfilePath, nil, &raw); err != nil {
		return nil, err
	}
	role, err := session.ParseRole(raw.Role)
	if err != nil {
		return nil, fmt.Errorf("profile response: %w", err)
	}
	profile := raw.Profile
	profile.Role = role
	return &profile, nil
}

// Refresh renews the access token now. A rejected refresh token ends the
// session.
func (c *Client) Refresh(ctx context.Context) (string, error) {
	return c.refresh.Refresh(ctx, "")
}

// Status describes the current session without contacting the backend.
type Status struct {
	LoggedIn   bool
	Persistent bool
	// Profile is nil until Login, Restore or RefreshProfile succeeded in
	// this process.
	Profile          *session.Profile
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// AccessExpired reports whether the access token has expired.
func (s Status) AccessExpired() bool {
	return !s.AccessExpiresAt.IsZero() && time.Now().After(s.AccessExpiresAt)
}

// RefreshExpired reports whether the refresh token has expired, after
// which the session cannot be resumed.
func (s Status) RefreshExpired() bool {
	return !s.RefreshExpiresAt.IsZero() && time.Now().After(s.RefreshExpiresAt)
}

// Status reports what is stored and, for JWTs, when the tokens expire.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	stored, err := c.store.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read stored session: %w", err)
	}

	st := &Status{Profile: c.session.Current()}
	if stored == nil {
		return st, nil
	}
	st.LoggedIn = true
	st.Persistent = stored.Persistent
	if exp, err := token.Expiry(stored.Access); err == nil {
		st.AccessExpiresAt = exp
	}
	if exp, err := token.Expiry(stored.Refresh); err == nil {
		st.RefreshExpiresAt = exp
	}
	return st, nil
}
