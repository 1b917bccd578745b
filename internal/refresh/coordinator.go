package refresh

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"emsctl/internal/credentials"
	"emsctl/internal/endpoint"
	"emsctl/internal/session"
	"emsctl/internal/transport"
)

// DefaultTimeout bounds one refresh exchange.
const DefaultTimeout = 15 * time.Second

const teardownTimeout = 5 * time.Second

// Coordinator performs token refreshes. It implements transport.Refresher.
type Coordinator struct {
	refreshURL string
	httpClient *http.Client
	store      *credentials.Store
	binder     *transport.Binder
	session    *session.Context
	logger     *slog.Logger
	timeout    time.Duration

	group singleflight.Group
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithHTTPClient sets the client used for the refresh call. It must not be
// wrapped by a transport.Interceptor.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Coordinator) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// WithTimeout bounds each refresh exchange. Zero keeps DefaultTimeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Coordinator) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// NewCoordinator creates a Coordinator refreshing against baseURL.
func NewCoordinator(baseURL string, store *credentials.Store, binder *transport.Binder, sess *session.Context, opts ...Option) (*Coordinator, error) {
	refreshURL, err := endpoint.Join(baseURL, endpoint.TokenRefreshPath)
	if err != nil {
		return nil, err
	}

	c := &Coordinator{
		refreshURL: refreshURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		store:      store,
		binder:     binder,
		session:    sess,
		logger:     slog.Default(),
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// flight is the outcome of one shared exchange. Callers that need a
// terminal refresh tear the session down at most once per failed flight.
type flight struct {
	access   string
	err      error
	teardown sync.Once
}

// Refresh replaces stale, the access token a caller saw rejected, and
// returns the new token. Concurrent calls for the same stale token share
// one exchange. If the stored session already holds a different access
// token, that token is bound and returned without an exchange. An empty
// stale always exchanges.
//
// Any failure other than ErrNoSession ends the session. If ctx ends first,
// Refresh returns ctx.Err() while the shared exchange carries on for the
// remaining callers.
func (c *Coordinator) Refresh(ctx context.Context, stale string) (string, error) {
	f, err := c.join(ctx, stale)
	if err != nil {
		return "", err
	}
	if f.err != nil {
		if !errors.Is(f.err, ErrNoSession) {
			f.teardown.Do(func() { c.fail(ctx, f.err) })
		}
		return "", f.err
	}
	return f.access, nil
}

// TryRefresh is Refresh without the teardown: a failed exchange leaves the
// stored session and the bound token as they are. It serves refreshes
// started while the current token is still accepted.
func (c *Coordinator) TryRefresh(ctx context.Context, stale string) (string, error) {
	f, err := c.join(ctx, stale)
	if err != nil {
		return "", err
	}
	if f.err != nil {
		if !errors.Is(f.err, ErrNoSession) {
			c.logger.Warn("Token refresh failed, keeping the current session", "error", f.err.Error())
		}
		return "", f.err
	}
	return f.access, nil
}

func (c *Coordinator) join(ctx context.Context, stale string) (*flight, error) {
	ch := c.group.DoChan("refresh:"+stale, func() (interface{}, error) {
		access, err := c.refresh(context.WithoutCancel(ctx), stale)
		return &flight{access: access, err: err}, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Shared {
			c.logger.Debug("Joined in-flight token refresh")
		}
		return res.Val.(*flight), nil
	}
}

func (c *Coordinator) refresh(ctx context.Context, stale string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	stored, err := c.store.Read(ctx)
	if err != nil {
		return "", &FailureError{Cause: fmt.Errorf("failed to read stored session: %w", err)}
	}
	if stored == nil || stored.Refresh == "" {
		return "", ErrNoSession
	}
	if stale != "" && stored.Access != stale {
		// An earlier flight already replaced the rejected token.
		c.binder.Set(stored.Access)
		c.logger.Debug("Stored access token already refreshed")
		return stored.Access, nil
	}

	access, err := c.exchange(ctx, stored.Refresh)
	if err != nil {
		return "", err
	}

	pair := credentials.TokenPair{Access: access, Refresh: stored.Refresh}
	if err := c.store.Write(ctx, pair, stored.Persistent); err != nil {
		return "", &FailureError{Cause: fmt.Errorf("failed to store refreshed token: %w", err)}
	}
	c.binder.Set(access)

	c.logger.Info("SECURITY_AUDIT: access token refreshed",
		"event", "token_refreshed",
		"persistent", stored.Persistent,
	)
	return access, nil
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	Access string `json:"access"`
	Detail string `json:"detail"`
}

func (c *Coordinator) exchange(ctx context.Context, refreshToken string) (string, error) {
	body, err := json.Marshal(refreshRequest{Refresh: refreshToken})
	if err != nil {
		return "", &FailureError{Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.refreshURL, bytes.NewReader(body))
	if err != nil {
		return "", &FailureError{Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &FailureError{Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &FailureError{StatusCode: resp.StatusCode, Cause: err}
	}

	var parsed refreshResponse
	_ = json.Unmarshal(data, &parsed)

	if resp.StatusCode != http.StatusOK {
		return "", &FailureError{
			StatusCode: resp.StatusCode,
			Detail:     parsed.Detail,
			Cause:      fmt.Errorf("refresh endpoint returned %s", resp.Status),
		}
	}
	if strings.TrimSpace(parsed.Access) == "" {
		return "", &FailureError{StatusCode: resp.StatusCode, Cause: fmt.Errorf("refresh response has no access token")}
	}
	return parsed.Access, nil
}

func (c *Coordinator) fail(ctx context.Context, err error) {
	c.logger.Warn("SECURITY_AUDIT: token refresh failed",
		"event", "token_refresh_failed",
		"error", err.Error(),
	)
	// The caller's context may already be done.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), teardownTimeout)
	defer cancel()

	if teardownErr := c.Teardown(ctx, session.ReasonRefreshFailed); teardownErr != nil {
		c.logger.Warn("Session teardown incomplete", "error", teardownErr.Error())
	}
}

// Teardown discards the session: stored credentials, bound access token
// and live profile. Listeners on the session context are notified with
// reason. The binder and profile are cleared even if the store fails.
func (c *Coordinator) Teardown(ctx context.Context, reason session.EndReason) error {
	err := c.store.Clear(ctx)
	c.binder.Clear()
	c.session.End(reason)
	return err
}

var _ transport.Refresher = (*Coordinator)(nil)
