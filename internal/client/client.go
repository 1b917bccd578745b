package client

import (
	"log/slog"
	"net/http"
	"time"

	"emsctl/internal/credentials"
	"emsctl/internal/endpoint"
	"emsctl/internal/refresh"
	"emsctl/internal/session"
	"emsctl/internal/transport"
)

// DefaultTimeout bounds each backend request, including a replay after a
// refresh.
const DefaultTimeout = 15 * time.Second

// Client is the session-aware EMS API client. It is safe for concurrent use.
type Client struct {
	baseURL string
	store   *credentials.Store
	binder  *transport.Binder
	session *session.Context
	refresh *refresh.Coordinator
	logger  *slog.Logger

	// api carries the interceptor; plain is used for login, signup and
	// anything else that must never trigger a refresh.
	api   *http.Client
	plain *http.Client
}

type options struct {
	logger          *slog.Logger
	base            http.RoundTripper
	timeout         time.Duration
	refreshTimeout  time.Duration
	proactiveMargin time.Duration
	session         *session.Context
}

// Option configures a Client.
type Option func(*options)

// WithLogger sets the logger for the client and every component it builds.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithTransport sets the round tripper that performs network I/O.
func WithTransport(base http.RoundTripper) Option {
	return func(o *options) {
		o.base = base
	}
}

// WithTimeout sets the per-request timeout. Zero keeps the default.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithRefreshTimeout bounds each token refresh exchange. Zero keeps the
// default.
func WithRefreshTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout > 0 {
			o.refreshTimeout = timeout
		}
	}
}

// WithProactiveRefresh refreshes before dispatch when the access token
// expires within margin.
func WithProactiveRefresh(margin time.Duration) Option {
	return func(o *options) {
		o.proactiveMargin = margin
	}
}

// WithSessionContext shares an existing session context, for example one
// that UI code already listens on.
func WithSessionContext(sess *session.Context) Option {
	return func(o *options) {
		o.session = sess
	}
}

// New creates a Client for the backend at baseURL using store for
// credentials. Call Restore to pick up a remembered session.
func New(baseURL string, store *credentials.Store, opts ...Option) (*Client, error) {
	o := options{
		logger:         slog.Default(),
		base:           http.DefaultTransport,
		timeout:        DefaultTimeout,
		refreshTimeout: refresh.DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if _, err := endpoint.Join(baseURL, ""); err != nil {
		return nil, err
	}
	if o.session == nil {
		o.session = session.NewContext(session.WithLogger(o.logger))
	}

	plain := &http.Client{Transport: o.base, Timeout: o.timeout}
	binder := transport.NewBinder()

	coordinator, err := refresh.NewCoordinator(baseURL, store, binder, o.session,
		refresh.WithHTTPClient(plain),
		refresh.WithTimeout(o.refreshTimeout),
		refresh.WithLogger(o.logger),
	)
	if err != nil {
		return nil, err
	}

	interceptor := transport.NewInterceptor(binder, coordinator,
		transport.WithBase(o.base),
		transport.WithLogger(o.logger),
		transport.WithProactiveRefresh(o.proactiveMargin),
	)

	return &Client{
		baseURL: baseURL,
		store:   store,
		binder:  binder,
		session: o.session,
		refresh: coordinator,
		logger:  o.logger,
		api:     &http.Client{Transport: interceptor, Timeout: o.timeout},
		plain:   plain,
	}, nil
}

// Session returns the session context holding the current profile.
func (c *Client) Session() *session.Context { return c.session }

// Binder returns the binder holding the current access token.
func (c *Client) Binder() *transport.Binder { return c.binder }

// Store returns the credential store.
func (c *Client) Store() *credentials.Store { return c.store }

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string { return c.baseURL }
