package transport

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"emsctl/pkg/token"
)

// Refresher obtains a new access token to replace stale. Implementations
// coalesce concurrent calls and install the new token in the Binder before
// returning it.
type Refresher interface {
	// Refresh is called after stale was rejected. A failure ends the
	// session.
	Refresh(ctx context.Context, stale string) (string, error)
	// TryRefresh is called while stale is still accepted. A failure leaves
	// the session intact.
	TryRefresh(ctx context.Context, stale string) (string, error)
}

// Interceptor is an http.RoundTripper that attaches the Binder's credential
// and runs the refresh-and-replay protocol on 401 responses.
type Interceptor struct {
	base      http.RoundTripper
	binder    *Binder
	refresher Refresher
	logger    *slog.Logger

	// proactiveMargin > 0 refreshes before dispatch when the current token
	// expires within the margin.
	proactiveMargin time.Duration

	observer func(p *PendingRequest)
}

// InterceptorOption configures an Interceptor.
type InterceptorOption func(*Interceptor)

// WithBase sets the transport that performs the actual round trips.
func WithBase(base http.RoundTripper) InterceptorOption {
	return func(i *Interceptor) {
		i.base = base
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) InterceptorOption {
	return func(i *Interceptor) {
		i.logger = logger
	}
}

// WithProactiveRefresh refreshes the access token before sending a request
// when it expires within margin. Zero disables it.
func WithProactiveRefresh(margin time.Duration) InterceptorOption {
	return func(i *Interceptor) {
		i.proactiveMargin = margin
	}
}

// WithObserver registers fn to be called on every state transition.
func WithObserver(fn func(p *PendingRequest)) InterceptorOption {
	return func(i *Interceptor) {
		i.observer = fn
	}
}

// NewInterceptor creates an Interceptor over http.DefaultTransport.
func NewInterceptor(binder *Binder, refresher Refresher, opts ...InterceptorOption) *Interceptor {
	i := &Interceptor{
		base:      http.DefaultTransport,
		binder:    binder,
		refresher: refresher,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// RoundTrip implements http.RoundTripper.
func (i *Interceptor) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	p, err := newPendingRequest(req)
	if err != nil {
		return nil, err
	}

	if i.proactiveMargin > 0 {
		i.refreshIfExpiring(ctx, p)
	}

	r := p.attempt(ctx)
	p.Credential = i.binder.Apply(r)
	i.transition(p, StateSent)

	resp, err := i.base.RoundTrip(r)
	if err != nil {
		return nil, &NetworkError{Method: p.Method(), Path: p.Path(), RequestID: p.ID, Err: err}
	}
	if resp.StatusCode != http.StatusUnauthorized {
		i.transition(p, StateSuccess)
		return resp, nil
	}

	i.transition(p, StateAuthFailure)
	p.Retried = true
	i.transition(p, StateRefreshInFlight)

	// An abandoned request must not start a refresh or touch shared state.
	if err := ctx.Err(); err != nil {
		drain(resp)
		return nil, err
	}

	next := i.binder.Current()
	if next != "" && next != p.Credential {
		// Another request refreshed while this one was in flight.
		i.logger.Debug("Replaying with concurrently refreshed credential", "request_id", p.ID)
	} else {
		next, err = i.refresher.Refresh(ctx, p.Credential)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				drain(resp)
				return nil, ctxErr
			}
			i.transition(p, StateRefreshFailed)
			i.logger.Info("Token refresh failed, returning original response",
				"request_id", p.ID,
				"path", p.Path(),
				"error", err.Error(),
			)
			return resp, nil
		}
	}

	drain(resp)

	r = p.attempt(ctx)
	setBearer(r, next)
	p.Credential = next

	resp, err = i.base.RoundTrip(r)
	if err != nil {
		i.transition(p, StateRetriedFailure)
		return nil, &NetworkError{Method: p.Method(), Path: p.Path(), RequestID: p.ID, Err: err}
	}
	if resp.StatusCode == http.StatusUnauthorized {
		i.transition(p, StateRetriedFailure)
	} else {
		i.transition(p, StateRetriedSuccess)
	}
	return resp, nil
}

func (i *Interceptor) refreshIfExpiring(ctx context.Context, p *PendingRequest) {
	current := i.binder.Current()
	if current == "" {
		return
	}
	claims, err := token.Parse(current)
	if err != nil || !claims.IsExpiringWithin(i.proactiveMargin) {
		return
	}

	i.logger.Debug("Access token expiring, refreshing before dispatch",
		"request_id", p.ID,
		"remaining", claims.Remaining().String(),
	)
	if _, err := i.refresher.TryRefresh(ctx, current); err != nil {
		// The current token is still valid; a later 401 takes the
		// terminal path.
		i.logger.Debug("Proactive refresh failed, sending with current token", "request_id", p.ID, "error", err.Error())
	}
}

func (i *Interceptor) transition(p *PendingRequest, s State) {
	p.State = s
	i.logger.Debug("Request state",
		"request_id", p.ID,
		"method", p.Method(),
		"path", p.Path(),
		"state", s.String(),
		"final", s.Terminal(),
	)
	if i.observer != nil {
		i.observer(p)
	}
}

// drain discards and closes a response body so its connection can be
// reused.
func drain(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}
