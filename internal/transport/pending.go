package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader carries the id used to correlate log lines for one
// logical request, including its replay.
const RequestIDHeader = "X-Request-ID"

// State is the lifecycle position of a PendingRequest.
type State int

const (
	StateSent State = iota
	StateSuccess
	StateAuthFailure
	StateRefreshInFlight
	StateRetriedSuccess
	StateRetriedFailure
	StateRefreshFailed
)

func (s State) String() string {
	switch s {
	case StateSent:
		return "sent"
	case StateSuccess:
		return "success"
	case StateAuthFailure:
		return "auth_failure"
	case StateRefreshInFlight:
		return "refresh_in_flight"
	case StateRetriedSuccess:
		return "retried_success"
	case StateRetriedFailure:
		return "retried_failure"
	case StateRefreshFailed:
		return "refresh_failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether no further transition can follow s.
func (s State) Terminal() bool {
	switch s {
	case StateSuccess, StateRetriedSuccess, StateRetriedFailure, StateRefreshFailed:
		return true
	}
	return false
}

// PendingRequest is one logical outbound call as it moves through the
// interceptor. Its body is buffered so it can be replayed.
type PendingRequest struct {
	ID string
	// Credential is the access token the latest attempt was sent with.
	Credential string
	// Retried is set once the request has been granted its single replay.
	Retried bool
	State   State

	req  *http.Request
	body []byte
}

func newPendingRequest(req *http.Request) (*PendingRequest, error) {
	p := &PendingRequest{
		ID:  req.Header.Get(RequestIDHeader),
		req: req,
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	if req.Body != nil && req.Body != http.NoBody {
		body, err := io.ReadAll(req.Body)
		_ = req.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to buffer request body: %w", err)
		}
		p.body = body
	}
	return p, nil
}

// attempt builds a fresh copy of the original request for one send.
func (p *PendingRequest) attempt(ctx context.Context) *http.Request {
	r := p.req.Clone(ctx)
	r.Header.Set(RequestIDHeader, p.ID)
	if p.body != nil {
		r.Body = io.NopCloser(bytes.NewReader(p.body))
		r.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(p.body)), nil
		}
		r.ContentLength = int64(len(p.body))
	}
	return r
}

func (p *PendingRequest) Method() string { return p.req.Method }

func (p *PendingRequest) Path() string { return p.req.URL.Path }
