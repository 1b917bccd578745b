package transport

import (
	"fmt"

	"emsctl/pkg/token"
)

// AuthFailureError reports a request the backend rejected with 401 after
// the refresh protocol had its chance.
type AuthFailureError struct {
	Method    string
	Path      string
	RequestID string
	// Challenge is the parsed WWW-Authenticate header, if any.
	Challenge *token.Challenge
	// Detail is the backend's explanation from the response body, if any.
	Detail string
}

func (e *AuthFailureError) Error() string {
	msg := fmt.Sprintf("%s %s: authentication required", e.Method, e.Path)
	switch {
	case e.Detail != "":
		msg += ": " + e.Detail
	case e.Challenge != nil && e.Challenge.Error != "":
		msg += ": " + e.Challenge.String()
	}
	return msg
}

// NetworkError reports a request that never produced an HTTP response.
// It is not retried here; callers apply their own retry policy.
type NetworkError struct {
	Method    string
	Path      string
	RequestID string
	Err       error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
