package refresh

import (
	"errors"
	"fmt"
)

// ErrNoSession is returned when there is no stored refresh token. No
// network call is made and the session is left as it is.
var ErrNoSession = errors.New("no stored session to refresh")

// FailureError reports a failed refresh. By the time it is returned the
// session has been torn down.
type FailureError struct {
	// StatusCode is the refresh endpoint's status, or 0 when no response
	// was received.
	StatusCode int
	// Detail is the backend's explanation, if it gave one.
	Detail string
	Cause  error
}

func (e *FailureError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Detail != "":
		return fmt.Sprintf("token refresh rejected (HTTP %d): %s", e.StatusCode, e.Detail)
	case e.StatusCode != 0:
		return fmt.Sprintf("token refresh rejected (HTTP %d)", e.StatusCode)
	default:
		return fmt.Sprintf("token refresh failed: %v", e.Cause)
	}
}

func (e *FailureError) Unwrap() error {
	return e.Cause
}
