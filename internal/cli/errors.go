package cli

import (
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"emsctl/internal/client"
	"emsctl/internal/endpoint"
	"emsctl/internal/refresh"
	"emsctl/internal/transport"
)

// ConnectionErrorType categorizes the type of connection error.
type ConnectionErrorType int

const (
	// ConnectionErrorUnknown indicates an unclassified connection error.
	ConnectionErrorUnknown ConnectionErrorType = iota
	// ConnectionErrorTLS indicates a TLS/certificate verification error.
	ConnectionErrorTLS
	// ConnectionErrorNetwork indicates a network connectivity error (e.g., refused, unreachable).
	ConnectionErrorNetwork
	// ConnectionErrorTimeout indicates a connection timeout.
	ConnectionErrorTimeout
	// ConnectionErrorDNS indicates a DNS resolution failure.
	ConnectionErrorDNS
)

// String returns a human-readable name for the connection error type.
func (t ConnectionErrorType) String() string {
	switch t {
	case ConnectionErrorTLS:
		return "TLS certificate error"
	case ConnectionErrorNetwork:
		return "Network error"
	case ConnectionErrorTimeout:
		return "Connection timeout"
	case ConnectionErrorDNS:
		return "DNS resolution error"
	default:
		return "Connection error"
	}
}

// ClassifyConnectionError returns the kind of connection failure err
// describes.
func ClassifyConnectionError(err error) ConnectionErrorType {
	switch {
	case err == nil:
		return ConnectionErrorUnknown
	case isTLSError(err):
		return ConnectionErrorTLS
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ConnectionErrorDNS
	}
	if isTimeoutError(err) {
		return ConnectionErrorTimeout
	}
	if isNetworkError(err.Error()) {
		return ConnectionErrorNetwork
	}
	return ConnectionErrorUnknown
}

func isTLSError(err error) bool {
	var certErr *x509.CertificateInvalidError
	var hostErr *x509.HostnameError
	var unknownAuthErr *x509.UnknownAuthorityError
	if errors.As(err, &certErr) || errors.As(err, &hostErr) || errors.As(err, &unknownAuthErr) {
		return true
	}

	errStr := err.Error()
	for _, keyword := range []string{"x509:", "certificate", "tls:", "TLS handshake"} {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}
	return false
}

func isTimeoutError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded")
}

func isNetworkError(errStr string) bool {
	for _, keyword := range []string{
		"connection refused",
		"connection reset",
		"network is unreachable",
		"no route to host",
		"dial tcp",
		"connect:",
	} {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}
	return false
}

// HintedError adds recovery guidance to an error while keeping it
// matchable with errors.Is and errors.As.
type HintedError struct {
	Err  error
	Hint string
}

func (e *HintedError) Error() string {
	return fmt.Sprintf("%v\n\n%s", e.Err, e.Hint)
}

func (e *HintedError) Unwrap() error {
	return e.Err
}

const loginHint = `To log in, run:
  emsctl auth login`

// Explain attaches guidance to the errors a user can act on. baseURL is
// the backend the command talked to. Other errors are returned unchanged.
func Explain(err error, baseURL string) error {
	if err == nil {
		return nil
	}

	var (
		authErr    *transport.AuthFailureError
		roleErr    *endpoint.InvalidRoleError
		failureErr *refresh.FailureError
		netErr     *transport.NetworkError
		apiErr     *client.APIError
	)
	switch {
	case errors.As(err, &failureErr):
		return &HintedError{Err: err, Hint: "Your session has ended.\n\n" + loginHint}
	case errors.As(err, &authErr), errors.As(err, &roleErr), errors.Is(err, refresh.ErrNoSession):
		return &HintedError{Err: err, Hint: "You are not logged in.\n\n" + loginHint}
	case errors.Is(err, endpoint.ErrNoSelfServiceRoute):
		return &HintedError{Err: err, Hint: "Only administrators can perform this operation."}
	case errors.As(err, &netErr):
		return &HintedError{Err: err, Hint: connectionHint(ClassifyConnectionError(netErr.Err), baseURL)}
	case errors.As(err, &apiErr):
		switch apiErr.StatusCode {
		case http.StatusUnauthorized:
			return &HintedError{Err: err, Hint: "Check your username or email and password."}
		case http.StatusForbidden:
			if endpoint.Classify(apiErr.Path) == endpoint.FamilyAdmin {
				return &HintedError{Err: err, Hint: "Only administrators can perform this operation."}
			}
			return &HintedError{Err: err, Hint: "Your account is not allowed to perform this operation."}
		}
	}
	return err
}

func connectionHint(t ConnectionErrorType, baseURL string) string {
	switch t {
	case ConnectionErrorTLS:
		return fmt.Sprintf("%s: the server certificate for %s could not be verified.", t, baseURL)
	case ConnectionErrorDNS:
		return fmt.Sprintf("%s: check the host name in %s.", t, baseURL)
	case ConnectionErrorTimeout:
		return fmt.Sprintf("%s: %s did not answer in time.", t, baseURL)
	default:
		return fmt.Sprintf(`%s: is the EMS backend running at %s?

To use another backend, pass --endpoint or set server.baseURL in config.yaml.`, t, baseURL)
	}
}
