package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// APIError is a non-2xx response other than 401.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	// Detail is the backend's message, when it sent one.
	Detail string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s %s: HTTP %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// IsNotFound reports whether the backend answered 404.
func (e *APIError) IsNotFound() bool { return e.StatusCode == http.StatusNotFound }

// IsForbidden reports whether the backend answered 403.
func (e *APIError) IsForbidden() bool { return e.StatusCode == http.StatusForbidden }

// backendDetail extracts a human-readable message from an error body. The
// backend uses {"detail": ...} and {"error": ...} objects, field error maps
// such as {"email": ["..."]} and bare lists of messages.
func backendDetail(body []byte) string {
	body = []byte(strings.TrimSpace(string(body)))
	if len(body) == 0 {
		return ""
	}

	var obj map[string]interface{}
	if err := json.Unmarshal(body, &obj); err == nil {
		for _, key := range []string{"detail", "error", "message"} {
			if s, ok := obj[key].(string); ok && s != "" {
				return s
			}
		}

		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var parts []string
		for _, k := range keys {
			if msg := joinMessages(obj[k]); msg != "" {
				parts = append(parts, k+": "+msg)
			}
		}
		return strings.Join(parts, "; ")
	}

	var list []interface{}
	if err := json.Unmarshal(body, &list); err == nil {
		return joinMessages(list)
	}
	return ""
}

func joinMessages(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case []interface{}:
		var msgs []string
		for _, item := range t {
			if s, ok := item.(string); ok {
				msgs = append(msgs, s)
			}
		}
		return strings.Join(msgs, ", ")
	default:
		return ""
	}
}
