package token

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

// Challenge is the parsed WWW-Authenticate header of a 401 response.
type Challenge struct {
	// Scheme is the authentication scheme, normally "Bearer".
	Scheme string
	Realm  string
	// Error is the error code, e.g. "invalid_token".
	Error            string
	ErrorDescription string
}

var authParamRegex = regexp.MustCompile(`(\w+)="([^"]*)"`)

// ParseChallenge parses a WWW-Authenticate header value such as
//
//	Bearer realm="api", error="invalid_token", error_description="Token is expired"
func ParseChallenge(header string) (*Challenge, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return nil, fmt.Errorf("empty WWW-Authenticate header")
	}

	parts := strings.SplitN(header, " ", 2)
	c := &Challenge{Scheme: parts[0]}
	if len(parts) == 1 {
		return c, nil
	}

	for _, match := range authParamRegex.FindAllStringSubmatch(parts[1], -1) {
		switch strings.ToLower(match[1]) {
		case "realm":
			c.Realm = match[2]
		case "error":
			c.Error = match[2]
		case "error_description":
			c.ErrorDescription = match[2]
		}
	}
	return c, nil
}

// ChallengeFromResponse extracts the challenge from a 401 response. It
// returns nil for any other status or when the header is missing.
func ChallengeFromResponse(resp *http.Response) *Challenge {
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		return nil
	}
	c, err := ParseChallenge(resp.Header.Get("WWW-Authenticate"))
	if err != nil {
		return nil
	}
	return c
}

// String renders the challenge for log and error messages.
func (c *Challenge) String() string {
	if c == nil {
		return ""
	}
	switch {
	case c.ErrorDescription != "":
		return fmt.Sprintf("%s: %s", c.Error, c.ErrorDescription)
	case c.Error != "":
		return c.Error
	case c.Realm != "":
		return fmt.Sprintf("%s realm=%q", c.Scheme, c.Realm)
	default:
		return c.Scheme
	}
}
