package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// DefaultExpiryMargin accounts for clock skew and network latency when
// checking expiry.
const DefaultExpiryMargin = 30 * time.Second

// ErrNoExpiry is returned by Expiry for tokens without an exp claim.
var ErrNoExpiry = errors.New("token has no expiry claim")

// Claims are the access-token claims the backend sets.
type Claims struct {
	jwt.RegisteredClaims

	// UserID is the backend's numeric user id.
	UserID int `json:"user_id,omitempty"`
	// TokenType is "access" for access tokens and "refresh" for refresh
	// tokens.
	TokenType string `json:"token_type,omitempty"`
}

// Parse decodes the claims of raw without verifying its signature.
func Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("failed to parse token claims: %w", err)
	}
	return claims, nil
}

// Expiry returns the expiry time encoded in raw.
func Expiry(raw string) (time.Time, error) {
	claims, err := Parse(raw)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrNoExpiry
	}
	return claims.ExpiresAt.Time, nil
}

// IsExpired reports whether the token has expired or will expire within
// DefaultExpiryMargin.
func (c *Claims) IsExpired() bool {
	return c.IsExpiringWithin(DefaultExpiryMargin)
}

// IsExpiringWithin reports whether the token expires within margin. Tokens
// without an expiry never expire.
func (c *Claims) IsExpiringWithin(margin time.Duration) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return time.Now().Add(margin).After(c.ExpiresAt.Time)
}

// Remaining returns the time left until expiry, or zero when the token has
// already expired or has no expiry.
func (c *Claims) Remaining() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	if d := time.Until(c.ExpiresAt.Time); d > 0 {
		return d
	}
	return 0
}

// OAuth2 wraps an access token in an oauth2.Token, filling in the expiry
// when the token carries one.
func OAuth2(access string) *oauth2.Token {
	tok := &oauth2.Token{
		AccessToken: access,
		TokenType:   "Bearer",
	}
	if exp, err := Expiry(access); err == nil {
		tok.Expiry = exp
	}
	return tok
}
