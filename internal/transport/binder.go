package transport

import (
	"net/http"
	"sync/atomic"
	"time"

	"golang.org/x/oauth2"

	"emsctl/pkg/token"
)

// Binder owns the access token attached to outgoing requests. A Binder is
// safe for concurrent use; the zero value holds no credential.
type Binder struct {
	current atomic.Pointer[oauth2.Token]
}

// NewBinder creates a Binder with no credential.
func NewBinder() *Binder {
	return &Binder{}
}

// Set replaces the current credential. An empty access token clears it.
func (b *Binder) Set(access string) {
	if access == "" {
		b.current.Store(nil)
		return
	}
	b.current.Store(token.OAuth2(access))
}

// Clear removes the current credential.
func (b *Binder) Clear() {
	b.current.Store(nil)
}

// Current returns the current access token, or "" when there is none.
func (b *Binder) Current() string {
	if tok := b.current.Load(); tok != nil {
		return tok.AccessToken
	}
	return ""
}

// Expiry returns the expiry of the current access token, or the zero time
// when it is unknown.
func (b *Binder) Expiry() time.Time {
	if tok := b.current.Load(); tok != nil {
		return tok.Expiry
	}
	return time.Time{}
}

// Apply sets the Authorization header of req from the current credential,
// or removes it when there is none. It returns the access token it used.
func (b *Binder) Apply(req *http.Request) string {
	tok := b.current.Load()
	if tok == nil {
		req.Header.Del("Authorization")
		return ""
	}
	tok.SetAuthHeader(req)
	return tok.AccessToken
}

func setBearer(req *http.Request, access string) {
	(&oauth2.Token{AccessToken: access, TokenType: "Bearer"}).SetAuthHeader(req)
}
