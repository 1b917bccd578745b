package session

import (
	"log/slog"
	"sync"
	"time"
)

// EndReason says why a session ended.
type EndReason string

const (
	// ReasonLogout is an explicit logout by the user.
	ReasonLogout EndReason = "logout"
	// ReasonRefreshFailed means the refresh token was rejected or the
	// refresh call could not complete.
	ReasonRefreshFailed EndReason = "refresh_failed"
	// ReasonExternal means another process removed the stored session.
	ReasonExternal EndReason = "external"
)

// EndEvent is delivered to OnEnd listeners.
type EndEvent struct {
	Reason EndReason
	// Profile is the profile that was active, or nil if none was set.
	Profile *Profile
	At      time.Time
}

// Context owns the live Profile. It is safe for concurrent use.
type Context struct {
	mu        sync.RWMutex
	profile   *Profile
	listeners map[int]func(EndEvent)
	nextID    int
	logger    *slog.Logger
}

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger used by the Context.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Context) {
		c.logger = logger
	}
}

// NewContext creates a Context with no active profile.
func NewContext(opts ...Option) *Context {
	c := &Context{
		listeners: make(map[int]func(EndEvent)),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Set replaces the active profile.
func (c *Context) Set(p Profile) {
	c.mu.Lock()
	c.profile = &p
	c.mu.Unlock()

	c.logger.Debug("Session profile set", "user_id", p.ID, "role", string(p.Role))
}

// Current returns a copy of the active profile, or nil when there is no
// session.
func (c *Context) Current() *Profile {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.profile == nil {
		return nil
	}
	p := *c.profile
	return &p
}

// Role returns the active role, or "" when there is no session.
func (c *Context) Role() Role {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.profile == nil {
		return ""
	}
	return c.profile.Role
}

// End clears the active profile and notifies every OnEnd listener. Ending
// a context with no profile still notifies listeners, since the stored
// credentials may have been discarded regardless.
func (c *Context) End(reason EndReason) {
	c.mu.Lock()
	ended := c.profile
	c.profile = nil
	listeners := make([]func(EndEvent), 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	c.mu.Unlock()

	c.logger.Info("Session ended", "reason", string(reason), "had_profile", ended != nil)

	event := EndEvent{Reason: reason, Profile: ended, At: time.Now()}
	for _, fn := range listeners {
		fn(event)
	}
}

// OnEnd registers fn to be called after each End. The returned function
// removes the registration.
func (c *Context) OnEnd(fn func(EndEvent)) (cancel func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}
