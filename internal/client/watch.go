package client

import (
	"context"
	"errors"

	"emsctl/internal/credentials"
	"emsctl/internal/session"
)

// ErrWatchUnsupported is returned by WatchExternalChanges when the durable
// slot is not a local file.
var ErrWatchUnsupported = errors.New("session watching requires the file session store")

// WatchExternalChanges follows the session file so that a login or logout
// performed by another emsctl process is reflected here. A removed session
// ends the local one with session.ReasonExternal; a replaced session is
// bound and its profile reloaded. It blocks until ctx is done.
func (c *Client) WatchExternalChanges(ctx context.Context) error {
	slot, ok := c.store.Durable().(*credentials.FileSlot)
	if !ok {
		return ErrWatchUnsupported
	}
	return credentials.Watch(ctx, slot, func() { c.syncFromStore(ctx) }, c.logger)
}

func (c *Client) syncFromStore(ctx context.Context) {
	stored, err := c.store.Read(ctx)
	if err != nil {
		c.logger.Warn("Failed to re-read session after external change", "error", err.Error())
		return
	}

	if stored == nil {
		if c.binder.Current() == "" && c.session.Current() == nil {
			return
		}
		c.binder.Clear()
		c.session.End(session.ReasonExternal)
		return
	}

	if stored.Access == c.binder.Current() {
		return
	}
	c.binder.Set(stored.Access)
	if _, err := c.RefreshProfile(ctx); err != nil {
		c.logger.Warn("Failed to load profile after external login", "error", err.Error())
	}
}
