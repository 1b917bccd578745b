// Package client is the API the rest of emsctl uses to talk to the EMS
// backend.
//
// A Client ties the session layer together: the credentials.Store that
// remembers tokens, the transport.Binder and transport.Interceptor that
// attach and renew them, the refresh.Coordinator that performs renewals and
// the session.Context that holds the current profile.
//
// Resource operations resolve their backend path from the current role, so
// an administrator and an employee calling ListAttendance reach different
// collections. They fail with *endpoint.InvalidRoleError until Login or
// Restore has produced a profile.
//
// Typical use:
//
//	c, err := client.New(cfg.Server.BaseURL, store)
//	if err != nil { ... }
//	if _, err := c.Restore(ctx); err != nil { ... }
//	records, err := c.ListAttendance(ctx)
package client
