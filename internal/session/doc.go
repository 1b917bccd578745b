// Package session holds the live user profile for the lifetime of the
// process.
//
// A Context is set on login or restore, replaced wholesale when the profile
// is fetched again, and ended on logout or when the session is torn down
// after a failed token refresh. Listeners registered with OnEnd are told
// when a session ends so they can return the user to the unauthenticated
// entry point.
package session
