// Package refresh renews the access token with the stored refresh token
// and tears the session down when that is no longer possible.
//
// Concurrent callers share one in-flight exchange: however many requests
// hit an expired token at the same moment, the backend sees a single
// refresh call and every caller observes its outcome. The exchange runs on
// a context detached from the caller that started it, so one caller giving
// up does not fail the refresh for the others.
//
// A failed Refresh is terminal. The stored credentials, the bound access
// token and the live profile are all discarded, and session listeners are
// told the session ended with session.ReasonRefreshFailed. TryRefresh, used
// to renew a token before it expires, leaves the session alone on failure.
package refresh
