// Package transport attaches the current access token to outgoing backend
// requests and recovers from expired tokens.
//
// Binder holds the one current credential. It is replaced atomically and
// read exactly once per dispatch, so concurrent requests always carry a
// whole token.
//
// Interceptor is an http.RoundTripper. When the backend answers 401 it asks
// a Refresher for a new access token and replays the request exactly once.
// If the refresh fails the original 401 response is handed back to the
// caller. A request whose context has already ended never starts a
// refresh.
//
//	binder := transport.NewBinder()
//	httpClient := &http.Client{
//		Transport: transport.NewInterceptor(binder, coordinator),
//	}
package transport
