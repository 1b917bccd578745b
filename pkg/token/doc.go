// Package token inspects the bearer tokens issued by the EMS backend.
//
// Access tokens are JWTs signed by the backend. The client cannot verify
// the signature and does not need to: it only reads the claims to show the
// user when a session expires and, optionally, to refresh shortly before
// expiry instead of waiting for a 401. Authorization decisions are always
// made by the backend.
//
// The package also parses WWW-Authenticate challenges returned with 401
// responses so that callers can report why a token was rejected.
package token
