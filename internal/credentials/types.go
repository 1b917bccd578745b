package credentials

import (
	"errors"
	"fmt"
)

// SessionKey is the name under which a session is stored in every slot.
const SessionKey = "ems_auth"

// ErrIncompletePair is returned when a pair is missing its access or
// refresh token. Such a pair is never persisted.
var ErrIncompletePair = errors.New("token pair requires both access and refresh tokens")

// TokenPair is an access token together with the refresh token that can
// renew it.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Validate reports whether both halves of the pair are present.
func (p TokenPair) Validate() error {
	if p.Access == "" || p.Refresh == "" {
		return ErrIncompletePair
	}
	return nil
}

// StoredSession is a TokenPair plus the persistence policy that was chosen
// when it was written.
type StoredSession struct {
	TokenPair
	Persistent bool `json:"persistent"`
}

// StoreError describes a failed slot operation.
type StoreError struct {
	// Operation is one of "load", "save" or "delete".
	Operation string
	// Slot names the slot the operation ran against.
	Slot  string
	Cause error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s session in %s slot: %v", e.Operation, e.Slot, e.Cause)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}
