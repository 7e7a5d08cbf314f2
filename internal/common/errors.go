// Package common defines shared constants and sentinel errors used across
// the notevault server, transport and CLI. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Input validation.
	ErrorInvalidInput = errors.New("invalid input")

	// Identity errors.
	ErrorEmailTaken    = errors.New("email already taken")
	ErrorUserNotFound  = errors.New("user not found")
	ErrorBadCredential = errors.New("bad credential")

	// Sharing errors.
	ErrorSelfGrant = errors.New("cannot grant access to oneself")
	ErrorForbidden = errors.New("forbidden")

	// Repository-level errors.
	ErrorNotFound           = errors.New("not found")
	ErrorNoPayload          = errors.New("no stored data")
	ErrorStorageUnavailable = errors.New("storage unavailable")

	// ErrorHasher marks a failure of the hashing primitive itself, for example
	// a stored digest that cannot be decoded. It is a configuration fault and
	// must never be reported to a caller as a bad credential.
	ErrorHasher = errors.New("credential hasher failure")

	// ErrorInternal is returned to callers in place of unexpected failures.
	ErrorInternal = errors.New("internal error")
)

// IsTransient reports whether err may succeed when retried unmodified.
func IsTransient(err error) bool {
	return errors.Is(err, ErrorStorageUnavailable)
}
