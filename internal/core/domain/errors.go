package domain

import "errors"

// Sentinel errors shared across the auth core. The session manager is the only
// layer that translates store/verifier absence into these; callers match with
// errors.Is.
var (
	// ErrInvalidCredentials covers both an unknown email and a failed
	// password check so a caller cannot probe for account existence.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrDuplicateEmail = errors.New("email already registered")
	ErrUserNotFound   = errors.New("user not found")

	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")

	ErrTimeout = errors.New("storage timeout")
)
