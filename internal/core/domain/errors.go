package domain

import "errors"

var (
	// ErrArtifactLoad is fatal: without the schema and model no prediction
	// can be served.
	ErrArtifactLoad = errors.New("artifact load failed")
	// ErrStoreCorrupt means the user-store document does not round-trip to a
	// valid mapping. It is surfaced, never silently repaired.
	ErrStoreCorrupt = errors.New("user store corrupt")

	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidOTP         = errors.New("invalid otp")
	ErrOTPExpired         = errors.New("otp expired")
	ErrTooManyAttempts    = errors.New("too many failed attempts")
	ErrNoSession          = errors.New("no active login session")
	ErrForbidden          = errors.New("access forbidden")
)
