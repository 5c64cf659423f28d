package service

import "errors"

var (
	// ErrUnauthorized means no valid session was presented.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden means the session is valid but lacks privilege.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is an exported error for a missing entity.
	ErrNotFound = errors.New("not found")
	// ErrValidation covers missing or malformed required fields.
	ErrValidation = errors.New("validation failed")
	// ErrUsernameExists is returned on duplicate account creation.
	ErrUsernameExists = errors.New("username already exists")
	// ErrInvalidCredentials is deliberately generic: it never discloses
	// whether the username exists.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTooManyAttempts is returned when the login limiter trips.
	ErrTooManyAttempts = errors.New("too many login attempts")
)
