package domain

import "errors"

var (
	// ErrNotFound is returned when the requested resource does not exist.
	// Keeping this sentinel in domain allows adapters to map it consistently to 404/NOT_FOUND.
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidCredentials hides whether email or password failed.
	// The reason is to prevent account-enumeration side channels.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken signals a duplicate registration. It covers both the
	// pre-check and the unique-constraint violation at commit time.
	ErrEmailTaken = errors.New("email already registered")
	// ErrTokenRevoked marks a token that was explicitly invalidated via logout.
	ErrTokenRevoked = errors.New("token revoked")

	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidInput    = errors.New("invalid input")
	ErrWeakPassword    = errors.New("weak password")
	ErrConflict        = errors.New("conflict")
	ErrRateLimited     = errors.New("rate limited")
	ErrInvalidStatus   = errors.New("invalid status transition")
	ErrHasApplications = errors.New("project has applications")
)
