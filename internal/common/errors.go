package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// ErrValidation marks bad input shape (empty title, unknown category).
	// Rejected before any state change.
	ErrValidation = errors.New("validation error")

	// ErrProofRejected marks a ciphertext proof that failed format or binding
	// checks. Creation is aborted with no partial writes.
	ErrProofRejected = errors.New("proof rejected")

	// ErrEncoding is returned by the encryption client when the plaintext is
	// outside the declared numeric domain.
	ErrEncoding = errors.New("encoding error")

	// ErrKeyUnavailable is returned when the encryption capability has not
	// been initialized for the selected network.
	ErrKeyUnavailable = errors.New("key unavailable")

	// ErrDenied is the single, undifferentiated decryption refusal.
	ErrDenied = errors.New("denied")

	// ErrUnavailable marks a transient transport or dependency failure.
	// It is never conflated with ErrDenied.
	ErrUnavailable = errors.New("service unavailable")
)
