// Package common defines shared sentinel errors used across the server and
// client layers of DrivenPass. Callers should use errors.Is to match these
// values; the set is closed and layers never branch on message text.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")

	// Service-level errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal error")

	// Auth errors (missing, malformed or unknown session token).
	ErrUnauthenticated = errors.New("unauthenticated")

	// Input errors (schema mismatch, malformed id).
	ErrValidation = errors.New("validation error")

	// Cipher errors (value not produced by the paired encrypt, or wrong key).
	ErrCipher = errors.New("cipher error")
)
