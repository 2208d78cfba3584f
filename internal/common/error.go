// Package common defines shared constants and sentinel errors used across
// the client stores, the client services and the server. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Lookup errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors.
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("already exists")

	// Validation errors.
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidMarker   = errors.New("marker timestamp out of range")
	ErrCycle           = errors.New("folder move would create a cycle")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// External transcription errors.
	ErrTranscriptionFailed = errors.New("transcription failed")
)
