// Package common defines shared constants and sentinel errors used across
// client and server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")
	ErrorForbidden    = errors.New("forbidden")

	// Table lifecycle errors.
	ErrTableClosed      = errors.New("table closed")
	ErrNotOnTable       = errors.New("developer is not on this table")
	ErrNotEveryoneVoted = errors.New("not everyone voted")
	ErrInvalidVote      = errors.New("vote is not on the deck")
	ErrArchiveDisabled  = errors.New("export archive disabled")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// Throttling.
	ErrTooManyAttempts = errors.New("too many attempts")
)
