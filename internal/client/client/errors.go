package client

import "errors"

var (
	// ErrUnauthorized means the credential is missing, invalid or expired.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound means the table or story does not exist.
	ErrNotFound = errors.New("not found")
	// ErrClosedTable means the operation targeted a closed table.
	ErrClosedTable = errors.New("table closed")
	// ErrUnavailable means the server could not be reached in time.
	ErrUnavailable = errors.New("server unavailable")
	// ErrForbidden means the caller may not act on the target.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidArgument means the server rejected the input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict means the operation conflicts with the current server state.
	ErrConflict = errors.New("conflict")
	// ErrThrottled means too many login attempts were made.
	ErrThrottled = errors.New("too many attempts")
)
