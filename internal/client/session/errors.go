package session

import (
	"errors"

	"github.com/dmitrijs2005/planningpoker/internal/client/client"
)

var (
	// ErrBusy is returned when the same action is already in flight.
	ErrBusy = errors.New("action already in progress")
	// ErrNotAllowed is returned when an action does not apply to the current mode.
	ErrNotAllowed = errors.New("action not available here")
	// ErrInvalidInvite is returned for an invite without a usable table id.
	ErrInvalidInvite = errors.New("invalid invite")
)

// ErrorKind is the user-facing class of a failure.
type ErrorKind int

const (
	// KindTransient covers network and unknown failures; retrying may help.
	KindTransient ErrorKind = iota
	// KindAuth means the credential is invalid or expired.
	KindAuth
	// KindNotFound means the table or story does not exist.
	KindNotFound
	// KindClosedTable means the table is closed; retrying never helps.
	KindClosedTable
	// KindRejected means the server or the session refused the input.
	KindRejected
)

func (k ErrorKind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not-found"
	case KindClosedTable:
		return "closed-table"
	case KindRejected:
		return "rejected"
	default:
		return "transient"
	}
}

// Classify maps err to its kind and the message shown to the user.
func Classify(err error) (ErrorKind, string) {
	switch {
	case err == nil:
		return KindTransient, ""
	case errors.Is(err, client.ErrUnauthorized):
		return KindAuth, "Your session is not valid, please log in again."
	case errors.Is(err, client.ErrNotFound):
		return KindNotFound, "Not found."
	case errors.Is(err, client.ErrClosedTable):
		return KindClosedTable, "This table is closed."
	case errors.Is(err, client.ErrForbidden),
		errors.Is(err, client.ErrInvalidArgument),
		errors.Is(err, client.ErrConflict),
		errors.Is(err, client.ErrThrottled),
		errors.Is(err, ErrBusy),
		errors.Is(err, ErrNotAllowed),
		errors.Is(err, ErrInvalidInvite):
		return KindRejected, capitalize(err.Error()) + "."
	default:
		return KindTransient, "Request failed, please try again."
	}
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
