package proto

import (
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorDomain is the ErrorInfo domain of statuses raised by the service.
const ErrorDomain = "planningpoker"

// Reasons carried in ErrorInfo details. The status code stays the coarse
// class; the reason tells apart failures sharing a code.
const (
	ReasonTableClosed = "TABLE_CLOSED"
)

// StatusWithReason returns a status error with code and msg that carries
// reason as an ErrorInfo detail.
func StatusWithReason(code codes.Code, msg, reason string) error {
	st := status.New(code, msg)
	if withInfo, err := st.WithDetails(&errdetails.ErrorInfo{Domain: ErrorDomain, Reason: reason}); err == nil {
		st = withInfo
	}
	return st.Err()
}

// HasReason reports whether err is a status carrying reason in an
// ErrorInfo of ErrorDomain.
func HasReason(err error, reason string) bool {
	st, ok := status.FromError(err)
	if !ok {
		return false
	}
	for _, d := range st.Details() {
		info, ok := d.(*errdetails.ErrorInfo)
		if ok && info.GetDomain() == ErrorDomain && info.GetReason() == reason {
			return true
		}
	}
	return false
}
