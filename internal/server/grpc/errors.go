package grpc

import (
	"errors"

	"github.com/dmitrijs2005/planningpoker/internal/common"
	pb "github.com/dmitrijs2005/planningpoker/internal/proto"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// mapError converts a service error into a gRPC status. Messages of
// internal errors are not leaked to the caller.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, common.ErrTableClosed):
		return pb.StatusWithReason(codes.FailedPrecondition, err.Error(), pb.ReasonTableClosed)
	case errors.Is(err, common.ErrNotEveryoneVoted),
		errors.Is(err, common.ErrArchiveDisabled):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, common.ErrorForbidden),
		errors.Is(err, common.ErrNotOnTable):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, common.ErrorValidation),
		errors.Is(err, common.ErrInvalidVote):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, common.ErrTooManyAttempts):
		return status.Error(codes.ResourceExhausted, err.Error())
	case errors.Is(err, common.ErrRefreshTokenExpired),
		errors.Is(err, common.ErrTokenExpired):
		return status.Error(codes.Unauthenticated, "token expired")
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken):
		return status.Error(codes.Unauthenticated, "unauthorized")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
