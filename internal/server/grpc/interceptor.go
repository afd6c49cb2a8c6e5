package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/planningpoker/internal/common"
	pb "github.com/dmitrijs2005/planningpoker/internal/proto"
	"github.com/dmitrijs2005/planningpoker/internal/server/auth"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const developerIDKey ctxKey = "developerID"

// publicMethods can be called without an access token.
var publicMethods = map[string]bool{
	pb.PlanningPoker_Register_FullMethodName:     true,
	pb.PlanningPoker_Login_FullMethodName:        true,
	pb.PlanningPoker_RefreshToken_FullMethodName: true,
	pb.PlanningPoker_Ping_FullMethodName:         true,
}

// DeveloperIDFromContext returns the caller set by the access token interceptor.
func DeveloperIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(developerIDKey).(int64)
	return id, ok
}

func firstMetadata(ctx context.Context, key string) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(key); len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// loggingInterceptor tags every call with a request id (taken from metadata
// or generated) and logs its outcome.
func (s *GRPCServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	requestID := firstMetadata(ctx, common.RequestIDHeaderName)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	_ = grpc.SetHeader(ctx, metadata.Pairs(common.RequestIDHeaderName, requestID))

	start := time.Now()
	resp, err := handler(ctx, req)

	code := status.Code(err)
	args := []any{"method", info.FullMethod, "request_id", requestID, "code", code.String(), "duration", time.Since(start)}
	switch code {
	case codes.OK:
		s.logger.Debug(ctx, "rpc", args...)
	case codes.Internal, codes.Unknown:
		s.logger.Error(ctx, "rpc", append(args, "err", err)...)
	default:
		s.logger.Info(ctx, "rpc", append(args, "err", err)...)
	}
	return resp, err
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	if publicMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	accessToken := firstMetadata(ctx, common.AccessTokenHeaderName)
	if len(accessToken) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	developerID, err := auth.GetDeveloperIDFromToken(accessToken, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, "token expired")
		}
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}

	ctx = context.WithValue(ctx, developerIDKey, developerID)
	return handler(ctx, req)
}
