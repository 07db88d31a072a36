package grpc

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/dmitrijs2005/petguard/internal/common"
	"github.com/dmitrijs2005/petguard/internal/cryptox"
	"github.com/dmitrijs2005/petguard/internal/logging"
	pb "github.com/dmitrijs2005/petguard/internal/proto"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const principalKey ctxKey = "principal"

type authPolicy int

const (
	public authPolicy = iota
	principalOnly
	serviceOnly
)

var methodPolicies = map[string]authPolicy{
	pb.LedgerService_CreateRecord_FullMethodName:      principalOnly,
	pb.LedgerService_GetOwnerRecordIds_FullMethodName: principalOnly,
	pb.LedgerService_LookupGrant_FullMethodName:       serviceOnly,
}

func principalFromContext(ctx context.Context) (cryptox.Address, bool) {
	p, ok := ctx.Value(principalKey).(cryptox.Address)
	return p, ok
}

func firstMetadata(ctx context.Context, key string) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(key); len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// requestIDInterceptor tags the call with the caller's request id, or a
// fresh one, echoes it in the response header and logs the outcome.
func (s *GRPCServer) requestIDInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	id := firstMetadata(ctx, common.RequestIDHeaderName)
	if id == "" {
		id = uuid.NewString()
	}
	ctx = logging.WithRequestID(ctx, id)
	_ = grpc.SetHeader(ctx, metadata.Pairs(common.RequestIDHeaderName, id))

	start := time.Now()
	resp, err := handler(ctx, req)
	s.logger.Debug(ctx, "rpc", "method", info.FullMethod, "code", status.Code(err).String(), "elapsed", time.Since(start))
	return resp, err
}

func (s *GRPCServer) authInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	switch methodPolicies[info.FullMethod] {
	case principalOnly:
		accessToken := firstMetadata(ctx, common.AccessTokenHeaderName)
		if accessToken == "" {
			return nil, status.Error(codes.Unauthenticated, "missing token")
		}
		principal, err := s.sessions.Authenticate(accessToken)
		if err != nil {
			if errors.Is(err, common.ErrTokenExpired) {
				return nil, status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
			}
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}
		ctx = context.WithValue(ctx, principalKey, principal)

	case serviceOnly:
		token := firstMetadata(ctx, common.ServiceTokenHeaderName)
		if token == "" || subtle.ConstantTimeCompare([]byte(token), s.serviceToken) != 1 {
			s.logger.Warn(ctx, "service call rejected", "method", info.FullMethod)
			return nil, status.Error(codes.PermissionDenied, "service token required")
		}
	}

	return handler(ctx, req)
}
