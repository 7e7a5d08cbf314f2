package grpc

import (
	"context"
	"time"

	pb "github.com/dmitrijs2005/notevault/internal/api"
	"github.com/dmitrijs2005/notevault/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const userKey ctxKey = "user"

// methods that run without a verified user. Login checks its own
// credentials in the handler.
var publicMethods = map[string]struct{}{
	pb.FullMethod("Ping"):   {},
	pb.FullMethod("Config"): {},
	pb.FullMethod("Signup"): {},
	pb.FullMethod("Login"):  {},
}

func credentialsFromContext(ctx context.Context) (email, password string, ok bool) {
	md, found := metadata.FromIncomingContext(ctx)
	if !found {
		return "", "", false
	}
	if v := md.Get(pb.EmailMetadataKey); len(v) > 0 {
		email = v[0]
	}
	if v := md.Get(pb.PasswordMetadataKey); len(v) > 0 {
		password = v[0]
	}
	return email, password, email != "" && password != ""
}

func userFromContext(ctx context.Context) (*models.User, error) {
	u, ok := ctx.Value(userKey).(*models.User)
	if !ok || u == nil {
		return nil, status.Error(codes.Unauthenticated, "unauthenticated")
	}
	return u, nil
}

// credentialsInterceptor verifies the email/password metadata of every
// non-public call and stores the resolved user in the context.
func (s *GRPCServer) credentialsInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if _, ok := publicMethods[info.FullMethod]; ok {
		return handler(ctx, req)
	}

	email, password, ok := credentialsFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing credentials")
	}

	user, err := s.dir.VerifyCredentials(ctx, email, password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return handler(context.WithValue(ctx, userKey, user), req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.logger.Debug(ctx, "rpc",
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration", time.Since(start))
	return resp, err
}
