package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/notevault/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var errorCodes = []struct {
	err  error
	code codes.Code
}{
	{common.ErrorInvalidInput, codes.InvalidArgument},
	{common.ErrorSelfGrant, codes.InvalidArgument},
	{common.ErrorEmailTaken, codes.AlreadyExists},
	{common.ErrorUserNotFound, codes.NotFound},
	{common.ErrorNotFound, codes.NotFound},
	{common.ErrorNoPayload, codes.NotFound},
	{common.ErrorBadCredential, codes.Unauthenticated},
	{common.ErrorForbidden, codes.PermissionDenied},
	{common.ErrorStorageUnavailable, codes.Unavailable},
}

// toStatus maps a service error to a gRPC status. Unexpected failures are
// logged and reported as Internal without their details.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}
	for _, m := range errorCodes {
		if errors.Is(err, m.err) {
			if common.IsTransient(err) {
				s.logger.Warn(ctx, "storage unavailable", "error", err)
			}
			return status.Error(m.code, m.err.Error())
		}
	}
	s.logger.Error(ctx, "internal error", "error", err)
	return status.Error(codes.Internal, common.ErrorInternal.Error())
}
