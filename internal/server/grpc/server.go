// Package grpc exposes the user directory over gRPC. Per-call credentials
// travel in metadata and are checked by a unary interceptor.
package grpc

import (
	"context"
	"net"

	pb "github.com/dmitrijs2005/notevault/internal/api"
	"github.com/dmitrijs2005/notevault/internal/logging"
	"github.com/dmitrijs2005/notevault/internal/server/models"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Directory is the service surface the transport drives.
type Directory interface {
	Signup(ctx context.Context, email, password string) (*models.Credentials, error)
	VerifyCredentials(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.Credentials, error)
	ChangePassword(ctx context.Context, user *models.User, oldPassword, newPassword string) error
	ChangeEmail(ctx context.Context, user *models.User, newEmail string) error
	ReplacePayload(ctx context.Context, user *models.User, data []byte) error
	ClearPayload(ctx context.Context, user *models.User) error
	GetPayload(ctx context.Context, actor *models.User, ownerID string) ([]byte, error)
	GrantAccess(ctx context.Context, actor *models.User, fromID, toID string) error
	GetProfile(ctx context.Context, user *models.User) (*models.Profile, error)
	ListAll(ctx context.Context) ([]models.UserSummary, error)
	ClientConfig() models.ClientConfig
}

type GRPCServer struct {
	address string
	dir     Directory
	logger  logging.Logger
}

var _ pb.VaultServer = (*GRPCServer)(nil)

func NewGRPCServer(address string, l logging.Logger, dir Directory) *GRPCServer {
	return &GRPCServer{
		address: address,
		logger:  l.With("module", "grpc_server"),
		dir:     dir,
	}
}

func (s *GRPCServer) newServer() (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.credentialsInterceptor),
	)

	pb.RegisterVaultServer(srv, s)

	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	hs.SetServingStatus(pb.ServiceName, healthpb.HealthCheckResponse_SERVING)

	return srv, hs
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv, hs := s.newServer()

	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "Stopping gRPC server...")
			hs.Shutdown()
			srv.GracefulStop()
		case <-stopped:
		}
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	return srv.Serve(lis)
}
