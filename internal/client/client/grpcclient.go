package client

import (
	"context"
	"fmt"
	"sync"

	pb "github.com/dmitrijs2005/notevault/internal/api"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      *pb.VaultClient

	mu       sync.RWMutex
	email    string
	password string
}

func withCredentials(ctx context.Context, email, password string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(pb.EmailMetadataKey, email)
	md.Set(pb.PasswordMetadataKey, password)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) credentialsInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	s.mu.RLock()
	email, password := s.email, s.password
	s.mu.RUnlock()

	if email != "" {
		ctx = withCredentials(ctx, email, password)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewVaultClient dials endpointURL lazily; extra options are appended to the
// defaults (insecure transport, credentials interceptor).
func NewVaultClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.credentialsInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = pb.NewVaultClient(conn)
	return c, nil
}

// SetCredentials sets the email and password sent with subsequent calls.
func (s *GRPCClient) SetCredentials(email, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.email, s.password = email, password
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	_, err := s.client.Ping(ctx, &pb.Empty{})
	return s.mapError(err)
}

func (s *GRPCClient) Config(ctx context.Context) (*pb.ConfigResponse, error) {
	resp, err := s.client.Config(ctx, &pb.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) Signup(ctx context.Context, email, password string) (*pb.CredentialsResponse, error) {
	resp, err := s.client.Signup(ctx, &pb.SignupRequest{Email: email, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}
	s.SetCredentials(email, password)
	return resp, nil
}

func (s *GRPCClient) Login(ctx context.Context) (*pb.CredentialsResponse, error) {
	resp, err := s.client.Login(ctx, &pb.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) Me(ctx context.Context) (*pb.ProfileResponse, error) {
	resp, err := s.client.Me(ctx, &pb.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

// ChangePassword switches the stored credentials to newPassword on success.
func (s *GRPCClient) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	_, err := s.client.ChangePassword(ctx, &pb.ChangePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword})
	if err != nil {
		return s.mapError(err)
	}
	s.mu.Lock()
	s.password = newPassword
	s.mu.Unlock()
	return nil
}

// ChangeEmail switches the stored credentials to newEmail on success.
func (s *GRPCClient) ChangeEmail(ctx context.Context, newEmail string) error {
	_, err := s.client.ChangeEmail(ctx, &pb.ChangeEmailRequest{Email: newEmail})
	if err != nil {
		return s.mapError(err)
	}
	s.mu.Lock()
	s.email = newEmail
	s.mu.Unlock()
	return nil
}

func (s *GRPCClient) PutData(ctx context.Context, data []byte) error {
	_, err := s.client.PutData(ctx, &pb.PutDataRequest{Data: data})
	return s.mapError(err)
}

func (s *GRPCClient) ClearData(ctx context.Context) error {
	_, err := s.client.ClearData(ctx, &pb.Empty{})
	return s.mapError(err)
}

func (s *GRPCClient) GetData(ctx context.Context, userID string) ([]byte, error) {
	resp, err := s.client.GetData(ctx, &pb.GetDataRequest{UserID: userID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Data, nil
}

func (s *GRPCClient) ListUsers(ctx context.Context) ([]pb.UserSummary, error) {
	resp, err := s.client.ListUsers(ctx, &pb.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Users, nil
}

func (s *GRPCClient) Share(ctx context.Context, fromID, toID string) error {
	_, err := s.client.Share(ctx, &pb.ShareRequest{From: fromID, To: toID})
	return s.mapError(err)
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	var sentinel error
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		sentinel = ErrUnavailable
	case codes.Unauthenticated:
		sentinel = ErrUnauthorized
	case codes.NotFound:
		sentinel = ErrNotFound
	case codes.PermissionDenied:
		sentinel = ErrForbidden
	case codes.AlreadyExists:
		sentinel = ErrEmailTaken
	case codes.InvalidArgument:
		sentinel = ErrInvalidInput
	default:
		return err
	}
	return fmt.Errorf("%w: %s", sentinel, st.Message())
}
