package grpc

import (
	"context"

	pb "github.com/dmitrijs2005/notevault/internal/api"
	"github.com/dmitrijs2005/notevault/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Ping(ctx context.Context, _ *pb.Empty) (*pb.PingResponse, error) {
	return &pb.PingResponse{Status: "ok"}, nil
}

func (s *GRPCServer) Config(ctx context.Context, _ *pb.Empty) (*pb.ConfigResponse, error) {
	c := s.dir.ClientConfig()
	return &pb.ConfigResponse{
		TrustchainID:   c.TrustchainID,
		PayloadStore:   c.PayloadStore,
		TokenAlgorithm: c.TokenAlgorithm,
	}, nil
}

func (s *GRPCServer) Signup(ctx context.Context, req *pb.SignupRequest) (*pb.CredentialsResponse, error) {
	creds, err := s.dir.Signup(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	s.logger.Info(ctx, "user signed up", "user_id", creds.ID)
	return credentialsResponse(creds), nil
}

// Login takes the credentials from metadata like every other call but
// returns the stored token instead of running the requested handler.
func (s *GRPCServer) Login(ctx context.Context, _ *pb.Empty) (*pb.CredentialsResponse, error) {
	email, password, ok := credentialsFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing credentials")
	}
	creds, err := s.dir.Login(ctx, email, password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return credentialsResponse(creds), nil
}

func (s *GRPCServer) Me(ctx context.Context, _ *pb.Empty) (*pb.ProfileResponse, error) {
	user, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.dir.GetProfile(ctx, user)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.ProfileResponse{
		ID:          p.ID,
		Email:       p.Email,
		Data:        p.Data,
		GrantedTo:   summaries(p.GrantedTo),
		GrantedFrom: summaries(p.GrantedFrom),
	}, nil
}

func (s *GRPCServer) ChangePassword(ctx context.Context, req *pb.ChangePasswordRequest) (*pb.Empty, error) {
	user, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.dir.ChangePassword(ctx, user, req.OldPassword, req.NewPassword); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.Empty{}, nil
}

func (s *GRPCServer) ChangeEmail(ctx context.Context, req *pb.ChangeEmailRequest) (*pb.Empty, error) {
	user, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.dir.ChangeEmail(ctx, user, req.Email); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.Empty{}, nil
}

func (s *GRPCServer) PutData(ctx context.Context, req *pb.PutDataRequest) (*pb.Empty, error) {
	user, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.dir.ReplacePayload(ctx, user, req.Data); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.Empty{}, nil
}

func (s *GRPCServer) ClearData(ctx context.Context, _ *pb.Empty) (*pb.Empty, error) {
	user, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.dir.ClearPayload(ctx, user); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.Empty{}, nil
}

func (s *GRPCServer) GetData(ctx context.Context, req *pb.GetDataRequest) (*pb.GetDataResponse, error) {
	user, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}
	data, err := s.dir.GetPayload(ctx, user, req.UserID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.GetDataResponse{Data: data}, nil
}

func (s *GRPCServer) ListUsers(ctx context.Context, _ *pb.Empty) (*pb.ListUsersResponse, error) {
	if _, err := userFromContext(ctx); err != nil {
		return nil, err
	}
	users, err := s.dir.ListAll(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.ListUsersResponse{Users: summaries(users)}, nil
}

func (s *GRPCServer) Share(ctx context.Context, req *pb.ShareRequest) (*pb.Empty, error) {
	user, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.dir.GrantAccess(ctx, user, req.From, req.To); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.Empty{}, nil
}

func credentialsResponse(c *models.Credentials) *pb.CredentialsResponse {
	return &pb.CredentialsResponse{ID: c.ID, Token: c.Token}
}

func summaries(in []models.UserSummary) []pb.UserSummary {
	out := make([]pb.UserSummary, 0, len(in))
	for _, u := range in {
		out = append(out, pb.UserSummary{ID: u.ID, Email: u.Email})
	}
	return out
}
