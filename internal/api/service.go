package api

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "notevault.v1.Vault"

// Metadata keys carrying per-call credentials.
const (
	EmailMetadataKey    = "email"
	PasswordMetadataKey = "password"
)

// FullMethod returns the "/service/method" path of a Vault method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// VaultServer is implemented by the server side of the Vault service.
type VaultServer interface {
	Ping(context.Context, *Empty) (*PingResponse, error)
	Config(context.Context, *Empty) (*ConfigResponse, error)
	Signup(context.Context, *SignupRequest) (*CredentialsResponse, error)
	Login(context.Context, *Empty) (*CredentialsResponse, error)
	Me(context.Context, *Empty) (*ProfileResponse, error)
	ChangePassword(context.Context, *ChangePasswordRequest) (*Empty, error)
	ChangeEmail(context.Context, *ChangeEmailRequest) (*Empty, error)
	PutData(context.Context, *PutDataRequest) (*Empty, error)
	ClearData(context.Context, *Empty) (*Empty, error)
	GetData(context.Context, *GetDataRequest) (*GetDataResponse, error)
	ListUsers(context.Context, *Empty) (*ListUsersResponse, error)
	Share(context.Context, *ShareRequest) (*Empty, error)
}

func unary[Req, Resp any](name string, call func(VaultServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(VaultServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(VaultServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var VaultServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*VaultServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Ping", VaultServer.Ping),
		unary("Config", VaultServer.Config),
		unary("Signup", VaultServer.Signup),
		unary("Login", VaultServer.Login),
		unary("Me", VaultServer.Me),
		unary("ChangePassword", VaultServer.ChangePassword),
		unary("ChangeEmail", VaultServer.ChangeEmail),
		unary("PutData", VaultServer.PutData),
		unary("ClearData", VaultServer.ClearData),
		unary("GetData", VaultServer.GetData),
		unary("ListUsers", VaultServer.ListUsers),
		unary("Share", VaultServer.Share),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "notevault/v1/vault",
}

func RegisterVaultServer(s grpc.ServiceRegistrar, srv VaultServer) {
	s.RegisterService(&VaultServiceDesc, srv)
}

// VaultClient calls the Vault service with the JSON codec.
type VaultClient struct {
	cc grpc.ClientConnInterface
}

func NewVaultClient(cc grpc.ClientConnInterface) *VaultClient {
	return &VaultClient{cc: cc}
}

func invoke[Req, Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in *Req, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VaultClient) Ping(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[Empty, PingResponse](ctx, c.cc, "Ping", in, opts)
}

func (c *VaultClient) Config(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ConfigResponse, error) {
	return invoke[Empty, ConfigResponse](ctx, c.cc, "Config", in, opts)
}

func (c *VaultClient) Signup(ctx context.Context, in *SignupRequest, opts ...grpc.CallOption) (*CredentialsResponse, error) {
	return invoke[SignupRequest, CredentialsResponse](ctx, c.cc, "Signup", in, opts)
}

func (c *VaultClient) Login(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*CredentialsResponse, error) {
	return invoke[Empty, CredentialsResponse](ctx, c.cc, "Login", in, opts)
}

func (c *VaultClient) Me(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[Empty, ProfileResponse](ctx, c.cc, "Me", in, opts)
}

func (c *VaultClient) ChangePassword(ctx context.Context, in *ChangePasswordRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[ChangePasswordRequest, Empty](ctx, c.cc, "ChangePassword", in, opts)
}

func (c *VaultClient) ChangeEmail(ctx context.Context, in *ChangeEmailRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[ChangeEmailRequest, Empty](ctx, c.cc, "ChangeEmail", in, opts)
}

func (c *VaultClient) PutData(ctx context.Context, in *PutDataRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[PutDataRequest, Empty](ctx, c.cc, "PutData", in, opts)
}

func (c *VaultClient) ClearData(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty, Empty](ctx, c.cc, "ClearData", in, opts)
}

func (c *VaultClient) GetData(ctx context.Context, in *GetDataRequest, opts ...grpc.CallOption) (*GetDataResponse, error) {
	return invoke[GetDataRequest, GetDataResponse](ctx, c.cc, "GetData", in, opts)
}

func (c *VaultClient) ListUsers(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListUsersResponse, error) {
	return invoke[Empty, ListUsersResponse](ctx, c.cc, "ListUsers", in, opts)
}

func (c *VaultClient) Share(ctx context.Context, in *ShareRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[ShareRequest, Empty](ctx, c.cc, "Share", in, opts)
}
