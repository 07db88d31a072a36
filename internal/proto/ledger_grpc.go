package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "petguard.ledger.v1.Ledger"

// Full method names, used by interceptors to pick the auth policy.
const (
	LedgerService_GetLedgerInfo_FullMethodName     = "/" + ServiceName + "/GetLedgerInfo"
	LedgerService_GetChallenge_FullMethodName      = "/" + ServiceName + "/GetChallenge"
	LedgerService_Login_FullMethodName             = "/" + ServiceName + "/Login"
	LedgerService_RefreshToken_FullMethodName      = "/" + ServiceName + "/RefreshToken"
	LedgerService_CreateRecord_FullMethodName      = "/" + ServiceName + "/CreateRecord"
	LedgerService_GetRecord_FullMethodName         = "/" + ServiceName + "/GetRecord"
	LedgerService_GetOwnerRecordIds_FullMethodName = "/" + ServiceName + "/GetOwnerRecordIds"
	LedgerService_GetTotalRecords_FullMethodName   = "/" + ServiceName + "/GetTotalRecords"
	LedgerService_LookupGrant_FullMethodName       = "/" + ServiceName + "/LookupGrant"
	LedgerService_Ping_FullMethodName              = "/" + ServiceName + "/Ping"
)

// LedgerServiceServer is implemented by the ledger node.
type LedgerServiceServer interface {
	GetLedgerInfo(context.Context, *GetLedgerInfoRequest) (*GetLedgerInfoResponse, error)
	GetChallenge(context.Context, *GetChallengeRequest) (*GetChallengeResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	CreateRecord(context.Context, *CreateRecordRequest) (*CreateRecordResponse, error)
	GetRecord(context.Context, *GetRecordRequest) (*GetRecordResponse, error)
	GetOwnerRecordIds(context.Context, *GetOwnerRecordIdsRequest) (*GetOwnerRecordIdsResponse, error)
	GetTotalRecords(context.Context, *GetTotalRecordsRequest) (*GetTotalRecordsResponse, error)
	LookupGrant(context.Context, *LookupGrantRequest) (*LookupGrantResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

// UnimplementedLedgerServiceServer can be embedded to keep servers
// compiling when methods are added.
type UnimplementedLedgerServiceServer struct{}

func (UnimplementedLedgerServiceServer) GetLedgerInfo(context.Context, *GetLedgerInfoRequest) (*GetLedgerInfoResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetLedgerInfo not implemented")
}
func (UnimplementedLedgerServiceServer) GetChallenge(context.Context, *GetChallengeRequest) (*GetChallengeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetChallenge not implemented")
}
func (UnimplementedLedgerServiceServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedLedgerServiceServer) RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RefreshToken not implemented")
}
func (UnimplementedLedgerServiceServer) CreateRecord(context.Context, *CreateRecordRequest) (*CreateRecordResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateRecord not implemented")
}
func (UnimplementedLedgerServiceServer) GetRecord(context.Context, *GetRecordRequest) (*GetRecordResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetRecord not implemented")
}
func (UnimplementedLedgerServiceServer) GetOwnerRecordIds(context.Context, *GetOwnerRecordIdsRequest) (*GetOwnerRecordIdsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetOwnerRecordIds not implemented")
}
func (UnimplementedLedgerServiceServer) GetTotalRecords(context.Context, *GetTotalRecordsRequest) (*GetTotalRecordsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetTotalRecords not implemented")
}
func (UnimplementedLedgerServiceServer) LookupGrant(context.Context, *LookupGrantRequest) (*LookupGrantResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method LookupGrant not implemented")
}
func (UnimplementedLedgerServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

func RegisterLedgerServiceServer(s grpc.ServiceRegistrar, srv LedgerServiceServer) {
	s.RegisterService(&LedgerService_ServiceDesc, srv)
}

// unaryHandler adapts a typed method to grpc.MethodDesc.Handler.
func unaryHandler[Req any, Resp any](fullMethod string, call func(LedgerServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(LedgerServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(LedgerServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var LedgerService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LedgerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetLedgerInfo", Handler: unaryHandler(LedgerService_GetLedgerInfo_FullMethodName, LedgerServiceServer.GetLedgerInfo)},
		{MethodName: "GetChallenge", Handler: unaryHandler(LedgerService_GetChallenge_FullMethodName, LedgerServiceServer.GetChallenge)},
		{MethodName: "Login", Handler: unaryHandler(LedgerService_Login_FullMethodName, LedgerServiceServer.Login)},
		{MethodName: "RefreshToken", Handler: unaryHandler(LedgerService_RefreshToken_FullMethodName, LedgerServiceServer.RefreshToken)},
		{MethodName: "CreateRecord", Handler: unaryHandler(LedgerService_CreateRecord_FullMethodName, LedgerServiceServer.CreateRecord)},
		{MethodName: "GetRecord", Handler: unaryHandler(LedgerService_GetRecord_FullMethodName, LedgerServiceServer.GetRecord)},
		{MethodName: "GetOwnerRecordIds", Handler: unaryHandler(LedgerService_GetOwnerRecordIds_FullMethodName, LedgerServiceServer.GetOwnerRecordIds)},
		{MethodName: "GetTotalRecords", Handler: unaryHandler(LedgerService_GetTotalRecords_FullMethodName, LedgerServiceServer.GetTotalRecords)},
		{MethodName: "LookupGrant", Handler: unaryHandler(LedgerService_LookupGrant_FullMethodName, LedgerServiceServer.LookupGrant)},
		{MethodName: "Ping", Handler: unaryHandler(LedgerService_Ping_FullMethodName, LedgerServiceServer.Ping)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "petguard/ledger/v1/ledger.proto",
}

// LedgerServiceClient is the typed client for the ledger service.
type LedgerServiceClient interface {
	GetLedgerInfo(ctx context.Context, in *GetLedgerInfoRequest, opts ...grpc.CallOption) (*GetLedgerInfoResponse, error)
	GetChallenge(ctx context.Context, in *GetChallengeRequest, opts ...grpc.CallOption) (*GetChallengeResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error)
	CreateRecord(ctx context.Context, in *CreateRecordRequest, opts ...grpc.CallOption) (*CreateRecordResponse, error)
	GetRecord(ctx context.Context, in *GetRecordRequest, opts ...grpc.CallOption) (*GetRecordResponse, error)
	GetOwnerRecordIds(ctx context.Context, in *GetOwnerRecordIdsRequest, opts ...grpc.CallOption) (*GetOwnerRecordIdsResponse, error)
	GetTotalRecords(ctx context.Context, in *GetTotalRecordsRequest, opts ...grpc.CallOption) (*GetTotalRecordsResponse, error)
	LookupGrant(ctx context.Context, in *LookupGrantRequest, opts ...grpc.CallOption) (*LookupGrantResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
}

type ledgerServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewLedgerServiceClient(cc grpc.ClientConnInterface) LedgerServiceClient {
	return &ledgerServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerServiceClient) GetLedgerInfo(ctx context.Context, in *GetLedgerInfoRequest, opts ...grpc.CallOption) (*GetLedgerInfoResponse, error) {
	return invoke[GetLedgerInfoResponse](ctx, c.cc, LedgerService_GetLedgerInfo_FullMethodName, in, opts)
}

func (c *ledgerServiceClient) GetChallenge(ctx context.Context, in *GetChallengeRequest, opts ...grpc.CallOption) (*GetChallengeResponse, error) {
	return invoke[GetChallengeResponse](ctx, c.cc, LedgerService_GetChallenge_FullMethodName, in, opts)
}

func (c *ledgerServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, LedgerService_Login_FullMethodName, in, opts)
}

func (c *ledgerServiceClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenResponse](ctx, c.cc, LedgerService_RefreshToken_FullMethodName, in, opts)
}

func (c *ledgerServiceClient) CreateRecord(ctx context.Context, in *CreateRecordRequest, opts ...grpc.CallOption) (*CreateRecordResponse, error) {
	return invoke[CreateRecordResponse](ctx, c.cc, LedgerService_CreateRecord_FullMethodName, in, opts)
}

func (c *ledgerServiceClient) GetRecord(ctx context.Context, in *GetRecordRequest, opts ...grpc.CallOption) (*GetRecordResponse, error) {
	return invoke[GetRecordResponse](ctx, c.cc, LedgerService_GetRecord_FullMethodName, in, opts)
}

func (c *ledgerServiceClient) GetOwnerRecordIds(ctx context.Context, in *GetOwnerRecordIdsRequest, opts ...grpc.CallOption) (*GetOwnerRecordIdsResponse, error) {
	return invoke[GetOwnerRecordIdsResponse](ctx, c.cc, LedgerService_GetOwnerRecordIds_FullMethodName, in, opts)
}

func (c *ledgerServiceClient) GetTotalRecords(ctx context.Context, in *GetTotalRecordsRequest, opts ...grpc.CallOption) (*GetTotalRecordsResponse, error) {
	return invoke[GetTotalRecordsResponse](ctx, c.cc, LedgerService_GetTotalRecords_FullMethodName, in, opts)
}

func (c *ledgerServiceClient) LookupGrant(ctx context.Context, in *LookupGrantRequest, opts ...grpc.CallOption) (*LookupGrantResponse, error) {
	return invoke[LookupGrantResponse](ctx, c.cc, LedgerService_LookupGrant_FullMethodName, in, opts)
}

func (c *ledgerServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, LedgerService_Ping_FullMethodName, in, opts)
}
