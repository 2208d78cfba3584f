package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "voicememo.VoiceMemo"

// Full method names, as seen by interceptors.
const (
	MethodRegister           = "/" + ServiceName + "/Register"
	MethodGetSalt            = "/" + ServiceName + "/GetSalt"
	MethodLogin              = "/" + ServiceName + "/Login"
	MethodPing               = "/" + ServiceName + "/Ping"
	MethodRequestUpload      = "/" + ServiceName + "/RequestUpload"
	MethodTranscribe         = "/" + ServiceName + "/Transcribe"
	MethodListTranscriptions = "/" + ServiceName + "/ListTranscriptions"
)

// VoiceMemoServer is implemented by the server.
type VoiceMemoServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	GetSalt(context.Context, *GetSaltRequest) (*GetSaltResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	RequestUpload(context.Context, *RequestUploadRequest) (*RequestUploadResponse, error)
	Transcribe(context.Context, *TranscribeRequest) (*TranscribeResponse, error)
	ListTranscriptions(context.Context, *ListTranscriptionsRequest) (*ListTranscriptionsResponse, error)
}

// UnimplementedVoiceMemoServer answers every call with codes.Unimplemented.
type UnimplementedVoiceMemoServer struct{}

func (UnimplementedVoiceMemoServer) Register(context.Context, *RegisterRequest) (*RegisterResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedVoiceMemoServer) GetSalt(context.Context, *GetSaltRequest) (*GetSaltResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSalt not implemented")
}
func (UnimplementedVoiceMemoServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedVoiceMemoServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedVoiceMemoServer) RequestUpload(context.Context, *RequestUploadRequest) (*RequestUploadResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RequestUpload not implemented")
}
func (UnimplementedVoiceMemoServer) Transcribe(context.Context, *TranscribeRequest) (*TranscribeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Transcribe not implemented")
}
func (UnimplementedVoiceMemoServer) ListTranscriptions(context.Context, *ListTranscriptionsRequest) (*ListTranscriptionsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListTranscriptions not implemented")
}

func RegisterVoiceMemoServer(s grpc.ServiceRegistrar, srv VoiceMemoServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// unary adapts a typed handler to grpc.MethodDesc.
func unary[Req any, Resp any](method string, call func(VoiceMemoServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	name := method[len("/"+ServiceName+"/"):]
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(VoiceMemoServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(VoiceMemoServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*VoiceMemoServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodRegister, VoiceMemoServer.Register),
		unary(MethodGetSalt, VoiceMemoServer.GetSalt),
		unary(MethodLogin, VoiceMemoServer.Login),
		unary(MethodPing, VoiceMemoServer.Ping),
		unary(MethodRequestUpload, VoiceMemoServer.RequestUpload),
		unary(MethodTranscribe, VoiceMemoServer.Transcribe),
		unary(MethodListTranscriptions, VoiceMemoServer.ListTranscriptions),
	},
	Streams: []grpc.StreamDesc{},
}

// VoiceMemoClient is the client stub.
type VoiceMemoClient interface {
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	GetSalt(ctx context.Context, in *GetSaltRequest, opts ...grpc.CallOption) (*GetSaltResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	RequestUpload(ctx context.Context, in *RequestUploadRequest, opts ...grpc.CallOption) (*RequestUploadResponse, error)
	Transcribe(ctx context.Context, in *TranscribeRequest, opts ...grpc.CallOption) (*TranscribeResponse, error)
	ListTranscriptions(ctx context.Context, in *ListTranscriptionsRequest, opts ...grpc.CallOption) (*ListTranscriptionsResponse, error)
}

type voiceMemoClient struct {
	cc grpc.ClientConnInterface
}

func NewVoiceMemoClient(cc grpc.ClientConnInterface) VoiceMemoClient {
	return &voiceMemoClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *voiceMemoClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, MethodRegister, in, opts)
}

func (c *voiceMemoClient) GetSalt(ctx context.Context, in *GetSaltRequest, opts ...grpc.CallOption) (*GetSaltResponse, error) {
	return invoke[GetSaltResponse](ctx, c.cc, MethodGetSalt, in, opts)
}

func (c *voiceMemoClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *voiceMemoClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *voiceMemoClient) RequestUpload(ctx context.Context, in *RequestUploadRequest, opts ...grpc.CallOption) (*RequestUploadResponse, error) {
	return invoke[RequestUploadResponse](ctx, c.cc, MethodRequestUpload, in, opts)
}

func (c *voiceMemoClient) Transcribe(ctx context.Context, in *TranscribeRequest, opts ...grpc.CallOption) (*TranscribeResponse, error) {
	return invoke[TranscribeResponse](ctx, c.cc, MethodTranscribe, in, opts)
}

func (c *voiceMemoClient) ListTranscriptions(ctx context.Context, in *ListTranscriptionsRequest, opts ...grpc.CallOption) (*ListTranscriptionsResponse, error) {
	return invoke[ListTranscriptionsResponse](ctx, c.cc, MethodListTranscriptions, in, opts)
}
