// Package rpc declares the fortuneseal.v1.OracleService gRPC contract.
//
// Messages are protobuf well-known types, so the service needs no generated
// code: the descriptor, server interface and client below are what protoc
// would emit for the equivalent .proto file.
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "fortuneseal.v1.OracleService"

const (
	TemplateCountMethod     = "/" + ServiceName + "/TemplateCount"
	TrackEventMethod        = "/" + ServiceName + "/TrackEvent"
	BackupUploadURLMethod   = "/" + ServiceName + "/BackupUploadURL"
	BackupDownloadURLMethod = "/" + ServiceName + "/BackupDownloadURL"
)

// OracleServer is the server API for OracleService.
type OracleServer interface {
	TemplateCount(context.Context, *wrapperspb.StringValue) (*wrapperspb.Int32Value, error)
	TrackEvent(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	BackupUploadURL(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	BackupDownloadURL(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
}

// UnimplementedOracleServer can be embedded to get Unimplemented errors for
// methods a server does not provide.
type UnimplementedOracleServer struct{}

func (UnimplementedOracleServer) TemplateCount(context.Context, *wrapperspb.StringValue) (*wrapperspb.Int32Value, error) {
	return nil, status.Error(codes.Unimplemented, "method TemplateCount not implemented")
}

func (UnimplementedOracleServer) TrackEvent(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method TrackEvent not implemented")
}

func (UnimplementedOracleServer) BackupUploadURL(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method BackupUploadURL not implemented")
}

func (UnimplementedOracleServer) BackupDownloadURL(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method BackupDownloadURL not implemented")
}

func RegisterOracleServer(s grpc.ServiceRegistrar, srv OracleServer) {
	s.RegisterService(&OracleServiceDesc, srv)
}

func templateCountHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OracleServer).TemplateCount(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: TemplateCountMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OracleServer).TemplateCount(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func trackEventHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OracleServer).TrackEvent(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: TrackEventMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OracleServer).TrackEvent(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func backupUploadURLHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OracleServer).BackupUploadURL(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: BackupUploadURLMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OracleServer).BackupUploadURL(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func backupDownloadURLHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OracleServer).BackupDownloadURL(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: BackupDownloadURLMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OracleServer).BackupDownloadURL(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// OracleServiceDesc is the grpc.ServiceDesc for OracleService.
var OracleServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*OracleServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "TemplateCount", Handler: templateCountHandler},
		{MethodName: "TrackEvent", Handler: trackEventHandler},
		{MethodName: "BackupUploadURL", Handler: backupUploadURLHandler},
		{MethodName: "BackupDownloadURL", Handler: backupDownloadURLHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "fortuneseal/v1/oracle.proto",
}

// OracleClient is the client API for OracleService.
type OracleClient interface {
	TemplateCount(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.Int32Value, error)
	TrackEvent(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	BackupUploadURL(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	BackupDownloadURL(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
}

type oracleClient struct {
	cc grpc.ClientConnInterface
}

func NewOracleClient(cc grpc.ClientConnInterface) OracleClient {
	return &oracleClient{cc: cc}
}

func (c *oracleClient) TemplateCount(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.Int32Value, error) {
	out := new(wrapperspb.Int32Value)
	if err := c.cc.Invoke(ctx, TemplateCountMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *oracleClient) TrackEvent(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, TrackEventMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *oracleClient) BackupUploadURL(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, BackupUploadURLMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *oracleClient) BackupDownloadURL(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, BackupDownloadURLMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
