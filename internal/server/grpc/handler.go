package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/fortuneseal/internal/common"
	"github.com/dmitrijs2005/fortuneseal/internal/rpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// toStatus maps service errors onto gRPC codes.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorValidation), errors.Is(err, rpc.ErrMalformedMessage):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, common.ErrorStorageDisabled):
		return status.Error(codes.FailedPrecondition, "backups are disabled")
	default:
		s.logger.Error(ctx, err.Error())
		return status.Error(codes.Internal, common.ErrorInternal.Error())
	}
}

func (s *GRPCServer) TemplateCount(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.Int32Value, error) {
	return wrapperspb.Int32(int32(s.catalogue.TemplateCount(req.GetValue()))), nil
}

func (s *GRPCServer) TrackEvent(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	name, data, err := rpc.ParseEvent(req)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	if err := s.analytics.Track(ctx, ClientIDFromContext(ctx), name, data); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) BackupUploadURL(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	key, url, err := s.backups.UploadURL(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "backup upload url issued", "key", key, "client_id", ClientIDFromContext(ctx))
	return rpc.NewUploadTarget(key, url), nil
}

func (s *GRPCServer) BackupDownloadURL(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	url, err := s.backups.DownloadURL(ctx, req.GetValue())
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return wrapperspb.String(url), nil
}
