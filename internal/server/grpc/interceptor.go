package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/fortuneseal/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const clientIDKey ctxKey = "clientID"

// ClientIDFromContext returns the install id attached by clientIDInterceptor.
func ClientIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(clientIDKey).(string)
	return id
}

func (s *GRPCServer) clientIDInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.ClientIDHeaderName); len(values) > 0 && values[0] != "" {
			ctx = context.WithValue(ctx, clientIDKey, values[0])
		}
	}
	return handler(ctx, req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	elapsed := time.Since(start)

	code := status.Code(err)
	s.metrics.ObserveRequest("grpc", info.FullMethod, code.String(), elapsed)

	args := []any{"method", info.FullMethod, "code", code.String(), "duration", elapsed}
	if id := ClientIDFromContext(ctx); id != "" {
		args = append(args, "client_id", id)
	}
	if err != nil {
		s.logger.Warn(ctx, "rpc failed", append(args, "error", err)...)
	} else {
		s.logger.Debug(ctx, "rpc served", args...)
	}
	return resp, err
}
