package client

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fortuneseal/internal/common"
	"github.com/dmitrijs2005/fortuneseal/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// DefaultCallTimeout bounds every RPC the client makes.
const DefaultCallTimeout = 5 * time.Second

type GRPCClient struct {
	endpointURL string
	clientID    string
	timeout     time.Duration
	conn        *grpc.ClientConn
	oracle      rpc.OracleClient
	health      healthpb.HealthClient
}

func withClientID(ctx context.Context, id string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.ClientIDHeaderName, id)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) clientIDInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if s.clientID != "" {
		ctx = withClientID(ctx, s.clientID)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewGRPCClient creates a lazily connecting client. No network traffic
// happens until the first call.
func NewGRPCClient(endpointURL, clientID string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, clientID: clientID, timeout: DefaultCallTimeout}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.clientIDInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.oracle = rpc.NewOracleClient(conn)
	c.health = healthpb.NewHealthClient(conn)
	return c, nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) call(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Ping asks the standard health service about the oracle service.
func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := s.call(ctx)
	defer cancel()

	resp, err := s.health.Check(ctx, &healthpb.HealthCheckRequest{Service: rpc.ServiceName})
	if err != nil {
		return s.mapError(err)
	}

	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) TemplateCount(ctx context.Context, period string) (int, error) {
	ctx, cancel := s.call(ctx)
	defer cancel()

	resp, err := s.oracle.TemplateCount(ctx, wrapperspb.String(period))
	if err != nil {
		return 0, s.mapError(err)
	}
	return int(resp.GetValue()), nil
}

func (s *GRPCClient) TrackEvent(ctx context.Context, event string, data map[string]any) error {
	req, err := rpc.NewEvent(event, data)
	if err != nil {
		return err
	}

	ctx, cancel := s.call(ctx)
	defer cancel()

	if _, err := s.oracle.TrackEvent(ctx, req); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) BackupUploadURL(ctx context.Context) (string, string, error) {
	ctx, cancel := s.call(ctx)
	defer cancel()

	resp, err := s.oracle.BackupUploadURL(ctx, &emptypb.Empty{})
	if err != nil {
		return "", "", s.mapError(err)
	}
	return rpc.ParseUploadTarget(resp)
}

func (s *GRPCClient) BackupDownloadURL(ctx context.Context, key string) (string, error) {
	ctx, cancel := s.call(ctx)
	defer cancel()

	resp, err := s.oracle.BackupDownloadURL(ctx, wrapperspb.String(key))
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.GetValue(), nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.FailedPrecondition:
		return ErrBackupsDisabled
	case codes.InvalidArgument, codes.NotFound:
		return fmt.Errorf("%w: %s", ErrRejected, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
