package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/fortuneseal/internal/logging"
	"github.com/dmitrijs2005/fortuneseal/internal/rpc"
	"github.com/dmitrijs2005/fortuneseal/internal/server/metrics"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Analytics records client events.
type Analytics interface {
	Track(ctx context.Context, clientID, name string, data map[string]any) error
}

// Catalogue answers template lookups.
type Catalogue interface {
	TemplateCount(period string) int
}

// Backups issues presigned archive URLs.
type Backups interface {
	UploadURL(ctx context.Context) (key string, url string, err error)
	DownloadURL(ctx context.Context, key string) (string, error)
}

type GRPCServer struct {
	rpc.UnimplementedOracleServer
	address   string
	analytics Analytics
	catalogue Catalogue
	backups   Backups
	logger    logging.Logger
	metrics   *metrics.Metrics
	health    *health.Server
}

func NewGRPCServer(a string, l logging.Logger, m *metrics.Metrics, an Analytics, c Catalogue, b Backups) *GRPCServer {
	if m == nil {
		m = metrics.Noop()
	}
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		metrics:   m,
		analytics: an,
		catalogue: c,
		backups:   b,
		health:    health.NewServer(),
	}
}

// newServer builds the grpc.Server with the oracle and health services.
func (s *GRPCServer) newServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{
		grpc.ChainUnaryInterceptor(s.clientIDInterceptor, s.loggingInterceptor),
	}, opts...)

	srv := grpc.NewServer(opts...)

	rpc.RegisterOracleServer(srv, s)
	healthpb.RegisterHealthServer(srv, s.health)

	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(rpc.ServiceName, healthpb.HealthCheckResponse_SERVING)

	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
// However serving ends, health reports NOT_SERVING once Serve returns.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	served := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "Stopping gRPC server...")
			s.health.Shutdown()
			srv.GracefulStop()
		case <-served:
		}
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	err := srv.Serve(lis)
	close(served)
	<-stopped

	s.health.Shutdown()
	return err
}
