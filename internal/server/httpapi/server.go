// Package httpapi serves the oracle's JSON endpoints and the Prometheus
// scrape target over gin.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/fortuneseal/internal/clock"
	"github.com/dmitrijs2005/fortuneseal/internal/common"
	"github.com/dmitrijs2005/fortuneseal/internal/logging"
	"github.com/dmitrijs2005/fortuneseal/internal/server/metrics"
	"github.com/dmitrijs2005/fortuneseal/internal/server/models"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultShutdownTimeout = 5 * time.Second

// Analytics records client events and reports on stored ones.
type Analytics interface {
	Track(ctx context.Context, clientID, name string, data map[string]any) error
	Summary(ctx context.Context) ([]models.EventCount, error)
	Recent(ctx context.Context, name string, limit int) ([]*models.Event, error)
}

// Catalogue answers template lookups.
type Catalogue interface {
	TemplateCount(period string) int
}

type Options struct {
	Address         string
	AllowedOrigin   string
	ShutdownTimeout time.Duration
}

type Server struct {
	opts      Options
	analytics Analytics
	catalogue Catalogue
	clock     clock.Clock
	logger    logging.Logger
	metrics   *metrics.Metrics
	gatherer  prometheus.Gatherer
	engine    *gin.Engine
}

// NewServer wires the routes. A nil gatherer falls back to the default
// Prometheus registry.
func NewServer(opts Options, l logging.Logger, m *metrics.Metrics, g prometheus.Gatherer, clk clock.Clock, an Analytics, c Catalogue) *Server {
	if m == nil {
		m = metrics.Noop()
	}
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	if clk == nil {
		clk = clock.Real{}
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}

	s := &Server{
		opts:      opts,
		analytics: an,
		catalogue: c,
		clock:     clk,
		logger:    l.With("module", "http_server"),
		metrics:   m,
		gatherer:  g,
	}
	s.engine = s.newEngine()
	return s
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	if s.opts.AllowedOrigin == "" || s.opts.AllowedOrigin == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = []string{s.opts.AllowedOrigin}
	}
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", ClientIDHeader}
	return cfg
}

func (s *Server) newEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(s.requestLogger())
	engine.Use(cors.New(s.corsConfig()))

	api := engine.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.GET("/templates/:period", s.handleTemplates)
		api.POST("/analytics", s.handleTrack)
		api.GET("/analytics/summary", s.handleSummary)
		api.GET("/analytics/recent/:event", s.handleRecent)
	}

	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	return engine
}

// Run listens on the configured address until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}

// Serve handles requests on lis and shuts down within ShutdownTimeout once
// ctx is done.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())
		errCh <- srv.Serve(lis)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrorStorageDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
