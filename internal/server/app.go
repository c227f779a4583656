// Package server assembles the oracle server: storage, services, and the
// gRPC and HTTP transports that run side by side until shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/fortuneseal/internal/clock"
	"github.com/dmitrijs2005/fortuneseal/internal/logging"
	"github.com/dmitrijs2005/fortuneseal/internal/server/config"
	"github.com/dmitrijs2005/fortuneseal/internal/server/httpapi"
	"github.com/dmitrijs2005/fortuneseal/internal/server/metrics"
	"github.com/dmitrijs2005/fortuneseal/internal/server/repositories/events"
	"github.com/dmitrijs2005/fortuneseal/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/fortuneseal/internal/server/services"
	"github.com/dmitrijs2005/fortuneseal/internal/templates"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/fortuneseal/internal/server/grpc"
)

var (
	logOutput    io.Writer = os.Stdout
	openPostgres           = repomanager.OpenPostgres
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	grpcServer *gs.GRPCServer
	httpServer *httpapi.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(logOutput, "json", c.LogLevel)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(reg)
	if err != nil {
		return nil, fmt.Errorf("metrics init error: %w", err)
	}

	app := &App{config: c, logger: logger}

	var repo events.Repository
	if c.DatabaseDSN != "" {
		rm := repomanager.NewPostgresRepositoryManager()
		db, err := openPostgres(ctx, c.DatabaseDSN, rm)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		app.db = db
		repo = rm.Events(db)
	} else {
		logger.Warn(ctx, "no database DSN configured, analytics events are only logged")
	}

	if !c.BackupsEnabled() {
		logger.Warn(ctx, "no S3 bucket configured, remote backups are disabled")
	}

	clk := clock.Real{}
	analytics := services.NewAnalyticsService(repo, logger, m)
	catalogue := services.NewCatalogueService(templates.Default())
	backups := services.NewBackupService(c, clk, m)

	app.grpcServer = gs.NewGRPCServer(c.EndpointAddrGRPC, logger, m, analytics, catalogue, backups)
	app.httpServer = httpapi.NewServer(httpapi.Options{
		Address:         c.EndpointAddrHTTP,
		AllowedOrigin:   c.AllowedOrigin,
		ShutdownTimeout: c.ShutdownTimeout,
	}, logger, m, reg, clk, analytics, catalogue)

	return app, nil
}

// Run serves both transports until ctx is done, a termination signal
// arrives or either server fails.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.grpcServer.Run(ctx)
	})
	g.Go(func() error {
		return app.httpServer.Run(ctx)
	})

	err := g.Wait()
	if cerr := app.Close(); cerr != nil && err == nil {
		err = cerr
	}

	app.logger.Info(context.Background(), "App stopped")
	return err
}

func (app *App) Close() error {
	if app.db == nil {
		return nil
	}
	err := app.db.Close()
	app.db = nil
	return err
}
