package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/fortuneseal/internal/client/client"
	"github.com/dmitrijs2005/fortuneseal/internal/client/config"
	"github.com/dmitrijs2005/fortuneseal/internal/client/services"
	"github.com/dmitrijs2005/fortuneseal/internal/clock"
	"github.com/dmitrijs2005/fortuneseal/internal/fortune"
	"github.com/dmitrijs2005/fortuneseal/internal/logging"
	"github.com/dmitrijs2005/fortuneseal/internal/netx"
	"github.com/dmitrijs2005/fortuneseal/internal/templates"
)

type Mode string

const (
	ModeOffline  Mode = "offline"
	ModeOnline   Mode = "online"
	ModeDisabled Mode = "disabled"
)

type App struct {
	config   *config.Config
	db       *sql.DB
	client   client.Client
	profiles services.ProfileService
	fortunes services.FortuneService
	backups  services.BackupService
	calendar *fortune.Calendar
	clock    clock.Clock
	logger   logging.Logger

	mu   sync.RWMutex
	mode Mode

	scanner *bufio.Scanner
	out     io.Writer
}

// appDeps is everything NewApp resolves from the environment. Tests build
// an App from it directly.
type appDeps struct {
	config    *config.Config
	db        *sql.DB
	client    client.Client
	templates fortune.TemplateSource
	calendar  *fortune.Calendar
	clock     clock.Clock
	logger    logging.Logger
	wait      services.WaitFunc
	in        io.Reader
	out       io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stderr, "text", c.LogLevel).With("module", "cli")

	cal, err := fortune.LoadCalendar(c.Timezone)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	clientID, err := services.NewProfileService(client.NewRepositories(db).Metadata, clock.Real{}).ClientID(ctx)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	// The oracle is optional: without it the app runs in disabled mode.
	var apiClient client.Client
	if c.ServerEndpointAddr != "" {
		gc, err := client.NewGRPCClient(c.ServerEndpointAddr, clientID)
		if err != nil {
			log.Printf("server disabled: %s", err.Error())
		} else {
			apiClient = gc
		}
	}

	return newApp(appDeps{
		config:    c,
		db:        db,
		client:    apiClient,
		templates: templates.Default(),
		calendar:  cal,
		clock:     clock.Real{},
		logger:    logger,
		in:        os.Stdin,
		out:       os.Stdout,
	}), nil
}

func newApp(d appDeps) *App {
	if d.clock == nil {
		d.clock = clock.Real{}
	}
	if d.logger == nil {
		d.logger = logging.Nop{}
	}
	if d.calendar == nil {
		d.calendar = fortune.DefaultCalendar()
	}

	repos := client.NewRepositories(d.db)
	profiles := services.NewProfileService(repos.Metadata, d.clock)

	a := &App{
		config:   d.config,
		db:       d.db,
		client:   d.client,
		profiles: profiles,
		backups:  services.NewBackupService(d.db, d.client, &netx.Transfer{}, d.calendar, d.clock),
		calendar: d.calendar,
		clock:    d.clock,
		logger:   d.logger,
		mode:     ModeOffline,
		scanner:  bufio.NewScanner(d.in),
		out:      d.out,
	}
	if d.client == nil {
		a.mode = ModeDisabled
	}

	wait := d.wait
	if wait == nil {
		wait = services.Sleep
	}

	var tracker services.EventTracker
	if d.client != nil {
		tracker = d.client
	}

	a.fortunes = services.NewFortuneService(services.FortuneDeps{
		Engine:   fortune.NewEngine(d.templates, fortune.WithClock(d.clock)),
		Calendar: d.calendar,
		Store:    repos.Fortunes,
		Profiles: profiles,
		Tracker:  tracker,
		Clock:    d.clock,
		Delay:    d.config.RevealDelay,
		Wait:     a.pacedWait(wait),
		Logger:   d.logger.With("module", "fortunes"),
	})
	return a
}

// pacedWait wraps wait with the reveal animation when motion is enabled.
func (a *App) pacedWait(wait services.WaitFunc) services.WaitFunc {
	return func(ctx context.Context, d time.Duration) error {
		settings, err := a.profiles.Settings(ctx)
		if err != nil || !settings.MotionEnabled || d <= 0 {
			return wait(ctx, d)
		}

		const steps = 3
		fmt.Fprint(a.out, "봉인을 여는 중")
		defer fmt.Fprintln(a.out)
		for i := 0; i < steps; i++ {
			if err := wait(ctx, d/steps); err != nil {
				return err
			}
			fmt.Fprint(a.out, ".")
		}
		return nil
	}
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mode != mode {
		a.mode = mode
		a.logger.Info(context.Background(), "connection mode changed", "mode", mode)
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

func (a *App) Close() {
	if a.client != nil {
		_ = a.client.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

// StartOnlineStatusWatcher pings the server every interval until ctx is
// done. It returns immediately when no server is configured.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if a.client == nil || interval <= 0 {
		return
	}

	a.checkOnline(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, client.DefaultCallTimeout)
	defer cancel()

	if err := a.client.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}
