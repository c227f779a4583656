package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/fortuneseal/internal/client/client"
	"github.com/dmitrijs2005/fortuneseal/internal/clock"
	"github.com/dmitrijs2005/fortuneseal/internal/fortune"
	"github.com/dmitrijs2005/fortuneseal/internal/templates"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "fortune.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

var kst = time.FixedZone("KST", 9*3600)

// movableClock is a clock tests can move forward.
type movableClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *movableClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *movableClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

var _ clock.Clock = (*movableClock)(nil)

type recordingTracker struct {
	mu     sync.Mutex
	events []string
	data   []map[string]any
}

func (r *recordingTracker) TrackEvent(_ context.Context, event string, data map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	r.data = append(r.data, data)
	return nil
}

type fortuneFixture struct {
	db       *sql.DB
	clock    *movableClock
	profiles ProfileService
	tracker  *recordingTracker
	waits    []time.Duration
	svc      FortuneService
}

func newFortuneFixture(t *testing.T, start time.Time) *fortuneFixture {
	t.Helper()
	db := setupDB(t)
	repos := client.NewRepositories(db)

	fx := &fortuneFixture{
		db:      db,
		clock:   &movableClock{now: start},
		tracker: &recordingTracker{},
	}
	fx.profiles = NewProfileService(repos.Metadata, fx.clock)

	var mu sync.Mutex
	fx.svc = NewFortuneService(FortuneDeps{
		Engine:   fortune.NewEngine(templates.Default(), fortune.WithClock(fx.clock)),
		Calendar: fortune.DefaultCalendar(),
		Store:    repos.Fortunes,
		Profiles: fx.profiles,
		Tracker:  fx.tracker,
		Clock:    fx.clock,
		Delay:    1500 * time.Millisecond,
		Wait: func(ctx context.Context, d time.Duration) error {
			mu.Lock()
			fx.waits = append(fx.waits, d)
			mu.Unlock()
			return ctx.Err()
		},
	})
	return fx
}
