package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/fortuneseal/internal/client/repositories/fortunes"
	"github.com/dmitrijs2005/fortuneseal/internal/clock"
	"github.com/dmitrijs2005/fortuneseal/internal/common"
	"github.com/dmitrijs2005/fortuneseal/internal/fortune"
	"github.com/dmitrijs2005/fortuneseal/internal/logging"
)

// EventTracker receives analytics events. client.Client satisfies it.
type EventTracker interface {
	TrackEvent(ctx context.Context, event string, data map[string]any) error
}

// WaitFunc pauses before a fresh fortune is generated. It must return early
// with ctx.Err() when ctx is done.
type WaitFunc func(ctx context.Context, d time.Duration) error

// Sleep is the default WaitFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// FortuneService reveals, lists and annotates fortunes for the current user.
type FortuneService interface {
	// Current returns the stored fortune of the bucket containing now, or
	// nil when it has not been revealed yet, plus the next boundary.
	Current(ctx context.Context, period fortune.Period) (*fortune.Fortune, fortune.NextReveal, error)
	// Reveal returns the bucket's fortune, generating and storing it when
	// absent. created reports whether this call generated it.
	Reveal(ctx context.Context, period fortune.Period) (f *fortune.Fortune, created bool, err error)
	React(ctx context.Context, period fortune.Period, periodKey string, r fortune.Reaction) error
	// History lists stored fortunes newest first; limit <= 0 means all.
	History(ctx context.Context, period fortune.Period, limit int) ([]fortune.Fortune, error)
	Next(period fortune.Period) (fortune.NextReveal, error)
}

// FortuneDeps wires a FortuneService. Tracker and Wait are optional.
type FortuneDeps struct {
	Engine   *fortune.Engine
	Calendar *fortune.Calendar
	Store    fortunes.Repository
	Profiles ProfileService
	Tracker  EventTracker
	Clock    clock.Clock
	Delay    time.Duration
	Wait     WaitFunc
	Logger   logging.Logger
}

type fortuneService struct {
	mu sync.Mutex
	d  FortuneDeps
}

func NewFortuneService(d FortuneDeps) FortuneService {
	if d.Clock == nil {
		d.Clock = clock.Real{}
	}
	if d.Calendar == nil {
		d.Calendar = fortune.DefaultCalendar()
	}
	if d.Wait == nil {
		d.Wait = Sleep
	}
	if d.Logger == nil {
		d.Logger = logging.Nop{}
	}
	return &fortuneService{d: d}
}

func (s *fortuneService) Next(period fortune.Period) (fortune.NextReveal, error) {
	return s.d.Calendar.Next(period, s.d.Clock.Now())
}

func (s *fortuneService) Current(ctx context.Context, period fortune.Period) (*fortune.Fortune, fortune.NextReveal, error) {
	now := s.d.Clock.Now()

	key, err := s.d.Calendar.Key(period, now)
	if err != nil {
		return nil, fortune.NextReveal{}, err
	}
	next, err := s.d.Calendar.Next(period, now)
	if err != nil {
		return nil, fortune.NextReveal{}, err
	}

	f, ok, err := s.d.Store.Get(ctx, period, key)
	if err != nil {
		return nil, next, fmt.Errorf("error loading fortune: %w", err)
	}
	if !ok {
		return nil, next, nil
	}
	return &f, next, nil
}

func (s *fortuneService) Reveal(ctx context.Context, period fortune.Period) (*fortune.Fortune, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, err := s.d.Calendar.Key(period, s.d.Clock.Now())
	if err != nil {
		return nil, false, err
	}

	if f, ok, err := s.d.Store.Get(ctx, period, key); err != nil {
		return nil, false, fmt.Errorf("error loading fortune: %w", err)
	} else if ok {
		return &f, false, nil
	}

	profile, err := s.d.Profiles.Profile(ctx)
	if err != nil {
		return nil, false, err
	}

	if err := s.d.Wait(ctx, s.d.Delay); err != nil {
		return nil, false, err
	}

	f, err := s.d.Engine.Generate(profile, period, key)
	if err != nil {
		return nil, false, err
	}

	if err := s.d.Store.Put(ctx, period, key, *f); err != nil {
		return nil, false, fmt.Errorf("error saving fortune: %w", err)
	}

	// Another process may have written the bucket first; the stored row wins.
	stored, ok, err := s.d.Store.Get(ctx, period, key)
	if err != nil {
		return nil, false, fmt.Errorf("error loading fortune: %w", err)
	}
	if ok && stored.ID != f.ID {
		return &stored, false, nil
	}

	s.d.Logger.Info(ctx, "fortune revealed", "period", period, "key", key, "template", f.TemplateID)
	s.track(ctx, f)

	return f, true, nil
}

func (s *fortuneService) track(ctx context.Context, f *fortune.Fortune) {
	if s.d.Tracker == nil {
		return
	}
	settings, err := s.d.Profiles.Settings(ctx)
	if err != nil || !settings.ConsentGiven {
		return
	}
	err = s.d.Tracker.TrackEvent(ctx, common.EventFortuneRevealed, map[string]any{
		"period":     string(f.Period),
		"periodKey":  f.PeriodKey,
		"templateId": f.TemplateID,
	})
	if err != nil {
		s.d.Logger.Debug(ctx, "analytics event dropped", "error", err)
	}
}

func (s *fortuneService) React(ctx context.Context, period fortune.Period, periodKey string, r fortune.Reaction) error {
	if !period.Valid() {
		return fmt.Errorf("%w: %q", fortune.ErrInvalidPeriod, period)
	}
	if _, err := fortune.ParseReaction(string(r)); err != nil {
		return err
	}

	err := s.d.Store.SetReaction(ctx, period, periodKey, r)
	if errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("no %s fortune for %s: %w", period, periodKey, err)
	}
	return err
}

func (s *fortuneService) History(ctx context.Context, period fortune.Period, limit int) ([]fortune.Fortune, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("%w: %q", fortune.ErrInvalidPeriod, period)
	}
	return s.d.Store.ListByPeriod(ctx, period, limit)
}
