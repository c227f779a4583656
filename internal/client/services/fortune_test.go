package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/fortuneseal/internal/client/models"
	"github.com/dmitrijs2005/fortuneseal/internal/common"
	"github.com/dmitrijs2005/fortuneseal/internal/fortune"
	"github.com/dmitrijs2005/fortuneseal/internal/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReveal_SecondRevealReturnsStoredFortune(t *testing.T) {
	fx := newFortuneFixture(t, time.Date(2024, 3, 5, 15, 30, 0, 0, kst))
	ctx := context.Background()

	first, created, err := fx.svc.Reveal(ctx, fortune.Daily)
	require.NoError(t, err)
	require.True(t, created)
	assert.Equal(t, "2024-03-05", first.PeriodKey)

	fx.clock.Set(time.Date(2024, 3, 5, 23, 59, 0, 0, kst))
	second, created, err := fx.svc.Reveal(ctx, fortune.Daily)
	require.NoError(t, err)
	require.False(t, created)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, first.GeneratedAt.Equal(second.GeneratedAt))
	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, []time.Duration{1500 * time.Millisecond}, fx.waits, "pacing only precedes generation")
}

func TestReveal_NewBucketAfterBoundary(t *testing.T) {
	fx := newFortuneFixture(t, time.Date(2024, 1, 8, 10, 0, 0, 0, kst))
	ctx := context.Background()

	monday, _, err := fx.svc.Reveal(ctx, fortune.Weekly)
	require.NoError(t, err)
	assert.Equal(t, "2024-W01-08", monday.PeriodKey)

	fx.clock.Set(time.Date(2024, 1, 14, 23, 59, 0, 0, kst))
	sunday, created, err := fx.svc.Reveal(ctx, fortune.Weekly)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, monday.ID, sunday.ID)

	fx.clock.Set(time.Date(2024, 1, 15, 0, 0, 0, 0, kst))
	next, created, err := fx.svc.Reveal(ctx, fortune.Weekly)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "2024-W01-15", next.PeriodKey)
	assert.NotEqual(t, monday.ID, next.ID)
}

func TestReveal_AppliesProfile(t *testing.T) {
	fx := newFortuneFixture(t, time.Date(2024, 3, 5, 9, 0, 0, 0, kst))
	ctx := context.Background()

	require.NoError(t, fx.profiles.SaveProfile(ctx, fortune.Profile{Name: "지민", HonorificStyle: fortune.HonorificShort}))

	f, _, err := fx.svc.Reveal(ctx, fortune.Daily)
	require.NoError(t, err)

	daily, err := templates.Default().ByPeriod(fortune.Daily)
	require.NoError(t, err)
	assert.Equal(t, "daily_45", f.TemplateID)
	assert.Equal(t, "지민님, "+daily[45], f.Text)
	assert.Equal(t, "2s1kbk", f.ProfileHash)
}

func TestReveal_ConcurrentCallsGenerateOnce(t *testing.T) {
	fx := newFortuneFixture(t, time.Date(2024, 3, 5, 9, 0, 0, 0, kst))
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		ids     = map[string]struct{}{}
		created int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f, c, err := fx.svc.Reveal(ctx, fortune.Monthly)
			require.NoError(t, err)
			mu.Lock()
			defer mu.Unlock()
			ids[f.ID] = struct{}{}
			if c {
				created++
			}
		}()
	}
	wg.Wait()

	assert.Len(t, ids, 1)
	assert.Equal(t, 1, created)
}

func TestReveal_CanceledWaitStoresNothing(t *testing.T) {
	fx := newFortuneFixture(t, time.Date(2024, 3, 5, 9, 0, 0, 0, kst))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := fx.svc.Reveal(ctx, fortune.Yearly)
	require.ErrorIs(t, err, context.Canceled)

	f, _, err := fx.svc.Current(context.Background(), fortune.Yearly)
	require.NoError(t, err)
	assert.Nil(t, f)
}

func TestReveal_InvalidPeriod(t *testing.T) {
	fx := newFortuneFixture(t, time.Now())

	_, _, err := fx.svc.Reveal(context.Background(), fortune.Period("hourly"))
	require.ErrorIs(t, err, fortune.ErrInvalidPeriod)
}

func TestReveal_TracksOnlyWithConsent(t *testing.T) {
	fx := newFortuneFixture(t, time.Date(2024, 3, 5, 9, 0, 0, 0, kst))
	ctx := context.Background()

	_, _, err := fx.svc.Reveal(ctx, fortune.Daily)
	require.NoError(t, err)
	assert.Empty(t, fx.tracker.events)

	s := models.DefaultSettings()
	s.ConsentGiven = true
	require.NoError(t, fx.profiles.SaveSettings(ctx, s))

	f, _, err := fx.svc.Reveal(ctx, fortune.Weekly)
	require.NoError(t, err)
	require.Equal(t, []string{common.EventFortuneRevealed}, fx.tracker.events)
	assert.Equal(t, f.TemplateID, fx.tracker.data[0]["templateId"])

	// stored fortunes are not re-tracked
	_, _, err = fx.svc.Reveal(ctx, fortune.Weekly)
	require.NoError(t, err)
	assert.Len(t, fx.tracker.events, 1)
}

func TestCurrent(t *testing.T) {
	fx := newFortuneFixture(t, time.Date(2024, 3, 5, 15, 30, 0, 0, kst))
	ctx := context.Background()

	f, next, err := fx.svc.Current(ctx, fortune.Daily)
	require.NoError(t, err)
	assert.Nil(t, f)
	assert.Equal(t, 8*time.Hour+30*time.Minute, next.Remaining)
	assert.True(t, strings.HasPrefix(next.String(), "내일 00:00"))

	revealed, _, err := fx.svc.Reveal(ctx, fortune.Daily)
	require.NoError(t, err)

	f, _, err = fx.svc.Current(ctx, fortune.Daily)
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, revealed.ID, f.ID)
}

func TestReactAndHistory(t *testing.T) {
	fx := newFortuneFixture(t, time.Date(2024, 3, 3, 9, 0, 0, 0, kst))
	ctx := context.Background()

	for day := 3; day <= 5; day++ {
		fx.clock.Set(time.Date(2024, 3, day, 9, 0, 0, 0, kst))
		_, _, err := fx.svc.Reveal(ctx, fortune.Daily)
		require.NoError(t, err)
	}

	require.NoError(t, fx.svc.React(ctx, fortune.Daily, "2024-03-04", fortune.ReactionPositive))
	require.ErrorIs(t, fx.svc.React(ctx, fortune.Daily, "1999-01-01", fortune.ReactionNeutral), common.ErrorNotFound)
	require.ErrorIs(t, fx.svc.React(ctx, fortune.Daily, "2024-03-04", "angry"), fortune.ErrInvalidReaction)

	all, err := fx.svc.History(ctx, fortune.Daily, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2024-03-05", all[0].PeriodKey)
	assert.Equal(t, fortune.ReactionPositive, all[1].Reaction)

	top, err := fx.svc.History(ctx, fortune.Daily, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)

	_, err = fx.svc.History(ctx, "hourly", 0)
	require.ErrorIs(t, err, fortune.ErrInvalidPeriod)
}

func TestSleep(t *testing.T) {
	require.NoError(t, Sleep(context.Background(), time.Millisecond))
	require.NoError(t, Sleep(context.Background(), 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, Sleep(ctx, time.Hour), context.Canceled)
}
