package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/fortuneseal/internal/client/client"
	"github.com/dmitrijs2005/fortuneseal/internal/client/models"
	"github.com/dmitrijs2005/fortuneseal/internal/clock"
	"github.com/dmitrijs2005/fortuneseal/internal/common"
	"github.com/dmitrijs2005/fortuneseal/internal/fortune"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileService(t *testing.T, at time.Time) ProfileService {
	t.Helper()
	repos := client.NewRepositories(setupDB(t))
	return NewProfileService(repos.Metadata, clock.NewFixed(at))
}

func TestProfile_DefaultIsPersisted(t *testing.T) {
	created := time.Date(2024, 3, 5, 1, 0, 0, 0, time.UTC)
	repos := client.NewRepositories(setupDB(t))
	ctx := context.Background()

	svc := NewProfileService(repos.Metadata, clock.NewFixed(created))
	p, err := svc.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", p.Name)
	assert.Equal(t, fortune.HonorificShort, p.HonorificStyle)
	assert.Equal(t, fortune.DefaultTimezone, p.Timezone)
	assert.True(t, created.Equal(p.CreatedAt))

	later := NewProfileService(repos.Metadata, clock.NewFixed(created.Add(48*time.Hour)))
	again, err := later.Profile(ctx)
	require.NoError(t, err)
	assert.True(t, created.Equal(again.CreatedAt), "CreatedAt must not move once stored")
}

func TestSaveProfile(t *testing.T) {
	svc := newProfileService(t, time.Now())
	ctx := context.Background()

	p := fortune.Profile{Name: "지민", Birthdate: "1995-04-12", HonorificStyle: fortune.HonorificFull}
	require.NoError(t, svc.SaveProfile(ctx, p))

	got, err := svc.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "지민", got.Name)
	assert.Equal(t, "1995-04-12", got.Birthdate)
	assert.Equal(t, fortune.HonorificFull, got.HonorificStyle)
	assert.Equal(t, fortune.DefaultTimezone, got.Timezone)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestSaveProfile_Validation(t *testing.T) {
	svc := newProfileService(t, time.Now())
	ctx := context.Background()

	err := svc.SaveProfile(ctx, fortune.Profile{Birthdate: "12/04/1995", HonorificStyle: fortune.HonorificShort})
	require.ErrorIs(t, err, common.ErrorValidation)
	require.ErrorIs(t, err, fortune.ErrInvalidBirthdate)

	err = svc.SaveProfile(ctx, fortune.Profile{HonorificStyle: "royal"})
	require.ErrorIs(t, err, fortune.ErrInvalidHonorific)
}

func TestSettings_DefaultsAndSave(t *testing.T) {
	svc := newProfileService(t, time.Now())
	ctx := context.Background()

	s, err := svc.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(), s)

	s.ConsentGiven = true
	s.Theme = models.ThemeLight
	require.NoError(t, svc.SaveSettings(ctx, s))

	got, err := svc.Settings(ctx)
	require.NoError(t, err)
	assert.True(t, got.ConsentGiven)
	assert.Equal(t, models.ThemeLight, got.Theme)

	s.Theme = "neon"
	require.ErrorIs(t, svc.SaveSettings(ctx, s), common.ErrorValidation)
}

func TestClientID_Stable(t *testing.T) {
	svc := newProfileService(t, time.Now())
	ctx := context.Background()

	id1, err := svc.ClientID(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, id1)

	id2, err := svc.ClientID(ctx)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)
}
