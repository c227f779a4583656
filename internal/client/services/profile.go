package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fortuneseal/internal/client/models"
	"github.com/dmitrijs2005/fortuneseal/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/fortuneseal/internal/clock"
	"github.com/dmitrijs2005/fortuneseal/internal/common"
	"github.com/dmitrijs2005/fortuneseal/internal/fortune"
	"github.com/google/uuid"
)

// ProfileService reads and writes the user's profile and settings.
//
// Profile and Settings return defaults when nothing is stored yet; the
// default profile is persisted on first read so CreatedAt stays stable.
type ProfileService interface {
	Profile(ctx context.Context) (fortune.Profile, error)
	SaveProfile(ctx context.Context, p fortune.Profile) error
	Settings(ctx context.Context) (models.Settings, error)
	SaveSettings(ctx context.Context, s models.Settings) error
	// ClientID returns the anonymous install id, creating it on first use.
	ClientID(ctx context.Context) (string, error)
}

type profileService struct {
	meta  metadata.Repository
	clock clock.Clock
}

func NewProfileService(meta metadata.Repository, clk clock.Clock) ProfileService {
	return &profileService{meta: meta, clock: clk}
}

func (s *profileService) Profile(ctx context.Context) (fortune.Profile, error) {
	var p fortune.Profile
	err := metadata.Load(ctx, s.meta, common.ProfileKey, &p)
	if errors.Is(err, common.ErrorNotFound) {
		p = fortune.NewProfile(s.clock.Now().UTC())
		if err := metadata.Store(ctx, s.meta, common.ProfileKey, p); err != nil {
			return fortune.Profile{}, fmt.Errorf("error saving default profile: %w", err)
		}
		return p, nil
	}
	if err != nil {
		return fortune.Profile{}, fmt.Errorf("error loading profile: %w", err)
	}
	if p.HonorificStyle == "" {
		p.HonorificStyle = fortune.HonorificShort
	}
	if p.Timezone == "" {
		p.Timezone = fortune.DefaultTimezone
	}
	return p, nil
}

func (s *profileService) SaveProfile(ctx context.Context, p fortune.Profile) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %w", common.ErrorValidation, err)
	}
	if p.Timezone == "" {
		p.Timezone = fortune.DefaultTimezone
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.clock.Now().UTC()
	}
	if err := metadata.Store(ctx, s.meta, common.ProfileKey, p); err != nil {
		return fmt.Errorf("error saving profile: %w", err)
	}
	return nil
}

func (s *profileService) Settings(ctx context.Context) (models.Settings, error) {
	var st models.Settings
	err := metadata.Load(ctx, s.meta, common.SettingsKey, &st)
	if errors.Is(err, common.ErrorNotFound) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("error loading settings: %w", err)
	}
	return st, nil
}

func (s *profileService) SaveSettings(ctx context.Context, st models.Settings) error {
	if err := st.Validate(); err != nil {
		return err
	}
	if err := metadata.Store(ctx, s.meta, common.SettingsKey, st); err != nil {
		return fmt.Errorf("error saving settings: %w", err)
	}
	return nil
}

func (s *profileService) ClientID(ctx context.Context) (string, error) {
	raw, err := s.meta.Get(ctx, common.ClientIDKey)
	if err == nil {
		return string(raw), nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return "", fmt.Errorf("error loading client id: %w", err)
	}

	id := uuid.NewString()
	if err := s.meta.Set(ctx, common.ClientIDKey, []byte(id)); err != nil {
		return "", fmt.Errorf("error saving client id: %w", err)
	}
	return id, nil
}
