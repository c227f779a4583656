package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/fortuneseal/internal/common"
	"github.com/dmitrijs2005/fortuneseal/internal/logging"
	"github.com/dmitrijs2005/fortuneseal/internal/server/metrics"
	"github.com/dmitrijs2005/fortuneseal/internal/server/models"
	"github.com/dmitrijs2005/fortuneseal/internal/server/repositories/events"
)

const maxRecentEvents = 100

type AnalyticsService struct {
	repo    events.Repository
	logger  logging.Logger
	metrics *metrics.Metrics
}

// NewAnalyticsService builds the service. repo may be nil, in which case
// events are only logged and counted.
func NewAnalyticsService(repo events.Repository, l logging.Logger, m *metrics.Metrics) *AnalyticsService {
	if m == nil {
		m = metrics.Noop()
	}
	return &AnalyticsService{repo: repo, logger: l.With("module", "analytics"), metrics: m}
}

// Track logs one client event and stores it when a repository is configured.
func (s *AnalyticsService) Track(ctx context.Context, clientID, name string, data map[string]any) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: event name is required", common.ErrorValidation)
	}

	s.logger.Info(ctx, "analytics event", "event", name, "data", data, "client_id", clientID)
	s.metrics.EventReceived(name)

	if s.repo == nil {
		return nil
	}
	if _, err := s.repo.Create(ctx, &models.Event{Name: name, Data: data, ClientID: clientID}); err != nil {
		s.logger.Error(ctx, "error storing analytics event", "event", name, "error", err)
		return fmt.Errorf("store event: %w", err)
	}
	return nil
}

// Summary returns per-event totals.
func (s *AnalyticsService) Summary(ctx context.Context) ([]models.EventCount, error) {
	if s.repo == nil {
		return nil, common.ErrorStorageDisabled
	}
	return s.repo.CountByName(ctx)
}

// Recent returns up to limit of the newest events named name.
func (s *AnalyticsService) Recent(ctx context.Context, name string, limit int) ([]*models.Event, error) {
	if s.repo == nil {
		return nil, common.ErrorStorageDisabled
	}
	if name == "" {
		return nil, fmt.Errorf("%w: event name is required", common.ErrorValidation)
	}
	if limit <= 0 || limit > maxRecentEvents {
		limit = maxRecentEvents
	}
	return s.repo.ListRecent(ctx, name, limit)
}
