package events

import (
	"context"

	"github.com/dmitrijs2005/fortuneseal/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, e *models.Event) (*models.Event, error)
	ListRecent(ctx context.Context, name string, limit int) ([]*models.Event, error)
	CountByName(ctx context.Context) ([]models.EventCount, error)
}
