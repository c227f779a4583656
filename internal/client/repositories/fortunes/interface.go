package fortunes

import (
	"context"

	"github.com/dmitrijs2005/fortuneseal/internal/fortune"
)

type Repository interface {
	fortune.HistoryStore

	// Find is Get reporting absence as common.ErrorNotFound.
	Find(ctx context.Context, period fortune.Period, periodKey string) (*fortune.Fortune, error)
	SetReaction(ctx context.Context, period fortune.Period, periodKey string, r fortune.Reaction) error
	// ListByPeriod returns newest first; limit <= 0 means no limit.
	ListByPeriod(ctx context.Context, period fortune.Period, limit int) ([]fortune.Fortune, error)
	All(ctx context.Context) (fortune.History, error)
	ReplaceAll(ctx context.Context, h fortune.History) error
	Clear(ctx context.Context) error
}
