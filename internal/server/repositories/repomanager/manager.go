package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/fortuneseal/internal/dbx"
	"github.com/dmitrijs2005/fortuneseal/internal/server/repositories/events"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Events(db dbx.DBTX) events.Repository
}
