package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/fortuneseal/internal/dbx"
	"github.com/dmitrijs2005/fortuneseal/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, e *models.Event) (*models.Event, error) {
	data := e.Data
	if data == nil {
		data = map[string]any{}
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode event data: %w", err)
	}

	query :=
		`INSERT INTO analytics_events (event, data, client_id)
         VALUES ($1, $2, $3)
		 RETURNING id, received_at
		 `

	err = r.db.QueryRowContext(ctx, query, e.Name, payload, e.ClientID).Scan(&e.ID, &e.ReceivedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return e, nil
}

// ListRecent returns the newest events with the given name.
func (r *PostgresRepository) ListRecent(ctx context.Context, name string, limit int) ([]*models.Event, error) {
	query :=
		`SELECT id, event, data, client_id, received_at FROM analytics_events
		 WHERE event = $1
		 ORDER BY received_at DESC, id DESC
		 LIMIT $2
		 `

	rows, err := r.db.QueryContext(ctx, query, name, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Event
	for rows.Next() {
		e := &models.Event{}
		var payload []byte
		if err := rows.Scan(&e.ID, &e.Name, &payload, &e.ClientID, &e.ReceivedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if err := json.Unmarshal(payload, &e.Data); err != nil {
			return nil, fmt.Errorf("decode event %d: %w", e.ID, err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) CountByName(ctx context.Context) ([]models.EventCount, error) {
	query :=
		`SELECT event, count(*) FROM analytics_events
		 GROUP BY event
		 ORDER BY event
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.EventCount
	for rows.Next() {
		var c models.EventCount
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
