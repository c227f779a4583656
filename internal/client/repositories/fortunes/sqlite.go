package fortunes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fortuneseal/internal/common"
	"github.com/dmitrijs2005/fortuneseal/internal/dbx"
	"github.com/dmitrijs2005/fortuneseal/internal/fortune"
)

// timeLayout has a fixed-width fraction so generated_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const selectColumns = `period, period_key, id, text, template_id, seed, profile_hash, generated_at, reaction`

// SQLiteRepository implements Repository over a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFortune(s scanner) (fortune.Fortune, error) {
	var (
		f           fortune.Fortune
		period      string
		generatedAt string
		reaction    string
	)
	if err := s.Scan(&period, &f.PeriodKey, &f.ID, &f.Text, &f.TemplateID, &f.Seed, &f.ProfileHash, &generatedAt, &reaction); err != nil {
		return fortune.Fortune{}, err
	}
	ts, err := time.Parse(timeLayout, generatedAt)
	if err != nil {
		return fortune.Fortune{}, fmt.Errorf("parse generated_at %q: %w", generatedAt, err)
	}
	f.Period = fortune.Period(period)
	f.GeneratedAt = ts
	f.Reaction = fortune.Reaction(reaction)
	return f, nil
}

func (r *SQLiteRepository) Find(ctx context.Context, period fortune.Period, periodKey string) (*fortune.Fortune, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM fortunes WHERE period = ? AND period_key = ?`,
		string(period), periodKey)

	f, err := scanFortune(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get fortune %s/%s: %w", period, periodKey, err)
	}
	return &f, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, period fortune.Period, periodKey string) (fortune.Fortune, bool, error) {
	f, err := r.Find(ctx, period, periodKey)
	if errors.Is(err, common.ErrorNotFound) {
		return fortune.Fortune{}, false, nil
	}
	if err != nil {
		return fortune.Fortune{}, false, err
	}
	return *f, true, nil
}

// Put inserts f under (period, periodKey). An existing row is kept.
func (r *SQLiteRepository) Put(ctx context.Context, period fortune.Period, periodKey string, f fortune.Fortune) error {
	return insert(ctx, r.db, period, periodKey, f)
}

func insert(ctx context.Context, db dbx.DBTX, period fortune.Period, periodKey string, f fortune.Fortune) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO fortunes (`+selectColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(period, period_key) DO NOTHING
	`, string(period), periodKey, f.ID, f.Text, f.TemplateID, f.Seed, f.ProfileHash,
		f.GeneratedAt.UTC().Format(timeLayout), string(f.Reaction))
	if err != nil {
		return fmt.Errorf("failed to insert fortune %s/%s: %w", period, periodKey, err)
	}
	return nil
}

func (r *SQLiteRepository) SetReaction(ctx context.Context, period fortune.Period, periodKey string, reaction fortune.Reaction) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE fortunes SET reaction = ? WHERE period = ? AND period_key = ?`,
		string(reaction), string(period), periodKey)
	if err != nil {
		return fmt.Errorf("failed to set reaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLiteRepository) ListByPeriod(ctx context.Context, period fortune.Period, limit int) ([]fortune.Fortune, error) {
	query := `SELECT ` + selectColumns + ` FROM fortunes WHERE period = ?
		ORDER BY generated_at DESC, period_key DESC`
	args := []any{string(period)}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list fortunes: %w", err)
	}
	defer rows.Close()

	var out []fortune.Fortune
	for rows.Next() {
		f, err := scanFortune(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SQLiteRepository) All(ctx context.Context) (fortune.History, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM fortunes`)
	if err != nil {
		return nil, fmt.Errorf("failed to select fortunes: %w", err)
	}
	defer rows.Close()

	h := fortune.NewHistory()
	for rows.Next() {
		f, err := scanFortune(rows)
		if err != nil {
			return nil, err
		}
		h.Put(f.Period, f.PeriodKey, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return h, nil
}

// ReplaceAll swaps the whole table for h in one transaction. When the
// repository is already bound to a *sql.Tx the caller's transaction is used.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, h fortune.History) error {
	replace := func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM fortunes`); err != nil {
			return fmt.Errorf("failed to clear fortunes: %w", err)
		}
		for period, bucket := range h {
			for key, f := range bucket {
				if err := insert(ctx, tx, period, key, f); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if b, ok := r.db.(dbx.TxBeginner); ok {
		return dbx.WithTx(ctx, b, nil, replace)
	}
	return replace(ctx, r.db)
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM fortunes`); err != nil {
		return fmt.Errorf("failed to clear fortunes: %w", err)
	}
	return nil
}
