// Package fortunes persists revealed fortunes in the local SQLite database.
//
// Rows are keyed by (period, period_key): one fortune per bucket. Put never
// overwrites an existing row, so the first fortune revealed for a bucket is
// the one every later read returns. SQLiteRepository also satisfies
// fortune.HistoryStore.
//
// Typical usage:
//
//	repo := fortunes.NewSQLiteRepository(db)
//	f, ok, err := repo.Get(ctx, fortune.Daily, "2024-03-05")
//	_ = repo.Put(ctx, fortune.Daily, "2024-03-05", generated)
//	recent, _ := repo.ListByPeriod(ctx, fortune.Daily, 10)
package fortunes
