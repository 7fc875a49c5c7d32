package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaSQL creates the run history table. It is safe to run on every start.
const schemaSQL = `CREATE TABLE IF NOT EXISTS cleaning_runs (
	id                   UUID PRIMARY KEY,
	file_name            TEXT NOT NULL,
	started_at           TIMESTAMPTZ NOT NULL,
	duration_ms          BIGINT NOT NULL,
	rows_in              INTEGER NOT NULL,
	rows_out             INTEGER NOT NULL,
	columns              INTEGER NOT NULL,
	missing_before       INTEGER NOT NULL,
	missing_after        INTEGER NOT NULL,
	duplicates_before    INTEGER NOT NULL,
	duplicates_after     INTEGER NOT NULL,
	numeric_strategy     TEXT NOT NULL,
	categorical_strategy TEXT NOT NULL,
	manual_fills         INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS cleaning_runs_started_at_idx ON cleaning_runs (started_at DESC);`

const runColumns = `id, file_name, started_at, duration_ms, rows_in, rows_out, columns,
	missing_before, missing_after, duplicates_before, duplicates_after,
	numeric_strategy, categorical_strategy, manual_fills`

// PostgresStore persists runs in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps a pool and ensures the schema exists.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, errors.New("run history: pool is required")
	}
	s := &PostgresStore{pool: pool}
	if err := s.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// EnsureSchema creates the cleaning_runs table and its index if missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("run history: create schema: %w", err)
	}
	return nil
}

// Record inserts a run.
func (s *PostgresStore) Record(ctx context.Context, run Run) error {
	query := `INSERT INTO cleaning_runs (` + runColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := s.pool.Exec(ctx, query,
		pgtype.UUID{Bytes: run.ID, Valid: true},
		run.FileName,
		pgtype.Timestamptz{Time: run.StartedAt, Valid: true},
		run.Duration.Milliseconds(),
		run.RowsIn, run.RowsOut, run.Columns,
		run.MissingBefore, run.MissingAfter,
		run.DuplicatesBefore, run.DuplicatesAfter,
		run.NumericStrategy, run.CategoricalStrategy,
		run.ManualFills,
	)
	if err != nil {
		return fmt.Errorf("run history: insert run %s: %w", run.ID, err)
	}
	return nil
}

// Get returns the run with the given ID.
func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (Run, error) {
	query := `SELECT ` + runColumns + ` FROM cleaning_runs WHERE id = $1`

	rows, err := s.pool.Query(ctx, query, pgtype.UUID{Bytes: id, Valid: true})
	if err != nil {
		return Run{}, fmt.Errorf("run history: get run: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return Run{}, fmt.Errorf("run history: get run: %w", err)
		}
		return Run{}, ErrNotFound
	}
	return scanRun(rows)
}

// Recent returns up to limit runs, newest first.
func (s *PostgresStore) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultMemoryCapacity
	}

	query := `SELECT ` + runColumns + ` FROM cleaning_runs ORDER BY started_at DESC LIMIT $1`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("run history: list runs: %w", err)
	}
	defer rows.Close()

	runs := make([]Run, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("run history: list runs: %w", err)
	}
	return runs, nil
}

// Prune deletes runs older than the given age and returns how many were removed.
func (s *PostgresStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	tag, err := s.pool.Exec(ctx, `DELETE FROM cleaning_runs WHERE started_at < $1`,
		pgtype.Timestamptz{Time: cutoff, Valid: true})
	if err != nil {
		return 0, fmt.Errorf("run history: prune: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Close closes the underlying pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// scanRun scans one cleaning_runs row.
func scanRun(rows pgx.Rows) (Run, error) {
	var (
		id         pgtype.UUID
		startedAt  pgtype.Timestamptz
		durationMS int64
		run        Run
	)

	err := rows.Scan(
		&id, &run.FileName, &startedAt, &durationMS,
		&run.RowsIn, &run.RowsOut, &run.Columns,
		&run.MissingBefore, &run.MissingAfter,
		&run.DuplicatesBefore, &run.DuplicatesAfter,
		&run.NumericStrategy, &run.CategoricalStrategy, &run.ManualFills,
	)
	if err != nil {
		return Run{}, fmt.Errorf("run history: scan run: %w", err)
	}

	run.ID = uuid.UUID(id.Bytes)
	run.StartedAt = startedAt.Time
	run.Duration = time.Duration(durationMS) * time.Millisecond
	return run, nil
}
