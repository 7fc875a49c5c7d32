// Package store keeps a history of cleaning runs.
//
// Two implementations share the RunStore interface: MemoryStore, a bounded
// in-process ring used when no database is configured, and PostgresStore,
// which persists runs to a cleaning_runs table through pgxpool.
//
// Only run metadata is stored. Cleaned tables live in the web session slot
// and are never written to the database.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/datacleaner/internal/core"
)

// ErrNotFound is returned when a run ID is not in the store.
var ErrNotFound = errors.New("run history: run not found")

// Run is the metadata of one completed cleaning run.
type Run struct {
	ID                  uuid.UUID     `json:"id"`
	FileName            string        `json:"fileName"`
	StartedAt           time.Time     `json:"startedAt"`
	Duration            time.Duration `json:"durationNs"`
	RowsIn              int           `json:"rowsIn"`
	RowsOut             int           `json:"rowsOut"`
	Columns             int           `json:"columns"`
	MissingBefore       int           `json:"missingBefore"`
	MissingAfter        int           `json:"missingAfter"`
	DuplicatesBefore    int           `json:"duplicatesBefore"`
	DuplicatesAfter     int           `json:"duplicatesAfter"`
	NumericStrategy     string        `json:"numericStrategy"`
	CategoricalStrategy string        `json:"categoricalStrategy"`
	ManualFills         int           `json:"manualFills"`
}

// NewRun summarizes a finished run. rowsIn is the raw row count.
func NewRun(fileName string, startedAt time.Time, rowsIn int, cfg core.CleaningConfig, res core.Result) Run {
	run := Run{
		ID:                  uuid.New(),
		FileName:            fileName,
		StartedAt:           startedAt.UTC(),
		Duration:            time.Since(startedAt),
		RowsIn:              rowsIn,
		NumericStrategy:     string(cfg.NumericStrategy),
		CategoricalStrategy: string(cfg.CategoricalStrategy),
	}

	for _, v := range cfg.ManualFill {
		if v != "" {
			run.ManualFills++
		}
	}

	if res.Cleaned != nil {
		run.RowsOut = res.Cleaned.Len()
		run.Columns = len(res.Cleaned.Columns)
	}
	if row, ok := res.Report.Get(core.MetricMissing); ok {
		run.MissingBefore, run.MissingAfter = row.Before, row.After
	}
	if row, ok := res.Report.Get(core.MetricDuplicates); ok {
		run.DuplicatesBefore, run.DuplicatesAfter = row.Before, row.After
	}
	return run
}

// RunStore records and lists cleaning runs.
type RunStore interface {
	// Record saves a run.
	Record(ctx context.Context, run Run) error

	// Get returns a single run by ID.
	Get(ctx context.Context, id uuid.UUID) (Run, error)

	// Recent returns up to limit runs, newest first.
	Recent(ctx context.Context, limit int) ([]Run, error)

	Pruner

	// Close releases resources held by the store.
	Close()
}
