package store

// retention.go runs the history retention job. It deletes runs older than the
// configured retention on startup and then every interval until the context
// is cancelled. Failed passes are logged and retried on the next tick.

import (
	"context"
	"log/slog"
	"time"
)

// Pruner deletes runs older than a cutoff and returns how many were removed.
type Pruner interface {
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
}

// RetentionConfig holds configuration for the retention job.
type RetentionConfig struct {
	Retention     time.Duration // How long runs are kept
	CheckInterval time.Duration // How often to prune (default: 24h)
}

// StartRetention blocks, pruning p immediately and then every CheckInterval.
// It returns when ctx is cancelled. A non-positive Retention disables pruning
// and returns at once.
func StartRetention(ctx context.Context, p Pruner, cfg RetentionConfig) {
	if cfg.Retention <= 0 {
		return
	}
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = 24 * time.Hour
	}

	slog.Info("run history retention started",
		"retention", cfg.Retention.String(),
		"interval", cfg.CheckInterval.String(),
	)

	runPrune(ctx, p, cfg.Retention)

	ticker := time.NewTicker(cfg.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("run history retention stopped")
			return
		case <-ticker.C:
			runPrune(ctx, p, cfg.Retention)
		}
	}
}

// runPrune performs one prune pass.
func runPrune(ctx context.Context, p Pruner, retention time.Duration) {
	start := time.Now()
	pruned, err := p.Prune(ctx, retention)
	if err != nil {
		slog.Error("prune failed", "error", err)
		return
	}
	slog.Info("pruned run history",
		"runs_pruned", pruned,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
