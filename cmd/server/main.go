package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/JonMunkholm/datacleaner/internal/config"
	"github.com/JonMunkholm/datacleaner/internal/logging"
	"github.com/JonMunkholm/datacleaner/internal/store"
	"github.com/JonMunkholm/datacleaner/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"database", cfg.Database.Enabled(),
		"upload_max_concurrent", cfg.Upload.MaxConcurrent,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	runs, err := openRunStore(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to open run history", "error", err)
		os.Exit(1)
	}
	defer runs.Close()

	// Create server with config
	server := web.NewServer(cfg, runs)

	// Cancelled on SIGINT/SIGTERM; stops background jobs and the server
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start retention job; returns at once when retention is disabled
	go store.StartRetention(ctx, runs, store.RetentionConfig{
		Retention:     cfg.History.Retention,
		CheckInterval: cfg.History.PruneInterval,
	})

	// Serve until signalled; returns after active cleaning runs drain
	if err := server.Run(ctx); err != nil {
		slog.Error("server stopped", "error", err)
		return
	}
	slog.Info("server stopped")
}

// openRunStore connects to PostgreSQL when DATABASE_URL is set and falls
// back to an in-memory store otherwise.
func openRunStore(ctx context.Context, cfg *config.Config) (store.RunStore, error) {
	if !cfg.Database.Enabled() {
		slog.Info("no database configured, keeping run history in memory",
			"capacity", cfg.History.MemoryCapacity,
		)
		return store.NewMemoryStore(cfg.History.MemoryCapacity), nil
	}

	// Parse and configure connection pool
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	// Apply pool configuration from config
	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.MinConns = int32(cfg.Database.MinConns)
	poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
	defer cancel()

	// Connect to database
	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, err
	}

	// Verify connection
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, err
	}

	// Log which database we connected to
	if u, err := url.Parse(cfg.Database.URL); err == nil {
		dbName := strings.TrimPrefix(u.Path, "/")
		slog.Info("connected to database", "name", dbName)
	} else {
		slog.Info("connected to database")
	}

	runs, err := store.NewPostgresStore(connectCtx, pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return runs, nil
}
