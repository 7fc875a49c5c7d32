// Package web serves the cleaning dashboard and its JSON API.
//
// A single Session slot holds the latest cleaning result; every run replaces
// it. Cleaning runs are bounded by a core.RunLimiter so memory stays
// proportional to a fixed number of in-flight tables, and each finished run
// is recorded in a store.RunStore.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/datacleaner/internal/config"
	"github.com/JonMunkholm/datacleaner/internal/core"
	"github.com/JonMunkholm/datacleaner/internal/store"
	"github.com/JonMunkholm/datacleaner/internal/web/middleware"
)

// Server is the HTTP server for the cleaning dashboard.
type Server struct {
	cfg     *config.Config
	runs    store.RunStore
	limiter *core.RunLimiter
	session *Session
	router  *chi.Mux
	server  *http.Server

	// now is the reference time passed to cleaning runs.
	now func() time.Time

	stopLimiters context.CancelFunc
}

// NewServer wires routes and middleware. runs may be a MemoryStore or a
// PostgresStore.
func NewServer(cfg *config.Config, runs store.RunStore) *Server {
	s := &Server{
		cfg:     cfg,
		runs:    runs,
		limiter: core.NewRunLimiter(cfg.Upload.MaxConcurrent, cfg.Upload.MaxWaitTime),
		session: &Session{},
		router:  chi.NewRouter(),
		now:     time.Now,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(middleware.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Compress(5))
	if s.cfg.Server.RequestTimeout > 0 {
		s.router.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))
	}
	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	ctx, cancel := context.WithCancel(context.Background())
	s.stopLimiters = cancel

	general := func(next http.Handler) http.Handler { return next }
	cleaning := general
	if s.cfg.Rate.Enabled {
		gl := newRateLimiter(s.cfg.Rate.RequestsPerMinute, time.Minute)
		cl := newRateLimiter(s.cfg.Rate.CleanLimit, time.Minute)
		go gl.run(ctx)
		go cl.run(ctx)
		general = gl.middleware(s)
		cleaning = cl.middleware(s)
	}

	s.router.Get("/healthz", s.handleHealth)

	s.router.Group(func(r chi.Router) {
		r.Use(general)

		// Pages
		r.Get("/", s.handleDashboard)
		r.With(cleaning).Post("/preview", s.handlePreviewForm)
		r.With(cleaning).Post("/clean", s.handleCleanForm)

		// API routes
		r.Route("/api", func(r chi.Router) {
			r.Use(middleware.APIKeyAuth(&s.cfg.Security))

			r.With(cleaning).Post("/preview", s.handlePreview)
			r.With(cleaning).Post("/clean", s.handleClean)

			r.Get("/cleaned", s.handleCleaned)
			r.Get("/report", s.handleReport)
			r.Get("/export", s.handleExport)
			r.Get("/chart", s.handleChart)

			r.Get("/runs", s.handleRuns)
			r.Get("/runs/{runID}", s.handleRun)
		})
	})
}

// Run serves until ctx is cancelled, then shuts down within
// Server.ShutdownTimeout. It returns after in-flight cleaning runs have
// finished or the timeout expired.
func (s *Server) Run(ctx context.Context) error {
	s.server = s.newHTTPServer()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.serve()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (s *Server) newHTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
}

func (s *Server) serve() error {
	slog.Info("starting server", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests, then waits for in-flight cleaning runs.
func (s *Server) Shutdown(ctx context.Context) error {
	defer s.stopLimiters()

	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
	}

	if active := s.limiter.ActiveCount(); active > 0 {
		slog.Info("waiting for cleaning runs to finish", "active", active)
	}
	if err := s.limiter.WaitForDrain(ctx); err != nil {
		return fmt.Errorf("drain cleaning runs: %w", err)
	}
	return nil
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			if enableCSP {
				// Inline styles only; the dashboard ships no scripts.
				h.Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; script-src 'none'")
			}
			next.ServeHTTP(w, r)
		})
	}
}
