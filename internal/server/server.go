// Package server implements the HTTP host: a small JSON API for editing
// scenes inside live sessions, plus a dependency-graph rendering
// endpoint.
//
// The server owns no geometry. Every mutation goes through the scene
// collection's operations, which return a freshly relaxed scene; the
// server's job is transport, validation, and session bookkeeping.
package server

import (
	"context"
	"net/http"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/daschober/planesketch/pkg/session"
)

// Config holds the server settings.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// SessionTTL is how long an idle session survives. Zero means
	// session.DefaultTTL.
	SessionTTL time.Duration
	// CleanupInterval is how often expired sessions are swept. Zero
	// disables the sweeper (the redis backend expires natively).
	CleanupInterval time.Duration
}

// Server is the HTTP host.
type Server struct {
	cfg    Config
	store  session.Store
	logger *charmlog.Logger
}

// New creates a server around the given session store.
func New(cfg Config, store session.Store, logger *charmlog.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = session.DefaultTTL
	}
	if logger == nil {
		logger = charmlog.Default()
	}
	return &Server{cfg: cfg, store: store, logger: logger}
}

// Router builds the route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.handleGetScene)
			r.Delete("/", s.handleDeleteSession)
			r.Get("/graph.svg", s.handleGraphSVG)
			r.Post("/entities", s.handleCreateEntity)
			r.Route("/entities/{entityID}", func(r chi.Router) {
				r.Patch("/", s.handlePatchEntity)
				r.Delete("/", s.handleDeleteEntity)
			})
		})
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.cfg.CleanupInterval > 0 {
		go s.sweep(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// sweep periodically removes expired sessions from the store.
func (s *Server) sweep(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.store.Cleanup(ctx); err != nil {
				s.logger.Warn("session cleanup failed", "err", err)
			}
		}
	}
}
