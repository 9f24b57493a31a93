// Package server exposes the tile pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz                       liveness and version
//	GET  /api/playlists/{id}/tracks     track list of a playlist, with overflow warnings
//	GET  /api/playlists/{id}/tiles      tile document for a playlist (?format=pdf|json&footer=&refresh=1)
//	POST /api/tiles                     tile document for a posted track list
//
// {id} accepts anything [spotify.ExtractPlaylistID] does, URL-escaped.
// Errors are JSON objects carrying the error code and the request ID.
//
// [spotify.ExtractPlaylistID]: github.com/matzehuels/songtiles/pkg/integrations/spotify.ExtractPlaylistID
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/songtiles/pkg/pipeline"
)

// MaxBodyBytes bounds POST bodies.
const MaxBodyBytes = 2 << 20

const shutdownTimeout = 10 * time.Second

// Server handles API requests with a shared [pipeline.Runner].
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	defaults pipeline.Options
}

// New returns a server. defaults supplies the layout, footer and
// concurrency; requests may override only the format and footer.
func New(runner *pipeline.Runner, defaults pipeline.Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger, defaults: defaults}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.withRequestID)
	r.Use(middleware.RealIP)
	r.Use(s.withLogging)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/playlists/{id}/tracks", s.handlePlaylistTracks)
		r.Get("/playlists/{id}/tiles", s.handlePlaylistTiles)
		r.Post("/tiles", s.handleTiles)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errNotFound(r.URL.Path))
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
