// Package server implements the techradar HTTP service.
//
// The service keeps named datasets in a [store.Store] and renders them on
// request through a [pipeline.Runner], so repeated requests for the same
// dataset and options are answered from the cache.
//
// # Routes
//
//	GET    /healthz
//	GET    /                                    HTML radar of ?dataset=
//	GET    /api/v1/datasets                     dataset summaries
//	GET    /api/v1/datasets/{name}              stored dataset
//	PUT    /api/v1/datasets/{name}              create or replace
//	DELETE /api/v1/datasets/{name}
//	GET    /api/v1/datasets/{name}/layout       computed layout
//	GET    /api/v1/datasets/{name}/radar.{fmt}  rendered artifact
//
// Errors are JSON bodies {"error": {"code", "message"}, "request_id"} with
// the status from [errors.HTTPStatus].
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/techradar/pkg/pipeline"
	"github.com/matzehuels/techradar/pkg/store"
)

// maxBodyBytes bounds uploaded datasets.
const maxBodyBytes = 10 << 20

// Config holds the dependencies of a Server.
type Config struct {
	Store  store.Store
	Runner *pipeline.Runner
	Logger *log.Logger

	// Defaults are the layout and render options used when a request does
	// not override them.
	Defaults pipeline.Options
	// DefaultDataset is shown at / without ?dataset=. If empty the first
	// stored dataset is used.
	DefaultDataset string
	// BaseURL is where the dataset switcher of the HTML page navigates.
	BaseURL string

	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	ShutdownGrace time.Duration
}

// Server serves radars over HTTP.
type Server struct {
	cfg    Config
	logger *log.Logger
	router chi.Router
}

// New builds a server and its routes.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "/"
	}
	if cfg.ShutdownGrace == 0 {
		cfg.ShutdownGrace = 10 * time.Second
	}
	s := &Server{cfg: cfg, logger: cfg.Logger}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully within the configured grace period.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
