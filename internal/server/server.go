// Package server exposes the disk pipeline over HTTP.
//
// Routes:
//
//	GET /healthz             liveness and version
//	GET /disk.{format}       render a disk; format is svg, json, png or pdf
//	GET /gray/{bits}         the Gray code table as JSON
//
// Disk parameters are read from the query string using the TOML key names
// (bits, encoder_diameter, track_width, ...). Every response carries an
// X-Request-ID header.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/encoderdisk/pkg/pipeline"
)

// DefaultMaxBits limits request cost; a 16-bit disk already has 65536
// positions.
const DefaultMaxBits = 16

// DefaultMaxSegments caps the wedges per incremental ring in one request.
const DefaultMaxSegments = 1024

// Server serves rendered disks.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	maxBits int
	maxSegs int
	timeout time.Duration
	router  chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithMaxBits caps the bit count accepted from clients.
func WithMaxBits(n int) Option { return func(s *Server) { s.maxBits = n } }

// WithMaxSegments caps the incremental ring segments accepted from clients.
func WithMaxSegments(n int) Option { return func(s *Server) { s.maxSegs = n } }

// WithTimeout bounds the time spent on one request.
func WithTimeout(d time.Duration) Option { return func(s *Server) { s.timeout = d } }

// New creates a server rendering through runner.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:  runner,
		logger:  logger.WithPrefix("http"),
		maxBits: DefaultMaxBits,
		maxSegs: DefaultMaxSegments,
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(s.recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)
	r.Get("/disk.{format}", s.handleDisk)
	r.Get("/gray/{bits}", s.handleGray)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, errNotFound(r.URL.Path))
	})
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully, giving in-flight requests five seconds to finish.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
