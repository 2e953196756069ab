// Package server exposes the rendering pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz          liveness check
//	GET  /version          build information as JSON
//	GET  /render           render from query parameters
//	POST /render           render from a JSON request body
//	GET  /presets          all presets as JSON
//	GET  /presets/{name}   one preset as JSON
//
// Query parameters for GET /render use the JSON option names (width,
// height, fontSize, fontFamily, fill, stroke, strokeWidth, textAlign,
// verticalAlign) plus text, preset, format, scale and download.
package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/textsvg/pkg/config"
	"github.com/matzehuels/textsvg/pkg/pipeline"
)

// maxBodyBytes bounds POST /render request bodies.
const maxBodyBytes = 64 << 10

// Server serves rendered text over HTTP.
type Server struct {
	cfg     config.ServerConfig
	runner  *pipeline.Runner
	presets config.Presets
	logger  *log.Logger
	router  chi.Router
}

// New creates a server. A nil logger discards output.
func New(cfg config.ServerConfig, runner *pipeline.Runner, presets config.Presets, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if presets == nil {
		presets = config.Builtin()
	}
	s := &Server{
		cfg:     cfg,
		runner:  runner,
		presets: presets,
		logger:  logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Get("/render", s.handleRenderQuery)
	r.Post("/render", s.handleRenderJSON)
	r.Get("/presets", s.handlePresets)
	r.Get("/presets/{name}", s.handlePreset)
	return r
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on the configured address until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
