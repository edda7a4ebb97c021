// Package server exposes identifier generation and conversion over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Lzww0608/gid"
	"github.com/Lzww0608/gid/internal/config"
	"github.com/Lzww0608/gid/internal/metrics"
	"github.com/Lzww0608/gid/internal/store"
)

// Registry is the subset of the identifier registry used by the HTTP layer.
type Registry interface {
	SaveAll(ctx context.Context, recs []store.Record) error
	Get(ctx context.Context, id gid.ID) (store.Record, error)
	List(ctx context.Context, limit int) ([]store.Record, error)
}

// Options wires the server's collaborators. Registry may be nil, in which case
// generated identifiers are not persisted and registry routes answer 503.
type Options struct {
	Config    *config.Config
	Generator *gid.Generator
	Random    *gid.RandomGenerator
	Registry  Registry
	Metrics   *metrics.Collector
	Gatherer  prometheus.Gatherer
	Logger    zerolog.Logger
}

// Server serves the identifier API.
type Server struct {
	cfg      *config.Config
	timeGen  *gid.Generator
	randGen  *gid.RandomGenerator
	registry Registry
	metrics  *metrics.Collector
	logger   zerolog.Logger
	router   chi.Router
}

// New creates a server and mounts its routes.
func New(opts Options) *Server {
	s := &Server{
		cfg:      opts.Config,
		timeGen:  opts.Generator,
		randGen:  opts.Random,
		registry: opts.Registry,
		metrics:  opts.Metrics,
		logger:   opts.Logger.With().Str("component", "server").Logger(),
	}
	if s.cfg == nil {
		s.cfg = config.Default()
	}
	if s.timeGen == nil {
		s.timeGen = gid.NewGenerator()
	}
	if s.randGen == nil {
		s.randGen = gid.NewRandomGenerator()
	}
	if s.metrics == nil {
		s.metrics = metrics.New(prometheus.NewRegistry())
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/ids", s.handleGenerate)
		r.Get("/ids/{text}", s.handleDecode)
		r.Get("/ids/{text}/encode", s.handleEncode)
		r.Get("/registry", s.handleList)
		r.Get("/registry/{text}", s.handleLookup)
	})

	if s.cfg.Metrics.Enabled && opts.Gatherer != nil {
		r.Handle(s.cfg.Metrics.Path, promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", srv.Addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	s.logger.Info().Msg("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// observe logs each request and records its metrics under the matched route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)

		s.metrics.RequestsTotal.WithLabelValues(r.Method, route, fmt.Sprint(status)).Inc()
		s.metrics.RequestDuration.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())

		s.logger.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("route", route).
			Int("status", status).
			Dur("elapsed", elapsed).
			Msg("request")
	})
}
