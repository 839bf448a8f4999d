package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/tadeyemo32/career26-vanguard/internal/config"
	"github.com/tadeyemo32/career26-vanguard/internal/core/namesearch"
	apperrors "github.com/tadeyemo32/career26-vanguard/internal/errors"
	"github.com/tadeyemo32/career26-vanguard/internal/metrics"
	"github.com/tadeyemo32/career26-vanguard/internal/observability"
	"github.com/tadeyemo32/career26-vanguard/internal/server/handlers"
	servermw "github.com/tadeyemo32/career26-vanguard/internal/server/middleware"
)

// Server represents the HTTP server
type Server struct {
	router  *chi.Mux
	server  *http.Server
	host    string
	port    int
	version string

	timeouts    config.ServerConfig
	metricsPort int
	healthOn    bool
	adminToken  string
	profiler    bool

	names   *handlers.NameSearchHandler
	health  *handlers.HealthManager
	limiter *servermw.RateLimiter
	started time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithPipeline sets the pipeline behind the name-to-search endpoints.
func WithPipeline(p *namesearch.Pipeline) Option {
	return func(s *Server) {
		if p != nil {
			s.names.Pipeline = p
		}
	}
}

// WithDefaults sets the options applied when a request does not override them.
func WithDefaults(opts namesearch.Options) Option {
	return func(s *Server) { s.names.Defaults = opts }
}

// WithStore enables the company endpoint and the store health check.
func WithStore(store handlers.CompanyStore) Option {
	return func(s *Server) { s.names.Companies = store }
}

// WithAPI applies rate limiting and batch limits.
func WithAPI(cfg config.APIConfig) Option {
	return func(s *Server) {
		s.names.MaxBatch = cfg.MaxBatch
		s.limiter = servermw.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)
	}
}

// WithTimeouts sets the http.Server timeouts. Zero values keep the defaults.
func WithTimeouts(cfg config.ServerConfig) Option {
	return func(s *Server) {
		if cfg.ReadTimeout > 0 {
			s.timeouts.ReadTimeout = cfg.ReadTimeout
		}
		if cfg.WriteTimeout > 0 {
			s.timeouts.WriteTimeout = cfg.WriteTimeout
		}
		if cfg.IdleTimeout > 0 {
			s.timeouts.IdleTimeout = cfg.IdleTimeout
		}
	}
}

// WithWorkers bounds batch concurrency.
func WithWorkers(n int) Option {
	return func(s *Server) { s.names.Workers = n }
}

// WithVersion sets the version reported by /health.
func WithVersion(version string) Option {
	return func(s *Server) { s.version = version }
}

// WithMetricsPort sets the exporter port used when the exporter has not
// reported one.
func WithMetricsPort(port int) Option {
	return func(s *Server) { s.metricsPort = port }
}

// WithAdminToken enables POST /admin/signal for callers presenting token.
func WithAdminToken(token string) Option {
	return func(s *Server) { s.adminToken = token }
}

// WithProfiler mounts net/http/pprof under /debug.
func WithProfiler(enabled bool) Option {
	return func(s *Server) { s.profiler = enabled }
}

// WithHealth toggles the /health endpoints.
func WithHealth(enabled bool) Option {
	return func(s *Server) { s.healthOn = enabled }
}

// New creates a new HTTP server instance
func New(host string, port int, opts ...Option) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		host:    host,
		port:    port,
		version: handlers.AppVersion,
		timeouts: config.ServerConfig{
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		metricsPort: observability.DefaultMetricsPort,
		healthOn:    true,
		names: &handlers.NameSearchHandler{
			Pipeline: namesearch.Default(),
			Defaults: namesearch.DefaultOptions(),
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.health = handlers.NewHealthManager(s.version)
	s.health.RegisterChecker("pipeline", handlers.PipelineChecker{Pipeline: s.names.Pipeline})
	if pinger, ok := s.names.Companies.(interface{ Ping(context.Context) error }); ok {
		s.health.RegisterChecker("store", handlers.HealthCheckFunc(pinger.Ping))
	}

	r := s.router
	r.Use(middleware.RealIP)

	// RequestID → Metrics → Recovery
	r.Use(servermw.RequestID)
	r.Use(servermw.RequestMetrics)
	r.Use(servermw.Recovery)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		apperrors.RespondWithError(w, req, apperrors.NewNotFoundError("The requested resource was not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		apperrors.RespondWithError(w, req, apperrors.NewMethodNotAllowedError("The requested method is not allowed for this resource"))
	})

	s.registerRoutes()

	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
	}

	s.started = time.Now()
	metrics.SetServerStartTime(s.started.Unix())

	if logger := observability.ServerLogger; logger != nil {
		logger.Info("Starting HTTP server",
			zap.String("host", s.host),
			zap.Int("port", s.port),
			zap.String("addr", addr),
			zap.Bool("rate_limited", s.limiter.Enabled()))
	}

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	if !s.started.IsZero() {
		metrics.SetServerUptime(int64(time.Since(s.started).Seconds()))
	}
	if logger := observability.ServerLogger; logger != nil {
		logger.Info("Shutting down HTTP server")
	}
	return s.server.Shutdown(ctx)
}

// Handler exposes the underlying router for testing and instrumentation
func (s *Server) Handler() http.Handler {
	return s.router
}

// Port returns the server port for testing
func (s *Server) Port() int {
	return s.port
}
