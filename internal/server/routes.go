package server

import (
	"github.com/fulmenhq/gofulmen/signals"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/tadeyemo32/career26-vanguard/internal/observability"
	"github.com/tadeyemo32/career26-vanguard/internal/server/handlers"
)

const (
	adminSignalPath = "/admin/signal"
	adminRatePerMin = 10
	adminRateBurst  = 5
)

func (s *Server) registerRoutes() {
	r := s.router

	if s.healthOn {
		r.Route("/health", func(r chi.Router) {
			r.Get("/", s.health.HealthHandler)
			r.Get("/live", s.health.LivenessHandler)
			r.Get("/ready", s.health.ReadinessHandler)
			r.Get("/startup", s.health.StartupHandler)
		})
	}
	r.Get("/version", handlers.VersionHandler)
	r.Get("/metrics", metricsHandler(s.metricsPort))

	r.Route("/v1", func(r chi.Router) {
		r.Use(s.limiter.Middleware)
		r.Post("/name-to-search", s.names.Search)
		r.Post("/name-to-search/record", s.names.SearchRecord)
		r.Post("/name-to-search/batch", s.names.Batch)
		r.Get("/companies/{companyNumber}/search-queries", s.names.CompanyQueries)
	})

	if s.profiler {
		r.Mount("/debug", middleware.Profiler())
	}
	if s.adminToken != "" {
		s.mountAdminSignals()
	}
}

// mountAdminSignals exposes gofulmen's signal endpoint behind a bearer token
// so operators can trigger reload or shutdown over HTTP.
func (s *Server) mountAdminSignals() {
	handler := signals.NewHTTPHandler(signals.HTTPConfig{
		TokenAuth: s.adminToken,
		RateLimit: adminRatePerMin,
		RateBurst: adminRateBurst,
	})
	s.router.Post(adminSignalPath, handler.ServeHTTP)

	if logger := observability.ServerLogger; logger != nil {
		logger.Warn("Admin signal endpoint enabled; keep this server off the public internet",
			zap.String("path", adminSignalPath),
			zap.Int("rate_per_minute", adminRatePerMin),
			zap.Int("burst", adminRateBurst))
	}
}
