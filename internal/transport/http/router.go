package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"oceanwatch/internal/config"
	"oceanwatch/internal/middleware"
)

// NewRouter assembles the full HTTP surface: API routes, health, and
// Prometheus metrics, behind the standard middleware chain.
func NewRouter(service DashboardService, cfg *config.Config, logger *slog.Logger, version string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Metrics)
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, logger)
		r.Use(limiter.Handler)
	}

	viewHandler := NewViewHandler(service, logger)
	dimsHandler := NewDimensionsHandler(service, logger)
	healthHandler := NewHealthHandler(service, logger, version)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Mount("/view", viewHandler.Routes())
		r.Get("/dimensions", dimsHandler.GetDimensions)
		r.Get("/outliers", dimsHandler.GetOutliers)
	})

	r.Get("/healthz", healthHandler.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
