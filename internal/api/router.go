// Package api provides the HTTP API for RouteTrack.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/routetrack/routetrack/internal/api/handler"
	"github.com/routetrack/routetrack/internal/api/middleware"
	"github.com/routetrack/routetrack/internal/api/response"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version        string
	BuildTime      string
	Logger         zerolog.Logger
	TracerProvider trace.TracerProvider
	Metrics        *middleware.Metrics
	RouteService   handler.RouteService
	// WriteRateLimit applies per client IP to route writes. The zero value
	// disables limiting.
	WriteRateLimit middleware.RateLimitConfig
	RequireTLS     bool
}

// NewRouter creates a new chi router with all API routes configured.
// Trailing slashes are ignored, so /v1/route/ and /v1/route match the same
// endpoint.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware - order matters
	r.Use(middleware.RequestID)                   // Generate/propagate request ID first
	r.Use(middleware.Tracing(cfg.TracerProvider)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))         // Structured logging
	r.Use(middleware.Recovery(cfg.Logger))       // Panic recovery
	r.Use(chimiddleware.RealIP)                  // Real IP extraction
	r.Use(chimiddleware.StripSlashes)            // /route/ == /route
	r.Use(middleware.SecurityHeaders)            // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS(cfg.RequireTLS)) // TLS enforcement
	r.Use(middleware.ContentTypeJSON)            // JSON content type

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, r, "no such endpoint")
	})

	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime)
	routeHandler := handler.NewRouteHandler(cfg.RouteService)

	writeRateLimit := middleware.RateLimitByIP(cfg.WriteRateLimit)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
		})

		r.Route("/route", func(r chi.Router) {
			r.With(writeRateLimit, middleware.RequireJSON).Post("/", routeHandler.CreateRoute)
			r.Route("/{routeId}", func(r chi.Router) {
				r.Get("/", routeHandler.GetStatus)
				r.With(writeRateLimit, middleware.RequireJSON).Post("/way_point", routeHandler.AddWayPoint)
				r.Get("/length", routeHandler.GetLength)
				r.Get("/longest_paths", routeHandler.GetLongestPaths)
			})
		})
	})

	return r
}
