// Package main provides the entrypoint for the RouteTrack API server.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/routetrack/routetrack/internal/api"
	"github.com/routetrack/routetrack/internal/api/middleware"
	"github.com/routetrack/routetrack/internal/config"
	"github.com/routetrack/routetrack/internal/geo"
	"github.com/routetrack/routetrack/internal/route"
	"github.com/routetrack/routetrack/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "routetrack-api"

	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := newLogger(cfg.Log, serviceName)

	log.Info().
		Str("build_time", BuildTime).
		Str("environment", cfg.Server.Environment).
		Msg("starting RouteTrack API")

	loc, err := cfg.Clock.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load time zone")
	}

	ctx := context.Background()

	tp, err := telemetry.Init(ctx, telemetry.FromConfig(cfg, serviceName, Version))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.Telemetry.Enabled {
		log.Info().
			Str("otlp_endpoint", cfg.Telemetry.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	httpMetrics, err := middleware.NewMetrics(tp.Meter)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize HTTP metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	routeMetrics, err := route.NewMetrics(tp.Meter)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize route metrics")
		os.Exit(1)
	}

	routeService := route.NewService(route.ServiceConfig{
		Repository: route.NewInMemoryRepository(),
		Distance:   geo.NewGeodesic(),
		Clock:      route.NewSystemClock(loc),
		Logger:     log,
		Metrics:    routeMetrics,
		Tracer:     tp.Tracer,
	})
	log.Info().
		Str("time_zone", loc.String()).
		Msg("route service initialized")

	router := api.NewRouter(api.RouterConfig{
		Version:        Version,
		BuildTime:      BuildTime,
		Logger:         log,
		TracerProvider: tp.TracerProvider,
		Metrics:        httpMetrics,
		RouteService:   routeService,
		WriteRateLimit: middleware.RateLimitConfig{
			RequestLimit: cfg.RateLimit.Requests,
			WindowLength: cfg.RateLimit.Window,
		},
		RequireTLS: cfg.Server.RequireTLS,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}

// newLogger builds the root logger. Pretty output is for local development.
func newLogger(cfg config.LogConfig, serviceName string) zerolog.Logger {
	out := zerolog.New(os.Stdout)
	if cfg.Pretty {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return out.Level(cfg.ZerologLevel()).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()
}
