// Package config loads RouteTrack configuration from defaults, an optional
// YAML file and the environment, in increasing order of precedence.
package config

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/routetrack/routetrack/internal/validation"
)

// Config is the complete service configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Log       LogConfig       `koanf:"log"`
	Clock     ClockConfig     `koanf:"clock"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port            int           `koanf:"port" validate:"gte=1,lte=65535"`
	Environment     string        `koanf:"environment" validate:"oneof=development test staging production"`
	RequireTLS      bool          `koanf:"require_tls"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// TelemetryConfig configures OpenTelemetry export.
type TelemetryConfig struct {
	Enabled      bool   `koanf:"enabled"`
	OTLPEndpoint string `koanf:"otlp_endpoint" validate:"required,hostname_port"`
}

// LogConfig configures the root logger.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Pretty bool   `koanf:"pretty"`
}

// ZerologLevel returns the configured level.
func (l LogConfig) ZerologLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(l.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// ClockConfig decides which calendar day "today" is. A route is open only
// on its creation date in this zone. An empty zone means the host's local
// time.
type ClockConfig struct {
	TimeZone string `koanf:"time_zone" validate:"omitempty,timezone"`
}

// Location loads the configured time zone.
func (c ClockConfig) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.TimeZone)
}

// RateLimitConfig limits route writes per client IP. Zero requests disables
// the limiter.
type RateLimitConfig struct {
	Requests int           `koanf:"requests" validate:"gte=0"`
	Window   time.Duration `koanf:"window" validate:"gt=0"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Environment:     "development",
			RequireTLS:      false,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Telemetry: TelemetryConfig{
			Enabled:      false,
			OTLPEndpoint: "localhost:4317",
		},
		Log: LogConfig{
			Level: "info",
		},
		Clock: ClockConfig{},
		RateLimit: RateLimitConfig{
			Requests: 100,
			Window:   time.Minute,
		},
	}
}

// Validate checks every field constraint.
func (c *Config) Validate() error {
	return validation.Struct(c)
}
