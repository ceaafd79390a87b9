package config

import (
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// PathEnvVar overrides the config file location.
const PathEnvVar = "CONFIG_PATH"

// DefaultPaths are searched in order when no path is given.
var DefaultPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/routetrack/config.yaml",
}

// envMappings maps environment variables to config keys. Unlisted variables
// are ignored.
var envMappings = map[string]string{
	"APP_PORT":                    "server.port",
	"APP_ENV":                     "server.environment",
	"REQUIRE_TLS":                 "server.require_tls",
	"SERVER_READ_TIMEOUT":         "server.read_timeout",
	"SERVER_WRITE_TIMEOUT":        "server.write_timeout",
	"SERVER_IDLE_TIMEOUT":         "server.idle_timeout",
	"SERVER_SHUTDOWN_TIMEOUT":     "server.shutdown_timeout",
	"OTEL_ENABLED":                "telemetry.enabled",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "telemetry.otlp_endpoint",
	"LOG_LEVEL":                   "log.level",
	"LOG_PRETTY":                  "log.pretty",
	"ROUTE_TIMEZONE":              "clock.time_zone",
	"RATE_LIMIT_REQUESTS":         "rate_limit.requests",
	"RATE_LIMIT_WINDOW":           "rate_limit.window",
}

// Load layers defaults, the YAML file at path and the environment, then
// validates the result. An empty path searches CONFIG_PATH and
// DefaultPaths; a missing file there is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func envKey(key string) string {
	return envMappings[key]
}

func findFile() string {
	if p := os.Getenv(PathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
