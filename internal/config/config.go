package config

import (
	"errors"
	"fmt"

	"github.com/joeshaw/envdecode"
)

const (
	ModeCLI    = "cli"
	ModeServer = "server"
	ModeBoth   = "both"
)

type Config struct {
	Mode        string `env:"APP_MODE,default=cli"`
	Port        string `env:"APP_PORT,default=8080"`
	Environment string `env:"APP_ENVIRONMENT,default=development"`

	ServiceName    string `env:"OTEL_SERVICE_NAME,default=parking-lot-service"`
	ServiceVersion string `env:"SERVICE_VERSION,default=1.0.0"`
	OTLPEndpoint   string `env:"OTEL_EXPORTER_OTLP_ENDPOINT,default=http://localhost:4318"`

	// Requests per second accepted by the HTTP API. Zero disables limiting.
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS,default=0"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST,default=10"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envdecode.StrictDecode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Mode {
	case ModeCLI, ModeServer, ModeBoth:
	default:
		return fmt.Errorf("invalid mode %q: must be cli, server, or both", c.Mode)
	}

	if c.Port == "" {
		return errors.New("port must not be empty")
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("rate limit must not be negative, got %v", c.RateLimitRPS)
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit burst must be positive, got %d", c.RateLimitBurst)
	}
	return nil
}
