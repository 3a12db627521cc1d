package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds server configuration
type Config struct {
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	LogRequests bool `env:"LOG_REQUESTS" envDefault:"true"`
	EnableCORS  bool `env:"ENABLE_CORS" envDefault:"false"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"0"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"0"`

	EnableTLS bool   `env:"ENABLE_TLS" envDefault:"false"`
	CertFile  string `env:"CERT_FILE" envDefault:"server.crt"`
	KeyFile   string `env:"KEY_FILE" envDefault:"server.key"`

	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	RuntimeCollectors bool `env:"METRICS_RUNTIME_COLLECTORS" envDefault:"false"`

	// Simulation tuning for the root handler
	Simulation SimulationConfig
}

// SimulationConfig holds the knobs of the simulated backend.
type SimulationConfig struct {
	ErrorRate   float64       `env:"DEMO_ERROR_RATE" envDefault:"0.10"`
	MinLatency  time.Duration `env:"DEMO_MIN_LATENCY" envDefault:"10ms"`
	MaxLatency  time.Duration `env:"DEMO_MAX_LATENCY" envDefault:"200ms"`
	ProfileFile string        `env:"DEMO_PROFILE_FILE"`
	RandomSeed  uint64        `env:"DEMO_RANDOM_SEED" envDefault:"0"`
}

// loadConfig builds a Config from environment variables.
func loadConfig() (Config, error) {
	return loadConfigWith(env.Options{})
}

// loadConfigWith parses with explicit options; a non-nil opts.Environment
// replaces the process environment.
func loadConfigWith(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("rate limit must not be negative")
	}

	if c.EnableTLS && (c.CertFile == "" || c.KeyFile == "") {
		return fmt.Errorf("TLS requires both CERT_FILE and KEY_FILE")
	}

	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}

	return nil
}

// Addr returns the listen address on all interfaces.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c Config) rateLimited() bool {
	return c.RateLimitRPS > 0 && c.RateLimitBurst > 0
}
