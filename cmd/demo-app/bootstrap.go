package main

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"
)

// app carries everything the handlers need.
type app struct {
	config  Config
	logger  *zap.Logger
	metrics *Metrics
	profile Profile

	source  Source
	delay   DelayFunc
	now     func() time.Time
	limiter *rate.Limiter
}

// newApp wires the application from a validated config.
func newApp(cfg Config, logger *zap.Logger) (*app, error) {
	profile, err := loadProfile(cfg.Simulation)
	if err != nil {
		return nil, err
	}

	a := &app{
		config:  cfg,
		logger:  logger,
		metrics: newMetrics(cfg.RuntimeCollectors),
		profile: profile,
		source:  newSource(cfg.Simulation.RandomSeed),
		delay:   time.Sleep,
		now:     time.Now,
	}

	if cfg.rateLimited() {
		a.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}

	logger.Info("simulation profile loaded",
		zap.Float64("error_rate", profile.ErrorRate),
		zap.Duration("min_latency", profile.MinLatency),
		zap.Duration("max_latency", profile.MaxLatency),
		zap.Bool("seeded", cfg.Simulation.RandomSeed != 0))

	return a, nil
}

// newLogger builds a production zap logger at the given level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
