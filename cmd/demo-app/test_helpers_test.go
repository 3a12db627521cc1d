package main

import (
	"sync"
	"testing"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/time/rate"
)

// fakeClock advances only when the app "sleeps".
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type testOption func(*app)

// withSource replaces the random source.
func withSource(s Source) testOption {
	return func(a *app) { a.source = s }
}

// withConfig mutates the default test config before routes are built.
func withConfig(fn func(*Config)) testOption {
	return func(a *app) { fn(&a.config) }
}

func withLimiter(rps float64, burst int) testOption {
	return func(a *app) {
		a.config.RateLimitRPS = rps
		a.config.RateLimitBurst = burst
		a.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// newTestApp builds an app with default config, a fresh registry, an
// observed logger and a fake clock driving a zero-cost delay.
func newTestApp(t *testing.T, opts ...testOption) (*app, *observer.ObservedLogs, *fakeClock) {
	t.Helper()

	cfg, err := loadConfigWith(env.Options{Environment: map[string]string{}})
	if err != nil {
		t.Fatalf("default config: %v", err)
	}
	profile, err := loadProfile(cfg.Simulation)
	if err != nil {
		t.Fatalf("default profile: %v", err)
	}

	core, logs := observer.New(zapcore.DebugLevel)
	clock := newFakeClock()

	a := &app{
		config:  cfg,
		logger:  zap.New(core),
		metrics: newMetrics(false),
		profile: profile,
		source:  newSource(1),
		delay:   clock.Sleep,
		now:     clock.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, logs, clock
}

// histogramCount returns the number of latency observations so far.
func histogramCount(t *testing.T, h prometheus.Histogram) uint64 {
	t.Helper()
	var m dto.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("failed to read histogram: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}
