package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"
)

var (
	// Version is set by build flags
	Version = "dev"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("demo app stopped with error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

// run serves until ctx is cancelled, then shuts the server down within
// cfg.ShutdownTimeout.
func run(ctx context.Context, cfg Config, logger *zap.Logger) error {
	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}

	server := a.newHTTPServer()

	logger.Info("demo app starting",
		zap.String("version", Version),
		zap.Int("port", cfg.Port),
		zap.Bool("tls", cfg.EnableTLS))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.startServer(server)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
		logger.Info("HTTP server shut down complete")
		return nil
	})

	return g.Wait()
}

// newHTTPServer wraps the router with h2c to support HTTP/2 over cleartext.
func (a *app) newHTTPServer() *http.Server {
	handler := h2c.NewHandler(a.setupRoutes(), &http2.Server{})

	return &http.Server{
		Addr:         a.config.Addr(),
		Handler:      handler,
		ReadTimeout:  a.config.ReadTimeout,
		WriteTimeout: a.config.WriteTimeout,
		IdleTimeout:  a.config.IdleTimeout,
	}
}
