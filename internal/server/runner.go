// Package server runs the daemon's long-lived components.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// Config for the daemon runner.
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	SweepInterval   time.Duration
}

// Sweeper is a background job that runs until its context is canceled.
type Sweeper interface {
	RunSweeper(ctx context.Context, interval time.Duration) error
}

// Runner manages the HTTP server and background jobs.
type Runner struct {
	handler http.Handler
	sweeper Sweeper
	config  Config
	logger  *slog.Logger
}

// NewRunner creates a new runner. sweeper may be nil.
func NewRunner(handler http.Handler, sweeper Sweeper, cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	return &Runner{
		handler: handler,
		sweeper: sweeper,
		config:  cfg,
		logger:  logger,
	}
}

// Run listens on the configured address and serves until ctx is canceled.
func (r *Runner) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", r.config.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", r.config.Addr, err)
	}
	return r.Serve(ctx, ln)
}

// Serve serves on ln and runs background jobs. It blocks until ctx is
// canceled, then shuts the HTTP server down gracefully.
func (r *Runner) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           r.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Use errgroup to manage component lifecycle
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r.logger.Info("http server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), r.config.ShutdownTimeout)
		defer cancel()
		r.logger.Info("shutting down http server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if r.sweeper != nil {
		g.Go(func() error {
			return r.sweeper.RunSweeper(gctx, r.config.SweepInterval)
		})
	}

	err := g.Wait()
	r.logger.Info("server stopped")
	return err
}
