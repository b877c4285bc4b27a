package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	_ "modernc.org/sqlite"

	v1 "github.com/vmunix/vidio/internal/api/v1"
	"github.com/vmunix/vidio/internal/auth"
	"github.com/vmunix/vidio/internal/changelog"
	"github.com/vmunix/vidio/internal/config"
	"github.com/vmunix/vidio/internal/jellyfin"
	"github.com/vmunix/vidio/internal/landing"
	"github.com/vmunix/vidio/internal/migrations"
	"github.com/vmunix/vidio/internal/server"
	"github.com/vmunix/vidio/internal/settings"
	"github.com/vmunix/vidio/internal/watchstats"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newJellyfin builds the breaker-wrapped Jellyfin client. Both layers tag
// their own component, so logger must not carry one.
func newJellyfin(cfg config.JellyfinConfig, breakerCfg jellyfin.BreakerConfig, logger *slog.Logger) *jellyfin.BreakerClient {
	client := jellyfin.NewClient(cfg.URL,
		jellyfin.WithTimeout(cfg.Timeout.Duration),
		jellyfin.WithCacheTTL(cfg.SeriesCacheTTL.Duration),
		jellyfin.WithIdentity(cfg.Client, cfg.Device, cfg.DeviceID),
		jellyfin.WithVersion(version),
		jellyfin.WithLogger(logger),
	)
	return jellyfin.NewBreakerClient(client, breakerCfg, logger)
}

func runServer(configPath string) error {
	// Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// Create logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))
	slog.SetDefault(logger)

	// Ensure database directory exists
	dbDir := filepath.Dir(cfg.Database.Path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	// Open database
	db, err := sql.Open("sqlite", cfg.Database.Path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() { _ = db.Close() }()

	// Run migrations
	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// === Stores ===
	catalog, err := landing.Load(cfg.Landing.DefaultLang)
	if err != nil {
		return fmt.Errorf("landing: %w", err)
	}
	gate := auth.NewGate(cfg.Admin.PasswordHash, cfg.Admin.TokenTTL.Duration,
		auth.WithLogger(logger.With("component", "auth")))

	deps := v1.ServerDeps{
		Changelog: changelog.NewStore(db),
		Settings:  settings.NewStore(db),
		Landing:   catalog,
		Gate:      gate,
	}

	// === Jellyfin (optional) ===
	if cfg.Jellyfin.URL != "" {
		breaker := newJellyfin(cfg.Jellyfin, jellyfin.DefaultBreakerConfig(), logger)
		deps.Jellyfin = breaker
		deps.Stats = watchstats.NewService(breaker, logger)
		logger.Info("jellyfin configured", "url", cfg.Jellyfin.URL, "breaker", breaker.State())
	}

	api, err := v1.New(deps, v1.Config{
		Version:       version,
		LoginRequests: cfg.RateLimit.LoginRequests,
		LoginWindow:   cfg.RateLimit.LoginWindow.Duration,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}

	logger.Info("server starting",
		"addr", cfg.Addr(),
		"database", cfg.Database.Path,
		"jellyfin", cfg.Jellyfin.URL,
		"admin", gate.Enabled(),
		"log_level", cfg.Server.LogLevel,
	)

	// Wait for interrupt signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := server.NewRunner(api.Handler(), gate, server.Config{Addr: cfg.Addr()}, logger.With("component", "runner"))
	return runner.Run(ctx)
}
