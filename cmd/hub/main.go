package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mkravets/messagehub/internal/config"
	"github.com/mkravets/messagehub/internal/database"
	"github.com/mkravets/messagehub/internal/hub"
	"github.com/mkravets/messagehub/internal/syncer"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup logger
	logger := setupLogger(cfg.LogLevel, cfg.LogFormat)
	logger.Info("starting message hub")

	// Connect to database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run migrations
	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("database migrations completed")

	service := hub.New(db, cfg.SyncWindow, logger)

	if cfg.AccountConfigured() {
		service.AddAccount(cfg.AccountConfig())
		logger.Info("account registered", "email", cfg.IMAPEmail, "mailbox", cfg.IMAPMailbox)
	} else {
		logger.Warn("no IMAP account configured, serving stored messages only")
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(ctx)
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh

		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// First pass right away, then the scheduler takes over
	if stats, ran, err := service.TriggerSync(ctx); err != nil {
		logger.Error("initial sync failed", "error", err)
	} else if ran {
		logger.Info("initial sync complete",
			"fetched", stats.Fetched, "inserted", stats.Inserted, "skipped", stats.Skipped)
	}

	scheduler := syncer.NewScheduler(cfg.SyncInterval, func(ctx context.Context) {
		stats, ran, err := service.TriggerSync(ctx)
		if err != nil {
			logger.Error("sync failed", "error", err)
			return
		}
		if ran && stats.Inserted > 0 {
			logger.Info("new messages stored", "inserted", stats.Inserted)
		}
	}, logger)

	scheduler.Run(ctx)
	logger.Info("message hub stopped")
}

func setupLogger(level, format string) *slog.Logger {
	var handler slog.Handler
	logLevel := parseLevel(level)

	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: logLevel,
		})
	} else {
		// Pretty colored output for console
		handler = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.DateTime,
			NoColor:    false,
		})
	}

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch level {
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
