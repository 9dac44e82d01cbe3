package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goodtune/brightboard/internal/clock"
	"github.com/goodtune/brightboard/internal/config"
	"github.com/goodtune/brightboard/internal/progress"
	"github.com/goodtune/brightboard/internal/session"
	"github.com/goodtune/brightboard/internal/settings"
	"github.com/goodtune/brightboard/internal/storage"
	"github.com/goodtune/brightboard/internal/storage/bolt"
	"github.com/goodtune/brightboard/internal/storage/redis"
	"github.com/rs/zerolog"
)

// core is the persisted state shared by the server and the parent commands.
type core struct {
	store    storage.Store
	settings *settings.Registry
	ledger   *progress.Ledger
	guardian *session.Guardian
}

func openCore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*core, error) {
	store, err := openStorage(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	reg := settings.NewRegistry(ctx, store, logger)
	return &core{
		store:    store,
		settings: reg,
		ledger:   progress.NewLedger(store, clock.Real{}, logger),
		guardian: session.NewGuardian(ctx, store, reg, clock.Real{}, logger),
	}, nil
}

func (c *core) Close() error {
	return c.store.Close()
}

func openStorage(cfg config.StorageConfig) (storage.Store, error) {
	var (
		store storage.Store
		err   error
	)

	switch cfg.Type {
	case "memory":
		store = storage.NewMemory()
	case "bolt", "":
		store, err = bolt.Open(cfg.Path)
	case "redis":
		store, err = redis.Open(cfg.Redis)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
	if err != nil {
		return nil, err
	}

	if cfg.CacheSize > 0 {
		cached, err := storage.Cached(store, cfg.CacheSize)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		return cached, nil
	}
	return store, nil
}

// setupLogger configures the logger based on configuration
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch cfg.Level {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Set output format
	if cfg.Format == "text" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Default to JSON
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// cliLogger is used by the one-shot parent commands, which only log problems.
func cliLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel).With().Timestamp().Logger()
}
