// Package main provides the local terminal passport for a single visitor.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/cory-johannsen/passport/internal/catalog"
	"github.com/cory-johannsen/passport/internal/config"
	"github.com/cory-johannsen/passport/internal/frontend/tui"
	"github.com/cory-johannsen/passport/internal/observability"
	"github.com/cory-johannsen/passport/internal/passport"
	"github.com/cory-johannsen/passport/internal/storage/postgres"
	"github.com/cory-johannsen/passport/internal/storage/sqlite"
)

func main() {
	configPath := flag.String("config", "configs/local.yaml", "path to configuration file")
	logPath := flag.String("log", "passport.log", "log file; the terminal is owned by the UI")
	flag.Parse()

	if err := run(*configPath, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "passport: %v\n", err)
		os.Exit(1)
	}
}

// run owns every deferred release so it completes before main exits.
func run(configPath, logPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg.Logging.Output = logPath

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("opening store", zap.String("backend", cfg.Storage.Backend), zap.Error(err))
		return fmt.Errorf("opening store: %w", err)
	}
	defer closeStore()

	load := func(ctx context.Context) (*passport.Controller, error) {
		start := time.Now()
		src := catalog.NewSource(cfg.Catalog.Source, cfg.Catalog.FetchTimeout)
		cat, err := src.Load(ctx)
		if err != nil {
			return nil, err
		}
		logger.Info("catalog loaded",
			zap.String("source", src.String()),
			zap.Int("worlds", cat.Len()),
			zap.Duration("elapsed", time.Since(start)),
		)
		return passport.New(ctx, cfg.Passport.LocalID, cat, passport.DefaultLayout(cat), store, logger)
	}

	program := tea.NewProgram(tui.New(ctx, load, logger), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		logger.Error("running terminal UI", zap.Error(err))
		return fmt.Errorf("running terminal UI: %w", err)
	}
	return nil
}

// openStore returns the configured progress store and its release function.
func openStore(ctx context.Context, cfg config.Config) (passport.Store, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil

	case config.BackendPostgres:
		pool, err := postgres.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		return pool.Progress(), pool.Close, nil

	default:
		return passport.NewMemoryStore(), func() {}, nil
	}
}
