// Package main provides the passport Telnet server. Visitors connect, get a
// passport code, and unlock worlds by keyword.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/passport/internal/catalog"
	"github.com/cory-johannsen/passport/internal/config"
	"github.com/cory-johannsen/passport/internal/frontend/handlers"
	"github.com/cory-johannsen/passport/internal/frontend/telnet"
	"github.com/cory-johannsen/passport/internal/health"
	"github.com/cory-johannsen/passport/internal/observability"
	"github.com/cory-johannsen/passport/internal/passport"
	"github.com/cory-johannsen/passport/internal/server"
	"github.com/cory-johannsen/passport/internal/storage/postgres"
	"github.com/cory-johannsen/passport/internal/storage/sqlite"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting passport server",
		zap.String("telnet_addr", cfg.Telnet.Addr()),
		zap.String("storage", cfg.Storage.Backend),
		zap.String("catalog", cfg.Catalog.Source),
	)

	ctx := context.Background()

	// Catalog
	catStart := time.Now()
	src := catalog.NewSource(cfg.Catalog.Source, cfg.Catalog.FetchTimeout)
	cat, err := src.Load(ctx)
	if err != nil {
		logger.Fatal("loading catalog", zap.String("source", src.String()), zap.Error(err))
	}
	logger.Info("catalog loaded",
		zap.String("source", src.String()),
		zap.Int("worlds", cat.Len()),
		zap.Duration("elapsed", time.Since(catStart)),
	)

	lifecycle := server.NewLifecycle(logger)

	var healthSrv *health.Server
	if cfg.Health.Enabled {
		healthSrv = health.NewServer(logger)
	}

	// Storage
	var store passport.Store
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		dbStart := time.Now()
		pool, err := postgres.Connect(ctx, cfg.Database)
		if err != nil {
			logger.Fatal("connecting to database", zap.Error(err))
		}
		repo := pool.Progress()
		count, err := repo.Count(ctx)
		if err != nil {
			logger.Fatal("counting passports", zap.Error(err))
		}
		logger.Info("database connected",
			zap.String("host", cfg.Database.Host),
			zap.Int("port", cfg.Database.Port),
			zap.String("database", cfg.Database.Name),
			zap.Int("passports", count),
			zap.Duration("elapsed", time.Since(dbStart)),
		)
		store = repo

		lifecycle.Add("postgres", &server.FuncService{
			StartFn: func(ctx context.Context) error {
				if healthSrv != nil {
					healthSrv.Watch(ctx, pool, cfg.Database.HealthInterval)
					return nil
				}
				<-ctx.Done()
				return nil
			},
			StopFn: pool.Close,
		})

	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			logger.Fatal("opening sqlite store", zap.String("path", cfg.Storage.SQLitePath), zap.Error(err))
		}
		logger.Info("sqlite store opened", zap.String("path", cfg.Storage.SQLitePath))
		store = db

		lifecycle.Add("sqlite", &server.FuncService{
			StartFn: func(ctx context.Context) error {
				<-ctx.Done()
				return nil
			},
			StopFn: func() {
				if err := db.Close(); err != nil {
					logger.Warn("closing sqlite store", zap.Error(err))
				}
			},
		})

	default:
		logger.Warn("using in-memory store; progress is lost on restart")
		store = passport.NewMemoryStore()
	}

	handler := handlers.NewPassportHandler(cat, passport.DefaultLayout(cat), store, logger)
	acceptor := telnet.NewAcceptor(cfg.Telnet, handler, logger)

	lifecycle.Add("telnet", &server.FuncService{
		StartFn: func(context.Context) error {
			return acceptor.ListenAndServe()
		},
		StopFn: acceptor.Stop,
	})

	if healthSrv != nil {
		healthSrv.SetServing(true)
		lifecycle.Add("health", &server.FuncService{
			StartFn: func(context.Context) error {
				return healthSrv.ListenAndServe(cfg.Health.Addr())
			},
			StopFn: healthSrv.Stop,
		})
	}

	logger.Info("passport server initialized",
		zap.Duration("startup", time.Since(start)),
		zap.String("telnet_addr", cfg.Telnet.Addr()),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
