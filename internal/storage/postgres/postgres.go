// Package postgres stores passport progress in PostgreSQL using pgx v5.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/passport/internal/config"
)

// Pool is the pgx connection pool backing the progress repository. It
// satisfies health.Pinger.
type Pool struct {
	pool *pgxpool.Pool
}

// Connect brings the schema up to date and opens a pool sized by cfg.
// Migrations run before the pool so sessions never see a missing table.
//
// Precondition: cfg must pass config validation for the postgres backend.
// Postcondition: Returns a pinged Pool or a non-nil error; nothing is left open on error.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*Pool, error) {
	if err := MigrateUp(cfg.DSN()); err != nil {
		return nil, err
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	if cfg.HealthInterval > 0 {
		poolCfg.HealthCheckPeriod = cfg.HealthInterval
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	return &Pool{pool: pool}, nil
}

// Health pings the database, failing if it does not answer within timeout.
func (p *Pool) Health(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return p.pool.Ping(ctx)
}

// Progress returns a repository over this pool.
func (p *Pool) Progress() *ProgressRepository {
	return NewProgressRepository(p.pool)
}

// DB exposes the raw pool for tests and ad-hoc queries.
func (p *Pool) DB() *pgxpool.Pool {
	return p.pool
}

// Close releases every connection. The pool is unusable afterwards.
func (p *Pool) Close() {
	p.pool.Close()
}
