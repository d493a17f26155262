// Package sqlite stores passport progress in a local SQLite file using
// modernc.org/sqlite. It backs the terminal passport the way browser-local
// storage backs the web one.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"github.com/cory-johannsen/passport/internal/passport"
	"github.com/cory-johannsen/passport/migrations"
)

// Store persists passport progress in SQLite. It implements passport.Store.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (creating if needed) the SQLite file at path and applies the
// embedded migrations.
//
// Postcondition: Returns a ready Store, or an error with the handle closed.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}
	dsn := "file:" + filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// applyMigrations runs the embedded SQLite migrations against sqlDB. The
// migrator is not closed: its database driver would close sqlDB with it.
func applyMigrations(sqlDB *sql.DB) error {
	src, err := iofs.New(migrations.SQLite, "sqlite")
	if err != nil {
		return err
	}
	driver, err := migratesqlite.WithInstance(sqlDB, &migratesqlite.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return src.Close()
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Load implements passport.Store.
func (s *Store) Load(ctx context.Context, passportID string) (passport.Progress, bool, error) {
	var raw string
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT progress FROM passport_progress WHERE passport_id = ?`,
		passportID,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("query progress: %w", err)
	}
	p, err := passport.DecodeProgress([]byte(raw))
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}

// Save implements passport.Store with an upsert of the whole progress map.
func (s *Store) Save(ctx context.Context, passportID string, p passport.Progress) error {
	data, err := passport.EncodeProgress(p)
	if err != nil {
		return err
	}
	now := time.Now().UTC().UnixMilli()
	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO passport_progress (passport_id, progress, created_at, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (passport_id)
		 DO UPDATE SET progress = excluded.progress, updated_at = excluded.updated_at`,
		passportID, string(data), now, now,
	)
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}
