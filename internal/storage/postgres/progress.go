package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/passport/internal/passport"
)

// ErrProgressNotFound is returned by Get when no row exists for a passport id.
var ErrProgressNotFound = errors.New("progress not found")

// ProgressRecord is one row of passport_progress.
type ProgressRecord struct {
	PassportID string
	Progress   passport.Progress
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ProgressRepository persists passport progress as JSONB. It implements passport.Store.
type ProgressRepository struct {
	db *pgxpool.Pool
}

// NewProgressRepository creates a ProgressRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool with migrations applied.
func NewProgressRepository(db *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Get returns the full row for passportID.
//
// Postcondition: Returns the record or ErrProgressNotFound.
func (r *ProgressRepository) Get(ctx context.Context, passportID string) (ProgressRecord, error) {
	var (
		rec ProgressRecord
		raw []byte
	)
	err := r.db.QueryRow(ctx,
		`SELECT passport_id, progress, created_at, updated_at
		 FROM passport_progress WHERE passport_id = $1`,
		passportID,
	).Scan(&rec.PassportID, &raw, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ProgressRecord{}, ErrProgressNotFound
		}
		return ProgressRecord{}, fmt.Errorf("querying progress: %w", err)
	}

	rec.Progress, err = passport.DecodeProgress(raw)
	if err != nil {
		return ProgressRecord{}, err
	}
	return rec, nil
}

// Load implements passport.Store.
func (r *ProgressRepository) Load(ctx context.Context, passportID string) (passport.Progress, bool, error) {
	rec, err := r.Get(ctx, passportID)
	if errors.Is(err, ErrProgressNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return rec.Progress, true, nil
}

// Save implements passport.Store with an upsert of the whole progress map.
//
// Postcondition: The row for passportID holds exactly p; updated_at is refreshed.
func (r *ProgressRepository) Save(ctx context.Context, passportID string, p passport.Progress) error {
	data, err := passport.EncodeProgress(p)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO passport_progress (passport_id, progress)
		 VALUES ($1, $2)
		 ON CONFLICT (passport_id)
		 DO UPDATE SET progress = EXCLUDED.progress, updated_at = NOW()`,
		passportID, json.RawMessage(data),
	)
	if err != nil {
		return fmt.Errorf("saving progress: %w", err)
	}
	return nil
}

// Count returns the number of stored passports.
func (r *ProgressRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM passport_progress`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting progress: %w", err)
	}
	return n, nil
}
