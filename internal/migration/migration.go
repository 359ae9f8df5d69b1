package migration

import (
	"context"

	"puckval/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createStatSnapshotsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create stat_snapshots table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createStatSnapshotsTable(ctx context.Context, db *sqlx.DB) error {
	query := `CREATE TABLE IF NOT EXISTS stat_snapshots (
		id UUID PRIMARY KEY,
		label TEXT NOT NULL DEFAULT '',
		payload JSONB NOT NULL,
		row_count INTEGER NOT NULL DEFAULT 0,
		taken_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`
	_, err := db.ExecContext(ctx, query)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	query := `CREATE INDEX IF NOT EXISTS idx_stat_snapshots_taken_at
		ON stat_snapshots (taken_at DESC)`
	_, err := db.ExecContext(ctx, query)
	return err
}
