package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"puckval/domain/core"
	"puckval/domain/player"
	"puckval/ports"

	"github.com/jmoiron/sqlx"
)

// snapshotRepository implements the SnapshotRepository interface
type snapshotRepository struct {
	db *sqlx.DB
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *sqlx.DB) ports.SnapshotRepository {
	return &snapshotRepository{db: db}
}

// Save inserts a whole table snapshot. Rows serialize as one JSON
// payload; snapshots are immutable once written.
func (r *snapshotRepository) Save(ctx context.Context, snapshot *player.Snapshot) error {
	payload, err := json.Marshal(snapshot.Table.Rows)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot rows: %w", err)
	}

	query := `INSERT INTO stat_snapshots (id, label, payload, row_count, taken_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err = r.db.ExecContext(ctx, query,
		snapshot.ID.String(), snapshot.Label, payload, snapshot.Table.Len(), snapshot.TakenAt.Time(),
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Latest returns the most recently taken snapshot.
func (r *snapshotRepository) Latest(ctx context.Context) (*player.Snapshot, error) {
	query := `SELECT id, label, payload, taken_at FROM stat_snapshots
		ORDER BY taken_at DESC LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, query))
}

// GetByID retrieves a snapshot by its ID
func (r *snapshotRepository) GetByID(ctx context.Context, id string) (*player.Snapshot, error) {
	query := `SELECT id, label, payload, taken_at FROM stat_snapshots WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// List returns snapshot listings, newest first.
func (r *snapshotRepository) List(ctx context.Context, limit int) ([]*player.SnapshotInfo, error) {
	query := `SELECT id, label, row_count, taken_at FROM stat_snapshots
		ORDER BY taken_at DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	infos := make([]*player.SnapshotInfo, 0, limit)
	for rows.Next() {
		var (
			info    player.SnapshotInfo
			id      string
			takenAt time.Time
		)
		if err := rows.Scan(&id, &info.Label, &info.RowCount, &takenAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		info.ID = core.SnapshotID(id)
		info.TakenAt = core.NewTimestamp(takenAt)
		infos = append(infos, &info)
	}
	return infos, rows.Err()
}

func (r *snapshotRepository) scanOne(row *sql.Row) (*player.Snapshot, error) {
	var (
		id      string
		label   string
		payload []byte
		takenAt time.Time
	)
	if err := row.Scan(&id, &label, &payload, &takenAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, core.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var records []player.Record
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot rows: %w", err)
	}

	return &player.Snapshot{
		ID:      core.SnapshotID(id),
		Label:   label,
		TakenAt: core.NewTimestamp(takenAt),
		Table:   player.NewStatTable(records),
	}, nil
}
