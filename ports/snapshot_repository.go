package ports

import (
	"context"

	"puckval/domain/player"
)

// SnapshotRepository persists whole table snapshots. Tables refresh
// wholesale, so the repository only ever stores and returns complete
// snapshots; there are no row-level operations.
type SnapshotRepository interface {
	Save(ctx context.Context, snapshot *player.Snapshot) error
	Latest(ctx context.Context) (*player.Snapshot, error)
	GetByID(ctx context.Context, id string) (*player.Snapshot, error)
	List(ctx context.Context, limit int) ([]*player.SnapshotInfo, error)
}
