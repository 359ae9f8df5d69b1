package player

import (
	"puckval/domain/core"
)

// Snapshot is a canonical table captured at a point in time, the unit
// of persistence. Loading a snapshot replaces the current table
// wholesale.
type Snapshot struct {
	ID      core.SnapshotID `json:"id"`
	Label   string          `json:"label"`
	TakenAt core.Timestamp  `json:"taken_at"`
	Table   *StatTable      `json:"table"`
}

// NewSnapshot captures a table under a label.
func NewSnapshot(label string, table *StatTable) *Snapshot {
	return &Snapshot{
		ID:      core.SnapshotID(core.NewID()),
		Label:   label,
		TakenAt: core.Now(),
		Table:   table,
	}
}

// SnapshotInfo is the listing view of a stored snapshot.
type SnapshotInfo struct {
	ID       core.SnapshotID `json:"id"`
	Label    string          `json:"label"`
	TakenAt  core.Timestamp  `json:"taken_at"`
	RowCount int             `json:"row_count"`
}
