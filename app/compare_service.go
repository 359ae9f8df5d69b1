package app

import (
	"context"
	"log"
	"sync"

	"puckval/domain/compare"
	"puckval/domain/core"
	"puckval/domain/player"
	"puckval/domain/scoring"
	"puckval/internal/errors"
	"puckval/ports"
)

// CompareService orchestrates the pipeline: fetch collaborator ->
// canonical table -> pool selection -> standardization -> baseline
// shift -> comparison. It holds the current table behind a lock and
// swaps it wholesale on refresh; the domain packages stay pure and read
// only their arguments.
type CompareService struct {
	source    ports.TableSource
	snapshots ports.SnapshotRepository // nil when persistence is not configured

	mu    sync.RWMutex
	table *player.StatTable
}

// CompareRequest pairs the comparison sides with the scoring run that
// should back them.
type CompareRequest struct {
	Scoring scoring.Config  `json:"scoring"`
	Compare compare.Request `json:"compare"`
}

const defaultSnapshotListLimit = 20

// NewCompareService creates the service. snapshots may be nil.
func NewCompareService(source ports.TableSource, snapshots ports.SnapshotRepository) *CompareService {
	return &CompareService{source: source, snapshots: snapshots}
}

// Refresh replaces the current table from the fetch collaborator. When
// the source fails and a snapshot store is configured, the latest
// snapshot is restored instead so the app can keep serving.
func (s *CompareService) Refresh(ctx context.Context) error {
	table, err := s.source.FetchTable(ctx)
	if err != nil {
		log.Printf("[CompareService] source fetch failed: %v", err)
		fetchErr := errors.ExternalServiceError("stats source", err)
		if s.snapshots == nil {
			return fetchErr
		}
		snapshot, snapErr := s.snapshots.Latest(ctx)
		if snapErr != nil {
			return fetchErr
		}
		log.Printf("[CompareService] restored snapshot %s (%d rows)", snapshot.ID, snapshot.Table.Len())
		table = snapshot.Table
	}

	s.swapTable(table)
	return nil
}

// CurrentTable returns the loaded table, refreshing on first use.
func (s *CompareService) CurrentTable(ctx context.Context) (*player.StatTable, error) {
	s.mu.RLock()
	table := s.table
	s.mu.RUnlock()
	if table != nil {
		return table, nil
	}
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table, nil
}

// Categories returns the requested categories narrowed to the columns
// the current table actually has.
func (s *CompareService) Categories(ctx context.Context, requested player.CategorySet) (player.CategorySet, error) {
	table, err := s.CurrentTable(ctx)
	if err != nil {
		return nil, err
	}
	return requested.Intersect(table), nil
}

// Scores computes replacement-adjusted scores for every row of the
// current table. The active set is the requested categories narrowed to
// the table's columns; an empty result set is rejected before any
// computation.
func (s *CompareService) Scores(ctx context.Context, cfg scoring.Config) (scoring.ScoreSet, *player.StatTable, error) {
	if err := cfg.Categories.Validate(); err != nil {
		return nil, nil, err
	}
	table, err := s.CurrentTable(ctx)
	if err != nil {
		return nil, nil, err
	}

	cfg.Categories = cfg.Categories.Intersect(table)
	scores, err := scoring.ComputeScores(table, cfg)
	if err != nil {
		return nil, nil, err
	}
	return scores, table, nil
}

// Compare scores the current table and compares two sides over it.
func (s *CompareService) Compare(ctx context.Context, req CompareRequest) (*compare.Result, error) {
	req.Scoring.Categories = req.Compare.Categories
	scores, table, err := s.Scores(ctx, req.Scoring)
	if err != nil {
		return nil, err
	}
	req.Compare.Categories = req.Compare.Categories.Intersect(table)
	return compare.Compare(table, scores, req.Compare)
}

// SaveSnapshot persists the current table under a label.
func (s *CompareService) SaveSnapshot(ctx context.Context, label string) (*player.Snapshot, error) {
	if s.snapshots == nil {
		return nil, core.ErrSnapshotNotFound
	}
	table, err := s.CurrentTable(ctx)
	if err != nil {
		return nil, err
	}
	snapshot := player.NewSnapshot(label, table)
	if err := s.snapshots.Save(ctx, snapshot); err != nil {
		return nil, err
	}
	log.Printf("[CompareService] saved snapshot %s (%d rows)", snapshot.ID, table.Len())
	return snapshot, nil
}

// LoadLatestSnapshot replaces the current table with the most recent
// stored snapshot.
func (s *CompareService) LoadLatestSnapshot(ctx context.Context) (*player.Snapshot, error) {
	if s.snapshots == nil {
		return nil, core.ErrSnapshotNotFound
	}
	snapshot, err := s.snapshots.Latest(ctx)
	if err != nil {
		return nil, err
	}
	s.swapTable(snapshot.Table)
	return snapshot, nil
}

// LoadSnapshot replaces the current table with a specific stored
// snapshot.
func (s *CompareService) LoadSnapshot(ctx context.Context, id string) (*player.Snapshot, error) {
	if s.snapshots == nil {
		return nil, core.ErrSnapshotNotFound
	}
	snapshot, err := s.snapshots.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.swapTable(snapshot.Table)
	return snapshot, nil
}

// ListSnapshots returns stored snapshot listings, newest first.
func (s *CompareService) ListSnapshots(ctx context.Context, limit int) ([]*player.SnapshotInfo, error) {
	if s.snapshots == nil {
		return nil, core.ErrSnapshotNotFound
	}
	if limit <= 0 {
		limit = defaultSnapshotListLimit
	}
	return s.snapshots.List(ctx, limit)
}

func (s *CompareService) swapTable(table *player.StatTable) {
	s.mu.Lock()
	s.table = table
	s.mu.Unlock()
}
