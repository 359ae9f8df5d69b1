package scoring

import (
	"testing"

	"puckval/domain/core"
	"puckval/domain/player"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id string, pos player.Position, usage float64, stats map[string]float64) player.Record {
	return player.Record{
		ID:       core.PlayerID(id),
		Name:     id,
		Position: pos,
		Usage:    usage,
		Stats:    stats,
	}
}

func ungroupedPool(rows ...player.Record) *Pool {
	return &Pool{Groups: map[player.Position][]player.Record{player.PositionNone: rows}}
}

func TestStandardizeWorkedExample(t *testing.T) {
	// Pool G values [10, 20, 30]: mean 20, population std sqrt(200/3).
	rows := []player.Record{
		record("p1", player.PositionNone, 0, map[string]float64{"G": 10}),
		record("p2", player.PositionNone, 0, map[string]float64{"G": 20}),
		record("p3", player.PositionNone, 0, map[string]float64{"G": 30}),
	}
	table := player.NewStatTable(rows)
	pool := ungroupedPool(rows...)

	scores := Standardize(table, pool, player.NewCategorySet("G"), MissingOmit)

	require.Len(t, scores, 3)
	assert.InDelta(t, 1.2247, scores["p3"].PerCategory["G"], 0.0001)
	assert.InDelta(t, 0, scores["p2"].PerCategory["G"], 1e-12)
	assert.InDelta(t, -1.2247, scores["p1"].PerCategory["G"], 0.0001)
}

func TestStandardizeZeroVarianceIsExactlyZero(t *testing.T) {
	rows := []player.Record{
		record("p1", player.PositionNone, 0, map[string]float64{"G": 10}),
		record("p2", player.PositionNone, 0, map[string]float64{"G": 10}),
		record("p3", player.PositionNone, 0, map[string]float64{"G": 10}),
	}
	// The outlier is scored against the pool but not part of it.
	outlier := record("p4", player.PositionNone, 0, map[string]float64{"G": 999})
	table := player.NewStatTable(append(rows, outlier))
	pool := ungroupedPool(rows...)

	scores := Standardize(table, pool, player.NewCategorySet("G"), MissingOmit)

	for id, s := range scores {
		assert.Zero(t, s.PerCategory["G"], "player %s", id)
		assert.Zero(t, s.Total, "player %s", id)
	}
}

func TestStandardizeMissingValueIsNotAPenalty(t *testing.T) {
	rows := []player.Record{
		record("p1", player.PositionNone, 0, map[string]float64{"G": 10, "A": 5}),
		record("p2", player.PositionNone, 0, map[string]float64{"G": 20, "A": 15}),
		record("p3", player.PositionNone, 0, map[string]float64{"G": 30}), // no A
	}
	table := player.NewStatTable(rows)
	pool := ungroupedPool(rows...)

	scores := Standardize(table, pool, player.NewCategorySet("G", "A"), MissingOmit)

	// p3 lacks A: the category contributes exactly 0, and the pool
	// statistics for A come from the two present values only.
	assert.Zero(t, scores["p3"].PerCategory["A"])
	assert.InDelta(t, 1, scores["p2"].PerCategory["A"], 1e-12)  // (15-10)/5
	assert.InDelta(t, -1, scores["p1"].PerCategory["A"], 1e-12) // (5-10)/5
}

func TestStandardizeZeroFillChangesMoments(t *testing.T) {
	rows := []player.Record{
		record("p1", player.PositionNone, 0, map[string]float64{"A": 10}),
		record("p2", player.PositionNone, 0, map[string]float64{}), // missing A
	}
	table := player.NewStatTable(rows)
	pool := ungroupedPool(rows...)
	cats := player.NewCategorySet("A")

	omit := Standardize(table, pool, cats, MissingOmit)
	zero := Standardize(table, pool, cats, MissingZero)

	// Omit: single pool value, zero variance, everything 0.
	assert.Zero(t, omit["p1"].PerCategory["A"])
	assert.Zero(t, omit["p2"].PerCategory["A"])

	// Zero-fill: pool is [10, 0], mean 5, std 5.
	assert.InDelta(t, 1, zero["p1"].PerCategory["A"], 1e-12)
	assert.InDelta(t, -1, zero["p2"].PerCategory["A"], 1e-12)
}

func TestStandardizeAllPoolValuesAbsent(t *testing.T) {
	rows := []player.Record{
		record("p1", player.PositionNone, 0, map[string]float64{}),
		record("p2", player.PositionNone, 0, map[string]float64{}),
	}
	target := player.NewStatTable([]player.Record{
		record("p3", player.PositionNone, 0, map[string]float64{"G": 50}),
	})
	pool := ungroupedPool(rows...)

	scores := Standardize(target, pool, player.NewCategorySet("G"), MissingOmit)

	assert.Zero(t, scores["p3"].PerCategory["G"])
}

func TestStandardizeGroupedPoolUsesMatchingGroup(t *testing.T) {
	forwards := []player.Record{
		record("f1", player.PositionForward, 20, map[string]float64{"G": 10}),
		record("f2", player.PositionForward, 19, map[string]float64{"G": 30}),
	}
	defense := []player.Record{
		record("d1", player.PositionDefense, 22, map[string]float64{"G": 2}),
		record("d2", player.PositionDefense, 21, map[string]float64{"G": 6}),
	}
	table := player.NewStatTable(append(forwards, defense...))
	pool := &Pool{
		Grouped: true,
		Groups: map[player.Position][]player.Record{
			player.PositionForward: forwards,
			player.PositionDefense: defense,
		},
	}

	scores := Standardize(table, pool, player.NewCategorySet("G"), MissingOmit)

	// Each group standardizes against its own moments: both group
	// leaders sit one population std above their group mean.
	assert.InDelta(t, 1, scores["f2"].PerCategory["G"], 1e-12)
	assert.InDelta(t, 1, scores["d2"].PerCategory["G"], 1e-12)
}

func TestStandardizeRowWithoutPoolGroupScoresZero(t *testing.T) {
	forwards := []player.Record{
		record("f1", player.PositionForward, 20, map[string]float64{"G": 10}),
		record("f2", player.PositionForward, 19, map[string]float64{"G": 30}),
	}
	stray := record("d1", player.PositionDefense, 22, map[string]float64{"G": 50})
	table := player.NewStatTable(append(forwards, stray))
	pool := &Pool{
		Grouped: true,
		Groups:  map[player.Position][]player.Record{player.PositionForward: forwards},
	}

	scores := Standardize(table, pool, player.NewCategorySet("G"), MissingOmit)

	assert.Zero(t, scores["d1"].PerCategory["G"])
	assert.NotZero(t, scores["f2"].PerCategory["G"])
}

func TestComputeScoresIdempotent(t *testing.T) {
	rows := []player.Record{
		record("p1", player.PositionForward, 21, map[string]float64{"G": 12, "A": 30}),
		record("p2", player.PositionForward, 20, map[string]float64{"G": 25, "A": 18}),
		record("p3", player.PositionForward, 18, map[string]float64{"G": 8, "A": 9}),
		record("p4", player.PositionDefense, 23, map[string]float64{"G": 6, "A": 28}),
		record("p5", player.PositionDefense, 22, map[string]float64{"G": 3, "A": 14}),
	}
	table := player.NewStatTable(rows)
	cfg := Config{
		Categories:            player.NewCategorySet("G", "A"),
		Policy:                PoolPolicy{Kind: PolicyTopUsage, Teams: 2, SlotsPerTeam: 2, DepthBuffer: 0},
		Missing:               MissingOmit,
		ReplacementPercentile: 15,
	}

	first, err := ComputeScores(table, cfg)
	require.NoError(t, err)
	second, err := ComputeScores(table, cfg)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeScoresRejectsEmptyCategorySet(t *testing.T) {
	table := player.NewStatTable([]player.Record{
		record("p1", player.PositionForward, 20, map[string]float64{"G": 10}),
	})
	cfg := Config{
		Policy: PoolPolicy{Kind: PolicyTopUsage, Teams: 1, SlotsPerTeam: 1},
	}

	_, err := ComputeScores(table, cfg)
	assert.ErrorIs(t, err, core.ErrEmptyCategorySet)
}

func TestComputeScoresEmptyTable(t *testing.T) {
	cfg := Config{
		Categories: player.NewCategorySet("G"),
		Policy:     PoolPolicy{Kind: PolicyTopUsage, Teams: 12, SlotsPerTeam: 15, DepthBuffer: 0.3},
	}

	scores, err := ComputeScores(player.NewStatTable(nil), cfg)
	require.NoError(t, err)
	assert.Empty(t, scores)
}
