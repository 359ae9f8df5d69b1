package compare

import (
	"testing"

	"puckval/domain/core"
	"puckval/domain/player"
	"puckval/domain/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id string, stats map[string]float64) player.Record {
	return player.Record{ID: core.PlayerID(id), Name: id, Stats: stats}
}

func TestCompareCategoryWinTally(t *testing.T) {
	// G ties exactly, B edges A: tally A=0 B=1 tie=1, B wins overall.
	table := player.NewStatTable([]player.Record{
		record("a", map[string]float64{"G": 1.5, "A": 0.2}),
		record("b", map[string]float64{"G": 1.5, "A": 0.9}),
	})

	result, err := Compare(table, nil, Request{
		SideA:      []core.PlayerID{"a"},
		SideB:      []core.PlayerID{"b"},
		Categories: player.NewCategorySet("G", "A"),
		Mode:       ModeRaw,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, result.SideA.CategoryWins)
	assert.Equal(t, 1, result.SideB.CategoryWins)
	assert.Equal(t, 1, result.Ties)
	assert.Equal(t, OutcomeSideB, result.Outcome)
}

func TestCompareAggregatesSumSides(t *testing.T) {
	table := player.NewStatTable([]player.Record{
		record("a1", map[string]float64{"G": 10}),
		record("a2", map[string]float64{"G": 5}),
		record("b1", map[string]float64{"G": 12}),
	})

	result, err := Compare(table, nil, Request{
		SideA:      []core.PlayerID{"a1", "a2"},
		SideB:      []core.PlayerID{"b1"},
		Categories: player.NewCategorySet("G"),
		Mode:       ModeRaw,
	})
	require.NoError(t, err)

	assert.InDelta(t, 15, result.SideA.Aggregates["G"], 1e-12)
	assert.InDelta(t, 12, result.SideB.Aggregates["G"], 1e-12)
	assert.Equal(t, OutcomeSideA, result.Outcome)
}

func TestCompareEmptySideIsZeroVectorNotError(t *testing.T) {
	table := player.NewStatTable([]player.Record{
		record("a", map[string]float64{"G": 3, "A": 0}),
	})

	result, err := Compare(table, nil, Request{
		SideA:      []core.PlayerID{"a"},
		SideB:      nil,
		Categories: player.NewCategorySet("G", "A"),
		Mode:       ModeRaw,
	})
	require.NoError(t, err)

	assert.Zero(t, result.SideB.Aggregates["G"])
	assert.Zero(t, result.SideB.Aggregates["A"])
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "side B")

	// A wins every category where its aggregate is positive; A=0 ties.
	assert.Equal(t, 1, result.SideA.CategoryWins)
	assert.Equal(t, 0, result.SideB.CategoryWins)
	assert.Equal(t, 1, result.Ties)
	assert.Equal(t, OutcomeSideA, result.Outcome)
}

func TestCompareAggregatePercentileRank(t *testing.T) {
	table := player.NewStatTable([]player.Record{
		record("p1", map[string]float64{"G": 1}),
		record("p2", map[string]float64{"G": 2}),
		record("p3", map[string]float64{"G": 3}),
		record("p4", map[string]float64{"G": 4}),
	})

	result, err := Compare(table, nil, Request{
		SideA:      []core.PlayerID{"p3"},
		SideB:      []core.PlayerID{"p3", "p4"}, // overlapping sides are allowed
		Categories: player.NewCategorySet("G"),
		Mode:       ModeRaw,
	})
	require.NoError(t, err)

	// 3 of 4 rows are <= 3; the summed aggregate 7 clears everything.
	assert.InDelta(t, 75, result.SideA.Percentiles["G"], 1e-9)
	assert.InDelta(t, 100, result.SideB.Percentiles["G"], 1e-9)
}

func TestCompareStandardizedModeReadsScores(t *testing.T) {
	table := player.NewStatTable([]player.Record{
		record("a", map[string]float64{"G": 10}),
		record("b", map[string]float64{"G": 20}),
	})
	scores := scoring.ScoreSet{
		"a": &scoring.Score{PlayerID: "a", PerCategory: map[string]float64{"G": -0.5}, Total: -0.5},
		"b": &scoring.Score{PlayerID: "b", PerCategory: map[string]float64{"G": 1.5}, Total: 1.5},
	}

	result, err := Compare(table, scores, Request{
		SideA:      []core.PlayerID{"a"},
		SideB:      []core.PlayerID{"b"},
		Categories: player.NewCategorySet("G"),
		Mode:       ModeStandardized,
	})
	require.NoError(t, err)

	assert.InDelta(t, -0.5, result.SideA.Aggregates["G"], 1e-12)
	assert.InDelta(t, 1.5, result.SideB.Aggregates["G"], 1e-12)
	assert.Equal(t, OutcomeSideB, result.Outcome)
}

func TestCompareUnknownPlayerID(t *testing.T) {
	table := player.NewStatTable([]player.Record{
		record("a", map[string]float64{"G": 1}),
	})

	_, err := Compare(table, nil, Request{
		SideA:      []core.PlayerID{"ghost"},
		SideB:      []core.PlayerID{"a"},
		Categories: player.NewCategorySet("G"),
		Mode:       ModeRaw,
	})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestCompareRejectsEmptyCategorySet(t *testing.T) {
	table := player.NewStatTable(nil)
	_, err := Compare(table, nil, Request{})
	assert.ErrorIs(t, err, core.ErrEmptyCategorySet)
}
