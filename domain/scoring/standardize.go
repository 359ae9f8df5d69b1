package scoring

import (
	"puckval/domain/core"
	"puckval/domain/player"

	"github.com/montanaflynn/stats"
)

// MissingValuePolicy decides how a row with no value for a category
// enters the pool statistics. The choice changes means and deviations
// materially, so it is always explicit.
type MissingValuePolicy string

const (
	// MissingOmit leaves absent categories out of the pool statistics;
	// rows lacking a value standardize to 0 for that category.
	MissingOmit MissingValuePolicy = "omit"
	// MissingZero treats absent categories as literal zeros, both in the
	// pool statistics and in the row's raw value.
	MissingZero MissingValuePolicy = "zero"
)

// Score is one player's standardized line: per-category z-scores and
// their sum. Total is baseline-shifted by ApplyBaseline so that 0 means
// replacement level.
type Score struct {
	PlayerID    core.PlayerID      `json:"player_id"`
	Position    player.Position    `json:"position"`
	PerCategory map[string]float64 `json:"per_category"`
	Total       float64            `json:"total"`
}

// ScoreSet maps player id to score. It is a pure projection of
// (table, categories, policy) and is recomputed, never patched.
type ScoreSet map[core.PlayerID]*Score

// moment holds a category's reference mean and population standard
// deviation. ok is false when the pool had no usable values.
type moment struct {
	mean float64
	std  float64
	ok   bool
}

// poolMoments computes per-category reference statistics over one pool
// group. Standard deviation is the population form (divide by N).
func poolMoments(group []player.Record, categories player.CategorySet, missing MissingValuePolicy) map[string]moment {
	moments := make(map[string]moment, len(categories))
	for _, cat := range categories {
		values := make([]float64, 0, len(group))
		for _, r := range group {
			v, ok := r.Stat(cat)
			switch {
			case ok:
				values = append(values, v)
			case missing == MissingZero:
				values = append(values, 0)
			}
		}
		if len(values) == 0 {
			moments[cat] = moment{}
			continue
		}
		mean, _ := stats.Mean(values)
		std, _ := stats.StandardDeviationPopulation(values)
		moments[cat] = moment{mean: mean, std: std, ok: true}
	}
	return moments
}

// zScore standardizes one raw value against a reference moment. Zero
// variance and absent reference values both standardize to exactly 0;
// this is an explicit branch, never a division artifact.
func zScore(value float64, m moment) float64 {
	if !m.ok || m.std == 0 {
		return 0
	}
	return (value - m.mean) / m.std
}

// Standardize scores every target row against the pool group matching
// its position (pool-derived mean/std applied to the full target table).
// Rows whose position has no pool group, and rows lacking a raw value
// under the omit policy, score 0 for the affected categories: absence is
// never a penalty. Identical inputs always produce identical output.
func Standardize(target *player.StatTable, pool *Pool, categories player.CategorySet, missing MissingValuePolicy) ScoreSet {
	groupMoments := make(map[player.Position]map[string]moment)

	scores := make(ScoreSet, target.Len())
	for _, row := range target.Rows {
		group := pool.GroupFor(row.Position)

		key := row.Position
		if pool != nil && !pool.Grouped {
			key = player.PositionNone
		}
		moments, cached := groupMoments[key]
		if !cached {
			moments = poolMoments(group, categories, missing)
			groupMoments[key] = moments
		}

		score := &Score{
			PlayerID:    row.ID,
			Position:    row.Position,
			PerCategory: make(map[string]float64, len(categories)),
		}
		for _, cat := range categories {
			raw, ok := row.Stat(cat)
			var z float64
			switch {
			case ok:
				z = zScore(raw, moments[cat])
			case missing == MissingZero:
				z = zScore(0, moments[cat])
			default:
				z = 0
			}
			score.PerCategory[cat] = z
			score.Total += z
		}
		scores[row.ID] = score
	}
	return scores
}
