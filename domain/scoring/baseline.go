package scoring

import (
	"math"
	"sort"

	"puckval/domain/player"
)

// Percentile returns the p-th percentile (0-100) of values using linear
// interpolation between order statistics. The input is not modified; an
// empty slice yields 0 and p outside [0, 100] clamps to the nearest bound.
//
// montanaflynn's Percentile rounds to an order statistic rather than
// interpolating, so the conventional definition is computed here.
func Percentile(values []float64, p float64) float64 {
	count := len(values)
	if count == 0 {
		return 0
	}

	sorted := make([]float64, count)
	copy(sorted, values)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[count-1]
	}

	idx := (p / 100) * float64(count-1)
	lower := int(math.Floor(idx))
	upper := int(math.Ceil(idx))
	if lower == upper {
		return sorted[lower]
	}

	frac := idx - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

// ApplyBaseline shifts every score's total so that 0 means replacement
// level. The baseline is the percentile-p total of the pool's own rows,
// computed once per pool group and subtracted from every target row in
// that group. A group with no pool totals shifts by 0.
func ApplyBaseline(scores ScoreSet, pool *Pool, percentile float64) {
	if pool == nil {
		return
	}

	baselines := make(map[player.Position]float64, len(pool.Groups))
	for pos, group := range pool.Groups {
		totals := make([]float64, 0, len(group))
		for _, r := range group {
			if s, ok := scores[r.ID]; ok {
				totals = append(totals, s.Total)
			}
		}
		baselines[pos] = Percentile(totals, percentile)
	}

	for _, s := range scores {
		key := s.Position
		if !pool.Grouped {
			key = player.PositionNone
		}
		if baseline, ok := baselines[key]; ok {
			s.Total -= baseline
		}
	}
}
