package compare

import (
	"sort"

	"puckval/domain/core"
	"puckval/domain/player"
	"puckval/domain/scoring"

	"gonum.org/v1/gonum/stat"
)

// Mode selects which values feed the side aggregates.
type Mode string

const (
	// ModeStandardized aggregates baseline-shifted z-scores.
	ModeStandardized Mode = "standardized"
	// ModeRaw aggregates raw category values.
	ModeRaw Mode = "raw"
)

// Outcome tags the overall winner of a comparison. All three outcomes
// are representable and distinguishable.
type Outcome string

const (
	OutcomeSideA Outcome = "side_a"
	OutcomeSideB Outcome = "side_b"
	OutcomeTie   Outcome = "tie"
)

// Request names the two sides and the dimensions to compare on. Sides
// may overlap: the same player can appear on both, matching casual
// trade-comparison semantics, and no dedup is applied within a side.
type Request struct {
	SideA      []core.PlayerID    `json:"side_a"`
	SideB      []core.PlayerID    `json:"side_b"`
	Categories player.CategorySet `json:"categories"`
	Mode       Mode               `json:"mode"`
}

// SideResult is one side's per-category view.
type SideResult struct {
	Players      []core.PlayerID    `json:"players"`
	Aggregates   map[string]float64 `json:"aggregates"`
	Percentiles  map[string]float64 `json:"percentiles"`
	CategoryWins int                `json:"category_wins"`
}

// Result is the full structured comparison output.
type Result struct {
	SideA    SideResult `json:"side_a"`
	SideB    SideResult `json:"side_b"`
	Ties     int        `json:"ties"`
	Outcome  Outcome    `json:"outcome"`
	Warnings []string   `json:"warnings,omitempty"`
}

// Compare aggregates each side per category, ranks the aggregates
// against the table's distribution, and tallies category wins with
// strict inequality. A side with zero selected players aggregates to a
// zero vector; that is a labeled warning, not an error.
func Compare(table *player.StatTable, scores scoring.ScoreSet, req Request) (*Result, error) {
	if err := req.Categories.Validate(); err != nil {
		return nil, err
	}
	mode := req.Mode
	if mode == "" {
		mode = ModeStandardized
	}

	result := &Result{
		SideA: SideResult{Players: req.SideA},
		SideB: SideResult{Players: req.SideB},
	}
	if len(req.SideA) == 0 {
		result.Warnings = append(result.Warnings, "side A has no selected players; aggregates are zero")
	}
	if len(req.SideB) == 0 {
		result.Warnings = append(result.Warnings, "side B has no selected players; aggregates are zero")
	}

	aggA, err := sideAggregates(table, scores, req.SideA, req.Categories, mode)
	if err != nil {
		return nil, err
	}
	aggB, err := sideAggregates(table, scores, req.SideB, req.Categories, mode)
	if err != nil {
		return nil, err
	}
	result.SideA.Aggregates = aggA
	result.SideB.Aggregates = aggB

	result.SideA.Percentiles = make(map[string]float64, len(req.Categories))
	result.SideB.Percentiles = make(map[string]float64, len(req.Categories))
	for _, cat := range req.Categories {
		dist := distribution(table, scores, cat, mode)
		result.SideA.Percentiles[cat] = aggregateRankPercentile(aggA[cat], dist)
		result.SideB.Percentiles[cat] = aggregateRankPercentile(aggB[cat], dist)
	}

	for _, cat := range req.Categories {
		switch {
		case aggA[cat] > aggB[cat]:
			result.SideA.CategoryWins++
		case aggB[cat] > aggA[cat]:
			result.SideB.CategoryWins++
		default:
			result.Ties++
		}
	}

	switch {
	case result.SideA.CategoryWins > result.SideB.CategoryWins:
		result.Outcome = OutcomeSideA
	case result.SideB.CategoryWins > result.SideA.CategoryWins:
		result.Outcome = OutcomeSideB
	default:
		result.Outcome = OutcomeTie
	}

	return result, nil
}

// sideAggregates sums each category over the side's members. Raw mode
// reads the table, standardized mode reads the score set; a member
// missing a raw value contributes nothing for that category. Unknown
// ids are an error: names are ambiguous, ids are not.
func sideAggregates(table *player.StatTable, scores scoring.ScoreSet, side []core.PlayerID, categories player.CategorySet, mode Mode) (map[string]float64, error) {
	agg := make(map[string]float64, len(categories))
	for _, cat := range categories {
		agg[cat] = 0
	}

	for _, id := range side {
		row, ok := table.ByID(id)
		if !ok {
			return nil, core.NewNotFoundError("player", id.String())
		}
		for _, cat := range categories {
			switch mode {
			case ModeRaw:
				if v, present := row.Stat(cat); present {
					agg[cat] += v
				}
			default:
				if s, scored := scores[id]; scored {
					agg[cat] += s.PerCategory[cat]
				}
			}
		}
	}
	return agg, nil
}

// distribution collects the full table's per-player values for one
// category under the given mode.
func distribution(table *player.StatTable, scores scoring.ScoreSet, category string, mode Mode) []float64 {
	if mode == ModeRaw {
		return table.CategoryValues(category)
	}
	values := make([]float64, 0, table.Len())
	for _, r := range table.Rows {
		if s, ok := scores[r.ID]; ok {
			values = append(values, s.PerCategory[category])
		}
	}
	return values
}

// aggregateRankPercentile ranks a side's summed aggregate within the
// per-player distribution: the fraction of rows whose value is <= the
// aggregate, scaled to 0-100. Comparing a sum against per-player values
// is statistically loose but deliberate; it stays behind this one
// function so a future redesign (e.g. per-member average) replaces it
// in one place.
func aggregateRankPercentile(aggregate float64, values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return stat.CDF(aggregate, stat.Empirical, sorted, nil) * 100
}
