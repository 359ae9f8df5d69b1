package scoring

import (
	"sort"

	"puckval/domain/player"
)

// Config carries everything a scoring run needs. The core reads no
// ambient state: a ScoreSet is a function of (table, Config) and nothing
// else.
type Config struct {
	Categories            player.CategorySet `json:"categories"`
	Policy                PoolPolicy         `json:"policy"`
	Missing               MissingValuePolicy `json:"missing"`
	ReplacementPercentile float64            `json:"replacement_percentile"` // 0-100
}

// ComputeScores runs the full pipeline: pool selection, standardization
// against pool-derived moments, then the replacement-level baseline
// shift. The category set is validated before any computation starts.
func ComputeScores(table *player.StatTable, cfg Config) (ScoreSet, error) {
	if err := cfg.Categories.Validate(); err != nil {
		return nil, err
	}

	missing := cfg.Missing
	if missing == "" {
		missing = MissingOmit
	}

	pool, err := SelectPool(table, cfg.Policy)
	if err != nil {
		return nil, err
	}

	scores := Standardize(table, pool, cfg.Categories, missing)
	ApplyBaseline(scores, pool, cfg.ReplacementPercentile)
	return scores, nil
}

// Ranked returns scores ordered by total descending, ties by player id
// so output order is deterministic.
func (s ScoreSet) Ranked() []*Score {
	out := make([]*Score, 0, len(s))
	for _, sc := range s {
		out = append(out, sc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}
