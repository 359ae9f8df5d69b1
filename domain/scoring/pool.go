package scoring

import (
	"math"
	"sort"

	"puckval/domain/core"
	"puckval/domain/player"
)

// PolicyKind selects how the replacement pool is drawn from the table.
type PolicyKind string

const (
	// PolicyTopUsage keeps the top-N rows per position group, ranked by
	// the usage metric. N comes from roster math.
	PolicyTopUsage PolicyKind = "usage"
	// PolicyRankCutoff keeps every row ranked strictly below the roster
	// cutoff on a designated primary stat, with no position grouping.
	PolicyRankCutoff PolicyKind = "rank"
	// PolicyUnrostered keeps rows whose rostered flag is false.
	PolicyUnrostered PolicyKind = "unrostered"
)

// PoolPolicy carries the policy choice and its sizing inputs.
type PoolPolicy struct {
	Kind         PolicyKind `json:"kind"`
	Teams        int        `json:"teams"`
	SlotsPerTeam int        `json:"slots_per_team"`
	DepthBuffer  float64    `json:"depth_buffer"`
	RankStat     string     `json:"rank_stat,omitempty"` // primary stat for PolicyRankCutoff
}

// PoolSize is the roster-math pool size: floor(teams * slots * (1 + buffer)).
func PoolSize(teams, slots int, buffer float64) int {
	return int(math.Floor(float64(teams*slots) * (1 + buffer)))
}

// Pool is the reference subset standardization statistics are computed
// against. Grouped pools keep one slice per position; ungrouped policies
// store everything under PositionNone.
type Pool struct {
	Groups  map[player.Position][]player.Record
	Grouped bool
}

// GroupFor returns the reference rows for a target row's position. For
// ungrouped pools every position shares the single group.
func (p *Pool) GroupFor(pos player.Position) []player.Record {
	if p == nil {
		return nil
	}
	if !p.Grouped {
		return p.Groups[player.PositionNone]
	}
	return p.Groups[pos]
}

// Size returns the total row count across groups.
func (p *Pool) Size() int {
	if p == nil {
		return 0
	}
	n := 0
	for _, g := range p.Groups {
		n += len(g)
	}
	return n
}

// SelectPool applies the policy to a canonical table. An empty table
// yields an empty pool, which is a valid degenerate result: every
// standardized value downstream becomes 0.
func SelectPool(table *player.StatTable, policy PoolPolicy) (*Pool, error) {
	switch policy.Kind {
	case PolicyTopUsage:
		return selectTopUsage(table, policy), nil
	case PolicyRankCutoff:
		return selectRankCutoff(table, policy), nil
	case PolicyUnrostered:
		return selectUnrostered(table)
	default:
		return nil, core.ErrUnknownPolicy
	}
}

// selectTopUsage groups rows by position and keeps the top-N of each
// group by usage. Ties break by stable input order; a group smaller
// than N is kept whole. A non-positive N empties every group.
func selectTopUsage(table *player.StatTable, policy PoolPolicy) *Pool {
	n := PoolSize(policy.Teams, policy.SlotsPerTeam, policy.DepthBuffer)

	groups := make(map[player.Position][]player.Record)
	for _, r := range table.Rows {
		groups[r.Position] = append(groups[r.Position], r)
	}

	for pos, rows := range groups {
		sorted := make([]player.Record, len(rows))
		copy(sorted, rows)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Usage > sorted[j].Usage
		})
		switch {
		case n <= 0:
			sorted = nil
		case n < len(sorted):
			sorted = sorted[:n]
		}
		groups[pos] = sorted
	}

	return &Pool{Groups: groups, Grouped: true}
}

// selectRankCutoff sorts the whole table descending by the primary stat
// and keeps rows ranked strictly below the roster cutoff. Rows missing
// the primary stat sort below rows that have it. A cutoff at or below 0
// keeps the whole table: every row ranks below it.
func selectRankCutoff(table *player.StatTable, policy PoolPolicy) *Pool {
	cutoff := policy.Teams * policy.SlotsPerTeam
	if cutoff < 0 {
		cutoff = 0
	}

	sorted := make([]player.Record, len(table.Rows))
	copy(sorted, table.Rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		vi, oki := sorted[i].Stat(policy.RankStat)
		vj, okj := sorted[j].Stat(policy.RankStat)
		if oki != okj {
			return oki
		}
		return vi > vj
	})

	var rows []player.Record
	if cutoff < len(sorted) {
		rows = sorted[cutoff:]
	}

	return &Pool{
		Groups: map[player.Position][]player.Record{player.PositionNone: rows},
	}
}

// selectUnrostered keeps rows flagged as not rostered. The flag must be
// populated on every row before invocation.
func selectUnrostered(table *player.StatTable) (*Pool, error) {
	rows := make([]player.Record, 0)
	for _, r := range table.Rows {
		if r.Rostered == nil {
			return nil, core.NewMissingAttributeError("rostered")
		}
		if !*r.Rostered {
			rows = append(rows, r)
		}
	}
	return &Pool{
		Groups: map[player.Position][]player.Record{player.PositionNone: rows},
	}, nil
}
