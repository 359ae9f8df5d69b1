package player

import (
	"puckval/domain/core"
)

// Position is the grouping category used for replacement pools.
// Skater datasets use F and D; datasets without meaningful grouping
// leave it unset.
type Position string

const (
	PositionForward Position = "F"
	PositionDefense Position = "D"
	PositionNone    Position = ""
)

// Record is one player's season line in the canonical schema.
// Stats holds category -> raw value; a missing key means the source had
// no value for that category, which is not the same as zero.
type Record struct {
	ID       core.PlayerID      `json:"id"`
	Name     string             `json:"name"`
	Position Position           `json:"position"`
	Usage    float64            `json:"usage"` // ice time or equivalent, used only for pool ranking
	Stats    map[string]float64 `json:"stats"`
	Rostered *bool              `json:"rostered,omitempty"` // nil until the caller populates roster flags
}

// Stat returns the raw value for a category and whether it is present.
func (r Record) Stat(category string) (float64, bool) {
	v, ok := r.Stats[category]
	return v, ok
}

// StatTable is a canonical table snapshot. It is refreshed wholesale on
// each data load; rows are never mutated in place after construction.
type StatTable struct {
	Rows []Record

	byID map[core.PlayerID]int
}

// NewStatTable builds a table and its id index. Row ids must be unique
// within a snapshot; the adapter enforces that before construction.
func NewStatTable(rows []Record) *StatTable {
	t := &StatTable{
		Rows: rows,
		byID: make(map[core.PlayerID]int, len(rows)),
	}
	for i, r := range rows {
		t.byID[r.ID] = i
	}
	return t
}

// Len returns the number of rows.
func (t *StatTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// IsEmpty checks whether the table has no rows.
func (t *StatTable) IsEmpty() bool { return t.Len() == 0 }

// ByID looks up a row by player id. Names are not unique, ids are; any
// lookup that needs precision goes through here.
func (t *StatTable) ByID(id core.PlayerID) (Record, bool) {
	if t == nil {
		return Record{}, false
	}
	i, ok := t.byID[id]
	if !ok {
		return Record{}, false
	}
	return t.Rows[i], true
}

// CategoryValues collects every present raw value for a category across
// the table, in row order.
func (t *StatTable) CategoryValues(category string) []float64 {
	if t == nil {
		return nil
	}
	values := make([]float64, 0, len(t.Rows))
	for _, r := range t.Rows {
		if v, ok := r.Stat(category); ok {
			values = append(values, v)
		}
	}
	return values
}

// Categories returns the category keys present anywhere in the table,
// preserving first-seen row order.
func (t *StatTable) Categories() []string {
	if t == nil {
		return nil
	}
	seen := make(map[string]bool)
	keys := make([]string, 0)
	for _, r := range t.Rows {
		for k := range r.Stats {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	return keys
}
