package player

import (
	"puckval/domain/core"
)

// CategorySet is the ordered set of categories active for a scoring or
// comparison run. Order is caller order; duplicates are dropped.
type CategorySet []string

// NewCategorySet builds a set preserving order and dropping duplicates.
func NewCategorySet(keys ...string) CategorySet {
	seen := make(map[string]bool, len(keys))
	set := make(CategorySet, 0, len(keys))
	for _, k := range keys {
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		set = append(set, k)
	}
	return set
}

// Validate rejects an empty set. Every scoring operation checks this
// before any computation starts.
func (s CategorySet) Validate() error {
	if len(s) == 0 {
		return core.ErrEmptyCategorySet
	}
	return nil
}

// Intersect keeps only categories that appear in the given table,
// preserving set order. Mirrors offering checkboxes only for columns
// that exist in the loaded file.
func (s CategorySet) Intersect(t *StatTable) CategorySet {
	present := make(map[string]bool)
	for _, k := range t.Categories() {
		present[k] = true
	}
	out := make(CategorySet, 0, len(s))
	for _, k := range s {
		if present[k] {
			out = append(out, k)
		}
	}
	return out
}

// Contains reports membership.
func (s CategorySet) Contains(key string) bool {
	for _, k := range s {
		if k == key {
			return true
		}
	}
	return false
}
