// Package selection tracks which stage items are selected and implements the
// rectangular lasso used to select several at once.
package selection

import (
	"sort"

	"github.com/example/stageplot/internal/stage"
)

// DefaultDeadZone is how far, in pixels, the pointer must travel from the
// press origin before a background drag becomes a lasso.
const DefaultDeadZone = 5

// Set is a set of item ids. The zero value is an empty set ready for use.
type Set struct {
	ids map[string]struct{}
}

// New returns a set holding ids.
func New(ids ...string) *Set {
	s := &Set{}
	s.Replace(ids)
	return s
}

// Has reports whether id is selected.
func (s *Set) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected ids.
func (s *Set) Len() int { return len(s.ids) }

// IDs returns the selected ids sorted so callers get a stable order.
func (s *Set) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// SelectOnly replaces the set with {id}.
func (s *Set) SelectOnly(id string) {
	s.ids = map[string]struct{}{id: {}}
}

// Toggle removes id when present and adds it otherwise. It reports whether
// id is selected afterwards.
func (s *Set) Toggle(id string) bool {
	if s.Has(id) {
		delete(s.ids, id)
		return false
	}
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
	s.ids[id] = struct{}{}
	return true
}

// Clear empties the set.
func (s *Set) Clear() { s.ids = nil }

// Replace sets the selection to exactly ids.
func (s *Set) Replace(ids []string) {
	s.ids = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
}

// Prune drops every id not present in items and returns the dropped ids.
func (s *Set) Prune(items []stage.Item) []string {
	live := make(map[string]struct{}, len(items))
	for _, it := range items {
		live[it.ID] = struct{}{}
	}
	var dropped []string
	for id := range s.ids {
		if _, ok := live[id]; !ok {
			dropped = append(dropped, id)
			delete(s.ids, id)
		}
	}
	sort.Strings(dropped)
	return dropped
}

// ApplyLassoResult sets the selection from a lasso pass. With additive the
// result is baseline ∪ candidates, otherwise exactly candidates.
func (s *Set) ApplyLassoResult(candidates, baseline []string, additive bool) {
	next := make(map[string]struct{}, len(candidates)+len(baseline))
	if additive {
		for _, id := range baseline {
			next[id] = struct{}{}
		}
	}
	for _, id := range candidates {
		next[id] = struct{}{}
	}
	s.ids = next
}
