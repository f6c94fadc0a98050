package selekt

import "selekt/internal/tree"

// Set is an unordered set of items
type Set map[tree.Node]struct{}

// NewSet creates a set holding items
func NewSet(items ...tree.Node) Set {
	s := make(Set, len(items))
	for _, n := range items {
		s[n] = struct{}{}
	}
	return s
}

// Has reports whether n is in the set
func (s Set) Has(n tree.Node) bool {
	_, ok := s[n]
	return ok
}

// Clone returns an independent copy
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for n := range s {
		out[n] = struct{}{}
	}
	return out
}

// Ordered returns the members of s in the order they appear in siblings.
// Members missing from siblings are left out.
func (s Set) Ordered(siblings []tree.Node) []tree.Node {
	if len(s) == 0 {
		return nil
	}
	out := make([]tree.Node, 0, len(s))
	for _, n := range siblings {
		if s.Has(n) {
			out = append(out, n)
		}
	}
	return out
}

// Store holds the selection and the range pivot of one engine, and keeps the
// selected marker on items in sync with membership.
type Store struct {
	marker string
	set    Set
	pivot  tree.Node
}

// NewStore creates an empty store that toggles marker on its items
func NewStore(marker string) *Store {
	return &Store{
		marker: marker,
		set:    make(Set),
	}
}

// Has reports whether n is selected
func (s *Store) Has(n tree.Node) bool {
	return s.set.Has(n)
}

// Len returns the number of selected items
func (s *Store) Len() int {
	return len(s.set)
}

// Pivot returns the range anchor, nil if none
func (s *Store) Pivot() tree.Node {
	return s.pivot
}

// Set returns a copy of the current selection
func (s *Store) Set() Set {
	return s.set.Clone()
}

// Ordered returns the selection in sibling order
func (s *Store) Ordered(siblings []tree.Node) []tree.Node {
	return s.set.Ordered(siblings)
}

// Commit replaces the selection. Items leaving the set lose the marker and
// items in next gain it.
func (s *Store) Commit(next Set, pivot tree.Node) {
	for n := range s.set {
		if !next.Has(n) {
			n.SetMarker(s.marker, false)
		}
	}
	for n := range next {
		n.SetMarker(s.marker, true)
	}
	s.set = next.Clone()
	s.pivot = pivot
}

// Clear empties the selection and the pivot and returns how many items were selected.
func (s *Store) Clear() int {
	n := len(s.set)
	for item := range s.set {
		item.SetMarker(s.marker, false)
	}
	s.set = make(Set)
	s.pivot = nil
	return n
}

// Prune drops members, and the pivot, that are no longer among eligible.
func (s *Store) Prune(eligible []tree.Node) {
	keep := NewSet(eligible...)
	for n := range s.set {
		if !keep.Has(n) {
			n.SetMarker(s.marker, false)
			delete(s.set, n)
		}
	}
	if s.pivot != nil && !keep.Has(s.pivot) {
		s.pivot = nil
	}
}
