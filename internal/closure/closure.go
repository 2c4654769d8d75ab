package closure

import (
	"cmp"
	"maps"
	"slices"
)

// Set is an unordered set of nodes.
type Set[N comparable] map[N]struct{}

// NewSet returns a set holding the given nodes.
func NewSet[N comparable](nodes ...N) Set[N] {
	s := make(Set[N], len(nodes))
	for _, n := range nodes {
		s[n] = struct{}{}
	}
	return s
}

// Add inserts n into the set.
func (s Set[N]) Add(n N) {
	s[n] = struct{}{}
}

// Has reports whether n is in the set.
func (s Set[N]) Has(n N) bool {
	_, ok := s[n]
	return ok
}

// Relation maps each node to the set of nodes it is directly related to.
type Relation[N comparable] map[N]Set[N]

// Add records the edge from → to, creating the entry for from if needed.
func (r Relation[N]) Add(from, to N) {
	r.Touch(from).Add(to)
}

// Touch returns the set for n, creating an empty entry if none exists.
func (r Relation[N]) Touch(n N) Set[N] {
	s, ok := r[n]
	if !ok {
		s = make(Set[N])
		r[n] = s
	}
	return s
}

// Contains reports whether the relation holds the edge from → to.
func (r Relation[N]) Contains(from, to N) bool {
	return r[from].Has(to)
}

// Transitive returns the transitive closure of r: for every keyed node n the
// result holds all nodes reachable from n by one or more edges. n itself is
// only included when it lies on a cycle.
func Transitive[N comparable](r Relation[N]) Relation[N] {
	result := make(Relation[N], len(r))
	for n := range r {
		result[n] = reachable(r, n)
	}
	return result
}

// reachable walks r from the direct neighbors of start.
func reachable[N comparable](r Relation[N], start N) Set[N] {
	seen := make(Set[N])
	stack := make([]N, 0, len(r[start]))
	for next := range r[start] {
		stack = append(stack, next)
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen.Has(n) {
			continue
		}
		seen.Add(n)
		for next := range r[n] {
			if !seen.Has(next) {
				stack = append(stack, next)
			}
		}
	}
	return seen
}

// Reflexive returns r with every keyed node related to itself. Nodes that
// only appear as targets get no entry.
func Reflexive[N comparable](r Relation[N]) Relation[N] {
	result := make(Relation[N], len(r))
	for n, related := range r {
		s := make(Set[N], len(related)+1)
		for m := range related {
			s.Add(m)
		}
		s.Add(n)
		result[n] = s
	}
	return result
}

// Sorted returns the members of s in ascending order.
func Sorted[N cmp.Ordered](s Set[N]) []N {
	return slices.Sorted(maps.Keys(s))
}
