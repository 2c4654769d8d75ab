// Package closure computes transitive and reflexive closures of relations
// given as adjacency maps (node → set of directly related nodes).
//
// Both operations are pure: the input relation is never mutated and the
// result shares no sets with it. Transitive keeps the keys of its input:
// a node that appears solely as a neighbor gets no entry. Reflexive keeps
// them too, adding each keyed node to its own set.
package closure
