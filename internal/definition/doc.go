// Package definition assembles KORE modules into a Definition and runs the
// two semantic passes consumed by code generation and the runtime:
//
//   - Precompute derives the sort lattice (Supersorts/Subsorts), the
//     Overload relation and the SortContains relation.
//   - Preprocess expands aliases, drops axioms the backend does not need and
//     assigns every concrete symbol instantiation a tag and a layout id.
//
// Each pass runs exactly once, Precompute first. Neither is idempotent:
// running Preprocess again would restart its counters against a symbol
// table that has already been rewritten, so a second call is rejected with
// ErrPassOrder.
//
// Sorts and symbols are interned into arenas and addressed by SortID and
// SymbolID in every derived table. Sort ids are structural (two equal sorts
// share an id); symbol ids follow object identity, because distinct
// occurrences of the same symbol carry their own tag assignment. The
// Overload relation is the exception: its nodes are keyed by symbol text,
// since overload attributes name symbols by printing them.
//
// A Definition is not safe for concurrent mutation. Once Preprocess returns
// it is only read, and may be shared between goroutines.
package definition
