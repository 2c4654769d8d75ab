package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/kore/internal/ir"
)

// createTestStore opens a store in a temporary directory that is closed
// when the test finishes.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

// testSnapshot is a small snapshot with every field populated.
func testSnapshot() *ir.Snapshot {
	return &ir.Snapshot{
		IRVersion: ir.IRVersion,
		Symbols: []ir.SymbolEntry{
			{Tag: 0, Name: "dotk", Text: "dotk{}", Signature: "dotk{}() : SortK{}", Layout: 1, Header: "0x40000000000000"},
			{Tag: 1, Name: "inj", Text: "inj{SortInt{}, SortKItem{}}", Signature: "inj{SortInt{}, SortKItem{}}(SortInt{}) : SortKItem{}", Layout: 2, Header: "0x80000000000001"},
			{Tag: 2, Name: "kseq", Text: "kseq{}", Signature: "kseq{}(SortKItem{}, SortK{}) : SortK{}", Layout: 3, Header: "0xc0000000000002"},
		},
		Polymorphic: []ir.RangeEntry{{Text: "inj{From, To}", FirstTag: 1, LastTag: 1}},
		LayoutCount: 3,
		Axioms: []ir.AxiomEntry{
			{Ordinal: 0, Retained: true},
			{Ordinal: 1, Retained: false},
		},
		Relations: ir.Relations{
			Supersorts:   map[string][]string{"SortInt{}": {"SortInt{}", "SortKItem{}"}},
			Subsorts:     map[string][]string{"SortKItem{}": {"SortInt{}", "SortKItem{}"}},
			Overloads:    map[string][]string{"inj{SortInt{}, SortKItem{}}": {"inj{SortInt{}, SortKItem{}}"}},
			SortContains: map[string][]string{"SortK{}": {"SortK{}", "SortKItem{}"}},
		},
		HookedSorts:     map[string]string{"INT.Int": "SortInt{}"},
		FreshFunctions:  map[string]string{"SortInt": "freshInt{}"},
		InjectionSymbol: "inj{From, To}",
	}
}
