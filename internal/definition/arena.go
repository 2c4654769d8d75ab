package definition

import (
	"github.com/roach88/kore/internal/ast"
)

// SortID addresses an interned sort. Zero is never assigned.
type SortID uint32

// SymbolID addresses an interned symbol object. Zero is never assigned.
type SymbolID uint32

// NoSymbol is the zero SymbolID.
const NoSymbol SymbolID = 0

// sortArena interns sorts structurally.
type sortArena struct {
	sorts []ast.Sort
	index map[string]SortID
}

func newSortArena() sortArena {
	return sortArena{sorts: []ast.Sort{nil}, index: make(map[string]SortID)}
}

func (a *sortArena) intern(s ast.Sort) SortID {
	key := ast.SortKey(s)
	if id, ok := a.index[key]; ok {
		return id
	}
	id := SortID(len(a.sorts))
	a.sorts = append(a.sorts, s)
	a.index[key] = id
	return id
}

func (a *sortArena) lookup(s ast.Sort) (SortID, bool) {
	id, ok := a.index[ast.SortKey(s)]
	return id, ok
}

func (a *sortArena) get(id SortID) ast.Sort {
	if id == 0 || int(id) >= len(a.sorts) {
		return nil
	}
	return a.sorts[id]
}

// symbolArena interns symbol objects by identity. internText additionally
// maps every object with the same text name{F1, F2} to one id.
type symbolArena struct {
	symbols []*ast.Symbol
	index   map[*ast.Symbol]SymbolID
	text    map[string]SymbolID
}

func newSymbolArena() symbolArena {
	return symbolArena{
		symbols: []*ast.Symbol{nil},
		index:   make(map[*ast.Symbol]SymbolID),
		text:    make(map[string]SymbolID),
	}
}

func (a *symbolArena) internText(s *ast.Symbol) SymbolID {
	key := s.String()
	if id, ok := a.text[key]; ok {
		return id
	}
	id := a.intern(s)
	a.text[key] = id
	return id
}

func (a *symbolArena) intern(s *ast.Symbol) SymbolID {
	if id, ok := a.index[s]; ok {
		return id
	}
	id := SymbolID(len(a.symbols))
	a.symbols = append(a.symbols, s)
	a.index[s] = id
	return id
}

func (a *symbolArena) get(id SymbolID) *ast.Symbol {
	if id == NoSymbol || int(id) >= len(a.symbols) {
		return nil
	}
	return a.symbols[id]
}
