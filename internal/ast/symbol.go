package ast

import (
	"fmt"
	"strings"
)

// Symbol is a symbol occurrence or the symbol of a declaration.
//
// FormalArguments are the sort parameters written between braces. Arguments
// and Sort are the argument and return sorts; for occurrences they are filled
// in by Instantiate. FirstTag, LastTag and Layout are assigned during
// preprocessing.
type Symbol struct {
	Name            string
	FormalArguments []Sort
	Arguments       []Sort
	Sort            Sort

	FirstTag uint32
	LastTag  uint32
	Layout   uint16
}

// NewSymbol creates a symbol with the given formal arguments.
func NewSymbol(name string, formal ...Sort) *Symbol {
	return &Symbol{Name: name, FormalArguments: formal}
}

// AddArgument appends an argument sort.
func (s *Symbol) AddArgument(sort Sort) {
	s.Arguments = append(s.Arguments, sort)
}

// AddFormalArgument appends a formal (sort parameter) argument.
func (s *Symbol) AddFormalArgument(sort Sort) {
	s.FormalArguments = append(s.FormalArguments, sort)
}

// SetSort sets the return sort.
func (s *Symbol) SetSort(sort Sort) {
	s.Sort = sort
}

// IsBuiltin reports whether the symbol is a matching-logic connective such as
// \and or \rewrites.
func (s *Symbol) IsBuiltin() bool {
	return strings.HasPrefix(s.Name, `\`)
}

// IsConcrete reports whether no sort variable occurs in the formal
// arguments, the arguments or the return sort.
func (s *Symbol) IsConcrete() bool {
	for _, sorts := range [][]Sort{s.FormalArguments, s.Arguments} {
		for _, sort := range sorts {
			if !sort.IsConcrete() {
				return false
			}
		}
	}
	return s.Sort == nil || s.Sort.IsConcrete()
}

// IsPolymorphic reports whether every formal argument is free, so that the
// symbol's representation does not depend on how its parameters are
// instantiated.
func (s *Symbol) IsPolymorphic() bool {
	for _, sort := range s.FormalArguments {
		if sort.IsConcrete() {
			return false
		}
	}
	return true
}

// Instantiate resolves the argument and return sorts of an occurrence by
// binding the declaration's sort variables to the occurrence's formal
// arguments.
func (s *Symbol) Instantiate(decl *SymbolDeclaration) error {
	vars := decl.ObjectSortVariables()
	if len(vars) > len(s.FormalArguments) {
		return fmt.Errorf("symbol %s: declaration binds %d sort variables, occurrence supplies %d",
			s.Name, len(vars), len(s.FormalArguments))
	}
	subst := make(Substitution, len(vars))
	for i, v := range vars {
		subst[v.Name] = s.FormalArguments[i]
	}
	s.Arguments = substituteAll(decl.Symbol.Arguments, subst)
	if decl.Symbol.Sort != nil {
		s.Sort = decl.Symbol.Sort.Substitute(subst)
	}
	return nil
}

// String returns the canonical textual form name{F1, F2}.
func (s *Symbol) String() string {
	var b strings.Builder
	b.WriteString(s.Name)
	b.WriteByte('{')
	writeSorts(&b, s.FormalArguments)
	b.WriteByte('}')
	return b.String()
}

// Signature identifies an instantiation. Two occurrences with equal
// signatures receive the same tag.
func (s *Symbol) Signature() string {
	var b strings.Builder
	b.WriteString(s.String())
	b.WriteByte('(')
	writeSorts(&b, s.Arguments)
	b.WriteByte(')')
	if s.Sort != nil {
		b.WriteString(" : ")
		b.WriteString(s.Sort.String())
	}
	return b.String()
}

// LayoutKey summarizes, in argument order, the value type of every argument
// followed by the return sort. category resolves the value type of a
// concrete sort.
func (s *Symbol) LayoutKey(category func(Sort) ValueType) string {
	var b strings.Builder
	for _, arg := range s.Arguments {
		b.WriteString(category(arg).LayoutCode())
	}
	b.WriteByte(':')
	if s.Sort != nil {
		b.WriteString(category(s.Sort).LayoutCode())
	}
	return b.String()
}

// EqualSymbols compares two symbols by name and formal arguments.
func EqualSymbols(a, b *Symbol) bool {
	if a.Name != b.Name || len(a.FormalArguments) != len(b.FormalArguments) {
		return false
	}
	for i := range a.FormalArguments {
		if !EqualSorts(a.FormalArguments[i], b.FormalArguments[i]) {
			return false
		}
	}
	return true
}

// clone copies the symbol's signature with s applied to every sort. Tag and
// layout are not copied.
func (s *Symbol) clone(subst Substitution) *Symbol {
	out := &Symbol{
		Name:            s.Name,
		FormalArguments: substituteAll(s.FormalArguments, subst),
		Arguments:       substituteAll(s.Arguments, subst),
	}
	if s.Sort != nil {
		out.Sort = s.Sort.Substitute(subst)
	}
	return out
}
