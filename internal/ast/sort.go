package ast

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Sort is either a *SortVariable or a *CompositeSort.
type Sort interface {
	// IsConcrete reports whether the sort contains no sort variables.
	IsConcrete() bool
	// Substitute replaces sort variables bound in s.
	Substitute(s Substitution) Sort
	// String returns the canonical KORE form of the sort.
	String() string

	isSort()
}

// Substitution maps sort variable names to sorts.
type Substitution map[string]Sort

// SortVariable is a named sort placeholder.
type SortVariable struct {
	Name string
}

// NewSortVariable creates a sort variable.
func NewSortVariable(name string) *SortVariable {
	return &SortVariable{Name: name}
}

func (*SortVariable) isSort() {}

func (*SortVariable) IsConcrete() bool { return false }

func (v *SortVariable) Substitute(s Substitution) Sort {
	if bound, ok := s[v.Name]; ok {
		return bound
	}
	return v
}

func (v *SortVariable) String() string { return v.Name }

// CompositeSort is a sort constructor applied to argument sorts.
//
// Category is optional. When it is Uncomputed the category is derived from
// the hook of the sort's declaration.
type CompositeSort struct {
	Name     string
	Args     []Sort
	Category ValueType
}

// NewCompositeSort creates a composite sort.
func NewCompositeSort(name string, args ...Sort) *CompositeSort {
	return &CompositeSort{Name: name, Args: args}
}

func (*CompositeSort) isSort() {}

func (c *CompositeSort) IsConcrete() bool {
	for _, arg := range c.Args {
		if !arg.IsConcrete() {
			return false
		}
	}
	return true
}

func (c *CompositeSort) Substitute(s Substitution) Sort {
	if c.IsConcrete() {
		return c
	}
	args := make([]Sort, len(c.Args))
	for i, arg := range c.Args {
		args[i] = arg.Substitute(s)
	}
	return &CompositeSort{Name: c.Name, Args: args, Category: c.Category}
}

func (c *CompositeSort) String() string {
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteByte('{')
	writeSorts(&b, c.Args)
	b.WriteByte('}')
	return b.String()
}

func writeSorts(b *strings.Builder, sorts []Sort) {
	for i, s := range sorts {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(s.String())
	}
}

// EqualSorts compares two sorts structurally by name and arguments.
func EqualSorts(a, b Sort) bool {
	switch x := a.(type) {
	case *SortVariable:
		y, ok := b.(*SortVariable)
		return ok && x.Name == y.Name
	case *CompositeSort:
		y, ok := b.(*CompositeSort)
		if !ok || x.Name != y.Name || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !EqualSorts(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// HashSort is a structural hash consistent with EqualSorts.
func HashSort(s Sort) uint64 {
	return xxhash.Sum64String(sortKey(s))
}

// sortKey distinguishes a variable S from a nullary composite S{}.
func sortKey(s Sort) string {
	if v, ok := s.(*SortVariable); ok {
		return "$" + v.Name
	}
	return s.String()
}

// SortKey returns a string that is equal for two sorts exactly when
// EqualSorts holds.
func SortKey(s Sort) string {
	return sortKey(s)
}

func substituteAll(sorts []Sort, s Substitution) []Sort {
	if len(sorts) == 0 {
		return nil
	}
	out := make([]Sort, len(sorts))
	for i, sort := range sorts {
		out[i] = sort.Substitute(s)
	}
	return out
}
