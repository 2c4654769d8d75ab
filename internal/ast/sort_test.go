package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompositeSortString(t *testing.T) {
	m := NewCompositeSort("SortMap", NewCompositeSort("SortKItem"), NewSortVariable("V"))
	assert.Equal(t, "SortMap{SortKItem{}, V}", m.String())
	assert.Equal(t, "SortInt{}", NewCompositeSort("SortInt").String())
}

func TestSortIsConcrete(t *testing.T) {
	assert.True(t, NewCompositeSort("SortInt").IsConcrete())
	assert.False(t, NewSortVariable("S").IsConcrete())
	assert.False(t, NewCompositeSort("SortList", NewSortVariable("S")).IsConcrete())
	assert.False(t, NewCompositeSort("A", NewCompositeSort("B", NewSortVariable("S"))).IsConcrete())
}

func TestSortSubstitute(t *testing.T) {
	s := NewCompositeSort("SortList", NewSortVariable("S"))
	got := s.Substitute(Substitution{"S": NewCompositeSort("SortInt")})

	assert.Equal(t, "SortList{SortInt{}}", got.String())
	assert.True(t, got.IsConcrete())
	assert.Equal(t, "SortList{S}", s.String(), "substitution must not mutate the original")

	unbound := NewSortVariable("T")
	assert.Same(t, unbound, unbound.Substitute(Substitution{"S": NewCompositeSort("X")}))
}

func TestSortSubstituteKeepsCategory(t *testing.T) {
	s := &CompositeSort{Name: "SortMInt", Args: []Sort{NewSortVariable("W")}, Category: ValueType{Cat: CategoryMInt, Bits: 64}}
	got := s.Substitute(Substitution{"W": NewCompositeSort("SortBits64")}).(*CompositeSort)
	assert.Equal(t, ValueType{Cat: CategoryMInt, Bits: 64}, got.Category)
}

func TestEqualAndHashSorts(t *testing.T) {
	a := NewCompositeSort("SortMap", NewCompositeSort("K"), NewCompositeSort("V"))
	b := NewCompositeSort("SortMap", NewCompositeSort("K"), NewCompositeSort("V"))
	c := NewCompositeSort("SortMap", NewCompositeSort("K"), NewSortVariable("V"))

	assert.True(t, EqualSorts(a, b))
	assert.Equal(t, HashSort(a), HashSort(b))
	assert.False(t, EqualSorts(a, c))
	assert.NotEqual(t, HashSort(a), HashSort(c))

	assert.False(t, EqualSorts(NewSortVariable("S"), NewCompositeSort("S")))
	assert.NotEqual(t, SortKey(NewSortVariable("S")), SortKey(NewCompositeSort("S")))
}

func TestCategoryForHook(t *testing.T) {
	tests := []struct {
		hook string
		want ValueType
	}{
		{"MAP.Map", ValueType{Cat: CategoryMap}},
		{"RANGEMAP.RangeMap", ValueType{Cat: CategoryRangeMap}},
		{"LIST.List", ValueType{Cat: CategoryList}},
		{"ARRAY.Array", ValueType{Cat: CategoryList}},
		{"SET.Set", ValueType{Cat: CategorySet}},
		{"INT.Int", ValueType{Cat: CategoryInt}},
		{"FLOAT.Float", ValueType{Cat: CategoryFloat}},
		{"BUFFER.StringBuffer", ValueType{Cat: CategoryStringBuffer}},
		{"BOOL.Bool", ValueType{Cat: CategoryBool}},
		{"KVAR.KVar", ValueType{Cat: CategoryVariable}},
		{"MINT.MInt", ValueType{Cat: CategoryMInt, Bits: 32}},
		{"STRING.String", ValueType{Cat: CategorySymbol}},
		{"", ValueType{Cat: CategorySymbol}},
	}
	for _, tt := range tests {
		t.Run(tt.hook, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryForHook(tt.hook, 32))
		})
	}
}

func TestLayoutCode(t *testing.T) {
	assert.Equal(t, "4", ValueType{Cat: CategoryInt}.LayoutCode())
	assert.Equal(t, "0", ValueType{Cat: CategorySymbol}.LayoutCode())
	assert.Equal(t, "_64_", ValueType{Cat: CategoryMInt, Bits: 64}.LayoutCode())
	assert.Panics(t, func() { _ = ValueType{}.LayoutCode() })
}

func TestParseBits(t *testing.T) {
	n, ok := ParseBits("SortBits64")
	assert.True(t, ok)
	assert.Equal(t, uint64(64), n)

	_, ok = ParseBits("SortBits")
	assert.False(t, ok)
}
