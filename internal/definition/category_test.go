package definition

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/kore/internal/ast"
	tu "github.com/roach88/kore/internal/testutil"
)

func TestCategory(t *testing.T) {
	m := tu.Module("CATEGORIES").
		Sort("SortInt", "INT.Int").
		Sort("SortMap", "MAP.Map").
		Sort("SortArray", "ARRAY.Array").
		Sort("SortMInt", "MINT.MInt").
		Sort("SortWidth", "BITS.32").
		Sort("SortK", "").
		Build()
	d := New()
	d.addModule(m)

	tests := []struct {
		sort     string
		expected ast.ValueType
	}{
		{"SortInt", ast.ValueType{Cat: ast.CategoryInt}},
		{"SortMap", ast.ValueType{Cat: ast.CategoryMap}},
		{"SortArray", ast.ValueType{Cat: ast.CategoryList}},
		{"SortK", ast.ValueType{Cat: ast.CategorySymbol}},
		{"SortUndeclared", ast.ValueType{Cat: ast.CategorySymbol}},
		{"SortMInt{SortBits64}", ast.ValueType{Cat: ast.CategoryMInt, Bits: 64}},
		{"SortMInt{SortWidth}", ast.ValueType{Cat: ast.CategoryMInt, Bits: 32}},
	}

	for _, tt := range tests {
		t.Run(tt.sort, func(t *testing.T) {
			assert.Equal(t, tt.expected, d.Category(tu.S(tt.sort)))
		})
	}
}

func TestCategoryExplicitWins(t *testing.T) {
	d := New()
	d.addModule(tu.Module("M").Sort("SortInt", "INT.Int").Build())

	s := ast.NewCompositeSort("SortInt")
	s.Category = ast.ValueType{Cat: ast.CategoryBool}
	assert.Equal(t, ast.ValueType{Cat: ast.CategoryBool}, d.Category(s))
}

func TestCategoryVariable(t *testing.T) {
	d := New()
	assert.Equal(t, ast.ValueType{}, d.Category(tu.S("S")))
}
