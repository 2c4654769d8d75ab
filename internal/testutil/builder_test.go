package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/kore/internal/ast"
)

func TestModuleBuilder(t *testing.T) {
	m := Module("TEST").
		Sort("SortInt", "INT.Int").
		Sort("SortK", "").
		Symbol("inj{From, To}(From) : To", "sortInjection").
		Symbol("plus(SortInt, SortInt) : SortInt", "function", "hook=INT.add").
		Subsort("SortNat", "SortInt").
		Build()

	require.Len(t, m.Declarations, 5)

	intDecl, ok := m.Declarations[0].(*ast.SortDeclaration)
	require.True(t, ok)
	assert.True(t, intDecl.IsHooked())
	hook, _ := intDecl.Attributes().StringValue("hook")
	assert.Equal(t, "INT.Int", hook)

	kDecl := m.Declarations[1].(*ast.SortDeclaration)
	assert.False(t, kDecl.IsHooked())

	inj := m.Declarations[2].(*ast.SymbolDeclaration)
	assert.True(t, inj.Attributes().Has("sortInjection"))
	assert.Len(t, inj.ObjectSortVariables(), 2)

	plus := m.Declarations[3].(*ast.SymbolDeclaration)
	assert.True(t, plus.IsHooked())
	assert.True(t, plus.IsFunction())

	sub := m.Declarations[4].(*ast.AxiomDeclaration)
	att := sub.Attributes()["subsort"]
	require.NotNil(t, att)
	assert.Equal(t, "subsort{SortNat{}, SortInt{}}", att.Constructor.String())
	assert.False(t, sub.IsRequired())
}

func TestSortNamingRule(t *testing.T) {
	assert.True(t, S("SortInt").IsConcrete())
	assert.False(t, S("X").IsConcrete())
	assert.Equal(t, "SortMap{SortInt{}, V}", S("SortMap{SortInt, V}").String())
}

func TestApp(t *testing.T) {
	p := App("inj", []string{"SortInt", "SortKItem"}, Var("X", "SortInt"))
	assert.Equal(t, "inj{SortInt{}, SortKItem{}}", p.Constructor.String())
	require.Len(t, p.Args, 1)
}
