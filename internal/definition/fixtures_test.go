package definition

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/kore/internal/ast"
	tu "github.com/roach88/kore/internal/testutil"
)

// kernel is a small definition exercising tags, layouts, a dropped axiom
// and a polymorphic injection. Symbol groups in name order are
// dotk, eq, inj, kseq, plus, rawTerm.
func kernel() []*ast.Module {
	m := tu.Module("KERNEL").
		Sort("SortInt", "INT.Int").
		Sort("SortBool", "BOOL.Bool").
		Sort("SortK", "").
		Sort("SortKItem", "").
		Symbol("dotk() : SortK").
		Symbol("kseq(SortKItem, SortK) : SortK").
		Symbol("inj{From, To}(From) : To", "sortInjection").
		Symbol("plus(SortInt, SortInt) : SortInt", "function").
		Symbol("eq(SortInt, SortInt) : SortBool", "function").
		Axiom(tu.App("kseq", nil,
			tu.App("inj", []string{"SortInt", "SortKItem"}, tu.Var("X", "SortInt")),
			tu.App("dotk", nil))).
		Axiom(tu.App("plus", nil, tu.Var("X", "SortInt"), tu.Var("Y", "SortInt")), tu.Attr("functional")).
		Axiom(tu.App("inj", []string{"From", "To"}, tu.Var("V", "From"))).
		Axiom(tu.App("eq", nil, tu.Var("X", "SortInt"), tu.Var("X", "SortInt"))).
		Build()
	return []*ast.Module{m}
}

func preprocessed(t *testing.T, modules []*ast.Module) *Definition {
	t.Helper()
	d, err := Load(modules)
	require.NoError(t, err)
	require.NoError(t, d.Preprocess())
	return d
}

func sortNames(sorts []ast.Sort) []string {
	out := make([]string, 0, len(sorts))
	for _, s := range sorts {
		out = append(out, s.String())
	}
	return out
}
