package definition

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/kore/internal/ast"
	"github.com/roach88/kore/internal/rtconfig"
	tu "github.com/roach88/kore/internal/testutil"
)

func TestPreprocessAssignsTags(t *testing.T) {
	d := preprocessed(t, kernel())

	tests := []struct {
		tag       uint32
		signature string
		layout    uint16
	}{
		{0, "dotk{}() : SortK{}", 1},
		{1, "eq{}(SortInt{}, SortInt{}) : SortBool{}", 2},
		{2, "inj{SortInt{}, SortKItem{}}(SortInt{}) : SortKItem{}", 3},
		{3, "kseq{}(SortKItem{}, SortK{}) : SortK{}", 4},
		{4, "plus{}(SortInt{}, SortInt{}) : SortInt{}", 5},
		{5, "rawTerm{}(SortKItem{}) : SortKItem{}", 6},
	}

	require.Equal(t, []uint32{0, 1, 2, 3, 4, 5}, d.Tags())
	for _, tt := range tests {
		t.Run(tt.signature, func(t *testing.T) {
			sym, ok := d.SymbolForTag(tt.tag)
			require.True(t, ok)
			assert.Equal(t, tt.signature, sym.Signature())
			assert.Equal(t, tt.tag, sym.FirstTag)
			assert.Equal(t, tt.tag, sym.LastTag)
			assert.Equal(t, tt.layout, sym.Layout)
		})
	}
}

func TestPreprocessSymbolByText(t *testing.T) {
	d := preprocessed(t, kernel())

	raw, ok := d.SymbolByText("rawTerm{}")
	require.True(t, ok)
	assert.Equal(t, uint32(5), raw.FirstTag)

	inj, ok := d.SymbolByText("inj{SortInt{}, SortKItem{}}")
	require.True(t, ok)
	assert.Equal(t, uint32(2), inj.FirstTag)

	_, ok = d.SymbolByText("inj{From, To}")
	assert.False(t, ok, "polymorphic occurrences get no tag of their own")
}

func TestPreprocessSymbolTableGolden(t *testing.T) {
	d := preprocessed(t, kernel())
	snap := d.Snapshot(rtconfig.Default())

	var buf bytes.Buffer
	for _, e := range snap.Symbols {
		fmt.Fprintf(&buf, "%d\t%d\t%s\t%s\n", e.Tag, e.Layout, e.Header, e.Signature)
	}
	for _, r := range snap.Polymorphic {
		fmt.Fprintf(&buf, "%d-%d\t%s\n", r.FirstTag, r.LastTag, r.Text)
	}
	tu.AssertGolden(t, "kernel_symbols", buf.Bytes())
}

func TestPreprocessDeterministic(t *testing.T) {
	cfg := rtconfig.Default()
	first := preprocessed(t, kernel()).Snapshot(cfg)
	second := preprocessed(t, kernel()).Snapshot(cfg)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("snapshots differ (-first +second):\n%s", diff)
	}
}

func TestPreprocessOrdinals(t *testing.T) {
	d := preprocessed(t, kernel())

	assert.Equal(t, []uint32{0, 1, 2, 3}, d.Ordinals())
	assert.Len(t, d.Axioms(), 3, "the functional axiom is dropped")

	dropped, ok := d.AxiomByOrdinal(1)
	require.True(t, ok)
	assert.False(t, dropped.IsRequired())

	var kept []uint32
	for _, ax := range d.Axioms() {
		kept = append(kept, ax.Ordinal)
	}
	assert.Equal(t, []uint32{0, 2, 3}, kept)
}

func TestPreprocessPolymorphicRange(t *testing.T) {
	d := preprocessed(t, kernel())

	inj := d.InjectionSymbol()
	require.NotNil(t, inj)
	assert.Equal(t, "inj{From, To}", inj.String())
	assert.Equal(t, uint32(2), inj.FirstTag)
	assert.Equal(t, uint32(2), inj.LastTag)

	snap := d.Snapshot(rtconfig.Default())
	require.Len(t, snap.Polymorphic, 1)
	assert.Equal(t, "inj{From, To}", snap.Polymorphic[0].Text)
	assert.Equal(t, "inj{From, To}", snap.InjectionSymbol)
}

func TestPreprocessRangeSpansGroup(t *testing.T) {
	m := tu.Module("INJ").
		Symbol("inj{From, To}(From) : To", "sortInjection").
		Axiom(tu.App("inj", []string{"SortA", "SortB"}, tu.Var("X", "SortA"))).
		Axiom(tu.App("inj", []string{"SortC", "SortB"}, tu.Var("X", "SortC"))).
		Axiom(tu.App("inj", []string{"From", "To"}, tu.Var("X", "From"))).
		Build()

	d := preprocessed(t, []*ast.Module{m})

	inj := d.InjectionSymbol()
	require.NotNil(t, inj)
	assert.Equal(t, uint32(0), inj.FirstTag)
	assert.Equal(t, uint32(1), inj.LastTag)

	raw, ok := d.SymbolByText("rawTerm{}")
	require.True(t, ok)
	assert.Equal(t, uint32(2), raw.FirstTag)
}

func TestPreprocessLayoutSharing(t *testing.T) {
	m := tu.Module("ARITH").
		Sort("SortInt", "INT.Int").
		Symbol("plus(SortInt, SortInt) : SortInt", "function").
		Symbol("minus(SortInt, SortInt) : SortInt", "function").
		Axiom(tu.App("plus", nil, tu.Var("X", "SortInt"), tu.Var("Y", "SortInt"))).
		Axiom(tu.App("minus", nil, tu.Var("X", "SortInt"), tu.Var("Y", "SortInt"))).
		Axiom(tu.App("plus", nil, tu.Var("Z", "SortInt"), tu.Var("Z", "SortInt"))).
		Build()

	d := preprocessed(t, []*ast.Module{m})

	minus, ok := d.SymbolByText("minus{}")
	require.True(t, ok)
	plus, ok := d.SymbolByText("plus{}")
	require.True(t, ok)

	assert.Equal(t, uint32(0), minus.FirstTag)
	assert.Equal(t, uint32(1), plus.FirstTag)
	assert.Equal(t, minus.Layout, plus.Layout)
	assert.Equal(t, []uint32{0, 1, 2}, d.Tags(), "equal signatures share one tag")
}

func TestPreprocessHookedSymbolsAlwaysTagged(t *testing.T) {
	m := tu.Module("HOOKS").
		Sort("SortInt", "INT.Int").
		Symbol("abs(SortInt) : SortInt", "function", "hook=INT.abs").
		Symbol("size{S}(S) : SortInt", "function", "hook=INT.size").
		Build()

	d := preprocessed(t, []*ast.Module{m})

	abs, ok := d.SymbolByText("abs{}")
	require.True(t, ok)
	assert.Equal(t, uint32(0), abs.FirstTag)
	assert.Equal(t, "4:4", abs.LayoutKey(d.Category))

	_, ok = d.SymbolByText("size{S}")
	assert.False(t, ok)
	assert.Equal(t, []uint32{0, 1}, d.Tags())
}

func TestPreprocessHookedSorts(t *testing.T) {
	m := tu.Module("COLLECTIONS").
		Sort("SortMap", "MAP.Map").
		Sort("SortInt", "INT.Int").
		Sort("SortMyInt", "INT.Int").
		Symbol("get{S}(SortMap) : SortInt").
		Symbol("put{S}(SortMap) : SortMyInt").
		Axiom(tu.App("get", []string{"S"})).
		Axiom(tu.App("put", []string{"S"})).
		Build()

	d := preprocessed(t, []*ast.Module{m})

	mapSort, ok := d.HookedSort(ast.ValueType{Cat: ast.CategoryMap})
	require.True(t, ok)
	assert.Equal(t, "SortMap{}", mapSort.String())

	intSort, ok := d.HookedSort(ast.ValueType{Cat: ast.CategoryInt})
	require.True(t, ok)
	assert.Equal(t, "SortMyInt{}", intSort.String(), "the later registration wins")

	assert.Len(t, d.HookedSorts(), 2)
	assert.Equal(t, []string{"SortInt", "SortMyInt"}, d.SortsHookedTo("INT.Int"))

	get := d.Snapshot(rtconfig.Default()).HookedSorts
	assert.Equal(t, map[string]string{"Map": "SortMap{}", "Int": "SortMyInt{}"}, get)
}

func TestPreprocessFreshFunctions(t *testing.T) {
	m := tu.Module("FRESH").
		Sort("SortInt", "INT.Int").
		Symbol("freshInt(SortInt) : SortInt", "function", "freshGenerator").
		Symbol("freshAny{S}(SortInt) : S", "function", "freshGenerator").
		Build()

	d := preprocessed(t, []*ast.Module{m})

	fresh, ok := d.FreshFunction("SortInt")
	require.True(t, ok)
	assert.Equal(t, "freshInt", fresh.Name)
	assert.Equal(t, []string{"SortInt"}, d.FreshFunctionSorts())
}

func TestPreprocessExpandsAliases(t *testing.T) {
	x := tu.Var("X", "SortInt")
	m := tu.Module("ALIAS").
		Sort("SortInt", "INT.Int").
		Symbol("plus(SortInt, SortInt) : SortInt", "function").
		Alias("double", nil, []*ast.VariablePattern{x}, tu.App("plus", nil, x, x)).
		Axiom(tu.App("double", nil, tu.Var("N", "SortInt"))).
		Build()

	d := preprocessed(t, []*ast.Module{m})

	require.Len(t, d.Axioms(), 1)
	expanded, ok := d.Axioms()[0].Pattern.(*ast.CompositePattern)
	require.True(t, ok)
	assert.Equal(t, "plus", expanded.Constructor.Name)

	_, ok = d.SymbolByText("plus{}")
	assert.True(t, ok)
	_, ok = d.SymbolByText("double{}")
	assert.False(t, ok)
}

func TestPreprocessSkipsBuiltins(t *testing.T) {
	m := tu.Module("BUILTIN").
		Symbol("dotk() : SortK").
		Axiom(tu.App(`\and`, []string{"SortK"}, tu.App("dotk", nil), tu.App("dotk", nil))).
		Build()

	d := preprocessed(t, []*ast.Module{m})

	assert.Equal(t, []uint32{0, 1}, d.Tags())
	_, ok := d.SymbolByText(`\and{SortK{}}`)
	assert.False(t, ok)
}

func TestPreprocessFirstDeclarationWins(t *testing.T) {
	first := tu.Module("A").Symbol("f(SortInt) : SortInt").Build()
	second := tu.Module("B").Symbol("f(SortBool) : SortBool").Build()
	usage := tu.Module("C").Axiom(tu.App("f", nil, tu.Var("X", "SortInt"))).Build()

	d := preprocessed(t, []*ast.Module{first, second, usage})

	f, ok := d.SymbolByText("f{}")
	require.True(t, ok)
	assert.Equal(t, "f{}(SortInt{}) : SortInt{}", f.Signature())
}

func TestPreprocessUndeclaredSymbol(t *testing.T) {
	m := tu.Module("BAD").Axiom(tu.App("missing", nil)).Build()

	d, err := Load([]*ast.Module{m})
	require.NoError(t, err)

	err = d.Preprocess()
	require.Error(t, err)

	var pe *PreconditionError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrCodeUndeclaredSymbol, pe.Code)
	assert.Equal(t, "missing", pe.Subject)
}

func TestPassOrder(t *testing.T) {
	t.Run("preprocess before precompute", func(t *testing.T) {
		d := New()
		require.NoError(t, d.AddModule(kernel()[0]))
		assert.ErrorIs(t, d.Preprocess(), ErrPassOrder)
		assert.Empty(t, d.Tags())
	})

	t.Run("precompute twice", func(t *testing.T) {
		d, err := Load(kernel())
		require.NoError(t, err)
		assert.ErrorIs(t, d.Precompute(), ErrPassOrder)
	})

	t.Run("preprocess twice", func(t *testing.T) {
		d := preprocessed(t, kernel())
		tags := d.Tags()
		assert.ErrorIs(t, d.Preprocess(), ErrPassOrder)
		assert.Equal(t, tags, d.Tags())
	})

	t.Run("module after precompute", func(t *testing.T) {
		d, err := Load(kernel())
		require.NoError(t, err)
		assert.ErrorIs(t, d.AddModule(ast.NewModule("LATE")), ErrPassOrder)
		assert.Len(t, d.Modules(), 1)
	})
}
