package definition

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/roach88/kore/internal/ast"
	"github.com/roach88/kore/internal/closure"
)

type stage int

const (
	stageBuilding stage = iota
	stagePrecomputed
	stagePreprocessed
)

// Definition owns a KORE definition's modules and the tables derived from
// them.
type Definition struct {
	log   *zap.Logger
	stage stage

	modules    []*ast.Module
	attributes ast.Attributes

	sortDecls   map[string]*ast.SortDeclaration
	symbolDecls map[string]*ast.SymbolDeclaration
	aliasDecls  map[string]*ast.AliasDeclaration
	axioms      []*ast.AxiomDeclaration
	ordinals    map[uint32]*ast.AxiomDeclaration

	sorts      sortArena
	symbols    symbolArena
	categories map[SortID]ast.ValueType

	// subsortGraph holds inner → outer edges, supersortGraph outer → inner.
	subsortGraph   closure.Relation[SortID]
	supersortGraph closure.Relation[SortID]
	overloads      closure.Relation[SymbolID]
	sortContains   closure.Relation[SortID]

	objectSymbols    map[uint32]SymbolID
	allObjectSymbols map[string]SymbolID
	freshFunctions   map[string]SymbolID
	hookedSorts      map[ast.ValueType]SortID
	injSymbol        SymbolID
	ranged           []SymbolID
}

// Option configures a Definition.
type Option func(*Definition)

// WithLogger sets the logger the passes report to. The default discards
// everything.
func WithLogger(log *zap.Logger) Option {
	return func(d *Definition) {
		if log != nil {
			d.log = log
		}
	}
}

// New creates an empty Definition.
func New(opts ...Option) *Definition {
	d := &Definition{
		log:              zap.NewNop(),
		attributes:       make(ast.Attributes),
		sortDecls:        make(map[string]*ast.SortDeclaration),
		symbolDecls:      make(map[string]*ast.SymbolDeclaration),
		aliasDecls:       make(map[string]*ast.AliasDeclaration),
		ordinals:         make(map[uint32]*ast.AxiomDeclaration),
		sorts:            newSortArena(),
		symbols:          newSymbolArena(),
		categories:       make(map[SortID]ast.ValueType),
		subsortGraph:     make(closure.Relation[SortID]),
		supersortGraph:   make(closure.Relation[SortID]),
		overloads:        make(closure.Relation[SymbolID]),
		sortContains:     make(closure.Relation[SortID]),
		objectSymbols:    make(map[uint32]SymbolID),
		allObjectSymbols: make(map[string]SymbolID),
		freshFunctions:   make(map[string]SymbolID),
		hookedSorts:      make(map[ast.ValueType]SortID),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Load builds a Definition from modules and runs Precompute.
func Load(modules []*ast.Module, opts ...Option) (*Definition, error) {
	d := New(opts...)
	for _, m := range modules {
		if err := d.AddModule(m); err != nil {
			return nil, err
		}
	}
	if err := d.Precompute(); err != nil {
		return nil, err
	}
	return d, nil
}

// AddModule appends a module and indexes its declarations. Names already
// declared keep their first declaration.
func (d *Definition) AddModule(m *ast.Module) error {
	if d.stage != stageBuilding {
		return fmt.Errorf("add module %s: %w", m.Name, ErrPassOrder)
	}
	d.addModule(m)
	return nil
}

func (d *Definition) addModule(m *ast.Module) {
	for _, decl := range m.Declarations {
		switch x := decl.(type) {
		case *ast.SortDeclaration:
			insertAbsent(d.sortDecls, x.Name, x)
		case *ast.SymbolDeclaration:
			insertAbsent(d.symbolDecls, x.Symbol.Name, x)
		case *ast.AliasDeclaration:
			insertAbsent(d.aliasDecls, x.Symbol.Name, x)
		case *ast.AxiomDeclaration:
			d.axioms = append(d.axioms, x)
		default:
			panic(fmt.Sprintf("definition: unknown declaration type %T", decl))
		}
	}
	d.modules = append(d.modules, m)
}

func insertAbsent[V any](m map[string]V, key string, v V) {
	if _, ok := m[key]; !ok {
		m[key] = v
	}
}

// AddAttribute records a definition-level attribute.
func (d *Definition) AddAttribute(att *ast.CompositePattern) {
	d.attributes.Add(att)
}

// Modules returns the modules in insertion order.
func (d *Definition) Modules() []*ast.Module { return d.modules }

// Attributes returns the definition-level attributes.
func (d *Definition) Attributes() ast.Attributes { return d.attributes }

// SortDeclaration looks up a sort declaration by name.
func (d *Definition) SortDeclaration(name string) (*ast.SortDeclaration, bool) {
	decl, ok := d.sortDecls[name]
	return decl, ok
}

// SymbolDeclaration looks up a symbol declaration by name.
func (d *Definition) SymbolDeclaration(name string) (*ast.SymbolDeclaration, bool) {
	decl, ok := d.symbolDecls[name]
	return decl, ok
}

// AliasDeclaration looks up an alias declaration by name.
func (d *Definition) AliasDeclaration(name string) (*ast.AliasDeclaration, bool) {
	decl, ok := d.aliasDecls[name]
	return decl, ok
}

// SortDeclarationNames returns the declared sort names in ascending order.
func (d *Definition) SortDeclarationNames() []string {
	return slices.Sorted(maps.Keys(d.sortDecls))
}

// SymbolDeclarationNames returns the declared symbol names in ascending order.
func (d *Definition) SymbolDeclarationNames() []string {
	return slices.Sorted(maps.Keys(d.symbolDecls))
}

// Axioms returns the axioms in encounter order. After Preprocess only the
// retained axioms remain.
func (d *Definition) Axioms() []*ast.AxiomDeclaration { return d.axioms }

// AxiomByOrdinal returns the axiom that was assigned ordinal, including
// axioms that Preprocess dropped.
func (d *Definition) AxiomByOrdinal(ordinal uint32) (*ast.AxiomDeclaration, bool) {
	ax, ok := d.ordinals[ordinal]
	return ax, ok
}

// Ordinals returns every assigned ordinal in ascending order.
func (d *Definition) Ordinals() []uint32 {
	return slices.Sorted(maps.Keys(d.ordinals))
}

// SortsHookedTo returns the names of hooked sorts whose hook attribute is
// hook, in ascending order.
func (d *Definition) SortsHookedTo(hook string) []string {
	var names []string
	for name, decl := range d.sortDecls {
		if !decl.IsHooked() {
			continue
		}
		if h, ok := decl.Attributes().StringValue("hook"); ok && h == hook {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// SortID returns the id of an interned sort.
func (d *Definition) SortID(s ast.Sort) (SortID, bool) {
	return d.sorts.lookup(s)
}

// Sort returns the sort for id, or nil.
func (d *Definition) Sort(id SortID) ast.Sort {
	return d.sorts.get(id)
}

// SymbolID returns the id of an interned symbol object.
func (d *Definition) SymbolID(s *ast.Symbol) (SymbolID, bool) {
	id, ok := d.symbols.index[s]
	return id, ok
}

// OverloadID returns the id the overload relation uses for symbols printed
// as text, e.g. "plus{}".
func (d *Definition) OverloadID(text string) (SymbolID, bool) {
	id, ok := d.symbols.text[text]
	return id, ok
}

// Symbol returns the symbol for id, or nil.
func (d *Definition) Symbol(id SymbolID) *ast.Symbol {
	return d.symbols.get(id)
}

// Sorts resolves a set of sort ids, ordered by canonical form.
func (d *Definition) Sorts(ids closure.Set[SortID]) []ast.Sort {
	out := make([]ast.Sort, 0, len(ids))
	for id := range ids {
		out = append(out, d.sorts.get(id))
	}
	slices.SortFunc(out, func(a, b ast.Sort) int {
		return strings.Compare(a.String(), b.String())
	})
	return out
}

// Supersorts maps each sort to every sort it is a (transitive) subsort of.
// subsort(Nat, Int) puts Int in Supersorts()[Nat].
func (d *Definition) Supersorts() closure.Relation[SortID] { return d.subsortGraph }

// Subsorts maps each sort to every sort that is a (transitive) subsort of it.
// subsort(Nat, Int) puts Nat in Subsorts()[Int].
func (d *Definition) Subsorts() closure.Relation[SortID] { return d.supersortGraph }

// Overloads maps each overloaded symbol to the symbols that overload it.
// Symbols with the same text share one id.
func (d *Definition) Overloads() closure.Relation[SymbolID] { return d.overloads }

// SortContains maps each sort to the sorts its terms may contain.
func (d *Definition) SortContains() closure.Relation[SortID] { return d.sortContains }

// SupersortsOf returns every sort above s, ordered by canonical form.
func (d *Definition) SupersortsOf(s ast.Sort) []ast.Sort {
	return d.related(d.subsortGraph, s)
}

// SubsortsOf returns every sort below s, ordered by canonical form.
func (d *Definition) SubsortsOf(s ast.Sort) []ast.Sort {
	return d.related(d.supersortGraph, s)
}

// ContainedSorts returns every sort a term of sort s may contain.
func (d *Definition) ContainedSorts(s ast.Sort) []ast.Sort {
	return d.related(d.sortContains, s)
}

func (d *Definition) related(r closure.Relation[SortID], s ast.Sort) []ast.Sort {
	id, ok := d.sorts.lookup(s)
	if !ok {
		return nil
	}
	return d.Sorts(r[id])
}

// SymbolForTag returns the concrete symbol assigned tag.
func (d *Definition) SymbolForTag(tag uint32) (*ast.Symbol, bool) {
	id, ok := d.objectSymbols[tag]
	return d.symbols.get(id), ok
}

// Tags returns every assigned tag in ascending order.
func (d *Definition) Tags() []uint32 {
	return slices.Sorted(maps.Keys(d.objectSymbols))
}

// SymbolByText returns the concrete symbol printed as text, e.g.
// "inj{SortNat{}, SortInt{}}".
func (d *Definition) SymbolByText(text string) (*ast.Symbol, bool) {
	id, ok := d.allObjectSymbols[text]
	return d.symbols.get(id), ok
}

// FreshFunction returns the fresh-value generator for the sort named sort.
func (d *Definition) FreshFunction(sort string) (*ast.Symbol, bool) {
	id, ok := d.freshFunctions[sort]
	return d.symbols.get(id), ok
}

// FreshFunctionSorts returns the sort names that have a fresh generator.
func (d *Definition) FreshFunctionSorts() []string {
	return slices.Sorted(maps.Keys(d.freshFunctions))
}

// HookedSort returns the sort registered for a value type.
func (d *Definition) HookedSort(vt ast.ValueType) (ast.Sort, bool) {
	id, ok := d.hookedSorts[vt]
	return d.sorts.get(id), ok
}

// HookedSorts returns a copy of the value type → sort table.
func (d *Definition) HookedSorts() map[ast.ValueType]ast.Sort {
	out := make(map[ast.ValueType]ast.Sort, len(d.hookedSorts))
	for vt, id := range d.hookedSorts {
		out[vt] = d.sorts.get(id)
	}
	return out
}

// InjectionSymbol returns the distinguished sort injection symbol, or nil if
// no polymorphic sortInjection symbol occurs.
func (d *Definition) InjectionSymbol() *ast.Symbol {
	return d.symbols.get(d.injSymbol)
}
