package definition

import (
	"fmt"
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/roach88/kore/internal/ast"
)

// Reserved module and symbol guaranteeing a tag for raw injected terms.
const (
	RawTermModule = "K-RAW-TERM"
	RawTermSymbol = "rawTerm"
	RawTermSort   = "SortKItem"
)

// occurrences groups symbol objects by name, in the order each distinct
// object was first seen.
type occurrences struct {
	groups map[string][]*ast.Symbol
	seen   map[*ast.Symbol]bool
}

func newOccurrences() *occurrences {
	return &occurrences{
		groups: make(map[string][]*ast.Symbol),
		seen:   make(map[*ast.Symbol]bool),
	}
}

func (o *occurrences) mark(sym *ast.Symbol) {
	if o.seen[sym] {
		return
	}
	o.seen[sym] = true
	o.groups[sym.Name] = append(o.groups[sym.Name], sym)
}

// insertGroup adds a group holding only sym, unless name already has one.
func (o *occurrences) insertGroup(sym *ast.Symbol) {
	if _, ok := o.groups[sym.Name]; ok {
		return
	}
	o.seen[sym] = true
	o.groups[sym.Name] = []*ast.Symbol{sym}
}

func (o *occurrences) names() []string {
	return slices.Sorted(maps.Keys(o.groups))
}

// tagRange is the span of tags assigned within one name group.
type tagRange struct {
	first, last uint32
}

func (r *tagRange) extend(tag uint32, empty bool) {
	if empty || tag < r.first {
		r.first = tag
	}
	if empty || tag > r.last {
		r.last = tag
	}
}

// Preprocess expands aliases, assigns axiom ordinals, drops axioms that are
// not required and numbers every concrete symbol instantiation. It must run
// exactly once, after Precompute.
//
// Tags are dense from 0 in symbol-name order; layout ids are dense from 1 in
// first-use order. Both depend only on the declaration order of the input,
// so structurally identical definitions are numbered identically.
func (d *Definition) Preprocess() error {
	if d.stage != stagePrecomputed {
		return fmt.Errorf("preprocess: %w", ErrPassOrder)
	}
	d.stage = stagePreprocessed

	d.insertReservedSymbols()
	d.expandAliases()
	d.indexFreshFunctions()

	occ := newOccurrences()
	retained, dropped := d.assignOrdinals(occ)
	d.markHookedSymbols(occ)

	if err := d.instantiate(occ); err != nil {
		return err
	}
	tags, layouts, ranges := d.assignTags(occ)
	d.assignPolymorphicRanges(occ, ranges)

	d.log.Debug("preprocessed definition",
		zap.Int("retained_axioms", retained),
		zap.Int("dropped_axioms", dropped),
		zap.Int("symbol_groups", len(occ.groups)),
		zap.Uint32("tags", tags),
		zap.Int("layouts", layouts))
	return nil
}

func (d *Definition) insertReservedSymbols() {
	mod := ast.NewModule(RawTermModule)
	decl := ast.NewSymbolDeclaration(RawTermSymbol, true)
	sort := ast.NewCompositeSort(RawTermSort)
	decl.Symbol.SetSort(sort)
	decl.Symbol.AddArgument(sort)
	mod.AddDeclaration(decl)
	d.addModule(mod)
}

func (d *Definition) expandAliases() {
	table := func(name string) (*ast.AliasDeclaration, bool) {
		alias, ok := d.aliasDecls[name]
		return alias, ok
	}
	for _, axiom := range d.axioms {
		axiom.Pattern = ast.ExpandAliases(axiom.Pattern, table)
	}
}

func (d *Definition) indexFreshFunctions() {
	for _, name := range d.SymbolDeclarationNames() {
		decl := d.symbolDecls[name]
		if !decl.Attributes().Has("freshGenerator") {
			continue
		}
		sort, ok := decl.Symbol.Sort.(*ast.CompositeSort)
		if !ok || !sort.IsConcrete() {
			continue
		}
		d.freshFunctions[sort.Name] = d.symbols.intern(decl.Symbol)
	}
}

// assignOrdinals numbers every axiom, marks the symbols its pattern uses and
// drops the axioms that are not required. Dropped axioms keep their ordinal.
func (d *Definition) assignOrdinals(occ *occurrences) (retained, dropped int) {
	var next uint32
	kept := make([]*ast.AxiomDeclaration, 0, len(d.axioms))
	for _, axiom := range d.axioms {
		axiom.Ordinal = next
		d.ordinals[next] = axiom
		next++
		for _, sym := range ast.Symbols(axiom.Pattern) {
			occ.mark(sym)
		}
		if axiom.IsRequired() {
			kept = append(kept, axiom)
		}
	}
	dropped = len(d.axioms) - len(kept)
	d.axioms = kept
	return len(kept), dropped
}

// markHookedSymbols gives every monomorphic hooked symbol a group so that it
// receives a tag even when no axiom mentions it.
func (d *Definition) markHookedSymbols(occ *occurrences) {
	for _, m := range d.modules {
		for _, decl := range m.Declarations {
			sd, ok := decl.(*ast.SymbolDeclaration)
			if !ok {
				continue
			}
			if sd.IsHooked() && len(sd.ObjectSortVariables()) == 0 {
				occ.insertGroup(sd.Symbol)
			}
		}
	}
}

func (d *Definition) instantiate(occ *occurrences) error {
	for _, name := range occ.names() {
		for _, sym := range occ.groups[name] {
			decl, ok := d.symbolDecls[sym.Name]
			if !ok {
				return &PreconditionError{
					Code:    ErrCodeUndeclaredSymbol,
					Subject: sym.Name,
					Message: "symbol occurs in an axiom but is not declared",
				}
			}
			if err := sym.Instantiate(decl); err != nil {
				return &PreconditionError{Code: ErrCodeInstantiation, Subject: sym.Name, Message: err.Error()}
			}
		}
	}
	return nil
}

// assignTags walks the groups in name order and numbers their concrete
// occurrences. It returns the number of tags and layouts allocated and the
// tag range of every group with at least one concrete occurrence.
func (d *Definition) assignTags(occ *occurrences) (uint32, int, map[string]tagRange) {
	var nextTag uint32
	nextLayout := uint16(1)
	instantiations := make(map[string]uint32)
	layouts := make(map[string]uint16)
	ranges := make(map[string]tagRange)

	for _, name := range occ.names() {
		var r tagRange
		concrete := false
		for _, sym := range occ.groups[name] {
			if !sym.IsConcrete() {
				continue
			}
			sig := sym.Signature()
			tag, ok := instantiations[sig]
			if !ok {
				tag = nextTag
				nextTag++
				instantiations[sig] = tag
			}
			key := sym.LayoutKey(d.Category)
			layout, ok := layouts[key]
			if !ok {
				layout = nextLayout
				nextLayout++
				layouts[key] = layout
			}

			sym.FirstTag, sym.LastTag, sym.Layout = tag, tag, layout
			id := d.symbols.intern(sym)
			d.objectSymbols[tag] = id
			d.allObjectSymbols[sym.String()] = id

			r.extend(tag, !concrete)
			concrete = true
		}
		if concrete {
			ranges[name] = r
		}
	}
	return nextTag, len(layouts), ranges
}

// assignPolymorphicRanges handles the occurrences that received no tag of
// their own. Concrete sorts they mention are registered as hooked sorts, and
// polymorphic ones span the tags of their group.
func (d *Definition) assignPolymorphicRanges(occ *occurrences, ranges map[string]tagRange) {
	for _, name := range occ.names() {
		r, hasRange := ranges[name]
		for _, sym := range occ.groups[name] {
			if sym.IsConcrete() {
				continue
			}
			for _, arg := range sym.Arguments {
				d.registerHookedSort(arg)
			}
			if sym.Sort != nil {
				d.registerHookedSort(sym.Sort)
			}
			if !sym.IsPolymorphic() {
				continue
			}
			if hasRange {
				sym.FirstTag, sym.LastTag = r.first, r.last
				d.ranged = append(d.ranged, d.symbols.intern(sym))
			}
			if decl := d.symbolDecls[sym.Name]; decl.Attributes().Has("sortInjection") {
				d.injSymbol = d.symbols.intern(sym)
			}
		}
	}
}

// registerHookedSort records a concrete sort under its value type. A later
// sort of the same value type replaces an earlier one.
func (d *Definition) registerHookedSort(s ast.Sort) {
	c, ok := s.(*ast.CompositeSort)
	if !ok || !c.IsConcrete() {
		return
	}
	d.hookedSorts[d.Category(c)] = d.sorts.intern(c)
}
