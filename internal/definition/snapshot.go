package definition

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/roach88/kore/internal/ast"
	"github.com/roach88/kore/internal/closure"
	"github.com/roach88/kore/internal/ir"
	"github.com/roach88/kore/internal/rtconfig"
)

// Snapshot exports the tables computed by Precompute and Preprocess. Header
// words are packed with cfg. Calling it before Preprocess returns a snapshot
// without symbols or axiom ordinals.
func (d *Definition) Snapshot(cfg rtconfig.Config) *ir.Snapshot {
	s := &ir.Snapshot{
		IRVersion:      ir.IRVersion,
		Symbols:        []ir.SymbolEntry{},
		Polymorphic:    []ir.RangeEntry{},
		Axioms:         []ir.AxiomEntry{},
		HookedSorts:    make(map[string]string, len(d.hookedSorts)),
		FreshFunctions: make(map[string]string, len(d.freshFunctions)),
		Relations: ir.Relations{
			Supersorts:   d.sortRelation(d.subsortGraph),
			Subsorts:     d.sortRelation(d.supersortGraph),
			Overloads:    d.symbolRelation(d.overloads),
			SortContains: d.sortRelation(d.sortContains),
		},
	}

	layouts := make(map[uint16]struct{})
	for _, tag := range d.Tags() {
		sym, _ := d.SymbolForTag(tag)
		layouts[sym.Layout] = struct{}{}
		s.Symbols = append(s.Symbols, ir.SymbolEntry{
			Tag:       tag,
			Name:      sym.Name,
			Text:      sym.String(),
			Signature: sym.Signature(),
			Layout:    sym.Layout,
			Header:    fmt.Sprintf("0x%x", cfg.HeaderWord(tag, sym.Layout)),
		})
	}
	s.LayoutCount = len(layouts)
	s.Polymorphic = d.polymorphicRanges()

	retained := make(map[*ast.AxiomDeclaration]bool, len(d.axioms))
	for _, ax := range d.axioms {
		retained[ax] = true
	}
	for _, ordinal := range d.Ordinals() {
		s.Axioms = append(s.Axioms, ir.AxiomEntry{
			Ordinal:  ordinal,
			Retained: retained[d.ordinals[ordinal]],
		})
	}

	for vt, id := range d.hookedSorts {
		s.HookedSorts[vt.String()] = d.sorts.get(id).String()
	}
	for sort, id := range d.freshFunctions {
		s.FreshFunctions[sort] = d.symbols.get(id).String()
	}
	if inj := d.InjectionSymbol(); inj != nil {
		s.InjectionSymbol = inj.String()
	}
	return s
}

// polymorphicRanges lists the polymorphic occurrences that were given the
// tag range of their group, ordered by text.
func (d *Definition) polymorphicRanges() []ir.RangeEntry {
	seen := make(map[string]bool)
	out := []ir.RangeEntry{}
	for _, id := range d.ranged {
		sym := d.symbols.get(id)
		text := sym.String()
		if seen[text] {
			continue
		}
		seen[text] = true
		out = append(out, ir.RangeEntry{Text: text, FirstTag: sym.FirstTag, LastTag: sym.LastTag})
	}
	slices.SortFunc(out, func(a, b ir.RangeEntry) int {
		return strings.Compare(a.Text, b.Text)
	})
	return out
}

func (d *Definition) sortRelation(r closure.Relation[SortID]) map[string][]string {
	out := make(map[string][]string, len(r))
	for id, members := range r {
		names := make([]string, 0, len(members))
		for _, m := range d.Sorts(members) {
			names = append(names, m.String())
		}
		out[d.sorts.get(id).String()] = names
	}
	return out
}

func (d *Definition) symbolRelation(r closure.Relation[SymbolID]) map[string][]string {
	merged := make(map[string]map[string]struct{}, len(r))
	for id, members := range r {
		key := d.symbols.get(id).String()
		set, ok := merged[key]
		if !ok {
			set = make(map[string]struct{}, len(members))
			merged[key] = set
		}
		for m := range members {
			set[d.symbols.get(m).String()] = struct{}{}
		}
	}
	out := make(map[string][]string, len(merged))
	for key, set := range merged {
		out[key] = slices.Sorted(maps.Keys(set))
	}
	return out
}
