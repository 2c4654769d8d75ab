package definition

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/roach88/kore/internal/ast"
	"github.com/roach88/kore/internal/closure"
)

// Precompute derives the subsort, overload and sort-containment relations.
// It must run exactly once, before Preprocess.
func (d *Definition) Precompute() error {
	if d.stage != stageBuilding {
		return fmt.Errorf("precompute: %w", ErrPassOrder)
	}
	d.stage = stagePrecomputed

	if err := d.buildSubsortRelation(); err != nil {
		return err
	}
	if err := d.buildOverloadRelation(); err != nil {
		return err
	}
	d.buildSortContainsRelation()

	d.log.Debug("precomputed relations",
		zap.Int("subsorted", len(d.subsortGraph)),
		zap.Int("overloaded", len(d.overloads)),
		zap.Int("containers", len(d.sortContains)))
	return nil
}

func (d *Definition) buildSubsortRelation() error {
	for _, axiom := range d.axioms {
		att, ok := axiom.Attributes()["subsort"]
		if !ok {
			continue
		}
		if len(att.Constructor.FormalArguments) < 2 {
			return &PreconditionError{
				Code:    ErrCodeSubsortArity,
				Subject: "subsort",
				Message: fmt.Sprintf("expected 2 formal sort arguments, found %d", len(att.Constructor.FormalArguments)),
			}
		}
		inner := d.sorts.intern(att.Constructor.FormalArguments[0])
		outer := d.sorts.intern(att.Constructor.FormalArguments[1])
		d.subsortGraph.Add(inner, outer)
		d.supersortGraph.Add(outer, inner)
	}

	d.subsortGraph = closure.Transitive(d.subsortGraph)
	d.supersortGraph = closure.Transitive(d.supersortGraph)
	return nil
}

func (d *Definition) buildOverloadRelation() error {
	for _, axiom := range d.axioms {
		att, ok := axiom.Attributes()["overload"]
		if !ok {
			continue
		}
		if len(att.Args) < 2 {
			return &PreconditionError{
				Code:    ErrCodeOverloadShape,
				Subject: "overload",
				Message: fmt.Sprintf("expected 2 arguments, found %d", len(att.Args)),
			}
		}
		outer, okOuter := att.Args[0].(*ast.CompositePattern)
		inner, okInner := att.Args[1].(*ast.CompositePattern)
		if !okOuter || !okInner {
			return &PreconditionError{
				Code:    ErrCodeOverloadShape,
				Subject: "overload",
				Message: "arguments must be symbol applications",
			}
		}
		d.overloads.Add(d.symbols.internText(inner.Constructor), d.symbols.internText(outer.Constructor))
	}

	d.overloads = closure.Transitive(d.overloads)
	return nil
}

// buildSortContainsRelation seeds every constructor-like symbol's return sort
// with itself and its argument sorts, adds the subsorts of the seed members
// in a single pass, and closes the result. Every seed member also gets an
// entry of its own, so the reflexive closure records that a hooked sort
// contains itself: hooked sorts are never constructor return sorts.
func (d *Definition) buildSortContainsRelation() {
	for _, name := range d.SymbolDeclarationNames() {
		decl := d.symbolDecls[name]
		if decl.IsFunction() && !decl.IsCollectionElement() {
			continue
		}
		ret, ok := decl.Symbol.Sort.(*ast.CompositeSort)
		if !ok || !ret.IsConcrete() {
			continue
		}

		retID := d.sorts.intern(ret)
		children := d.sortContains.Touch(retID)
		children.Add(retID)
		for _, arg := range decl.Symbol.Arguments {
			children.Add(d.sorts.intern(arg))
		}

		var below []SortID
		for child := range children {
			for sub := range d.supersortGraph[child] {
				below = append(below, sub)
			}
		}
		for _, sub := range below {
			children.Add(sub)
		}
		for child := range children {
			d.sortContains.Touch(child)
		}
	}

	d.sortContains = closure.Reflexive(closure.Transitive(d.sortContains))
}
