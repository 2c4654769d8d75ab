package testutil

import (
	"fmt"
	"strings"

	"github.com/roach88/kore/internal/ast"
)

// ModuleBuilder assembles an ast.Module declaration by declaration. Fixture
// text that does not parse panics: fixtures are code, not input.
type ModuleBuilder struct {
	module *ast.Module
}

// Module starts a module named name.
func Module(name string) *ModuleBuilder {
	return &ModuleBuilder{module: ast.NewModule(name)}
}

// Sort declares a sort. A non-empty hook makes it a hooked sort with that
// hook attribute.
func (b *ModuleBuilder) Sort(name, hook string) *ModuleBuilder {
	decl := ast.NewSortDeclaration(name, hook != "")
	if hook != "" {
		decl.AddAttribute(Hook(hook))
	}
	b.module.AddDeclaration(decl)
	return b
}

// Symbol declares a symbol from its signature. Attributes are bare names;
// "hook=NAME" marks the symbol hooked with hook NAME.
func (b *ModuleBuilder) Symbol(signature string, attrs ...string) *ModuleBuilder {
	hooked := false
	for _, a := range attrs {
		if strings.HasPrefix(a, "hook=") {
			hooked = true
		}
	}
	decl, err := ast.ParseSignature(signature, hooked)
	if err != nil {
		panic(fmt.Sprintf("testutil: %v", err))
	}
	for _, a := range attrs {
		if value, ok := strings.CutPrefix(a, "hook="); ok {
			decl.AddAttribute(Hook(value))
			continue
		}
		decl.AddAttribute(Attr(a))
	}
	b.module.AddDeclaration(decl)
	return b
}

// Alias declares an alias named name with the given bound variables and
// right-hand side.
func (b *ModuleBuilder) Alias(name string, params []string, vars []*ast.VariablePattern, rhs ast.Pattern) *ModuleBuilder {
	decl := ast.NewAliasDeclaration(name)
	for _, p := range params {
		decl.AddObjectSortVariable(ast.NewSortVariable(p))
	}
	decl.BoundVariables = vars
	decl.Pattern = rhs
	b.module.AddDeclaration(decl)
	return b
}

// Axiom declares an axiom over p with the given attributes.
func (b *ModuleBuilder) Axiom(p ast.Pattern, attrs ...*ast.CompositePattern) *ModuleBuilder {
	decl := ast.NewAxiomDeclaration(p)
	for _, a := range attrs {
		decl.AddAttribute(a)
	}
	b.module.AddDeclaration(decl)
	return b
}

// Subsort declares the axiom subsort{inner, outer}.
func (b *ModuleBuilder) Subsort(inner, outer string) *ModuleBuilder {
	return b.Axiom(Var("R", outer), Attr("subsort", S(inner), S(outer)))
}

// Overload declares the axiom overload{}(outer(), inner()).
func (b *ModuleBuilder) Overload(outer, inner string) *ModuleBuilder {
	att := ast.NewCompositePattern(ast.NewSymbol("overload"),
		ast.NewCompositePattern(ast.NewSymbol(outer)),
		ast.NewCompositePattern(ast.NewSymbol(inner)))
	return b.Axiom(Var("R", "SortK"), att)
}

// Build returns the module.
func (b *ModuleBuilder) Build() *ast.Module {
	return b.module
}

// S parses a sort.
func S(text string) ast.Sort {
	s, err := ast.ParseSort(text, isVariable)
	if err != nil {
		panic(fmt.Sprintf("testutil: %v", err))
	}
	return s
}

func isVariable(name string) bool {
	return !strings.HasPrefix(name, "Sort")
}

// App builds an application of a fresh symbol named name with the given
// formal sort arguments, e.g. App("inj", []string{"SortInt", "SortKItem"}, x).
func App(name string, formal []string, args ...ast.Pattern) *ast.CompositePattern {
	sym := ast.NewSymbol(name)
	for _, f := range formal {
		sym.AddFormalArgument(S(f))
	}
	return ast.NewCompositePattern(sym, args...)
}

// Var builds a variable pattern.
func Var(name, sort string) *ast.VariablePattern {
	return ast.NewVariablePattern(name, S(sort))
}

// Str builds a string literal pattern.
func Str(value string) *ast.StringPattern {
	return ast.NewStringPattern(value)
}

// Attr builds an attribute with formal sort arguments and no arguments.
func Attr(name string, formal ...ast.Sort) *ast.CompositePattern {
	return ast.NewCompositePattern(ast.NewSymbol(name, formal...))
}

// Hook builds the attribute hook{}("value").
func Hook(value string) *ast.CompositePattern {
	return ast.NewCompositePattern(ast.NewSymbol("hook"), Str(value))
}
