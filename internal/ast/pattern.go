package ast

import (
	"strconv"
	"strings"
)

// Pattern is a *CompositePattern, *VariablePattern or *StringPattern.
type Pattern interface {
	String() string

	isPattern()
}

// CompositePattern is a symbol applied to argument patterns. Attributes are
// composite patterns too.
type CompositePattern struct {
	Constructor *Symbol
	Args        []Pattern
}

// NewCompositePattern creates an application of constructor to args.
func NewCompositePattern(constructor *Symbol, args ...Pattern) *CompositePattern {
	return &CompositePattern{Constructor: constructor, Args: args}
}

func (*CompositePattern) isPattern() {}

func (c *CompositePattern) String() string {
	var b strings.Builder
	b.WriteString(c.Constructor.String())
	b.WriteByte('(')
	for i, arg := range c.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(arg.String())
	}
	b.WriteByte(')')
	return b.String()
}

// VariablePattern is a sorted pattern variable.
type VariablePattern struct {
	Name string
	Sort Sort
}

// NewVariablePattern creates a pattern variable.
func NewVariablePattern(name string, sort Sort) *VariablePattern {
	return &VariablePattern{Name: name, Sort: sort}
}

func (*VariablePattern) isPattern() {}

func (v *VariablePattern) String() string {
	return v.Name + " : " + v.Sort.String()
}

// StringPattern is a string literal.
type StringPattern struct {
	Value string
}

// NewStringPattern creates a string literal pattern.
func NewStringPattern(value string) *StringPattern {
	return &StringPattern{Value: value}
}

func (*StringPattern) isPattern() {}

func (s *StringPattern) String() string {
	return strconv.Quote(s.Value)
}

// Walk visits p and its subpatterns in pre-order.
func Walk(p Pattern, visit func(Pattern)) {
	visit(p)
	if c, ok := p.(*CompositePattern); ok {
		for _, arg := range c.Args {
			Walk(arg, visit)
		}
	}
}

// Symbols returns the non-builtin constructors of p in pre-order.
func Symbols(p Pattern) []*Symbol {
	var out []*Symbol
	Walk(p, func(node Pattern) {
		if c, ok := node.(*CompositePattern); ok && !c.Constructor.IsBuiltin() {
			out = append(out, c.Constructor)
		}
	})
	return out
}

// Substitute replaces pattern variables bound in vars and sort variables bound
// in sorts. Every rebuilt composite gets a fresh copy of its constructor.
func Substitute(p Pattern, vars map[string]Pattern, sorts Substitution) Pattern {
	switch x := p.(type) {
	case *VariablePattern:
		if bound, ok := vars[x.Name]; ok {
			return bound
		}
		if len(sorts) == 0 {
			return x
		}
		return &VariablePattern{Name: x.Name, Sort: x.Sort.Substitute(sorts)}
	case *CompositePattern:
		args := make([]Pattern, len(x.Args))
		for i, arg := range x.Args {
			args[i] = Substitute(arg, vars, sorts)
		}
		return &CompositePattern{Constructor: x.Constructor.clone(sorts), Args: args}
	case *StringPattern:
		return x
	default:
		panic("ast: unknown pattern type")
	}
}

// AliasTable resolves alias declarations by symbol name.
type AliasTable func(name string) (*AliasDeclaration, bool)

// ExpandAliases replaces every alias application in p with the alias's
// right-hand side instantiated at the application's arguments, recursively.
// p is not modified; unchanged subtrees are shared with the result.
func ExpandAliases(p Pattern, aliases AliasTable) Pattern {
	c, ok := p.(*CompositePattern)
	if !ok {
		return p
	}
	if alias, found := aliases(c.Constructor.Name); found {
		vars, sorts := alias.Substitution(c)
		return ExpandAliases(Substitute(alias.Pattern, vars, sorts), aliases)
	}
	if len(c.Args) == 0 {
		return c
	}
	changed := false
	args := make([]Pattern, len(c.Args))
	for i, arg := range c.Args {
		args[i] = ExpandAliases(arg, aliases)
		if args[i] != arg {
			changed = true
		}
	}
	if !changed {
		return c
	}
	return &CompositePattern{Constructor: c.Constructor, Args: args}
}
