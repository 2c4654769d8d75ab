package definition

import (
	"github.com/roach88/kore/internal/ast"
)

// Category returns the value type of a concrete sort. An explicit category on
// the sort wins; otherwise it is derived from the hook of the sort's
// declaration, and unhooked or undeclared sorts are Symbol. Sort variables
// have no category.
func (d *Definition) Category(s ast.Sort) ast.ValueType {
	c, ok := s.(*ast.CompositeSort)
	if !ok {
		return ast.ValueType{}
	}
	if c.Category.Cat != ast.CategoryUncomputed {
		return c.Category
	}
	id := d.sorts.intern(c)
	if vt, ok := d.categories[id]; ok {
		return vt
	}
	vt := d.deriveCategory(c)
	d.categories[id] = vt
	return vt
}

func (d *Definition) deriveCategory(c *ast.CompositeSort) ast.ValueType {
	decl, ok := d.sortDecls[c.Name]
	if !ok || !decl.IsHooked() {
		return ast.ValueType{Cat: ast.CategorySymbol}
	}
	hook, _ := decl.Attributes().StringValue("hook")
	var bits uint64
	if hook == "MINT.MInt" && len(c.Args) > 0 {
		bits = d.machineIntBits(c.Args[0])
	}
	return ast.CategoryForHook(hook, bits)
}

// machineIntBits reads the width of MINT.MInt{Width}: the digits of the
// width sort's hook when it has one, else the digits of its name.
func (d *Definition) machineIntBits(width ast.Sort) uint64 {
	param, ok := width.(*ast.CompositeSort)
	if !ok {
		return 0
	}
	if decl, ok := d.sortDecls[param.Name]; ok {
		if hook, ok := decl.Attributes().StringValue("hook"); ok {
			if n, ok := ast.ParseBits(hook); ok {
				return n
			}
		}
	}
	n, _ := ast.ParseBits(param.Name)
	return n
}
