package loader

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/kore/internal/ast"
	"github.com/roach88/kore/internal/definition"
)

// Document is a parsed definition file.
type Document struct {
	Modules    []*ast.Module
	Attributes []*ast.CompositePattern
}

// LoadFile reads and converts a definition file.
func LoadFile(path string, mode LoadMode) (*Document, []error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Path: path, Message: readMessage(err)}}
	}
	return Parse(data, path, mode)
}

func readMessage(err error) string {
	if errors.Is(err, os.ErrNotExist) {
		return "file not found"
	}
	return err.Error()
}

// Parse converts a definition file's contents. path is used only in error
// messages.
func Parse(data []byte, path string, mode LoadMode) (*Document, []error) {
	var file fileDoc
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeSyntax, Path: path, Message: fmt.Sprintf("parsing YAML: %v", err)}}
	}
	if len(file.Modules) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeEmpty, Path: path, Message: "no modules defined"}}
	}

	c := &converter{path: path}
	doc := &Document{}

	atts, err := c.attributes(file.Attributes, 0, nil)
	if err != nil {
		return nil, []error{err}
	}
	doc.Attributes = atts

	var errs []error
	for _, md := range file.Modules {
		m := ast.NewModule(md.Name)
		moduleAtts, err := c.attributes(md.Attributes, 0, nil)
		if err != nil {
			errs = append(errs, err)
			if mode == LoadModeFailFast {
				return nil, errs
			}
		}
		for _, att := range moduleAtts {
			m.Attributes.Add(att)
		}

		for i := range md.Declarations {
			decl, err := c.declaration(&md.Declarations[i])
			if err != nil {
				errs = append(errs, err)
				if mode == LoadModeFailFast {
					return nil, errs
				}
				continue
			}
			m.AddDeclaration(decl)
		}
		doc.Modules = append(doc.Modules, m)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return doc, nil
}

// LoadDefinition reads a definition file and runs Precompute on it.
func LoadDefinition(path string, opts ...definition.Option) (*definition.Definition, error) {
	doc, errs := LoadFile(path, LoadModeFailFast)
	if len(errs) > 0 {
		return nil, errs[0]
	}
	return doc.Definition(opts...)
}

// Definition builds a Definition from the document and runs Precompute.
func (doc *Document) Definition(opts ...definition.Option) (*definition.Definition, error) {
	d := definition.New(opts...)
	for _, att := range doc.Attributes {
		d.AddAttribute(att)
	}
	for _, m := range doc.Modules {
		if err := d.AddModule(m); err != nil {
			return nil, err
		}
	}
	if err := d.Precompute(); err != nil {
		return nil, err
	}
	return d, nil
}

// converter turns documents into ast values, tagging errors with the file.
type converter struct {
	path string
}

func (c *converter) errorf(code string, line int, format string, args ...any) *LoadError {
	return &LoadError{Code: code, Path: c.path, Line: line, Message: fmt.Sprintf(format, args...)}
}

func (c *converter) declaration(doc *declarationDoc) (ast.Declaration, error) {
	kinds := 0
	for _, set := range []bool{doc.Sort != "", doc.Symbol != "", doc.Alias != "", doc.Axiom != nil} {
		if set {
			kinds++
		}
	}
	if kinds != 1 {
		return nil, c.errorf(ErrCodeDeclaration, doc.line, "declaration must have exactly one of sort, symbol, alias or axiom")
	}

	switch {
	case doc.Sort != "":
		return c.sortDeclaration(doc)
	case doc.Symbol != "":
		return c.symbolDeclaration(doc)
	case doc.Alias != "":
		return c.aliasDeclaration(doc)
	default:
		return c.axiomDeclaration(doc)
	}
}

func (c *converter) sortDeclaration(doc *declarationDoc) (ast.Declaration, error) {
	decl := ast.NewSortDeclaration(doc.Sort, doc.Hook != "")
	isVar, err := c.params(doc, decl)
	if err != nil {
		return nil, err
	}
	if err := c.addAttributes(decl, doc, isVar); err != nil {
		return nil, err
	}
	return decl, nil
}

func (c *converter) symbolDeclaration(doc *declarationDoc) (ast.Declaration, error) {
	decl, err := ast.ParseSignature(doc.Symbol, doc.Hook != "")
	if err != nil {
		return nil, c.errorf(ErrCodeSort, doc.line, "%v", err)
	}
	if len(doc.Params) > 0 {
		return nil, c.errorf(ErrCodeDeclaration, doc.line, "symbol %s: sort variables belong in the signature", decl.Symbol.Name)
	}
	if err := c.addAttributes(decl, doc, signatureVars(decl.ObjectSortVariables())); err != nil {
		return nil, err
	}
	return decl, nil
}

func (c *converter) aliasDeclaration(doc *declarationDoc) (ast.Declaration, error) {
	sig, err := ast.ParseSignature(doc.Alias, false)
	if err != nil {
		return nil, c.errorf(ErrCodeSort, doc.line, "%v", err)
	}
	if doc.Pattern == nil {
		return nil, c.errorf(ErrCodeDeclaration, doc.line, "alias %s has no pattern", sig.Symbol.Name)
	}

	decl := ast.NewAliasDeclaration(sig.Symbol.Name)
	for _, v := range sig.ObjectSortVariables() {
		decl.AddObjectSortVariable(v)
	}
	decl.Symbol.Arguments = sig.Symbol.Arguments
	decl.Symbol.SetSort(sig.Symbol.Sort)

	isVar := signatureVars(sig.ObjectSortVariables())
	for i := range doc.Variables {
		p, err := c.pattern(&doc.Variables[i], isVar)
		if err != nil {
			return nil, err
		}
		v, ok := p.(*ast.VariablePattern)
		if !ok {
			return nil, c.errorf(ErrCodePattern, doc.Variables[i].line, "alias %s: bound variables must be variables", sig.Symbol.Name)
		}
		decl.BoundVariables = append(decl.BoundVariables, v)
	}
	if decl.Pattern, err = c.pattern(doc.Pattern, isVar); err != nil {
		return nil, err
	}
	if err := c.addAttributes(decl, doc, isVar); err != nil {
		return nil, err
	}
	return decl, nil
}

func (c *converter) axiomDeclaration(doc *declarationDoc) (ast.Declaration, error) {
	decl := ast.NewAxiomDeclaration(nil)
	isVar, err := c.params(doc, decl)
	if err != nil {
		return nil, err
	}
	if decl.Pattern, err = c.pattern(doc.Axiom, isVar); err != nil {
		return nil, err
	}
	if err := c.addAttributes(decl, doc, isVar); err != nil {
		return nil, err
	}
	return decl, nil
}

// params declares doc.Params as sort variables of decl and returns the
// predicate recognising them.
func (c *converter) params(doc *declarationDoc, decl ast.Declaration) (func(string) bool, error) {
	set := make(map[string]bool, len(doc.Params))
	for _, p := range doc.Params {
		if set[p] {
			return nil, c.errorf(ErrCodeDuplicateParam, doc.line, "sort variable %s listed twice", p)
		}
		set[p] = true
		decl.AddObjectSortVariable(ast.NewSortVariable(p))
	}
	return func(name string) bool { return set[name] }, nil
}

func signatureVars(vars []*ast.SortVariable) func(string) bool {
	return func(name string) bool {
		return slices.ContainsFunc(vars, func(v *ast.SortVariable) bool { return v.Name == name })
	}
}

func (c *converter) addAttributes(decl ast.Declaration, doc *declarationDoc, isVar func(string) bool) error {
	atts, err := c.attributes(doc.Attributes, doc.line, isVar)
	if err != nil {
		return err
	}
	for _, att := range atts {
		decl.AddAttribute(att)
	}
	if doc.Hook != "" {
		decl.AddAttribute(ast.NewCompositePattern(ast.NewSymbol("hook"), ast.NewStringPattern(doc.Hook)))
	}
	return nil
}

// attributes converts an attribute map in name order.
func (c *converter) attributes(docs map[string]*attributeDoc, line int, isVar func(string) bool) ([]*ast.CompositePattern, error) {
	out := make([]*ast.CompositePattern, 0, len(docs))
	for _, name := range slices.Sorted(maps.Keys(docs)) {
		sym := ast.NewSymbol(name)
		att := ast.NewCompositePattern(sym)
		if doc := docs[name]; doc != nil {
			for _, text := range doc.Sorts {
				s, err := ast.ParseSort(text, isVar)
				if err != nil {
					return nil, c.errorf(ErrCodeSort, line, "attribute %s: %v", name, err)
				}
				sym.AddFormalArgument(s)
			}
			for i := range doc.Args {
				arg, err := c.pattern(&doc.Args[i], isVar)
				if err != nil {
					return nil, err
				}
				att.Args = append(att.Args, arg)
			}
		}
		out = append(out, att)
	}
	return out, nil
}

func (c *converter) pattern(doc *patternDoc, isVar func(string) bool) (ast.Pattern, error) {
	kinds := 0
	for _, set := range []bool{doc.App != "", doc.Var != "", doc.Str != nil} {
		if set {
			kinds++
		}
	}
	if kinds != 1 {
		return nil, c.errorf(ErrCodePattern, doc.line, "pattern must have exactly one of app, var or str")
	}

	switch {
	case doc.Str != nil:
		return ast.NewStringPattern(*doc.Str), nil

	case doc.Var != "":
		if doc.Sort == "" {
			return nil, c.errorf(ErrCodePattern, doc.line, "variable %s has no sort", doc.Var)
		}
		s, err := ast.ParseSort(doc.Sort, isVar)
		if err != nil {
			return nil, c.errorf(ErrCodeSort, doc.line, "variable %s: %v", doc.Var, err)
		}
		return ast.NewVariablePattern(doc.Var, s), nil

	default:
		sym := ast.NewSymbol(doc.App)
		for _, text := range doc.Sorts {
			s, err := ast.ParseSort(text, isVar)
			if err != nil {
				return nil, c.errorf(ErrCodeSort, doc.line, "%s: %v", doc.App, err)
			}
			sym.AddFormalArgument(s)
		}
		args := make([]ast.Pattern, 0, len(doc.Args))
		for i := range doc.Args {
			arg, err := c.pattern(&doc.Args[i], isVar)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		return ast.NewCompositePattern(sym, args...), nil
	}
}
