package loader

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// fileDoc is the top level of a definition file.
type fileDoc struct {
	// Attributes are definition-level attributes.
	Attributes map[string]*attributeDoc `yaml:"attributes,omitempty"`

	// Modules in definition order.
	Modules []moduleDoc `yaml:"modules"`
}

type moduleDoc struct {
	Name         string                   `yaml:"name"`
	Attributes   map[string]*attributeDoc `yaml:"attributes,omitempty"`
	Declarations []declarationDoc         `yaml:"declarations"`
}

// declarationDoc holds exactly one of Sort, Symbol, Alias or Axiom.
type declarationDoc struct {
	Sort   string      `yaml:"sort,omitempty"`
	Symbol string      `yaml:"symbol,omitempty"` // signature
	Alias  string      `yaml:"alias,omitempty"`  // signature
	Axiom  *patternDoc `yaml:"axiom,omitempty"`

	// Params are the sort variables of a sort or axiom declaration.
	Params []string `yaml:"params,omitempty"`

	// Hook marks a sort or symbol hooked and records its hook attribute.
	Hook string `yaml:"hook,omitempty"`

	// Variables and Pattern are the bound variables and right-hand side of
	// an alias.
	Variables []patternDoc `yaml:"variables,omitempty"`
	Pattern   *patternDoc  `yaml:"pattern,omitempty"`

	Attributes map[string]*attributeDoc `yaml:"attributes,omitempty"`

	line int
}

// attributeDoc is an attribute application name{sorts}(args). A null value
// is an attribute without sorts or arguments.
type attributeDoc struct {
	Sorts []string     `yaml:"sorts,omitempty"`
	Args  []patternDoc `yaml:"args,omitempty"`
}

// patternDoc holds exactly one of App, Var or Str.
type patternDoc struct {
	App   string       `yaml:"app,omitempty"`
	Sorts []string     `yaml:"sorts,omitempty"` // formal arguments of App
	Args  []patternDoc `yaml:"args,omitempty"`

	Var  string `yaml:"var,omitempty"`
	Sort string `yaml:"sort,omitempty"` // sort of Var

	Str *string `yaml:"str,omitempty"`

	line int
}

// patternFileDoc is a standalone pattern document.
type patternFileDoc struct {
	Params  []string    `yaml:"params,omitempty"`
	Pattern *patternDoc `yaml:"pattern"`
}

var declarationKeys = []string{
	"sort", "symbol", "alias", "axiom", "params", "hook", "variables", "pattern", "attributes",
}

func (d *declarationDoc) UnmarshalYAML(node *yaml.Node) error {
	if err := checkKeys(node, declarationKeys); err != nil {
		return err
	}
	type plain declarationDoc
	if err := node.Decode((*plain)(d)); err != nil {
		return err
	}
	d.line = node.Line
	return nil
}

var patternKeys = []string{"app", "sorts", "args", "var", "sort", "str"}

func (p *patternDoc) UnmarshalYAML(node *yaml.Node) error {
	if err := checkKeys(node, patternKeys); err != nil {
		return err
	}
	type plain patternDoc
	if err := node.Decode((*plain)(p)); err != nil {
		return err
	}
	p.line = node.Line
	return nil
}

// checkKeys rejects mapping keys outside allowed, so typos such as
// "atributes:" fail instead of being ignored.
func checkKeys(node *yaml.Node, allowed []string) error {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if !slices.Contains(allowed, key.Value) {
			return fmt.Errorf("line %d: field %s not allowed", key.Line, key.Value)
		}
	}
	return nil
}
