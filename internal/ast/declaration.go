package ast

// Attributes maps an attribute name to its attribute pattern, e.g.
// subsort{SortNat{}, SortInt{}}() or hook{}("INT.Int").
type Attributes map[string]*CompositePattern

// Has reports whether the attribute is present.
func (a Attributes) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// StringValue returns the first string-literal argument of the attribute.
func (a Attributes) StringValue(name string) (string, bool) {
	att, ok := a[name]
	if !ok || len(att.Args) == 0 {
		return "", false
	}
	s, ok := att.Args[0].(*StringPattern)
	if !ok {
		return "", false
	}
	return s.Value, true
}

// Add stores an attribute under its constructor name.
func (a Attributes) Add(att *CompositePattern) {
	a[att.Constructor.Name] = att
}

// Declaration is one of *SortDeclaration, *SymbolDeclaration,
// *AliasDeclaration or *AxiomDeclaration.
type Declaration interface {
	Attributes() Attributes
	ObjectSortVariables() []*SortVariable
	AddAttribute(att *CompositePattern)
	AddObjectSortVariable(v *SortVariable)

	IsFunction() bool
	IsMacro() bool
	IsCollectionElement() bool

	isDeclaration()
}

// declaration holds what every declaration kind shares.
type declaration struct {
	attributes Attributes
	sortVars   []*SortVariable
}

func (d *declaration) Attributes() Attributes {
	if d.attributes == nil {
		d.attributes = make(Attributes)
	}
	return d.attributes
}

func (d *declaration) ObjectSortVariables() []*SortVariable { return d.sortVars }

func (d *declaration) AddAttribute(att *CompositePattern) {
	d.Attributes().Add(att)
}

func (d *declaration) AddObjectSortVariable(v *SortVariable) {
	d.sortVars = append(d.sortVars, v)
}

func (d *declaration) IsFunction() bool {
	return d.attributes.Has("function") || d.attributes.Has("anywhere")
}

func (d *declaration) IsMacro() bool {
	for _, name := range []string{"macro", "macro-rec", "alias", "alias-rec"} {
		if d.attributes.Has(name) {
			return true
		}
	}
	return false
}

func (d *declaration) IsCollectionElement() bool {
	return d.attributes.Has("element")
}

func (*declaration) isDeclaration() {}

// SortDeclaration declares a sort constructor.
type SortDeclaration struct {
	declaration
	Name   string
	Hooked bool
}

// NewSortDeclaration creates a sort declaration.
func NewSortDeclaration(name string, hooked bool) *SortDeclaration {
	return &SortDeclaration{Name: name, Hooked: hooked}
}

// IsHooked reports whether the sort is implemented natively.
func (d *SortDeclaration) IsHooked() bool { return d.Hooked }

// SymbolDeclaration declares a symbol signature.
type SymbolDeclaration struct {
	declaration
	Symbol *Symbol
	Hooked bool
}

// NewSymbolDeclaration creates a symbol declaration for a symbol named name.
func NewSymbolDeclaration(name string, hooked bool) *SymbolDeclaration {
	return &SymbolDeclaration{Symbol: NewSymbol(name), Hooked: hooked}
}

// AddObjectSortVariable also records v as a formal argument of the declared
// symbol, matching the KORE form symbol f{S}(S) : S.
func (d *SymbolDeclaration) AddObjectSortVariable(v *SortVariable) {
	d.declaration.AddObjectSortVariable(v)
	d.Symbol.AddFormalArgument(v)
}

// IsHooked reports whether the symbol is implemented natively.
func (d *SymbolDeclaration) IsHooked() bool { return d.Hooked }

// AliasDeclaration declares an alias: applications of Symbol to arguments are
// replaced by Pattern with BoundVariables bound to the arguments.
type AliasDeclaration struct {
	declaration
	Symbol         *Symbol
	BoundVariables []*VariablePattern
	Pattern        Pattern
}

// NewAliasDeclaration creates an alias declaration.
func NewAliasDeclaration(name string) *AliasDeclaration {
	return &AliasDeclaration{Symbol: NewSymbol(name)}
}

// AddObjectSortVariable also records v as a formal argument of the alias
// symbol.
func (d *AliasDeclaration) AddObjectSortVariable(v *SortVariable) {
	d.declaration.AddObjectSortVariable(v)
	d.Symbol.AddFormalArgument(v)
}

// Substitution binds the alias's variables to the arguments of app and its
// sort variables to app's formal arguments.
func (d *AliasDeclaration) Substitution(app *CompositePattern) (map[string]Pattern, Substitution) {
	vars := make(map[string]Pattern, len(d.BoundVariables))
	for i, v := range d.BoundVariables {
		if i < len(app.Args) {
			vars[v.Name] = app.Args[i]
		}
	}
	var sorts Substitution
	if len(d.sortVars) > 0 {
		sorts = make(Substitution, len(d.sortVars))
		for i, v := range d.sortVars {
			if i < len(app.Constructor.FormalArguments) {
				sorts[v.Name] = app.Constructor.FormalArguments[i]
			}
		}
	}
	return vars, sorts
}

// AxiomDeclaration is a rewrite rule, equation or other axiom.
//
// Ordinal is assigned once, in encounter order, during preprocessing.
type AxiomDeclaration struct {
	declaration
	Pattern Pattern
	Ordinal uint32
}

// NewAxiomDeclaration creates an axiom over pattern.
func NewAxiomDeclaration(pattern Pattern) *AxiomDeclaration {
	return &AxiomDeclaration{Pattern: pattern}
}

// nonRequired lists the attributes of axioms that the backend does not need.
var nonRequired = []string{
	"assoc", "comm", "idem", "unit", "functional", "constructor",
	"total", "subsort", "ceil", "non-executable", "simplification",
}

// IsRequired reports whether the axiom must be retained for code generation.
func (d *AxiomDeclaration) IsRequired() bool {
	for _, name := range nonRequired {
		if d.attributes.Has(name) {
			return false
		}
	}
	return true
}

// Module is a named, ordered list of declarations.
type Module struct {
	Name         string
	Declarations []Declaration
	Attributes   Attributes
}

// NewModule creates an empty module.
func NewModule(name string) *Module {
	return &Module{Name: name, Attributes: make(Attributes)}
}

// AddDeclaration appends decl to the module.
func (m *Module) AddDeclaration(decl Declaration) {
	m.Declarations = append(m.Declarations, decl)
}
