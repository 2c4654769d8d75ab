package ir

// Snapshot is the preprocessed symbol table of a definition.
type Snapshot struct {
	IRVersion       string            `json:"ir_version"`
	Symbols         []SymbolEntry     `json:"symbols"`         // concrete symbols, by tag
	Polymorphic     []RangeEntry      `json:"polymorphic"`     // polymorphic occurrences with a tag range
	LayoutCount     int               `json:"layout_count"`    // distinct layout ids (ids start at 1)
	Axioms          []AxiomEntry      `json:"axioms"`          // every ordinal, retained or not
	Relations       Relations         `json:"relations"`
	HookedSorts     map[string]string `json:"hooked_sorts"`    // value type -> sort
	FreshFunctions  map[string]string `json:"fresh_functions"` // sort name -> generator symbol
	InjectionSymbol string            `json:"injection_symbol,omitempty"`
}

// SymbolEntry describes one concrete symbol instantiation.
type SymbolEntry struct {
	Tag       uint32 `json:"tag"`
	Name      string `json:"name"`
	Text      string `json:"text"`      // e.g. "inj{SortNat{}, SortInt{}}"
	Signature string `json:"signature"` // text plus argument and return sorts
	Layout    uint16 `json:"layout"`
	Header    string `json:"header"` // block header word, hex
}

// RangeEntry describes a polymorphic occurrence and the tags it spans.
type RangeEntry struct {
	Text     string `json:"text"`
	FirstTag uint32 `json:"first_tag"`
	LastTag  uint32 `json:"last_tag"`
}

// AxiomEntry records an axiom ordinal and whether the axiom was retained.
type AxiomEntry struct {
	Ordinal  uint32 `json:"ordinal"`
	Retained bool   `json:"retained"`
}

// Relations holds the derived relations keyed by canonical sort or symbol
// text. Member lists are sorted.
type Relations struct {
	Supersorts   map[string][]string `json:"supersorts"`
	Subsorts     map[string][]string `json:"subsorts"`
	Overloads    map[string][]string `json:"overloads"`
	SortContains map[string][]string `json:"sort_contains"`
}

// SymbolByTag returns the entry for tag.
func (s *Snapshot) SymbolByTag(tag uint32) (SymbolEntry, bool) {
	for _, entry := range s.Symbols {
		if entry.Tag == tag {
			return entry, true
		}
	}
	return SymbolEntry{}, false
}
