package loader

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/kore/internal/ast"
)

// ParsePattern reads a standalone pattern document:
//
//	params: [S]
//	pattern: {app: inj, sorts: [SortInt, S], args: [{var: X, sort: SortInt}]}
func ParsePattern(data []byte, path string) (ast.Pattern, error) {
	var file patternFileDoc
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, &LoadError{Code: ErrCodeSyntax, Path: path, Message: fmt.Sprintf("parsing YAML: %v", err)}
	}
	if file.Pattern == nil {
		return nil, &LoadError{Code: ErrCodeEmpty, Path: path, Message: "no pattern defined"}
	}

	params := make(map[string]bool, len(file.Params))
	for _, p := range file.Params {
		params[p] = true
	}
	c := &converter{path: path}
	return c.pattern(file.Pattern, func(name string) bool { return params[name] })
}

// MarshalPattern writes p as a pattern document that ParsePattern reads
// back to an equal pattern.
func MarshalPattern(p ast.Pattern) ([]byte, error) {
	vars := make(map[string]bool)
	doc := patternToDoc(p, vars)
	file := patternFileDoc{Params: slices.Sorted(maps.Keys(vars)), Pattern: &doc}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&file); err != nil {
		return nil, fmt.Errorf("marshal pattern: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshal pattern: %w", err)
	}
	return buf.Bytes(), nil
}

func patternToDoc(p ast.Pattern, vars map[string]bool) patternDoc {
	switch x := p.(type) {
	case *ast.StringPattern:
		value := x.Value
		return patternDoc{Str: &value}
	case *ast.VariablePattern:
		return patternDoc{Var: x.Name, Sort: sortText(x.Sort, vars)}
	case *ast.CompositePattern:
		doc := patternDoc{App: x.Constructor.Name}
		for _, f := range x.Constructor.FormalArguments {
			doc.Sorts = append(doc.Sorts, sortText(f, vars))
		}
		for _, arg := range x.Args {
			doc.Args = append(doc.Args, patternToDoc(arg, vars))
		}
		return doc
	default:
		panic(fmt.Sprintf("loader: unknown pattern type %T", p))
	}
}

// sortText prints s canonically and collects the sort variables it uses.
func sortText(s ast.Sort, vars map[string]bool) string {
	collectVars(s, vars)
	return s.String()
}

func collectVars(s ast.Sort, vars map[string]bool) {
	switch x := s.(type) {
	case *ast.SortVariable:
		vars[x.Name] = true
	case *ast.CompositeSort:
		for _, arg := range x.Args {
			collectVars(arg, vars)
		}
	}
}
