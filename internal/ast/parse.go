package ast

import (
	"fmt"
	"strings"
)

// ParseSort reads a sort in the canonical form produced by String, such as
// SortMap{SortInt{}, V}. A bare name is a sort variable when isVar reports
// it, and a nullary composite sort otherwise. isVar may be nil.
func ParseSort(text string, isVar func(name string) bool) (Sort, error) {
	p := &sortParser{src: text, isVar: isVar}
	s, err := p.sort()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return s, nil
}

// ParseSignature reads a symbol declaration of the form
// name{P1, P2}(A1, A2) : R. Every formal parameter must be a bare name and
// becomes a sort variable of the declaration; those names denote sort
// variables in the argument and return sorts.
func ParseSignature(text string, hooked bool) (*SymbolDeclaration, error) {
	p := &sortParser{src: text}
	name := p.ident()
	if name == "" {
		return nil, p.errorf("expected symbol name")
	}
	decl := NewSymbolDeclaration(name, hooked)

	params := make(map[string]bool)
	if p.accept('{') {
		for !p.accept('}') {
			if len(params) > 0 && !p.accept(',') {
				return nil, p.errorf("expected ',' or '}'")
			}
			param := p.ident()
			if param == "" {
				return nil, p.errorf("expected sort parameter")
			}
			params[param] = true
			decl.AddObjectSortVariable(NewSortVariable(param))
		}
	}
	p.isVar = func(name string) bool { return params[name] }

	if !p.accept('(') {
		return nil, p.errorf("expected '('")
	}
	for first := true; !p.accept(')'); first = false {
		if !first && !p.accept(',') {
			return nil, p.errorf("expected ',' or ')'")
		}
		arg, err := p.sort()
		if err != nil {
			return nil, err
		}
		decl.Symbol.AddArgument(arg)
	}
	if !p.accept(':') {
		return nil, p.errorf("expected ':' before return sort")
	}
	ret, err := p.sort()
	if err != nil {
		return nil, err
	}
	decl.Symbol.SetSort(ret)
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return decl, nil
}

type sortParser struct {
	src   string
	pos   int
	isVar func(string) bool
}

func (p *sortParser) errorf(format string, args ...any) error {
	return fmt.Errorf("parse %q at offset %d: %s", p.src, p.pos, fmt.Sprintf(format, args...))
}

func (p *sortParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *sortParser) accept(c byte) bool {
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *sortParser) ident() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && !strings.ContainsRune("{}(),: \t", rune(p.src[p.pos])) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *sortParser) sort() (Sort, error) {
	name := p.ident()
	if name == "" {
		return nil, p.errorf("expected sort")
	}
	if !p.accept('{') {
		if p.isVar != nil && p.isVar(name) {
			return NewSortVariable(name), nil
		}
		return NewCompositeSort(name), nil
	}
	var args []Sort
	for first := true; !p.accept('}'); first = false {
		if !first && !p.accept(',') {
			return nil, p.errorf("expected ',' or '}'")
		}
		arg, err := p.sort()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return NewCompositeSort(name, args...), nil
}
