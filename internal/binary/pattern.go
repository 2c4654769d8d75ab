package binary

import (
	"fmt"

	"github.com/roach88/kore/internal/ast"
)

// SerializePattern appends p in postfix order:
//
//	sort variable     0x07 name
//	composite sort    args... 0x06 len(args) name
//	symbol            formals... 0x08 len(formals) name
//	string pattern    0x05 value
//	variable pattern  sort 0x09 0x0D name
//	composite pattern args... symbol 0x04 len(args)
func (s *Serializer) SerializePattern(p ast.Pattern) {
	switch x := p.(type) {
	case *ast.CompositePattern:
		for _, arg := range x.Args {
			s.SerializePattern(arg)
		}
		s.SerializeSymbol(x.Constructor)
		s.Emit(HeaderCompositePattern)
		s.EmitLength(uint64(len(x.Args)))
	case *ast.VariablePattern:
		s.SerializeSort(x.Sort)
		s.Emit(HeaderVariablePattern)
		s.Emit(HeaderVariable)
		s.EmitString(x.Name)
	case *ast.StringPattern:
		s.Emit(HeaderStringPattern)
		s.EmitString(x.Value)
	default:
		panic(fmt.Sprintf("binary: unknown pattern type %T", p))
	}
}

// SerializeSymbol appends a symbol and its formal arguments.
func (s *Serializer) SerializeSymbol(sym *ast.Symbol) {
	for _, f := range sym.FormalArguments {
		s.SerializeSort(f)
	}
	s.Emit(HeaderSymbol)
	s.EmitLength(uint64(len(sym.FormalArguments)))
	s.EmitString(sym.Name)
}

// SerializeSort appends a sort.
func (s *Serializer) SerializeSort(sort ast.Sort) {
	switch x := sort.(type) {
	case *ast.SortVariable:
		s.Emit(HeaderSortVariable)
		s.EmitString(x.Name)
	case *ast.CompositeSort:
		for _, arg := range x.Args {
			s.SerializeSort(arg)
		}
		s.Emit(HeaderCompositeSort)
		s.EmitLength(uint64(len(x.Args)))
		s.EmitString(x.Name)
	default:
		panic(fmt.Sprintf("binary: unknown sort type %T", sort))
	}
}

// DeserializePattern reads the rest of the input as one pattern written by
// SerializePattern.
func (d *Deserializer) DeserializePattern() (ast.Pattern, error) {
	var stack []any
	pop := func() any {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return top
	}

	for {
		if len(stack) == 1 {
			if p, ok := stack[0].(ast.Pattern); ok && d.Remaining() == 0 {
				return p, nil
			}
		}
		if d.Remaining() == 0 {
			if len(stack) == 0 {
				return nil, ErrTruncated
			}
			return nil, fmt.Errorf("%w: %d nodes left on the stack", ErrTruncated, len(stack))
		}

		at := d.Offset()
		header, err := d.ReadByte()
		if err != nil {
			return nil, err
		}

		switch header {
		case HeaderSortVariable:
			name, err := d.ReadString()
			if err != nil {
				return nil, err
			}
			stack = append(stack, ast.Sort(ast.NewSortVariable(name)))

		case HeaderCompositeSort, HeaderSymbol:
			n, name, err := d.readArityAndName()
			if err != nil {
				return nil, err
			}
			if uint64(len(stack)) < n {
				return nil, d.invalid(at, "arity %d exceeds stack depth %d", n, len(stack))
			}
			sorts := make([]ast.Sort, n)
			for i := int(n) - 1; i >= 0; i-- {
				sort, ok := pop().(ast.Sort)
				if !ok {
					return nil, d.invalid(at, "expected sort argument")
				}
				sorts[i] = sort
			}
			if header == HeaderSymbol {
				stack = append(stack, ast.NewSymbol(name, sorts...))
			} else {
				stack = append(stack, ast.Sort(ast.NewCompositeSort(name, sorts...)))
			}

		case HeaderStringPattern:
			value, err := d.ReadString()
			if err != nil {
				return nil, err
			}
			stack = append(stack, ast.Pattern(ast.NewStringPattern(value)))

		case HeaderVariablePattern:
			next, err := d.ReadByte()
			if err != nil {
				return nil, err
			}
			if next != HeaderVariable {
				return nil, d.invalid(at, "expected variable header, found 0x%02x", next)
			}
			name, err := d.ReadString()
			if err != nil {
				return nil, err
			}
			if len(stack) == 0 {
				return nil, d.invalid(at, "variable without sort")
			}
			sort, ok := pop().(ast.Sort)
			if !ok {
				return nil, d.invalid(at, "expected variable sort")
			}
			stack = append(stack, ast.Pattern(ast.NewVariablePattern(name, sort)))

		case HeaderCompositePattern:
			n, err := d.ReadLength()
			if err != nil {
				return nil, err
			}
			if uint64(len(stack)) < n+1 {
				return nil, d.invalid(at, "arity %d exceeds stack depth %d", n, len(stack))
			}
			sym, ok := pop().(*ast.Symbol)
			if !ok {
				return nil, d.invalid(at, "expected constructor symbol")
			}
			args := make([]ast.Pattern, n)
			for i := int(n) - 1; i >= 0; i-- {
				arg, ok := pop().(ast.Pattern)
				if !ok {
					return nil, d.invalid(at, "expected pattern argument")
				}
				args[i] = arg
			}
			stack = append(stack, ast.Pattern(ast.NewCompositePattern(sym, args...)))

		default:
			return nil, d.invalid(at, "unknown node header 0x%02x", header)
		}
	}
}

func (d *Deserializer) readArityAndName() (uint64, string, error) {
	n, err := d.ReadLength()
	if err != nil {
		return 0, "", err
	}
	name, err := d.ReadString()
	if err != nil {
		return 0, "", err
	}
	return n, name, nil
}

func (d *Deserializer) invalid(at int, format string, args ...any) error {
	return fmt.Errorf("%w: offset %d: %s", ErrInvalidEncoding, at, fmt.Sprintf(format, args...))
}

// Encode writes p as a complete stream with header.
func Encode(p ast.Pattern) ([]byte, error) {
	s := NewSerializer()
	s.SerializePattern(p)
	if err := s.Err(); err != nil {
		return nil, err
	}
	return s.Data(), nil
}

// Decode reads a complete stream with header holding one pattern.
func Decode(data []byte) (ast.Pattern, error) {
	d := NewDeserializer(data)
	major, _, err := d.ReadHeader()
	if err != nil {
		return nil, err
	}
	if major != VersionMajor {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidEncoding, major)
	}
	return d.DeserializePattern()
}
