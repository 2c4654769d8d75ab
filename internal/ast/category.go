package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// SortCategory is the runtime value category of a sort.
type SortCategory int

const (
	CategoryUncomputed SortCategory = iota
	CategoryMap
	CategoryRangeMap
	CategoryList
	CategorySet
	CategoryInt
	CategoryFloat
	CategoryStringBuffer
	CategoryBool
	CategorySymbol
	CategoryVariable
	CategoryMInt
)

var categoryNames = [...]string{
	CategoryUncomputed:   "Uncomputed",
	CategoryMap:          "Map",
	CategoryRangeMap:     "RangeMap",
	CategoryList:         "List",
	CategorySet:          "Set",
	CategoryInt:          "Int",
	CategoryFloat:        "Float",
	CategoryStringBuffer: "StringBuffer",
	CategoryBool:         "Bool",
	CategorySymbol:       "Symbol",
	CategoryVariable:     "Variable",
	CategoryMInt:         "MInt",
}

func (c SortCategory) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("SortCategory(%d)", int(c))
	}
	return categoryNames[c]
}

// ValueType is a sort category together with its bit width. Bits is only
// meaningful for MInt.
type ValueType struct {
	Cat  SortCategory
	Bits uint64
}

func (v ValueType) String() string {
	if v.Cat == CategoryMInt {
		return fmt.Sprintf("MInt%d", v.Bits)
	}
	return v.Cat.String()
}

// LayoutCode is the fragment a value of this type contributes to a symbol
// layout key.
func (v ValueType) LayoutCode() string {
	switch v.Cat {
	case CategoryMap:
		return "1"
	case CategoryRangeMap:
		return "b"
	case CategoryList:
		return "2"
	case CategorySet:
		return "3"
	case CategoryInt:
		return "4"
	case CategoryFloat:
		return "5"
	case CategoryStringBuffer:
		return "6"
	case CategoryBool:
		return "7"
	case CategoryVariable:
		return "8"
	case CategorySymbol:
		return "0"
	case CategoryMInt:
		return "_" + strconv.FormatUint(v.Bits, 10) + "_"
	default:
		panic(fmt.Sprintf("no layout code for category %s", v.Cat))
	}
}

// CategoryForHook maps the hook attribute of a sort declaration to its value
// category. bits is used only for MINT.MInt. Unhooked sorts and unknown hooks
// are Symbol.
func CategoryForHook(hook string, bits uint64) ValueType {
	switch hook {
	case "MAP.Map":
		return ValueType{Cat: CategoryMap}
	case "RANGEMAP.RangeMap":
		return ValueType{Cat: CategoryRangeMap}
	case "LIST.List", "ARRAY.Array":
		return ValueType{Cat: CategoryList}
	case "SET.Set":
		return ValueType{Cat: CategorySet}
	case "INT.Int":
		return ValueType{Cat: CategoryInt}
	case "FLOAT.Float":
		return ValueType{Cat: CategoryFloat}
	case "BUFFER.StringBuffer":
		return ValueType{Cat: CategoryStringBuffer}
	case "BOOL.Bool":
		return ValueType{Cat: CategoryBool}
	case "KVAR.KVar":
		return ValueType{Cat: CategoryVariable}
	case "MINT.MInt":
		return ValueType{Cat: CategoryMInt, Bits: bits}
	default:
		return ValueType{Cat: CategorySymbol}
	}
}

// ParseBits extracts the first run of decimal digits in s, as used by
// machine-integer parameter sorts ("SortBits64", "BITS.64").
func ParseBits(s string) (uint64, bool) {
	start := strings.IndexAny(s, "0123456789")
	if start < 0 {
		return 0, false
	}
	end := start
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.ParseUint(s[start:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
