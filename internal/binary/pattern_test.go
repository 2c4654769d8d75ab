package binary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/kore/internal/ast"
	tu "github.com/roach88/kore/internal/testutil"
)

func TestPatternRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		pattern ast.Pattern
	}{
		{"string", tu.Str("hello")},
		{"empty string", tu.Str("")},
		{"variable", tu.Var("X", "SortInt")},
		{"variable with sort variable", tu.Var("X", "S")},
		{"nullary application", tu.App("dotk", nil)},
		{"nested", tu.App("kseq", nil,
			tu.App("inj", []string{"SortInt", "SortKItem"}, tu.Var("X", "SortInt")),
			tu.App("dotk", nil))},
		{"parametric sort", tu.Var("M", "SortMap{SortInt, SortList{V}}")},
		{"repeated names", tu.App("plus", nil,
			tu.App("plus", nil, tu.Var("X", "SortInt"), tu.Var("X", "SortInt")),
			tu.Str("plus"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Encode(tt.pattern)
			require.NoError(t, err)
			require.True(t, HasMagicHeader(data))

			got, err := Decode(data)
			require.NoError(t, err)
			assert.Equal(t, tt.pattern.String(), got.String())
		})
	}
}

func TestPatternRoundTripPreservesSorts(t *testing.T) {
	p := tu.App("inj", []string{"SortInt", "To"}, tu.Var("X", "SortInt"))

	data, err := Encode(p)
	require.NoError(t, err)
	got, err := Decode(data)
	require.NoError(t, err)

	c, ok := got.(*ast.CompositePattern)
	require.True(t, ok)
	require.Len(t, c.Constructor.FormalArguments, 2)
	assert.True(t, c.Constructor.FormalArguments[0].IsConcrete())
	_, isVar := c.Constructor.FormalArguments[1].(*ast.SortVariable)
	assert.True(t, isVar)
}

func TestSerializeVariablePatternBytes(t *testing.T) {
	s := NewFragmentSerializer()
	s.SerializePattern(tu.Var("X", "S"))

	assert.Equal(t, []byte{
		HeaderSortVariable, TagDirect, 'S', 0x00,
		HeaderVariablePattern, HeaderVariable, TagDirect, 'X', 0x00,
	}, s.Data())
}

func TestSerializeCompositeSortBytes(t *testing.T) {
	s := NewFragmentSerializer()
	s.SerializeSort(tu.S("SortList{SortInt}"))

	assert.Equal(t, []byte{
		HeaderCompositeSort, 0x00, TagDirect, 'S', 'o', 'r', 't', 'I', 'n', 't', 0x00,
		HeaderCompositeSort, 0x01, TagDirect, 'S', 'o', 'r', 't', 'L', 'i', 's', 't', 0x00,
	}, s.Data())
}

func TestSerializeInternsAcrossNodes(t *testing.T) {
	s := NewFragmentSerializer()
	s.SerializePattern(tu.App("f", nil, tu.Str("f")))

	// string pattern "f" is DIRECT, the constructor name is a BACKREF
	assert.Equal(t, []byte{
		HeaderStringPattern, TagDirect, 'f', 0x00,
		HeaderSymbol, 0x00, TagBackref, 0x09, 0x00, 0x00, 0x00,
		HeaderCompositePattern, 0x01,
	}, s.Data())

	got, err := NewDeserializer(s.Data()).DeserializePattern()
	require.NoError(t, err)
	assert.Equal(t, `f{}("f")`, got.String())
}

func TestDeserializePatternErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrTruncated},
		{"unknown header", []byte{0x42}, ErrInvalidEncoding},
		{"application without symbol", []byte{HeaderCompositePattern, 0x00}, ErrInvalidEncoding},
		{"variable without variable header", []byte{HeaderSortVariable, TagDirect, 'S', 0x00, HeaderVariablePattern, 0x01}, ErrInvalidEncoding},
		{"sort left over", []byte{HeaderSortVariable, TagDirect, 'S', 0x00}, ErrTruncated},
		{"symbol arity exceeds stack", []byte{HeaderSymbol, 0x02, TagDirect, 'f', 0x00}, ErrInvalidEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDeserializer(tt.data).DeserializePattern()
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeRejectsMissingHeader(t *testing.T) {
	s := NewFragmentSerializer()
	s.SerializePattern(tu.Str("x"))

	_, err := Decode(s.Data())
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestEncodeRejectsZeroByte(t *testing.T) {
	_, err := Encode(tu.App("label", nil, tu.Str("a\x00b")))
	assert.ErrorIs(t, err, ErrInvalidString)
}
