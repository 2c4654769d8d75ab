package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSort(t *testing.T) {
	isVar := func(name string) bool { return name == "V" }

	tests := []struct {
		input    string
		expected string
		concrete bool
	}{
		{"SortInt{}", "SortInt{}", true},
		{"SortInt", "SortInt{}", true},
		{"V", "V", false},
		{"SortMap{SortInt{}, V}", "SortMap{SortInt{}, V}", false},
		{" SortList{ SortMap{SortInt, SortInt} } ", "SortList{SortMap{SortInt{}, SortInt{}}}", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s, err := ParseSort(tt.input, isVar)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, s.String())
			assert.Equal(t, tt.concrete, s.IsConcrete())
		})
	}
}

func TestParseSortErrors(t *testing.T) {
	for _, input := range []string{"", "SortMap{SortInt", "SortInt{} extra", "{}"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseSort(input, nil)
			assert.Error(t, err)
		})
	}
}

func TestParseSignature(t *testing.T) {
	decl, err := ParseSignature("inj{From, To}(From) : To", false)
	require.NoError(t, err)

	assert.Equal(t, "inj", decl.Symbol.Name)
	assert.Len(t, decl.ObjectSortVariables(), 2)
	assert.Equal(t, "inj{From, To}(From) : To", decl.Symbol.Signature())
	assert.True(t, decl.Symbol.IsPolymorphic())
	assert.False(t, decl.Symbol.IsConcrete())
}

func TestParseSignatureMonomorphic(t *testing.T) {
	decl, err := ParseSignature("plus(SortInt, SortInt{}) : SortInt", true)
	require.NoError(t, err)

	assert.True(t, decl.IsHooked())
	assert.Empty(t, decl.ObjectSortVariables())
	assert.Equal(t, "plus{}(SortInt{}, SortInt{}) : SortInt{}", decl.Symbol.Signature())
	assert.True(t, decl.Symbol.IsConcrete())
}

func TestParseSignatureNullary(t *testing.T) {
	decl, err := ParseSignature("dotk{}() : SortK{}", false)
	require.NoError(t, err)
	assert.Empty(t, decl.Symbol.Arguments)
	assert.Equal(t, "SortK{}", decl.Symbol.Sort.String())
}

func TestParseSignatureErrors(t *testing.T) {
	for _, input := range []string{
		"",
		"f",
		"f(SortInt)",
		"f(SortInt) SortInt",
		"f{S(S) : S",
		"f(SortInt) : SortInt trailing",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseSignature(input, false)
			assert.Error(t, err)
		})
	}
}
