package rtconfig

import (
	"cmp"
	"fmt"
	"math/bits"
	"slices"
)

// ReservedLayout names one layout id reserved for runtime-provided objects.
type ReservedLayout struct {
	Name string `json:"name"`
	ID   uint16 `json:"id"`
}

// Reserved lists the reserved layout ids in ascending id order.
func (l Layouts) Reserved() []ReservedLayout {
	out := []ReservedLayout{
		{"map", l.Map},
		{"list", l.List},
		{"set", l.Set},
		{"int", l.Int},
		{"float", l.Float},
		{"stringBuffer", l.StringBuffer},
		{"bool", l.Bool},
		{"symbol", l.Symbol},
		{"variable", l.Variable},
		{"setIter", l.SetIter},
		{"mapIter", l.MapIter},
	}
	slices.SortStableFunc(out, func(a, b ReservedLayout) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// check rejects constants the schema accepts field by field but that do
// not describe a usable header: the age field must match its offset and
// width, the flag bits must be single distinct bits outside the age field,
// hdrMask must clear every GC bit and keep the length field, the tag must
// fit in the length field, and reserved layout ids must be distinct.
func (c Config) check() error {
	h := c.Header

	if want := (uint64(1)<<h.AgeWidth - 1) << h.AgeOffset; h.AgeMask != want {
		return fmt.Errorf("header.ageMask is %#x, want %#x for ageOffset %d and ageWidth %d", h.AgeMask, want, h.AgeOffset, h.AgeWidth)
	}

	flags := []struct {
		name string
		bit  uint64
	}{
		{"notYoungObjectBit", h.NotYoungObjectBit},
		{"variableBit", h.VariableBit},
		{"fwdPtrBit", h.FwdPtrBit},
	}
	gc := h.AgeMask
	for _, f := range flags {
		if bits.OnesCount64(f.bit) != 1 {
			return fmt.Errorf("header.%s %#x is not a single bit", f.name, f.bit)
		}
		if gc&f.bit != 0 {
			return fmt.Errorf("header.%s %#x overlaps another GC field", f.name, f.bit)
		}
		gc |= f.bit
	}

	if h.HdrMask&gc != 0 {
		return fmt.Errorf("header.hdrMask %#x keeps GC bits %#x", h.HdrMask, h.HdrMask&gc)
	}
	if h.HdrMask&h.LengthMask != h.LengthMask {
		return fmt.Errorf("header.hdrMask %#x clears length bits", h.HdrMask)
	}
	if h.TagMask&^h.LengthMask != 0 {
		return fmt.Errorf("header.tagMask %#x exceeds lengthMask %#x", h.TagMask, h.LengthMask)
	}

	reserved := c.Layouts.Reserved()
	for i := 1; i < len(reserved); i++ {
		if reserved[i].ID == reserved[i-1].ID {
			return fmt.Errorf("layouts.%s and layouts.%s share id %d", reserved[i-1].Name, reserved[i].Name, reserved[i].ID)
		}
	}
	return nil
}
