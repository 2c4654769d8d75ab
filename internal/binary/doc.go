// Package binary implements the compact binary encoding of KORE terms.
//
// A stream starts with the magic bytes "\x7fKORE" and a version (major,
// minor) as two little-endian int16 values, unless it is a headerless
// fragment. Strings are interned: the first occurrence of a value is written
// DIRECT (0x01, the bytes, a zero terminator) and records the offset just
// past its tag; later occurrences are written BACKREF (0x02 and a
// little-endian int32 distance). A BACKREF whose tag ends at position p
// stores (p + 4) - offset, i.e. the distance from the end of the BACKREF
// record back to the start of the original string bytes.
//
// Patterns are written in postfix order: children first, then a header byte
// naming the node kind, so that a reader rebuilds the tree with a stack.
package binary
