package binary

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Serializer appends records to an in-memory buffer. It is not safe for
// concurrent use.
type Serializer struct {
	buf    []byte
	intern map[string]int
	err    error // first string that could not be written
}

// NewSerializer returns a serializer that has already written the stream
// header.
func NewSerializer() *Serializer {
	s := NewFragmentSerializer()
	s.buf = append(s.buf, Magic[:]...)
	s.EmitInt16(VersionMajor)
	s.EmitInt16(VersionMinor)
	return s
}

// NewFragmentSerializer returns a serializer without a stream header, for
// output that is spliced into an existing stream.
func NewFragmentSerializer() *Serializer {
	return &Serializer{intern: make(map[string]int)}
}

// Emit appends one byte.
func (s *Serializer) Emit(b byte) {
	s.buf = append(s.buf, b)
}

// EmitInt16 appends v in little-endian order.
func (s *Serializer) EmitInt16(v int16) {
	s.buf = binary.LittleEndian.AppendUint16(s.buf, uint16(v))
}

// EmitInt32 appends v in little-endian order.
func (s *Serializer) EmitInt32(v int32) {
	s.buf = binary.LittleEndian.AppendUint32(s.buf, uint32(v))
}

// EmitString appends v as a DIRECT record the first time it is seen and as
// a BACKREF afterwards. A DIRECT record ends at the first zero byte, so a v
// containing one is not written and Err reports ErrInvalidString.
func (s *Serializer) EmitString(v string) {
	if strings.IndexByte(v, 0) >= 0 {
		if s.err == nil {
			s.err = fmt.Errorf("%w: %q at offset %d", ErrInvalidString, v, len(s.buf))
		}
		return
	}
	if offset, ok := s.intern[v]; ok {
		s.Emit(TagBackref)
		s.EmitInt32(int32(len(s.buf) + 4 - offset))
		return
	}
	s.Emit(TagDirect)
	s.intern[v] = len(s.buf)
	s.buf = append(s.buf, v...)
	s.Emit(0)
}

// EmitLength appends n as a variable-length integer: seven bits per byte,
// least significant group first, with the high bit set on every byte but
// the last.
func (s *Serializer) EmitLength(n uint64) {
	for {
		chunk := byte(n & 0x7f)
		n >>= 7
		if n > 0 {
			chunk |= 0x80
		}
		s.Emit(chunk)
		if n == 0 {
			return
		}
	}
}

// Err returns the first error recorded while emitting, or nil. The buffer
// is not a valid stream when Err is non-nil.
func (s *Serializer) Err() error { return s.err }

// Len returns the number of bytes written so far, which is also the offset
// of the next byte.
func (s *Serializer) Len() int { return len(s.buf) }

// Data returns the encoded bytes. The slice aliases the serializer's buffer.
func (s *Serializer) Data() []byte { return s.buf }
