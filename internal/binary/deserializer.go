package binary

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Deserializer reads records written by a Serializer. It rebuilds the intern
// table at the offsets the strings were written, so back-references resolve
// with the same arithmetic.
type Deserializer struct {
	data   []byte
	pos    int
	intern map[int]string
}

// NewDeserializer reads data from its first byte.
func NewDeserializer(data []byte) *Deserializer {
	return &Deserializer{data: data, intern: make(map[int]string)}
}

// Offset returns the position of the next unread byte.
func (d *Deserializer) Offset() int { return d.pos }

// Remaining returns the number of unread bytes.
func (d *Deserializer) Remaining() int { return len(d.data) - d.pos }

// ReadHeader consumes the stream header and returns the version.
func (d *Deserializer) ReadHeader() (major, minor int16, err error) {
	rest := d.data[d.pos:]
	if len(rest) < len(Magic) {
		if bytes.HasPrefix(Magic[:], rest) {
			return 0, 0, ErrTruncated
		}
		return 0, 0, fmt.Errorf("%w: missing magic header", ErrInvalidEncoding)
	}
	if !HasMagicHeader(rest) {
		return 0, 0, fmt.Errorf("%w: missing magic header", ErrInvalidEncoding)
	}
	d.pos += len(Magic)
	if major, err = d.ReadInt16(); err != nil {
		return 0, 0, err
	}
	if minor, err = d.ReadInt16(); err != nil {
		return 0, 0, err
	}
	return major, minor, nil
}

// ReadByte consumes one byte.
func (d *Deserializer) ReadByte() (byte, error) {
	if d.pos >= len(d.data) {
		return 0, ErrTruncated
	}
	b := d.data[d.pos]
	d.pos++
	return b, nil
}

// ReadInt16 consumes a little-endian int16.
func (d *Deserializer) ReadInt16() (int16, error) {
	if d.Remaining() < 2 {
		return 0, ErrTruncated
	}
	v := binary.LittleEndian.Uint16(d.data[d.pos:])
	d.pos += 2
	return int16(v), nil
}

// ReadInt32 consumes a little-endian int32.
func (d *Deserializer) ReadInt32() (int32, error) {
	if d.Remaining() < 4 {
		return 0, ErrTruncated
	}
	v := binary.LittleEndian.Uint32(d.data[d.pos:])
	d.pos += 4
	return int32(v), nil
}

// ReadString consumes a DIRECT or BACKREF record.
func (d *Deserializer) ReadString() (string, error) {
	tag, err := d.ReadByte()
	if err != nil {
		return "", err
	}
	switch tag {
	case TagDirect:
		start := d.pos
		end := bytes.IndexByte(d.data[start:], 0)
		if end < 0 {
			return "", ErrTruncated
		}
		s := string(d.data[start : start+end])
		d.intern[start] = s
		d.pos = start + end + 1
		return s, nil
	case TagBackref:
		diff, err := d.ReadInt32()
		if err != nil {
			return "", err
		}
		offset := d.pos - int(diff)
		s, ok := d.intern[offset]
		if !ok {
			return "", fmt.Errorf("%w: back-reference to offset %d", ErrInvalidEncoding, offset)
		}
		return s, nil
	default:
		return "", fmt.Errorf("%w: string tag 0x%02x at offset %d", ErrInvalidEncoding, tag, d.pos-1)
	}
}

// ReadLength consumes a variable-length integer written by EmitLength.
func (d *Deserializer) ReadLength() (uint64, error) {
	var n uint64
	for shift := uint(0); ; shift += 7 {
		if shift >= 64 {
			return 0, fmt.Errorf("%w: length overflows 64 bits", ErrInvalidEncoding)
		}
		b, err := d.ReadByte()
		if err != nil {
			return 0, err
		}
		n |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return n, nil
		}
	}
}
