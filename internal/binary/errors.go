package binary

import "errors"

var (
	// ErrInvalidEncoding is returned for bytes that are not a valid record:
	// an unknown tag, a bad magic, or a back-reference that does not land
	// on an interned string.
	ErrInvalidEncoding = errors.New("binary: invalid encoding")

	// ErrInvalidString is recorded by the serializer for a string holding a
	// zero byte, which a DIRECT record cannot represent.
	ErrInvalidString = errors.New("binary: string contains a zero byte")

	// ErrTruncated is returned when the input ends inside a record.
	ErrTruncated = errors.New("binary: truncated input")
)
