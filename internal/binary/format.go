package binary

// Magic is the stream header that identifies binary KORE.
var Magic = [5]byte{0x7f, 'K', 'O', 'R', 'E'}

// Format version written after the magic.
const (
	VersionMajor int16 = 1
	VersionMinor int16 = 0
)

// HeaderSize is the length of a stream header: the magic and two int16s.
const HeaderSize = len(Magic) + 4

// String record tags.
const (
	TagDirect  byte = 0x01
	TagBackref byte = 0x02
)

// Node header bytes for postfix pattern encoding.
const (
	HeaderCompositePattern byte = 0x04
	HeaderStringPattern    byte = 0x05
	HeaderCompositeSort    byte = 0x06
	HeaderSortVariable     byte = 0x07
	HeaderSymbol           byte = 0x08
	HeaderVariablePattern  byte = 0x09
	HeaderVariable         byte = 0x0D
)

// HasMagicHeader reports whether data starts with the binary KORE magic.
func HasMagicHeader(data []byte) bool {
	if len(data) < len(Magic) {
		return false
	}
	return [5]byte(data[:len(Magic)]) == Magic
}
