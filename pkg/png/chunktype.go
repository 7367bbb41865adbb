package png

import "fmt"

const (
	ChunkTypeLen int  = 4
	propertyBit  byte = 0x20 // bit 5, the ASCII case bit
)

// ChunkType is a 4 byte chunk identifier. Every byte is an ASCII letter.
// Comparable with ==.
type ChunkType struct {
	code [ChunkTypeLen]byte
}

// Creates chunk type from raw bytes.
// Only rejects non-alphabetic bytes, reserved bit is queried separately with IsReservedBitValid
func NewChunkType(code [ChunkTypeLen]byte) (chunkType ChunkType, err error) {
	for index, b := range code {
		if !isASCIIAlpha(b) {
			err = fmt.Errorf("%w: byte %d is 0x%02X", ErrNonAlphabeticByte, index, b)
			return
		}
	}

	chunkType = ChunkType{code: code}
	return
}

// Creates chunk type from text (length measured in bytes)
func ParseChunkType(text string) (chunkType ChunkType, err error) {
	if len(text) != ChunkTypeLen {
		err = fmt.Errorf("%w: %q is %d bytes", ErrWrongLength, text, len(text))
		return
	}

	var code [ChunkTypeLen]byte
	copy(code[:], text)

	chunkType, err = NewChunkType(code)
	return
}

func (chunkType ChunkType) Bytes() (code [ChunkTypeLen]byte) {
	code = chunkType.code
	return
}

func (chunkType ChunkType) String() string {
	return string(chunkType.code[:])
}

// All bytes alphabetic and reserved bit valid
func (chunkType ChunkType) IsValid() (valid bool) {
	for _, b := range chunkType.code {
		if !isASCIIAlpha(b) {
			return
		}
	}
	valid = chunkType.IsReservedBitValid()
	return
}

// Critical chunks have an uppercase first byte
func (chunkType ChunkType) IsCritical() bool {
	return chunkType.code[0]&propertyBit == 0
}

// Public chunks have an uppercase second byte
func (chunkType ChunkType) IsPublic() bool {
	return chunkType.code[1]&propertyBit == 0
}

// Reserved bit is valid when the third byte is uppercase
func (chunkType ChunkType) IsReservedBitValid() bool {
	return chunkType.code[2]&propertyBit == 0
}

// Safe-to-copy chunks have a lowercase fourth byte
func (chunkType ChunkType) IsSafeToCopy() bool {
	return chunkType.code[3]&propertyBit != 0
}

func isASCIIAlpha(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
