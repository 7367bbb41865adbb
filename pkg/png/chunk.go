package png

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"math"
	"unicode/utf8"
)

const (
	// Chunk wire field lengths
	lenChunkLength int = 4
	lenChunkType   int = ChunkTypeLen
	lenChunkCRC    int = 4

	// Bytes every chunk record carries besides its data
	ChunkOverhead int = lenChunkLength + lenChunkType + lenChunkCRC

	// Largest data length representable in the length field
	MaxDataLength uint64 = math.MaxUint32

	maxPreviewLen int = 32
)

// Chunk is one length-prefixed, CRC protected record.
// Length and CRC are always derived from type and data.
type Chunk struct {
	chunkType ChunkType
	data      []byte
}

// Creates a chunk from a type and data. Data is copied.
func NewChunk(chunkType ChunkType, data []byte) (chunk Chunk) {
	chunk = Chunk{
		chunkType: chunkType,
		data:      bytes.Clone(data),
	}
	if chunk.data == nil {
		chunk.data = []byte{}
	}
	return
}

// Number of data bytes
func (chunk Chunk) Length() uint32 {
	return uint32(len(chunk.data))
}

func (chunk Chunk) Type() ChunkType {
	return chunk.chunkType
}

// Returns a copy of the chunk data
func (chunk Chunk) Data() []byte {
	return bytes.Clone(chunk.data)
}

// CRC-32/ISO-HDLC over type bytes followed by data
func (chunk Chunk) CRC() uint32 {
	code := chunk.chunkType.Bytes()
	crc := crc32.Update(0, crc32.IEEETable, code[:])
	crc = crc32.Update(crc, crc32.IEEETable, chunk.data)
	return crc
}

// Interprets chunk data as UTF-8 text
func (chunk Chunk) DataAsString() (text string, err error) {
	if !utf8.Valid(chunk.data) {
		err = fmt.Errorf("%w: chunk %s", ErrNotUTF8, chunk.chunkType)
		return
	}
	text = string(chunk.data)
	return
}

// Serializes chunk into its wire record
func (chunk Chunk) Bytes() (record []byte) {
	record = chunk.appendRecord(make([]byte, 0, ChunkOverhead+len(chunk.data)))
	return
}

func (chunk Chunk) appendRecord(dst []byte) []byte {
	code := chunk.chunkType.Bytes()
	dst = binary.BigEndian.AppendUint32(dst, chunk.Length())
	dst = append(dst, code[:]...)
	dst = append(dst, chunk.data...)
	dst = binary.BigEndian.AppendUint32(dst, chunk.CRC())
	return dst
}

// Deserializes exactly one chunk record.
// Structural checks run before the CRC is computed.
func ParseChunk(record []byte) (chunk Chunk, err error) {
	// Reject anything smaller than an empty chunk
	if len(record) < ChunkOverhead {
		err = fmt.Errorf("%w: chunk record is %d bytes, minimum is %d", ErrTruncated, len(record), ChunkOverhead)
		return
	}

	dataLen := uint64(len(record) - ChunkOverhead)
	declaredLen := uint64(binary.BigEndian.Uint32(record[0:lenChunkLength]))
	if declaredLen != dataLen {
		err = fmt.Errorf("%w: declared %d, record holds %d", ErrLengthMismatch, declaredLen, dataLen)
		return
	}

	currentIndex := lenChunkLength

	var code [ChunkTypeLen]byte
	copy(code[:], record[currentIndex:currentIndex+lenChunkType])
	currentIndex += lenChunkType

	chunkType, err := NewChunkType(code)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrInvalidType, err)
		return
	}

	crcIndex := currentIndex + int(dataLen)
	data := record[currentIndex:crcIndex]
	embeddedCRC := binary.BigEndian.Uint32(record[crcIndex:])

	candidate := NewChunk(chunkType, data)
	computedCRC := candidate.CRC()
	if computedCRC != embeddedCRC {
		err = fmt.Errorf("%w: chunk %s has 0x%08X, computed 0x%08X", ErrChecksumMismatch, chunkType, embeddedCRC, computedCRC)
		return
	}

	chunk = candidate
	return
}

// Human readable summary
func (chunk Chunk) String() string {
	return fmt.Sprintf("Chunk{Type: %s, Length: %d, CRC: 0x%08X, Data: %s}",
		chunk.chunkType, chunk.Length(), chunk.CRC(), previewData(chunk.data, maxPreviewLen))
}

// Quotes printable data, hex otherwise. Truncated to maxLen bytes.
func previewData(data []byte, maxLen int) (preview string) {
	truncated := false
	if len(data) > maxLen {
		data = data[:maxLen]
		truncated = true
	}

	if isPrintable(data) {
		preview = fmt.Sprintf("%q", data)
	} else {
		preview = fmt.Sprintf("%X", data)
	}

	if truncated {
		preview += "..."
	}
	return
}

func isPrintable(data []byte) bool {
	for _, b := range data {
		if b < 0x20 || b > 0x7E {
			return false
		}
	}
	return true
}
