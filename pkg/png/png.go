// Package png reads, edits and writes the chunk layer of PNG files.
// Image data is never decoded; chunks are treated as opaque typed records.
package png

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

const lenSignature int = 8

// Fixed signature beginning every PNG stream
var StandardHeader = [lenSignature]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// PNG is the signature plus an ordered chunk list.
// Not safe for concurrent mutation.
type PNG struct {
	chunks []Chunk
}

// Position of a chunk inside the serialized stream
type ChunkInfo struct {
	Index  int
	Offset int
	Chunk  Chunk
}

// Builds container in memory from the given chunks
func New(chunks ...Chunk) (png *PNG) {
	png = &PNG{chunks: append([]Chunk(nil), chunks...)}
	return
}

// Deserializes a complete PNG stream.
// Any failing chunk rejects the whole stream.
func Parse(stream []byte) (png *PNG, err error) {
	if len(stream) < lenSignature {
		err = fmt.Errorf("%w: stream is %d bytes", ErrBadSignature, len(stream))
		return
	}
	if !bytes.Equal(stream[:lenSignature], StandardHeader[:]) {
		err = fmt.Errorf("%w: got % X", ErrBadSignature, stream[:lenSignature])
		return
	}

	var chunks []Chunk
	currentIndex := lenSignature
	for currentIndex < len(stream) {
		remaining := stream[currentIndex:]
		if len(remaining) < lenChunkLength {
			err = fmt.Errorf("chunk %d at offset %d: %w: %d bytes left, length field needs %d",
				len(chunks), currentIndex, ErrTruncated, len(remaining), lenChunkLength)
			return
		}

		// 64 bit math so a huge declared length cannot wrap
		declaredLen := uint64(binary.BigEndian.Uint32(remaining[:lenChunkLength]))
		recordLen := declaredLen + uint64(ChunkOverhead)
		if recordLen > uint64(len(remaining)) {
			err = fmt.Errorf("chunk %d at offset %d: %w: record needs %d bytes, %d left",
				len(chunks), currentIndex, ErrTruncated, recordLen, len(remaining))
			return
		}

		var chunk Chunk
		chunk, err = ParseChunk(remaining[:recordLen])
		if err != nil {
			err = fmt.Errorf("chunk %d at offset %d: %w", len(chunks), currentIndex, err)
			return
		}

		chunks = append(chunks, chunk)
		currentIndex += int(recordLen)
	}

	png = &PNG{chunks: chunks}
	return
}

func (png *PNG) Header() [lenSignature]byte {
	return StandardHeader
}

// Returns a copy of the chunk list in stream order
func (png *PNG) Chunks() []Chunk {
	return append([]Chunk(nil), png.chunks...)
}

// Adds chunk to the end. Duplicate types are allowed.
func (png *PNG) AppendChunk(chunk Chunk) {
	png.chunks = append(png.chunks, chunk)
}

// Returns the first chunk whose type text matches code
func (png *PNG) ChunkByType(code string) (chunk Chunk, found bool) {
	index := png.indexOf(code)
	if index < 0 {
		return
	}
	chunk = png.chunks[index]
	found = true
	return
}

// Removes and returns the first chunk whose type text matches code.
// Later chunks of the same type are left in place.
func (png *PNG) RemoveChunk(code string) (removed Chunk, err error) {
	index := png.indexOf(code)
	if index < 0 {
		err = fmt.Errorf("%w: no chunk of type %q", ErrChunkNotFound, code)
		return
	}

	removed = png.chunks[index]
	png.chunks = append(png.chunks[:index], png.chunks[index+1:]...)
	return
}

// Chunks with their byte offsets in the serialized stream
func (png *PNG) ChunkLayout() (layout []ChunkInfo) {
	layout = make([]ChunkInfo, 0, len(png.chunks))
	offset := lenSignature
	for index, chunk := range png.chunks {
		layout = append(layout, ChunkInfo{
			Index:  index,
			Offset: offset,
			Chunk:  chunk,
		})
		offset += ChunkOverhead + int(chunk.Length())
	}
	return
}

// Serializes signature and all chunks in order
func (png *PNG) Bytes() (stream []byte) {
	size := lenSignature
	for _, chunk := range png.chunks {
		size += ChunkOverhead + len(chunk.data)
	}

	stream = make([]byte, 0, size)
	stream = append(stream, StandardHeader[:]...)
	for _, chunk := range png.chunks {
		stream = chunk.appendRecord(stream)
	}
	return
}

func (png *PNG) String() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "PNG{Chunks: %d}\n", len(png.chunks))
	for _, chunk := range png.chunks {
		fmt.Fprintf(&builder, "  %s\n", chunk)
	}
	return builder.String()
}

func (png *PNG) indexOf(code string) int {
	for index, chunk := range png.chunks {
		if chunk.chunkType.String() == code {
			return index
		}
	}
	return -1
}
