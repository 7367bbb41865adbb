package png

import "errors"

var (
	// Chunk type construction
	ErrNonAlphabeticByte = errors.New("chunk type contains non-alphabetic byte")
	ErrWrongLength       = errors.New("chunk type must be exactly 4 bytes")

	// Chunk and container decoding
	ErrTruncated        = errors.New("truncated data")
	ErrLengthMismatch   = errors.New("declared chunk length does not match record size")
	ErrInvalidType      = errors.New("invalid chunk type")
	ErrChecksumMismatch = errors.New("chunk checksum mismatch")
	ErrBadSignature     = errors.New("invalid PNG signature")

	// Lookups and interpretation
	ErrChunkNotFound = errors.New("chunk not found")
	ErrNotUTF8       = errors.New("chunk data is not valid UTF-8 text")
)
