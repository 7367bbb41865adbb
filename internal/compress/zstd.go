// zstd compression of message bodies
package compress

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

var ErrLevel = errors.New("unknown compression level")

// Maps a configuration name (fastest, default, better, best) to an encoder level
func ParseLevel(name string) (level zstd.EncoderLevel, err error) {
	ok, level := zstd.EncoderLevelFromString(name)
	if !ok {
		err = fmt.Errorf("%w %q: expected fastest, default, better or best", ErrLevel, name)
		return
	}
	return
}

// Compresses input as a single zstd frame
func Compress(input []byte, level zstd.EncoderLevel) (output []byte, err error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(level), zstd.WithEncoderConcurrency(1))
	if err != nil {
		err = fmt.Errorf("failed to create zstd encoder: %w", err)
		return
	}
	defer encoder.Close()

	output = encoder.EncodeAll(input, make([]byte, 0, len(input)/2+16))
	return
}

// Decompresses a zstd stream, refusing output larger than maxSize bytes (0 = no limit)
func Decompress(input []byte, maxSize uint64) (output []byte, err error) {
	options := []zstd.DOption{zstd.WithDecoderConcurrency(1)}
	if maxSize > 0 {
		options = append(options, zstd.WithDecoderMaxMemory(maxSize))
	}

	decoder, err := zstd.NewReader(nil, options...)
	if err != nil {
		err = fmt.Errorf("failed to create zstd decoder: %w", err)
		return
	}
	defer decoder.Close()

	output, err = decoder.DecodeAll(input, nil)
	if err != nil {
		output = nil
		err = fmt.Errorf("failed to decompress: %w", err)
		return
	}
	if maxSize > 0 && uint64(len(output)) > maxSize {
		output = nil
		err = fmt.Errorf("decompressed size exceeds limit of %d bytes", maxSize)
		return
	}
	return
}
