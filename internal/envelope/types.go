// Optional wrapper around stored message bytes: zstd compression and/or passphrase sealing.
//
//	Envelope := Magic("pngme\x00") Version(1) Flags(1) Body
//	Body     := Salt(16) Nonce(24) Ciphertext   when sealed
//	          | Content                         otherwise
//	Content  := zstd(message) when compressed, else message
package envelope

import (
	"errors"

	"github.com/klauspost/compress/zstd"
)

const (
	Magic   string = "pngme\x00"
	Version uint8  = 1

	FlagCompressed uint8 = 1 << 0
	FlagSealed     uint8 = 1 << 1
	knownFlags     uint8 = FlagCompressed | FlagSealed

	lenMagic   int = len(Magic)
	lenVersion int = 1
	lenFlags   int = 1
	lenHeader  int = lenMagic + lenVersion + lenFlags
)

var (
	ErrPassphraseRequired = errors.New("message is sealed and requires a passphrase")
	ErrAuthentication     = errors.New("message authentication failed (wrong passphrase or corrupted data)")
	ErrUnsupported        = errors.New("unsupported envelope")
	ErrMalformed          = errors.New("malformed envelope")
)

// Wrapping choices for one message
type Options struct {
	Compress   bool
	Level      zstd.EncoderLevel
	Passphrase []byte // Empty means not sealed
}

// Decoded envelope header
type Header struct {
	Version uint8
	Flags   uint8
}

func (header Header) Compressed() bool {
	return header.Flags&FlagCompressed != 0
}

func (header Header) Sealed() bool {
	return header.Flags&FlagSealed != 0
}
