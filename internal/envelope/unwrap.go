package envelope

import (
	"bytes"
	"context"
	"fmt"
	"pngme/internal/compress"
	"pngme/internal/crypto"
	"pngme/internal/crypto/aead"
	"pngme/internal/crypto/kdf"
	"pngme/internal/global"
	"pngme/internal/logctx"
)

// Reports whether payload starts with the envelope magic
func IsEnvelope(payload []byte) bool {
	return bytes.HasPrefix(payload, []byte(Magic))
}

// Reads and checks the envelope header
func ParseHeader(payload []byte) (header Header, err error) {
	if !IsEnvelope(payload) {
		err = fmt.Errorf("%w: missing magic", ErrMalformed)
		return
	}
	if len(payload) < lenHeader {
		err = fmt.Errorf("%w: header needs %d bytes, got %d", ErrMalformed, lenHeader, len(payload))
		return
	}

	header.Version = payload[lenMagic]
	header.Flags = payload[lenMagic+lenVersion]

	if header.Version != Version {
		err = fmt.Errorf("%w: version %d", ErrUnsupported, header.Version)
		return
	}
	if header.Flags&^knownFlags != 0 {
		err = fmt.Errorf("%w: flags 0x%02X", ErrUnsupported, header.Flags)
		return
	}
	return
}

// Recovers the original message from payload.
// Payloads without the envelope magic are returned unchanged.
// maxSize bounds decompressed output (0 = no limit).
func Unwrap(ctx context.Context, payload []byte, passphrase []byte, maxSize uint64) (message []byte, err error) {
	ctx = logctx.AppendCtxTag(ctx, global.NSEnvelop)

	if !IsEnvelope(payload) {
		message = append([]byte{}, payload...)
		return
	}

	header, err := ParseHeader(payload)
	if err != nil {
		return
	}
	logctx.LogEvent(ctx, global.VerbosityData, global.InfoLog,
		"Found envelope version %d (compressed: %v, sealed: %v)\n", header.Version, header.Compressed(), header.Sealed())

	content := payload[lenHeader:]

	if header.Sealed() {
		if len(passphrase) == 0 {
			err = ErrPassphraseRequired
			return
		}

		suite, _ := crypto.GetSuiteInfo(crypto.SealSuiteID)
		minBody := suite.SaltSize + suite.NonceSize + suite.CipherOverhead
		if len(content) < minBody {
			err = fmt.Errorf("%w: sealed body needs at least %d bytes, got %d", ErrMalformed, minBody, len(content))
			return
		}

		salt := content[:suite.SaltSize]
		nonce := content[suite.SaltSize : suite.SaltSize+suite.NonceSize]
		ciphertext := content[suite.SaltSize+suite.NonceSize:]

		var key []byte
		key, err = kdf.DeriveKey(passphrase, salt)
		if err != nil {
			err = fmt.Errorf("failed to derive sealing key: %w", err)
			return
		}

		content, err = aead.Decrypt(ciphertext, key, nonce, payload[:lenHeader])
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrAuthentication, err)
			return
		}
	}

	if header.Compressed() {
		content, err = compress.Decompress(content, maxSize)
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrMalformed, err)
			return
		}
	}

	message = append([]byte{}, content...)
	return
}
