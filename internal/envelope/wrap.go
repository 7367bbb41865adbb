package envelope

import (
	"context"
	"fmt"
	"pngme/internal/compress"
	"pngme/internal/crypto"
	"pngme/internal/crypto/aead"
	"pngme/internal/crypto/kdf"
	"pngme/internal/crypto/random"
	"pngme/internal/global"
	"pngme/internal/logctx"
)

// Encloses message according to opts.
// With no options set the message is returned unchanged and carries no header.
func Wrap(ctx context.Context, message []byte, opts Options) (payload []byte, err error) {
	ctx = logctx.AppendCtxTag(ctx, global.NSEnvelop)

	sealed := len(opts.Passphrase) > 0
	if !opts.Compress && !sealed {
		payload = append([]byte{}, message...)
		return
	}

	var flags uint8
	content := message
	if opts.Compress {
		content, err = compress.Compress(message, opts.Level)
		if err != nil {
			return
		}
		flags |= FlagCompressed
		logctx.LogEvent(ctx, global.VerbosityData, global.InfoLog,
			"Compressed message from %d to %d bytes\n", len(message), len(content))
	}
	if sealed {
		flags |= FlagSealed
	}

	header := []byte(Magic)
	header = append(header, Version, flags)

	if !sealed {
		payload = append(header, content...)
		return
	}

	suite, _ := crypto.GetSuiteInfo(crypto.SealSuiteID)

	salt, err := random.Bytes(suite.SaltSize)
	if err != nil {
		return
	}
	var nonce []byte
	err = random.PopulateEmptySlice(&nonce, suite.NonceSize)
	if err != nil {
		return
	}

	key, err := kdf.DeriveKey(opts.Passphrase, salt)
	if err != nil {
		err = fmt.Errorf("failed to derive sealing key: %w", err)
		return
	}

	// Header is authenticated so flags cannot be flipped without detection
	ciphertext, err := aead.Encrypt(content, key, nonce, header)
	if err != nil {
		err = fmt.Errorf("failed to seal message: %w", err)
		return
	}

	payload = make([]byte, 0, len(header)+len(salt)+len(nonce)+len(ciphertext))
	payload = append(payload, header...)
	payload = append(payload, salt...)
	payload = append(payload, nonce...)
	payload = append(payload, ciphertext...)

	logctx.LogEvent(ctx, global.VerbosityData, global.InfoLog,
		"Sealed message with suite %s (%d byte envelope)\n", suite.Name, len(payload))
	return
}
