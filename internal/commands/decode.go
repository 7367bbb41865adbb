package commands

import (
	"context"
	"fmt"
	"pngme/internal/envelope"
	"pngme/internal/global"
	"pngme/internal/logctx"
	"pngme/pkg/png"
	"unicode/utf8"
)

// Finds the first chunk of the requested type and returns its message as text.
// Absence of a matching chunk is reported through Found, not as an error.
func Decode(ctx context.Context, settings Settings, args DecodeArgs) (result DecodeResult, err error) {
	ctx = logctx.AppendCtxTag(ctx, global.NSDecode)

	if args.FilePath == "" {
		err = wrapErr(ErrSyntax, fmt.Errorf("missing input file"))
		return
	}
	chunkType, err := parseType(args.ChunkType, false)
	if err != nil {
		return
	}

	container, _, err := loadPNG(ctx, settings, args.FilePath)
	if err != nil {
		return
	}

	result.Chunk, result.Found = container.ChunkByType(chunkType.String())
	if !result.Found {
		logctx.LogEvent(ctx, global.VerbosityProgress, global.InfoLog,
			"No %s chunk in '%s'\n", chunkType, args.FilePath)
		return
	}
	logctx.LogEvent(ctx, global.VerbosityData, global.InfoLog, "Found %s\n", result.Chunk)

	data := result.Chunk.Data()
	result.Enveloped = envelope.IsEnvelope(data)
	if !result.Enveloped {
		result.Message, err = result.Chunk.DataAsString()
		if err != nil {
			err = wrapErr(ErrMessage, err)
		}
		return
	}

	var maxSize uint64
	if settings.MaxFileSize > 0 {
		maxSize = uint64(settings.MaxFileSize)
	}
	message, err := envelope.Unwrap(ctx, data, args.Passphrase, maxSize)
	if err != nil {
		err = wrapErr(ErrMessage, err)
		return
	}

	// Plain data is checked by the chunk, envelope bodies here
	if !utf8.Valid(message) {
		err = wrapErr(ErrMessage, fmt.Errorf("%w: unwrapped message in chunk %s", png.ErrNotUTF8, chunkType))
		return
	}
	result.Message = string(message)
	return
}
