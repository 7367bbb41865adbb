package commands

import (
	"context"
	"fmt"
	"pngme/internal/compress"
	"pngme/internal/envelope"
	"pngme/internal/global"
	"pngme/internal/logctx"
	"pngme/pkg/png"
)

// Appends a new chunk carrying the message and writes the container to the output path
func Encode(ctx context.Context, settings Settings, args EncodeArgs) (result EncodeResult, err error) {
	ctx = logctx.AppendCtxTag(ctx, global.NSEncode)

	if args.FilePath == "" {
		err = wrapErr(ErrSyntax, fmt.Errorf("missing input file"))
		return
	}
	chunkType, err := parseType(args.ChunkType, settings.RequireValidType)
	if err != nil {
		return
	}

	opts := envelope.Options{
		Compress:   args.Compress,
		Passphrase: args.Passphrase,
	}
	if args.Compress {
		opts.Level, err = compress.ParseLevel(settings.CompressionLevel)
		if err != nil {
			err = wrapErr(ErrSyntax, err)
			return
		}
	}
	payload, err := envelope.Wrap(ctx, args.Message, opts)
	if err != nil {
		err = wrapErr(ErrMessage, err)
		return
	}
	if uint64(len(payload)) > png.MaxDataLength {
		err = wrapErr(ErrMessage, fmt.Errorf("payload of %d bytes exceeds chunk limit of %d", len(payload), png.MaxDataLength))
		return
	}

	result.OutputPath = args.OutputPath
	if result.OutputPath == "" {
		result.OutputPath = args.FilePath
	}

	lock, err := lockForEdit(ctx, settings, args.FilePath)
	if err != nil {
		return
	}
	defer releaseLock(ctx, lock)

	container, _, err := loadPNG(ctx, settings, args.FilePath)
	if err != nil {
		return
	}

	result.Chunk = png.NewChunk(chunkType, payload)
	container.AppendChunk(result.Chunk)
	logctx.LogEvent(ctx, global.VerbosityData, global.InfoLog, "Appended %s\n", result.Chunk)

	result.WrittenBytes, err = storePNG(ctx, container, result.OutputPath)
	if err != nil {
		return
	}

	result.MessageSize = len(args.Message)
	result.ChunkCount = len(container.Chunks())
	logctx.LogEvent(ctx, global.VerbosityProgress, global.InfoLog,
		"Encoded %d byte message as %s chunk in '%s'\n", result.MessageSize, chunkType, result.OutputPath)
	return
}
