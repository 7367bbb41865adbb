package commands

import (
	"context"
	"fmt"
	"pngme/internal/global"
	"pngme/internal/logctx"
	"pngme/pkg/png"
)

// Removes the first chunk of the requested type, or every one of them with All set.
// At least one match is required.
func Remove(ctx context.Context, settings Settings, args RemoveArgs) (result RemoveResult, err error) {
	ctx = logctx.AppendCtxTag(ctx, global.NSRemove)

	if args.FilePath == "" {
		err = wrapErr(ErrSyntax, fmt.Errorf("missing input file"))
		return
	}
	chunkType, err := parseType(args.ChunkType, false)
	if err != nil {
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

	for {
		removed, removeErr := container.RemoveChunk(chunkType.String())
		if removeErr != nil {
			if len(result.Removed) == 0 {
				err = wrapErr(ErrChunkNotFound, removeErr)
				return
			}
			break
		}
		logctx.LogEvent(ctx, global.VerbosityData, global.InfoLog, "Removed %s\n", removed)
		result.Removed = append(result.Removed, removed)

		if !args.All {
			break
		}
	}

	_, err = storePNG(ctx, container, result.OutputPath)
	if err != nil {
		result.Removed = nil
		return
	}

	result.Remaining = len(container.Chunks())
	logctx.LogEvent(ctx, global.VerbosityProgress, global.InfoLog,
		"Removed %d %s chunk(s) from '%s'\n", len(result.Removed), chunkType, result.OutputPath)
	return
}

// Used by callers summarizing a removal
func RemovedBytes(chunks []png.Chunk) (total uint64) {
	for _, chunk := range chunks {
		total += uint64(chunk.Length())
	}
	return
}
