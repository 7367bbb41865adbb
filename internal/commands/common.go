package commands

import (
	"context"
	"fmt"
	"pngme/internal/externalio/file"
	"pngme/internal/global"
	"pngme/internal/logctx"
	"pngme/pkg/png"
)

// Reads and parses path, classifying failures as file or format errors
func loadPNG(ctx context.Context, settings Settings, path string) (container *png.PNG, size int, err error) {
	content, err := file.ReadAll(ctx, path, settings.MaxFileSize)
	if err != nil {
		err = wrapErr(ErrFile, err)
		return
	}
	size = len(content)

	container, err = png.Parse(content)
	if err != nil {
		err = wrapErr(ErrPNGFormat, err)
		return
	}

	logctx.LogEvent(ctx, global.VerbosityData, global.InfoLog,
		"Parsed '%s': %d chunks in %d bytes\n", path, len(container.Chunks()), size)
	return
}

// Locks path for the duration of an edit, bounded by the configured lock timeout
func lockForEdit(ctx context.Context, settings Settings, path string) (lock *file.EditLock, err error) {
	lockCtx := ctx
	if settings.LockTimeout > 0 {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeout(ctx, settings.LockTimeout)
		defer cancel()
	}

	lock, err = file.LockForEdit(lockCtx, path, global.DefaultLockPollInterval)
	if err != nil {
		err = wrapErr(ErrFile, err)
		return
	}
	return
}

func releaseLock(ctx context.Context, lock *file.EditLock) {
	err := lock.Unlock()
	if err != nil {
		logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog, "%v\n", err)
	}
}

// Serializes container and atomically replaces path
func storePNG(ctx context.Context, container *png.PNG, path string) (written int, err error) {
	content := container.Bytes()
	logctx.LogEvent(ctx, global.VerbosityDebug, global.InfoLog,
		"Serialized %d chunks into %d bytes\n", len(container.Chunks()), len(content))

	err = file.WriteAtomic(ctx, path, content)
	if err != nil {
		err = wrapErr(ErrFile, err)
		return
	}
	written = len(content)
	return
}

// Parses a chunk type argument, optionally refusing codes with the reserved bit set
func parseType(code string, requireValid bool) (chunkType png.ChunkType, err error) {
	chunkType, err = png.ParseChunkType(code)
	if err != nil {
		err = wrapErr(ErrChunkType, err)
		return
	}
	if requireValid && !chunkType.IsValid() {
		err = wrapErr(ErrChunkType, fmt.Errorf("reserved bit of '%s' is set (third letter must be uppercase)", code))
		return
	}
	return
}
