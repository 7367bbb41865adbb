package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"pngme/internal/global"
	"pngme/internal/logctx"

	"github.com/pbnjay/memory"
)

// Reads entire file into memory.
// Refuses non-regular files, files above maxSize, and files larger than free system memory.
func ReadAll(ctx context.Context, path string, maxSize int64) (content []byte, err error) {
	ctx = logctx.AppendCtxTag(ctx, global.NSFile)

	file, err := os.Open(path)
	if err != nil {
		err = fmt.Errorf("%w: failed to open '%s': %w", ErrFile, path, err)
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		err = fmt.Errorf("%w: failed to stat '%s': %w", ErrFile, path, err)
		return
	}
	if !info.Mode().IsRegular() {
		err = fmt.Errorf("%w: '%s' is not a regular file", ErrFile, path)
		return
	}

	size := info.Size()
	if maxSize > 0 && size > maxSize {
		err = fmt.Errorf("%w: '%s' is %d bytes, limit is %d", ErrFile, path, size, maxSize)
		return
	}

	// Zero means the platform could not report free memory
	availMem := memory.FreeMemory()
	if availMem > 0 && uint64(size) > availMem {
		err = fmt.Errorf("%w: '%s' is %d bytes but only %d bytes of memory are free", ErrFile, path, size, availMem)
		return
	}

	// Size can change between stat and read, keep the limit enforced while reading
	reader := io.Reader(file)
	if maxSize > 0 {
		reader = io.LimitReader(file, maxSize+1)
	}
	content, err = io.ReadAll(reader)
	if err != nil {
		err = fmt.Errorf("%w: failed to read '%s': %w", ErrFile, path, err)
		return
	}
	if maxSize > 0 && int64(len(content)) > maxSize {
		content = nil
		err = fmt.Errorf("%w: '%s' grew beyond limit of %d bytes while reading", ErrFile, path, maxSize)
		return
	}

	logctx.LogEvent(ctx, global.VerbosityProgress, global.InfoLog,
		"Read %d bytes from '%s'\n", len(content), path)
	return
}
