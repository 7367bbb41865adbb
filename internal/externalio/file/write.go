package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"pngme/internal/global"
	"pngme/internal/logctx"

	"golang.org/x/sys/unix"
)

const defaultFileMode os.FileMode = 0644

// Replaces path with content so readers see either the old or the new file, never a partial one.
// Content goes to a sibling temp file which is synced and renamed over the destination.
func WriteAtomic(ctx context.Context, path string, content []byte) (err error) {
	ctx = logctx.AppendCtxTag(ctx, global.NSFile)

	dir := filepath.Dir(path)
	base := filepath.Base(path)

	// Keep permissions of an existing destination
	mode := defaultFileMode
	info, statErr := os.Stat(path)
	if statErr == nil {
		if !info.Mode().IsRegular() {
			err = fmt.Errorf("%w: '%s' is not a regular file", ErrFile, path)
			return
		}
		mode = info.Mode().Perm()
	}

	tempFile, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		err = fmt.Errorf("%w: failed to create temporary file in '%s': %w", ErrFile, dir, err)
		return
	}
	tempPath := tempFile.Name()

	// Never leave the temporary file behind on failure
	defer func() {
		if err != nil {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	logctx.LogEvent(ctx, global.VerbosityDebug, global.InfoLog,
		"Writing %d bytes to temporary file '%s'\n", len(content), tempPath)

	if err = tempFile.Chmod(mode); err != nil {
		err = fmt.Errorf("%w: failed to set mode on '%s': %w", ErrFile, tempPath, err)
		return
	}
	if _, err = tempFile.Write(content); err != nil {
		err = fmt.Errorf("%w: failed to write '%s': %w", ErrFile, tempPath, err)
		return
	}
	if err = tempFile.Sync(); err != nil {
		err = fmt.Errorf("%w: failed to sync '%s': %w", ErrFile, tempPath, err)
		return
	}
	if err = tempFile.Close(); err != nil {
		err = fmt.Errorf("%w: failed to close '%s': %w", ErrFile, tempPath, err)
		return
	}
	if err = os.Rename(tempPath, path); err != nil {
		err = fmt.Errorf("%w: failed to replace '%s': %w", ErrFile, path, err)
		return
	}

	// Rename is only durable once the directory entry is on disk
	if err = syncDir(dir); err != nil {
		err = fmt.Errorf("%w: failed to sync directory '%s': %w", ErrFile, dir, err)
		return
	}

	logctx.LogEvent(ctx, global.VerbosityProgress, global.InfoLog,
		"Wrote %d bytes to '%s'\n", len(content), path)
	return
}

func syncDir(dir string) (err error) {
	fd, err := unix.Open(dir, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
	if err != nil {
		return
	}
	defer unix.Close(fd)

	err = unix.Fsync(fd)
	return
}
