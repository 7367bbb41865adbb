package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"pngme/internal/global"
	"pngme/internal/logctx"
	"time"

	"golang.org/x/sys/unix"
)

// Takes an exclusive advisory lock on path, polling until ctx is done.
// Retries when path was replaced (atomic rename) while waiting so the lock always covers the current file.
func LockForEdit(ctx context.Context, path string, pollInterval time.Duration) (lock *EditLock, err error) {
	ctx = logctx.AppendCtxTag(ctx, global.NSLock)
	if pollInterval <= 0 {
		pollInterval = global.DefaultLockPollInterval
	}

	waitLogged := false
	for {
		var file *os.File
		file, err = os.Open(path)
		if err != nil {
			err = fmt.Errorf("%w: failed to open '%s' for locking: %w", ErrFile, path, err)
			return
		}

		err = unix.Flock(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			var current bool
			current, err = isCurrentFile(file, path)
			if err != nil {
				unix.Flock(int(file.Fd()), unix.LOCK_UN)
				file.Close()
				err = fmt.Errorf("%w: failed to verify lock on '%s': %w", ErrFile, path, err)
				return
			}
			if current {
				logctx.LogEvent(ctx, global.VerbosityDebug, global.InfoLog, "Acquired edit lock on '%s'\n", path)
				lock = &EditLock{path: path, file: file}
				return
			}

			// Replaced while we waited, lock the new file instead
			unix.Flock(int(file.Fd()), unix.LOCK_UN)
			file.Close()
			continue
		}
		file.Close()

		if !errors.Is(err, unix.EWOULDBLOCK) && !errors.Is(err, unix.EINTR) {
			err = fmt.Errorf("%w: failed to lock '%s': %w", ErrFile, path, err)
			return
		}

		if !waitLogged {
			logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog,
				"Waiting for another process to finish editing '%s'\n", path)
			waitLogged = true
		}

		select {
		case <-ctx.Done():
			err = fmt.Errorf("%w: gave up waiting for lock on '%s': %w", ErrFile, path, ctx.Err())
			return
		case <-time.After(pollInterval):
		}
	}
}

// Releases the lock. Safe to call more than once.
func (lock *EditLock) Unlock() (err error) {
	if lock == nil || lock.file == nil {
		return
	}

	err = unix.Flock(int(lock.file.Fd()), unix.LOCK_UN)
	closeErr := lock.file.Close()
	lock.file = nil
	if err == nil {
		err = closeErr
	}
	if err != nil {
		err = fmt.Errorf("%w: failed to unlock '%s': %w", ErrFile, lock.path, err)
	}
	return
}

func isCurrentFile(file *os.File, path string) (current bool, err error) {
	held, err := file.Stat()
	if err != nil {
		return
	}
	onDisk, err := os.Stat(path)
	if err != nil {
		return
	}
	current = os.SameFile(held, onDisk)
	return
}
