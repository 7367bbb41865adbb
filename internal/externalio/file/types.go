package file

import (
	"errors"
	"os"
)

// Wrapped by every failure of this package
var ErrFile = errors.New("file error")

// Exclusive advisory lock on a file kept for the duration of one edit
type EditLock struct {
	path string
	file *os.File
}
