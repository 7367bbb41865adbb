package commands

import (
	"errors"
	"fmt"
)

// Command failure kinds, each returned error wraps exactly one of these plus its cause
var (
	ErrSyntax        = errors.New("syntax error")
	ErrFile          = errors.New("error accessing file")
	ErrPNGFormat     = errors.New("the input file is not a valid PNG file")
	ErrChunkType     = errors.New("invalid chunk type")
	ErrChunkNotFound = errors.New("chunk not found")
	ErrMessage       = errors.New("invalid message")
)

func wrapErr(kind error, cause error) (err error) {
	err = fmt.Errorf("%w: %w", kind, cause)
	return
}
