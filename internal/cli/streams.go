package cli

import (
	"io"
	"os"
)

// Process streams handed to every mode so output can be captured
type Streams struct {
	In  *os.File
	Out io.Writer
	Err io.Writer
}

func StandardStreams() (streams Streams) {
	streams = Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
	return
}
