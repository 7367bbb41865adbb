// Encode, decode, remove and print operations over PNG files on disk.
// Each drives one read, parse, operate, then serialize and write or report sequence.
package commands

import (
	"pngme/pkg/png"
	"time"
)

// Runtime limits and policy shared by every command
type Settings struct {
	MaxFileSize      int64
	LockTimeout      time.Duration
	RequireValidType bool
	CompressionLevel string
}

type EncodeArgs struct {
	FilePath   string
	ChunkType  string
	Message    []byte
	OutputPath string // Empty writes back to FilePath
	Compress   bool
	Passphrase []byte
}

type EncodeResult struct {
	OutputPath   string
	Chunk        png.Chunk
	MessageSize  int
	ChunkCount   int
	WrittenBytes int
}

type DecodeArgs struct {
	FilePath   string
	ChunkType  string
	Passphrase []byte
}

type DecodeResult struct {
	Found     bool
	Chunk     png.Chunk
	Message   string
	Enveloped bool
}

type RemoveArgs struct {
	FilePath   string
	ChunkType  string
	OutputPath string // Empty writes back to FilePath
	All        bool
}

type RemoveResult struct {
	OutputPath string
	Removed    []png.Chunk
	Remaining  int
}

type PrintArgs struct {
	FilePaths []string
}

// Outcome of inspecting one file, Err set when it could not be read or parsed
type FileReport struct {
	Path   string
	Size   int
	PNG    *png.PNG
	Layout []png.ChunkInfo
	Err    error
}
