package cli

import (
	"context"
	"fmt"
	"pngme/internal/commands"
	"pngme/internal/crypto"
	"pngme/internal/global"
	"pngme/internal/logctx"
)

func EncodeMode(ctx context.Context, cliOpts *global.CommandSet, rootVerbosity *Verbosity, commandname string, args []string, streams Streams) (err error) {
	ctx = logctx.AppendCtxTag(ctx, global.NSCLI)

	var compressMessage bool
	var pass passphraseFlags

	cmd := newCommandFlags(cliOpts, commandname, streams.Err)
	cmd.fs.BoolVar(&compressMessage, "z", false, "Compress message with zstd before storing")
	cmd.fs.BoolVar(&compressMessage, "compress", false, "Compress message with zstd before storing")
	setPassphraseFlags(cmd.fs, &pass)

	positional, err := cmd.parse(args, 3, 4)
	if err != nil {
		return
	}

	settings, _, err := cmd.settings(ctx, rootVerbosity)
	if err != nil {
		return
	}

	passphrase, err := pass.resolve(streams, true)
	if err != nil {
		return
	}
	defer crypto.Memzero(passphrase)

	encodeArgs := commands.EncodeArgs{
		FilePath:   positional[0],
		ChunkType:  positional[1],
		Message:    []byte(positional[2]),
		Compress:   compressMessage,
		Passphrase: passphrase,
	}
	if len(positional) == 4 {
		encodeArgs.OutputPath = positional[3]
	}

	result, err := commands.Encode(ctx, settings, encodeArgs)
	if err != nil {
		return
	}

	if logctx.GetLogLevel(ctx) >= global.VerbosityStandard {
		fmt.Fprintf(streams.Out, "Encoded %d byte message into %s chunk (%d bytes stored, CRC 0x%08X) in '%s'\n",
			result.MessageSize, result.Chunk.Type(), result.Chunk.Length(), result.Chunk.CRC(), result.OutputPath)
	}
	return
}
