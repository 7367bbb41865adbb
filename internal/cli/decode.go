package cli

import (
	"context"
	"fmt"
	"pngme/internal/commands"
	"pngme/internal/crypto"
	"pngme/internal/global"
	"pngme/internal/logctx"
)

func DecodeMode(ctx context.Context, cliOpts *global.CommandSet, rootVerbosity *Verbosity, commandname string, args []string, streams Streams) (err error) {
	ctx = logctx.AppendCtxTag(ctx, global.NSCLI)

	var raw bool
	var pass passphraseFlags

	cmd := newCommandFlags(cliOpts, commandname, streams.Err)
	cmd.fs.BoolVar(&raw, "r", false, "Print only the message, nothing when absent")
	cmd.fs.BoolVar(&raw, "raw", false, "Print only the message, nothing when absent")
	setPassphraseFlags(cmd.fs, &pass)

	positional, err := cmd.parse(args, 2, 2)
	if err != nil {
		return
	}

	settings, _, err := cmd.settings(ctx, rootVerbosity)
	if err != nil {
		return
	}

	passphrase, err := pass.resolve(streams, false)
	if err != nil {
		return
	}
	defer crypto.Memzero(passphrase)

	result, err := commands.Decode(ctx, settings, commands.DecodeArgs{
		FilePath:   positional[0],
		ChunkType:  positional[1],
		Passphrase: passphrase,
	})
	if err != nil {
		return
	}

	switch {
	case raw && result.Found:
		fmt.Fprintln(streams.Out, result.Message)
	case raw:
	case result.Found:
		fmt.Fprintf(streams.Out, "Hidden message: %s\n", result.Message)
	default:
		fmt.Fprintln(streams.Out, "No message found")
	}
	return
}
