package cli

import (
	"context"
	"fmt"
	"pngme/internal/commands"
	"pngme/internal/global"
	"pngme/internal/logctx"
)

func RemoveMode(ctx context.Context, cliOpts *global.CommandSet, rootVerbosity *Verbosity, commandname string, args []string, streams Streams) (err error) {
	ctx = logctx.AppendCtxTag(ctx, global.NSCLI)

	var removeAll bool
	var outputPath string

	cmd := newCommandFlags(cliOpts, commandname, streams.Err)
	cmd.fs.BoolVar(&removeAll, "a", false, "Remove every chunk of the type instead of only the first")
	cmd.fs.BoolVar(&removeAll, "all", false, "Remove every chunk of the type instead of only the first")
	cmd.fs.StringVar(&outputPath, "o", "", "Write result to this file instead of replacing the input")
	cmd.fs.StringVar(&outputPath, "output", "", "Write result to this file instead of replacing the input")

	positional, err := cmd.parse(args, 2, 2)
	if err != nil {
		return
	}

	settings, _, err := cmd.settings(ctx, rootVerbosity)
	if err != nil {
		return
	}

	result, err := commands.Remove(ctx, settings, commands.RemoveArgs{
		FilePath:   positional[0],
		ChunkType:  positional[1],
		OutputPath: outputPath,
		All:        removeAll,
	})
	if err != nil {
		return
	}

	if logctx.GetLogLevel(ctx) >= global.VerbosityStandard {
		fmt.Fprintf(streams.Out, "Removed %d %s chunk(s) (%d data bytes) from '%s', %d chunks remain\n",
			len(result.Removed), positional[1], commands.RemovedBytes(result.Removed), result.OutputPath, result.Remaining)
	}
	return
}
