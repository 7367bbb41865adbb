package cli

import (
	"context"
	"pngme/internal/commands"
	"pngme/internal/global"
	"pngme/internal/logctx"
)

func PrintMode(ctx context.Context, cliOpts *global.CommandSet, rootVerbosity *Verbosity, commandname string, args []string, streams Streams) (err error) {
	ctx = logctx.AppendCtxTag(ctx, global.NSCLI)

	var showData bool
	var validateOnly bool

	cmd := newCommandFlags(cliOpts, commandname, streams.Err)
	cmd.fs.BoolVar(&showData, "d", false, "Show a preview of each chunk's data")
	cmd.fs.BoolVar(&showData, "data", false, "Show a preview of each chunk's data")
	cmd.fs.BoolVar(&validateOnly, "validate-only", false, "Only report whether each file parses")

	positional, err := cmd.parse(args, 1, -1)
	if err != nil {
		return
	}

	settings, _, err := cmd.settings(ctx, rootVerbosity)
	if err != nil {
		return
	}

	reports, err := commands.Print(ctx, settings, commands.PrintArgs{FilePaths: positional})
	if reports == nil {
		return
	}

	if validateOnly {
		renderValidation(streams.Out, reports)
		return
	}

	options := renderOptions{
		showData: showData || logctx.GetLogLevel(ctx) >= global.VerbosityData,
		width:    terminalWidth(streams.Out),
	}
	renderReports(streams.Out, reports, options)
	return
}
