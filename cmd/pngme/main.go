package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"pngme/internal/cli"
	"pngme/internal/global"
	"pngme/internal/lifecycle"
	"pngme/internal/logctx"
	"runtime"
)

func main() {
	os.Exit(run(os.Args, cli.StandardStreams()))
}

func run(args []string, streams cli.Streams) (exitCode int) {
	cliOpts := cli.DefineOptions()

	commandFlags := flag.NewFlagSet(global.ProgName, flag.ContinueOnError)
	commandFlags.SetOutput(streams.Err)
	requestedVerbosity := cli.SetGlobalArguments(commandFlags)

	commandFlags.Usage = func() {
		cli.PrintHelpMenu(streams.Err, commandFlags, cli.RootCLICommand, cliOpts)
	}
	if len(args) < 2 {
		commandFlags.Usage()
		exitCode = 1
		return
	}
	if err := commandFlags.Parse(args[1:]); err != nil {
		exitCode = 1
		return
	}
	commandFlags.Visit(func(arg *flag.Flag) {
		if arg.Name == "v" || arg.Name == "verbosity" {
			requestedVerbosity.Set = true
		}
	})

	if commandFlags.NArg() < 1 {
		commandFlags.Usage()
		exitCode = 1
		return
	}
	command := commandFlags.Arg(0)
	commandArgs := commandFlags.Args()[1:]

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Logger outlives command cancellation so shutdown messages still print
	logDone := make(chan struct{})
	logger := logctx.NewLogger("global", requestedVerbosity.Level, logDone)
	ctx = logctx.WithLogger(ctx, logger)
	logctx.StartWatcher(logger, streams.Err)

	stopSignals := lifecycle.SignalHandler(ctx, cancel)

	var err error
	switch command {
	case "encode":
		err = cli.EncodeMode(ctx, cliOpts, requestedVerbosity, command, commandArgs, streams)
	case "decode":
		err = cli.DecodeMode(ctx, cliOpts, requestedVerbosity, command, commandArgs, streams)
	case "remove":
		err = cli.RemoveMode(ctx, cliOpts, requestedVerbosity, command, commandArgs, streams)
	case "print":
		err = cli.PrintMode(ctx, cliOpts, requestedVerbosity, command, commandArgs, streams)
	case "version":
		if len(commandArgs) > 0 && (commandArgs[0] == "--verbosity" || commandArgs[0] == "-v") {
			fmt.Fprintf(streams.Out, "%s %s\n", global.ProgName, global.ProgVersion)
			fmt.Fprintf(streams.Out, "Built using %s(%s) for %s on %s\n", runtime.Version(), runtime.Compiler, runtime.GOOS, runtime.GOARCH)
		} else {
			fmt.Fprintln(streams.Out, global.ProgVersion)
		}
	default:
		cli.PrintHelpMenu(streams.Err, commandFlags, cli.RootCLICommand, cliOpts)
		err = cli.ErrUsage
	}
	stopSignals()

	if err != nil {
		exitCode = 1
	}

	// Finish up any writes for global logger
	close(logDone)
	logger.Wake()
	logger.Wait()

	if err != nil && !errors.Is(err, cli.ErrUsage) {
		fmt.Fprintf(streams.Err, "Error: %v\n", err)
	}
	return
}
