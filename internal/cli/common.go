package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"pngme/internal/commands"
	"pngme/internal/config"
	"pngme/internal/global"
	"pngme/internal/logctx"
)

// Returned when the help menu was shown instead of running a command
var ErrUsage = errors.New("usage requested")

// Verbosity chosen on the command line, Set reports whether it was given at all
type Verbosity struct {
	Level int
	Set   bool
}

func SetGlobalArguments(fs *flag.FlagSet) (verbosity *Verbosity) {
	verbosity = &Verbosity{Level: global.DefaultVerbosity}
	fs.IntVar(&verbosity.Level, "v", global.DefaultVerbosity, "Increase detailed progress messages (Higher is more verbose) <0...5>")
	fs.IntVar(&verbosity.Level, "verbosity", global.DefaultVerbosity, "Increase detailed progress messages (Higher is more verbose) <0...5>")
	return
}

func SetCommon(fs *flag.FlagSet, configPath *string) {
	fs.StringVar(configPath, "c", "", "Path to the configuration file")
	fs.StringVar(configPath, "config", "", "Path to the configuration file")
}

// Records whether any verbosity alias was explicitly set during parsing
func (verbosity *Verbosity) markSet(fs *flag.FlagSet) {
	fs.Visit(func(arg *flag.Flag) {
		if arg.Name == "v" || arg.Name == "verbosity" {
			verbosity.Set = true
		}
	})
}

// Subcommand flag set with shared options and help output wired to stderr
type commandFlags struct {
	fs         *flag.FlagSet
	verbosity  *Verbosity
	configPath string
}

func newCommandFlags(cliOpts *global.CommandSet, commandname string, stderr io.Writer) (cmd *commandFlags) {
	cmd = &commandFlags{fs: flag.NewFlagSet(commandname, flag.ContinueOnError)}
	cmd.fs.SetOutput(stderr)
	cmd.verbosity = SetGlobalArguments(cmd.fs)
	SetCommon(cmd.fs, &cmd.configPath)
	cmd.fs.Usage = func() {
		PrintHelpMenu(stderr, cmd.fs, commandname, cliOpts)
	}
	return
}

// Parses args, requiring between minArgs and maxArgs positionals (maxArgs < 0 = unbounded)
func (cmd *commandFlags) parse(args []string, minArgs, maxArgs int) (positional []string, err error) {
	if len(args) < 1 {
		cmd.fs.Usage()
		err = ErrUsage
		return
	}

	err = cmd.fs.Parse(args)
	if err != nil {
		// flag has already explained the problem and shown usage
		err = ErrUsage
		return
	}
	cmd.verbosity.markSet(cmd.fs)

	positional = cmd.fs.Args()
	if len(positional) < minArgs || (maxArgs >= 0 && len(positional) > maxArgs) {
		cmd.fs.Usage()
		err = fmt.Errorf("%w: %s expects %s", commands.ErrSyntax, cmd.fs.Name(), describeArity(minArgs, maxArgs))
		return
	}
	return
}

func describeArity(minArgs, maxArgs int) string {
	switch {
	case maxArgs < 0:
		return fmt.Sprintf("at least %d arguments", minArgs)
	case minArgs == maxArgs:
		return fmt.Sprintf("%d arguments", minArgs)
	default:
		return fmt.Sprintf("%d to %d arguments", minArgs, maxArgs)
	}
}

// Loads configuration, applies verbosity precedence (subcommand flag, root flag, file)
// and returns the command settings.
func (cmd *commandFlags) settings(ctx context.Context, rootVerbosity *Verbosity) (settings commands.Settings, cfg config.Config, err error) {
	ctx = logctx.AppendCtxTag(ctx, global.NSConfig)

	path := cmd.configPath
	explicit := path != ""
	if !explicit {
		path = config.DefaultPath()
	}

	cfg, err = config.Load(path, explicit)
	if err != nil {
		return
	}

	level := cfg.Verbosity
	if rootVerbosity != nil && rootVerbosity.Set {
		level = rootVerbosity.Level
	}
	if cmd.verbosity.Set {
		level = cmd.verbosity.Level
	}
	if level < global.VerbosityNone || level > global.VerbosityDebug {
		err = fmt.Errorf("%w: verbosity %d must be between %d and %d", commands.ErrSyntax, level, global.VerbosityNone, global.VerbosityDebug)
		return
	}
	cfg.Verbosity = level
	logctx.SetLogLevel(ctx, level)

	logctx.LogEvent(ctx, global.VerbosityDebug, global.InfoLog, "Using configuration %+v (file '%s')\n", cfg, path)

	settings = commands.Settings{
		MaxFileSize:      cfg.MaxFileSize,
		LockTimeout:      cfg.LockTimeout,
		RequireValidType: cfg.RequireValidType,
		CompressionLevel: cfg.CompressionLevel,
	}
	return
}
