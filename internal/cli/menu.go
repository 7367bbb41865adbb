package cli

import (
	"flag"
	"fmt"
	"io"
	"pngme/internal/global"
	"sort"
	"strings"
)

const (
	RootCLICommand  string = "root"
	helpMenuTrailer string = `
Flags must precede positional arguments.
Configuration is read from $XDG_CONFIG_HOME/pngme/config.toml unless -c is given.
`
)

// Full standardized help menu (wraps option printer as well)
func PrintHelpMenu(w io.Writer, fs *flag.FlagSet, command string, rootCmd *global.CommandSet) {
	const baseIndentSpaces = 2

	curCmdSet := rootCmd
	if command != "" && command != RootCLICommand {
		cmd, ok := rootCmd.ChildCommands[command]
		if !ok {
			fmt.Fprintf(w, "Unknown command: %s\n", command)
			return
		}
		curCmdSet = cmd
	}

	usageParts := []string{global.ProgName}
	if curCmdSet != rootCmd {
		usageParts = append(usageParts, curCmdSet.CommandName)
	}
	if curCmdSet.UsageOption != "" {
		usageParts = append(usageParts, curCmdSet.UsageOption)
	}
	fmt.Fprintf(w, "Usage: %s\n\n", strings.Join(usageParts, " "))

	if curCmdSet == rootCmd {
		fmt.Fprintln(w, curCmdSet.Description)
		fmt.Fprintln(w, curCmdSet.FullDescription)
		fmt.Fprintln(w)
	} else if curCmdSet.FullDescription != "" {
		fmt.Fprintln(w, "  Description:")
		fmt.Fprintf(w, "    %s\n\n", curCmdSet.FullDescription)
	}

	if len(curCmdSet.ChildCommands) > 0 {
		subNames := make([]string, 0, len(curCmdSet.ChildCommands))
		maxLen := 0
		for name := range curCmdSet.ChildCommands {
			subNames = append(subNames, name)
			maxLen = max(maxLen, len(name))
		}
		sort.Strings(subNames)

		fmt.Fprintf(w, "%sCommands:\n", strings.Repeat(" ", baseIndentSpaces))
		cmdIndent := strings.Repeat(" ", baseIndentSpaces+2)
		for _, name := range subNames {
			padding := strings.Repeat(" ", maxLen-len(name)+2)
			fmt.Fprintf(w, "%s%s%s - %s\n", cmdIndent, name, padding, curCmdSet.ChildCommands[name].Description)
		}
		fmt.Fprintln(w)
	}

	printFlagOptions(w, fs, baseIndentSpaces)

	if curCmdSet == rootCmd {
		fmt.Fprint(w, helpMenuTrailer)
	}
}

// Option printer merging short/long aliases that share usage text, like "-o, --output"
func printFlagOptions(w io.Writer, fs *flag.FlagSet, baseIndentSpaces int) {
	const joiner string = ", "
	const usageGap int = 2

	type optInfo struct {
		shortName  string
		longNames  []string
		usage      string
		defaultVal string
	}

	byUsage := make(map[string]*optInfo)
	fs.VisitAll(func(arg *flag.Flag) {
		opt, seen := byUsage[arg.Usage]
		if !seen {
			opt = &optInfo{usage: arg.Usage, defaultVal: arg.DefValue}
			byUsage[arg.Usage] = opt
		}
		if len(arg.Name) == 1 {
			opt.shortName = "-" + arg.Name
		} else {
			opt.longNames = append(opt.longNames, "--"+arg.Name)
		}
	})
	if len(byUsage) == 0 {
		return
	}

	// Long only options are shifted right so long names line up
	shortColumn := len("-x") + len(joiner)

	type line struct {
		sortKey string
		left    string
		desc    string
	}
	lines := make([]line, 0, len(byUsage))
	maxLeft := 0
	for _, opt := range byUsage {
		var left string
		if opt.shortName != "" {
			left = strings.Join(append([]string{opt.shortName}, opt.longNames...), joiner)
		} else {
			left = strings.Repeat(" ", shortColumn) + strings.Join(opt.longNames, joiner)
		}
		maxLeft = max(maxLeft, len(left))

		desc := opt.usage
		if opt.defaultVal != "" && opt.defaultVal != "false" && opt.defaultVal != "0" {
			desc += fmt.Sprintf(" [default: %s]", opt.defaultVal)
		}

		sortKey := strings.TrimLeft(strings.TrimSpace(left), "-")
		lines = append(lines, line{sortKey: strings.ToLower(sortKey), left: left, desc: desc})
	}
	sort.Slice(lines, func(a, b int) bool {
		return lines[a].sortKey < lines[b].sortKey
	})

	indent := strings.Repeat(" ", baseIndentSpaces)
	fmt.Fprintf(w, "%sOptions:\n", indent)
	for _, l := range lines {
		padding := strings.Repeat(" ", maxLeft-len(l.left)+usageGap)
		fmt.Fprintf(w, "%s%s%s%s\n", indent, l.left, padding, l.desc)
	}
}
