package cli

import "pngme/internal/global"

func DefineOptions() (cmdOpts *global.CommandSet) {
	root := &global.CommandSet{
		Description:     "PNG chunk editor (pngme)",
		FullDescription: "  Hides, reveals and removes messages stored in PNG chunks without touching image data",
		CommandName:     RootCLICommand,
		UsageOption:     "[options] <command>",
		ChildCommands:   make(map[string]*global.CommandSet),
	}

	root.ChildCommands["encode"] = &global.CommandSet{
		CommandName:     "encode",
		UsageOption:     "[options] <file> <chunk type> <message> [output file]",
		Description:     "Store a message in a new chunk",
		FullDescription: "Appends a chunk of the given type carrying the message, optionally compressed and/or sealed with a passphrase",
	}

	root.ChildCommands["decode"] = &global.CommandSet{
		CommandName:     "decode",
		UsageOption:     "[options] <file> <chunk type>",
		Description:     "Show a stored message",
		FullDescription: "Prints the message held by the first chunk of the given type",
	}

	root.ChildCommands["remove"] = &global.CommandSet{
		CommandName:     "remove",
		UsageOption:     "[options] <file> <chunk type>",
		Description:     "Delete a chunk",
		FullDescription: "Removes the first chunk of the given type (every one of them with --all) and rewrites the file",
	}

	root.ChildCommands["print"] = &global.CommandSet{
		CommandName:     "print",
		UsageOption:     "[options] <file> [file...]",
		Description:     "List chunks",
		FullDescription: "Validates each file and lists every chunk with its offset, type, length, CRC and property flags",
	}

	root.ChildCommands["version"] = &global.CommandSet{
		CommandName:     "version",
		UsageOption:     "[-v]",
		Description:     "Show Version Information",
		FullDescription: "Display meta information about program",
	}

	cmdOpts = root
	return
}
