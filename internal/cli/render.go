package cli

import (
	"fmt"
	"io"
	"os"
	"pngme/internal/commands"
	"pngme/internal/global"
	"pngme/pkg/png"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/term"
)

type renderOptions struct {
	showData bool
	width    int
}

const (
	chunkIndent   string = "  "
	previewPrefix string = "      data: "
)

// Width of the terminal behind w, default width when w is not a terminal
func terminalWidth(w io.Writer) (width int) {
	width = global.DefaultTerminalWidth

	file, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return
	}
	cols, _, err := term.GetSize(int(file.Fd()))
	if err == nil && cols > 0 {
		width = cols
	}
	return
}

func renderValidation(w io.Writer, reports []commands.FileReport) {
	for _, report := range reports {
		if report.Err != nil {
			fmt.Fprintf(w, "%s: %v\n", report.Path, report.Err)
			continue
		}
		fmt.Fprintf(w, "%s: OK\n", report.Path)
	}
}

func renderReports(w io.Writer, reports []commands.FileReport, options renderOptions) {
	for i, report := range reports {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if report.Err != nil {
			fmt.Fprintf(w, "%s: %v\n", report.Path, report.Err)
			continue
		}

		fmt.Fprintf(w, "%s: %d bytes, %d chunks, signature OK\n", report.Path, report.Size, len(report.Layout))
		fmt.Fprintf(w, "%s%-5s %-10s %-4s %-10s %-10s %s\n", chunkIndent, "#", "Offset", "Type", "Length", "CRC", "Flags")
		for _, info := range report.Layout {
			chunk := info.Chunk
			fmt.Fprintf(w, "%s%-5d %-10d %-4s %-10d 0x%08X %s\n",
				chunkIndent, info.Index, info.Offset, chunk.Type(), chunk.Length(), chunk.CRC(), describeFlags(chunk.Type()))

			if options.showData && chunk.Length() > 0 {
				fmt.Fprintf(w, "%s%s\n", previewPrefix, previewData(chunk.Data(), options.width-len(previewPrefix)))
			}
		}
	}
}

// Property bits carried by the case of each type letter
func describeFlags(chunkType png.ChunkType) string {
	flags := make([]string, 0, 4)
	if chunkType.IsCritical() {
		flags = append(flags, "critical")
	} else {
		flags = append(flags, "ancillary")
	}
	if chunkType.IsPublic() {
		flags = append(flags, "public")
	} else {
		flags = append(flags, "private")
	}
	if !chunkType.IsReservedBitValid() {
		flags = append(flags, "reserved-bit-set")
	}
	if chunkType.IsSafeToCopy() {
		flags = append(flags, "safe-to-copy")
	} else {
		flags = append(flags, "unsafe-to-copy")
	}
	return strings.Join(flags, ",")
}

// Quoted text when printable, hex otherwise, cut to fit width columns
func previewData(data []byte, width int) (preview string) {
	width = max(width, global.MinPreviewWidth)
	const ellipsis = "..."

	if isPrintableText(data) {
		// Two columns for the quotes
		room := width - 2
		text := string(data)
		if utf8.RuneCountInString(text) > room {
			runes := []rune(text)
			text = string(runes[:room-len(ellipsis)]) + ellipsis
		}
		preview = `"` + text + `"`
		return
	}

	// Each byte takes three columns ("FF ")
	maxBytes := width / 3
	truncated := len(data) > maxBytes
	if truncated {
		maxBytes = (width - len(ellipsis)) / 3
		data = data[:maxBytes]
	}
	preview = fmt.Sprintf("% X", data)
	if truncated {
		preview += " " + ellipsis
	}
	return
}

func isPrintableText(data []byte) bool {
	if !utf8.Valid(data) {
		return false
	}
	for _, r := range string(data) {
		// C0, DEL and C1 would drive the terminal instead of showing up
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}
