package cli

import (
	"bytes"
	"errors"
	"pngme/internal/commands"
	"pngme/internal/global"
	"pngme/pkg/png"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestPreviewData(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		width  int
		expect string
	}{
		{name: "short text", data: []byte("hello"), width: 40, expect: `"hello"`},
		{name: "text cut", data: []byte(strings.Repeat("a", 30)), width: 20, expect: `"` + strings.Repeat("a", 15) + `..."`},
		{name: "binary", data: []byte{0x00, 0xFF, 0x10}, width: 40, expect: "00 FF 10"},
		{name: "binary cut", data: bytes.Repeat([]byte{0xAB}, 10), width: 16, expect: "AB AB AB AB ..."},
		{name: "width floor", data: []byte(strings.Repeat("b", 30)), width: 2, expect: `"` + strings.Repeat("b", 11) + `..."`},
		{name: "control chars are binary", data: []byte("a\nb"), width: 40, expect: "61 0A 62"},
		{name: "delete is binary", data: []byte("a\x7Fb"), width: 40, expect: "61 7F 62"},
		{name: "C1 control is binary", data: []byte("a\u009Bb"), width: 40, expect: "61 C2 9B 62"},
		{name: "non ASCII text", data: []byte("héllo"), width: 40, expect: `"héllo"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := previewData(tt.data, tt.width)
			if got != tt.expect {
				t.Errorf("previewData() = %q, want %q", got, tt.expect)
			}
			if utf8.RuneCountInString(got) > max(tt.width, global.MinPreviewWidth) {
				t.Errorf("previewData() is %d columns, limit %d", utf8.RuneCountInString(got), tt.width)
			}
		})
	}
}

func TestDescribeFlags(t *testing.T) {
	tests := []struct {
		code   string
		expect string
	}{
		{code: "IHDR", expect: "critical,public,unsafe-to-copy"},
		{code: "ruSt", expect: "ancillary,private,safe-to-copy"},
		{code: "RuSt", expect: "critical,private,safe-to-copy"},
		{code: "Rust", expect: "critical,private,reserved-bit-set,safe-to-copy"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			chunkType, err := png.ParseChunkType(tt.code)
			if err != nil {
				t.Fatalf("ParseChunkType(%q) unexpected error: %v", tt.code, err)
			}
			if got := describeFlags(chunkType); got != tt.expect {
				t.Errorf("describeFlags(%s) = %q, want %q", tt.code, got, tt.expect)
			}
		})
	}
}

func TestRenderValidation(t *testing.T) {
	reports := []commands.FileReport{
		{Path: "good.png"},
		{Path: "bad.png", Err: errors.New("broken")},
	}

	var out bytes.Buffer
	renderValidation(&out, reports)
	if out.String() != "good.png: OK\nbad.png: broken\n" {
		t.Errorf("renderValidation() = %q", out.String())
	}
}

func TestTerminalWidthFallback(t *testing.T) {
	if got := terminalWidth(&bytes.Buffer{}); got != global.DefaultTerminalWidth {
		t.Errorf("terminalWidth(buffer) = %d, want %d", got, global.DefaultTerminalWidth)
	}
}
