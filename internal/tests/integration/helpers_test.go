// End to end tests of the editing commands against files on disk
package integration

import (
	"context"
	"os"
	"path/filepath"
	"pngme/internal/commands"
	"pngme/internal/global"
	"pngme/internal/logctx"
	"pngme/pkg/png"
	"testing"
	"time"
)

func testingCtx(t *testing.T) context.Context {
	t.Helper()
	done := make(chan struct{})
	t.Cleanup(func() { close(done) })
	return logctx.New(context.Background(), global.NSTest, global.VerbosityNone, done)
}

func testingSettings() commands.Settings {
	return commands.Settings{
		MaxFileSize:      1 << 20,
		LockTimeout:      10 * time.Second,
		RequireValidType: true,
		CompressionLevel: "fastest",
	}
}

func mustChunk(t *testing.T, code string, data []byte) png.Chunk {
	t.Helper()
	chunkType, err := png.ParseChunkType(code)
	if err != nil {
		t.Fatalf("ParseChunkType(%q) unexpected error: %v", code, err)
	}
	return png.NewChunk(chunkType, data)
}

// Minimal 1x1 image: IHDR, one IDAT, IEND
func writeImage(t *testing.T, dir string) (path string, original []byte) {
	t.Helper()
	container := png.New(
		mustChunk(t, "IHDR", []byte{0, 0, 0, 1, 0, 0, 0, 1, 8, 6, 0, 0, 0}),
		mustChunk(t, "IDAT", []byte{0x78, 0x9C, 0x63, 0x60, 0x00, 0x00, 0x00, 0x02, 0x00, 0x01}),
		mustChunk(t, "IEND", nil),
	)
	original = container.Bytes()

	path = filepath.Join(dir, "image.png")
	if err := os.WriteFile(path, original, 0640); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	return
}

func readImage(t *testing.T, path string) *png.PNG {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read '%s': %v", path, err)
	}
	container, err := png.Parse(content)
	if err != nil {
		t.Fatalf("Parse('%s') unexpected error: %v", path, err)
	}
	return container
}
