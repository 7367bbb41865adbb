package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"pngme/internal/envelope"
	"pngme/internal/externalio/file"
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
	return logctx.New(context.Background(), global.NSTest, global.VerbosityDebug, done)
}

func testingSettings() Settings {
	return Settings{
		MaxFileSize:      global.DefaultMaxFileSize,
		LockTimeout:      time.Second,
		RequireValidType: true,
		CompressionLevel: "default",
	}
}

func mustType(t *testing.T, code string) png.ChunkType {
	t.Helper()
	chunkType, err := png.ParseChunkType(code)
	if err != nil {
		t.Fatalf("ParseChunkType(%q) unexpected error: %v", code, err)
	}
	return chunkType
}

// Writes a small container with IHDR/IEND style chunks and returns its path
func writeTestingPNG(t *testing.T, dir string, extra ...png.Chunk) string {
	t.Helper()
	chunks := []png.Chunk{png.NewChunk(mustType(t, "IHDR"), []byte{0, 0, 0, 1, 0, 0, 0, 1, 8, 2, 0, 0, 0})}
	chunks = append(chunks, extra...)
	chunks = append(chunks, png.NewChunk(mustType(t, "IEND"), nil))

	path := filepath.Join(dir, "image.png")
	if err := os.WriteFile(path, png.New(chunks...).Bytes(), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	return path
}

func readPNG(t *testing.T, path string) *png.PNG {
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

func TestEncodeDecode(t *testing.T) {
	ctx := testingCtx(t)
	settings := testingSettings()

	tests := []struct {
		name           string
		message        string
		compress       bool
		passphrase     []byte
		expectEnvelope bool
	}{
		{name: "plain", message: "hello"},
		{name: "empty message", message: ""},
		{name: "compressed", message: "compress me compress me compress me", compress: true, expectEnvelope: true},
		{name: "sealed", message: "secret", passphrase: []byte("pw"), expectEnvelope: true},
		{name: "compressed and sealed", message: "both", compress: true, passphrase: []byte("pw"), expectEnvelope: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTestingPNG(t, t.TempDir())

			encoded, err := Encode(ctx, settings, EncodeArgs{
				FilePath:   path,
				ChunkType:  "ruSt",
				Message:    []byte(tt.message),
				Compress:   tt.compress,
				Passphrase: tt.passphrase,
			})
			if err != nil {
				t.Fatalf("Encode() unexpected error: %v", err)
			}
			if encoded.OutputPath != path {
				t.Errorf("OutputPath = %q, want %q", encoded.OutputPath, path)
			}
			if encoded.ChunkCount != 3 {
				t.Errorf("ChunkCount = %d, want 3", encoded.ChunkCount)
			}

			chunks := readPNG(t, path).Chunks()
			if last := chunks[len(chunks)-1]; last.Type().String() != "ruSt" {
				t.Errorf("last chunk = %s, want ruSt", last.Type())
			}

			decoded, err := Decode(ctx, settings, DecodeArgs{FilePath: path, ChunkType: "ruSt", Passphrase: tt.passphrase})
			if err != nil {
				t.Fatalf("Decode() unexpected error: %v", err)
			}
			if !decoded.Found {
				t.Fatalf("Decode() Found = false")
			}
			if decoded.Message != tt.message {
				t.Errorf("Decode() Message = %q, want %q", decoded.Message, tt.message)
			}
			if decoded.Enveloped != tt.expectEnvelope {
				t.Errorf("Decode() Enveloped = %v, want %v", decoded.Enveloped, tt.expectEnvelope)
			}
			if decoded.Chunk.CRC() != encoded.Chunk.CRC() {
				t.Errorf("decoded CRC 0x%08X differs from encoded 0x%08X", decoded.Chunk.CRC(), encoded.Chunk.CRC())
			}
		})
	}
}

func TestEncodeOutputPath(t *testing.T) {
	ctx := testingCtx(t)
	dir := t.TempDir()
	path := writeTestingPNG(t, dir)
	original, _ := os.ReadFile(path)
	output := filepath.Join(dir, "out.png")

	_, err := Encode(ctx, testingSettings(), EncodeArgs{FilePath: path, ChunkType: "ruSt", Message: []byte("x"), OutputPath: output})
	if err != nil {
		t.Fatalf("Encode() unexpected error: %v", err)
	}

	after, _ := os.ReadFile(path)
	if !bytes.Equal(after, original) {
		t.Errorf("source file modified when output path given")
	}
	if _, found := readPNG(t, output).ChunkByType("ruSt"); !found {
		t.Errorf("output file missing encoded chunk")
	}
}

func TestEncodeErrors(t *testing.T) {
	ctx := testingCtx(t)
	dir := t.TempDir()
	path := writeTestingPNG(t, dir)

	notPNG := filepath.Join(dir, "text.png")
	if err := os.WriteFile(notPNG, []byte("definitely not a png"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	lax := testingSettings()
	lax.RequireValidType = false

	badLevel := testingSettings()
	badLevel.CompressionLevel = "ultra"

	tests := []struct {
		name      string
		settings  Settings
		args      EncodeArgs
		expectErr error
	}{
		{name: "missing path", settings: testingSettings(), args: EncodeArgs{ChunkType: "ruSt"}, expectErr: ErrSyntax},
		{name: "short type", settings: testingSettings(), args: EncodeArgs{FilePath: path, ChunkType: "abc"}, expectErr: ErrChunkType},
		{name: "non alphabetic type", settings: testingSettings(), args: EncodeArgs{FilePath: path, ChunkType: "ru1t"}, expectErr: ErrChunkType},
		{name: "reserved bit set", settings: testingSettings(), args: EncodeArgs{FilePath: path, ChunkType: "Rust"}, expectErr: ErrChunkType},
		{name: "reserved bit allowed", settings: lax, args: EncodeArgs{FilePath: path, ChunkType: "Rust"}, expectErr: nil},
		{name: "missing file", settings: testingSettings(), args: EncodeArgs{FilePath: filepath.Join(dir, "nope.png"), ChunkType: "ruSt"}, expectErr: ErrFile},
		{name: "not a png", settings: testingSettings(), args: EncodeArgs{FilePath: notPNG, ChunkType: "ruSt"}, expectErr: ErrPNGFormat},
		{name: "bad compression level", settings: badLevel, args: EncodeArgs{FilePath: path, ChunkType: "ruSt", Compress: true}, expectErr: ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(ctx, tt.settings, tt.args)
			if tt.expectErr == nil {
				if err != nil {
					t.Fatalf("Encode() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.expectErr) {
				t.Fatalf("Encode() error = %v, want %v", err, tt.expectErr)
			}
		})
	}
}

func TestEncodeWaitsForLock(t *testing.T) {
	ctx := testingCtx(t)
	path := writeTestingPNG(t, t.TempDir())

	held, err := file.LockForEdit(ctx, path, time.Millisecond)
	if err != nil {
		t.Fatalf("LockForEdit() unexpected error: %v", err)
	}
	defer held.Unlock()

	settings := testingSettings()
	settings.LockTimeout = 30 * time.Millisecond

	_, err = Encode(ctx, settings, EncodeArgs{FilePath: path, ChunkType: "ruSt", Message: []byte("x")})
	if !errors.Is(err, ErrFile) || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Encode() error = %v, want lock timeout", err)
	}
	if _, found := readPNG(t, path).ChunkByType("ruSt"); found {
		t.Errorf("file modified while locked by another editor")
	}
}

func TestDecodeNotFoundAndErrors(t *testing.T) {
	ctx := testingCtx(t)
	binary := png.NewChunk(mustType(t, "biNa"), []byte{0xFF, 0xFE, 0xFD})
	dir := t.TempDir()
	path := writeTestingPNG(t, dir, binary)

	result, err := Decode(ctx, testingSettings(), DecodeArgs{FilePath: path, ChunkType: "ruSt"})
	if err != nil {
		t.Fatalf("Decode() unexpected error: %v", err)
	}
	if result.Found {
		t.Errorf("Decode() Found = true for absent type")
	}

	_, err = Decode(ctx, testingSettings(), DecodeArgs{FilePath: path, ChunkType: "biNa"})
	if !errors.Is(err, ErrMessage) || !errors.Is(err, png.ErrNotUTF8) {
		t.Errorf("Decode() binary error = %v, want %v", err, png.ErrNotUTF8)
	}

	_, err = Decode(ctx, testingSettings(), DecodeArgs{FilePath: path, ChunkType: "toolong"})
	if !errors.Is(err, ErrChunkType) {
		t.Errorf("Decode() bad type error = %v, want %v", err, ErrChunkType)
	}
}

func TestDecodeSealedWithoutPassphrase(t *testing.T) {
	ctx := testingCtx(t)
	path := writeTestingPNG(t, t.TempDir())

	_, err := Encode(ctx, testingSettings(), EncodeArgs{FilePath: path, ChunkType: "ruSt", Message: []byte("s"), Passphrase: []byte("pw")})
	if err != nil {
		t.Fatalf("Encode() unexpected error: %v", err)
	}

	_, err = Decode(ctx, testingSettings(), DecodeArgs{FilePath: path, ChunkType: "ruSt"})
	if !errors.Is(err, ErrMessage) || !errors.Is(err, envelope.ErrPassphraseRequired) {
		t.Errorf("Decode() error = %v, want %v", err, envelope.ErrPassphraseRequired)
	}

	_, err = Decode(ctx, testingSettings(), DecodeArgs{FilePath: path, ChunkType: "ruSt", Passphrase: []byte("other")})
	if !errors.Is(err, envelope.ErrAuthentication) {
		t.Errorf("Decode() error = %v, want %v", err, envelope.ErrAuthentication)
	}
}

func TestRemove(t *testing.T) {
	ctx := testingCtx(t)
	first := png.NewChunk(mustType(t, "zzZz"), []byte("P1"))
	second := png.NewChunk(mustType(t, "zzZz"), []byte("P2"))

	tests := []struct {
		name          string
		all           bool
		expectRemoved int
		expectLeft    string
	}{
		{name: "first match only", all: false, expectRemoved: 1, expectLeft: "P2"},
		{name: "all matches", all: true, expectRemoved: 2, expectLeft: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTestingPNG(t, t.TempDir(), first, second)

			result, err := Remove(ctx, testingSettings(), RemoveArgs{FilePath: path, ChunkType: "zzZz", All: tt.all})
			if err != nil {
				t.Fatalf("Remove() unexpected error: %v", err)
			}
			if len(result.Removed) != tt.expectRemoved {
				t.Fatalf("len(Removed) = %d, want %d", len(result.Removed), tt.expectRemoved)
			}
			if string(result.Removed[0].Data()) != "P1" {
				t.Errorf("first removed = %q, want P1", result.Removed[0].Data())
			}
			if RemovedBytes(result.Removed) != uint64(2*tt.expectRemoved) {
				t.Errorf("RemovedBytes() = %d", RemovedBytes(result.Removed))
			}

			chunk, found := readPNG(t, path).ChunkByType("zzZz")
			if tt.expectLeft == "" {
				if found {
					t.Errorf("zzZz chunk still present: %q", chunk.Data())
				}
				return
			}
			if !found || string(chunk.Data()) != tt.expectLeft {
				t.Errorf("remaining zzZz = %q, %v, want %q", chunk.Data(), found, tt.expectLeft)
			}
		})
	}
}

func TestRemoveNotFound(t *testing.T) {
	ctx := testingCtx(t)
	path := writeTestingPNG(t, t.TempDir())
	before, _ := os.ReadFile(path)

	_, err := Remove(ctx, testingSettings(), RemoveArgs{FilePath: path, ChunkType: "nOne", All: true})
	if !errors.Is(err, ErrChunkNotFound) || !errors.Is(err, png.ErrChunkNotFound) {
		t.Fatalf("Remove() error = %v, want %v", err, ErrChunkNotFound)
	}

	after, _ := os.ReadFile(path)
	if !bytes.Equal(before, after) {
		t.Errorf("failed remove modified the file")
	}
}

func TestRemoveOutputPath(t *testing.T) {
	ctx := testingCtx(t)
	dir := t.TempDir()
	path := writeTestingPNG(t, dir, png.NewChunk(mustType(t, "ruSt"), []byte("m")))
	output := filepath.Join(dir, "clean.png")

	result, err := Remove(ctx, testingSettings(), RemoveArgs{FilePath: path, ChunkType: "ruSt", OutputPath: output})
	if err != nil {
		t.Fatalf("Remove() unexpected error: %v", err)
	}
	if result.Remaining != 2 {
		t.Errorf("Remaining = %d, want 2", result.Remaining)
	}
	if _, found := readPNG(t, path).ChunkByType("ruSt"); !found {
		t.Errorf("source lost chunk when output path given")
	}
	if _, found := readPNG(t, output).ChunkByType("ruSt"); found {
		t.Errorf("output still has removed chunk")
	}
}

func TestPrint(t *testing.T) {
	ctx := testingCtx(t)

	var paths []string
	for i := 0; i < 5; i++ {
		paths = append(paths, writeTestingPNG(t, t.TempDir(), png.NewChunk(mustType(t, "ruSt"), bytes.Repeat([]byte("x"), i))))
	}

	bad := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(bad, png.StandardHeader[:4], 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	paths = append(paths[:2], append([]string{bad}, paths[2:]...)...)

	reports, err := Print(ctx, testingSettings(), PrintArgs{FilePaths: paths})
	if !errors.Is(err, ErrPNGFormat) {
		t.Fatalf("Print() error = %v, want %v", err, ErrPNGFormat)
	}
	if len(reports) != len(paths) {
		t.Fatalf("len(reports) = %d, want %d", len(reports), len(paths))
	}

	for i, report := range reports {
		if report.Path != paths[i] {
			t.Errorf("report %d path = %q, want %q", i, report.Path, paths[i])
		}
		if report.Path == bad {
			if report.Err == nil {
				t.Errorf("report for bad file has no error")
			}
			continue
		}
		if report.Err != nil {
			t.Errorf("report %d unexpected error: %v", i, report.Err)
			continue
		}
		if len(report.Layout) != 3 {
			t.Errorf("report %d layout has %d chunks, want 3", i, len(report.Layout))
		}
		if report.Size != len(report.PNG.Bytes()) {
			t.Errorf("report %d size = %d, want %d", i, report.Size, len(report.PNG.Bytes()))
		}
	}
}

func TestPrintNoFiles(t *testing.T) {
	_, err := Print(testingCtx(t), testingSettings(), PrintArgs{})
	if !errors.Is(err, ErrSyntax) {
		t.Errorf("Print() error = %v, want %v", err, ErrSyntax)
	}
}

func TestStorePNGAllocationAtStandardVerbosity(t *testing.T) {
	if testing.Short() {
		t.Skip("writes several MiB repeatedly")
	}

	done := make(chan struct{})
	defer close(done)
	ctx := logctx.New(context.Background(), global.NSTest, global.VerbosityStandard, done)

	const payloadSize = 2 << 20
	container := png.New(
		png.NewChunk(mustType(t, "IHDR"), []byte{0, 0, 0, 1, 0, 0, 0, 1, 8, 2, 0, 0, 0}),
		png.NewChunk(mustType(t, "IDAT"), bytes.Repeat([]byte{0xAB}, payloadSize)),
		png.NewChunk(mustType(t, "IEND"), nil),
	)
	path := filepath.Join(t.TempDir(), "large.png")

	var storeErr error
	result := testing.Benchmark(func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, err := storePNG(ctx, container, path); err != nil {
				storeErr = err
				return
			}
		}
	})
	if storeErr != nil {
		t.Fatalf("storePNG() unexpected error: %v", storeErr)
	}

	// One serialized copy plus small change; a formatted dump would be several times the file
	limit := int64(2 * payloadSize)
	if got := result.AllocedBytesPerOp(); got > limit {
		t.Errorf("storePNG() allocated %d bytes/op, expected at most %d", got, limit)
	}
}

func TestDecodeRejectsNonUTF8(t *testing.T) {
	ctx := testingCtx(t)

	tests := []struct {
		name           string
		compress       bool
		expectEnvelope bool
	}{
		{name: "plain chunk data", compress: false, expectEnvelope: false},
		{name: "compressed envelope body", compress: true, expectEnvelope: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTestingPNG(t, t.TempDir())

			_, err := Encode(ctx, testingSettings(), EncodeArgs{
				FilePath:  path,
				ChunkType: "ruSt",
				Message:   []byte{0xC3, 0x28, 0xFF},
				Compress:  tt.compress,
			})
			if err != nil {
				t.Fatalf("Encode() unexpected error: %v", err)
			}

			result, err := Decode(ctx, testingSettings(), DecodeArgs{FilePath: path, ChunkType: "ruSt"})
			if !errors.Is(err, ErrMessage) || !errors.Is(err, png.ErrNotUTF8) {
				t.Fatalf("Decode() error = %v, want %v", err, png.ErrNotUTF8)
			}
			if result.Enveloped != tt.expectEnvelope {
				t.Errorf("Decode() enveloped = %v, want %v", result.Enveloped, tt.expectEnvelope)
			}
			if result.Message != "" {
				t.Errorf("Decode() message = %q, want empty", result.Message)
			}
		})
	}
}
