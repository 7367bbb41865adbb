package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"pngme/internal/compress"
	"pngme/internal/global"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Runtime settings after defaults and file overlay
type Config struct {
	Verbosity        int
	MaxFileSize      int64
	CompressionLevel string
	LockTimeout      time.Duration
	RequireValidType bool
}

// On-disk TOML layout
type fileConfig struct {
	Verbosity        int    `toml:"verbosity"`
	MaxFileSize      string `toml:"max_file_size"`
	CompressionLevel string `toml:"compression_level"`
	LockTimeout      string `toml:"lock_timeout"`
	RequireValidType bool   `toml:"require_valid_type"`
}

func Default() (cfg Config) {
	cfg = Config{
		Verbosity:        global.DefaultVerbosity,
		MaxFileSize:      global.DefaultMaxFileSize,
		CompressionLevel: global.DefaultCompressionLevel,
		LockTimeout:      global.DefaultLockTimeout,
		RequireValidType: global.DefaultRequireValidType,
	}
	return
}

// Location of the per-user config file, empty if no config dir is known
func DefaultPath() (path string) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return
	}
	path = filepath.Join(dir, global.DefaultConfigDirName, global.DefaultConfigFileName)
	return
}

// Loads config from path, overlaying present keys onto defaults.
// A missing file is only an error when explicit is set.
func Load(path string, explicit bool) (cfg Config, err error) {
	cfg = Default()
	if path == "" {
		return
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			err = nil
			return
		}
		err = fmt.Errorf("failed to load config file '%s': %w", path, err)
		return
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		err = fmt.Errorf("unknown key '%s' in config file '%s'", undecoded[0], path)
		return
	}

	if meta.IsDefined("verbosity") {
		if raw.Verbosity < global.VerbosityNone || raw.Verbosity > global.VerbosityDebug {
			err = fmt.Errorf("invalid verbosity %d: must be between %d and %d", raw.Verbosity, global.VerbosityNone, global.VerbosityDebug)
			return
		}
		cfg.Verbosity = raw.Verbosity
	}

	if meta.IsDefined("max_file_size") {
		cfg.MaxFileSize, err = ParseSize(raw.MaxFileSize)
		if err != nil {
			err = fmt.Errorf("failed to parse max_file_size: %w", err)
			return
		}
	}

	if meta.IsDefined("compression_level") {
		level := strings.ToLower(strings.TrimSpace(raw.CompressionLevel))
		_, err = compress.ParseLevel(level)
		if err != nil {
			err = fmt.Errorf("invalid compression_level: %w", err)
			return
		}
		cfg.CompressionLevel = level
	}

	if meta.IsDefined("lock_timeout") {
		cfg.LockTimeout, err = time.ParseDuration(strings.TrimSpace(raw.LockTimeout))
		if err != nil {
			err = fmt.Errorf("failed to parse lock_timeout: %w", err)
			return
		}
		if cfg.LockTimeout < 0 {
			err = fmt.Errorf("lock_timeout cannot be negative")
			return
		}
	}

	if meta.IsDefined("require_valid_type") {
		cfg.RequireValidType = raw.RequireValidType
	}

	return
}

// Parses byte sizes like "512", "64KiB", "256MiB" or "1GiB"
func ParseSize(text string) (size int64, err error) {
	text = strings.TrimSpace(text)

	units := []struct {
		suffix     string
		multiplier int64
	}{
		{"GiB", 1 << 30},
		{"MiB", 1 << 20},
		{"KiB", 1 << 10},
		{"B", 1},
	}

	multiplier := int64(1)
	for _, unit := range units {
		if strings.HasSuffix(text, unit.suffix) {
			multiplier = unit.multiplier
			text = strings.TrimSpace(strings.TrimSuffix(text, unit.suffix))
			break
		}
	}

	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		err = fmt.Errorf("invalid size '%s': %w", text, err)
		return
	}
	if value <= 0 {
		err = fmt.Errorf("size must be positive, got %d", value)
		return
	}
	if value > (1<<62)/multiplier {
		err = fmt.Errorf("size '%s' is too large", text)
		return
	}

	size = value * multiplier
	return
}
