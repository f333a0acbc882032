// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config describes the application window.
type Config struct {
	Title  string `toml:"title" yaml:"title"`
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
	// VSync synchronizes buffer swaps with the display refresh.
	VSync bool `toml:"vsync" yaml:"vsync"`
	// ClearColor is the RGBA color frames start from.
	ClearColor [4]uint8 `toml:"clear_color" yaml:"clear_color"`
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `toml:"log_level" yaml:"log_level"`
	// MSAA is the number of samples of the default framebuffer, or
	// zero.
	MSAA      int  `toml:"msaa" yaml:"msaa"`
	Resizable bool `toml:"resizable" yaml:"resizable"`
}

// ErrConfig is wrapped by the errors of Validate.
var ErrConfig = errors.New("app: invalid config")

// DefaultConfig returns the configuration used for the fields a
// config file leaves out.
func DefaultConfig() Config {
	return Config{
		Title:      "neocogi",
		Width:      1280,
		Height:     720,
		VSync:      true,
		ClearColor: [4]uint8{0x20, 0x20, 0x28, 0xff},
		LogLevel:   "info",
		Resizable:  true,
	}
}

// LoadConfig reads the config file at path over DefaultConfig. The
// format follows the extension: .toml, or .yaml and .yml. Unknown
// fields are errors.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("app: load config: %w", err)
	}
	cfg, err := ParseConfig(data, filepath.Ext(path))
	if err != nil {
		return Config{}, fmt.Errorf("app: load config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes data in the format named by ext over
// DefaultConfig and validates the result.
func ParseConfig(data []byte, ext string) (Config, error) {
	cfg := DefaultConfig()
	switch strings.ToLower(ext) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, err
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty document decodes to io.EOF.
		if err := dec.Decode(&cfg); err != nil && len(bytes.TrimSpace(data)) > 0 {
			return Config{}, err
		}
	default:
		return Config{}, fmt.Errorf("unknown config format %q", ext)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid field of c.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrConfig, c.Width, c.Height)
	}
	if c.MSAA < 0 {
		return fmt.Errorf("%w: msaa %d", ErrConfig, c.MSAA)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return nil
}

// Level returns the slog level of LogLevel. Invalid levels map to
// Info.
func (c Config) Level() slog.Level {
	l, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// Clear returns ClearColor.
func (c Config) Clear() color.RGBA {
	return color.RGBA{R: c.ClearColor[0], G: c.ClearColor[1], B: c.ClearColor[2], A: c.ClearColor[3]}
}
