package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/wbrown/imgedit"
	"github.com/wbrown/imgedit/imageutil"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "imgedit.yaml"

// Config represents the optional imgedit.yaml configuration.
type Config struct {
	Codec     CodecConfig     `yaml:"codec"`
	Log       LogConfig       `yaml:"log"`
	Histogram HistogramConfig `yaml:"histogram"`
}

// CodecConfig contains encoder settings used when saving images.
type CodecConfig struct {
	JPEGQuality int   `yaml:"jpeg_quality,omitempty"`
	PPMPlain    *bool `yaml:"ppm_plain,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// HistogramConfig sizes rendered histogram charts.
type HistogramConfig struct {
	Width  int `yaml:"width,omitempty"`
	Height int `yaml:"height,omitempty"`
}

// Resolved contains configuration values with defaults applied.
type Resolved struct {
	Codec           imageutil.CodecOptions
	LogLevel        slog.Level
	HistogramWidth  int
	HistogramHeight int
}

// LoadOptional reads the file at path if present. An empty path means
// DefaultFile.
func LoadOptional(path string) (*Config, error) {
	if path == "" {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data)
}

// Load reads the file at path, which must exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// ModelOptions returns the imgedit.Model options for r.
func (r *Resolved) ModelOptions() []imgedit.Option {
	return []imgedit.Option{
		imgedit.WithCodecOptions(r.Codec),
		imgedit.WithChartSize(r.HistogramWidth, r.HistogramHeight),
	}
}

// Resolve applies defaults and validates the configured values.
func (c *Config) Resolve() (*Resolved, error) {
	codec := imageutil.DefaultCodecOptions()
	if q := c.Codec.JPEGQuality; q != 0 {
		if q < 1 || q > 100 {
			return nil, fmt.Errorf("codec.jpeg_quality %d not in [1,100]", q)
		}
		codec.JPEGQuality = q
	}
	if c.Codec.PPMPlain != nil {
		codec.PlainPPM = *c.Codec.PPMPlain
	}

	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}

	width, height := c.Histogram.Width, c.Histogram.Height
	if width == 0 {
		width = imgedit.DefaultChartWidth
	}
	if height == 0 {
		height = imgedit.DefaultChartHeight
	}
	if width < imgedit.MinChartSize || height < imgedit.MinChartSize {
		return nil, fmt.Errorf("histogram size %dx%d below %d", width, height, imgedit.MinChartSize)
	}

	return &Resolved{
		Codec:           codec,
		LogLevel:        level,
		HistogramWidth:  width,
		HistogramHeight: height,
	}, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log.level %q", s)
	}
}
