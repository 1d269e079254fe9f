package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dshills/textcore/internal/engine/buffer"
	"github.com/dshills/textcore/internal/engine/rope"
)

// Config holds all engine settings.
type Config struct {
	Rope    RopeConfig    `toml:"rope" yaml:"rope"`
	History HistoryConfig `toml:"history" yaml:"history"`
	Log     LogConfig     `toml:"log" yaml:"log"`
}

// RopeConfig controls text storage.
type RopeConfig struct {
	MaxLeafSize int  `toml:"max_leaf_size" yaml:"max_leaf_size"`
	Rebalance   bool `toml:"rebalance" yaml:"rebalance"`
}

// HistoryConfig controls undo/redo.
type HistoryConfig struct {
	MaxEntries int `toml:"max_entries" yaml:"max_entries"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Rope: RopeConfig{
			MaxLeafSize: rope.DefaultMaxLeafSize,
			Rebalance:   true,
		},
		History: HistoryConfig{
			MaxEntries: 0,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if c.Rope.MaxLeafSize < rope.MinMaxLeafSize {
		return fmt.Errorf("%w: rope.max_leaf_size %d is below %d", ErrInvalidConfig, c.Rope.MaxLeafSize, rope.MinMaxLeafSize)
	}
	if c.History.MaxEntries < 0 {
		return fmt.Errorf("%w: history.max_entries %d is negative", ErrInvalidConfig, c.History.MaxEntries)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q must be text or json", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

// RopeOptions converts the rope settings.
func (c *Config) RopeOptions() []rope.Option {
	return []rope.Option{
		rope.WithMaxLeafSize(c.Rope.MaxLeafSize),
		rope.WithRebalance(c.Rope.Rebalance),
	}
}

// BufferOptions converts the settings into buffer options.
// A nil logger leaves the buffer's default.
func (c *Config) BufferOptions(logger *slog.Logger) []buffer.Option {
	opts := []buffer.Option{
		buffer.WithRopeOptions(c.RopeOptions()...),
		buffer.WithMaxUndo(c.History.MaxEntries),
	}
	if logger != nil {
		opts = append(opts, buffer.WithLogger(logger))
	}
	return opts
}

// Logger builds a logger writing to w with the configured level and format.
// Invalid settings fall back to info-level text output.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// parseLevel converts a level name to a slog level.
func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: log.level %q must be debug, info, warn or error", ErrInvalidConfig, s)
	}
}
