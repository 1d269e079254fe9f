package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix is the prefix of environment variables that override settings.
const EnvPrefix = "TEXTCORE_"

// LookupFunc reports the value of an environment variable.
// os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// envSetting binds one variable to the setting it overrides.
type envSetting struct {
	key   string
	apply func(c *Config, val string) error
}

var envSettings = []envSetting{
	{"ROPE_MAX_LEAF_SIZE", func(c *Config, val string) error {
		return setInt(&c.Rope.MaxLeafSize, val)
	}},
	{"ROPE_REBALANCE", func(c *Config, val string) error {
		b, err := strconv.ParseBool(val)
		if err == nil {
			c.Rope.Rebalance = b
		}
		return err
	}},
	{"HISTORY_MAX_ENTRIES", func(c *Config, val string) error {
		return setInt(&c.History.MaxEntries, val)
	}},
	{"LOG_LEVEL", func(c *Config, val string) error {
		c.Log.Level = val
		return nil
	}},
	{"LOG_FORMAT", func(c *Config, val string) error {
		c.Log.Format = val
		return nil
	}},
}

func setInt(dst *int, val string) error {
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err == nil {
		*dst = n
	}
	return err
}

// ApplyEnv overrides settings from TEXTCORE_* variables and revalidates.
// Note: Empty string values are treated as valid values, not as unset.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	for _, s := range envSettings {
		name := EnvPrefix + s.key
		val, ok := lookup(name)
		if !ok {
			continue
		}
		if err := s.apply(c, val); err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalidConfig, name, val, err)
		}
	}
	return c.Validate()
}

// ReadDotEnv reads a .env file without touching the process environment.
// Returns nil, nil if the file doesn't exist.
func ReadDotEnv(path string) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}
	return vars, nil
}

// ChainLookup returns a LookupFunc that tries each source in order.
func ChainLookup(sources ...LookupFunc) LookupFunc {
	return func(key string) (string, bool) {
		for _, src := range sources {
			if src == nil {
				continue
			}
			if val, ok := src(key); ok {
				return val, true
			}
		}
		return "", false
	}
}

// MapLookup returns a LookupFunc backed by m.
func MapLookup(m map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		val, ok := m[key]
		return val, ok
	}
}
