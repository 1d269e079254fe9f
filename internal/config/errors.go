package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrInvalidConfig indicates a setting value is out of range.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrUnknownFormat indicates a file extension that is neither TOML nor YAML.
	ErrUnknownFormat = errors.New("unknown config format")
)

// ParseError reports a config document that failed to decode. Line and
// Column are 1-based and zero when the decoder gave no position.
type ParseError struct {
	Source       string
	Line, Column int
	Err          error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("config %s:%d:%d: %v", e.Source, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
