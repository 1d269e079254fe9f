package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/textcore/internal/engine/buffer"
)

// memFS is an in-memory file system for testing.
type memFS struct {
	files map[string][]byte
}

func newMemFS() *memFS {
	return &memFS{files: make(map[string][]byte)}
}

func (m *memFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *memFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Rope.MaxLeafSize != 1024 || !cfg.Rope.Rebalance {
		t.Errorf("rope defaults = %+v", cfg.Rope)
	}
	if cfg.History.MaxEntries != 0 {
		t.Errorf("history default = %d, want unlimited", cfg.History.MaxEntries)
	}
}

func TestLoadTOML(t *testing.T) {
	memfs := newMemFS()
	memfs.AddFile("/textcore.toml", `
[rope]
max_leaf_size = 256
rebalance = false

[history]
max_entries = 50

[log]
level = "debug"
format = "json"
`)

	cfg, err := LoadFrom(memfs, "/textcore.toml")
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	want := &Config{
		Rope:    RopeConfig{MaxLeafSize: 256, Rebalance: false},
		History: HistoryConfig{MaxEntries: 50},
		Log:     LogConfig{Level: "debug", Format: "json"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadYAML(t *testing.T) {
	memfs := newMemFS()
	memfs.AddFile("/textcore.yml", `
rope:
  max_leaf_size: 64
history:
  max_entries: 10
`)

	cfg, err := LoadFrom(memfs, "/textcore.yml")
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	want := Default()
	want.Rope.MaxLeafSize = 64
	want.History.MaxEntries = 10
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := LoadFrom(newMemFS(), "/nope.toml")
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("expected defaults (-want +got):\n%s", diff)
	}
}

func TestLoadUnknownExtension(t *testing.T) {
	_, err := LoadFrom(newMemFS(), "/textcore.json")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("error = %v, want ErrUnknownFormat", err)
	}
}

func TestParseEmpty(t *testing.T) {
	for _, format := range []Format{FormatTOML, FormatYAML} {
		cfg, err := Parse(format, []byte("# only a comment\n"))
		if err != nil {
			t.Errorf("%s: Parse failed: %v", format, err)
			continue
		}
		if diff := cmp.Diff(Default(), cfg); diff != "" {
			t.Errorf("%s: expected defaults (-want +got):\n%s", format, diff)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{"toml syntax", FormatTOML, "[rope\nmax_leaf_size = 1"},
		{"toml unknown key", FormatTOML, "[rope]\nleaf = 1"},
		{"toml wrong type", FormatTOML, "[rope]\nmax_leaf_size = \"big\""},
		{"yaml syntax", FormatYAML, "rope: [1, 2"},
		{"yaml unknown key", FormatYAML, "rope:\n  leaf: 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.format, []byte(tt.data))
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error = %v, want *ParseError", err)
			}
			if pe.Err == nil || pe.Source == "" {
				t.Errorf("ParseError missing detail: %+v", pe)
			}
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse(FormatTOML, []byte("[rope]\nmax_leaf_size = = 4\n"))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if pe.Line != 2 {
		t.Errorf("Line = %d, want 2", pe.Line)
	}
	if pe.Column == 0 {
		t.Error("Column not set")
	}
	want := fmt.Sprintf("config %s:2:%d: ", pe.Source, pe.Column)
	if !strings.HasPrefix(pe.Error(), want) {
		t.Errorf("Error() = %q, want prefix %q", pe.Error(), want)
	}
}

func TestParseErrorWithoutPosition(t *testing.T) {
	inner := errors.New("bad document")
	pe := &ParseError{Source: "app.yaml", Err: inner}
	if got, want := pe.Error(), "config app.yaml: bad document"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(pe, inner) {
		t.Error("ParseError should unwrap to its cause")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"leaf too small", func(c *Config) { c.Rope.MaxLeafSize = 8 }},
		{"negative history", func(c *Config) { c.History.MaxEntries = -1 }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadInvalidValue(t *testing.T) {
	memfs := newMemFS()
	memfs.AddFile("/bad.toml", "[history]\nmax_entries = -5\n")

	_, err := LoadFrom(memfs, "/bad.toml")
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	env := MapLookup(map[string]string{
		"TEXTCORE_ROPE_MAX_LEAF_SIZE":  "128",
		"TEXTCORE_ROPE_REBALANCE":      "false",
		"TEXTCORE_HISTORY_MAX_ENTRIES": "7",
		"TEXTCORE_LOG_LEVEL":           "warn",
	})

	if err := cfg.ApplyEnv(env); err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}

	want := Default()
	want.Rope.MaxLeafSize = 128
	want.Rope.Rebalance = false
	want.History.MaxEntries = 7
	want.Log.Level = "warn"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyEnvErrors(t *testing.T) {
	tests := map[string]string{
		"TEXTCORE_ROPE_MAX_LEAF_SIZE": "huge",
		"TEXTCORE_ROPE_REBALANCE":     "maybe",
		"TEXTCORE_LOG_FORMAT":         "xml",
	}
	for key, val := range tests {
		t.Run(key, func(t *testing.T) {
			err := Default().ApplyEnv(MapLookup(map[string]string{key: val}))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestChainLookup(t *testing.T) {
	first := MapLookup(map[string]string{"A": "1"})
	second := MapLookup(map[string]string{"A": "2", "B": "3"})
	lookup := ChainLookup(first, nil, second)

	if v, _ := lookup("A"); v != "1" {
		t.Errorf("A = %q, want first source", v)
	}
	if v, _ := lookup("B"); v != "3" {
		t.Errorf("B = %q, want second source", v)
	}
	if _, ok := lookup("C"); ok {
		t.Error("C should be unset")
	}
}

func TestReadDotEnv(t *testing.T) {
	path := t.TempDir() + "/.env"
	content := "TEXTCORE_LOG_LEVEL=debug\n# comment\nTEXTCORE_HISTORY_MAX_ENTRIES=3\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	vars, err := ReadDotEnv(path)
	if err != nil {
		t.Fatalf("ReadDotEnv failed: %v", err)
	}
	want := map[string]string{
		"TEXTCORE_LOG_LEVEL":           "debug",
		"TEXTCORE_HISTORY_MAX_ENTRIES": "3",
	}
	if diff := cmp.Diff(want, vars); diff != "" {
		t.Errorf("vars mismatch (-want +got):\n%s", diff)
	}

	missing, err := ReadDotEnv(t.TempDir() + "/missing.env")
	if err != nil || missing != nil {
		t.Errorf("missing file = %v, %v; want nil, nil", missing, err)
	}
}

func TestLogger(t *testing.T) {
	var out bytes.Buffer
	cfg := Default()
	cfg.Log.Format = "json"
	cfg.Log.Level = "warn"

	logger := cfg.Logger(&out)
	logger.Info("hidden")
	logger.Warn("shown", slog.Int("n", 1))

	got := out.String()
	if strings.Contains(got, "hidden") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(got, `"msg":"shown"`) || !strings.Contains(got, `"n":1`) {
		t.Errorf("unexpected JSON output: %s", got)
	}
}

func TestBufferOptions(t *testing.T) {
	cfg := Default()
	cfg.History.MaxEntries = 2
	cfg.Rope.MaxLeafSize = 16

	b := buffer.NewBuffer(cfg.BufferOptions(nil)...)
	for i := 0; i < 4; i++ {
		if err := b.Insert(b.Len(), strings.Repeat("x", 10)); err != nil {
			t.Fatal(err)
		}
	}
	if b.UndoCount() != 2 {
		t.Errorf("UndoCount = %d, want 2", b.UndoCount())
	}
	if b.Snapshot().LeafCount() < 2 {
		t.Errorf("LeafCount = %d, expected leaves of at most 16 bytes", b.Snapshot().LeafCount())
	}
}
