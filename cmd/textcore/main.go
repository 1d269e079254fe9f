// Package main is the entry point for the textcore command.
//
// textcore loads a file into a buffer, runs Lua edit scripts against it and
// writes the result back.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/dshills/textcore/internal/config"
	"github.com/dshills/textcore/internal/engine/buffer"
	"github.com/dshills/textcore/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// options holds the parsed command line.
type options struct {
	ConfigPath string
	EnvPath    string
	ScriptPath string
	Code       string
	OutPath    string
	Verbose    bool
	File       string
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, code, done := parseFlags(args, stdout, stderr)
	if done {
		return code
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if opts.Verbose {
		cfg.Log.Level = "debug"
	}
	logger := cfg.Logger(stderr)

	buf := buffer.NewBuffer(cfg.BufferOptions(logger)...)
	if err := buf.LoadFromFile(opts.File); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		logger.Info("starting with empty buffer", slog.String("path", opts.File))
	}

	if opts.ScriptPath != "" || opts.Code != "" {
		rt := script.New(buf, script.WithOutput(stdout), script.WithLogger(logger))
		defer rt.Close()

		if opts.ScriptPath != "" {
			if err := rt.RunFile(opts.ScriptPath); err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
				return 1
			}
		}
		if opts.Code != "" {
			if err := rt.Run(opts.Code); err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
				return 1
			}
		}
	}

	fmt.Fprintf(stdout, "%s: %d bytes, undo %d, redo %d, modified %t\n",
		opts.File, buf.Len(), buf.UndoCount(), buf.RedoCount(), buf.IsModified())

	target := opts.OutPath
	if target == "" && buf.IsModified() {
		target = opts.File
	}
	if target != "" {
		if err := buf.SaveToFile(target); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	return 0
}

// loadConfig reads the config file, then applies .env and process
// environment overrides. The process environment wins.
func loadConfig(opts options) (*config.Config, error) {
	cfg := config.Default()
	if opts.ConfigPath != "" {
		var err error
		if cfg, err = config.Load(opts.ConfigPath); err != nil {
			return nil, err
		}
	}

	var dotenv map[string]string
	if opts.EnvPath != "" {
		var err error
		if dotenv, err = config.ReadDotEnv(opts.EnvPath); err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(config.ChainLookup(os.LookupEnv, config.MapLookup(dotenv))); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseFlags parses args. done reports that run should return code
// immediately (help, version or a usage error).
func parseFlags(args []string, stdout, stderr io.Writer) (opts options, code int, done bool) {
	var showVersion bool

	fset := flag.NewFlagSet("textcore", flag.ContinueOnError)
	fset.SetOutput(stderr)

	fset.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (.toml, .yaml)")
	fset.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	fset.StringVar(&opts.EnvPath, "env", ".env", "Path to .env file with TEXTCORE_* overrides")
	fset.StringVar(&opts.ScriptPath, "script", "", "Lua script to run against the buffer")
	fset.StringVar(&opts.ScriptPath, "s", "", "Lua script to run (shorthand)")
	fset.StringVar(&opts.Code, "e", "", "Lua code to run after the script")
	fset.StringVar(&opts.OutPath, "o", "", "Write the result here instead of FILE")
	fset.BoolVar(&opts.Verbose, "v", false, "Enable debug logging")
	fset.BoolVar(&showVersion, "version", false, "Show version information")

	fset.Usage = func() {
		fmt.Fprintf(stderr, "textcore - scriptable text buffer\n\n")
		fmt.Fprintf(stderr, "Usage: textcore [options] FILE\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fset.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  textcore -e 'buf.insert(0, \"# \")' notes.md    Prefix a file\n")
		fmt.Fprintf(stderr, "  textcore -s fix.lua -o fixed.txt in.txt          Run a script, write elsewhere\n")
	}

	if err := fset.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, 0, true
		}
		return opts, 2, true
	}

	if showVersion {
		fmt.Fprintf(stdout, "textcore %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return opts, 0, true
	}

	if fset.NArg() != 1 {
		fmt.Fprintf(stderr, "Error: expected exactly one FILE argument\n")
		fset.Usage()
		return opts, 2, true
	}
	opts.File = fset.Arg(0)

	return opts, 0, false
}
