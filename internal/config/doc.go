// Package config provides engine settings for textcore.
//
// Settings are read from a TOML or YAML file, chosen by extension, and may
// be overridden by TEXTCORE_* environment variables:
//
//	[rope]
//	max_leaf_size = 1024  # Bytes per leaf before splitting
//	rebalance = true      # Rebuild the tree when it grows too tall
//
//	[history]
//	max_entries = 0       # Undo entries kept, 0 for unlimited
//
//	[log]
//	level = "info"        # debug, info, warn or error
//	format = "text"       # text or json
//
// A missing file is not an error; Load returns the defaults instead.
//
// Usage:
//
//	cfg, err := config.Load("textcore.toml")
//	if err != nil {
//	    return err
//	}
//	buf := buffer.NewBuffer(cfg.BufferOptions(cfg.Logger(os.Stderr))...)
package config
