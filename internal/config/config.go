// Package config loads host configuration for the filetype engine:
// which capabilities the session has, where user filetype definitions
// live, and how loudly to log.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"

	"github.com/dshills/prooftype/internal/ftplugin"
)

// Config is the host configuration.
type Config struct {
	// Capabilities toggles host and companion-plugin features by
	// capability name. Names absent from the file keep their default.
	Capabilities map[string]bool `toml:"capabilities"`

	// DefsDir is the user filetype definitions directory, empty when
	// only built-in definitions are used.
	DefsDir string `toml:"defs_dir"`

	// Logging configures log output.
	Logging Logging `toml:"logging"`
}

// Logging is the logging section.
type Logging struct {
	// Level is the minimum level: debug, info, warn, or error.
	Level string `toml:"level"`
}

// Default returns the default configuration: every capability present,
// info-level logging.
func Default() Config {
	caps := make(map[string]bool)
	for _, c := range ftplugin.AllCapabilities() {
		caps[string(c)] = true
	}
	return Config{
		Capabilities: caps,
		Logging:      Logging{Level: "info"},
	}
}

// Load reads configuration from a TOML file, layered over the defaults.
// A missing file is not an error; the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var file Config
	if err := toml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	for name, present := range file.Capabilities {
		cfg.Capabilities[name] = present
	}
	if file.DefsDir != "" {
		cfg.DefsDir = file.DefsDir
	}
	if file.Logging.Level != "" {
		cfg.Logging.Level = file.Logging.Level
	}
	return cfg, nil
}

// Snapshot builds the capability snapshot activation consumes.
func (c Config) Snapshot() ftplugin.Snapshot {
	return ftplugin.SnapshotFromMap(c.Capabilities)
}

// LogLevel parses the configured log level. Unknown values fall back
// to info.
func (c Config) LogLevel() zerolog.Level {
	switch c.Logging.Level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
