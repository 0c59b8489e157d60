// Package config loads starlac settings from TOML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// EnvVar names the environment variable that points at a config file.
const EnvVar = "STARLA_CONFIG"

// Config holds the complete tool configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	AST     ASTConfig     `toml:"ast"`
	REPL    REPLConfig    `toml:"repl"`
}

// GeneralConfig holds settings shared by every command.
type GeneralConfig struct {
	LogLevel string `toml:"log_level"` // debug, info, warn or error
	Trace    bool   `toml:"trace"`     // log per-phase timing
}

// ASTConfig holds settings for tree output.
type ASTConfig struct {
	Format string `toml:"format"` // text, json, yaml or source
}

// REPLConfig holds interactive session settings.
type REPLConfig struct {
	Prompt         string `toml:"prompt"`
	ContinuePrompt string `toml:"continue_prompt"`
	HistoryFile    string `toml:"history_file"`
}

// Formats lists the accepted tree output formats.
var Formats = []string{"text", "json", "yaml", "source"}

var logLevels = []string{"debug", "info", "warn", "error"}

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// SearchPaths returns the locations tried by LoadFromEnv, in order.
func SearchPaths() []string {
	var paths []string
	if p := os.Getenv(EnvVar); p != "" {
		paths = append(paths, p)
	}
	paths = append(paths, "./starla.toml")
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "starla", "config.toml"))
	}
	return paths
}

// LoadFromEnv loads the first config file found on SearchPaths. If none
// exists it returns Default. A file named by STARLA_CONFIG must exist.
func LoadFromEnv() (*Config, error) {
	if p := os.Getenv(EnvVar); p != "" {
		return Load(p)
	}
	for _, p := range SearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	var errs []error
	if !slices.Contains(logLevels, c.General.LogLevel) {
		errs = append(errs, fmt.Errorf("general.log_level: invalid level %q (want one of %s)",
			c.General.LogLevel, strings.Join(logLevels, ", ")))
	}
	if !slices.Contains(Formats, c.AST.Format) {
		errs = append(errs, fmt.Errorf("ast.format: invalid format %q (want one of %s)",
			c.AST.Format, strings.Join(Formats, ", ")))
	}
	return errors.Join(errs...)
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.AST.Format == "" {
		c.AST.Format = "text"
	}
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = ">>> "
	}
	if c.REPL.ContinuePrompt == "" {
		c.REPL.ContinuePrompt = "... "
	}
	if c.REPL.HistoryFile == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.REPL.HistoryFile = filepath.Join(home, ".starla_history")
		}
	}
}

func (c *Config) expandEnvVars() {
	c.REPL.HistoryFile = os.ExpandEnv(c.REPL.HistoryFile)
}
