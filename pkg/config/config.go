// Package config handles loading vcd configuration.
//
// The configuration file is optional and only ever read, never written:
//   - Config: ~/.config/vcd/config.yaml (or $XDG_CONFIG_HOME/vcd/config.yaml)
//
// Environment variables override the file; command-line flags override both.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LogConfig controls the diagnostic log.
type LogConfig struct {
	File  string `yaml:"file,omitempty"`  // Log file path (empty disables logging)
	Level string `yaml:"level,omitempty"` // trace, debug, info, warn, error
}

// Config is the top-level configuration for vcd.
type Config struct {
	ScrollOff  int       `yaml:"scrolloff"`   // Rows kept between cursor and viewport edge
	WrapJump   bool      `yaml:"wrap_jump"`   // Letter jumps wrap around to the first sibling
	ShowHidden bool      `yaml:"show_hidden"` // List directories whose name starts with "."
	Log        LogConfig `yaml:"log,omitempty"`
	Debug      bool      `yaml:"-"` // Set from VCD_DEBUG only
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ScrollOff:  3,
		WrapJump:   true,
		ShowHidden: true,
	}
}

// ConfigDir returns the XDG config directory for vcd.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "vcd")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "vcd")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path. Keys missing from the file
// keep their defaults. Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}
	if cfg.ScrollOff < 0 {
		cfg.ScrollOff = 0
	}
	cfg.Log.File = expandHome(cfg.Log.File)
	return cfg, nil
}

// ApplyEnv overrides cfg with VCD_* variables read through lookup
// (os.LookupEnv in production). Malformed values are reported and skipped.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs []string

	if v, ok := lookup("VCD_SCROLLOFF"); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 0 {
			errs = append(errs, fmt.Sprintf("VCD_SCROLLOFF=%q is not a non-negative integer", v))
		} else {
			c.ScrollOff = n
		}
	}
	if v, ok := lookup("VCD_LOG_FILE"); ok && v != "" {
		c.Log.File = expandHome(v)
	}
	if v, ok := lookup("VCD_LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup("VCD_DEBUG"); ok && v != "" && v != "0" {
		c.Debug = true
	}

	if len(errs) > 0 {
		return fmt.Errorf("environment: %s", strings.Join(errs, "; "))
	}
	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
