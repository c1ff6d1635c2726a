// Package config captures CLI options for the bunker binary, sourced
// from an optional YAML file and overridden by flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config captures CLI options sourced from config files or flags.
type Config struct {
	Verbose   bool     `yaml:"verbose"`
	Debug     bool     `yaml:"debug"`
	NoColor   bool     `yaml:"no_color"`
	NameWidth int      `yaml:"name_width"`
	Disable   []string `yaml:"disable"`
}

// Default returns the baseline configuration used when no flags or
// config file specify values.
func Default() Config {
	return Config{}
}

// Load reads .bunker.yml from root when present. Missing files are
// ignored.
func Load(root string) (Config, error) {
	cfg := Default()
	path := filepath.Join(root, ".bunker.yml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}

	return merge(cfg, fileCfg), nil
}

func merge(base, override Config) Config {
	out := base

	if override.Verbose {
		out.Verbose = true
	}
	if override.Debug {
		out.Debug = true
	}
	if override.NoColor {
		out.NoColor = true
	}
	if override.NameWidth > 0 {
		out.NameWidth = override.NameWidth
	}
	if len(override.Disable) > 0 {
		out.Disable = append([]string{}, override.Disable...)
	}

	return out
}

// ApplyFlags mutates cfg by applying values from CLI flags when they
// were set explicitly.
func ApplyFlags(cfg *Config, flags FlagValues) {
	if flags.Verbose.Set {
		cfg.Verbose = flags.Verbose.Value
	}
	if flags.Debug.Set {
		cfg.Debug = flags.Debug.Value
	}
	if flags.NoColor.Set {
		cfg.NoColor = flags.NoColor.Value
	}
	if flags.NameWidth.Set {
		cfg.NameWidth = flags.NameWidth.Value
	}
	if len(flags.Disable.Values) > 0 {
		cfg.Disable = append([]string{}, flags.Disable.Values...)
	}
}

// FlagValues captures CLI flag state with knowledge of whether each
// flag was set explicitly.
type FlagValues struct {
	Verbose   BoolFlag
	Debug     BoolFlag
	NoColor   BoolFlag
	NameWidth IntFlag
	Disable   SliceFlag
}

// BoolFlag represents a bool flag and whether it was set.
type BoolFlag struct {
	Value bool
	Set   bool
}

// IntFlag represents an int flag and whether it was set.
type IntFlag struct {
	Value int
	Set   bool
}

// SliceFlag represents a slice flag and whether it captured values via
// CLI.
type SliceFlag struct {
	Values []string
}
