// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads the optional sizegate.yaml file.
//
// Every field is optional. Values given on the command line take precedence
// over the file, and the file takes precedence over built-in defaults.
//
//	out_dir: out
//	preset: monad
//	include_tests: false
//	print_top: 20
//	exclude_suffixes: [".t.sol", ".s.sol"]
//	presets:
//	  megaeth:
//	    max_runtime_bytes: 524288
package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kraklabs/sizegate/internal/errors"
	"github.com/kraklabs/sizegate/internal/limits"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "sizegate.yaml"

// Config mirrors sizegate.yaml. Pointer fields distinguish "unset" from a
// zero value.
type Config struct {
	OutDir           string                  `yaml:"out_dir"`
	Preset           string                  `yaml:"preset"`
	IncludeTests     *bool                   `yaml:"include_tests"`
	PrintTop         *int                    `yaml:"print_top"`
	MaxRuntimeBytes  *int                    `yaml:"max_runtime_bytes"`
	MaxInitcodeBytes *int                    `yaml:"max_initcode_bytes"`
	ExcludeSuffixes  []string                `yaml:"exclude_suffixes"`
	Presets          map[string]PresetConfig `yaml:"presets"`

	// path is the file the config was read from, empty for the zero config.
	path string
}

// PresetConfig declares a custom preset.
type PresetConfig struct {
	MaxRuntimeBytes  int `yaml:"max_runtime_bytes"`
	MaxInitcodeBytes int `yaml:"max_initcode_bytes"`
}

// Load returns the configuration for a run.
//
// An explicit path must exist. Without one, DefaultFile in the working
// directory is used if present; otherwise an empty Config is returned.
func Load(path string) (*Config, error) {
	if path != "" {
		return LoadFile(path)
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		return LoadFile(DefaultFile)
	}
	return &Config{}, nil
}

// LoadFile reads and validates the YAML file at path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError(
			"Cannot read config file",
			path,
			"Check the --config path",
			err,
		)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.NewConfigError(
			fmt.Sprintf("Invalid config file %s", path),
			err.Error(),
			"Fix the YAML or remove the file to use built-in defaults",
			err,
		)
	}
	cfg.path = path
	return cfg, nil
}

// Parse decodes and validates YAML config data. Unknown keys are rejected.
// Empty input yields an empty Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field values that YAML typing cannot.
func (c *Config) Validate() error {
	for i, s := range c.ExcludeSuffixes {
		if s == "" {
			return fmt.Errorf("exclude_suffixes[%d] is empty", i)
		}
	}
	if c.MaxRuntimeBytes != nil && *c.MaxRuntimeBytes < 0 {
		return fmt.Errorf("max_runtime_bytes must not be negative")
	}
	if c.MaxInitcodeBytes != nil && *c.MaxInitcodeBytes < 0 {
		return fmt.Errorf("max_initcode_bytes must not be negative")
	}
	for name, p := range c.Presets {
		if limits.IsBuiltin(name) {
			return fmt.Errorf("presets.%s: built-in presets cannot be redefined", name)
		}
		if p.MaxRuntimeBytes <= 0 {
			return fmt.Errorf("presets.%s: max_runtime_bytes must be positive", name)
		}
		if p.MaxInitcodeBytes < 0 {
			return fmt.Errorf("presets.%s: max_initcode_bytes must not be negative", name)
		}
	}
	return nil
}

// Path returns the file the config was loaded from, or "".
func (c *Config) Path() string {
	return c.path
}

// ResolveOutDir returns OutDir, made relative to the config file's directory
// when it is not absolute. It returns "" when OutDir is unset.
func (c *Config) ResolveOutDir() string {
	if c.OutDir == "" {
		return ""
	}
	if filepath.IsAbs(c.OutDir) || c.path == "" {
		return c.OutDir
	}
	return filepath.Join(filepath.Dir(c.path), c.OutDir)
}

// CustomPresets converts the presets section for limits.NewRegistry.
func (c *Config) CustomPresets() map[string]limits.Preset {
	if len(c.Presets) == 0 {
		return nil
	}
	out := make(map[string]limits.Preset, len(c.Presets))
	for name, p := range c.Presets {
		out[name] = limits.Preset{MaxRuntimeBytes: p.MaxRuntimeBytes, MaxInitcodeBytes: p.MaxInitcodeBytes}
	}
	return out
}
