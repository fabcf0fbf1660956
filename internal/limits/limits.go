// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package limits resolves the bytecode size ceilings a run is checked
// against.
//
// Limits come from a named preset and may be overridden individually. The
// initcode ceiling follows EIP-3860 and is twice the runtime ceiling unless
// it is set explicitly.
package limits

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/params"

	"github.com/kraklabs/sizegate/internal/errors"
)

// Built-in preset names.
const (
	PresetEthereum = "ethereum"
	PresetMonad    = "monad"

	// DefaultPreset is used when no preset is configured.
	DefaultPreset = PresetMonad
)

// MonadMaxCodeSize is Monad's runtime code ceiling (128 KiB).
const MonadMaxCodeSize = 131_072 // 0x20000

// initcodeFactor is the fixed initcode/runtime ratio from EIP-3860.
const initcodeFactor = 2

// Limits is a resolved pair of ceilings, in bytes.
type Limits struct {
	Preset           string `json:"preset"`
	MaxRuntimeBytes  int    `json:"max_runtime_bytes"`
	MaxInitcodeBytes int    `json:"max_initcode_bytes"`
}

// Preset is a named bundle of default limits.
type Preset struct {
	MaxRuntimeBytes  int
	MaxInitcodeBytes int
}

var builtins = map[string]Preset{
	PresetEthereum: {MaxRuntimeBytes: params.MaxCodeSize, MaxInitcodeBytes: params.MaxInitCodeSize},
	PresetMonad:    {MaxRuntimeBytes: MonadMaxCodeSize, MaxInitcodeBytes: initcodeFactor * MonadMaxCodeSize},
}

// IsBuiltin reports whether name is one of the built-in presets.
func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

// Registry maps preset names to limits. The zero value is not usable; call
// NewRegistry.
type Registry struct {
	presets map[string]Preset
}

// NewRegistry returns a registry holding the built-in presets plus custom.
//
// A custom preset with MaxInitcodeBytes <= 0 gets twice its runtime limit.
// Custom presets may not shadow a built-in.
func NewRegistry(custom map[string]Preset) (*Registry, error) {
	presets := make(map[string]Preset, len(builtins)+len(custom))
	for name, p := range builtins {
		presets[name] = p
	}
	for name, p := range custom {
		if IsBuiltin(name) {
			return nil, errors.NewConfigError(
				fmt.Sprintf("Preset %q cannot be redefined", name),
				"Built-in presets are fixed",
				"Choose a different name for the custom preset",
				nil,
			)
		}
		if p.MaxRuntimeBytes <= 0 {
			return nil, errors.NewConfigError(
				fmt.Sprintf("Preset %q has no runtime limit", name),
				"max_runtime_bytes must be a positive number of bytes",
				"Set max_runtime_bytes for the preset in the config file",
				nil,
			)
		}
		if p.MaxInitcodeBytes <= 0 {
			p.MaxInitcodeBytes = initcodeFactor * p.MaxRuntimeBytes
		}
		presets[name] = p
	}
	return &Registry{presets: presets}, nil
}

// Names returns the known preset names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.presets))
	for name := range r.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Overrides are explicit per-run limits. A nil field means "not given".
type Overrides struct {
	MaxRuntimeBytes  *int
	MaxInitcodeBytes *int
}

// Resolve returns the limits for preset with overrides applied.
//
// A runtime override replaces the preset's runtime limit. An initcode
// override is used verbatim; without one the initcode limit is twice the
// runtime override, or the preset's own initcode limit when the runtime was
// not overridden either.
func (r *Registry) Resolve(preset string, o Overrides) (Limits, error) {
	p, ok := r.presets[preset]
	if !ok {
		return Limits{}, errors.NewConfigError(
			fmt.Sprintf("unknown preset: %s", preset),
			fmt.Sprintf("Known presets: %s", strings.Join(r.Names(), ", ")),
			"Pass --preset with a known name or declare it under presets: in the config file",
			nil,
		)
	}

	l := Limits{
		Preset:           preset,
		MaxRuntimeBytes:  p.MaxRuntimeBytes,
		MaxInitcodeBytes: p.MaxInitcodeBytes,
	}
	if o.MaxRuntimeBytes != nil {
		l.MaxRuntimeBytes = *o.MaxRuntimeBytes
		l.MaxInitcodeBytes = initcodeFactor * l.MaxRuntimeBytes
	}
	if o.MaxInitcodeBytes != nil {
		l.MaxInitcodeBytes = *o.MaxInitcodeBytes
	}
	return l, nil
}

// Resolve resolves against the built-in presets only.
func Resolve(preset string, o Overrides) (Limits, error) {
	r, _ := NewRegistry(nil)
	return r.Resolve(preset, o)
}
