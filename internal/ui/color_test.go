// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
)

func TestInitColors(t *testing.T) {
	original := color.NoColor
	defer func() { color.NoColor = original }()

	color.NoColor = false
	InitColors(false)
	if color.NoColor {
		t.Error("InitColors(false) should not disable colors")
	}

	InitColors(true)
	if !color.NoColor {
		t.Error("InitColors(true) should disable colors")
	}
}

func TestWriters(t *testing.T) {
	// Disable colors for predictable output
	original := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = original }()

	tests := []struct {
		name  string
		write func(*bytes.Buffer)
		want  string
	}{
		{
			name:  "Failf",
			write: func(b *bytes.Buffer) { Failf(b, "FAIL: %d offenders", 2) },
			want:  "FAIL: 2 offenders\n",
		},
		{
			name:  "Warningf",
			write: func(b *bytes.Buffer) { Warningf(b, "no artifacts found under %s", "out") },
			want:  "⚠ no artifacts found under out\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.write(&buf)
			if buf.String() != tt.want {
				t.Errorf("got %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestTextHelpers(t *testing.T) {
	original := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = original }()

	if got := Header("Contract"); got != "Contract" {
		t.Errorf("Header() = %q", got)
	}
	if got := DimText("/out/Vault.sol/Vault.json"); got != "/out/Vault.sol/Vault.json" {
		t.Errorf("DimText() = %q", got)
	}
	if got := Over("  101.0%", true); got != "  101.0%" {
		t.Errorf("Over() = %q", got)
	}
}

func TestOver_Colored(t *testing.T) {
	original := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = original }()

	if got := Over("x", false); got != "x" {
		t.Errorf("Over(false) = %q, want unchanged", got)
	}
	if got := Over("x", true); got == "x" {
		t.Error("Over(true) should add escape codes when colors are enabled")
	}
}

func TestColorVariablesInitialized(t *testing.T) {
	for name, c := range map[string]*color.Color{"Red": Red, "Yellow": Yellow, "Bold": Bold, "Dim": Dim} {
		if c == nil {
			t.Errorf("%s color not initialized", name)
		}
	}
}
