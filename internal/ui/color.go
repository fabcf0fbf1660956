// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides terminal output helpers for the sizegate CLI.
//
// Color output respects the --no-color flag and the NO_COLOR environment
// variable. Every helper takes the destination writer so the report can be
// split between stdout (summary, table) and stderr (failures).
//
// Color usage guidelines:
//   - Red: limit violations, failures
//   - Yellow: warnings
//   - Bold: table headers
//   - Dim: artifact paths
package ui

import (
	"io"

	"github.com/fatih/color"
)

// Pre-configured color instances for consistent CLI output.
var (
	// Red is used for failures and over-limit values.
	Red = color.New(color.FgRed)

	// Yellow is used for warnings.
	Yellow = color.New(color.FgYellow)

	// Bold is used for headers.
	Bold = color.New(color.Bold)

	// Dim is used for less important details like paths.
	Dim = color.New(color.Faint)
)

// InitColors configures global color output based on the noColor flag.
//
// This should be called right after flag parsing. fatih/color already honours
// NO_COLOR and disables itself when stdout is not a TTY.
func InitColors(noColor bool) {
	if noColor {
		color.NoColor = true
	}
}

// Failf writes a red formatted line to w.
func Failf(w io.Writer, format string, args ...any) {
	_, _ = Red.Fprintf(w, format+"\n", args...)
}

// Warningf writes a yellow formatted line with a warning symbol prefix to w.
//
// Example output: "⚠ no artifacts found under out"
func Warningf(w io.Writer, format string, args ...any) {
	_, _ = Yellow.Fprintf(w, "⚠ "+format+"\n", args...)
}

// Header returns text in bold for table headers.
func Header(text string) string {
	return Bold.Sprint(text)
}

// DimText returns a dim-formatted string for less important text.
//
// Example: fmt.Fprintf(w, "- Vault (%s)\n", ui.DimText(path))
func DimText(text string) string {
	return Dim.Sprint(text)
}

// Over returns text in red when over is true, unchanged otherwise. Callers
// pad text before calling so escape codes do not affect column widths.
func Over(text string, over bool) string {
	if !over {
		return text
	}
	return Red.Sprint(text)
}
