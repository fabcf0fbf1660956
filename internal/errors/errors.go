// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package errors provides structured fatal diagnostics for the sizegate CLI.
//
// A UserError carries what went wrong, why it happened and how to fix it,
// together with the process exit code the CLI should terminate with.
//
// Size violations are deliberately not represented here. Contracts that exceed
// a limit are collected by the report package and signalled with
// ExitViolations; a UserError always aborts the run.
//
// # Usage Example
//
//	err := errors.NewArtifactError(
//	    "Cannot parse build artifact",
//	    "out/Vault.sol/Vault.json is not valid JSON",
//	    "Re-run forge build to regenerate the artifact",
//	    parseErr,
//	)
//	os.Exit(errors.Print(os.Stderr, err, false))
//
// # Exit Codes
//
//   - ExitSuccess (0): every contract is within its limits
//   - ExitViolations (1): one or more contracts exceed a limit
//   - ExitFatal (1): configuration, artifact or internal error aborted the run
//   - ExitUsage (2): invalid command-line input
//   - ExitMissingRoot (2): the artifact root directory does not exist
package errors

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Exit codes for the different run outcomes.
const (
	// ExitSuccess indicates all contracts are within limits.
	ExitSuccess = 0

	// ExitViolations indicates at least one contract exceeded a limit.
	ExitViolations = 1

	// ExitFatal indicates a hard error (bad config, corrupt artifact).
	ExitFatal = 1

	// ExitUsage indicates invalid flags or flag values.
	ExitUsage = 2

	// ExitMissingRoot indicates the artifact root could not be found.
	// It shares the usage code so that "nothing to check" is distinguishable
	// from "violations found".
	ExitMissingRoot = 2
)

// UserError represents an error with structured context for end users.
//
// It provides three levels of information:
//   - Message: What went wrong (user-facing error description)
//   - Cause: Why it happened (diagnostic information)
//   - Fix: How to fix it (actionable suggestion)
type UserError struct {
	// Message describes what went wrong in user-friendly language.
	Message string

	// Cause explains why the error occurred.
	Cause string

	// Fix provides an actionable suggestion on how to resolve the error.
	Fix string

	// ExitCode is the exit code the CLI terminates with.
	ExitCode int

	// Err is the underlying error (optional).
	Err error
}

// Error implements the error interface.
func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As.
func (e *UserError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a configuration error with exit code ExitFatal.
//
// Use this for unknown presets, unreadable or invalid config files.
func NewConfigError(msg, cause, fix string, err error) *UserError {
	return &UserError{
		Message:  msg,
		Cause:    cause,
		Fix:      fix,
		ExitCode: ExitFatal,
		Err:      err,
	}
}

// NewArtifactError creates an artifact error with exit code ExitFatal.
//
// Use this when a build artifact cannot be read or parsed. Corrupt artifacts
// must abort the run instead of being skipped.
func NewArtifactError(msg, cause, fix string, err error) *UserError {
	return &UserError{
		Message:  msg,
		Cause:    cause,
		Fix:      fix,
		ExitCode: ExitFatal,
		Err:      err,
	}
}

// NewInputError creates an input validation error with exit code ExitUsage.
// Input errors typically do not wrap an underlying error.
func NewInputError(msg, cause, fix string) *UserError {
	return &UserError{
		Message:  msg,
		Cause:    cause,
		Fix:      fix,
		ExitCode: ExitUsage,
	}
}

// NewNotFoundError creates a not found error with exit code ExitMissingRoot.
func NewNotFoundError(msg, cause, fix string) *UserError {
	return &UserError{
		Message:  msg,
		Cause:    cause,
		Fix:      fix,
		ExitCode: ExitMissingRoot,
	}
}

// NewInternalError creates an internal error with exit code ExitFatal.
//
// Use this for unexpected failures that are not caused by user input, such
// as failing to write the metrics file.
func NewInternalError(msg, cause, fix string, err error) *UserError {
	return &UserError{
		Message:  msg,
		Cause:    cause,
		Fix:      fix,
		ExitCode: ExitFatal,
		Err:      err,
	}
}

// Color definitions for error formatting.
var (
	colorError = color.New(color.FgRed, color.Bold)
	colorCause = color.New(color.FgYellow)
	colorFix   = color.New(color.FgGreen)
)

// Format returns a formatted error message for terminal display.
//
// Example output:
//
//	Error: Cannot parse build artifact
//	Cause: out/Vault.sol/Vault.json is not valid JSON
//	Fix:   Re-run forge build to regenerate the artifact
//
// Empty Cause or Fix fields are omitted. The global color.NoColor state is
// restored before returning.
func (e *UserError) Format(noColor bool) string {
	originalNoColor := color.NoColor
	defer func() { color.NoColor = originalNoColor }()

	if noColor || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	var out strings.Builder
	out.WriteString(colorError.Sprint("Error: "))
	out.WriteString(e.Message)
	out.WriteString("\n")

	if e.Cause != "" {
		out.WriteString(colorCause.Sprint("Cause: "))
		out.WriteString(e.Cause)
		out.WriteString("\n")
	}

	if e.Fix != "" {
		out.WriteString(colorFix.Sprint("Fix:   "))
		out.WriteString(e.Fix)
		out.WriteString("\n")
	}

	return out.String()
}

// ErrorJSON represents error information in JSON format.
type ErrorJSON struct {
	Error    string `json:"error"`
	Cause    string `json:"cause,omitempty"`
	Fix      string `json:"fix,omitempty"`
	ExitCode int    `json:"exit_code"`
}

// ToJSON converts the UserError to a JSON-serializable structure.
func (e *UserError) ToJSON() ErrorJSON {
	return ErrorJSON{
		Error:    e.Message,
		Cause:    e.Cause,
		Fix:      e.Fix,
		ExitCode: e.ExitCode,
	}
}

// Print writes err to w and returns the exit code the caller should use.
//
// A UserError is rendered with Format, or as JSON when jsonOutput is set.
// Any other error is printed as a plain line and mapped to ExitFatal.
// A nil error prints nothing and returns ExitSuccess.
func Print(w io.Writer, err error, jsonOutput bool) int {
	if err == nil {
		return ExitSuccess
	}

	if ue, ok := err.(*UserError); ok {
		if jsonOutput {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			_ = enc.Encode(ue.ToJSON())
		} else {
			fmt.Fprint(w, ue.Format(false))
		}
		return ue.ExitCode
	}

	fmt.Fprintf(w, "Error: %v\n", err)
	return ExitFatal
}
