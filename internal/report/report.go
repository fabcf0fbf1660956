// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package report ranks measured contracts, finds the ones over their limits
// and renders the result.
//
// Output is split the way CI logs expect it: the summary line and table go
// to stdout, the failure banner and per-offender lines go to stderr.
//
//	checked 3 artifacts (preset=ethereum, max_runtime=24576B, max_initcode=49152B)
//	Contract  Runtime(B)  Runtime%  Initcode(B)  Initcode%
//	-------------------------------------------------------
//	Vault          24577    100.0%        25001      50.9%
//
//	FAIL: some contracts exceed configured limits:
//	- Vault: runtime 24577B > 24576B (out/Vault.sol/Vault.json)
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/kraklabs/sizegate/internal/artifact"
	"github.com/kraklabs/sizegate/internal/limits"
	"github.com/kraklabs/sizegate/internal/ui"
)

// DefaultTop is the default number of table rows.
const DefaultTop = 20

// Breach kinds.
const (
	KindRuntime  = "runtime"
	KindInitcode = "initcode"
)

// Breach is one limit a contract exceeded.
type Breach struct {
	Kind  string `json:"kind"`
	Bytes int    `json:"bytes"`
	Limit int    `json:"limit"`
}

func (b Breach) String() string {
	return fmt.Sprintf("%s %dB > %dB", b.Kind, b.Bytes, b.Limit)
}

// Offender is a contract whose size strictly exceeds at least one limit.
type Offender struct {
	artifact.SizeRow
	Breaches []Breach `json:"breaches"`
}

// Sort orders rows by runtime size, then initcode size, largest first.
func Sort(rows []artifact.SizeRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].RuntimeBytes != rows[j].RuntimeBytes {
			return rows[i].RuntimeBytes > rows[j].RuntimeBytes
		}
		return rows[i].InitcodeBytes > rows[j].InitcodeBytes
	})
}

// FindOffenders returns every row over a limit, preserving row order.
// A size equal to its limit is allowed.
func FindOffenders(rows []artifact.SizeRow, l limits.Limits) []Offender {
	var out []Offender
	for _, r := range rows {
		var breaches []Breach
		if r.RuntimeBytes > l.MaxRuntimeBytes {
			breaches = append(breaches, Breach{Kind: KindRuntime, Bytes: r.RuntimeBytes, Limit: l.MaxRuntimeBytes})
		}
		if r.InitcodeBytes > l.MaxInitcodeBytes {
			breaches = append(breaches, Breach{Kind: KindInitcode, Bytes: r.InitcodeBytes, Limit: l.MaxInitcodeBytes})
		}
		if len(breaches) > 0 {
			out = append(out, Offender{SizeRow: r, Breaches: breaches})
		}
	}
	return out
}

// Report is the outcome of one run.
type Report struct {
	Limits    limits.Limits
	Rows      []artifact.SizeRow
	Offenders []Offender
}

// New sorts a copy of rows and collects the offenders.
func New(rows []artifact.SizeRow, l limits.Limits) *Report {
	sorted := make([]artifact.SizeRow, len(rows))
	copy(sorted, rows)
	Sort(sorted)
	return &Report{
		Limits:    l,
		Rows:      sorted,
		Offenders: FindOffenders(sorted, l),
	}
}

// Failed reports whether any contract is over a limit.
func (r *Report) Failed() bool {
	return len(r.Offenders) > 0
}

// Top returns the n largest rows. n <= 0 returns nil.
func (r *Report) Top(n int) []artifact.SizeRow {
	if n <= 0 {
		return nil
	}
	if n > len(r.Rows) {
		n = len(r.Rows)
	}
	return r.Rows[:n]
}

// WriteSummary writes the one-line run summary.
func (r *Report) WriteSummary(w io.Writer) {
	fmt.Fprintf(w, "checked %d artifacts (preset=%s, max_runtime=%dB, max_initcode=%dB)\n",
		len(r.Rows), r.Limits.Preset, r.Limits.MaxRuntimeBytes, r.Limits.MaxInitcodeBytes)
}

// WriteTable writes the n largest contracts as an aligned table. Nothing is
// written when there are no rows to show.
func (r *Report) WriteTable(w io.Writer, n int) {
	shown := r.Top(n)
	if len(shown) == 0 {
		return
	}

	nameW := utf8.RuneCountInString("Contract")
	for _, row := range shown {
		if l := utf8.RuneCountInString(row.Contract); l > nameW {
			nameW = l
		}
	}

	header := fmt.Sprintf("%-*s  %10s  %8s  %11s  %9s",
		nameW, "Contract", "Runtime(B)", "Runtime%", "Initcode(B)", "Initcode%")
	fmt.Fprintln(w, ui.Header(header))
	fmt.Fprintln(w, strings.Repeat("-", utf8.RuneCountInString(header)))

	l := r.Limits
	for _, row := range shown {
		runtimePct := ui.Over(fmt.Sprintf("%8s", Pct(row.RuntimeBytes, l.MaxRuntimeBytes)), row.RuntimeBytes > l.MaxRuntimeBytes)
		initcodePct := ui.Over(fmt.Sprintf("%9s", Pct(row.InitcodeBytes, l.MaxInitcodeBytes)), row.InitcodeBytes > l.MaxInitcodeBytes)
		fmt.Fprintf(w, "%-*s  %10d  %s  %11d  %s\n",
			nameW, row.Contract, row.RuntimeBytes, runtimePct, row.InitcodeBytes, initcodePct)
	}
}

// WriteViolations writes the failure banner and one line per offender.
// Nothing is written when every contract is within its limits.
func (r *Report) WriteViolations(w io.Writer) {
	if !r.Failed() {
		return
	}

	fmt.Fprintln(w)
	ui.Failf(w, "FAIL: some contracts exceed configured limits:")
	for _, o := range r.Offenders {
		which := make([]string, len(o.Breaches))
		for i, b := range o.Breaches {
			which[i] = b.String()
		}
		fmt.Fprintf(w, "- %s: %s (%s)\n", o.Contract, strings.Join(which, ", "), ui.DimText(o.ArtifactPath))
	}
}

// Pct formats value as a percentage of limit, right-aligned to six digits.
// It returns "" when limit is not positive.
func Pct(value, limit int) string {
	if limit <= 0 {
		return ""
	}
	return fmt.Sprintf("%6.1f%%", float64(value)/float64(limit)*100)
}
