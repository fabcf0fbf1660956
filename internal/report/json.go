// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package report

import "github.com/kraklabs/sizegate/internal/artifact"

// JSONReport is the --json rendering of a Report.
type JSONReport struct {
	Preset           string             `json:"preset"`
	MaxRuntimeBytes  int                `json:"max_runtime_bytes"`
	MaxInitcodeBytes int                `json:"max_initcode_bytes"`
	Checked          int                `json:"checked"`
	Passed           bool               `json:"passed"`
	Contracts        []artifact.SizeRow `json:"contracts"`
	Offenders        []Offender         `json:"offenders"`
}

// JSON returns the machine-readable view of r, listing the n largest
// contracts and every offender.
func (r *Report) JSON(n int) JSONReport {
	contracts := r.Top(n)
	if contracts == nil {
		contracts = []artifact.SizeRow{}
	}
	offenders := r.Offenders
	if offenders == nil {
		offenders = []Offender{}
	}
	return JSONReport{
		Preset:           r.Limits.Preset,
		MaxRuntimeBytes:  r.Limits.MaxRuntimeBytes,
		MaxInitcodeBytes: r.Limits.MaxInitcodeBytes,
		Checked:          len(r.Rows),
		Passed:           !r.Failed(),
		Contracts:        contracts,
		Offenders:        offenders,
	}
}
