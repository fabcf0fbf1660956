// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package main implements sizegate, a build gate that checks compiled
// contract artifacts against bytecode size limits.
//
// Usage:
//
//	sizegate                              Check ../out against the monad preset
//	sizegate --preset ethereum            Enforce EIP-170 / EIP-3860 limits
//	sizegate --out-dir out --print-top 5  Check a specific directory
//	sizegate --json                       Machine-readable report
//
// Exit codes: 0 all contracts within limits, 1 one or more offenders (or a
// fatal error), 2 artifact directory missing or invalid flags.
package main

import (
	"os"
)

// Version information (set via ldflags during build)
var (
	version = "dev"     // Version string
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
