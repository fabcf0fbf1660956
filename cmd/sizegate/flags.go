// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/sizegate/internal/report"
)

// cliFlags holds the parsed command line. Use changed to tell an explicit
// flag apart from its default.
type cliFlags struct {
	outDir       string
	preset       string
	maxRuntime   int
	maxInitcode  int
	includeTests bool
	printTop     int
	configPath   string
	json         bool
	metricsFile  string
	noColor      bool
	debug        bool
	version      bool

	fs *flag.FlagSet
}

// changed reports whether name was given on the command line.
func (f *cliFlags) changed(name string) bool {
	return f.fs.Changed(name)
}

// parseFlags parses args. It returns flag.ErrHelp when --help was requested.
func parseFlags(args []string, stderr io.Writer) (*cliFlags, error) {
	f := &cliFlags{}
	fs := flag.NewFlagSet("sizegate", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&f.outDir, "out-dir", "", "Foundry out/ directory (default: <install dir>/../out)")
	fs.StringVar(&f.preset, "preset", "", "Size limit preset: ethereum, monad or a preset from the config file (default: monad)")
	fs.IntVar(&f.maxRuntime, "max-runtime-bytes", 0, "Override runtime size limit (bytes). If set, overrides preset.")
	fs.IntVar(&f.maxInitcode, "max-initcode-bytes", 0, "Override initcode size limit (bytes). Default: 2 * max-runtime-bytes.")
	fs.BoolVar(&f.includeTests, "include-tests", false, "Include artifacts from *.t.sol and *.s.sol buckets.")
	fs.IntVar(&f.printTop, "print-top", report.DefaultTop, "How many largest contracts to print (0 to hide the table).")
	fs.StringVar(&f.configPath, "config", "", "Path to sizegate.yaml (default: ./sizegate.yaml if present)")
	fs.BoolVar(&f.json, "json", false, "Write the report as JSON to stdout")
	fs.StringVar(&f.metricsFile, "metrics-file", "", "Write Prometheus text metrics to this file")
	fs.BoolVar(&f.noColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&f.version, "version", false, "Show version and exit")

	fs.Usage = func() {
		fmt.Fprintf(stderr, `Usage: sizegate [options]

Checks compiled contract artifacts against bytecode size limits.
Foundry's --sizes check enforces Ethereum's 24,576 byte runtime limit; this
gate applies a chain-aware limit instead and fails the build on violations.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(stderr, `
Examples:
  sizegate
  sizegate --preset ethereum
  sizegate --max-runtime-bytes 65536 --include-tests
  sizegate --json --metrics-file sizes.prom

Exit codes:
  0  all contracts within limits
  1  one or more contracts exceed a limit, or a fatal error occurred
  2  artifact directory not found, or invalid flags
`)
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	f.fs = fs
	return f, nil
}
