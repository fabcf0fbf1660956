// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/sizegate/internal/artifact"
	"github.com/kraklabs/sizegate/internal/config"
	"github.com/kraklabs/sizegate/internal/errors"
	"github.com/kraklabs/sizegate/internal/limits"
	"github.com/kraklabs/sizegate/internal/metrics"
	"github.com/kraklabs/sizegate/internal/output"
	"github.com/kraklabs/sizegate/internal/report"
	"github.com/kraklabs/sizegate/internal/ui"
)

// Options is the fully merged configuration of one run.
type Options struct {
	Root            string
	Preset          string
	Overrides       limits.Overrides
	CustomPresets   map[string]limits.Preset
	IncludeTests    bool
	ExcludeSuffixes []string
	PrintTop        int
	JSON            bool
	MetricsFile     string
	Progress        ui.ProgressConfig
}

// run parses args, merges the config file and executes the check. It
// returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	f, err := parseFlags(args, stderr)
	if err != nil {
		if stderrors.Is(err, flag.ErrHelp) {
			return errors.ExitSuccess
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return errors.ExitUsage
	}

	if f.version {
		fmt.Fprintf(stdout, "sizegate version %s\n", version)
		fmt.Fprintf(stdout, "commit: %s\n", commit)
		fmt.Fprintf(stdout, "built: %s\n", date)
		return errors.ExitSuccess
	}

	ui.InitColors(f.noColor)

	logLevel := slog.LevelInfo
	if f.debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return errors.Print(stderr, err, f.json)
	}
	if cfg.Path() != "" {
		logger.Debug("config.loaded", "path", cfg.Path())
	}

	opts, err := mergeOptions(f, cfg)
	if err != nil {
		return errors.Print(stderr, err, f.json)
	}
	opts.Progress = ui.NewProgressConfig(f.json, f.noColor)

	return Run(opts, stdout, stderr, logger)
}

// mergeOptions applies flag > config file > default precedence.
func mergeOptions(f *cliFlags, cfg *config.Config) (Options, error) {
	opts := Options{
		Root:            f.outDir,
		Preset:          f.preset,
		CustomPresets:   cfg.CustomPresets(),
		IncludeTests:    f.includeTests,
		ExcludeSuffixes: cfg.ExcludeSuffixes,
		PrintTop:        f.printTop,
		JSON:            f.json,
		MetricsFile:     f.metricsFile,
	}

	if !f.changed("out-dir") {
		opts.Root = cfg.ResolveOutDir()
		if opts.Root == "" {
			opts.Root = defaultOutDir()
		}
	}
	if !f.changed("preset") {
		opts.Preset = cfg.Preset
		if opts.Preset == "" {
			opts.Preset = limits.DefaultPreset
		}
	}
	if !f.changed("include-tests") && cfg.IncludeTests != nil {
		opts.IncludeTests = *cfg.IncludeTests
	}
	if !f.changed("print-top") && cfg.PrintTop != nil {
		opts.PrintTop = *cfg.PrintTop
	}

	opts.Overrides.MaxRuntimeBytes = cfg.MaxRuntimeBytes
	if f.changed("max-runtime-bytes") {
		if f.maxRuntime < 0 {
			return Options{}, errors.NewInputError(
				"Invalid --max-runtime-bytes",
				fmt.Sprintf("%d is negative", f.maxRuntime),
				"Pass a size in bytes",
			)
		}
		v := f.maxRuntime
		opts.Overrides.MaxRuntimeBytes = &v
	}
	opts.Overrides.MaxInitcodeBytes = cfg.MaxInitcodeBytes
	if f.changed("max-initcode-bytes") {
		if f.maxInitcode < 0 {
			return Options{}, errors.NewInputError(
				"Invalid --max-initcode-bytes",
				fmt.Sprintf("%d is negative", f.maxInitcode),
				"Pass a size in bytes",
			)
		}
		v := f.maxInitcode
		opts.Overrides.MaxInitcodeBytes = &v
	}

	return opts, nil
}

// defaultOutDir returns the out/ directory next to the directory holding
// the binary, e.g. back/out for back/bin/sizegate.
func defaultOutDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "out"
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(filepath.Dir(exe)), "out")
}

// Run executes one check and returns the exit code.
//
// A missing artifact root returns ExitMissingRoot before anything else is
// printed. Fatal diagnostics (unknown preset, corrupt artifact) are printed
// as a UserError and return its code. Size violations are reported in full
// and return ExitViolations.
func Run(opts Options, stdout, stderr io.Writer, logger *slog.Logger) int {
	if logger == nil {
		logger = slog.Default()
	}

	if info, err := os.Stat(opts.Root); err != nil || !info.IsDir() {
		if opts.JSON {
			return errors.Print(stderr, errors.NewNotFoundError(
				fmt.Sprintf("out dir not found: %s", opts.Root),
				"",
				"Run forge build first or pass --out-dir",
			), true)
		}
		ui.Failf(stderr, "out dir not found: %s", opts.Root)
		return errors.ExitMissingRoot
	}

	registry, err := limits.NewRegistry(opts.CustomPresets)
	if err != nil {
		return errors.Print(stderr, err, opts.JSON)
	}
	lim, err := registry.Resolve(opts.Preset, opts.Overrides)
	if err != nil {
		return errors.Print(stderr, err, opts.JSON)
	}
	logger.Debug("limits.resolved",
		"preset", lim.Preset,
		"max_runtime", lim.MaxRuntimeBytes,
		"max_initcode", lim.MaxInitcodeBytes,
	)

	spinner := ui.NewSpinner(opts.Progress, "Scanning artifacts")
	rows, err := artifact.Load(opts.Root, artifact.Options{
		IncludeTests:    opts.IncludeTests,
		ExcludeSuffixes: opts.ExcludeSuffixes,
		Logger:          logger,
		OnArtifact: func(string) {
			if spinner != nil {
				_ = spinner.Add(1)
			}
		},
	})
	if spinner != nil {
		_ = spinner.Finish()
	}
	if err != nil {
		return errors.Print(stderr, err, opts.JSON)
	}

	rep := report.New(rows, lim)
	if opts.JSON {
		if err := output.JSONTo(stdout, rep.JSON(opts.PrintTop)); err != nil {
			return errors.Print(stderr, errors.NewInternalError("Cannot write JSON report", "", "", err), true)
		}
	} else {
		rep.WriteSummary(stdout)
		rep.WriteTable(stdout, opts.PrintTop)
	}
	if len(rep.Rows) == 0 {
		ui.Warningf(stderr, "no artifacts with bytecode found under %s", opts.Root)
	}
	rep.WriteViolations(stderr)

	if opts.MetricsFile != "" {
		collector := metrics.New()
		collector.Observe(rep)
		if err := collector.WriteFile(opts.MetricsFile); err != nil {
			return errors.Print(stderr, errors.NewInternalError(
				"Cannot write metrics file",
				opts.MetricsFile,
				"Check that the directory exists and is writable",
				err,
			), opts.JSON)
		}
		logger.Debug("metrics.write", "path", opts.MetricsFile)
	}

	if rep.Failed() {
		return errors.ExitViolations
	}
	return errors.ExitSuccess
}
