// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package artifact discovers compiler build artifacts and measures the
// bytecode they contain.
//
// The expected layout is Foundry's out/ directory, where every source file
// gets a bucket directory holding one JSON artifact per contract:
//
//	out/
//	  Vault.sol/
//	    Vault.json
//	    IVault.json
//	  Vault.t.sol/
//	    VaultTest.json
//
// Files directly under the root are not per-contract artifacts and are
// ignored. Buckets ending in a test or script suffix are skipped unless the
// caller asks for them.
package artifact

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"github.com/kraklabs/sizegate/internal/errors"
)

// Ext is the file extension of a build artifact.
const Ext = ".json"

// DefaultExcludeSuffixes are the bucket suffixes of Foundry test and script
// sources.
var DefaultExcludeSuffixes = []string{".t.sol", ".s.sol"}

// SizeRow is one measured contract.
type SizeRow struct {
	Contract      string `json:"contract"`
	Source        string `json:"source"`
	RuntimeBytes  int    `json:"runtime_bytes"`
	InitcodeBytes int    `json:"initcode_bytes"`
	ArtifactPath  string `json:"artifact_path"`
}

// Options controls artifact discovery.
type Options struct {
	// IncludeTests disables the bucket suffix filter.
	IncludeTests bool

	// ExcludeSuffixes overrides DefaultExcludeSuffixes when non-nil.
	ExcludeSuffixes []string

	// Logger receives debug events for skipped artifacts. Defaults to slog.Default().
	Logger *slog.Logger

	// OnArtifact, if set, is called after each artifact file is parsed.
	OnArtifact func(path string)
}

// Load walks root and returns a SizeRow for every artifact with code, in
// discovery order.
//
// A symlinked root is followed. Artifact paths are reported under root as
// given, not under the link target.
//
// Any artifact that cannot be read or is not valid JSON aborts the load with
// a *errors.UserError naming the file.
func Load(root string, opts Options) ([]SizeRow, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	suffixes := opts.ExcludeSuffixes
	if suffixes == nil {
		suffixes = DefaultExcludeSuffixes
	}
	root = filepath.Clean(root)
	walkRoot := root
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		walkRoot = resolved
	}

	var rows []SizeRow
	err := filepath.WalkDir(walkRoot, func(walked string, d fs.DirEntry, walkErr error) error {
		path := walked
		if walkRoot != root {
			if rel, err := filepath.Rel(walkRoot, walked); err == nil {
				path = filepath.Join(root, rel)
			}
		}
		if walkErr != nil {
			return errors.NewArtifactError(
				"Cannot scan artifact directory",
				fmt.Sprintf("walking %s failed", path),
				"Check the directory permissions",
				walkErr,
			)
		}
		if d.IsDir() || filepath.Ext(path) != Ext {
			return nil
		}

		dir := filepath.Dir(path)
		if dir == root {
			logger.Debug("artifact.skip", "path", path, "reason", "root_level")
			return nil
		}

		bucket := filepath.Base(dir)
		if !opts.IncludeTests && hasAnySuffix(bucket, suffixes) {
			logger.Debug("artifact.skip", "path", path, "reason", "excluded_bucket", "bucket", bucket)
			return nil
		}

		runtime, initcode, err := measure(path)
		if err != nil {
			return err
		}
		if opts.OnArtifact != nil {
			opts.OnArtifact(path)
		}

		if runtime == 0 && initcode == 0 {
			logger.Debug("artifact.skip", "path", path, "reason", "no_bytecode")
			return nil
		}

		rows = append(rows, SizeRow{
			Contract:      strings.TrimSuffix(d.Name(), Ext),
			Source:        bucket,
			RuntimeBytes:  runtime,
			InitcodeBytes: initcode,
			ArtifactPath:  path,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("artifact.loaded", "root", root, "rows", len(rows))
	return rows, nil
}

// measure reads one artifact and returns its runtime and initcode sizes.
func measure(path string) (runtime, initcode int, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, errors.NewArtifactError(
			"Cannot read build artifact",
			path,
			"Check the file permissions or rebuild the contracts",
			err,
		)
	}
	if !utf8.Valid(data) || !gjson.ValidBytes(data) {
		return 0, 0, errors.NewArtifactError(
			fmt.Sprintf("failed to parse JSON artifact: %s", path),
			"The file is not valid UTF-8 JSON",
			"Delete the out/ directory and rebuild the contracts",
			nil,
		)
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return 0, 0, nil
	}
	return HexLen(bytecodeField(doc, "deployedBytecode")), HexLen(bytecodeField(doc, "bytecode")), nil
}

// bytecodeField returns the hex payload stored under key.
//
// Foundry nests the payload as {"object": "0x..."}; Hardhat stores the string
// directly. Missing or non-string values yield "".
func bytecodeField(doc gjson.Result, key string) string {
	v := lastMember(doc, key)
	switch {
	case v.Type == gjson.String:
		return v.Str
	case v.IsObject():
		if obj := lastMember(v, "object"); obj.Type == gjson.String {
			return obj.Str
		}
	}
	return ""
}

// lastMember returns the value of key in obj. When the key repeats, the last
// occurrence wins, as with most JSON decoders.
func lastMember(obj gjson.Result, key string) gjson.Result {
	var found gjson.Result
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.Str == key {
			found = v
		}
		return true
	})
	return found
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if suffix != "" && strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}
