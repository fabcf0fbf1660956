// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package testing

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// SetupArtifactRoot creates an empty out/ directory under t.TempDir() and
// returns its path. The directory is removed when the test finishes.
func SetupArtifactRoot(t *testing.T) string {
	t.Helper()

	root := filepath.Join(t.TempDir(), "out")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("failed to create artifact root: %v", err)
	}
	return root
}

// HexOfSize returns a 0x-prefixed hex payload of exactly n bytes.
// n <= 0 yields the empty marker "0x".
func HexOfSize(n int) string {
	if n <= 0 {
		return "0x"
	}
	return "0x" + strings.Repeat("60", n)
}

// WriteArtifact writes a Foundry artifact for contract into root/bucket and
// returns its path.
//
// Example:
//
//	testing.WriteArtifact(t, root, "Vault.sol", "Vault", testing.HexOfSize(10), testing.HexOfSize(20))
func WriteArtifact(t *testing.T, root, bucket, contract, runtimeHex, initcodeHex string) string {
	t.Helper()

	doc := map[string]any{
		"abi":              []any{},
		"bytecode":         map[string]any{"object": initcodeHex, "sourceMap": ""},
		"deployedBytecode": map[string]any{"object": runtimeHex, "sourceMap": ""},
	}
	return writeJSON(t, filepath.Join(root, bucket, contract+".json"), doc)
}

// WriteHardhatArtifact writes an artifact whose bytecode fields are plain
// strings, as emitted by Hardhat.
func WriteHardhatArtifact(t *testing.T, root, bucket, contract, runtimeHex, initcodeHex string) string {
	t.Helper()

	doc := map[string]any{
		"contractName":     contract,
		"bytecode":         initcodeHex,
		"deployedBytecode": runtimeHex,
	}
	return writeJSON(t, filepath.Join(root, bucket, contract+".json"), doc)
}

// WriteRawArtifact writes content verbatim to root/relPath and returns the
// full path. Intermediate directories are created.
func WriteRawArtifact(t *testing.T, root, relPath, content string) string {
	t.Helper()

	path := filepath.Join(root, relPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create artifact dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write artifact: %v", err)
	}
	return path
}

func writeJSON(t *testing.T, path string, doc any) string {
	t.Helper()

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("failed to marshal artifact: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create artifact dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write artifact: %v", err)
	}
	return path
}
