// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package testing provides test helpers for building artifact trees.
//
// # Quick Start
//
// Use SetupArtifactRoot to create an empty out/ directory and the Write
// helpers to populate it with Foundry-shaped artifacts:
//
//	func TestMyFeature(t *testing.T) {
//	    root := testing.SetupArtifactRoot(t)
//	    testing.WriteArtifact(t, root, "Vault.sol", "Vault", testing.HexOfSize(100), testing.HexOfSize(150))
//
//	    rows, err := artifact.Load(root, artifact.Options{})
//	    require.NoError(t, err)
//	    require.Len(t, rows, 1)
//	}
//
// # Writing Artifacts
//
//   - WriteArtifact: Foundry layout, {"bytecode":{"object":...}}
//   - WriteHardhatArtifact: payloads stored as plain strings
//   - WriteRawArtifact: arbitrary file content, for corrupt inputs
//
// # Payloads
//
// HexOfSize returns a 0x-prefixed payload that decodes to exactly n bytes.
package testing
