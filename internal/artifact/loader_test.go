// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package artifact

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/sizegate/internal/errors"
	testutil "github.com/kraklabs/sizegate/internal/testing"
)

func rowsByContract(rows []SizeRow) map[string]SizeRow {
	m := make(map[string]SizeRow, len(rows))
	for _, r := range rows {
		m[r.Contract] = r
	}
	return m
}

func TestLoad_MeasuresArtifacts(t *testing.T) {
	root := testutil.SetupArtifactRoot(t)
	vault := testutil.WriteArtifact(t, root, "Vault.sol", "Vault", testutil.HexOfSize(1000), testutil.HexOfSize(1200))
	testutil.WriteArtifact(t, root, "Token.sol", "Token", testutil.HexOfSize(10), testutil.HexOfSize(20))

	rows, err := Load(root, Options{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	got := rowsByContract(rows)
	assert.Equal(t, SizeRow{
		Contract:      "Vault",
		Source:        "Vault.sol",
		RuntimeBytes:  1000,
		InitcodeBytes: 1200,
		ArtifactPath:  vault,
	}, got["Vault"])
	assert.Equal(t, 10, got["Token"].RuntimeBytes)
	assert.Equal(t, 20, got["Token"].InitcodeBytes)
}

func TestLoad_DiscoveryOrderIsLexical(t *testing.T) {
	root := testutil.SetupArtifactRoot(t)
	testutil.WriteArtifact(t, root, "B.sol", "B", "0x01", "0x01")
	testutil.WriteArtifact(t, root, "A.sol", "A", "0x01", "0x01")
	testutil.WriteArtifact(t, root, "A.sol", "A2", "0x01", "0x01")

	rows, err := Load(root, Options{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"A", "A2", "B"}, []string{rows[0].Contract, rows[1].Contract, rows[2].Contract})
}

func TestLoad_SkipsEmptyBytecode(t *testing.T) {
	root := testutil.SetupArtifactRoot(t)
	testutil.WriteArtifact(t, root, "IVault.sol", "IVault", "0x", "0x")
	testutil.WriteRawArtifact(t, root, filepath.Join("Lib.sol", "NoFields.json"), `{"abi": []}`)
	testutil.WriteRawArtifact(t, root, filepath.Join("Lib.sol", "NullFields.json"), `{"bytecode": null, "deployedBytecode": {"object": null}}`)
	testutil.WriteRawArtifact(t, root, filepath.Join("Lib.sol", "Array.json"), `[1, 2, 3]`)
	testutil.WriteArtifact(t, root, "Vault.sol", "Vault", "0x6080", "0x")

	rows, err := Load(root, Options{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Vault", rows[0].Contract)
	assert.Equal(t, 2, rows[0].RuntimeBytes)
	assert.Equal(t, 0, rows[0].InitcodeBytes)
}

func TestLoad_InitcodeOnlyIsKept(t *testing.T) {
	root := testutil.SetupArtifactRoot(t)
	testutil.WriteArtifact(t, root, "Deployer.sol", "Deployer", "", "0x608060")

	rows, err := Load(root, Options{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 0, rows[0].RuntimeBytes)
	assert.Equal(t, 3, rows[0].InitcodeBytes)
}

func TestLoad_SkipsRootLevelFiles(t *testing.T) {
	root := testutil.SetupArtifactRoot(t)
	testutil.WriteRawArtifact(t, root, "build-info.json", `{"bytecode": {"object": "0x6080"}}`)
	testutil.WriteRawArtifact(t, root, "cache.json", `not even json`)

	rows, err := Load(root, Options{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestLoad_IgnoresOtherExtensions(t *testing.T) {
	root := testutil.SetupArtifactRoot(t)
	testutil.WriteRawArtifact(t, root, filepath.Join("Vault.sol", "Vault.metadata"), "garbage")

	rows, err := Load(root, Options{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestLoad_NestedBuckets(t *testing.T) {
	root := testutil.SetupArtifactRoot(t)
	path := testutil.WriteArtifact(t, root, filepath.Join("0.8.24", "Vault.sol"), "Vault", "0x01", "0x02")

	rows, err := Load(root, Options{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Vault.sol", rows[0].Source)
	assert.Equal(t, path, rows[0].ArtifactPath)
}

func TestLoad_TestBuckets(t *testing.T) {
	root := testutil.SetupArtifactRoot(t)
	huge := testutil.HexOfSize(500_000)
	testutil.WriteArtifact(t, root, "Foo.t.sol", "FooTest", huge, huge)
	testutil.WriteArtifact(t, root, "Deploy.s.sol", "Deploy", huge, huge)
	testutil.WriteArtifact(t, root, "Foo.sol", "Foo", "0x01", "0x01")

	tests := []struct {
		name      string
		opts      Options
		wantNames []string
	}{
		{
			name:      "excluded by default",
			opts:      Options{},
			wantNames: []string{"Foo"},
		},
		{
			name:      "included on request",
			opts:      Options{IncludeTests: true},
			wantNames: []string{"Deploy", "Foo", "FooTest"},
		},
		{
			name:      "custom suffixes replace defaults",
			opts:      Options{ExcludeSuffixes: []string{".s.sol"}},
			wantNames: []string{"Foo", "FooTest"},
		},
		{
			name:      "empty suffix list excludes nothing",
			opts:      Options{ExcludeSuffixes: []string{}},
			wantNames: []string{"Deploy", "Foo", "FooTest"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := Load(root, tt.opts)
			require.NoError(t, err)
			var names []string
			for _, r := range rows {
				names = append(names, r.Contract)
			}
			assert.ElementsMatch(t, tt.wantNames, names)
		})
	}
}

func TestLoad_HardhatShape(t *testing.T) {
	root := testutil.SetupArtifactRoot(t)
	testutil.WriteHardhatArtifact(t, root, "Token.sol", "Token", "0x0102", "0x010203")

	rows, err := Load(root, Options{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].RuntimeBytes)
	assert.Equal(t, 3, rows[0].InitcodeBytes)
}

func TestLoad_CorruptArtifactIsFatal(t *testing.T) {
	root := testutil.SetupArtifactRoot(t)
	testutil.WriteArtifact(t, root, "Good.sol", "Good", "0x01", "0x01")
	bad := testutil.WriteRawArtifact(t, root, filepath.Join("Vault.sol", "Vault.json"), `{"bytecode": {"object": "0x60"`)

	rows, err := Load(root, Options{})
	require.Error(t, err)
	assert.Nil(t, rows)
	assert.Contains(t, err.Error(), bad)

	var ue *errors.UserError
	require.True(t, stderrors.As(err, &ue))
	assert.Equal(t, errors.ExitFatal, ue.ExitCode)
}

func TestLoad_EmptyFileIsFatal(t *testing.T) {
	root := testutil.SetupArtifactRoot(t)
	testutil.WriteRawArtifact(t, root, filepath.Join("Vault.sol", "Vault.json"), "")

	_, err := Load(root, Options{})
	require.Error(t, err)
}

func TestLoad_CorruptTestArtifactSkippedWhenExcluded(t *testing.T) {
	root := testutil.SetupArtifactRoot(t)
	testutil.WriteRawArtifact(t, root, filepath.Join("Vault.t.sol", "VaultTest.json"), "{")

	rows, err := Load(root, Options{})
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = Load(root, Options{IncludeTests: true})
	require.Error(t, err)
}

func TestLoad_OnArtifactCallback(t *testing.T) {
	root := testutil.SetupArtifactRoot(t)
	testutil.WriteArtifact(t, root, "A.sol", "A", "0x01", "0x01")
	testutil.WriteArtifact(t, root, "A.sol", "IA", "0x", "0x")

	var seen []string
	_, err := Load(root, Options{OnArtifact: func(path string) { seen = append(seen, filepath.Base(path)) }})
	require.NoError(t, err)
	assert.Equal(t, []string{"A.json", "IA.json"}, seen)
}

func TestLoad_SymlinkedRoot(t *testing.T) {
	target := testutil.SetupArtifactRoot(t)
	testutil.WriteArtifact(t, target, "Big.sol", "Big", testutil.HexOfSize(30000), "0x")
	link := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.Symlink(target, link))

	rows, err := Load(link, Options{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Big", rows[0].Contract)
	assert.Equal(t, 30000, rows[0].RuntimeBytes)
	assert.Equal(t, filepath.Join(link, "Big.sol", "Big.json"), rows[0].ArtifactPath)
}

func TestLoad_InvalidUTF8IsFatal(t *testing.T) {
	root := testutil.SetupArtifactRoot(t)
	bad := testutil.WriteRawArtifact(t, root, filepath.Join("A.sol", "A.json"),
		"{\"name\":\"\xff\xfe\",\"deployedBytecode\":{\"object\":\"0x6000\"}}")

	rows, err := Load(root, Options{})
	require.Error(t, err)
	assert.Nil(t, rows)
	assert.Contains(t, err.Error(), "failed to parse JSON artifact: "+bad)

	var ue *errors.UserError
	require.True(t, stderrors.As(err, &ue))
	assert.Equal(t, errors.ExitFatal, ue.ExitCode)
}

func TestLoad_DuplicateKeysLastWins(t *testing.T) {
	root := testutil.SetupArtifactRoot(t)
	testutil.WriteRawArtifact(t, root, filepath.Join("A.sol", "A.json"),
		`{"deployedBytecode":{"object":"0x"},"deployedBytecode":{"object":"0x60006000"},`+
			`"bytecode":{"object":"0x6000","object":"0x600060"}}`)

	rows, err := Load(root, Options{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 4, rows[0].RuntimeBytes)
	assert.Equal(t, 3, rows[0].InitcodeBytes)
}

func TestLoad_NaNIsFatal(t *testing.T) {
	root := testutil.SetupArtifactRoot(t)
	testutil.WriteRawArtifact(t, root, filepath.Join("A.sol", "A.json"),
		`{"gas": NaN, "deployedBytecode":{"object":"0x6000"}}`)

	_, err := Load(root, Options{})
	require.Error(t, err)
}

func TestLoad_MissingRoot(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"), Options{})
	require.Error(t, err)
}
