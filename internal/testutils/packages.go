// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package testutils

import (
	"path/filepath"
	"testing"

	"github.com/aptoswap/aptoswap-cli/pkg/constants"
	"github.com/aptoswap/aptoswap-cli/pkg/key"
	"github.com/aptoswap/aptoswap-cli/pkg/movebuild"
	"github.com/aptoswap/aptoswap-cli/pkg/vault"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

var DummyMetadata = []byte{0x07, 'A', 'p', 't', 'o', 's', 'w', 'a', 'p'}

// WriteDummyPackage writes build outputs for packageName under projectDir,
// one module per entry of modules.
func WriteDummyPackage(t *testing.T, afs afero.Fs, projectDir string, packageName string, modules map[string][]byte) {
	dir := movebuild.BuildDir(projectDir, packageName)
	require.NoError(t, afero.WriteFile(afs, filepath.Join(dir, constants.PackageMetadata), DummyMetadata, constants.WriteReadReadPerms))
	for name, code := range modules {
		path := filepath.Join(dir, constants.BytecodeModulesDir, name+constants.ModuleExtension)
		require.NoError(t, afero.WriteFile(afs, path, code, constants.WriteReadReadPerms))
	}
}

// WriteTestProfile generates a key and stores it as profile name of the
// project at projectDir.
func WriteTestProfile(t *testing.T, afs afero.Fs, projectDir string, name string) *key.SoftKey {
	k, err := key.NewSoft()
	require.NoError(t, err)
	profile := vault.NewProfile(k, constants.LocalNodeURL, constants.LocalFaucetURL)
	require.NoError(t, vault.WriteProfile(afs, vault.ProfilePath(projectDir), name, profile))
	return k
}
