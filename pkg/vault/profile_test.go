// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package vault

import (
	"testing"

	"github.com/aptoswap/aptoswap-cli/pkg/constants"
	"github.com/aptoswap/aptoswap-cli/pkg/key"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const testProfileDoc = `profiles:
  default:
    private_key: "0x9bf49a6a0755f953811fce125f2683d50429c3bb49e074147e0089a52eae155f"
    account: 0xabc
    rest_url: "http://127.0.0.1:8080/v1"
`

func TestWriteAndLoadProfile(t *testing.T) {
	require := require.New(t)
	afs := afero.NewMemMapFs()
	path := ProfilePath("/project")
	require.Equal("/project/.aptos/config.yaml", path)

	k, err := key.NewSoft()
	require.NoError(err)
	require.NoError(WriteProfile(afs, path, "default", NewProfile(k, constants.LocalNodeURL, constants.LocalFaucetURL)))
	require.NoError(WriteProfile(afs, path, "other", &Profile{Account: "0x1"}))

	p, err := LoadProfile(afs, path, "default")
	require.NoError(err)
	require.Equal(constants.LocalFaucetURL, p.FaucetURL)
	loaded, err := p.Key()
	require.NoError(err)
	require.Equal(k.Address(), loaded.Address())
	require.Equal(k.Encode(), loaded.Encode())

	_, err = LoadProfile(afs, path, "other")
	require.NoError(err)
	_, err = LoadProfile(afs, path, "missing")
	require.ErrorIs(err, ErrProfileNotFound)
	_, err = LoadProfile(afs, "/elsewhere/config.yaml", "default")
	require.ErrorIs(err, constants.ErrNoProfile)

	info, err := afs.Stat(path)
	require.NoError(err)
	require.Equal(constants.WriteReadUserOnlyPerms, int(info.Mode().Perm()))
}

func TestInstall(t *testing.T) {
	require := require.New(t)
	afs := afero.NewMemMapFs()
	blob, err := Encrypt(testProfileDoc, "deploy")
	require.NoError(err)

	path := ProfilePath("/project")
	cfg, err := Install(afs, blob, "deploy", path)
	require.NoError(err)
	require.Equal("0xabc", cfg.Profiles["default"].Account)

	written, err := afero.ReadFile(afs, path)
	require.NoError(err)
	require.Equal(testProfileDoc, string(written))

	p, err := LoadProfile(afs, path, "default")
	require.NoError(err)
	addr, err := p.Address()
	require.NoError(err)
	require.Equal("0xabc", addr.ShortString())
}

func TestInstallWrongPassword(t *testing.T) {
	require := require.New(t)
	afs := afero.NewMemMapFs()
	blob, err := Encrypt(testProfileDoc, "deploy")
	require.NoError(err)

	path := ProfilePath("/project")
	_, err = Install(afs, blob, "other", path)
	require.ErrorIs(err, ErrDecryptionFailed)
	exists, err := afero.Exists(afs, path)
	require.NoError(err)
	require.False(exists)
}

func TestPackageInfo(t *testing.T) {
	require := require.New(t)
	afs := afero.NewMemMapFs()
	path := PackageInfoPath("/project")

	_, err := ReadPackageInfo(afs, path)
	require.ErrorIs(err, constants.ErrNoPackageInfo)

	require.NoError(WritePackageInfo(afs, path, "0xabc"))
	b, err := afero.ReadFile(afs, path)
	require.NoError(err)
	require.JSONEq(`{"package":"0xabc"}`, string(b))

	info, err := ReadPackageInfo(afs, path)
	require.NoError(err)
	require.Equal("0xabc", info.Package)
}
