// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package accountcmd

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/aptoswap/aptoswap-cli/internal/mocks"
	"github.com/aptoswap/aptoswap-cli/internal/testutils"
	"github.com/aptoswap/aptoswap-cli/pkg/constants"
	"github.com/aptoswap/aptoswap-cli/pkg/key"
	"github.com/aptoswap/aptoswap-cli/pkg/vault"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/mock"
)

func execute(cmd *cobra.Command, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAccountWritesPackageInfo(t *testing.T) {
	require := testutils.SetupTest(t)
	testApp := testutils.SetupTestApp(t, nil)
	k := testutils.WriteTestProfile(t, testApp.FS, testutils.ProjectDir, constants.DefaultProfile)

	out, err := execute(NewCmd(testApp))
	require.NoError(err)
	require.Equal(k.Address().ShortString(), strings.TrimSpace(out))

	info, err := vault.ReadPackageInfo(testApp.FS, testApp.GetPackageInfoPath())
	require.NoError(err)
	require.Equal(k.Address().ShortString(), info.Package)
}

func TestAccountWithoutProfile(t *testing.T) {
	require := testutils.SetupTest(t)
	testApp := testutils.SetupTestApp(t, nil)

	_, err := execute(NewCmd(testApp))
	require.ErrorIs(err, constants.ErrNoProfile)
}

func TestNewAccount(t *testing.T) {
	require := testutils.SetupTest(t)
	testApp := testutils.SetupTestApp(t, nil)

	out, err := execute(NewNewAccountCmd(testApp), "--skip-fund")
	require.NoError(err)

	profile, err := testApp.LoadProfile()
	require.NoError(err)
	require.Equal(profile.Account, strings.TrimSpace(out))
	require.Equal(constants.LocalNodeURL, profile.RestURL)
	require.Equal(constants.LocalFaucetURL, profile.FaucetURL)
	k, err := profile.Key()
	require.NoError(err)
	require.Equal(k.AuthKey(), k.Address())
}

func TestNewAccountImport(t *testing.T) {
	require := testutils.SetupTest(t)
	testApp := testutils.SetupTestApp(t, nil)
	k, err := key.NewSoft()
	require.NoError(err)

	_, err = execute(NewNewAccountCmd(testApp), "--skip-fund", "--private-key", k.Encode())
	require.NoError(err)

	loaded, err := testApp.LoadKey()
	require.NoError(err)
	require.Equal(k.Address(), loaded.Address())
}

func TestNewAccountImportKeyFile(t *testing.T) {
	require := testutils.SetupTest(t)
	testApp := testutils.SetupTestApp(t, nil)
	k, err := key.NewSoft()
	require.NoError(err)
	require.NoError(afero.WriteFile(testApp.FS, "/keys/deployer.key", []byte(k.Encode()+"\n"), 0o600))

	_, err = execute(NewNewAccountCmd(testApp), "--skip-fund", "--key-file", "/keys/deployer.key")
	require.NoError(err)

	loaded, err := testApp.LoadKey()
	require.NoError(err)
	require.Equal(k.Address(), loaded.Address())

	_, err = execute(NewNewAccountCmd(testApp), "--force", "--skip-fund", "--key-file", "/keys/missing.key")
	require.ErrorIs(err, os.ErrNotExist)
}

func TestNewAccountKeepsExistingProfile(t *testing.T) {
	require := testutils.SetupTest(t)
	prompt := &mocks.Prompter{}
	prompt.On("CaptureNoYes", mock.Anything).Return(false, nil)
	testApp := testutils.SetupTestApp(t, prompt)
	k := testutils.WriteTestProfile(t, testApp.FS, testutils.ProjectDir, constants.DefaultProfile)

	_, err := execute(NewNewAccountCmd(testApp), "--skip-fund")
	require.ErrorIs(err, errProfileExists)
	prompt.AssertExpectations(t)

	loaded, err := testApp.LoadKey()
	require.NoError(err)
	require.Equal(k.Address(), loaded.Address())
}

func TestNewAccountForce(t *testing.T) {
	require := testutils.SetupTest(t)
	prompt := &mocks.Prompter{}
	testApp := testutils.SetupTestApp(t, prompt)
	k := testutils.WriteTestProfile(t, testApp.FS, testutils.ProjectDir, constants.DefaultProfile)

	_, err := execute(NewNewAccountCmd(testApp), "--skip-fund", "--force")
	require.NoError(err)
	prompt.AssertNotCalled(t, "CaptureNoYes", mock.Anything)

	loaded, err := testApp.LoadKey()
	require.NoError(err)
	require.NotEqual(k.Address(), loaded.Address())
}
