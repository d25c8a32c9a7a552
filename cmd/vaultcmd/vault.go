// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package vaultcmd

import (
	"fmt"
	"strings"

	"github.com/aptoswap/aptoswap-cli/pkg/application"
	"github.com/aptoswap/aptoswap-cli/pkg/cobrautils"
	"github.com/aptoswap/aptoswap-cli/pkg/constants"
	"github.com/aptoswap/aptoswap-cli/pkg/vault"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

const (
	passwordFlag = "password"
	outputFlag   = "output"
)

var (
	app *application.Aptoswap

	password string
	output   string
)

// aptoswap vault
func NewCmd(injectedApp *application.Aptoswap) *cobra.Command {
	app = injectedApp

	cmd := &cobra.Command{
		Use:   "vault",
		Short: "Encrypt and install account profile bundles",
		Long: `The vault command suite encrypts the account profile document into a
password protected base64 bundle that can be shipped with test setups, and
installs such a bundle as the working profile.

The bundle format derives its AES key directly from the password and uses
ECB mode. Passwords are padded with '0' to 32 characters, so "pw", "pw0" and
"pw00" open the same bundle, and characters past the 32nd are ignored. It
keeps compatibility with existing bundles and must not be used for keys that
protect real funds.`,
		Args: cobrautils.SubcommandRequired,
		RunE: cobrautils.CommandSuiteUsage,
	}
	cmd.PersistentFlags().StringVar(&password, passwordFlag, "", "bundle password, prompted for when empty")

	// aptoswap vault encrypt
	cmd.AddCommand(newEncryptCmd())

	// aptoswap vault decrypt
	cmd.AddCommand(newDecryptCmd())

	// aptoswap vault install
	cmd.AddCommand(newInstallCmd())

	return cmd
}

// getPassword returns the --password value or prompts for it. New
// passwords are asked for twice.
func getPassword(confirm bool) (string, error) {
	if password != "" {
		return password, vault.ValidatePassword(password)
	}
	if confirm {
		return app.Prompt.CaptureNewPassword("Bundle password")
	}
	return app.Prompt.CapturePassword("Bundle password")
}

func readBlob(path string) (string, error) {
	b, err := afero.ReadFile(app.FS, path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func writeOutput(cmd *cobra.Command, s string) error {
	if output == "" {
		fmt.Fprintln(cmd.OutOrStdout(), s)
		return nil
	}
	return afero.WriteFile(app.FS, output, []byte(s), constants.WriteReadUserOnlyPerms)
}
