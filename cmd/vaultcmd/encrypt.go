// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package vaultcmd

import (
	"github.com/aptoswap/aptoswap-cli/pkg/cobrautils"
	"github.com/aptoswap/aptoswap-cli/pkg/vault"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newEncryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encrypt [file]",
		Short: "Encrypt a profile document into a bundle",
		Long: `The vault encrypt command encrypts the given file, by default the
profile document of the project, and prints the base64 bundle.`,
		Args:         cobrautils.MaximumNArgs(1),
		RunE:         encrypt,
		SilenceUsage: true,
	}
	cmd.Flags().StringVarP(&output, outputFlag, "o", "", "write the bundle to this file")
	return cmd
}

func encrypt(cmd *cobra.Command, args []string) error {
	path := app.GetProfilePath()
	if len(args) == 1 {
		path = args[0]
	}
	plain, err := afero.ReadFile(app.FS, path)
	if err != nil {
		return err
	}
	pw, err := getPassword(true)
	if err != nil {
		return err
	}
	blob, err := vault.Encrypt(string(plain), pw)
	if err != nil {
		return err
	}
	app.Log.Info("profile encrypted", zap.String("source", path), zap.String("output", output))
	return writeOutput(cmd, blob)
}

func newDecryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decrypt <bundle-file>",
		Short: "Decrypt a bundle",
		Long: `The vault decrypt command prints the plaintext of a bundle. The output
holds private keys.`,
		Args:         cobrautils.ExactArgs(1),
		RunE:         decrypt,
		SilenceUsage: true,
	}
	cmd.Flags().StringVarP(&output, outputFlag, "o", "", "write the plaintext to this file")
	return cmd
}

func decrypt(cmd *cobra.Command, args []string) error {
	blob, err := readBlob(args[0])
	if err != nil {
		return err
	}
	pw, err := getPassword(false)
	if err != nil {
		return err
	}
	plain, err := vault.Decrypt(blob, pw)
	if err != nil {
		return err
	}
	return writeOutput(cmd, plain)
}
