// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package vaultcmd

import (
	"fmt"
	"sort"

	"github.com/aptoswap/aptoswap-cli/pkg/cobrautils"
	"github.com/aptoswap/aptoswap-cli/pkg/ux"
	"github.com/aptoswap/aptoswap-cli/pkg/vault"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var forceInstall bool

func newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install <bundle-file>",
		Short: "Install a bundle as the project profile document",
		Long: `The vault install command decrypts a bundle and writes it as
.aptos/config.yaml in the project directory, replacing the existing
document.`,
		Args:         cobrautils.ExactArgs(1),
		RunE:         install,
		SilenceUsage: true,
	}
	cmd.Flags().BoolVarP(&forceInstall, "force", "f", false, "replace an existing profile document without asking")
	return cmd
}

func install(_ *cobra.Command, args []string) error {
	blob, err := readBlob(args[0])
	if err != nil {
		return err
	}
	path := app.GetProfilePath()
	exists, err := afero.Exists(app.FS, path)
	if err != nil {
		return err
	}
	if exists && !forceInstall {
		replace, err := app.Prompt.CaptureNoYes(fmt.Sprintf("%s already exists. Replace it?", path))
		if err != nil {
			return err
		}
		if !replace {
			ux.Logger.PrintToUser("Install aborted")
			return nil
		}
	}
	pw, err := getPassword(false)
	if err != nil {
		return err
	}
	cfg, err := vault.Install(app.FS, blob, pw, path)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(cfg.Profiles))
	for name := range cfg.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ux.Logger.GreenCheckmarkToUser("Installed profile %q, account %s", name, cfg.Profiles[name].Account)
	}
	return nil
}
