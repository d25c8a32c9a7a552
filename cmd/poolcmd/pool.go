// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package poolcmd

import (
	"errors"

	"github.com/aptoswap/aptoswap-cli/pkg/application"
	"github.com/aptoswap/aptoswap-cli/pkg/cobrautils"
	"github.com/aptoswap/aptoswap-cli/pkg/constants"
	"github.com/aptoswap/aptoswap-cli/pkg/movetypes"
	"github.com/aptoswap/aptoswap-cli/pkg/vault"

	"github.com/spf13/cobra"
)

const packageFlag = "package"

var (
	app *application.Aptoswap

	packageAddr string
)

// aptoswap pool
func NewCmd(injectedApp *application.Aptoswap) *cobra.Command {
	app = injectedApp

	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Set up and inspect Aptoswap pools",
		Long: `The pool command suite drives the setup calls of a published Aptoswap
package and lists the pools it created.

The package address defaults to package_info.json in the project
directory, then to the account of the selected profile.`,
		Args: cobrautils.SubcommandRequired,
		RunE: cobrautils.CommandSuiteUsage,
	}
	cmd.PersistentFlags().StringVar(&packageAddr, packageFlag, "", "address the Aptoswap package is published at")

	// aptoswap pool initialize
	cmd.AddCommand(newInitializeCmd())

	// aptoswap pool create-test
	cmd.AddCommand(newCreateTestCmd())

	// aptoswap pool list
	cmd.AddCommand(newListCmd())

	return cmd
}

// resolvePackage returns the address of the Aptoswap package.
func resolvePackage() (movetypes.AccountAddress, error) {
	if packageAddr != "" {
		return movetypes.ParseAddress(packageAddr)
	}
	info, err := vault.ReadPackageInfo(app.FS, app.GetPackageInfoPath())
	switch {
	case err == nil:
		return movetypes.ParseAddress(info.Package)
	case !errors.Is(err, constants.ErrNoPackageInfo):
		return movetypes.AccountAddress{}, err
	}
	profile, err := app.LoadProfile()
	if err != nil {
		return movetypes.AccountAddress{}, err
	}
	return profile.Address()
}
