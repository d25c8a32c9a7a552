// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package accountcmd

import (
	"fmt"

	"github.com/aptoswap/aptoswap-cli/pkg/application"
	"github.com/aptoswap/aptoswap-cli/pkg/cobrautils"
	"github.com/aptoswap/aptoswap-cli/pkg/utils"
	"github.com/aptoswap/aptoswap-cli/pkg/ux"
	"github.com/aptoswap/aptoswap-cli/pkg/vault"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	app *application.Aptoswap

	showBalance bool
)

// aptoswap account
func NewCmd(injectedApp *application.Aptoswap) *cobra.Command {
	app = injectedApp

	cmd := &cobra.Command{
		Use:   "account",
		Short: "Print the deployer account and record it in package_info.json",
		Long: `The account command prints the account address of the selected profile
and writes it to package_info.json in the project directory, where the
frontend and the other deployment tooling pick up the package address.

Only the address is written to stdout so the command can be used in
scripts.`,
		Args:         cobrautils.ExactArgs(0),
		RunE:         printAccount,
		SilenceUsage: true,
	}
	cmd.Flags().BoolVar(&showBalance, "balance", false, "also print the account balance")
	return cmd
}

func printAccount(cmd *cobra.Command, _ []string) error {
	profile, err := app.LoadProfile()
	if err != nil {
		return err
	}
	addr, err := profile.Address()
	if err != nil {
		return fmt.Errorf("profile %q: %w", app.GetProfileName(), err)
	}
	if err := vault.WritePackageInfo(app.FS, app.GetPackageInfoPath(), profile.Account); err != nil {
		return err
	}
	app.Log.Info("package info written",
		zap.String("path", app.GetPackageInfoPath()),
		zap.String("package", profile.Account),
	)
	fmt.Fprintln(cmd.OutOrStdout(), profile.Account)

	if !showBalance {
		return nil
	}
	client, err := app.NodeClient()
	if err != nil {
		return err
	}
	ctx, cancel := utils.GetAPIContext()
	defer cancel()
	balance, err := client.Balance(ctx, addr)
	if err != nil {
		return err
	}
	ux.Logger.PrintToUser("Balance: %s", ux.FormatOctas(balance))
	return nil
}
