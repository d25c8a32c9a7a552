// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package publishcmd

import (
	"github.com/aptoswap/aptoswap-cli/cmd/fundcmd"
	"github.com/aptoswap/aptoswap-cli/pkg/application"
	"github.com/aptoswap/aptoswap-cli/pkg/cobrautils"
	"github.com/aptoswap/aptoswap-cli/pkg/constants"
	"github.com/aptoswap/aptoswap-cli/pkg/engine"
	"github.com/aptoswap/aptoswap-cli/pkg/movebuild"
	"github.com/aptoswap/aptoswap-cli/pkg/utils"
	"github.com/aptoswap/aptoswap-cli/pkg/ux"
	"github.com/aptoswap/aptoswap-cli/pkg/vault"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	app *application.Aptoswap

	packageName  string
	namedAddress string
	moduleOrder  []string
	skipCompile  bool
	skipFund     bool
	maxGas       uint64
	gasUnitPrice uint64
)

// aptoswap publish
func NewCmd(injectedApp *application.Aptoswap) *cobra.Command {
	app = injectedApp

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Compile and publish the Move package",
		Long: `The publish command compiles the Move package in the project directory
with the profile account as its named address, funds the account when the
network has a faucet and publishes the package metadata and bytecode
modules in one transaction.

A publication that is not confirmed or that aborts on chain stops the
command with a non-zero exit status.`,
		Args:         cobrautils.ExactArgs(0),
		RunE:         publish,
		SilenceUsage: true,
	}
	cmd.Flags().StringVar(&packageName, "package-name", constants.DefaultPackageName, "name of the Move package to publish")
	cmd.Flags().StringVar(&namedAddress, "named-address", constants.NamedAddress, "named address bound to the profile account")
	cmd.Flags().StringSliceVar(&moduleOrder, "module-order", nil, "modules to publish first, in dependency order")
	cmd.Flags().BoolVar(&skipCompile, "skip-compile", false, "publish the existing build outputs")
	cmd.Flags().BoolVar(&skipFund, "skip-fund", false, "do not fund the account before publishing")
	cmd.Flags().Uint64Var(&maxGas, "max-gas", constants.DefaultPublishMaxGasAmount, "maximum gas amount")
	cmd.Flags().Uint64Var(&gasUnitPrice, "gas-unit-price", 0, "gas unit price, read from the gas schedule when zero")
	return cmd
}

func publish(cmd *cobra.Command, _ []string) error {
	k, err := app.LoadKey()
	if err != nil {
		return err
	}
	ctx, cancel := utils.GetSignalContext()
	defer cancel()

	projectDir := app.GetProjectDir()
	if !skipCompile {
		ux.Logger.PrintToUser("Compiling %s in %s...", packageName, projectDir)
		err := movebuild.Compile(ctx, movebuild.CompileOptions{
			AptosPath:      app.GetAptosPath(),
			PackageDir:     projectDir,
			NamedAddresses: map[string]string{namedAddress: k.Address().String()},
			Stdout:         cmd.OutOrStdout(),
			Stderr:         cmd.ErrOrStderr(),
		})
		if err != nil {
			return err
		}
	}
	pkg, err := movebuild.ReadPackage(app.FS, projectDir, packageName, moduleOrder...)
	if err != nil {
		return err
	}
	app.Log.Info("package loaded",
		zap.String("package", pkg.Name),
		zap.Strings("modules", pkg.ModuleNames),
	)

	if !skipFund {
		if err := fundcmd.AutoFund(ctx, app, k.Address()); err != nil {
			return err
		}
	}

	eng, err := app.Engine(engine.WithSpinner(true))
	if err != nil {
		return err
	}
	opts := []engine.CallOption{engine.WithMaxGasAmount(maxGas)}
	if gasUnitPrice > 0 {
		opts = append(opts, engine.WithGasUnitPrice(gasUnitPrice))
	}
	ux.Logger.PrintToUser("Publishing %d modules from %s...", len(pkg.Modules), k.Address())
	res, err := eng.Publish(ctx, k, pkg.Metadata, pkg.Modules, opts...)
	if err != nil {
		return err
	}
	ux.Logger.GreenCheckmarkToUser("Published %s, tx: %s", pkg.Name, res.Hash)

	return vault.WritePackageInfo(app.FS, app.GetPackageInfoPath(), k.Address().ShortString())
}
