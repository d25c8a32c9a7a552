// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package poolcmd

import (
	"github.com/aptoswap/aptoswap-cli/cmd/callcmd"
	"github.com/aptoswap/aptoswap-cli/cmd/fundcmd"
	"github.com/aptoswap/aptoswap-cli/pkg/cobrautils"
	"github.com/aptoswap/aptoswap-cli/pkg/constants"
	"github.com/aptoswap/aptoswap-cli/pkg/engine"
	"github.com/aptoswap/aptoswap-cli/pkg/moveargs"
	"github.com/aptoswap/aptoswap-cli/pkg/movetypes"
	"github.com/aptoswap/aptoswap-cli/pkg/payload"
	"github.com/aptoswap/aptoswap-cli/pkg/utils"

	"github.com/spf13/cobra"
)

const (
	poolModule = "pool"

	defaultAdminFee uint64 = 6

	defaultTestFee     uint64 = 5
	defaultTestLPRatio uint64 = 25
)

var (
	continueOnFailure bool
	maxGas            uint64
	gasUnitPrice      uint64
	skipFund          bool

	adminFee uint64
	fee      uint64
	lpRatio  uint64
)

func newInitializeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "initialize",
		Short:        "Initialize the swap capability of the package",
		Long:         `The pool initialize command calls <package>::pool::initialize once after publication.`,
		Args:         cobrautils.ExactArgs(0),
		RunE:         initialize,
		SilenceUsage: true,
	}
	cmd.Flags().Uint64Var(&adminFee, "admin-fee", defaultAdminFee, "admin fee passed to initialize")
	addSetupFlags(cmd)
	return cmd
}

func newCreateTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-test",
		Short: "Create the AptosCoin / TestToken pool",
		Long: `The pool create-test command creates a pool between AptosCoin and the
TestToken coin shipped with the package.`,
		Args:         cobrautils.ExactArgs(0),
		RunE:         createTestPool,
		SilenceUsage: true,
	}
	cmd.Flags().Uint64Var(&fee, "fee", defaultTestFee, "pool fee")
	cmd.Flags().Uint64Var(&lpRatio, "lp-ratio", defaultTestLPRatio, "share of the fee paid to liquidity providers")
	addSetupFlags(cmd)
	return cmd
}

func addSetupFlags(cmd *cobra.Command) {
	callcmd.AddCallFlags(cmd, &continueOnFailure, &maxGas, &gasUnitPrice)
	cmd.Flags().BoolVar(&skipFund, "skip-fund", false, "do not fund the account before the call")
}

// InitializeCall is <pkg>::pool::initialize(u8 adminFee).
func InitializeCall(pkg movetypes.AccountAddress, adminFee uint64) (payload.CallDescriptor, error) {
	arg, err := moveargs.NewU8(adminFee)
	if err != nil {
		return payload.CallDescriptor{}, err
	}
	return payload.CallDescriptor{
		Function:  poolFunction(pkg, "initialize"),
		Arguments: []moveargs.Arg{arg},
	}, nil
}

// CreateTestPoolCall is
// <pkg>::pool::create_pool<AptosCoin, <pkg>::pool::TestToken>(u64 fee, u64 lpRatio).
func CreateTestPoolCall(pkg movetypes.AccountAddress, fee uint64, lpRatio uint64) payload.CallDescriptor {
	return payload.CallDescriptor{
		Function: poolFunction(pkg, "create_pool"),
		TypeArguments: []string{
			constants.AptosCoinType,
			pkg.ShortString() + "::" + poolModule + "::TestToken",
		},
		Arguments: []moveargs.Arg{moveargs.NewU64(fee), moveargs.NewU64(lpRatio)},
	}
}

func poolFunction(pkg movetypes.AccountAddress, name string) string {
	return pkg.ShortString() + "::" + poolModule + "::" + name
}

func initialize(_ *cobra.Command, _ []string) error {
	pkg, err := resolvePackage()
	if err != nil {
		return err
	}
	desc, err := InitializeCall(pkg, adminFee)
	if err != nil {
		return err
	}
	return runSetupCall(desc)
}

func createTestPool(_ *cobra.Command, _ []string) error {
	pkg, err := resolvePackage()
	if err != nil {
		return err
	}
	return runSetupCall(CreateTestPoolCall(pkg, fee, lpRatio))
}

func runSetupCall(desc payload.CallDescriptor) error {
	k, err := app.LoadKey()
	if err != nil {
		return err
	}
	ctx, cancel := utils.GetSignalContext()
	defer cancel()
	if !skipFund {
		if err := fundcmd.AutoFund(ctx, app, k.Address()); err != nil {
			return err
		}
	}
	eng, err := app.Engine(engine.WithSpinner(true))
	if err != nil {
		return err
	}
	_, err = callcmd.Run(ctx, eng, k, desc, callcmd.CallOptions(continueOnFailure, maxGas, gasUnitPrice)...)
	return err
}
