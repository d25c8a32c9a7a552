// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package callcmd

import (
	"context"

	"github.com/aptoswap/aptoswap-cli/pkg/application"
	"github.com/aptoswap/aptoswap-cli/pkg/cobrautils"
	"github.com/aptoswap/aptoswap-cli/pkg/constants"
	"github.com/aptoswap/aptoswap-cli/pkg/engine"
	"github.com/aptoswap/aptoswap-cli/pkg/key"
	"github.com/aptoswap/aptoswap-cli/pkg/moveargs"
	"github.com/aptoswap/aptoswap-cli/pkg/payload"
	"github.com/aptoswap/aptoswap-cli/pkg/utils"
	"github.com/aptoswap/aptoswap-cli/pkg/ux"

	"github.com/spf13/cobra"
)

const ContinueOnFailureFlag = "continue-on-failure"

var (
	app *application.Aptoswap

	typeArgs          []string
	continueOnFailure bool
	maxGas            uint64
	gasUnitPrice      uint64
)

// aptoswap call
func NewCmd(injectedApp *application.Aptoswap) *cobra.Command {
	app = injectedApp

	cmd := &cobra.Command{
		Use:   "call <address>::<module>::<function> [args...]",
		Short: "Call an entry function",
		Long: `The call command signs an entry function call with the selected profile,
submits it and waits for the result.

Arguments are typed literals of the form <kind>:<value> where kind is one
of address, string, u8, u16, u32, u64 or u128, e.g. u8:6 or
address:0x1. Untyped decimal numbers are read as u64, address literals as
address and anything else as string.`,
		Example: `  aptoswap call 0xabc::pool::initialize u8:6
  aptoswap call 0xabc::pool::create_pool u64:5 u64:25 \
    --type-arg 0x1::aptos_coin::AptosCoin --type-arg 0xabc::pool::TestToken`,
		Args:         cobrautils.MinimumNArgs(1),
		RunE:         call,
		SilenceUsage: true,
	}
	cmd.Flags().StringArrayVar(&typeArgs, "type-arg", nil, "type argument, repeat for each one")
	AddCallFlags(cmd, &continueOnFailure, &maxGas, &gasUnitPrice)
	return cmd
}

// AddCallFlags registers the flags shared by the commands that submit entry
// function calls.
func AddCallFlags(cmd *cobra.Command, continueOnFailure *bool, maxGas *uint64, gasUnitPrice *uint64) {
	cmd.Flags().BoolVar(continueOnFailure, ContinueOnFailureFlag, false, "report a failed transaction without a non-zero exit status")
	cmd.Flags().Uint64Var(maxGas, "max-gas", constants.DefaultMaxGasAmount, "maximum gas amount")
	cmd.Flags().Uint64Var(gasUnitPrice, "gas-unit-price", 0, "gas unit price, read from the gas schedule when zero")
}

// CallOptions turns the shared call flags into engine options.
func CallOptions(continueOnFailure bool, maxGas uint64, gasUnitPrice uint64) []engine.CallOption {
	opts := []engine.CallOption{
		engine.WithMaxGasAmount(maxGas),
		engine.HaltOnFailure(!continueOnFailure),
	}
	if gasUnitPrice > 0 {
		opts = append(opts, engine.WithGasUnitPrice(gasUnitPrice))
	}
	return opts
}

func call(_ *cobra.Command, args []string) error {
	callArgs, err := moveargs.ParseAll(args[1:])
	if err != nil {
		return err
	}
	desc := payload.CallDescriptor{
		Function:      args[0],
		TypeArguments: typeArgs,
		Arguments:     callArgs,
	}
	k, err := app.LoadKey()
	if err != nil {
		return err
	}
	eng, err := app.Engine(engine.WithSpinner(true))
	if err != nil {
		return err
	}
	ctx, cancel := utils.GetSignalContext()
	defer cancel()
	_, err = Run(ctx, eng, k, desc, CallOptions(continueOnFailure, maxGas, gasUnitPrice)...)
	return err
}

// Run executes desc and reports the outcome to the user. A failed call is
// returned as an error only when the options halt on failure.
func Run(ctx context.Context, eng *engine.Engine, k key.Key, desc payload.CallDescriptor, opts ...engine.CallOption) (*engine.Result, error) {
	ux.Logger.PrintToUser("Calling %s", desc)
	res, err := eng.Execute(ctx, k, desc, opts...)
	if err != nil {
		return res, err
	}
	if res.OK() {
		ux.Logger.GreenCheckmarkToUser("%s, tx: %s", desc.Function, res.Hash)
		return res, nil
	}
	ux.Logger.RedXToUser("%s %s, tx: %s: %s", desc.Function, res.Outcome, res.Hash, res.Err)
	return res, nil
}
