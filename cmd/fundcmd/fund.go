// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package fundcmd

import (
	"context"
	"errors"
	"time"

	"github.com/aptoswap/aptoswap-cli/pkg/application"
	"github.com/aptoswap/aptoswap-cli/pkg/cobrautils"
	"github.com/aptoswap/aptoswap-cli/pkg/constants"
	"github.com/aptoswap/aptoswap-cli/pkg/faucet"
	"github.com/aptoswap/aptoswap-cli/pkg/movetypes"
	"github.com/aptoswap/aptoswap-cli/pkg/utils"
	"github.com/aptoswap/aptoswap-cli/pkg/ux"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	amountFlag      = "amount"
	targetFlag      = "target"
	maxAttemptsFlag = "max-attempts"
	intervalFlag    = "interval"
)

var (
	app *application.Aptoswap

	amount      uint64
	target      uint64
	maxAttempts int
	interval    time.Duration
)

// aptoswap fund
func NewCmd(injectedApp *application.Aptoswap) *cobra.Command {
	app = injectedApp

	cmd := &cobra.Command{
		Use:   "fund [address]",
		Short: "Fund an account from the network faucet",
		Long: `The fund command mints coins to an account through the faucet of the
selected network until its balance reaches the target, giving up after
--max-attempts faucet calls.

Without an address the account of the selected profile is funded, or an
address is asked for when the project has no profile.`,
		Args:         cobrautils.MaximumNArgs(1),
		RunE:         fund,
		SilenceUsage: true,
	}
	cmd.Flags().Uint64Var(&amount, amountFlag, constants.DefaultFundAmount, "octas minted per faucet call")
	cmd.Flags().Uint64Var(&target, targetFlag, constants.DefaultFundTarget, "balance to reach, in octas")
	cmd.Flags().IntVar(&maxAttempts, maxAttemptsFlag, constants.DefaultFundMaxAttempts, "maximum number of faucet calls")
	cmd.Flags().DurationVar(&interval, intervalFlag, constants.DefaultFundInterval, "delay between faucet calls")
	return cmd
}

func fund(_ *cobra.Command, args []string) error {
	var (
		addr movetypes.AccountAddress
		err  error
	)
	if len(args) == 1 {
		addr, err = movetypes.ParseAddress(args[0])
	} else {
		addr, err = profileAddress()
	}
	if err != nil {
		return err
	}

	ctx, cancel := utils.GetSignalContext()
	defer cancel()

	cfg := faucet.DefaultFundConfig()
	cfg.Amount = amount
	cfg.Target = target
	cfg.MaxAttempts = maxAttempts
	cfg.Interval = interval
	balance, err := Fund(ctx, app, addr, cfg)
	if err != nil {
		return err
	}
	ux.Logger.GreenCheckmarkToUser("Account %s holds %s", addr, ux.FormatOctas(balance))
	return nil
}

// profileAddress returns the profile account, asking for an address when
// the project has no profile.
func profileAddress() (movetypes.AccountAddress, error) {
	profile, err := app.LoadProfile()
	if errors.Is(err, constants.ErrNoProfile) {
		return app.Prompt.CaptureAddress("Account address to fund")
	}
	if err != nil {
		return movetypes.AccountAddress{}, err
	}
	return profile.Address()
}

// Fund runs the bounded faucet loop for addr on the selected network.
func Fund(ctx context.Context, app *application.Aptoswap, addr movetypes.AccountAddress, cfg faucet.FundConfig) (uint64, error) {
	f, err := app.Faucet()
	if err != nil {
		return 0, err
	}
	client, err := app.NodeClient()
	if err != nil {
		return 0, err
	}
	if cfg.Log == nil {
		cfg.Log = app.Log
	}
	ux.Logger.PrintToUser("Funding %s...", addr)
	return faucet.FundUntil(ctx, f, client, addr, cfg)
}

// AutoFund funds addr with the default settings when the network has a
// faucet, and does nothing otherwise.
func AutoFund(ctx context.Context, app *application.Aptoswap, addr movetypes.AccountAddress) error {
	balance, err := Fund(ctx, app, addr, faucet.DefaultFundConfig())
	if errors.Is(err, application.ErrNoFaucet) {
		app.Log.Info("no faucet configured, skipping funding", zap.Stringer("address", addr))
		return nil
	}
	if err != nil {
		return err
	}
	ux.Logger.PrintToUser("Funded %s, balance %s", addr, ux.FormatOctas(balance))
	return nil
}
