// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package faucet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aptoswap/aptoswap-cli/pkg/constants"
	"github.com/aptoswap/aptoswap-cli/pkg/movetypes"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

var (
	ErrFundingExhausted = errors.New("account still below target balance")
	errBelowTarget      = errors.New("balance below target")
)

type BalanceReader interface {
	Balance(ctx context.Context, addr movetypes.AccountAddress) (uint64, error)
}

type FundConfig struct {
	// Amount minted per attempt.
	Amount uint64
	// Target balance; zero means Amount.
	Target      uint64
	MaxAttempts int
	Interval    time.Duration
	Log         *zap.Logger
}

func DefaultFundConfig() FundConfig {
	return FundConfig{
		Amount:      constants.DefaultFundAmount,
		Target:      constants.DefaultFundTarget,
		MaxAttempts: constants.DefaultFundMaxAttempts,
		Interval:    constants.DefaultFundInterval,
	}
}

// FundUntil funds addr and then checks its balance, repeating every
// cfg.Interval until the balance reaches the target. It gives up after
// cfg.MaxAttempts funding calls or when ctx is done, and returns the last
// balance seen.
func FundUntil(
	ctx context.Context,
	f Faucet,
	balances BalanceReader,
	addr movetypes.AccountAddress,
	cfg FundConfig,
) (uint64, error) {
	if cfg.Target == 0 {
		cfg.Target = cfg.Amount
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}

	var (
		balance  uint64
		attempts int
	)
	operation := func() error {
		attempts++
		if _, err := f.Fund(ctx, addr, cfg.Amount); err != nil {
			log.Warn("funding attempt failed", zap.Int("attempt", attempts), zap.Error(err))
			return err
		}
		var err error
		balance, err = balances.Balance(ctx, addr)
		if err != nil {
			return err
		}
		if balance < cfg.Target {
			log.Info("balance below target",
				zap.Int("attempt", attempts),
				zap.Uint64("balance", balance),
				zap.Uint64("target", cfg.Target),
			)
			return errBelowTarget
		}
		return nil
	}

	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(cfg.Interval), uint64(cfg.MaxAttempts-1)),
		ctx,
	)
	err := backoff.Retry(operation, b)
	switch {
	case err == nil:
		return balance, nil
	case ctx.Err() != nil:
		return balance, ctx.Err()
	default:
		return balance, fmt.Errorf("%w: %d of %d after %d attempts: %w",
			ErrFundingExhausted, balance, cfg.Target, attempts, err)
	}
}
