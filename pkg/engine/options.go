// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package engine

import (
	"time"

	"github.com/aptoswap/aptoswap-cli/pkg/constants"
	"github.com/aptoswap/aptoswap-cli/pkg/gas"

	"go.uber.org/zap"
)

type Option func(*Engine)

func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithGasPolicy shares a gas cache between engines talking to the same
// network.
func WithGasPolicy(p *gas.Policy) Option {
	return func(e *Engine) {
		e.gas = p
	}
}

func WithConfirmationTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.confirmationTimeout = d
	}
}

// WithSpinner shows a spinner to the user while waiting for confirmation.
func WithSpinner(show bool) Option {
	return func(e *Engine) {
		e.spinner = show
	}
}

type callOptions struct {
	maxGasAmount  uint64
	gasUnitPrice  uint64
	expiration    time.Duration
	haltOnFailure bool
}

func defaultCallOptions() callOptions {
	return callOptions{
		maxGasAmount:  constants.DefaultMaxGasAmount,
		expiration:    constants.DefaultExpiration,
		haltOnFailure: true,
	}
}

func defaultPublishOptions() callOptions {
	return callOptions{
		maxGasAmount:  constants.DefaultPublishMaxGasAmount,
		expiration:    constants.DefaultPublishExpiration,
		haltOnFailure: true,
	}
}

type CallOption func(*callOptions)

func WithMaxGasAmount(amount uint64) CallOption {
	return func(o *callOptions) {
		o.maxGasAmount = amount
	}
}

// WithGasUnitPrice skips the gas schedule lookup.
func WithGasUnitPrice(price uint64) CallOption {
	return func(o *callOptions) {
		o.gasUnitPrice = price
	}
}

// WithExpiration sets how long after the local clock the transaction stays
// valid.
func WithExpiration(d time.Duration) CallOption {
	return func(o *callOptions) {
		o.expiration = d
	}
}

// HaltOnFailure controls whether an abort or timeout is returned as a
// *FatalError. Defaults to true.
func HaltOnFailure(halt bool) CallOption {
	return func(o *callOptions) {
		o.haltOnFailure = halt
	}
}
