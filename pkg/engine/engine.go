// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package engine turns call descriptors into signed transactions, submits
// them and drives each one to a terminal status.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aptoswap/aptoswap-cli/pkg/constants"
	"github.com/aptoswap/aptoswap-cli/pkg/gas"
	"github.com/aptoswap/aptoswap-cli/pkg/key"
	"github.com/aptoswap/aptoswap-cli/pkg/movetypes"
	"github.com/aptoswap/aptoswap-cli/pkg/node"
	"github.com/aptoswap/aptoswap-cli/pkg/payload"
	"github.com/aptoswap/aptoswap-cli/pkg/txn"
	"github.com/aptoswap/aptoswap-cli/pkg/ux"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// NodeClient is the part of the node API the engine needs.
type NodeClient interface {
	gas.ResourceReader
	SequenceNumber(ctx context.Context, addr movetypes.AccountAddress) (uint64, error)
	ChainID(ctx context.Context) (uint8, error)
	SubmitTransaction(ctx context.Context, signed []byte) (*node.PendingTransaction, error)
	WaitForTransaction(ctx context.Context, hash string) (*node.Transaction, error)
}

type Engine struct {
	client              NodeClient
	gas                 *gas.Policy
	now                 func() time.Time
	log                 *zap.Logger
	confirmationTimeout time.Duration
	spinner             bool
}

func New(client NodeClient, opts ...Option) *Engine {
	e := &Engine{
		client:              client,
		gas:                 gas.NewPolicy(),
		now:                 time.Now,
		log:                 zap.NewNop(),
		confirmationTimeout: constants.DefaultConfirmationTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GasPolicy returns the engine's gas cache.
func (e *Engine) GasPolicy() *gas.Policy {
	return e.gas
}

// Execute compiles desc, signs it with signer and waits for the result.
//
// Errors before submission are returned with a nil Result. After submission a
// Result is always returned; an abort or timeout is returned as a
// *FatalError unless HaltOnFailure(false) was given, in which case it is only
// recorded in Result.Err.
func (e *Engine) Execute(ctx context.Context, signer key.Key, desc payload.CallDescriptor, opts ...CallOption) (*Result, error) {
	o := defaultCallOptions()
	for _, opt := range opts {
		opt(&o)
	}
	// compile before touching the network
	p, err := payload.Compile(desc)
	if err != nil {
		return nil, err
	}
	e.log.Info("executing call", zap.String("call", desc.String()), zap.Stringer("sender", signer.Address()))
	return e.run(ctx, signer, p, o)
}

// Publish submits a package publication. Publication failures always halt.
func (e *Engine) Publish(ctx context.Context, signer key.Key, metadata []byte, modules [][]byte, opts ...CallOption) (*Result, error) {
	o := defaultPublishOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o.haltOnFailure = true
	p, err := payload.NewPublishPackage(metadata, modules)
	if err != nil {
		return nil, err
	}
	e.log.Info("publishing package",
		zap.Int("modules", len(modules)),
		zap.Int("metadataBytes", len(metadata)),
		zap.Stringer("sender", signer.Address()),
	)
	return e.run(ctx, signer, p, o)
}

func (e *Engine) run(ctx context.Context, signer key.Key, p txn.Payload, o callOptions) (*Result, error) {
	price := o.gasUnitPrice
	if price == 0 {
		var err error
		if price, err = e.gas.Resolve(ctx, e.client); err != nil {
			return nil, err
		}
	}

	var (
		seq     uint64
		chainID uint8
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		seq, err = e.client.SequenceNumber(gctx, signer.Address())
		if err != nil {
			return fmt.Errorf("failed to read sequence number of %s: %w", signer.Address(), err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		chainID, err = e.client.ChainID(gctx)
		if err != nil {
			return fmt.Errorf("failed to read chain id: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{}
	raw := &txn.RawTransaction{
		Sender:                  signer.Address(),
		SequenceNumber:          seq,
		Payload:                 p,
		MaxGasAmount:            o.maxGasAmount,
		GasUnitPrice:            price,
		ExpirationTimestampSecs: uint64(e.now().Add(o.expiration).Unix()),
		ChainID:                 chainID,
	}
	e.transition(res, Built)

	signed, err := txn.Sign(raw, signer)
	if err != nil {
		return nil, err
	}
	body, err := signed.MarshalBCS()
	if err != nil {
		return nil, err
	}
	if res.Hash, err = signed.Hash(); err != nil {
		return nil, err
	}
	e.transition(res, Signed)

	pending, err := e.client.SubmitTransaction(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSubmission, p, err)
	}
	if pending.Hash != "" && pending.Hash != res.Hash {
		e.log.Warn("node reported a different hash",
			zap.String("local", res.Hash),
			zap.String("node", pending.Hash),
		)
		res.Hash = pending.Hash
	}
	e.transition(res, Submitted)

	e.confirm(ctx, res)
	if res.OK() {
		return res, nil
	}
	if o.haltOnFailure {
		e.log.Error("transaction failed", zap.String("hash", res.Hash), zap.Error(res.Err))
		return res, &FatalError{Result: res}
	}
	e.log.Warn("transaction failed, continuing", zap.String("hash", res.Hash), zap.Error(res.Err))
	return res, nil
}

func (e *Engine) confirm(ctx context.Context, res *Result) {
	waitCtx, cancel := context.WithTimeout(ctx, e.confirmationTimeout)
	defer cancel()

	var sp *ux.WaitSpinner
	if e.spinner {
		sp = ux.StartWaitSpinner("Waiting for %s", res.Hash)
	}

	tx, err := e.client.WaitForTransaction(waitCtx, res.Hash)
	switch {
	case err != nil && errors.Is(err, context.DeadlineExceeded):
		res.Outcome = TimedOut
		res.Err = fmt.Errorf("%w: %s after %s: %w", ErrConfirmationTimeout, res.Hash, e.confirmationTimeout, err)
		e.transition(res, Expired)
	case err != nil:
		res.Outcome = Unconfirmed
		res.Err = fmt.Errorf("%w: %s: %w", ErrConfirmation, res.Hash, err)
		e.transition(res, Unknown)
	case !tx.Success:
		res.Outcome = Aborted
		res.VMStatus = tx.VMStatus
		res.GasUsed = tx.GasUsed
		res.Err = fmt.Errorf("%w: %s: %s", ErrOnChainAbort, res.Hash, tx.VMStatus)
		e.transition(res, Failed)
	default:
		res.Outcome = Success
		res.VMStatus = tx.VMStatus
		res.GasUsed = tx.GasUsed
		e.transition(res, Confirmed)
	}
	if sp == nil {
		return
	}
	if res.Err != nil {
		sp.Fail(res.Err)
	} else {
		sp.Complete()
	}
}

func (e *Engine) transition(res *Result, s State) {
	res.transition(s)
	e.log.Debug("transaction state", zap.String("hash", res.Hash), zap.String("state", string(s)))
}
