// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package faucet funds accounts from a network faucet.
package faucet

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/aptoswap/aptoswap-cli/pkg/constants"
	"github.com/aptoswap/aptoswap-cli/pkg/movetypes"
	"github.com/aptoswap/aptoswap-cli/pkg/node"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

type Faucet interface {
	// Fund mints amount to addr and returns the faucet transaction hashes.
	Fund(ctx context.Context, addr movetypes.AccountAddress, amount uint64) ([]string, error)
}

type TransactionWaiter interface {
	WaitForTransaction(ctx context.Context, hash string) (*node.Transaction, error)
}

type Client struct {
	rest   *resty.Client
	waiter TransactionWaiter
	log    *zap.Logger
}

var _ Faucet = &Client{}

// NewClient returns a client for the faucet at baseURL. When waiter is set,
// Fund returns only after the mint transactions are committed.
func NewClient(baseURL string, waiter TransactionWaiter, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	rest := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(constants.APIRequestTimeout)
	return &Client{rest: rest, waiter: waiter, log: log}
}

func (c *Client) Fund(ctx context.Context, addr movetypes.AccountAddress, amount uint64) ([]string, error) {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"amount":  strconv.FormatUint(amount, 10),
			"address": strings.TrimPrefix(addr.String(), "0x"),
		}).
		Post("/mint")
	if err != nil {
		return nil, fmt.Errorf("faucet request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("faucet returned %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}
	var hashes []string
	if err := json.Unmarshal(resp.Body(), &hashes); err != nil {
		return nil, fmt.Errorf("failed to decode faucet response: %w", err)
	}
	c.log.Info("faucet funded account",
		zap.Stringer("address", addr),
		zap.Uint64("amount", amount),
		zap.Strings("hashes", hashes),
	)
	if c.waiter == nil {
		return hashes, nil
	}
	for _, hash := range hashes {
		hash = ensureHexPrefix(hash)
		tx, err := c.waiter.WaitForTransaction(ctx, hash)
		if err != nil {
			return hashes, fmt.Errorf("faucet transaction %s: %w", hash, err)
		}
		if !tx.Success {
			return hashes, fmt.Errorf("faucet transaction %s failed: %s", hash, tx.VMStatus)
		}
	}
	return hashes, nil
}

func ensureHexPrefix(hash string) string {
	if strings.HasPrefix(hash, "0x") {
		return hash
	}
	return "0x" + hash
}
