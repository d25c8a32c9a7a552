// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package node is a REST client for an Aptos fullnode.
package node

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aptoswap/aptoswap-cli/pkg/constants"
	"github.com/aptoswap/aptoswap-cli/pkg/movetypes"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const signedTransactionContentType = "application/x.aptos.signed_transaction+bcs"

type Client struct {
	rest         *resty.Client
	limiter      *rate.Limiter
	log          *zap.Logger
	pollInterval time.Duration
}

// NewClient returns a client for the node API rooted at baseURL, e.g.
// http://127.0.0.1:8080/v1. A nil limiter gets the default request rate.
func NewClient(baseURL string, limiter *rate.Limiter, log *zap.Logger) *Client {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Limit(constants.NodeRequestsPerSecond), constants.NodeRequestBurst)
	}
	if log == nil {
		log = zap.NewNop()
	}
	rest := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(constants.APIRequestTimeout).
		SetHeader("Accept", "application/json")
	return &Client{
		rest:         rest,
		limiter:      limiter,
		log:          log,
		pollInterval: constants.ConfirmationPollInterval,
	}
}

func (c *Client) SetPollInterval(d time.Duration) {
	c.pollInterval = d
}

func (c *Client) BaseURL() string {
	return c.rest.BaseURL
}

func (c *Client) LedgerInfo(ctx context.Context) (*LedgerInfo, error) {
	req, err := c.newRequest(ctx)
	if err != nil {
		return nil, err
	}
	info := &LedgerInfo{}
	if err := c.send(req, http.MethodGet, "/", info); err != nil {
		return nil, err
	}
	return info, nil
}

func (c *Client) ChainID(ctx context.Context) (uint8, error) {
	info, err := c.LedgerInfo(ctx)
	if err != nil {
		return 0, err
	}
	return info.ChainID, nil
}

func (c *Client) Account(ctx context.Context, addr movetypes.AccountAddress) (*AccountInfo, error) {
	req, err := c.newRequest(ctx)
	if err != nil {
		return nil, err
	}
	req.SetPathParam("address", addr.String())
	info := &AccountInfo{}
	if err := c.send(req, http.MethodGet, "/accounts/{address}", info); err != nil {
		return nil, err
	}
	return info, nil
}

func (c *Client) SequenceNumber(ctx context.Context, addr movetypes.AccountAddress) (uint64, error) {
	info, err := c.Account(ctx, addr)
	if err != nil {
		return 0, err
	}
	return info.SequenceNumber, nil
}

func (c *Client) AccountResource(ctx context.Context, addr movetypes.AccountAddress, resourceType string) (*Resource, error) {
	req, err := c.newRequest(ctx)
	if err != nil {
		return nil, err
	}
	req.SetPathParams(map[string]string{
		"address": addr.String(),
		"type":    resourceType,
	})
	res := &Resource{}
	if err := c.send(req, http.MethodGet, "/accounts/{address}/resource/{type}", res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) AccountResources(ctx context.Context, addr movetypes.AccountAddress) ([]Resource, error) {
	req, err := c.newRequest(ctx)
	if err != nil {
		return nil, err
	}
	req.SetPathParam("address", addr.String())
	var res []Resource
	if err := c.send(req, http.MethodGet, "/accounts/{address}/resources", &res); err != nil {
		return nil, err
	}
	return res, nil
}

// EventsByHandle lists events of the event handle stored in field of the
// resource handle held by addr. A zero limit leaves the node default.
func (c *Client) EventsByHandle(
	ctx context.Context,
	addr movetypes.AccountAddress,
	handle string,
	field string,
	limit int,
) ([]Event, error) {
	req, err := c.newRequest(ctx)
	if err != nil {
		return nil, err
	}
	req.SetPathParams(map[string]string{
		"address": addr.String(),
		"handle":  handle,
		"field":   field,
	})
	if limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(limit))
	}
	var events []Event
	if err := c.send(req, http.MethodGet, "/accounts/{address}/events/{handle}/{field}", &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Balance returns the AptosCoin balance of addr. Accounts without a coin
// store hold nothing.
func (c *Client) Balance(ctx context.Context, addr movetypes.AccountAddress) (uint64, error) {
	res, err := c.AccountResource(ctx, addr, constants.CoinStoreResource)
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var store struct {
		Coin struct {
			Value uint64 `json:"value,string"`
		} `json:"coin"`
	}
	if err := json.Unmarshal(res.Data, &store); err != nil {
		return 0, fmt.Errorf("failed to decode coin store of %s: %w", addr, err)
	}
	return store.Coin.Value, nil
}

// SubmitTransaction posts a BCS encoded signed transaction.
func (c *Client) SubmitTransaction(ctx context.Context, signed []byte) (*PendingTransaction, error) {
	req, err := c.newRequest(ctx)
	if err != nil {
		return nil, err
	}
	req.SetHeader("Content-Type", signedTransactionContentType).SetBody(signed)
	pending := &PendingTransaction{}
	if err := c.send(req, http.MethodPost, "/transactions", pending); err != nil {
		return nil, err
	}
	c.log.Debug("transaction submitted", zap.String("hash", pending.Hash))
	return pending, nil
}

func (c *Client) TransactionByHash(ctx context.Context, hash string) (*Transaction, error) {
	req, err := c.newRequest(ctx)
	if err != nil {
		return nil, err
	}
	req.SetPathParam("hash", hash)
	tx := &Transaction{}
	if err := c.send(req, http.MethodGet, "/transactions/by_hash/{hash}", tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// WaitForTransaction polls hash until the node reports it committed. Unknown
// and pending hashes, as well as transient node failures, are polled again.
// ctx bounds the wait.
func (c *Client) WaitForTransaction(ctx context.Context, hash string) (*Transaction, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()
	for {
		tx, err := c.TransactionByHash(ctx, hash)
		switch {
		case err == nil && !tx.Pending():
			return tx, nil
		case IsTransient(err):
			c.log.Debug("transaction lookup failed, polling again", zap.String("hash", hash), zap.Error(err))
		case err != nil && !errors.Is(err, ErrNotFound):
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("transaction %s still pending: %w", hash, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (c *Client) newRequest(ctx context.Context) (*resty.Request, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", context.DeadlineExceeded, err)
	}
	return c.rest.R().SetContext(ctx), nil
}

func (c *Client) send(req *resty.Request, method string, path string, out any) error {
	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	c.log.Debug("node request",
		zap.String("method", method),
		zap.String("url", resp.Request.URL),
		zap.Int("status", resp.StatusCode()),
	)
	if resp.IsError() {
		apiErr := &APIError{}
		if err := json.Unmarshal(resp.Body(), apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(resp.Body()))
		}
		apiErr.StatusCode = resp.StatusCode()
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
