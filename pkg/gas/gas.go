// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package gas resolves the network's minimum gas unit price from the on-chain
// gas schedule.
package gas

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"strconv"
	"sync"

	"github.com/aptoswap/aptoswap-cli/pkg/movetypes"
	"github.com/aptoswap/aptoswap-cli/pkg/node"
)

const (
	ScheduleResource   = "0x1::gas_schedule::GasScheduleV2"
	MinGasUnitPriceKey = "txn.min_price_per_gas_unit"
)

var ErrGasScheduleUnavailable = errors.New("gas schedule unavailable")

type ResourceReader interface {
	AccountResource(ctx context.Context, addr movetypes.AccountAddress, resourceType string) (*node.Resource, error)
}

// Policy caches the gas schedule after the first successful read. Failed
// reads are not cached.
type Policy struct {
	mu              sync.Mutex
	resolved        bool
	minGasUnitPrice uint64
	entries         map[string]string
}

func NewPolicy() *Policy {
	return &Policy{}
}

// Resolve returns the minimum gas unit price, reading the schedule from
// reader on first use.
func (p *Policy) Resolve(ctx context.Context, reader ResourceReader) (uint64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.resolved {
		return p.minGasUnitPrice, nil
	}
	entries, err := fetchEntries(ctx, reader)
	if err != nil {
		return 0, err
	}
	raw, ok := entries[MinGasUnitPriceKey]
	if !ok {
		return 0, fmt.Errorf("%w: %s missing", ErrGasScheduleUnavailable, MinGasUnitPriceKey)
	}
	price, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a u64", ErrGasScheduleUnavailable, MinGasUnitPriceKey, raw)
	}
	p.entries = entries
	p.minGasUnitPrice = price
	p.resolved = true
	return price, nil
}

// Entries returns a copy of the cached schedule, or nil before the first
// successful Resolve.
func (p *Policy) Entries() map[string]string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.resolved {
		return nil
	}
	return maps.Clone(p.entries)
}

type scheduleEntry struct {
	Key string          `json:"key"`
	Val json.RawMessage `json:"val"`
}

func fetchEntries(ctx context.Context, reader ResourceReader) (map[string]string, error) {
	res, err := reader.AccountResource(ctx, movetypes.CoreAddress, ScheduleResource)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGasScheduleUnavailable, err)
	}
	var schedule struct {
		Entries []scheduleEntry `json:"entries"`
	}
	if err := json.Unmarshal(res.Data, &schedule); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGasScheduleUnavailable, err)
	}
	entries := make(map[string]string, len(schedule.Entries))
	for _, e := range schedule.Entries {
		entries[e.Key] = scalar(e.Val)
	}
	return entries, nil
}

// scalar renders a JSON string or number without quotes.
func scalar(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
