// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mocks

import (
	"context"

	"github.com/aptoswap/aptoswap-cli/pkg/movetypes"
	"github.com/aptoswap/aptoswap-cli/pkg/node"
	"github.com/stretchr/testify/mock"
)

// NodeClient is a mock implementation of the node API used by the engine,
// the gas resolver and the funding loop.
type NodeClient struct {
	mock.Mock
}

func (m *NodeClient) AccountResource(ctx context.Context, addr movetypes.AccountAddress, resourceType string) (*node.Resource, error) {
	args := m.Called(ctx, addr, resourceType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*node.Resource), args.Error(1)
}

func (m *NodeClient) SequenceNumber(ctx context.Context, addr movetypes.AccountAddress) (uint64, error) {
	args := m.Called(ctx, addr)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *NodeClient) ChainID(ctx context.Context) (uint8, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint8), args.Error(1)
}

func (m *NodeClient) SubmitTransaction(ctx context.Context, signed []byte) (*node.PendingTransaction, error) {
	args := m.Called(ctx, signed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*node.PendingTransaction), args.Error(1)
}

func (m *NodeClient) WaitForTransaction(ctx context.Context, hash string) (*node.Transaction, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*node.Transaction), args.Error(1)
}

func (m *NodeClient) Balance(ctx context.Context, addr movetypes.AccountAddress) (uint64, error) {
	args := m.Called(ctx, addr)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *NodeClient) AccountResources(ctx context.Context, addr movetypes.AccountAddress) ([]node.Resource, error) {
	args := m.Called(ctx, addr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]node.Resource), args.Error(1)
}

func (m *NodeClient) EventsByHandle(ctx context.Context, addr movetypes.AccountAddress, handle string, field string, limit int) ([]node.Event, error) {
	args := m.Called(ctx, addr, handle, field, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]node.Event), args.Error(1)
}
