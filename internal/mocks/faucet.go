// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mocks

import (
	"context"

	"github.com/aptoswap/aptoswap-cli/pkg/movetypes"
	"github.com/stretchr/testify/mock"
)

// Faucet is a mock implementation of faucet.Faucet
type Faucet struct {
	mock.Mock
}

func (m *Faucet) Fund(ctx context.Context, addr movetypes.AccountAddress, amount uint64) ([]string, error) {
	args := m.Called(ctx, addr, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
