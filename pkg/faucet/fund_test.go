// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package faucet

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aptoswap/aptoswap-cli/internal/mocks"
	"github.com/aptoswap/aptoswap-cli/pkg/movetypes"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testAccount = movetypes.MustParseAddress("0xabc")

func testConfig() FundConfig {
	return FundConfig{
		Amount:      1_000,
		Target:      1_000,
		MaxAttempts: 5,
		Interval:    time.Millisecond,
	}
}

func TestFundUntilReachesTarget(t *testing.T) {
	require := require.New(t)
	f := &mocks.Faucet{}
	f.On("Fund", mock.Anything, testAccount, uint64(1_000)).Return([]string{"0x1"}, nil)
	balances := &mocks.NodeClient{}
	balances.On("Balance", mock.Anything, testAccount).Return(uint64(400), nil).Twice()
	balances.On("Balance", mock.Anything, testAccount).Return(uint64(1_200), nil).Once()

	balance, err := FundUntil(context.Background(), f, balances, testAccount, testConfig())
	require.NoError(err)
	require.Equal(uint64(1_200), balance)
	f.AssertNumberOfCalls(t, "Fund", 3)
	balances.AssertNumberOfCalls(t, "Balance", 3)
}

func TestFundUntilFirstAttempt(t *testing.T) {
	f := &mocks.Faucet{}
	f.On("Fund", mock.Anything, testAccount, uint64(1_000)).Return([]string{"0x1"}, nil)
	balances := &mocks.NodeClient{}
	balances.On("Balance", mock.Anything, testAccount).Return(uint64(1_000), nil)

	_, err := FundUntil(context.Background(), f, balances, testAccount, testConfig())
	require.NoError(t, err)
	f.AssertNumberOfCalls(t, "Fund", 1)
}

func TestFundUntilExhausted(t *testing.T) {
	require := require.New(t)
	f := &mocks.Faucet{}
	f.On("Fund", mock.Anything, testAccount, uint64(1_000)).Return([]string{"0x1"}, nil)
	balances := &mocks.NodeClient{}
	balances.On("Balance", mock.Anything, testAccount).Return(uint64(10), nil)

	cfg := testConfig()
	cfg.MaxAttempts = 3
	balance, err := FundUntil(context.Background(), f, balances, testAccount, cfg)
	require.ErrorIs(err, ErrFundingExhausted)
	require.Equal(uint64(10), balance)
	f.AssertNumberOfCalls(t, "Fund", 3)
}

func TestFundUntilFaucetErrors(t *testing.T) {
	require := require.New(t)
	f := &mocks.Faucet{}
	f.On("Fund", mock.Anything, testAccount, uint64(1_000)).Return(nil, errors.New("faucet returned 500")).Once()
	f.On("Fund", mock.Anything, testAccount, uint64(1_000)).Return([]string{"0x1"}, nil)
	balances := &mocks.NodeClient{}
	balances.On("Balance", mock.Anything, testAccount).Return(uint64(1_000), nil)

	_, err := FundUntil(context.Background(), f, balances, testAccount, testConfig())
	require.NoError(err)
	f.AssertNumberOfCalls(t, "Fund", 2)
	balances.AssertNumberOfCalls(t, "Balance", 1)
}

func TestFundUntilCanceled(t *testing.T) {
	require := require.New(t)
	f := &mocks.Faucet{}
	f.On("Fund", mock.Anything, testAccount, uint64(1_000)).Return(nil, errors.New("unreachable"))
	balances := &mocks.NodeClient{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := FundUntil(ctx, f, balances, testAccount, testConfig())
	require.ErrorIs(err, context.Canceled)
	f.AssertNumberOfCalls(t, "Fund", 1)
}
