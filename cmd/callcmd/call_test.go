// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package callcmd

import (
	"context"
	"testing"

	"github.com/aptoswap/aptoswap-cli/internal/mocks"
	"github.com/aptoswap/aptoswap-cli/internal/testutils"
	"github.com/aptoswap/aptoswap-cli/pkg/engine"
	"github.com/aptoswap/aptoswap-cli/pkg/key"
	"github.com/aptoswap/aptoswap-cli/pkg/moveargs"
	"github.com/aptoswap/aptoswap-cli/pkg/node"
	"github.com/aptoswap/aptoswap-cli/pkg/payload"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupEngine(t *testing.T, confirmed *node.Transaction) (*engine.Engine, *key.SoftKey, *mocks.NodeClient) {
	k, err := key.NewSoft()
	require.NoError(t, err)
	client := &mocks.NodeClient{}
	client.On("SequenceNumber", mock.Anything, k.Address()).Return(uint64(0), nil)
	client.On("ChainID", mock.Anything).Return(uint8(4), nil)
	client.On("SubmitTransaction", mock.Anything, mock.Anything).Return(&node.PendingTransaction{}, nil)
	client.On("WaitForTransaction", mock.Anything, mock.Anything).Return(confirmed, nil)
	return engine.New(client), k, client
}

func initializeCall() payload.CallDescriptor {
	return payload.CallDescriptor{
		Function:  "0xabc::pool::initialize",
		Arguments: []moveargs.Arg{moveargs.U8{Value: 6}},
	}
}

func TestRunContinuesOnFailure(t *testing.T) {
	require := testutils.SetupTest(t)
	eng, k, client := setupEngine(t, &node.Transaction{Success: false, VMStatus: "Move abort"})

	res, err := Run(context.Background(), eng, k, initializeCall(), CallOptions(true, 20_000, 100)...)
	require.NoError(err)
	require.Equal(engine.Aborted, res.Outcome)
	require.ErrorIs(res.Err, engine.ErrOnChainAbort)
	client.AssertNumberOfCalls(t, "SubmitTransaction", 1)
}

func TestRunHaltsOnFailure(t *testing.T) {
	require := testutils.SetupTest(t)
	eng, k, _ := setupEngine(t, &node.Transaction{Success: false, VMStatus: "Move abort"})

	res, err := Run(context.Background(), eng, k, initializeCall(), CallOptions(false, 20_000, 100)...)
	var fatal *engine.FatalError
	require.ErrorAs(err, &fatal)
	require.Equal(res.Hash, fatal.Result.Hash)
}

func TestRunSuccess(t *testing.T) {
	require := testutils.SetupTest(t)
	eng, k, client := setupEngine(t, &node.Transaction{Success: true})

	res, err := Run(context.Background(), eng, k, initializeCall(), CallOptions(false, 20_000, 100)...)
	require.NoError(err)
	require.True(res.OK())
	// the explicit gas price skips the schedule lookup
	client.AssertNotCalled(t, "AccountResource", mock.Anything, mock.Anything, mock.Anything)
}

func TestRunRejectsBadFunction(t *testing.T) {
	require := testutils.SetupTest(t)
	eng, k, client := setupEngine(t, &node.Transaction{Success: true})

	_, err := Run(context.Background(), eng, k, payload.CallDescriptor{Function: "initialize"}, CallOptions(false, 20_000, 100)...)
	require.ErrorIs(err, payload.ErrInvalidFunction)
	client.AssertNotCalled(t, "SubmitTransaction", mock.Anything, mock.Anything)
}
