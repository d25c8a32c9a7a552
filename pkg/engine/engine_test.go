// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package engine

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aptoswap/aptoswap-cli/internal/mocks"
	"github.com/aptoswap/aptoswap-cli/pkg/gas"
	"github.com/aptoswap/aptoswap-cli/pkg/key"
	"github.com/aptoswap/aptoswap-cli/pkg/moveargs"
	"github.com/aptoswap/aptoswap-cli/pkg/movetypes"
	"github.com/aptoswap/aptoswap-cli/pkg/node"
	"github.com/aptoswap/aptoswap-cli/pkg/payload"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Unix(1_700_000_000, 0)

func initializeCall() payload.CallDescriptor {
	return payload.CallDescriptor{
		Function:  "0xabc::pool::initialize",
		Arguments: []moveargs.Arg{moveargs.U8{Value: 6}},
	}
}

type fixture struct {
	client    *mocks.NodeClient
	signer    *key.SoftKey
	engine    *Engine
	submitted [][]byte
}

func newFixture(t *testing.T) *fixture {
	k, err := key.NewSoft()
	require.NoError(t, err)
	f := &fixture{client: &mocks.NodeClient{}, signer: k}
	f.engine = New(f.client, WithClock(func() time.Time { return testNow }))
	f.client.On("SequenceNumber", mock.Anything, k.Address()).Return(uint64(3), nil)
	f.client.On("ChainID", mock.Anything).Return(uint8(4), nil)
	f.client.On("AccountResource", mock.Anything, movetypes.CoreAddress, gas.ScheduleResource).Return(&node.Resource{
		Type: gas.ScheduleResource,
		Data: json.RawMessage(`{"entries":[{"key":"txn.min_price_per_gas_unit","val":"100"}]}`),
	}, nil)
	return f
}

func (f *fixture) acceptSubmissions() {
	f.client.On("SubmitTransaction", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			f.submitted = append(f.submitted, args.Get(1).([]byte))
		}).
		Return(&node.PendingTransaction{}, nil)
}

func (f *fixture) confirmWith(tx *node.Transaction, err error) {
	f.client.On("WaitForTransaction", mock.Anything, mock.Anything).Return(tx, err)
}

// tail returns max gas, gas price, expiration and chain id of a signed body.
func tail(t *testing.T, body []byte) (uint64, uint64, uint64, uint8) {
	// ed25519 authenticator: variant, 32 byte key, 64 byte signature
	raw := body[:len(body)-(1+1+32+1+64)]
	require.GreaterOrEqual(t, len(raw), 25)
	fields := raw[len(raw)-25:]
	return binary.LittleEndian.Uint64(fields[0:8]),
		binary.LittleEndian.Uint64(fields[8:16]),
		binary.LittleEndian.Uint64(fields[16:24]),
		fields[24]
}

func TestExecuteSuccess(t *testing.T) {
	require := require.New(t)
	f := newFixture(t)
	f.acceptSubmissions()
	f.confirmWith(&node.Transaction{Type: node.UserTransactionType, Success: true, VMStatus: "Executed successfully"}, nil)

	res, err := f.engine.Execute(context.Background(), f.signer, initializeCall())
	require.NoError(err)
	require.True(res.OK())
	require.Equal(Success, res.Outcome)
	require.Equal([]State{Built, Signed, Submitted, Confirmed}, res.History)
	require.Len(res.Hash, 66)
	f.client.AssertNumberOfCalls(t, "SubmitTransaction", 1)
	f.client.AssertCalled(t, "WaitForTransaction", mock.Anything, res.Hash)

	maxGas, price, expiration, chainID := tail(t, f.submitted[0])
	require.Equal(uint64(20_000), maxGas)
	require.Equal(uint64(100), price)
	require.Equal(uint64(testNow.Unix()+50), expiration)
	require.Equal(uint8(4), chainID)
}

func TestExecuteOverrides(t *testing.T) {
	require := require.New(t)
	f := newFixture(t)
	f.acceptSubmissions()
	f.confirmWith(&node.Transaction{Success: true}, nil)

	_, err := f.engine.Execute(context.Background(), f.signer, initializeCall(),
		WithMaxGasAmount(5_000),
		WithGasUnitPrice(150),
		WithExpiration(10*time.Second),
	)
	require.NoError(err)
	f.client.AssertNotCalled(t, "AccountResource", mock.Anything, mock.Anything, mock.Anything)

	maxGas, price, expiration, _ := tail(t, f.submitted[0])
	require.Equal(uint64(5_000), maxGas)
	require.Equal(uint64(150), price)
	require.Equal(uint64(testNow.Unix()+10), expiration)
}

func TestExecuteAbortNotHalting(t *testing.T) {
	require := require.New(t)
	f := newFixture(t)
	f.acceptSubmissions()
	f.confirmWith(&node.Transaction{Success: false, VMStatus: "Move abort in 0xabc::pool: 0x7"}, nil)

	res, err := f.engine.Execute(context.Background(), f.signer, initializeCall(), HaltOnFailure(false))
	require.NoError(err)
	require.Equal(Aborted, res.Outcome)
	require.NotEmpty(res.Hash)
	require.ErrorIs(res.Err, ErrOnChainAbort)
	require.Equal(Failed, res.State)
	f.client.AssertNumberOfCalls(t, "SubmitTransaction", 1)
}

func TestExecuteAbortHalting(t *testing.T) {
	require := require.New(t)
	f := newFixture(t)
	f.acceptSubmissions()
	f.confirmWith(&node.Transaction{Success: false, VMStatus: "Out of gas"}, nil)

	res, err := f.engine.Execute(context.Background(), f.signer, initializeCall())
	require.Error(err)
	var fatal *FatalError
	require.ErrorAs(err, &fatal)
	require.Same(res, fatal.Result)
	require.ErrorIs(err, ErrOnChainAbort)
	require.Equal(Aborted, res.Outcome)
}

func TestExecuteUnconfirmed(t *testing.T) {
	require := require.New(t)
	f := newFixture(t)
	f.acceptSubmissions()
	nodeErr := &node.APIError{StatusCode: 400, Message: "bad hash"}
	f.confirmWith(nil, nodeErr)

	res, err := f.engine.Execute(context.Background(), f.signer, initializeCall())
	var fatal *FatalError
	require.ErrorAs(err, &fatal)
	require.Equal(Unconfirmed, res.Outcome)
	require.Equal(Unknown, res.State)
	require.ErrorIs(res.Err, ErrConfirmation)
	require.NotErrorIs(res.Err, ErrConfirmationTimeout)
	require.ErrorIs(res.Err, nodeErr)
}

func TestExecuteTimeout(t *testing.T) {
	require := require.New(t)
	f := newFixture(t)
	f.acceptSubmissions()
	f.confirmWith(nil, context.DeadlineExceeded)

	res, err := f.engine.Execute(context.Background(), f.signer, initializeCall(), HaltOnFailure(false))
	require.NoError(err)
	require.Equal(TimedOut, res.Outcome)
	require.Equal(Expired, res.State)
	require.ErrorIs(res.Err, ErrConfirmationTimeout)
	require.ErrorIs(res.Err, context.DeadlineExceeded)
	f.client.AssertNumberOfCalls(t, "SubmitTransaction", 1)
}

func TestExecuteSubmissionRejected(t *testing.T) {
	require := require.New(t)
	f := newFixture(t)
	f.client.On("SubmitTransaction", mock.Anything, mock.Anything).
		Return(nil, &node.APIError{StatusCode: 400, Message: "SEQUENCE_NUMBER_TOO_OLD"})

	res, err := f.engine.Execute(context.Background(), f.signer, initializeCall(), HaltOnFailure(false))
	require.Nil(res)
	require.ErrorIs(err, ErrSubmission)
	f.client.AssertNotCalled(t, "WaitForTransaction", mock.Anything, mock.Anything)
}

func TestExecuteCompileErrorBeforeNetwork(t *testing.T) {
	require := require.New(t)
	client := &mocks.NodeClient{}
	k, err := key.NewSoft()
	require.NoError(err)
	e := New(client)

	_, err = e.Execute(context.Background(), k, payload.CallDescriptor{Function: "initialize"})
	require.ErrorIs(err, payload.ErrInvalidFunction)
	_, err = e.Execute(context.Background(), k, payload.CallDescriptor{
		Function:      "0xabc::pool::create_pool",
		TypeArguments: []string{"0x1::aptos_coin::AptosCoin<"},
	})
	require.ErrorIs(err, movetypes.ErrTypeTagParse)
	require.Empty(client.Calls)
}

func TestExecuteGasUnavailable(t *testing.T) {
	require := require.New(t)
	client := &mocks.NodeClient{}
	client.On("AccountResource", mock.Anything, movetypes.CoreAddress, gas.ScheduleResource).
		Return(nil, errors.New("connection refused"))
	k, err := key.NewSoft()
	require.NoError(err)

	_, err = New(client).Execute(context.Background(), k, initializeCall())
	require.ErrorIs(err, gas.ErrGasScheduleUnavailable)
	client.AssertNotCalled(t, "SubmitTransaction", mock.Anything, mock.Anything)
}

func TestGasScheduleReadOnce(t *testing.T) {
	require := require.New(t)
	f := newFixture(t)
	f.acceptSubmissions()
	f.confirmWith(&node.Transaction{Success: true}, nil)

	for range 3 {
		_, err := f.engine.Execute(context.Background(), f.signer, initializeCall())
		require.NoError(err)
	}
	f.client.AssertNumberOfCalls(t, "AccountResource", 1)
	f.client.AssertNumberOfCalls(t, "SequenceNumber", 3)
	f.client.AssertNumberOfCalls(t, "SubmitTransaction", 3)
}

func TestPublishAlwaysHalts(t *testing.T) {
	require := require.New(t)
	f := newFixture(t)
	f.acceptSubmissions()
	f.confirmWith(&node.Transaction{Success: false, VMStatus: "LINKER_ERROR"}, nil)

	res, err := f.engine.Publish(context.Background(), f.signer, []byte{1, 2}, [][]byte{{0xa1, 0x1c}}, HaltOnFailure(false))
	var fatal *FatalError
	require.ErrorAs(err, &fatal)
	require.Equal(Aborted, res.Outcome)

	maxGas, _, expiration, _ := tail(t, f.submitted[0])
	require.Equal(uint64(2_000_000), maxGas)
	require.Equal(uint64(testNow.Unix()+80), expiration)
}

func TestPublishEmptyPackage(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.Publish(context.Background(), f.signer, []byte{1}, nil)
	require.ErrorIs(t, err, payload.ErrEmptyPackage)
	f.client.AssertNotCalled(t, "SubmitTransaction", mock.Anything, mock.Anything)
}
