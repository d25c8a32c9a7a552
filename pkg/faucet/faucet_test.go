// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package faucet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aptoswap/aptoswap-cli/internal/mocks"
	"github.com/aptoswap/aptoswap-cli/pkg/node"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newFaucetServer(t *testing.T, status int, body any) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/mint", r.URL.Path)
		require.Equal(t, "1000", r.URL.Query().Get("amount"))
		require.Equal(t, strings.TrimPrefix(testAccount.String(), "0x"), r.URL.Query().Get("address"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		require.NoError(t, json.NewEncoder(w).Encode(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestClientFund(t *testing.T) {
	require := require.New(t)
	server := newFaucetServer(t, http.StatusOK, []string{"feed"})
	waiter := &mocks.NodeClient{}
	waiter.On("WaitForTransaction", mock.Anything, "0xfeed").Return(&node.Transaction{Success: true}, nil)

	hashes, err := NewClient(server.URL, waiter, nil).Fund(context.Background(), testAccount, 1_000)
	require.NoError(err)
	require.Equal([]string{"feed"}, hashes)
	waiter.AssertExpectations(t)
}

func TestClientFundWithoutWaiter(t *testing.T) {
	server := newFaucetServer(t, http.StatusOK, []string{"0xfeed"})
	hashes, err := NewClient(server.URL+"/", nil, nil).Fund(context.Background(), testAccount, 1_000)
	require.NoError(t, err)
	require.Equal(t, []string{"0xfeed"}, hashes)
}

func TestClientFundRejected(t *testing.T) {
	server := newFaucetServer(t, http.StatusInternalServerError, map[string]string{"message": "faucet drained"})
	_, err := NewClient(server.URL, nil, nil).Fund(context.Background(), testAccount, 1_000)
	require.ErrorContains(t, err, "faucet drained")
}

func TestClientFundFailedMint(t *testing.T) {
	server := newFaucetServer(t, http.StatusOK, []string{"0xfeed"})
	waiter := &mocks.NodeClient{}
	waiter.On("WaitForTransaction", mock.Anything, "0xfeed").Return(&node.Transaction{Success: false, VMStatus: "Out of gas"}, nil)
	_, err := NewClient(server.URL, waiter, nil).Fund(context.Background(), testAccount, 1_000)
	require.ErrorContains(t, err, "Out of gas")
}
