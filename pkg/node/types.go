// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package node

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
)

const (
	PendingTransactionType = "pending_transaction"
	UserTransactionType    = "user_transaction"
)

// ErrNotFound matches any *APIError carrying a 404 status.
var ErrNotFound = errors.New("not found")

type LedgerInfo struct {
	ChainID         uint8  `json:"chain_id"`
	Epoch           string `json:"epoch"`
	LedgerVersion   string `json:"ledger_version"`
	LedgerTimestamp string `json:"ledger_timestamp"`
	BlockHeight     string `json:"block_height"`
}

type AccountInfo struct {
	SequenceNumber    uint64 `json:"sequence_number,string"`
	AuthenticationKey string `json:"authentication_key"`
}

type Resource struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type Event struct {
	Version        string          `json:"version"`
	SequenceNumber uint64          `json:"sequence_number,string"`
	Type           string          `json:"type"`
	Data           json.RawMessage `json:"data"`
}

type PendingTransaction struct {
	Hash string `json:"hash"`
}

type Transaction struct {
	Type     string `json:"type"`
	Hash     string `json:"hash"`
	Version  string `json:"version,omitempty"`
	Sender   string `json:"sender,omitempty"`
	Success  bool   `json:"success"`
	VMStatus string `json:"vm_status"`
	GasUsed  string `json:"gas_used,omitempty"`
}

func (t *Transaction) Pending() bool {
	return t.Type == PendingTransactionType
}

// APIError is the decoded body of a non 2xx node response.
type APIError struct {
	StatusCode  int    `json:"-"`
	Message     string `json:"message"`
	ErrorCode   string `json:"error_code"`
	VMErrorCode int    `json:"vm_error_code,omitempty"`
}

func (e *APIError) Error() string {
	if e.ErrorCode == "" {
		return fmt.Sprintf("node returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("node returned %d (%s): %s", e.StatusCode, e.ErrorCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// IsTransient reports whether a request may succeed when retried: 5xx and
// 429 responses and transport failures. Context errors are never transient.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= http.StatusInternalServerError || apiErr.StatusCode == http.StatusTooManyRequests
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
