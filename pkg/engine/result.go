// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package engine

import (
	"errors"
	"fmt"
)

var (
	ErrSubmission          = errors.New("transaction rejected by node")
	ErrConfirmationTimeout = errors.New("transaction not confirmed in time")
	ErrOnChainAbort        = errors.New("transaction aborted on chain")
	ErrConfirmation        = errors.New("transaction status unavailable")
)

type Outcome int

const (
	Success Outcome = iota
	Aborted
	TimedOut
	// Unconfirmed means the wait stopped before the timeout, e.g. on a node
	// error or cancellation. The transaction may still commit.
	Unconfirmed
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Aborted:
		return "aborted"
	case TimedOut:
		return "timed out"
	case Unconfirmed:
		return "unconfirmed"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// State is a step of the single-shot submission lifecycle.
type State string

const (
	Built     State = "built"
	Signed    State = "signed"
	Submitted State = "submitted"
	Confirmed State = "confirmed"
	Failed    State = "aborted"
	Expired   State = "timed out"
	Unknown   State = "unconfirmed"
)

// Result describes a submitted transaction. Err is set for every outcome
// other than Success.
type Result struct {
	Hash     string
	Outcome  Outcome
	State    State
	History  []State
	VMStatus string
	GasUsed  string
	Err      error
}

func (r *Result) OK() bool {
	return r.Outcome == Success
}

func (r *Result) transition(s State) {
	r.State = s
	r.History = append(r.History, s)
}

// FatalError is returned alongside a Result when a halting call fails after
// submission. Callers are expected to stop processing.
type FatalError struct {
	Result *Result
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("transaction %s %s: %v", e.Result.Hash, e.Result.Outcome, e.Result.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Result.Err
}
