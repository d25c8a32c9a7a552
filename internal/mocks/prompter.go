// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mocks

import (
	"github.com/aptoswap/aptoswap-cli/pkg/movetypes"
	"github.com/stretchr/testify/mock"
)

// Prompter is a mock implementation of prompts.Prompter
type Prompter struct {
	mock.Mock
}

func (m *Prompter) CaptureNoYes(promptStr string) (bool, error) {
	args := m.Called(promptStr)
	return args.Bool(0), args.Error(1)
}

func (m *Prompter) CaptureAddress(promptStr string) (movetypes.AccountAddress, error) {
	args := m.Called(promptStr)
	return args.Get(0).(movetypes.AccountAddress), args.Error(1)
}

func (m *Prompter) CapturePassword(promptStr string) (string, error) {
	args := m.Called(promptStr)
	return args.String(0), args.Error(1)
}

func (m *Prompter) CaptureNewPassword(promptStr string) (string, error) {
	args := m.Called(promptStr)
	return args.String(0), args.Error(1)
}
