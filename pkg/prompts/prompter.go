// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package prompts

import (
	"errors"

	"github.com/aptoswap/aptoswap-cli/pkg/movetypes"

	"github.com/manifoldco/promptui"
)

const (
	Yes = "Yes"
	No  = "No"
)

var ErrPasswordMismatch = errors.New("passwords do not match")

// Prompter asks the user for input. Commands take it from the application so
// tests can replace it.
type Prompter interface {
	CaptureNoYes(promptStr string) (bool, error)
	CaptureAddress(promptStr string) (movetypes.AccountAddress, error)
	CapturePassword(promptStr string) (string, error)
	CaptureNewPassword(promptStr string) (string, error)
}

type realPrompter struct{}

// Global variable that can be replaced during testing
var promptUIRunner = func(prompt promptui.Prompt) (string, error) {
	return prompt.Run()
}

// Global variable that can be replaced during testing
var promptUISelectRunner = func(prompt promptui.Select) (int, string, error) {
	return prompt.Run()
}

// NewPrompter returns a new instance of Prompter interface
func NewPrompter() Prompter {
	return &realPrompter{}
}

func yesNoBase(promptStr string, orderedOptions []string) (bool, error) {
	prompt := promptui.Select{
		Label: promptStr,
		Items: orderedOptions,
	}

	_, decision, err := promptUISelectRunner(prompt)
	if err != nil {
		return false, err
	}
	return decision == Yes, nil
}

func (*realPrompter) CaptureNoYes(promptStr string) (bool, error) {
	return yesNoBase(promptStr, []string{No, Yes})
}

func (*realPrompter) CaptureAddress(promptStr string) (movetypes.AccountAddress, error) {
	prompt := promptui.Prompt{
		Label:    promptStr,
		Validate: validateAddress,
	}

	addressStr, err := promptUIRunner(prompt)
	if err != nil {
		return movetypes.AccountAddress{}, err
	}

	return movetypes.ParseAddress(addressStr)
}

// CapturePassword reads a masked vault password.
func (*realPrompter) CapturePassword(promptStr string) (string, error) {
	prompt := promptui.Prompt{
		Label:    promptStr,
		Mask:     '*',
		Validate: validatePassword,
	}

	return promptUIRunner(prompt)
}

// CaptureNewPassword reads a vault password twice and checks both match.
func (p *realPrompter) CaptureNewPassword(promptStr string) (string, error) {
	password, err := p.CapturePassword(promptStr)
	if err != nil {
		return "", err
	}
	confirm, err := p.CapturePassword("Confirm password")
	if err != nil {
		return "", err
	}
	if password != confirm {
		return "", ErrPasswordMismatch
	}
	return password, nil
}
