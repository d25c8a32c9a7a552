// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prompts

import (
	"errors"
	"testing"

	"github.com/aptoswap/aptoswap-cli/pkg/movetypes"
	"github.com/aptoswap/aptoswap-cli/pkg/vault"

	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/require"
)

func mockPromptUIRunner(t *testing.T, answers ...string) *[]promptui.Prompt {
	originalRunner := promptUIRunner
	t.Cleanup(func() {
		promptUIRunner = originalRunner
	})
	var seen []promptui.Prompt
	promptUIRunner = func(prompt promptui.Prompt) (string, error) {
		seen = append(seen, prompt)
		if len(answers) == 0 {
			return "", errors.New("no more answers")
		}
		answer := answers[0]
		answers = answers[1:]
		if prompt.Validate != nil {
			if err := prompt.Validate(answer); err != nil {
				return "", err
			}
		}
		return answer, nil
	}
	return &seen
}

func mockPromptUISelectRunner(t *testing.T, answer string) {
	originalRunner := promptUISelectRunner
	t.Cleanup(func() {
		promptUISelectRunner = originalRunner
	})
	promptUISelectRunner = func(prompt promptui.Select) (int, string, error) {
		return 0, answer, nil
	}
}

func TestNewPrompter(t *testing.T) {
	prompter := NewPrompter()
	_, ok := prompter.(*realPrompter)
	require.True(t, ok, "NewPrompter should return a *realPrompter")
}

func TestCaptureNoYes(t *testing.T) {
	prompter := NewPrompter()
	mockPromptUISelectRunner(t, Yes)
	ok, err := prompter.CaptureNoYes("Overwrite?")
	require.NoError(t, err)
	require.True(t, ok)

	mockPromptUISelectRunner(t, No)
	ok, err = prompter.CaptureNoYes("Overwrite?")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCaptureAddress(t *testing.T) {
	prompter := NewPrompter()
	mockPromptUIRunner(t, "0xabc")
	addr, err := prompter.CaptureAddress("Account")
	require.NoError(t, err)
	require.Equal(t, movetypes.MustParseAddress("0xabc"), addr)

	mockPromptUIRunner(t, "0xnothex")
	_, err = prompter.CaptureAddress("Account")
	require.ErrorIs(t, err, movetypes.ErrInvalidAddress)
}

func TestCapturePassword(t *testing.T) {
	require := require.New(t)
	prompter := NewPrompter()

	seen := mockPromptUIRunner(t, "deploy", "deploy")
	password, err := prompter.CaptureNewPassword("Vault password")
	require.NoError(err)
	require.Equal("deploy", password)
	require.Len(*seen, 2)
	require.Equal('*', (*seen)[0].Mask)

	mockPromptUIRunner(t, "deploy", "deploy2")
	_, err = prompter.CaptureNewPassword("Vault password")
	require.ErrorIs(err, ErrPasswordMismatch)

	mockPromptUIRunner(t, "not base64!")
	_, err = prompter.CapturePassword("Vault password")
	require.ErrorIs(err, vault.ErrInvalidPassword)
}
