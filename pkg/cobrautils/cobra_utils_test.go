// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package cobrautils

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/aptoswap/aptoswap-cli/pkg/engine"
	"github.com/aptoswap/aptoswap-cli/pkg/ux"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func captureExit(t *testing.T) *int {
	code := -1
	osExit = func(c int) { code = c }
	t.Cleanup(func() { osExit = func(c int) { panic(fmt.Sprintf("exit %d", c)) } })
	return &code
}

func setupOutput(t *testing.T) *bytes.Buffer {
	var out bytes.Buffer
	ux.Logger = nil
	ux.NewUserLog(zap.NewNop(), &out)
	t.Cleanup(func() { ux.Logger = nil })
	return &out
}

func TestHandleErrorsNil(t *testing.T) {
	code := captureExit(t)
	HandleErrors(nil)
	require.Equal(t, -1, *code)
}

func TestHandleErrorsFatalTransaction(t *testing.T) {
	require := require.New(t)
	out := setupOutput(t)
	code := captureExit(t)

	res := &engine.Result{Hash: "0xfeed", Outcome: engine.Aborted, Err: engine.ErrOnChainAbort}
	HandleErrors(fmt.Errorf("pool initialize: %w", &engine.FatalError{Result: res}))
	require.Equal(1, *code)
	require.Contains(out.String(), "0xfeed aborted")
	require.Contains(out.String(), "Error: transaction aborted on chain")
}

func TestHandleErrorsPlain(t *testing.T) {
	out := setupOutput(t)
	code := captureExit(t)
	HandleErrors(errors.New("boom"))
	require.Equal(t, 1, *code)
	require.Equal(t, "Error: boom\n", out.String())
}

func TestExactArgsUsageError(t *testing.T) {
	require := require.New(t)
	var buf bytes.Buffer
	cmd := &cobra.Command{Use: "publish", Args: ExactArgs(0), RunE: func(*cobra.Command, []string) error { return nil }}
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"extra"})
	err := cmd.Execute()
	var usageErr UsageError
	require.ErrorAs(err, &usageErr)
	require.Contains(usageErr.Error(), "Usage error")
}

func TestSubcommandRequired(t *testing.T) {
	require := require.New(t)
	ran := false
	suite := &cobra.Command{
		Use:               "pool",
		Args:              SubcommandRequired,
		RunE:              CommandSuiteUsage,
		PersistentPreRunE: func(*cobra.Command, []string) error { ran = true; return nil },
	}
	suite.AddCommand(&cobra.Command{Use: "list", RunE: func(*cobra.Command, []string) error { return nil }})
	var buf bytes.Buffer
	suite.SetOut(&buf)
	suite.SetErr(&buf)

	for _, args := range [][]string{{}, {"drain"}} {
		suite.SetArgs(args)
		var usageErr UsageError
		require.ErrorAs(suite.Execute(), &usageErr, args)
	}
	require.False(ran)

	suite.SetArgs([]string{"list"})
	require.NoError(suite.Execute())
	require.True(ran)
}
