// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package cobrautils

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aptoswap/aptoswap-cli/pkg/engine"
	"github.com/aptoswap/aptoswap-cli/pkg/ux"

	"github.com/spf13/cobra"
)

var osExit = os.Exit

type UsageError struct {
	cmd *cobra.Command
	err error
}

func (e UsageError) Error() string {
	return fmt.Sprintf("Usage error: %s", e.err)
}

func (e UsageError) Unwrap() error {
	return e.err
}

func NewUsageError(cmd *cobra.Command, err error) UsageError {
	return UsageError{
		cmd: cmd,
		err: err,
	}
}

// withUsage prints the command help and wraps the error of a failed
// positional argument check in a UsageError.
func withUsage(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			_ = cmd.Help()
			return NewUsageError(cmd, err)
		}
		return nil
	}
}

func ExactArgs(n int) cobra.PositionalArgs {
	return withUsage(cobra.ExactArgs(n))
}

func MaximumNArgs(n int) cobra.PositionalArgs {
	return withUsage(cobra.MaximumNArgs(n))
}

func MinimumNArgs(n int) cobra.PositionalArgs {
	return withUsage(cobra.MinimumNArgs(n))
}

// HandleErrors reports err to the user and exits with status 1. Failed
// transactions are reported with their hash so they can be looked up.
func HandleErrors(err error) {
	if err == nil {
		return
	}
	var (
		usageErr UsageError
		fatalErr *engine.FatalError
	)
	switch {
	case errors.As(err, &usageErr):
		usageErr.cmd.Println(usageErr.cmd.UsageString())
		usageErr.cmd.Println()
		usageErr.cmd.Println(usageErr)
	case errors.As(err, &fatalErr):
		ux.Logger.RedXToUser("Transaction %s %s", fatalErr.Result.Hash, fatalErr.Result.Outcome)
		ux.Logger.PrintToUser("Error: %s", fatalErr.Result.Err)
	default:
		ux.Logger.PrintToUser("Error: %s", err)
	}
	osExit(1)
}

// SubcommandRequired is the Args check of command suites and of the root:
// running them without a known subcommand is a usage error. It runs before
// any persistent pre-run hook.
func SubcommandRequired(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return NewUsageError(cmd, fmt.Errorf("%s requires a subcommand", cmd.CommandPath()))
	}
	return NewUsageError(cmd, fmt.Errorf("unknown command %q for %q", strings.Join(args, " "), cmd.CommandPath()))
}

// CommandSuiteUsage is the RunE of command suites. It is only reached when
// Args checking is bypassed and reports the same usage error.
func CommandSuiteUsage(cmd *cobra.Command, args []string) error {
	return SubcommandRequired(cmd, args)
}

func ConfigureRootCmd(cmd *cobra.Command) {
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return NewUsageError(cmd, err)
	})
}
