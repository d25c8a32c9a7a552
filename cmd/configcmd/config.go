// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package configcmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aptoswap/aptoswap-cli/pkg/application"
	"github.com/aptoswap/aptoswap-cli/pkg/cobrautils"
	"github.com/aptoswap/aptoswap-cli/pkg/config"
	"github.com/aptoswap/aptoswap-cli/pkg/constants"
	"github.com/aptoswap/aptoswap-cli/pkg/utils"
	"github.com/aptoswap/aptoswap-cli/pkg/ux"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
)

var app *application.Aptoswap

// aptoswap config
func NewCmd(injectedApp *application.Aptoswap) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Modify configuration for Aptoswap CLI",
		Long: `Customize configuration for Aptoswap CLI.

Settings are stored in ~/` + constants.BaseDirName + `/` + constants.ConfigFile + `.` + constants.ConfigType + `. Flags and
APTOSWAP_* environment variables take precedence over them.`,
		Args: cobrautils.SubcommandRequired,
		RunE: cobrautils.CommandSuiteUsage,
	}
	app = injectedApp
	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newShowCmd())
	return cmd
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "set <key> <value>",
		Short:        "Store a setting",
		Long:         "The config set command stores one of: " + strings.Join(config.SettableKeys, ", ") + ".",
		Args:         cobrautils.ExactArgs(2),
		RunE:         setValue,
		SilenceUsage: true,
	}
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "get <key>",
		Short:        "Print the effective value of a setting",
		Args:         cobrautils.ExactArgs(1),
		RunE:         getValue,
		SilenceUsage: true,
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "show",
		Short:        "Print the effective settings and network",
		Args:         cobrautils.ExactArgs(0),
		RunE:         showValues,
		SilenceUsage: true,
	}
}

func checkKey(cmd *cobra.Command, key string) error {
	if !slices.Contains(config.SettableKeys, key) {
		return cobrautils.NewUsageError(cmd, fmt.Errorf("unknown setting %q, use one of %s", key, strings.Join(config.SettableKeys, ", ")))
	}
	return nil
}

func validateValue(key string, value string) error {
	switch key {
	case constants.ConfigNodeURLKey, constants.ConfigFaucetURLKey:
		return utils.ValidateURLFormat(value)
	case constants.ConfigLogLevelKey:
		_, err := zapcore.ParseLevel(value)
		return err
	}
	return nil
}

func setValue(cmd *cobra.Command, args []string) error {
	key, value := args[0], strings.TrimSpace(args[1])
	if err := checkKey(cmd, key); err != nil {
		return err
	}
	if err := validateValue(key, value); err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if err := app.Conf.SetConfigValue(key, value); err != nil {
		return err
	}
	ux.Logger.GreenCheckmarkToUser("%s set to %s", key, value)
	return nil
}

func getValue(cmd *cobra.Command, args []string) error {
	if err := checkKey(cmd, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), app.Conf.GetConfigStringValue(args[0]))
	return nil
}

func showValues(_ *cobra.Command, _ []string) error {
	rows := make([]table.Row, 0, len(config.SettableKeys)+2)
	for _, key := range config.SettableKeys {
		rows = append(rows, table.Row{key, app.Conf.GetConfigStringValue(key)})
	}
	network, err := app.GetNetwork()
	if err != nil {
		return err
	}
	rows = append(rows,
		table.Row{"resolved node", network.NodeURL},
		table.Row{"resolved faucet", network.FaucetURL},
	)
	ux.PrintTable("Configuration", table.Row{"Setting", "Value"}, rows)
	return nil
}
