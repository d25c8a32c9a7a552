// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aptoswap/aptoswap-cli/cmd/accountcmd"
	"github.com/aptoswap/aptoswap-cli/cmd/callcmd"
	"github.com/aptoswap/aptoswap-cli/cmd/configcmd"
	"github.com/aptoswap/aptoswap-cli/cmd/fundcmd"
	"github.com/aptoswap/aptoswap-cli/cmd/poolcmd"
	"github.com/aptoswap/aptoswap-cli/cmd/publishcmd"
	"github.com/aptoswap/aptoswap-cli/cmd/vaultcmd"
	"github.com/aptoswap/aptoswap-cli/pkg/application"
	"github.com/aptoswap/aptoswap-cli/pkg/cobrautils"
	"github.com/aptoswap/aptoswap-cli/pkg/config"
	"github.com/aptoswap/aptoswap-cli/pkg/constants"
	"github.com/aptoswap/aptoswap-cli/pkg/prompts"
	"github.com/aptoswap/aptoswap-cli/pkg/utils"
	"github.com/aptoswap/aptoswap-cli/pkg/ux"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	app *application.Aptoswap

	Version = ""

	logWriter *lumberjack.Logger
)

// NewRootCmd builds the aptoswap command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use: "aptoswap",
		Long: `Aptoswap CLI deploys the Aptoswap Move package to an Aptos network.

It compiles and publishes the package, manages the deployer profile and
its encrypted backup, funds accounts through a faucet and drives the pool
setup calls.

To get started, create an account with aptoswap new-account and publish
the package with aptoswap publish.`,
		Args:               cobrautils.SubcommandRequired,
		RunE:               cobrautils.CommandSuiteUsage,
		PersistentPreRunE:  createApp,
		PersistentPostRunE: closeApp,
		Version:            Version,
		SilenceErrors:      true,
	}

	addGlobalFlags(rootCmd.PersistentFlags())
	cobrautils.ConfigureRootCmd(rootCmd)

	rootCmd.AddCommand(publishcmd.NewCmd(app))
	rootCmd.AddCommand(accountcmd.NewCmd(app))
	rootCmd.AddCommand(accountcmd.NewNewAccountCmd(app))
	rootCmd.AddCommand(fundcmd.NewCmd(app))
	rootCmd.AddCommand(callcmd.NewCmd(app))
	rootCmd.AddCommand(poolcmd.NewCmd(app))
	rootCmd.AddCommand(vaultcmd.NewCmd(app))
	rootCmd.AddCommand(configcmd.NewCmd(app))
	return rootCmd
}

// addGlobalFlags registers the flags bound into the configuration. Their
// names are the viper keys.
func addGlobalFlags(flags *pflag.FlagSet) {
	flags.String(constants.ConfigNetworkKey, constants.LocalNetwork, "network to use: local or devnet (env "+constants.NetworkEnvVar+")")
	flags.String(constants.ConfigNodeURLKey, "", "override the node REST endpoint")
	flags.String(constants.ConfigFaucetURLKey, "", "override the faucet endpoint")
	flags.String(constants.ConfigProjectDirKey, ".", "Move project directory")
	flags.String(constants.ConfigProfileKey, constants.DefaultProfile, "account profile to sign with")
	flags.String(constants.ConfigLogLevelKey, constants.DefaultLogLevel, "log level for the log file")
	flags.String(constants.ConfigAptosPathKey, "", "path to the aptos binary used to compile the package")
}

func createApp(cmd *cobra.Command, _ []string) error {
	baseDir, err := setupEnv()
	if err != nil {
		return err
	}
	if err := viper.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
		return err
	}
	log, err := setupLogging(baseDir, viper.GetString(constants.ConfigLogLevelKey))
	if err != nil {
		return err
	}
	ux.NewUserLog(log, os.Stdout)
	cf := config.New()
	app.Setup(baseDir, log, cf, prompts.NewPrompter(), afero.NewOsFs())
	cf.SetConfig(log, app.GetConfigPath())
	log.Info("command started",
		zap.String("command", cmd.CommandPath()),
		zap.String("version", Version),
	)
	return nil
}

func closeApp(*cobra.Command, []string) error {
	if app.Log != nil {
		_ = app.Log.Sync()
	}
	if logWriter != nil {
		return logWriter.Close()
	}
	return nil
}

func setupEnv() (string, error) {
	baseDir := utils.UserHomePath(constants.BaseDirName)

	// Create base dir if it doesn't exist
	if err := os.MkdirAll(baseDir, constants.DefaultPerms755); err != nil {
		// no logger here yet
		fmt.Printf("failed creating the basedir %s: %s\n", baseDir, err)
		return "", err
	}
	return baseDir, nil
}

func setupLogging(baseDir string, logLevel string) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level configured: %s", logLevel)
	}
	logDir := filepath.Join(baseDir, constants.LogDir)
	if err := os.MkdirAll(logDir, constants.DefaultPerms755); err != nil {
		return nil, fmt.Errorf("failed creating log directory: %w", err)
	}

	// some logging config params
	logWriter = &lumberjack.Logger{
		Filename:   filepath.Join(logDir, constants.LogFile),
		MaxSize:    constants.MaxLogFileSize,
		MaxBackups: constants.MaxNumOfLogFiles,
		MaxAge:     constants.RetainOldFiles,
	}
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		level,
	)
	return zap.New(core).Named("aptoswap"), nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	app = application.New()
	rootCmd := NewRootCmd()
	err := rootCmd.Execute()
	cobrautils.HandleErrors(err)
}
