// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package accountcmd

import (
	"errors"
	"fmt"

	"github.com/aptoswap/aptoswap-cli/cmd/fundcmd"
	"github.com/aptoswap/aptoswap-cli/pkg/application"
	"github.com/aptoswap/aptoswap-cli/pkg/cobrautils"
	"github.com/aptoswap/aptoswap-cli/pkg/key"
	"github.com/aptoswap/aptoswap-cli/pkg/utils"
	"github.com/aptoswap/aptoswap-cli/pkg/ux"
	"github.com/aptoswap/aptoswap-cli/pkg/vault"

	"github.com/spf13/cobra"
)

const forceFlag = "force"

var errProfileExists = errors.New("profile already exists. Use --" + forceFlag + " parameter to overwrite")

var (
	forceCreate bool
	privateKey  string
	keyFile     string
	skipFund    bool
)

// aptoswap new-account
func NewNewAccountCmd(injectedApp *application.Aptoswap) *cobra.Command {
	app = injectedApp

	cmd := &cobra.Command{
		Use:   "new-account",
		Short: "Create the deployer account profile",
		Long: `The new-account command generates an Ed25519 key, writes it as the
selected profile of .aptos/config.yaml in the project directory and funds
the new account when the network has a faucet.

Use --private-key or --key-file to import an existing key instead of
generating one. A key file holds the hex encoded private key.`,
		Args:         cobrautils.ExactArgs(0),
		RunE:         newAccount,
		SilenceUsage: true,
	}
	cmd.Flags().BoolVarP(&forceCreate, forceFlag, "f", false, "overwrite the profile if it already exists")
	cmd.Flags().StringVar(&privateKey, "private-key", "", "hex encoded private key to import")
	cmd.Flags().StringVar(&keyFile, "key-file", "", "file holding a hex encoded private key to import")
	cmd.Flags().BoolVar(&skipFund, "skip-fund", false, "do not fund the new account")
	cmd.MarkFlagsMutuallyExclusive("private-key", "key-file")
	return cmd
}

func newAccount(cmd *cobra.Command, _ []string) error {
	name := app.GetProfileName()
	if _, err := app.LoadProfile(); err == nil && !forceCreate {
		overwrite, err := app.Prompt.CaptureNoYes(fmt.Sprintf("Profile %q already exists. Overwrite it?", name))
		if err != nil {
			return err
		}
		if !overwrite {
			return errProfileExists
		}
	}

	k, err := loadOrGenerateKey()
	if err != nil {
		return err
	}
	network, err := app.GetNetwork()
	if err != nil {
		return err
	}
	profile := vault.NewProfile(k, network.NodeURL, network.FaucetURL)
	if err := vault.WriteProfile(app.FS, app.GetProfilePath(), name, profile); err != nil {
		return err
	}
	ux.Logger.GreenCheckmarkToUser("Profile %q written to %s", name, app.GetProfilePath())
	fmt.Fprintln(cmd.OutOrStdout(), profile.Account)

	if skipFund {
		return nil
	}
	ctx, cancel := utils.GetSignalContext()
	defer cancel()
	return fundcmd.AutoFund(ctx, app, k.Address())
}

func loadOrGenerateKey() (*key.SoftKey, error) {
	switch {
	case keyFile != "":
		return key.LoadSoft(app.FS, keyFile)
	case privateKey != "":
		return key.NewSoft(key.WithPrivateKeyEncoded(privateKey))
	}
	ux.Logger.PrintToUser("Generating new key...")
	return key.NewSoft()
}
