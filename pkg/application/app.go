// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package application

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/aptoswap/aptoswap-cli/pkg/config"
	"github.com/aptoswap/aptoswap-cli/pkg/constants"
	"github.com/aptoswap/aptoswap-cli/pkg/engine"
	"github.com/aptoswap/aptoswap-cli/pkg/faucet"
	"github.com/aptoswap/aptoswap-cli/pkg/gas"
	"github.com/aptoswap/aptoswap-cli/pkg/key"
	"github.com/aptoswap/aptoswap-cli/pkg/node"
	"github.com/aptoswap/aptoswap-cli/pkg/prompts"
	"github.com/aptoswap/aptoswap-cli/pkg/utils"
	"github.com/aptoswap/aptoswap-cli/pkg/vault"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

var ErrNoFaucet = errors.New("the selected network has no faucet, set --faucet-url")

type Aptoswap struct {
	Log     *zap.Logger
	baseDir string
	Conf    *config.Config
	Prompt  prompts.Prompter
	FS      afero.Fs

	mu     sync.Mutex
	client *node.Client
	gas    *gas.Policy
}

func New() *Aptoswap {
	return &Aptoswap{}
}

func (app *Aptoswap) Setup(baseDir string, log *zap.Logger, conf *config.Config, prompt prompts.Prompter, fs afero.Fs) {
	app.baseDir = baseDir
	app.Log = log
	app.Conf = conf
	app.Prompt = prompt
	app.FS = fs
}

func (app *Aptoswap) GetBaseDir() string {
	return app.baseDir
}

func (app *Aptoswap) GetLogDir() string {
	return filepath.Join(app.baseDir, constants.LogDir)
}

func (app *Aptoswap) GetConfigPath() string {
	return filepath.Join(app.baseDir, constants.ConfigFile+"."+constants.ConfigType)
}

// GetProjectDir returns the Move project the commands act on.
func (app *Aptoswap) GetProjectDir() string {
	return utils.ExpandHome(app.Conf.GetConfigStringValue(constants.ConfigProjectDirKey))
}

func (app *Aptoswap) GetProfileName() string {
	if name := app.Conf.GetConfigStringValue(constants.ConfigProfileKey); name != "" {
		return name
	}
	return constants.DefaultProfile
}

func (app *Aptoswap) GetProfilePath() string {
	return vault.ProfilePath(app.GetProjectDir())
}

func (app *Aptoswap) GetPackageInfoPath() string {
	return vault.PackageInfoPath(app.GetProjectDir())
}

func (app *Aptoswap) GetAptosPath() string {
	return app.Conf.GetConfigStringValue(constants.ConfigAptosPathKey)
}

func (app *Aptoswap) LoadProfile() (*vault.Profile, error) {
	return vault.LoadProfile(app.FS, app.GetProfilePath(), app.GetProfileName())
}

// LoadKey returns the signing key of the selected profile.
func (app *Aptoswap) LoadKey() (*key.SoftKey, error) {
	profile, err := app.LoadProfile()
	if err != nil {
		return nil, err
	}
	k, err := profile.Key()
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", app.GetProfileName(), err)
	}
	return k, nil
}

func (app *Aptoswap) GetNetwork() (config.Network, error) {
	return app.Conf.Network()
}

// NodeClient returns the client for the selected network, shared by every
// command of the process.
func (app *Aptoswap) NodeClient() (*node.Client, error) {
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.client != nil {
		return app.client, nil
	}
	network, err := app.GetNetwork()
	if err != nil {
		return nil, err
	}
	app.Log.Info("using network",
		zap.String("network", network.Name),
		zap.String("node", network.NodeURL),
		zap.String("faucet", network.FaucetURL),
	)
	app.client = node.NewClient(network.NodeURL, nil, app.Log)
	app.gas = gas.NewPolicy()
	return app.client, nil
}

// Engine returns a transaction engine on the selected network. Engines share
// the gas schedule cache.
func (app *Aptoswap) Engine(opts ...engine.Option) (*engine.Engine, error) {
	client, err := app.NodeClient()
	if err != nil {
		return nil, err
	}
	opts = append([]engine.Option{
		engine.WithLogger(app.Log),
		engine.WithGasPolicy(app.gas),
	}, opts...)
	return engine.New(client, opts...), nil
}

func (app *Aptoswap) Faucet() (faucet.Faucet, error) {
	network, err := app.GetNetwork()
	if err != nil {
		return nil, err
	}
	if !network.HasFaucet() {
		return nil, ErrNoFaucet
	}
	client, err := app.NodeClient()
	if err != nil {
		return nil, err
	}
	return faucet.NewClient(network.FaucetURL, client, app.Log), nil
}
