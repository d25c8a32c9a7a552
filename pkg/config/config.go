// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/aptoswap/aptoswap-cli/pkg/constants"
	"github.com/aptoswap/aptoswap-cli/pkg/utils"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Network is a node endpoint and, for test networks, its faucet.
type Network struct {
	Name      string
	NodeURL   string
	FaucetURL string
}

func (n Network) HasFaucet() bool {
	return n.FaucetURL != ""
}

var presets = map[string]Network{
	constants.LocalNetwork: {
		Name:      constants.LocalNetwork,
		NodeURL:   constants.LocalNodeURL,
		FaucetURL: constants.LocalFaucetURL,
	},
	constants.DevnetNetwork: {
		Name:      constants.DevnetNetwork,
		NodeURL:   constants.DevnetNodeURL,
		FaucetURL: constants.DevnetFaucetURL,
	},
}

// SettableKeys are the keys the config file may hold.
var SettableKeys = []string{
	constants.ConfigNetworkKey,
	constants.ConfigNodeURLKey,
	constants.ConfigFaucetURLKey,
	constants.ConfigProjectDirKey,
	constants.ConfigProfileKey,
	constants.ConfigLogLevelKey,
	constants.ConfigAptosPathKey,
}

type Config struct{}

func New() *Config {
	return &Config{}
}

// SetConfig points viper at the JSON config file s and binds the
// environment: APTOS_PUBLISH_NETWORK selects the network and APTOSWAP_*
// variables override the other keys.
func (*Config) SetConfig(log *zap.Logger, s string) {
	viper.SetConfigType(constants.ConfigType)
	d := filepath.Dir(s)
	viper.AddConfigPath(d)
	viper.SetConfigFile(s)
	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
	_ = viper.BindEnv(constants.ConfigNetworkKey, constants.NetworkEnvVar)
	viper.SetDefault(constants.ConfigNetworkKey, constants.LocalNetwork)
	viper.SetDefault(constants.ConfigProfileKey, constants.DefaultProfile)
	viper.SetDefault(constants.ConfigLogLevelKey, constants.DefaultLogLevel)
	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Info("Using config file", zap.String("config-file", s))
	} else {
		log.Info("No config file found")
	}
}

func (*Config) GetConfigPath() string {
	return viper.ConfigFileUsed()
}

func (c *Config) ConfigFileExists() bool {
	return utils.FileExists(c.GetConfigPath())
}

// SetConfigValue sets key for the running process and persists it in the
// config file. Other keys of the file are kept; flag and environment values
// are not written.
func (c *Config) SetConfigValue(key string, value interface{}) error {
	viper.Set(key, value)
	path := c.GetConfigPath()
	if path == "" {
		return errors.New("no config file configured")
	}
	fileConf := viper.New()
	fileConf.SetConfigFile(path)
	fileConf.SetConfigType(constants.ConfigType)
	if err := fileConf.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed reading %s: %w", path, err)
	}
	fileConf.Set(key, value)
	return fileConf.WriteConfigAs(path)
}

func (*Config) GetConfigStringValue(key string) string {
	return viper.GetString(key)
}

// Network resolves the selected network preset and applies the node and
// faucet URL overrides.
func (c *Config) Network() (Network, error) {
	name := strings.ToLower(strings.TrimSpace(c.GetConfigStringValue(constants.ConfigNetworkKey)))
	if name == "" {
		name = constants.LocalNetwork
	}
	network, ok := presets[name]
	if !ok {
		nodeURL := c.GetConfigStringValue(constants.ConfigNodeURLKey)
		if nodeURL == "" {
			return Network{}, fmt.Errorf("%w %q: use %s, %s or set %s",
				constants.ErrUnknownNetwork, name, constants.LocalNetwork, constants.DevnetNetwork, constants.ConfigNodeURLKey)
		}
		network = Network{Name: name}
	}
	if nodeURL := c.GetConfigStringValue(constants.ConfigNodeURLKey); nodeURL != "" {
		network.NodeURL = nodeURL
	}
	if faucetURL := c.GetConfigStringValue(constants.ConfigFaucetURLKey); faucetURL != "" {
		network.FaucetURL = faucetURL
	}
	if err := utils.ValidateURLFormat(network.NodeURL); err != nil {
		return Network{}, fmt.Errorf("invalid node url %q: %w", network.NodeURL, err)
	}
	return network, nil
}
