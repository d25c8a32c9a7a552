// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package constants

import "time"

const (
	DefaultPerms755        = 0o755
	WriteReadReadPerms     = 0o644
	WriteReadUserOnlyPerms = 0o600

	BaseDirName = ".aptoswap-cli"
	LogDir      = "logs"
	LogFile     = "aptoswap.log"
	ConfigFile  = "config"
	ConfigType  = "json"

	MaxLogFileSize   = 4
	MaxNumOfLogFiles = 5
	RetainOldFiles   = 0

	// http
	APIRequestTimeout      = 30 * time.Second
	APIRequestLargeTimeout = 2 * time.Minute
	NodeRequestsPerSecond  = 10
	NodeRequestBurst       = 5

	// transactions
	DefaultMaxGasAmount        uint64 = 20_000
	DefaultPublishMaxGasAmount uint64 = 2_000_000
	DefaultExpiration                 = 50 * time.Second
	DefaultPublishExpiration          = 80 * time.Second
	DefaultConfirmationTimeout        = 30 * time.Second
	ConfirmationPollInterval          = 500 * time.Millisecond

	// funding
	DefaultFundAmount      uint64 = 1_000_000
	DefaultFundTarget      uint64 = 1_000_000
	DefaultFundMaxAttempts        = 10
	DefaultFundInterval           = 2 * time.Second

	// project layout
	ProfileDir         = ".aptos"
	ProfileFile        = "config.yaml"
	DefaultProfile     = "default"
	PackageInfoFile    = "package_info.json"
	BuildDir           = "build"
	PackageMetadata    = "package-metadata.bcs"
	BytecodeModulesDir = "bytecode_modules"
	ModuleExtension    = ".mv"
	DefaultPackageName = "Aptoswap"
	NamedAddress       = "Aptoswap"
	AptosBinary        = "aptos"

	// networks
	LocalNetwork      = "local"
	DevnetNetwork     = "devnet"
	LocalNodeURL      = "http://127.0.0.1:8080/v1"
	LocalFaucetURL    = "http://127.0.0.1:8081"
	DevnetNodeURL     = "https://fullnode.devnet.aptoslabs.com/v1"
	DevnetFaucetURL   = "https://faucet.devnet.aptoslabs.com"
	NetworkEnvVar     = "APTOS_PUBLISH_NETWORK"
	EnvPrefix         = "APTOSWAP"
	DefaultLogLevel   = "info"
	CoinStoreResource = "0x1::coin::CoinStore<0x1::aptos_coin::AptosCoin>"
	AptosCoinType     = "0x1::aptos_coin::AptosCoin"
)

// viper keys
const (
	ConfigNetworkKey    = "network"
	ConfigNodeURLKey    = "node-url"
	ConfigFaucetURLKey  = "faucet-url"
	ConfigProjectDirKey = "project-dir"
	ConfigProfileKey    = "profile"
	ConfigLogLevelKey   = "log-level"
	ConfigAptosPathKey  = "aptos-path"
)
