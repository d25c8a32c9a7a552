// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package vault

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/aptoswap/aptoswap-cli/pkg/constants"
	"github.com/aptoswap/aptoswap-cli/pkg/key"
	"github.com/aptoswap/aptoswap-cli/pkg/movetypes"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileConfig is the aptos CLI config document.
type ProfileConfig struct {
	Profiles map[string]*Profile `yaml:"profiles"`
}

type Profile struct {
	PrivateKey string `yaml:"private_key"`
	PublicKey  string `yaml:"public_key,omitempty"`
	Account    string `yaml:"account"`
	RestURL    string `yaml:"rest_url,omitempty"`
	FaucetURL  string `yaml:"faucet_url,omitempty"`
}

// NewProfile fills a profile from k.
func NewProfile(k *key.SoftKey, restURL string, faucetURL string) *Profile {
	return &Profile{
		PrivateKey: k.Encode(),
		PublicKey:  k.EncodePublicKey(),
		Account:    k.Address().ShortString(),
		RestURL:    restURL,
		FaucetURL:  faucetURL,
	}
}

// Key loads the profile's private key and checks it against the recorded
// account, if any.
func (p *Profile) Key() (*key.SoftKey, error) {
	opts := []key.SoftKeyOption{key.WithPrivateKeyEncoded(p.PrivateKey)}
	if p.Account != "" {
		addr, err := movetypes.ParseAddress(p.Account)
		if err != nil {
			return nil, err
		}
		opts = append(opts, key.WithAddress(addr))
	}
	return key.NewSoft(opts...)
}

func (p *Profile) Address() (movetypes.AccountAddress, error) {
	return movetypes.ParseAddress(p.Account)
}

// ProfilePath returns <projectDir>/.aptos/config.yaml.
func ProfilePath(projectDir string) string {
	return filepath.Join(projectDir, constants.ProfileDir, constants.ProfileFile)
}

func ReadProfileConfig(afs afero.Fs, path string) (*ProfileConfig, error) {
	b, err := afero.ReadFile(afs, path)
	if err != nil {
		return nil, err
	}
	return parseProfileConfig(b)
}

func parseProfileConfig(b []byte) (*ProfileConfig, error) {
	cfg := &ProfileConfig{}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("invalid profile document: %w", err)
	}
	if cfg.Profiles == nil {
		cfg.Profiles = map[string]*Profile{}
	}
	return cfg, nil
}

// LoadProfile reads profile name from the config document at path.
func LoadProfile(afs afero.Fs, path string, name string) (*Profile, error) {
	cfg, err := ReadProfileConfig(afs, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", constants.ErrNoProfile, path)
	}
	if err != nil {
		return nil, err
	}
	p, ok := cfg.Profiles[name]
	if !ok || p == nil {
		return nil, fmt.Errorf("%w: %q in %s", ErrProfileNotFound, name, path)
	}
	return p, nil
}

// WriteProfile sets profile name in the document at path, keeping the other
// profiles.
func WriteProfile(afs afero.Fs, path string, name string, p *Profile) error {
	cfg, err := ReadProfileConfig(afs, path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		cfg = &ProfileConfig{Profiles: map[string]*Profile{}}
	case err != nil:
		return err
	}
	cfg.Profiles[name] = p
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return writeFile(afs, path, b, constants.WriteReadUserOnlyPerms)
}

// Install decrypts blob and writes it as the working config at path. The
// plaintext must be a profile document.
func Install(afs afero.Fs, blob string, password string, path string) (*ProfileConfig, error) {
	plain, err := Decrypt(blob, password)
	if err != nil {
		return nil, err
	}
	cfg, err := parseProfileConfig([]byte(plain))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}
	if len(cfg.Profiles) == 0 {
		return nil, fmt.Errorf("%w: bundle holds no profiles", ErrDecryptionFailed)
	}
	if err := writeFile(afs, path, []byte(plain), constants.WriteReadUserOnlyPerms); err != nil {
		return nil, err
	}
	return cfg, nil
}

type PackageInfo struct {
	Package string `json:"package"`
}

// PackageInfoPath returns <projectDir>/package_info.json.
func PackageInfoPath(projectDir string) string {
	return filepath.Join(projectDir, constants.PackageInfoFile)
}

func WritePackageInfo(afs afero.Fs, path string, account string) error {
	b, err := json.Marshal(PackageInfo{Package: account})
	if err != nil {
		return err
	}
	return writeFile(afs, path, b, constants.WriteReadReadPerms)
}

func ReadPackageInfo(afs afero.Fs, path string) (*PackageInfo, error) {
	b, err := afero.ReadFile(afs, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", constants.ErrNoPackageInfo, path)
	}
	if err != nil {
		return nil, err
	}
	info := &PackageInfo{}
	if err := json.Unmarshal(b, info); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return info, nil
}

func writeFile(afs afero.Fs, path string, b []byte, perm fs.FileMode) error {
	if err := afs.MkdirAll(filepath.Dir(path), constants.DefaultPerms755); err != nil {
		return err
	}
	return afero.WriteFile(afs, path, b, perm)
}
