// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package key

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/aptoswap/aptoswap-cli/pkg/movetypes"

	"github.com/spf13/afero"
)

var (
	ErrInvalidPrivateKey         = errors.New("invalid private key")
	ErrInvalidPrivateKeyLen      = errors.New("invalid private key length (expect 64 characters in hex)")
	ErrInvalidPrivateKeyEnding   = errors.New("invalid private key ending")
	ErrInvalidPrivateKeyEncoding = errors.New("invalid private key encoding")
)

var _ Key = &SoftKey{}

type SoftKey struct {
	privKey        ed25519.PrivateKey
	privKeyEncoded string

	address movetypes.AccountAddress
}

const (
	privKeyEncPfx = "0x"
	privKeySize   = 2 * ed25519.SeedSize
)

type softKeyOptions struct {
	privKey        ed25519.PrivateKey
	privKeyEncoded string
	address        *movetypes.AccountAddress
}

type SoftKeyOption func(*softKeyOptions)

func (o *softKeyOptions) applyOpts(opts []SoftKeyOption) {
	for _, opt := range opts {
		opt(o)
	}
}

// WithPrivateKey signs with an existing key instead of generating one.
func WithPrivateKey(privKey ed25519.PrivateKey) SoftKeyOption {
	return func(o *softKeyOptions) {
		o.privKey = privKey
	}
}

// WithPrivateKeyEncoded imports a hex encoded 32 byte seed.
func WithPrivateKeyEncoded(privKey string) SoftKeyOption {
	return func(o *softKeyOptions) {
		o.privKeyEncoded = privKey
	}
}

// WithAddress sets the account the key signs for, for accounts whose key
// was rotated.
func WithAddress(addr movetypes.AccountAddress) SoftKeyOption {
	return func(o *softKeyOptions) {
		o.address = &addr
	}
}

func NewSoft(opts ...SoftKeyOption) (*SoftKey, error) {
	ret := &softKeyOptions{}
	ret.applyOpts(opts)

	if len(ret.privKeyEncoded) > 0 {
		privKey, err := decodePrivateKey(ret.privKeyEncoded)
		if err != nil {
			return nil, err
		}
		if ret.privKey != nil &&
			!bytes.Equal(ret.privKey.Seed(), privKey.Seed()) {
			return nil, ErrInvalidPrivateKey
		}
		ret.privKey = privKey
	}

	if ret.privKey == nil {
		var err error
		_, ret.privKey, err = ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, err
		}
	}
	if len(ret.privKey) != ed25519.PrivateKeySize {
		return nil, ErrInvalidPrivateKey
	}

	privKey := ret.privKey
	m := &SoftKey{
		privKey:        privKey,
		privKeyEncoded: encodePrivateKey(privKey),
		address:        AuthKey(privKey.Public().(ed25519.PublicKey)),
	}
	if ret.address != nil {
		m.address = *ret.address
	}
	return m, nil
}

// LoadSoft reads a hex key file written by Save.
func LoadSoft(fs afero.Fs, keyPath string) (*SoftKey, error) {
	kb, err := afero.ReadFile(fs, keyPath)
	if err != nil {
		return nil, err
	}
	return LoadSoftFromBytes(kb)
}

// LoadSoftFromBytes parses a hex private key, with or without the 0x prefix.
// Trailing line breaks are ignored.
func LoadSoftFromBytes(kb []byte) (*SoftKey, error) {
	raw := strings.TrimPrefix(strings.TrimRight(string(kb), "\r\n"), privKeyEncPfx)
	switch {
	case len(raw) < privKeySize:
		return nil, ErrInvalidPrivateKeyLen
	case len(raw) > privKeySize:
		return nil, ErrInvalidPrivateKeyEnding
	}
	return NewSoft(WithPrivateKeyEncoded(raw))
}

func encodePrivateKey(pk ed25519.PrivateKey) string {
	return privKeyEncPfx + hex.EncodeToString(pk.Seed())
}

func decodePrivateKey(enc string) (ed25519.PrivateKey, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(enc), privKeyEncPfx)
	if len(raw) != privKeySize {
		return nil, ErrInvalidPrivateKeyLen
	}
	seed, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPrivateKeyEncoding, err)
	}
	return ed25519.NewKeyFromSeed(seed), nil
}

func (m *SoftKey) Address() movetypes.AccountAddress {
	return m.address
}

// AuthKey returns the authentication key derived from the public key.
func (m *SoftKey) AuthKey() movetypes.AccountAddress {
	return AuthKey(m.PublicKey())
}

func (m *SoftKey) PublicKey() []byte {
	return m.privKey.Public().(ed25519.PublicKey)
}

func (m *SoftKey) Sign(msg []byte) ([]byte, error) {
	return ed25519.Sign(m.privKey, msg), nil
}

// Returns the private key encoded in hex with "0x" prefix.
func (m *SoftKey) Encode() string {
	return m.privKeyEncoded
}

// Returns the public key encoded in hex with "0x" prefix.
func (m *SoftKey) EncodePublicKey() string {
	return privKeyEncPfx + hex.EncodeToString(m.PublicKey())
}
