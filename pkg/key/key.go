// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package key implements the account signing keys and helper functions.
package key

import (
	"errors"

	"github.com/aptoswap/aptoswap-cli/pkg/movetypes"

	"golang.org/x/crypto/sha3"
)

var ErrAddressMismatch = errors.New("key does not control the configured account")

// Ed25519Scheme is the single signer scheme byte appended to the public key
// when deriving an authentication key.
const Ed25519Scheme byte = 0x00

// Key defines methods for key manager interface.
type Key interface {
	// Address returns the account the key signs for.
	Address() movetypes.AccountAddress
	// PublicKey returns the raw 32 byte public key.
	PublicKey() []byte
	// Sign signs msg and returns the raw 64 byte signature.
	Sign(msg []byte) ([]byte, error)
}

// AuthKey derives the authentication key of an Ed25519 public key. For an
// account that never rotated its key this is also the account address.
func AuthKey(pubKey []byte) movetypes.AccountAddress {
	h := sha3.New256()
	h.Write(pubKey)
	h.Write([]byte{Ed25519Scheme})
	var addr movetypes.AccountAddress
	copy(addr[:], h.Sum(nil))
	return addr
}
