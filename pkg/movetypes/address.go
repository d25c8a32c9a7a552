// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package movetypes

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

const AddressLength = 32

var ErrInvalidAddress = errors.New("invalid account address")

// AccountAddress is the fixed width on-chain account address. It is BCS
// encoded as its raw 32 bytes with no length prefix.
type AccountAddress [AddressLength]byte

var (
	// CoreAddress is the framework account (0x1).
	CoreAddress = AccountAddress{31: 0x1}
	ZeroAddress = AccountAddress{}
)

// ParseAddress accepts hex literals with or without a 0x prefix. Short forms
// such as 0x1 are left padded with zeros.
func ParseAddress(s string) (AccountAddress, error) {
	var addr AccountAddress
	h := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	if h == "" {
		return addr, fmt.Errorf("%w: empty literal %q", ErrInvalidAddress, s)
	}
	if len(h) > 2*AddressLength {
		return addr, fmt.Errorf("%w: %q is longer than %d bytes", ErrInvalidAddress, s, AddressLength)
	}
	if len(h)%2 == 1 {
		h = "0" + h
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return addr, fmt.Errorf("%w: %q: %w", ErrInvalidAddress, s, err)
	}
	copy(addr[AddressLength-len(b):], b)
	return addr, nil
}

// MustParseAddress is ParseAddress for literals known at compile time.
func MustParseAddress(s string) AccountAddress {
	addr, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return addr
}

// IsAddressLiteral reports whether s looks like a 0x prefixed address.
func IsAddressLiteral(s string) bool {
	if !strings.HasPrefix(s, "0x") || len(s) == 2 || len(s) > 2+2*AddressLength {
		return false
	}
	for _, c := range s[2:] {
		if !isHexDigit(c) {
			return false
		}
	}
	return true
}

func isHexDigit(c rune) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// String returns the long form, 0x followed by 64 hex characters.
func (a AccountAddress) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// ShortString trims leading zeros, e.g. 0x1 for the framework account.
func (a AccountAddress) ShortString() string {
	s := strings.TrimLeft(hex.EncodeToString(a[:]), "0")
	if s == "" {
		return "0x0"
	}
	return "0x" + s
}

func (a AccountAddress) Bytes() []byte {
	return a[:]
}

func (a AccountAddress) MarshalBCS() ([]byte, error) {
	return a.Bytes(), nil
}

func (a AccountAddress) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *AccountAddress) UnmarshalText(text []byte) error {
	addr, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
