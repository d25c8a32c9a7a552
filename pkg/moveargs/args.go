// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package moveargs implements the typed entry function arguments and their
// canonical BCS encoding.
package moveargs

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/aptoswap/aptoswap-cli/pkg/movetypes"

	"github.com/holiman/uint256"
)

var ErrEncoding = errors.New("invalid typed argument")

type Kind string

const (
	KindAddress Kind = "address"
	KindString  Kind = "string"
	KindU8      Kind = "u8"
	KindU16     Kind = "u16"
	KindU32     Kind = "u32"
	KindU64     Kind = "u64"
	KindU128    Kind = "u128"
)

var Kinds = []Kind{KindAddress, KindString, KindU8, KindU16, KindU32, KindU64, KindU128}

// Arg is one typed value argument. The set of implementations is closed.
type Arg interface {
	Kind() Kind
	String() string
	sealed()
}

type Address struct {
	Value movetypes.AccountAddress
}

type String struct {
	Value string
}

type U8 struct {
	Value uint8
}

type U16 struct {
	Value uint16
}

type U32 struct {
	Value uint32
}

type U64 struct {
	Value uint64
}

// U128 holds values up to 2^128-1. Values wider than that are rejected by
// the constructors and again by Encode.
type U128 struct {
	Value *uint256.Int
}

func (Address) Kind() Kind { return KindAddress }
func (String) Kind() Kind  { return KindString }
func (U8) Kind() Kind      { return KindU8 }
func (U16) Kind() Kind     { return KindU16 }
func (U32) Kind() Kind     { return KindU32 }
func (U64) Kind() Kind     { return KindU64 }
func (U128) Kind() Kind    { return KindU128 }

func (Address) sealed() {}
func (String) sealed()  {}
func (U8) sealed()      {}
func (U16) sealed()     {}
func (U32) sealed()     {}
func (U64) sealed()     {}
func (U128) sealed()    {}

func (a Address) String() string { return a.Value.ShortString() }
func (s String) String() string  { return fmt.Sprintf("%q", s.Value) }
func (u U8) String() string      { return fmt.Sprintf("%d", u.Value) }
func (u U16) String() string     { return fmt.Sprintf("%d", u.Value) }
func (u U32) String() string     { return fmt.Sprintf("%d", u.Value) }
func (u U64) String() string     { return fmt.Sprintf("%d", u.Value) }

func (u U128) String() string {
	if u.Value == nil {
		return "<nil>"
	}
	return u.Value.Dec()
}

func NewAddress(s string) (Address, error) {
	addr, err := movetypes.ParseAddress(s)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return Address{Value: addr}, nil
}

func NewString(s string) String {
	return String{Value: s}
}

func NewU8(v uint64) (U8, error) {
	if v > math.MaxUint8 {
		return U8{}, outOfRange(KindU8, v)
	}
	return U8{Value: uint8(v)}, nil
}

func NewU16(v uint64) (U16, error) {
	if v > math.MaxUint16 {
		return U16{}, outOfRange(KindU16, v)
	}
	return U16{Value: uint16(v)}, nil
}

func NewU32(v uint64) (U32, error) {
	if v > math.MaxUint32 {
		return U32{}, outOfRange(KindU32, v)
	}
	return U32{Value: uint32(v)}, nil
}

func NewU64(v uint64) U64 {
	return U64{Value: v}
}

func NewU128(v *uint256.Int) (U128, error) {
	if v == nil {
		return U128{}, fmt.Errorf("%w: nil u128", ErrEncoding)
	}
	if v.BitLen() > 128 {
		return U128{}, outOfRange(KindU128, v.Dec())
	}
	return U128{Value: new(uint256.Int).Set(v)}, nil
}

func NewU128FromBig(v *big.Int) (U128, error) {
	if v == nil || v.Sign() < 0 {
		return U128{}, fmt.Errorf("%w: %v is not a valid u128", ErrEncoding, v)
	}
	u, overflow := uint256.FromBig(v)
	if overflow {
		return U128{}, outOfRange(KindU128, v.String())
	}
	return NewU128(u)
}

func NewU128FromString(dec string) (U128, error) {
	u, err := uint256.FromDecimal(dec)
	if err != nil {
		return U128{}, fmt.Errorf("%w: %q is not a valid u128: %w", ErrEncoding, dec, err)
	}
	return NewU128(u)
}

func outOfRange(kind Kind, v interface{}) error {
	return fmt.Errorf("%w: %v overflows %s", ErrEncoding, v, kind)
}
