// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package moveargs

import (
	"fmt"
	"math/big"
	"slices"
	"strconv"
	"strings"

	"github.com/aptoswap/aptoswap-cli/pkg/movetypes"

	"github.com/holiman/uint256"
)

// Normalize converts the loosely typed shorthand into an explicit Arg:
// address looking strings become Address, other strings become String and
// any non negative integer becomes U64. Values that are already an Arg are
// returned unchanged.
func Normalize(v interface{}) (Arg, error) {
	switch x := v.(type) {
	case Arg:
		return x, nil
	case string:
		if movetypes.IsAddressLiteral(x) {
			return NewAddress(x)
		}
		return NewString(x), nil
	case uint8:
		return NewU64(uint64(x)), nil
	case uint16:
		return NewU64(uint64(x)), nil
	case uint32:
		return NewU64(uint64(x)), nil
	case uint64:
		return NewU64(x), nil
	case uint:
		return NewU64(uint64(x)), nil
	case int:
		return signedToU64(int64(x))
	case int8:
		return signedToU64(int64(x))
	case int16:
		return signedToU64(int64(x))
	case int32:
		return signedToU64(int64(x))
	case int64:
		return signedToU64(x)
	case *big.Int:
		if x == nil || x.Sign() < 0 || !x.IsUint64() {
			return nil, fmt.Errorf("%w: %v overflows %s", ErrEncoding, x, KindU64)
		}
		return NewU64(x.Uint64()), nil
	case *uint256.Int:
		if x == nil || !x.IsUint64() {
			return nil, fmt.Errorf("%w: %v overflows %s", ErrEncoding, x, KindU64)
		}
		return NewU64(x.Uint64()), nil
	default:
		return nil, fmt.Errorf("%w: cannot infer argument kind for %T", ErrEncoding, v)
	}
}

// NormalizeAll applies Normalize to every value, preserving order.
func NormalizeAll(vs ...interface{}) ([]Arg, error) {
	args := make([]Arg, 0, len(vs))
	for i, v := range vs {
		arg, err := Normalize(v)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		args = append(args, arg)
	}
	return args, nil
}

func signedToU64(v int64) (Arg, error) {
	if v < 0 {
		return nil, fmt.Errorf("%w: %d is negative", ErrEncoding, v)
	}
	return NewU64(uint64(v)), nil
}

// Parse reads a command line literal of the form <kind>:<value>, e.g. u8:6,
// address:0x1 or string:hello. Literals without a known kind prefix go
// through the shorthand rules, with decimal numbers read as u64.
func Parse(s string) (Arg, error) {
	if prefix, value, found := strings.Cut(s, ":"); found {
		kind := Kind(strings.ToLower(prefix))
		if slices.Contains(Kinds, kind) {
			return ParseKind(kind, value)
		}
	}
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return NewU64(n), nil
	}
	return Normalize(s)
}

func ParseAll(ss []string) ([]Arg, error) {
	args := make([]Arg, 0, len(ss))
	for i, s := range ss {
		arg, err := Parse(s)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		args = append(args, arg)
	}
	return args, nil
}

// ParseKind parses value as the given kind.
func ParseKind(kind Kind, value string) (Arg, error) {
	switch kind {
	case KindAddress:
		return NewAddress(value)
	case KindString:
		return NewString(value), nil
	case KindU128:
		return NewU128FromString(value)
	}
	bits := map[Kind]int{KindU8: 8, KindU16: 16, KindU32: 32, KindU64: 64}[kind]
	if bits == 0 {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrEncoding, kind)
	}
	n, err := strconv.ParseUint(value, 10, bits)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a valid %s: %w", ErrEncoding, value, kind, err)
	}
	switch kind {
	case KindU8:
		return NewU8(n)
	case KindU16:
		return NewU16(n)
	case KindU32:
		return NewU32(n)
	default:
		return NewU64(n), nil
	}
}
