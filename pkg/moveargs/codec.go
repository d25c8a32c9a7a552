// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package moveargs

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/aptoswap/aptoswap-cli/pkg/movetypes"

	"github.com/fardream/go-bcs/bcs"
	"github.com/holiman/uint256"
)

const u128Size = 16

// Encode returns the BCS encoding of arg as expected by the Move VM calling
// convention: fixed width little endian integers, raw 32 byte addresses and
// ULEB128 length prefixed strings.
func Encode(arg Arg) ([]byte, error) {
	switch v := arg.(type) {
	case Address:
		return v.Value.Bytes(), nil
	case String:
		if !utf8.ValidString(v.Value) {
			return nil, fmt.Errorf("%w: string argument is not valid UTF-8", ErrEncoding)
		}
		return marshal(v.Value)
	case U8:
		return marshal(v.Value)
	case U16:
		return marshal(v.Value)
	case U32:
		return marshal(v.Value)
	case U64:
		return marshal(v.Value)
	case U128:
		if v.Value == nil {
			return nil, fmt.Errorf("%w: nil u128", ErrEncoding)
		}
		if v.Value.BitLen() > 128 {
			return nil, outOfRange(KindU128, v.Value.Dec())
		}
		be := v.Value.Bytes32()
		le := make([]byte, u128Size)
		for i := range le {
			le[i] = be[len(be)-1-i]
		}
		return le, nil
	case nil:
		return nil, fmt.Errorf("%w: nil argument", ErrEncoding)
	default:
		return nil, fmt.Errorf("%w: unsupported argument type %T", ErrEncoding, arg)
	}
}

// EncodeAll encodes args in order, failing on the first bad argument.
func EncodeAll(args []Arg) ([][]byte, error) {
	encoded := make([][]byte, 0, len(args))
	for i, arg := range args {
		b, err := Encode(arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		encoded = append(encoded, b)
	}
	return encoded, nil
}

func marshal(v interface{}) ([]byte, error) {
	b, err := bcs.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return b, nil
}

// Decode is the inverse of Encode for a known kind. The whole input must be
// consumed.
func Decode(kind Kind, b []byte) (Arg, error) {
	switch kind {
	case KindAddress:
		if len(b) != movetypes.AddressLength {
			return nil, badLength(kind, movetypes.AddressLength, len(b))
		}
		var addr movetypes.AccountAddress
		copy(addr[:], b)
		return Address{Value: addr}, nil
	case KindString:
		var s string
		if err := unmarshalExact(b, &s); err != nil {
			return nil, err
		}
		return String{Value: s}, nil
	case KindU8:
		var v uint8
		if err := unmarshalFixed(kind, b, 1, &v); err != nil {
			return nil, err
		}
		return U8{Value: v}, nil
	case KindU16:
		var v uint16
		if err := unmarshalFixed(kind, b, 2, &v); err != nil {
			return nil, err
		}
		return U16{Value: v}, nil
	case KindU32:
		var v uint32
		if err := unmarshalFixed(kind, b, 4, &v); err != nil {
			return nil, err
		}
		return U32{Value: v}, nil
	case KindU64:
		var v uint64
		if err := unmarshalFixed(kind, b, 8, &v); err != nil {
			return nil, err
		}
		return U64{Value: v}, nil
	case KindU128:
		if len(b) != u128Size {
			return nil, badLength(kind, u128Size, len(b))
		}
		be := slices.Clone(b)
		slices.Reverse(be)
		return U128{Value: new(uint256.Int).SetBytes(be)}, nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrEncoding, kind)
	}
}

func unmarshalFixed(kind Kind, b []byte, size int, v interface{}) error {
	if len(b) != size {
		return badLength(kind, size, len(b))
	}
	return unmarshalExact(b, v)
}

func unmarshalExact(b []byte, v interface{}) error {
	n, err := bcs.Unmarshal(b, v)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	if n != len(b) {
		return fmt.Errorf("%w: %d trailing bytes", ErrEncoding, len(b)-n)
	}
	return nil
}

func badLength(kind Kind, want, got int) error {
	return fmt.Errorf("%w: %s expects %d bytes, got %d", ErrEncoding, kind, want, got)
}
