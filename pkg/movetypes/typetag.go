// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package movetypes

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/fardream/go-bcs/bcs"
)

var ErrTypeTagParse = errors.New("malformed type tag")

// TypeTag variant indexes, in the order the ledger serializes them.
const (
	variantBool uint8 = iota
	variantU8
	variantU64
	variantU128
	variantAddress
	variantSigner
	variantVector
	variantStruct
	variantU16
	variantU32
	variantU256
)

// TypeTag is a resolved generic type argument.
type TypeTag interface {
	fmt.Stringer
	MarshalBCS() ([]byte, error)
}

// PrimitiveTag covers every type tag without inner types.
type PrimitiveTag struct {
	name    string
	variant uint8
}

var (
	BoolTag    = PrimitiveTag{"bool", variantBool}
	U8Tag      = PrimitiveTag{"u8", variantU8}
	U16Tag     = PrimitiveTag{"u16", variantU16}
	U32Tag     = PrimitiveTag{"u32", variantU32}
	U64Tag     = PrimitiveTag{"u64", variantU64}
	U128Tag    = PrimitiveTag{"u128", variantU128}
	U256Tag    = PrimitiveTag{"u256", variantU256}
	AddressTag = PrimitiveTag{"address", variantAddress}
	SignerTag  = PrimitiveTag{"signer", variantSigner}
)

var primitiveTags = map[string]PrimitiveTag{
	BoolTag.name:    BoolTag,
	U8Tag.name:      U8Tag,
	U16Tag.name:     U16Tag,
	U32Tag.name:     U32Tag,
	U64Tag.name:     U64Tag,
	U128Tag.name:    U128Tag,
	U256Tag.name:    U256Tag,
	AddressTag.name: AddressTag,
	SignerTag.name:  SignerTag,
}

func (p PrimitiveTag) String() string {
	return p.name
}

func (p PrimitiveTag) MarshalBCS() ([]byte, error) {
	return bcs.ULEB128Encode(p.variant), nil
}

type VectorTag struct {
	Elem TypeTag
}

func (v VectorTag) String() string {
	return "vector<" + v.Elem.String() + ">"
}

func (v VectorTag) MarshalBCS() ([]byte, error) {
	inner, err := v.Elem.MarshalBCS()
	if err != nil {
		return nil, err
	}
	return append(bcs.ULEB128Encode(variantVector), inner...), nil
}

// StructTag names a struct type, e.g. 0x1::aptos_coin::AptosCoin.
type StructTag struct {
	Address  AccountAddress
	Module   string
	Name     string
	TypeArgs []TypeTag
}

func (s StructTag) String() string {
	var sb strings.Builder
	sb.WriteString(s.Address.ShortString())
	sb.WriteString("::")
	sb.WriteString(s.Module)
	sb.WriteString("::")
	sb.WriteString(s.Name)
	if len(s.TypeArgs) > 0 {
		sb.WriteString("<")
		for i, t := range s.TypeArgs {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(t.String())
		}
		sb.WriteString(">")
	}
	return sb.String()
}

// MarshalBCS encodes the struct tag body, without the TypeTag variant.
func (s StructTag) MarshalBCS() ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(s.Address.Bytes())
	for _, ident := range []string{s.Module, s.Name} {
		b, err := bcs.Marshal(ident)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	tags, err := MarshalTypeTags(s.TypeArgs)
	if err != nil {
		return nil, err
	}
	buf.Write(tags)
	return buf.Bytes(), nil
}

// StructTypeTag wraps a StructTag as a TypeTag.
type StructTypeTag struct {
	StructTag
}

func (s StructTypeTag) MarshalBCS() ([]byte, error) {
	inner, err := s.StructTag.MarshalBCS()
	if err != nil {
		return nil, err
	}
	return append(bcs.ULEB128Encode(variantStruct), inner...), nil
}

// MarshalTypeTags encodes a length prefixed sequence of type tags.
func MarshalTypeTags(tags []TypeTag) ([]byte, error) {
	buf := bytes.NewBuffer(bcs.ULEB128Encode(len(tags)))
	for _, t := range tags {
		b, err := t.MarshalBCS()
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	return buf.Bytes(), nil
}

// ParseTypeTag parses a fully qualified type such as
// 0x1::coin::CoinStore<0x1::aptos_coin::AptosCoin> or vector<u8>.
func ParseTypeTag(s string) (TypeTag, error) {
	toks, err := tokenize(s)
	if err != nil {
		return nil, err
	}
	p := &tagParser{src: s, toks: toks}
	tag, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, p.errorf("unexpected %q after type", p.toks[p.pos])
	}
	return tag, nil
}

// ParseStructTag is ParseTypeTag restricted to struct types.
func ParseStructTag(s string) (StructTag, error) {
	tag, err := ParseTypeTag(s)
	if err != nil {
		return StructTag{}, err
	}
	st, ok := tag.(StructTypeTag)
	if !ok {
		return StructTag{}, fmt.Errorf("%w: %q is not a struct type", ErrTypeTagParse, s)
	}
	return st.StructTag, nil
}

func ParseTypeTags(ss []string) ([]TypeTag, error) {
	tags := make([]TypeTag, 0, len(ss))
	for _, s := range ss {
		t, err := ParseTypeTag(s)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, nil
}

func tokenize(s string) ([]string, error) {
	toks := []string{}
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '<' || c == '>' || c == ',':
			toks = append(toks, string(c))
			i++
		case c == ':':
			if i+1 >= len(s) || s[i+1] != ':' {
				return nil, fmt.Errorf("%w: single ':' at offset %d in %q", ErrTypeTagParse, i, s)
			}
			toks = append(toks, "::")
			i += 2
		case isIdentChar(c):
			j := i
			for j < len(s) && isIdentChar(s[j]) {
				j++
			}
			toks = append(toks, s[i:j])
			i = j
		default:
			return nil, fmt.Errorf("%w: unexpected character %q in %q", ErrTypeTagParse, c, s)
		}
	}
	if len(toks) == 0 {
		return nil, fmt.Errorf("%w: empty type", ErrTypeTagParse)
	}
	return toks, nil
}

func isIdentChar(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

type tagParser struct {
	src  string
	toks []string
	pos  int
}

func (p *tagParser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s in %q", ErrTypeTagParse, fmt.Sprintf(format, args...), p.src)
}

func (p *tagParser) next() (string, bool) {
	if p.pos >= len(p.toks) {
		return "", false
	}
	t := p.toks[p.pos]
	p.pos++
	return t, true
}

func (p *tagParser) peek() string {
	if p.pos >= len(p.toks) {
		return ""
	}
	return p.toks[p.pos]
}

func (p *tagParser) expect(want string) error {
	got, ok := p.next()
	if !ok {
		return p.errorf("expected %q, got end of input", want)
	}
	if got != want {
		return p.errorf("expected %q, got %q", want, got)
	}
	return nil
}

func (p *tagParser) ident() (string, error) {
	t, ok := p.next()
	if !ok {
		return "", p.errorf("expected identifier, got end of input")
	}
	if !isIdentChar(t[0]) {
		return "", p.errorf("expected identifier, got %q", t)
	}
	return t, nil
}

func (p *tagParser) parseType() (TypeTag, error) {
	head, err := p.ident()
	if err != nil {
		return nil, err
	}
	if prim, ok := primitiveTags[head]; ok {
		return prim, nil
	}
	if head == "vector" {
		if err := p.expect("<"); err != nil {
			return nil, err
		}
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if err := p.expect(">"); err != nil {
			return nil, err
		}
		return VectorTag{Elem: elem}, nil
	}
	addr, err := ParseAddress(head)
	if err != nil {
		return nil, p.errorf("bad struct address %q", head)
	}
	st := StructTag{Address: addr}
	if err := p.expect("::"); err != nil {
		return nil, err
	}
	if st.Module, err = p.ident(); err != nil {
		return nil, err
	}
	if err := p.expect("::"); err != nil {
		return nil, err
	}
	if st.Name, err = p.ident(); err != nil {
		return nil, err
	}
	if p.peek() == "<" {
		p.pos++
		for {
			arg, err := p.parseType()
			if err != nil {
				return nil, err
			}
			st.TypeArgs = append(st.TypeArgs, arg)
			sep, ok := p.next()
			if !ok {
				return nil, p.errorf("unterminated type arguments")
			}
			if sep == ">" {
				break
			}
			if sep != "," {
				return nil, p.errorf("expected ',' or '>', got %q", sep)
			}
		}
	}
	return StructTypeTag{st}, nil
}
