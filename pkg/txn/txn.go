// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package txn builds, signs and hashes raw transactions.
package txn

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/aptoswap/aptoswap-cli/pkg/key"
	"github.com/aptoswap/aptoswap-cli/pkg/movetypes"

	"github.com/fardream/go-bcs/bcs"
	"golang.org/x/crypto/sha3"
)

const (
	rawTransactionSalt = "APTOS::RawTransaction"
	transactionSalt    = "APTOS::Transaction"

	ed25519AuthenticatorVariant uint8 = 0
	userTransactionVariant      byte  = 0
)

var ErrUnsignedPayload = errors.New("raw transaction has no payload")

// Payload is any executable payload that knows its TransactionPayload
// encoding.
type Payload interface {
	fmt.Stringer
	MarshalBCS() ([]byte, error)
}

// RawTransaction is the unsigned envelope. It is built fresh for every
// submission and never reused.
type RawTransaction struct {
	Sender                  movetypes.AccountAddress
	SequenceNumber          uint64
	Payload                 Payload
	MaxGasAmount            uint64
	GasUnitPrice            uint64
	ExpirationTimestampSecs uint64
	ChainID                 uint8
}

// rawTransactionTail holds the fixed width fields that follow the payload.
type rawTransactionTail struct {
	MaxGasAmount            uint64
	GasUnitPrice            uint64
	ExpirationTimestampSecs uint64
	ChainID                 uint8
}

func (r *RawTransaction) MarshalBCS() ([]byte, error) {
	if r.Payload == nil {
		return nil, ErrUnsignedPayload
	}
	var buf bytes.Buffer
	buf.Write(r.Sender.Bytes())
	seq, err := bcs.Marshal(r.SequenceNumber)
	if err != nil {
		return nil, err
	}
	buf.Write(seq)
	payload, err := r.Payload.MarshalBCS()
	if err != nil {
		return nil, fmt.Errorf("failed encoding payload %s: %w", r.Payload, err)
	}
	buf.Write(payload)
	tail, err := bcs.Marshal(rawTransactionTail{
		MaxGasAmount:            r.MaxGasAmount,
		GasUnitPrice:            r.GasUnitPrice,
		ExpirationTimestampSecs: r.ExpirationTimestampSecs,
		ChainID:                 r.ChainID,
	})
	if err != nil {
		return nil, err
	}
	buf.Write(tail)
	return buf.Bytes(), nil
}

// SigningMessage returns the salted bytes a signer must sign for r.
func (r *RawTransaction) SigningMessage() ([]byte, error) {
	body, err := r.MarshalBCS()
	if err != nil {
		return nil, err
	}
	return append(prefixHash(rawTransactionSalt), body...), nil
}

// Sign signs r with k. The key must control the sender account.
func Sign(r *RawTransaction, k key.Key) (*SignedTransaction, error) {
	if k.Address() != r.Sender {
		return nil, fmt.Errorf("%w: signer %s, sender %s", key.ErrAddressMismatch, k.Address(), r.Sender)
	}
	msg, err := r.SigningMessage()
	if err != nil {
		return nil, err
	}
	sig, err := k.Sign(msg)
	if err != nil {
		return nil, err
	}
	return &SignedTransaction{
		Raw:       r,
		PublicKey: k.PublicKey(),
		Signature: sig,
	}, nil
}

// SignedTransaction is a raw transaction with a single Ed25519 authenticator.
type SignedTransaction struct {
	Raw       *RawTransaction
	PublicKey []byte
	Signature []byte
}

func (s *SignedTransaction) MarshalBCS() ([]byte, error) {
	raw, err := s.Raw.MarshalBCS()
	if err != nil {
		return nil, err
	}
	buf := bytes.NewBuffer(raw)
	buf.Write(bcs.ULEB128Encode(ed25519AuthenticatorVariant))
	for _, b := range [][]byte{s.PublicKey, s.Signature} {
		enc, err := bcs.Marshal(b)
		if err != nil {
			return nil, err
		}
		buf.Write(enc)
	}
	return buf.Bytes(), nil
}

// Hash returns the 0x prefixed hex transaction hash the node will report for s.
func (s *SignedTransaction) Hash() (string, error) {
	body, err := s.MarshalBCS()
	if err != nil {
		return "", err
	}
	h := sha3.New256()
	h.Write(prefixHash(transactionSalt))
	h.Write([]byte{userTransactionVariant})
	h.Write(body)
	return "0x" + hex.EncodeToString(h.Sum(nil)), nil
}

func prefixHash(salt string) []byte {
	sum := sha3.Sum256([]byte(salt))
	return sum[:]
}
