// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package txn

import (
	"crypto/ed25519"
	"encoding/hex"
	"testing"

	"github.com/aptoswap/aptoswap-cli/pkg/key"
	"github.com/aptoswap/aptoswap-cli/pkg/moveargs"
	"github.com/aptoswap/aptoswap-cli/pkg/movetypes"
	"github.com/aptoswap/aptoswap-cli/pkg/payload"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"
)

const testPrivateKey = "0x9bf49a6a0755f953811fce125f2683d50429c3bb49e074147e0089a52eae155f"

func newTestRaw(t *testing.T, sender movetypes.AccountAddress) *RawTransaction {
	f, err := payload.Compile(payload.CallDescriptor{
		Function:  "0xabc::pool::initialize",
		Arguments: []moveargs.Arg{moveargs.U8{Value: 6}},
	})
	require.NoError(t, err)
	return &RawTransaction{
		Sender:                  sender,
		SequenceNumber:          7,
		Payload:                 f,
		MaxGasAmount:            20_000,
		GasUnitPrice:            100,
		ExpirationTimestampSecs: 1_700_000_050,
		ChainID:                 4,
	}
}

func TestRawTransactionLayout(t *testing.T) {
	require := require.New(t)
	k, err := key.NewSoft(key.WithPrivateKeyEncoded(testPrivateKey))
	require.NoError(err)
	raw := newTestRaw(t, k.Address())

	b, err := raw.MarshalBCS()
	require.NoError(err)
	p, err := raw.Payload.MarshalBCS()
	require.NoError(err)

	require.Equal(k.Address().Bytes(), b[:32])
	require.Equal([]byte{7, 0, 0, 0, 0, 0, 0, 0}, b[32:40])
	require.Equal(p, b[40:40+len(p)])
	tail := b[40+len(p):]
	require.Len(tail, 8+8+8+1)
	require.Equal([]byte{0x20, 0x4e, 0, 0, 0, 0, 0, 0}, tail[:8])
	require.Equal(byte(4), tail[len(tail)-1])

	_, err = (&RawTransaction{}).MarshalBCS()
	require.ErrorIs(err, ErrUnsignedPayload)
}

func TestSignAndHash(t *testing.T) {
	require := require.New(t)
	k, err := key.NewSoft(key.WithPrivateKeyEncoded(testPrivateKey))
	require.NoError(err)
	raw := newTestRaw(t, k.Address())

	signed, err := Sign(raw, k)
	require.NoError(err)
	msg, err := raw.SigningMessage()
	require.NoError(err)
	salt := sha3.Sum256([]byte("APTOS::RawTransaction"))
	require.Equal(salt[:], msg[:32])
	require.True(ed25519.Verify(k.PublicKey(), msg, signed.Signature))

	b, err := signed.MarshalBCS()
	require.NoError(err)
	rawBytes, err := raw.MarshalBCS()
	require.NoError(err)
	require.Equal(rawBytes, b[:len(rawBytes)])
	auth := b[len(rawBytes):]
	require.Equal(byte(0x00), auth[0])
	require.Equal(byte(32), auth[1])
	require.Equal(k.PublicKey(), auth[2:34])
	require.Equal(byte(64), auth[34])
	require.Len(auth, 1+1+32+1+64)

	h1, err := signed.Hash()
	require.NoError(err)
	h2, err := signed.Hash()
	require.NoError(err)
	require.Equal(h1, h2)
	require.Len(h1, 66)
	_, err = hex.DecodeString(h1[2:])
	require.NoError(err)

	raw.SequenceNumber++
	other, err := Sign(raw, k)
	require.NoError(err)
	h3, err := other.Hash()
	require.NoError(err)
	require.NotEqual(h1, h3)
}

func TestSignRejectsForeignSender(t *testing.T) {
	k, err := key.NewSoft()
	require.NoError(t, err)
	_, err = Sign(newTestRaw(t, movetypes.CoreAddress), k)
	require.ErrorIs(t, err, key.ErrAddressMismatch)
}
