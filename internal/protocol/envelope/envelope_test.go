package envelope_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dfxid/internal/crypto"
	"dfxid/internal/domain"
	"dfxid/internal/protocol/envelope"
)

type keySigner struct {
	priv ed25519.PrivateKey
	err  error
}

func (k keySigner) Sign(msg []byte) ([]byte, error) {
	if k.err != nil {
		return nil, k.err
	}
	return ed25519.Sign(k.priv, msg), nil
}

func (k keySigner) PublicKey() ([]byte, error) {
	return crypto.PublicKeyDER(k.priv.Public().(ed25519.PublicKey))
}

func newSigner(t *testing.T) keySigner {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return keySigner{priv: priv}
}

func queryRequest() envelope.Request {
	return envelope.Request{
		CallType:      domain.CallQuery,
		CanisterID:    "ryjl3-tyaaa-aaaaa-aaaba-cai",
		MethodName:    "account_balance",
		Arg:           []byte("DIDL\x00\x00"),
		IngressExpiry: 1_700_000_300_000_000_000,
	}
}

func TestBuild_QueryEnvelope(t *testing.T) {
	s := newSigner(t)
	raw, id, err := envelope.Build(s, queryRequest())
	require.NoError(t, err)

	assert.Equal(t, []byte{0xd9, 0xd9, 0xf7}, raw[:3], "self-describe tag")

	env, c, err := envelope.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestID(sha256.Sum256(env.Content)), id)
	assert.Equal(t, "query", c.RequestType)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 2, 1, 1}, c.CanisterID)
	assert.Equal(t, "account_balance", c.MethodName)
	assert.Equal(t, []byte("DIDL\x00\x00"), c.Arg)
	assert.Nil(t, c.Nonce)

	der, err := s.PublicKey()
	require.NoError(t, err)
	assert.Equal(t, der, env.SenderPubKey)
	assert.Equal(t, crypto.SelfAuthenticatingPrincipal(der), c.Sender)

	msg := append([]byte("\x0Aic-request"), id[:]...)
	assert.True(t, ed25519.Verify(s.priv.Public().(ed25519.PublicKey), msg, env.SenderSig))

	verified, err := envelope.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, id, verified)
}

func TestBuild_QueryIsDeterministic(t *testing.T) {
	s := newSigner(t)
	a, idA, err := envelope.Build(s, queryRequest())
	require.NoError(t, err)
	b, idB, err := envelope.Build(s, queryRequest())
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, idA, idB)
}

func TestBuild_UpdateCarriesNonce(t *testing.T) {
	s := newSigner(t)
	req := queryRequest()
	req.CallType = domain.CallUpdate

	a, idA, err := envelope.Build(s, req)
	require.NoError(t, err)
	b, idB, err := envelope.Build(s, req)
	require.NoError(t, err)
	assert.NotEqual(t, idA, idB)

	_, c, err := envelope.Decode(a)
	require.NoError(t, err)
	assert.Equal(t, "call", c.RequestType)
	assert.Len(t, c.Nonce, 16)

	_, err = envelope.Verify(b)
	require.NoError(t, err)
}

func TestBuild_Rejections(t *testing.T) {
	s := newSigner(t)

	req := queryRequest()
	req.CallType = "read_state"
	_, _, err := envelope.Build(s, req)
	require.Error(t, err)

	req = queryRequest()
	req.CanisterID = "not-a-canister"
	_, _, err = envelope.Build(s, req)
	require.ErrorIs(t, err, crypto.ErrInvalidPrincipal)

	boom := errors.New("token removed")
	_, _, err = envelope.Build(keySigner{priv: s.priv, err: boom}, queryRequest())
	require.ErrorIs(t, err, boom)
}

func TestVerify_TamperedSignature(t *testing.T) {
	s := newSigner(t)
	raw, _, err := envelope.Build(s, queryRequest())
	require.NoError(t, err)

	env, _, err := envelope.Decode(raw)
	require.NoError(t, err)
	env.SenderSig[0] ^= 0xff
	tampered, err := cbor.Marshal(cbor.Tag{Number: envelope.SelfDescribeTag, Content: env})
	require.NoError(t, err)

	_, err = envelope.Verify(tampered)
	require.Error(t, err)

	_, err = envelope.Verify([]byte{0x01})
	require.ErrorIs(t, err, envelope.ErrNotSelfDescribed)
}

func TestDecode_RequiresSelfDescribeTag(t *testing.T) {
	s := newSigner(t)
	raw, id, err := envelope.Build(s, queryRequest())
	require.NoError(t, err)

	verified, err := envelope.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, id, verified)

	_, _, err = envelope.Decode(raw[3:])
	require.ErrorIs(t, err, envelope.ErrNotSelfDescribed)
}
