package envelope

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"dfxid/internal/crypto"
	"dfxid/internal/domain"
)

// SelfDescribeTag marks a CBOR document as CBOR.
const SelfDescribeTag = 55799

// selfDescribePrefix is the encoding of SelfDescribeTag.
var selfDescribePrefix = []byte{0xd9, 0xd9, 0xf7}

// ErrNotSelfDescribed is returned by Decode for input without the self-describe tag.
var ErrNotSelfDescribed = errors.New("decode envelope: missing self-describe tag")

// RequestDomainSeparator prefixes the request id before signing.
const RequestDomainSeparator = "\x0Aic-request"

// Request describes one canister call to sign.
type Request struct {
	CallType      domain.CallType
	CanisterID    string
	MethodName    string
	Arg           []byte
	IngressExpiry uint64
}

// Content is the signed part of an envelope.
type Content struct {
	RequestType   string `cbor:"request_type"`
	Sender        []byte `cbor:"sender"`
	CanisterID    []byte `cbor:"canister_id"`
	MethodName    string `cbor:"method_name"`
	Arg           []byte `cbor:"arg"`
	IngressExpiry uint64 `cbor:"ingress_expiry"`
	Nonce         []byte `cbor:"nonce,omitempty"`
}

// Envelope is the outer map; Content is kept as the exact signed bytes.
type Envelope struct {
	Content      cbor.RawMessage `cbor:"content"`
	SenderPubKey []byte          `cbor:"sender_pubkey"`
	SenderSig    []byte          `cbor:"sender_sig"`
}

var encMode = mustEncMode()

func mustEncMode() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}

// Build encodes and signs req with signer.
func Build(signer domain.Signer, req Request) ([]byte, domain.RequestID, error) {
	var id domain.RequestID

	requestType, err := requestType(req.CallType)
	if err != nil {
		return nil, id, err
	}
	canister, err := crypto.ParsePrincipalText(req.CanisterID)
	if err != nil {
		return nil, id, fmt.Errorf("canister id: %w", err)
	}
	pub, err := signer.PublicKey()
	if err != nil {
		return nil, id, fmt.Errorf("sender public key: %w", err)
	}

	content := Content{
		RequestType:   requestType,
		Sender:        crypto.SelfAuthenticatingPrincipal(pub),
		CanisterID:    canister,
		MethodName:    req.MethodName,
		Arg:           req.Arg,
		IngressExpiry: req.IngressExpiry,
	}
	if content.Arg == nil {
		content.Arg = []byte{}
	}
	if req.CallType == domain.CallUpdate {
		nonce, err := uuid.NewRandom()
		if err != nil {
			return nil, id, fmt.Errorf("nonce: %w", err)
		}
		content.Nonce = nonce[:]
	}

	raw, err := encMode.Marshal(content)
	if err != nil {
		return nil, id, fmt.Errorf("encode content: %w", err)
	}
	id = sha256.Sum256(raw)

	sig, err := signer.Sign(SigningPayload(id))
	if err != nil {
		return nil, domain.RequestID{}, fmt.Errorf("sign request %s: %w", id, err)
	}

	out, err := encMode.Marshal(cbor.Tag{
		Number:  SelfDescribeTag,
		Content: Envelope{Content: raw, SenderPubKey: pub, SenderSig: sig},
	})
	if err != nil {
		return nil, domain.RequestID{}, fmt.Errorf("encode envelope: %w", err)
	}
	return out, id, nil
}

// SigningPayload returns the bytes the sender signs for id.
func SigningPayload(id domain.RequestID) []byte {
	return append([]byte(RequestDomainSeparator), id[:]...)
}

// Decode splits an envelope produced by Build into its parts. The decoder
// drops the self-describe tag itself, so its presence is checked on the raw
// bytes.
func Decode(data []byte) (Envelope, Content, error) {
	if !bytes.HasPrefix(data, selfDescribePrefix) {
		return Envelope{}, Content{}, ErrNotSelfDescribed
	}
	var env Envelope
	if err := cbor.Unmarshal(data, &env); err != nil {
		return Envelope{}, Content{}, fmt.Errorf("decode envelope: %w", err)
	}
	var c Content
	if err := cbor.Unmarshal(env.Content, &c); err != nil {
		return Envelope{}, Content{}, fmt.Errorf("decode content: %w", err)
	}
	return env, c, nil
}

// Verify checks the sender signature of an envelope and returns its request id.
func Verify(data []byte) (domain.RequestID, error) {
	env, c, err := Decode(data)
	if err != nil {
		return domain.RequestID{}, err
	}
	id := domain.RequestID(sha256.Sum256(env.Content))
	want := crypto.SelfAuthenticatingPrincipal(env.SenderPubKey)
	if string(c.Sender) != string(want) {
		return id, fmt.Errorf("sender %s does not match public key", crypto.PrincipalText(c.Sender))
	}
	ok, err := crypto.VerifyEd25519(env.SenderPubKey, SigningPayload(id), env.SenderSig)
	if err != nil {
		return id, err
	}
	if !ok {
		return id, fmt.Errorf("invalid signature for request %s", id)
	}
	return id, nil
}

func requestType(c domain.CallType) (string, error) {
	switch c {
	case domain.CallQuery:
		return "query", nil
	case domain.CallUpdate:
		return "call", nil
	}
	return "", fmt.Errorf("unknown call type %q", c)
}
