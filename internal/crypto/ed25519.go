package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
)

// PEMBlockType is the PEM tag used for stored private keys.
const PEMBlockType = "PRIVATE KEY"

var (
	// ErrNoPEMBlock is returned when the input holds no PRIVATE KEY block.
	ErrNoPEMBlock = errors.New("no PRIVATE KEY block found")
	// ErrNotEd25519 is returned for keys of any other algorithm.
	ErrNotEd25519 = errors.New("private key is not an Ed25519 key")
)

// GenerateEd25519PEM returns a fresh Ed25519 key as PEM-encoded PKCS#8.
func GenerateEd25519PEM() ([]byte, error) {
	return GenerateEd25519PEMFrom(rand.Reader)
}

// GenerateEd25519PEMFrom is GenerateEd25519PEM drawing the seed from random.
func GenerateEd25519PEMFrom(random io.Reader) ([]byte, error) {
	_, priv, err := ed25519.GenerateKey(random)
	if err != nil {
		return nil, err
	}
	defer Wipe(priv)

	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return nil, err
	}
	defer Wipe(der)

	return pem.EncodeToMemory(&pem.Block{Type: PEMBlockType, Bytes: der}), nil
}

// ParseEd25519PEM decodes the first PRIVATE KEY block in data.
func ParseEd25519PEM(data []byte) (ed25519.PrivateKey, error) {
	var block *pem.Block
	for {
		block, data = pem.Decode(data)
		if block == nil {
			return nil, ErrNoPEMBlock
		}
		if block.Type == PEMBlockType {
			break
		}
	}

	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parsing PKCS#8 key: %w", err)
	}
	priv, ok := key.(ed25519.PrivateKey)
	if !ok {
		return nil, ErrNotEd25519
	}
	return priv, nil
}

// PublicKeyDER returns the DER SubjectPublicKeyInfo for pub.
func PublicKeyDER(pub ed25519.PublicKey) ([]byte, error) {
	return x509.MarshalPKIXPublicKey(pub)
}

// SignEd25519 signs msg with priv and returns the signature.
func SignEd25519(priv ed25519.PrivateKey, msg []byte) []byte {
	return ed25519.Sign(priv, msg)
}

// VerifyEd25519 verifies sig over msg against a DER SubjectPublicKeyInfo.
func VerifyEd25519(der, msg, sig []byte) (bool, error) {
	key, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return false, err
	}
	pub, ok := key.(ed25519.PublicKey)
	if !ok {
		return false, ErrNotEd25519
	}
	return ed25519.Verify(pub, msg, sig), nil
}
