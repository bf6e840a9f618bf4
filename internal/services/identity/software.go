package identity

import (
	"crypto/ed25519"

	"dfxid/internal/crypto"
	"dfxid/internal/domain"
)

// SoftwareSigner signs with an Ed25519 key loaded from a PEM file.
type SoftwareSigner struct {
	key ed25519.PrivateKey
	der []byte
}

// NewSoftwareSigner parses a PEM-encoded PKCS#8 Ed25519 key.
func NewSoftwareSigner(pemBytes []byte) (*SoftwareSigner, error) {
	key, err := crypto.ParseEd25519PEM(pemBytes)
	if err != nil {
		return nil, err
	}
	der, err := crypto.PublicKeyDER(key.Public().(ed25519.PublicKey))
	if err != nil {
		return nil, err
	}
	return &SoftwareSigner{key: key, der: der}, nil
}

func (s *SoftwareSigner) Sign(msg []byte) ([]byte, error) {
	return crypto.SignEd25519(s.key, msg), nil
}

func (s *SoftwareSigner) PublicKey() ([]byte, error) {
	return append([]byte(nil), s.der...), nil
}

// Compile-time assertion that SoftwareSigner implements domain.Signer.
var _ domain.Signer = (*SoftwareSigner)(nil)
