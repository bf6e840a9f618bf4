package identity

import (
	"dfxid/internal/crypto"
	"dfxid/internal/domain"
)

// Identity is an instantiated identity bound to its key material.
type Identity struct {
	Name string
	Dir  string

	signer domain.Signer
}

func (id *Identity) Sign(msg []byte) ([]byte, error) { return id.signer.Sign(msg) }

func (id *Identity) PublicKey() ([]byte, error) { return id.signer.PublicKey() }

// Hardware reports whether signing is delegated to a PKCS#11 module.
func (id *Identity) Hardware() bool {
	_, ok := id.signer.(*HardwareSigner)
	return ok
}

// Principal returns the textual self-authenticating principal of the identity.
func (id *Identity) Principal() (string, error) {
	der, err := id.PublicKey()
	if err != nil {
		return "", err
	}
	return crypto.PrincipalText(crypto.SelfAuthenticatingPrincipal(der)), nil
}

// Fingerprint returns the SHA256 fingerprint of the public key.
func (id *Identity) Fingerprint() (string, error) {
	der, err := id.PublicKey()
	if err != nil {
		return "", err
	}
	return crypto.Fingerprint(der)
}

// Compile-time assertion that Identity implements domain.Signer.
var _ domain.Signer = (*Identity)(nil)
