package crypto

import (
	"crypto/x509"
	"fmt"

	"golang.org/x/crypto/ssh"
)

// Fingerprint returns the OpenSSH SHA256 fingerprint of a DER public key,
// e.g. "SHA256:Gk9…".
func Fingerprint(der []byte) (string, error) {
	key, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return "", fmt.Errorf("parsing public key: %w", err)
	}
	pub, err := ssh.NewPublicKey(key)
	if err != nil {
		return "", fmt.Errorf("converting public key: %w", err)
	}
	return ssh.FingerprintSHA256(pub), nil
}
