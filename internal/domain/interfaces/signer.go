package interfaces

// Signer is the capability handed to callers for an instantiated identity.
type Signer interface {
	// Sign returns a signature over msg.
	Sign(msg []byte) ([]byte, error)
	// PublicKey returns the DER-encoded SubjectPublicKeyInfo of the signing key.
	PublicKey() ([]byte, error)
}
