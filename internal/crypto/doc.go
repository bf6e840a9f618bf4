// Package crypto exposes the key primitives used by dfxid.
//
// Contents
//
//   - Ed25519 key generation into PEM-encoded PKCS#8 and parsing back
//     (GenerateEd25519PEM, ParseEd25519PEM)
//   - DER SubjectPublicKeyInfo encoding (PublicKeyDER)
//   - Self-authenticating principal text derived from a DER public key
//     (SelfAuthenticatingPrincipal, PrincipalText)
//   - OpenSSH-style SHA256 fingerprints for display (Fingerprint)
//   - Best-effort memory wiping for sensitive byte slices (Wipe)
//
// # Notes
//
// Private keys never leave this package in any form other than PEM bytes or
// an ed25519.PrivateKey. Callers should Wipe intermediate buffers when
// practical.
package crypto
