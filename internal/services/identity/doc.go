// Package identity is the single authority over named identities.
//
// A Manager owns the registry root (one directory per identity) and the
// persisted default identity. It creates identities with freshly generated
// Ed25519 keys or as delegations to a PKCS#11 module, selects them, renames
// and removes them, and instantiates them as domain.Signer values.
//
// All existence checks run before any mutation. Operations are not
// transactional across filesystem calls; the filesystem stays the source of
// truth and a failed operation can be retried.
package identity
