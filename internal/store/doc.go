// Package store provides file-based persistence for the identity registry.
//
// It contains concrete implementations of the domain storage interfaces:
//   - the global configuration at <root>/identity.json (ConfigFileStore)
//   - one directory per identity under <root>/identity holding either
//     identity.pem or identity.json (IdentityFileStore)
//
// JSON documents are written through a temp file and renamed into place.
// Stores keep no in-memory state; the filesystem is the single source of
// truth and no cross-process locking is attempted.
package store
