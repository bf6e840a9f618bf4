package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"dfxid/internal/domain"
)

const (
	pemFilename          = "identity.pem"
	identityJSONFilename = "identity.json"
)

// IdentityFileStore owns one directory per identity under root.
type IdentityFileStore struct {
	root string
}

// NewIdentityFileStore returns an IdentityFileStore rooted at root.
func NewIdentityFileStore(root string) *IdentityFileStore {
	return &IdentityFileStore{root: root}
}

// Dir returns the directory of the named identity.
func (s *IdentityFileStore) Dir(name string) string { return filepath.Join(s.root, name) }

// PEMPath returns the private key location of the named identity.
func (s *IdentityFileStore) PEMPath(name string) string {
	return filepath.Join(s.Dir(name), pemFilename)
}

// ConfigPath returns the identity configuration location of the named identity.
func (s *IdentityFileStore) ConfigPath(name string) string {
	return filepath.Join(s.Dir(name), identityJSONFilename)
}

func (s *IdentityFileStore) HasPEM(name string) (bool, error) {
	return fileExists(s.PEMPath(name))
}

func (s *IdentityFileStore) HasConfiguration(name string) (bool, error) {
	return fileExists(s.ConfigPath(name))
}

func (s *IdentityFileStore) DirExists(name string) (bool, error) {
	return fileExists(s.Dir(name))
}

// CreateDir creates the identity directory and any missing parents.
func (s *IdentityFileStore) CreateDir(name string) error {
	dir := s.Dir(name)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("cannot create identity directory at %q: %w", dir, err)
	}
	return nil
}

// WritePEM stores the private key and restricts it to owner-read-only.
func (s *IdentityFileStore) WritePEM(name string, pemBytes []byte) error {
	path := s.PEMPath(name)
	if err := writeFile(path, pemBytes, 0o600); err != nil {
		return fmt.Errorf("identity key: %w", err)
	}
	return restrictToOwnerRead(path)
}

// ReadPEM returns the raw PEM file.
func (s *IdentityFileStore) ReadPEM(name string) ([]byte, error) {
	path := s.PEMPath(name)
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read identity key at %q: %w", path, err)
	}
	return b, nil
}

// WriteConfiguration stores the per-identity configuration.
func (s *IdentityFileStore) WriteConfiguration(name string, cfg domain.IdentityConfiguration) error {
	if err := writeJSON(s.ConfigPath(name), cfg, 0o600); err != nil {
		return fmt.Errorf("identity configuration: %w", err)
	}
	return nil
}

// ReadConfiguration reads the per-identity configuration.
func (s *IdentityFileStore) ReadConfiguration(name string) (domain.IdentityConfiguration, error) {
	var cfg domain.IdentityConfiguration
	if err := readJSON(s.ConfigPath(name), &cfg); err != nil {
		return domain.IdentityConfiguration{}, fmt.Errorf("cannot read identity configuration: %w", err)
	}
	return cfg, nil
}

// RemoveFiles deletes both key artifacts. Missing files are ignored.
func (s *IdentityFileStore) RemoveFiles(name string) error {
	for _, path := range []string{s.ConfigPath(name), s.PEMPath(name)} {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("cannot remove identity file at %q: %w", path, err)
		}
	}
	return nil
}

// RemoveDir removes the (now empty) identity directory.
func (s *IdentityFileStore) RemoveDir(name string) error {
	dir := s.Dir(name)
	if err := os.Remove(dir); err != nil {
		return fmt.Errorf("cannot remove identity directory at %q: %w", dir, err)
	}
	return nil
}

// RenameDir moves the directory of from to that of to.
func (s *IdentityFileStore) RenameDir(from, to string) error {
	return os.Rename(s.Dir(from), s.Dir(to))
}

// ListDirs returns the sorted names of directories directly under root.
func (s *IdentityFileStore) ListDirs() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("cannot list identities at %q: %w", s.root, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}

// Compile-time assertion that IdentityFileStore implements domain.IdentityStore.
var _ domain.IdentityStore = (*IdentityFileStore)(nil)
