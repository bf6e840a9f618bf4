package store

import (
	"fmt"
	"path/filepath"

	"dfxid/internal/domain"
)

const configFilename = "identity.json"

// ConfigFileStore persists the global identity configuration.
type ConfigFileStore struct {
	dir string
}

// NewConfigFileStore returns a ConfigFileStore rooted at dir.
func NewConfigFileStore(dir string) *ConfigFileStore {
	return &ConfigFileStore{dir: dir}
}

// Path returns the location of the configuration file.
func (s *ConfigFileStore) Path() string {
	return filepath.Join(s.dir, configFilename)
}

// Exists reports whether the configuration file is present.
func (s *ConfigFileStore) Exists() (bool, error) {
	return fileExists(s.Path())
}

// LoadConfiguration reads the configuration. A missing "default" key falls
// back to the default identity name.
func (s *ConfigFileStore) LoadConfiguration() (domain.GlobalConfiguration, error) {
	var cfg domain.GlobalConfiguration
	if err := readJSON(s.Path(), &cfg); err != nil {
		return domain.GlobalConfiguration{}, fmt.Errorf("cannot read configuration file: %w", err)
	}
	if cfg.Default == "" {
		cfg.Default = domain.DefaultIdentityName
	}
	return cfg, nil
}

// SaveConfiguration writes cfg, replacing any previous file.
func (s *ConfigFileStore) SaveConfiguration(cfg domain.GlobalConfiguration) error {
	if err := writeJSON(s.Path(), cfg, 0o600); err != nil {
		return fmt.Errorf("cannot write configuration file: %w", err)
	}
	return nil
}

// Compile-time assertion that ConfigFileStore implements domain.ConfigStore.
var _ domain.ConfigStore = (*ConfigFileStore)(nil)
