package identity

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dfxid/internal/crypto"
	"dfxid/internal/domain"
	"dfxid/internal/store"
)

// identityDirName is the registry root below the configuration root.
const identityDirName = "identity"

// Manager owns the identity registry and the persisted default identity.
type Manager struct {
	configs domain.ConfigStore
	ids     domain.IdentityStore

	configuration domain.GlobalConfiguration
	selected      string

	override   string
	log        *slog.Logger
	legacyPath func() (string, error)
	random     io.Reader
	openModule ModuleOpener
	pin        PinSource
}

// Open returns a Manager for the configuration root dir.
func Open(dir string, opts ...Option) (*Manager, error) {
	return NewManager(
		store.NewConfigFileStore(dir),
		store.NewIdentityFileStore(filepath.Join(dir, identityDirName)),
		opts...,
	)
}

// NewManager loads the global configuration from configs, initializing the
// default identity on first run, and resolves the selected identity.
func NewManager(configs domain.ConfigStore, ids domain.IdentityStore, opts ...Option) (*Manager, error) {
	m := &Manager{
		configs:    configs,
		ids:        ids,
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		legacyPath: LegacyCredentialsPath,
		random:     rand.Reader,
		openModule: unavailableModule,
		pin:        EnvPin,
	}
	for _, opt := range opts {
		opt(m)
	}

	exists, err := configs.Exists()
	if err != nil {
		return nil, fmt.Errorf("cannot stat configuration file at %q: %w", configs.Path(), err)
	}
	if exists {
		m.configuration, err = configs.LoadConfiguration()
	} else {
		m.configuration, err = m.initialize()
	}
	if err != nil {
		return nil, err
	}

	m.selected = m.configuration.Default
	if m.override != "" {
		if err := m.requireIdentityExists(m.override); err != nil {
			return nil, err
		}
		m.selected = m.override
	}
	return m, nil
}

// LegacyCredentialsPath returns ~/.dfinity/identity/creds.pem.
func LegacyCredentialsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", ErrCannotFindHomeDirectory
	}
	return filepath.Join(home, ".dfinity", "identity", "creds.pem"), nil
}

func (m *Manager) initialize() (domain.GlobalConfiguration, error) {
	name := domain.DefaultIdentityName
	m.log.Info(`creating the "default" identity`)

	pemPath := m.ids.PEMPath(name)
	hasPEM, err := m.ids.HasPEM(name)
	if err != nil {
		return domain.GlobalConfiguration{}, err
	}
	if hasPEM {
		m.log.Info("using key already in place", "path", pemPath)
	} else {
		if err := m.ids.CreateDir(name); err != nil {
			return domain.GlobalConfiguration{}, err
		}
		legacy, err := m.legacyPath()
		if err != nil {
			return domain.GlobalConfiguration{}, err
		}
		data, err := os.ReadFile(legacy)
		switch {
		case err == nil:
			m.log.Info("migrating key", "from", legacy, "to", pemPath)
			if err := m.ids.WritePEM(name, data); err != nil {
				return domain.GlobalConfiguration{}, err
			}
		case errors.Is(err, os.ErrNotExist):
			m.log.Info("generating new key", "path", pemPath)
			if err := m.generateKey(name); err != nil {
				return domain.GlobalConfiguration{}, err
			}
		default:
			return domain.GlobalConfiguration{}, fmt.Errorf("cannot read legacy key at %q: %w", legacy, err)
		}
	}

	cfg := domain.GlobalConfiguration{Default: name}
	if err := m.configs.SaveConfiguration(cfg); err != nil {
		return domain.GlobalConfiguration{}, err
	}
	m.log.Info(`created the "default" identity`)
	return cfg, nil
}

// InstantiateSelectedIdentity loads the identity selected for this process.
func (m *Manager) InstantiateSelectedIdentity() (*Identity, error) {
	return m.InstantiateIdentity(m.selected)
}

// InstantiateIdentity loads the named identity. Hardware identities are
// returned without opening their module.
func (m *Manager) InstantiateIdentity(name string) (*Identity, error) {
	if err := m.requireIdentityExists(name); err != nil {
		return nil, err
	}

	hasCfg, err := m.ids.HasConfiguration(name)
	if err != nil {
		return nil, err
	}
	if hasCfg {
		cfg, err := m.ids.ReadConfiguration(name)
		if err != nil {
			return nil, err
		}
		if cfg.HSM != nil {
			signer, err := NewHardwareSigner(*cfg.HSM, m.openModule, m.pin)
			if err != nil {
				return nil, fmt.Errorf("identity %s: %w", name, err)
			}
			return &Identity{Name: name, Dir: m.ids.Dir(name), signer: signer}, nil
		}
		hasPEM, err := m.ids.HasPEM(name)
		if err != nil {
			return nil, err
		}
		if !hasPEM {
			return nil, fmt.Errorf("identity %s: %w at %q", name, ErrInvalidIdentityConfiguration, m.ids.ConfigPath(name))
		}
	}

	pemBytes, err := m.ids.ReadPEM(name)
	if err != nil {
		return nil, err
	}
	signer, err := NewSoftwareSigner(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("identity %s: corrupt key at %q: %w", name, m.ids.PEMPath(name), err)
	}
	return &Identity{Name: name, Dir: m.ids.Dir(name), signer: signer}, nil
}

// CreateNewIdentity creates name with a generated key, or as a hardware
// delegation when params.Hardware is set. The default is left unchanged.
func (m *Manager) CreateNewIdentity(name string, params domain.CreationParameters) error {
	if err := m.requireCreatable(name); err != nil {
		return err
	}
	if params.Hardware != nil {
		if _, err := decodeKeyID(*params.Hardware); err != nil {
			return err
		}
	}

	var pemBytes []byte
	if params.Hardware == nil {
		var err error
		if pemBytes, err = m.newKey(); err != nil {
			return err
		}
		defer crypto.Wipe(pemBytes)
	}

	if err := m.ids.CreateDir(name); err != nil {
		return err
	}
	if params.Hardware != nil {
		cfg := domain.IdentityConfiguration{HSM: params.Hardware}
		if err := m.ids.WriteConfiguration(name, cfg); err != nil {
			return err
		}
		m.log.Info("created hardware identity", "identity", name, "pkcs11_lib_path", params.Hardware.PKCS11LibPath)
		return nil
	}
	if err := m.ids.WritePEM(name, pemBytes); err != nil {
		return err
	}
	m.log.Info("created identity", "identity", name)
	return nil
}

// Import stores an existing PEM-encoded Ed25519 key as a new identity.
func (m *Manager) Import(name string, pemBytes []byte) error {
	if err := m.requireCreatable(name); err != nil {
		return err
	}
	if _, err := crypto.ParseEd25519PEM(pemBytes); err != nil {
		return fmt.Errorf("cannot import identity %s: %w", name, err)
	}
	if err := m.ids.CreateDir(name); err != nil {
		return err
	}
	if err := m.ids.WritePEM(name, pemBytes); err != nil {
		return err
	}
	m.log.Info("imported identity", "identity", name)
	return nil
}

// ExportPEM returns the PEM file of a software identity.
func (m *Manager) ExportPEM(name string) ([]byte, error) {
	id, err := m.InstantiateIdentity(name)
	if err != nil {
		return nil, err
	}
	if id.Hardware() {
		return nil, fmt.Errorf("%w: %s", ErrCannotExportHardwareIdentity, name)
	}
	return m.ids.ReadPEM(name)
}

// IdentityNames returns the sorted names of all identity directories.
func (m *Manager) IdentityNames() ([]string, error) {
	return m.ids.ListDirs()
}

// SelectedIdentityName returns the override, else the configured default.
func (m *Manager) SelectedIdentityName() string { return m.selected }

// DefaultIdentityName returns the persisted default.
func (m *Manager) DefaultIdentityName() string { return m.configuration.Default }

// Remove deletes a non-default identity and its directory.
func (m *Manager) Remove(name string) error {
	if err := m.requireIdentityExists(name); err != nil {
		return err
	}
	if name == m.configuration.Default {
		return ErrCannotDeleteDefaultIdentity
	}
	if err := m.ids.RemoveFiles(name); err != nil {
		return err
	}
	if err := m.ids.RemoveDir(name); err != nil {
		return err
	}
	m.log.Info("removed identity", "identity", name)
	return nil
}

// Rename moves identity from to the directory of to. It reports whether the
// persisted default changed as a result. to is only a destination path; no
// key is loaded from it.
func (m *Manager) Rename(from, to string) (bool, error) {
	if to == domain.AnonymousIdentityName {
		return false, ErrCannotCreateAnonymousIdentity
	}
	if err := validateName(to); err != nil {
		return false, err
	}
	if err := m.requireIdentityExists(from); err != nil {
		return false, err
	}
	taken, err := m.ids.DirExists(to)
	if err != nil {
		return false, err
	}
	if taken {
		return false, fmt.Errorf("%w: %s", ErrIdentityAlreadyExists, to)
	}

	if err := m.ids.RenameDir(from, to); err != nil {
		return false, &RenameError{From: m.ids.Dir(from), To: m.ids.Dir(to), Err: err}
	}
	m.log.Info("renamed identity", "from", from, "to", to)

	if m.selected == from {
		m.selected = to
	}
	if from != m.configuration.Default {
		return false, nil
	}
	if err := m.writeDefaultIdentity(to); err != nil {
		return false, err
	}
	return true, nil
}

// UseIdentityNamed persists name as the default identity.
func (m *Manager) UseIdentityNamed(name string) error {
	if err := m.requireIdentityExists(name); err != nil {
		return err
	}
	return m.writeDefaultIdentity(name)
}

func (m *Manager) writeDefaultIdentity(name string) error {
	cfg := domain.GlobalConfiguration{Default: name}
	if err := m.configs.SaveConfiguration(cfg); err != nil {
		return err
	}
	m.configuration = cfg
	m.log.Info("default identity changed", "identity", name)
	return nil
}

func (m *Manager) newKey() ([]byte, error) {
	pemBytes, err := crypto.GenerateEd25519PEMFrom(m.random)
	if err != nil {
		return nil, &KeyGenerationError{Err: err}
	}
	return pemBytes, nil
}

func (m *Manager) generateKey(name string) error {
	pemBytes, err := m.newKey()
	if err != nil {
		return err
	}
	defer crypto.Wipe(pemBytes)
	return m.ids.WritePEM(name, pemBytes)
}

func (m *Manager) requireCreatable(name string) error {
	if name == domain.AnonymousIdentityName {
		return ErrCannotCreateAnonymousIdentity
	}
	if err := validateName(name); err != nil {
		return err
	}
	err := m.requireIdentityExists(name)
	if err == nil {
		return fmt.Errorf("%w: %s", ErrIdentityAlreadyExists, name)
	}
	if !errors.Is(err, ErrIdentityDoesNotExist) {
		return err
	}
	return nil
}

// requireIdentityExists succeeds iff the PEM file or the identity
// configuration file of name is present.
func (m *Manager) requireIdentityExists(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	hasPEM, err := m.ids.HasPEM(name)
	if err != nil {
		return err
	}
	if hasPEM {
		return nil
	}
	hasCfg, err := m.ids.HasConfiguration(name)
	if err != nil {
		return err
	}
	if hasCfg {
		return nil
	}
	return &DoesNotExistError{Name: name, Path: m.ids.PEMPath(name)}
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, "/\\\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidIdentityName, name)
	}
	return nil
}
