package interfaces

import domaintypes "dfxid/internal/domain/types"

// ConfigStore persists the global identity configuration.
type ConfigStore interface {
	Exists() (bool, error)
	LoadConfiguration() (domaintypes.GlobalConfiguration, error)
	SaveConfiguration(cfg domaintypes.GlobalConfiguration) error
	Path() string
}

// IdentityStore owns the per-identity directories under the registry root.
type IdentityStore interface {
	Dir(name string) string
	PEMPath(name string) string
	ConfigPath(name string) string

	HasPEM(name string) (bool, error)
	HasConfiguration(name string) (bool, error)
	DirExists(name string) (bool, error)
	CreateDir(name string) error

	WritePEM(name string, pemBytes []byte) error
	ReadPEM(name string) ([]byte, error)
	WriteConfiguration(name string, cfg domaintypes.IdentityConfiguration) error
	ReadConfiguration(name string) (domaintypes.IdentityConfiguration, error)

	RemoveFiles(name string) error
	RemoveDir(name string) error
	RenameDir(from, to string) error
	ListDirs() ([]string, error)
}
