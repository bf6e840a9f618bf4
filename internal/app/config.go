package app

import (
	"os"
	"path/filepath"

	"dfxid/internal/services/identity"
)

// Environment variables read when building the app.
const (
	EnvConfigRoot = "DFX_CONFIG_ROOT"
	EnvIdentity   = "DFX_IDENTITY"
	EnvLogLevel   = "DFXID_LOG_LEVEL"
	EnvLogFormat  = "DFXID_LOG_FORMAT"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Root      string // configuration root, e.g. $HOME/.config/dfx
	Identity  string // identity override for this process; empty uses the default
	LogLevel  string // debug, info, warn or error
	LogFormat string // json or console

	// HardwareModule opens PKCS#11 modules; nil leaves hardware identities unusable.
	HardwareModule identity.ModuleOpener
}

// ConfigFromEnv returns a Config populated from the environment. Root is left
// empty when it cannot be resolved; New reports that error.
func ConfigFromEnv() Config {
	root, _ := DefaultRoot()
	return Config{
		Root:      root,
		Identity:  os.Getenv(EnvIdentity),
		LogLevel:  os.Getenv(EnvLogLevel),
		LogFormat: os.Getenv(EnvLogFormat),
	}
}

// DefaultRoot returns $DFX_CONFIG_ROOT/.config/dfx when the variable is set,
// else $HOME/.config/dfx.
func DefaultRoot() (string, error) {
	base := os.Getenv(EnvConfigRoot)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			return "", identity.ErrCannotFindHomeDirectory
		}
		base = home
	}
	return filepath.Join(base, ".config", "dfx"), nil
}
