package identity

import (
	"io"
	"log/slog"
)

// Option configures a Manager.
type Option func(*Manager)

// WithOverride selects name for this process without persisting it.
// The identity must exist.
func WithOverride(name string) Option {
	return func(m *Manager) { m.override = name }
}

// WithLogger sets the logger used for first-run and lifecycle messages.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// WithLegacyCredentials replaces the resolver of the legacy key location.
func WithLegacyCredentials(resolve func() (string, error)) Option {
	return func(m *Manager) { m.legacyPath = resolve }
}

// WithHardwareModule sets how PKCS#11 modules are opened for hardware identities.
func WithHardwareModule(open ModuleOpener) Option {
	return func(m *Manager) { m.openModule = open }
}

// WithPinSource replaces the PIN lookup used by hardware identities.
func WithPinSource(pin PinSource) Option {
	return func(m *Manager) { m.pin = pin }
}

// WithRandom replaces the entropy source used for new keys.
func WithRandom(r io.Reader) Option {
	return func(m *Manager) { m.random = r }
}
