package app

import (
	"io"
	"log/slog"

	"dfxid/internal/services/identity"
	"dfxid/internal/services/sign"
)

// App bundles the services the CLI commands operate on.
type App struct {
	Config     Config
	Log        *slog.Logger
	Identities *identity.Manager
	Sign       *sign.Service
}

// New builds the dependency graph from cfg. Log output goes to logw.
func New(cfg Config, logw io.Writer) (*App, error) {
	log := NewLogger(cfg.LogLevel, cfg.LogFormat, logw)
	ids, err := openIdentities(cfg, log)
	if err != nil {
		return nil, err
	}
	return &App{
		Config:     cfg,
		Log:        log,
		Identities: ids,
		Sign:       sign.New(ids, sign.WithLogger(log)),
	}, nil
}
