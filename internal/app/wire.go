package app

import (
	"log/slog"

	"dfxid/internal/services/identity"
)

func openIdentities(cfg Config, log *slog.Logger) (*identity.Manager, error) {
	root := cfg.Root
	if root == "" {
		var err error
		if root, err = DefaultRoot(); err != nil {
			return nil, err
		}
	}

	opts := []identity.Option{identity.WithLogger(log)}
	if cfg.Identity != "" {
		opts = append(opts, identity.WithOverride(cfg.Identity))
	}
	if cfg.HardwareModule != nil {
		opts = append(opts, identity.WithHardwareModule(cfg.HardwareModule))
	}
	return identity.Open(root, opts...)
}
