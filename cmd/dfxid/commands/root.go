package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"dfxid/internal/app"
)

var (
	configRoot   string
	identityName string
	logLevel     string
	logFormat    string

	appCtx *app.App
)

// Execute runs the CLI and prints any error in red.
func Execute() error {
	root := newRootCmd()
	err := root.Execute()
	if err != nil {
		color.New(color.FgRed).Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

func newRootCmd() *cobra.Command {
	env := app.ConfigFromEnv()

	root := &cobra.Command{
		Use:           "dfxid",
		Short:         "Manage signing identities and sign canister calls offline",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := env
			cfg.Root = configRoot
			cfg.Identity = identityName
			cfg.LogLevel = logLevel
			cfg.LogFormat = logFormat

			a, err := app.New(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			appCtx = a
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configRoot, "config-root", env.Root, "configuration root (default $DFX_CONFIG_ROOT/.config/dfx or ~/.config/dfx)")
	root.PersistentFlags().StringVar(&identityName, "identity", env.Identity, "identity to use for this command ($DFX_IDENTITY)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", env.LogLevel, "log level: debug, info, warn, error ($DFXID_LOG_LEVEL)")
	root.PersistentFlags().StringVar(&logFormat, "log-format", env.LogFormat, "log format: console or json ($DFXID_LOG_FORMAT)")

	root.AddCommand(identityCmd(), signCmd())
	return root
}

func success(w io.Writer, format string, args ...any) {
	color.New(color.FgGreen).Fprintf(w, format+"\n", args...)
}

func notice(w io.Writer, format string, args ...any) {
	color.New(color.FgYellow).Fprintf(w, format+"\n", args...)
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
