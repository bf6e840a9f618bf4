package app_test

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dfxid/internal/app"
	"dfxid/internal/services/identity"
)

func TestDefaultRoot(t *testing.T) {
	base := t.TempDir()
	t.Setenv(app.EnvConfigRoot, base)
	root, err := app.DefaultRoot()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, ".config", "dfx"), root)

	home := t.TempDir()
	t.Setenv(app.EnvConfigRoot, "")
	t.Setenv("HOME", home)
	root, err = app.DefaultRoot()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "dfx"), root)
}

func TestConfigFromEnv(t *testing.T) {
	base := t.TempDir()
	t.Setenv(app.EnvConfigRoot, base)
	t.Setenv(app.EnvIdentity, "alice")
	t.Setenv(app.EnvLogLevel, "debug")
	t.Setenv(app.EnvLogFormat, "json")

	cfg := app.ConfigFromEnv()
	assert.Equal(t, filepath.Join(base, ".config", "dfx"), cfg.Root)
	assert.Equal(t, "alice", cfg.Identity)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestNew_FirstRunLogsAndSelectsDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	var logs bytes.Buffer
	a, err := app.New(app.Config{Root: t.TempDir(), LogFormat: "json"}, &logs)
	require.NoError(t, err)

	assert.Equal(t, "default", a.Identities.SelectedIdentityName())
	assert.Contains(t, logs.String(), `creating the \"default\" identity`)

	line, _, _ := bytes.Cut(logs.Bytes(), []byte("\n"))
	var rec map[string]any
	require.NoError(t, json.Unmarshal(line, &rec))
	assert.Equal(t, "INFO", rec["level"])
}

func TestNew_UnknownOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	_, err := app.New(app.Config{Root: t.TempDir(), Identity: "nobody"}, &bytes.Buffer{})
	require.ErrorIs(t, err, identity.ErrIdentityDoesNotExist)
}

func TestNewLogger_Console(t *testing.T) {
	var buf bytes.Buffer
	log := app.NewLogger("warn", "", &buf)

	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.With("identity", "default").WithGroup("call").Warn("slow", "method", "greet")
	out := buf.String()
	assert.Contains(t, out, "WRN")
	assert.Contains(t, out, "slow")
	assert.Contains(t, out, "identity=")
	assert.Contains(t, out, "call.method=")
	assert.Contains(t, out, "greet")
}
