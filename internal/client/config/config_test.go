package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func resetArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"test"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadDefaults(t *testing.T) {
	var cfg Config
	cfg.LoadDefaults()

	require.Equal(t, "http://localhost:5000", cfg.BackendURL)
	require.Equal(t, 10*time.Second, cfg.RequestTimeout)
	require.Equal(t, 2*time.Second, cfg.SessionPollInterval)
	require.Equal(t, "pubkeeper.db", cfg.DataFile)
	require.False(t, cfg.Debug)
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	resetArgs(t, "-a", "http://api.example.org", "-t", "5", "-i", "7", "-d", "other.db", "-debug")

	cfg := LoadConfig()
	require.Equal(t, "http://api.example.org", cfg.BackendURL)
	require.Equal(t, 5*time.Second, cfg.RequestTimeout)
	require.Equal(t, 7*time.Second, cfg.SessionPollInterval)
	require.Equal(t, "other.db", cfg.DataFile)
	require.True(t, cfg.Debug)
}

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	resetArgs(t)
	t.Setenv("BACKEND_DEPLOYED_URL", "https://prod.example.org")

	cfg := LoadConfig()
	require.Equal(t, "https://prod.example.org", cfg.BackendURL)
}

func TestLoadConfig_FlagBeatsEnv(t *testing.T) {
	resetArgs(t, "-a", "http://flag.example.org")
	t.Setenv("BACKEND_DEPLOYED_URL", "https://env.example.org")

	cfg := LoadConfig()
	require.Equal(t, "http://flag.example.org", cfg.BackendURL)
}

func TestParseJson_OverlaysOnlyPresentFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"backend_url": "http://json.example.org",
		"request_timeout": "3s"
	}`), 0o600))

	resetArgs(t, "-c", path)

	var cfg Config
	cfg.LoadDefaults()
	parseJson(&cfg)

	require.Equal(t, "http://json.example.org", cfg.BackendURL)
	require.Equal(t, 3*time.Second, cfg.RequestTimeout)
	require.Equal(t, "pubkeeper.db", cfg.DataFile, "absent fields keep defaults")
}

func TestParseJson_NoFileFlagIsNoOp(t *testing.T) {
	resetArgs(t)

	var cfg Config
	cfg.LoadDefaults()
	parseJson(&cfg)
	require.Equal(t, "http://localhost:5000", cfg.BackendURL)
}

func TestParseJson_BadFilePanics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))
	resetArgs(t, "-c", path)

	var cfg Config
	cfg.LoadDefaults()
	require.Panics(t, func() { parseJson(&cfg) })
}
