package usblog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
max_level = "debug"

[[filter]]
target = "motor"
level = "warn"

[[filter]]
target = "sensor"
`))
	require.NoError(t, err)
	require.Equal(t, LevelDebug, cfg.MaxLevel)
	require.Equal(t, []Filter{
		{Target: "motor", Level: LevelWarn},
		{Target: "sensor"},
	}, cfg.Filters)
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig(nil)
	require.NoError(t, err)
	require.Equal(t, LevelInfo, cfg.MaxLevel)
	require.Empty(t, cfg.Filters)
}

func TestParseConfig_BadLevel(t *testing.T) {
	_, err := ParseConfig([]byte(`max_level = "loud"`))
	require.Error(t, err)
}

func TestParseConfig_EmptyFilterTarget(t *testing.T) {
	_, err := ParseConfig([]byte(`
[[filter]]
level = "warn"
`))
	require.ErrorContains(t, err, "empty target")
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.toml")
	require.NoError(t, os.WriteFile(path, []byte(`max_level = "trace"`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, LevelTrace, cfg.MaxLevel)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}
