package setup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 35, cfg.MaxMoves)
	require.Equal(t, 70, cfg.MaxPly(), "each side gets the full move budget")
	require.Equal(t, AIBoth, cfg.AISide)
	require.Equal(t, 4, cfg.SearchPly)
}

func TestConfigValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"zero moves":      func(c *Config) { c.MaxMoves = 0 },
		"negative moves":  func(c *Config) { c.MaxMoves = -3 },
		"zero search ply": func(c *Config) { c.SearchPly = 0 },
		"unknown ai side": func(c *Config) { c.AISide = "spectator" },
	}
	for name, corrupt := range cases {
		cfg := DefaultConfig()
		corrupt(&cfg)
		require.Error(t, cfg.Validate(), "case %q should not validate", name)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"test_mode: true\nmax_moves: 20\nai_side: attacker\nseed: 99\n",
	), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.True(t, cfg.TestMode)
	require.Equal(t, 20, cfg.MaxMoves)
	require.Equal(t, AIAttacker, cfg.AISide)
	require.Equal(t, uint64(99), cfg.Seed)
	require.Equal(t, 4, cfg.SearchPly, "omitted fields keep their defaults")
	require.Equal(t, "testCase.txt", cfg.ScenarioFile)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_moves: -1\n"), 0o644))
	_, err = LoadConfig(path)
	require.ErrorContains(t, err, "max_moves")
}
