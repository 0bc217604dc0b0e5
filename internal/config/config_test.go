package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "darkhunt.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[simulation]
tick_rate = "50ms"
seed = 7

[agent]
chase_burst = "3s"
chase_gate = "always_in_dark"
leash_distance = 25.0

[director]
max_concurrent_bursts = 1
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 50*time.Millisecond, cfg.Simulation.TickRate)
	assert.EqualValues(t, 7, cfg.Simulation.Seed)
	assert.Equal(t, 3*time.Second, cfg.Agent.ChaseBurst)
	assert.Equal(t, GateAlwaysInDark, cfg.Agent.ChaseGate)
	assert.Equal(t, 25.0, cfg.Agent.LeashDistance)
	assert.Equal(t, 1, cfg.Director.MaxConcurrentBursts)

	// untouched keys keep their defaults
	assert.Equal(t, 4*time.Second, cfg.Agent.ChaseCooldown)
	assert.Equal(t, 0.25, cfg.Director.WeakChargeThreshold)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadRejectsUnknownGate(t *testing.T) {
	path := writeConfig(t, `
[agent]
chase_gate = "berserk"
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "berserk")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestDefaultsValidate(t *testing.T) {
	assert.NoError(t, Defaults().Validate())
}
