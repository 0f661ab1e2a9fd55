package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oomph-ac/kinemove/movement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveDefaultAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kinesim.toml")
	require.NoError(t, SaveDefault(path))
	assert.Error(t, SaveDefault(path))

	s, err := Load(path)
	require.NoError(t, err)
	def := DefaultSettings()
	assert.Equal(t, def.Log, s.Log)
	assert.Equal(t, def.Simulation, s.Simulation)
	assert.Equal(t, def.StatsView, s.StatsView)
	assert.Equal(t, def.Movement, s.Movement)
}

func TestLoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kinesim.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[Log]
Level = "debug"

[Simulation]
Workers = 2
Scenarios = ["a.yaml", "b.yaml"]

[Movement]
max_walk_speed = 450.0
`), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", s.Log.Level)
	assert.Equal(t, 2, s.Simulation.Workers)
	assert.Equal(t, []string{"a.yaml", "b.yaml"}, s.Simulation.Scenarios)
	assert.Equal(t, 450.0, s.Movement.MaxWalkSpeed)
	assert.Equal(t, movement.DefaultConfig().MaxStepHeight, s.Movement.MaxStepHeight)
	assert.Equal(t, "localhost:18066", s.StatsView.Address)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[Movement]\nmax_walk_speed = -5.0\n"), 0644))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "invalid movement config")
}
