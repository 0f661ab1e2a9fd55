package scenario

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/oomph-ac/kinemove/movement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	s, err := Parse([]byte(`
ticks: 10
character:
  movement:
    max_walk_speed: 300
`), movement.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 60.0, s.TickRate)
	assert.Equal(t, -980.0, s.Gravity)
	assert.Equal(t, "capsule", s.Character.Shape.Kind)
	assert.Equal(t, 300.0, s.Character.Movement.MaxWalkSpeed)
	assert.Equal(t, movement.DefaultConfig().JumpHeight, s.Character.Movement.JumpHeight)
}

func TestParseInvalid(t *testing.T) {
	cases := map[string]string{
		"no ticks":        `tick_rate: 60`,
		"bad yaml":        `ticks: [1`,
		"shape":           "ticks: 1\ncharacter:\n  shape:\n    kind: cone",
		"movement":        "ticks: 1\ncharacter:\n  movement:\n    max_walk_speed: -1",
		"debug mode":      "ticks: 1\ncharacter:\n  debug: [nonsense]",
		"empty box":       "ticks: 1\ngeometry:\n  boxes:\n    - min: [0, 0, 0]\n      max: [0, 1, 1]",
		"still platform":  "ticks: 1\ngeometry:\n  boxes:\n    - min: [0, 0, 0]\n      max: [1, 1, 1]\n      path: [[5, 0, 0]]",
		"steep slope":     "ticks: 1\ngeometry:\n  slopes:\n    - direction: [1, 0, 0]\n      angle: 90",
		"late expect":     "ticks: 5\nexpect:\n  - tick: 5",
		"long deflection": "ticks: 5\nscript:\n  - move: [1, 1]",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data), movement.DefaultConfig())
			assert.Error(t, err)
		})
	}
}

func TestBuildRejectsEditedScenario(t *testing.T) {
	s := Default(movement.DefaultConfig())
	s.Ticks = 1
	_, err := s.Build(nil)
	require.NoError(t, err)

	s.Character.Shape.Kind = "cone"
	_, err = s.Build(nil)
	assert.Error(t, err)

	s = Default(movement.DefaultConfig())
	s.Ticks = 1
	s.Character.Debug = []string{"nonsense"}
	_, err = s.Build(nil)
	assert.Error(t, err)
}

func TestLoadNamesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "idle.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ticks: 1\n"), 0644))

	s, err := Load(path, movement.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "idle", s.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"), movement.DefaultConfig())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func execute(t *testing.T, s *Scenario) Result {
	t.Helper()
	run, err := s.Build(nil)
	require.NoError(t, err)
	res, err := run.Execute(context.Background())
	require.NoError(t, err)
	return res
}

func TestWalkScenario(t *testing.T) {
	s, err := Load("testdata/walk.yaml", movement.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "walk forward", s.Name)

	res := execute(t, s)
	assert.True(t, res.Passed(), "failures: %v", res.Failures)
	assert.EqualValues(t, 120, res.Ticks)
	assert.Greater(t, res.Location.X(), 1000.0)
	assert.Less(t, res.Location.X(), 1200.0)
	assert.InDelta(t, 92, res.Location.Z(), 0.5)
	assert.True(t, res.Grounded)
	assert.GreaterOrEqual(t, res.TickMax, res.TickMean)

	// A second run of the same scenario is bit for bit identical.
	assert.Equal(t, res.Checksum, execute(t, s).Checksum)
}

func TestPlatformScenario(t *testing.T) {
	s, err := Load("testdata/platform.yaml", movement.DefaultConfig())
	require.NoError(t, err)

	res := execute(t, s)
	assert.True(t, res.Passed(), "failures: %v", res.Failures)
}

func TestFailedExpectation(t *testing.T) {
	s, err := Parse([]byte(`
ticks: 10
geometry:
  planes:
    - normal: [0, 0, 1]
character:
  location: [0, 0, 92]
expect:
  - tick: 5
    grounded: false
    location: [100, 0, 92]
`), movement.DefaultConfig())
	require.NoError(t, err)

	res := execute(t, s)
	assert.False(t, res.Passed())
	assert.Len(t, res.Failures, 2)
}

func TestExecuteCancelled(t *testing.T) {
	s, err := Parse([]byte("ticks: 10\n"), movement.DefaultConfig())
	require.NoError(t, err)
	run, err := s.Build(nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = run.Execute(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBundledScenariosLoad(t *testing.T) {
	paths, err := filepath.Glob("../scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)
	for _, path := range paths {
		s, err := Load(path, movement.DefaultConfig())
		require.NoError(t, err, path)
		_, err = s.Build(nil)
		assert.NoError(t, err, path)
	}
}
