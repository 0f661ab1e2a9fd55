package settings

import (
	"errors"
	"fmt"
	"os"

	"github.com/oomph-ac/kinemove/movement"
	"github.com/pelletier/go-toml"
)

// Settings contains everything that can be configured for the simulation harness.
type Settings struct {
	Log struct {
		// Level is a logrus level name.
		Level string
		// File additionally writes logs to the given path when set.
		File string
	}
	Sentry struct {
		DSN         string
		Environment string
	}
	Simulation struct {
		// Workers is the number of scenarios run at once. Zero uses one per CPU.
		Workers int
		// Scenarios are run when no scenario files are given on the command line.
		Scenarios []string
	}
	StatsView struct {
		Enabled bool
		Address string
	}
	// Movement is the base character config that scenario files override.
	Movement movement.Config
}

// DefaultSettings returns the default harness settings.
func DefaultSettings() Settings {
	s := Settings{}
	s.Log.Level = "info"
	s.Sentry.Environment = "development"
	s.Simulation.Scenarios = []string{"scenarios/walk.yaml", "scenarios/stairs.yaml", "scenarios/platform.yaml"}
	s.StatsView.Address = "localhost:18066"
	s.Movement = movement.DefaultConfig()
	return s
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return errors.New("settings file already exists")
	}
	data, err := toml.Marshal(DefaultSettings())
	if err != nil {
		return fmt.Errorf("failed encoding default settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed creating settings file: %w", err)
	}
	return nil
}

// Load will load the settings from your settings file on top of the defaults, and return an error if the
// file does not exist.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Settings{}, errors.New("settings file doesn't exist")
	} else if err != nil {
		return Settings{}, fmt.Errorf("error reading config: %w", err)
	}

	settings := DefaultSettings()
	if err = toml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err = settings.Movement.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid movement config: %w", err)
	}
	return settings, nil
}
