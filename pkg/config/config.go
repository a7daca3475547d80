package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const (
	xdgAppName = "daybrief"
	configFile = "config.toml"
)

// Config holds the report settings. Everything has a usable default so a
// missing config file is not an error.
type Config struct {
	// HabitsList is the display name of the Google Tasks list treated as
	// the habits checklist.
	HabitsList string `toml:"habits_list"`
	// WindowDays is the rolling future window for calendar events.
	WindowDays int `toml:"window_days"`

	MailMax   int `toml:"mail_max"`
	TasksMax  int `toml:"tasks_max"`
	HabitsMax int `toml:"habits_max"`
	EventsMax int `toml:"events_max"`

	// AuthPort is the local port for the OAuth consent redirect. 0 picks
	// a free port.
	AuthPort int `toml:"auth_port"`
	// AuthTimeoutSecs bounds how long the consent flow waits for the user.
	AuthTimeoutSecs int `toml:"auth_timeout_secs"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		HabitsList:      "Habits",
		WindowDays:      7,
		MailMax:         5,
		TasksMax:        10,
		HabitsMax:       20,
		EventsMax:       15,
		AuthPort:        0,
		AuthTimeoutSecs: 120,
	}
}

// Dir returns the daybrief config directory (~/.config/daybrief).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", xdgAppName), nil
}

func configPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Load reads the settings file, filling in defaults for anything unset.
// A missing file yields the defaults.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := toml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the settings file, creating the config directory if needed.
func Save(cfg *Config) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	b, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(path, b, 0600)
}

// applyDefaults backfills zero values so a sparse file still behaves.
func (c *Config) applyDefaults() {
	d := Default()
	if c.HabitsList == "" {
		c.HabitsList = d.HabitsList
	}
	if c.WindowDays <= 0 {
		c.WindowDays = d.WindowDays
	}
	if c.MailMax <= 0 {
		c.MailMax = d.MailMax
	}
	if c.TasksMax <= 0 {
		c.TasksMax = d.TasksMax
	}
	if c.HabitsMax <= 0 {
		c.HabitsMax = d.HabitsMax
	}
	if c.EventsMax <= 0 {
		c.EventsMax = d.EventsMax
	}
	if c.AuthTimeoutSecs <= 0 {
		c.AuthTimeoutSecs = d.AuthTimeoutSecs
	}
}
