package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds all habitkeep configuration. Paths are resolved once here and
// handed to the store explicitly — no package-level file paths anywhere.
type Config struct {
	DataDir string `env:"HABITKEEP_DATA_DIR"`
	Server  ServerConfig
}

type ServerConfig struct {
	Bind string `env:"HABITKEEP_BIND"`
	Port int    `env:"HABITKEEP_PORT"`
}

// Default returns a Config with sensible defaults. DataDir is left empty and
// resolved by Load (or DefaultDataDir) so tests can point it anywhere.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 37742,
		},
	}
}

// DefaultDataDir returns the default data directory: ~/.habitkeep
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".habitkeep"), nil
}

// Load builds the effective configuration: defaults, then environment
// overrides, then data-dir resolution.
func Load() (Config, error) {
	cfg := Default()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return Config{}, err
		}
		cfg.DataDir = dir
	}
	return cfg, nil
}

// HabitsPath returns the path of the habit-data JSON file.
func (c Config) HabitsPath() string {
	return filepath.Join(c.DataDir, "habits.json")
}

// SettingsPath returns the path of the settings JSON file.
func (c Config) SettingsPath() string {
	return filepath.Join(c.DataDir, "settings.json")
}

// LogPath returns the path of the append-only log file.
func (c Config) LogPath() string {
	return filepath.Join(c.DataDir, "habitkeep.log")
}

// ListenAddr returns the bind:port address string.
func (c Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}
