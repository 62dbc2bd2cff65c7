// Package config provides YAML-based configuration loading for 2048,
// with environment overrides and difficulty presets.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Config is the complete application configuration.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// GameConfig controls tile spawning.
type GameConfig struct {
	Difficulty DifficultyPreset `yaml:"difficulty"`

	// SpawnFourProbability overrides the preset when set. An explicit 0
	// spawns only 2s.
	SpawnFourProbability *float64 `yaml:"spawn_four_probability"`
}

// SpawnFour returns the effective probability of spawning a 4.
func (g GameConfig) SpawnFour() float64 {
	if g.SpawnFourProbability != nil {
		return *g.SpawnFourProbability
	}
	preset, _ := ParsePreset(string(g.Difficulty))
	return SpawnFourForPreset(preset)
}

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// StorageConfig selects where scores and the highscore are kept.
type StorageConfig struct {
	Backend       string `yaml:"backend"`        // "sqlite" or "file"
	DBPath        string `yaml:"db_path"`        // SQLite database
	HighscoreFile string `yaml:"highscore_file"` // Plain highscore file for the "file" backend
}

// ServerConfig configures the SSH server.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // Used while the local TUI owns the terminal
}

// Validate checks the configuration for values the game cannot run with.
func (c Config) Validate() error {
	var errs []error

	if _, ok := ParsePreset(string(c.Game.Difficulty)); !ok {
		errs = append(errs, fmt.Errorf("game.difficulty: unknown preset %q", c.Game.Difficulty))
	}
	if p := c.Game.SpawnFourProbability; p != nil && (*p < 0 || *p > 1) {
		errs = append(errs, fmt.Errorf("game.spawn_four_probability: %v is outside [0, 1]", *p))
	}

	switch c.Storage.Backend {
	case BackendSQLite:
		if c.Storage.DBPath == "" {
			errs = append(errs, errors.New("storage.db_path: required for sqlite backend"))
		}
	case BackendFile:
		if c.Storage.HighscoreFile == "" {
			errs = append(errs, errors.New("storage.highscore_file: required for file backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.backend: unknown backend %q", c.Storage.Backend))
	}

	if c.Server.IdleTimeout < 0 {
		errs = append(errs, fmt.Errorf("server.idle_timeout: negative duration %s", c.Server.IdleTimeout))
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
