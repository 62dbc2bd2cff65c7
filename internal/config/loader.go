package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the loaded configuration.
const (
	EnvDB         = "T2048_DB"
	EnvBackend    = "T2048_BACKEND"
	EnvLogLevel   = "T2048_LOG_LEVEL"
	EnvSSHAddr    = "T2048_SSH_ADDR"
	EnvDifficulty = "T2048_DIFFICULTY"
)

// Load loads the configuration.
// Search order: customPath -> ~/.2048/config.yaml -> ./configs/2048.yaml -> embedded default.
// Keys missing from the file keep their default values.
func Load(customPath string) (Config, error) {
	cfg := Default()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if parsed, ok := tryFile(userCfgPath); ok {
			return parsed, nil
		}
	}

	// Try local configs directory
	if parsed, ok := tryFile(filepath.Join("configs", "2048.yaml")); ok {
		return parsed, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryFile parses path over the defaults. Unreadable or invalid files are
// skipped so the next location in the search order is tried.
func tryFile(path string) (Config, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, false
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".2048", filename)
}

// ApplyEnv overrides cfg from environment variables. An optional .env file
// in the working directory is read first; variables already set win.
func ApplyEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv(EnvDB); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv(EnvBackend); v != "" {
		cfg.Storage.Backend = strings.ToLower(v)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvSSHAddr); v != "" {
		cfg.Server.Address = v
	}
	if v := os.Getenv(EnvDifficulty); v != "" {
		cfg.Game.Difficulty = DifficultyPreset(strings.ToLower(v))
	}
}
