package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/2048.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration, used when no YAML at all
// can be read.
func Default() Config {
	return Config{
		Game: GameConfig{
			Difficulty: DifficultyNormal,
		},
		Storage: StorageConfig{
			Backend:       BackendSQLite,
			DBPath:        "~/.2048/scores.db",
			HighscoreFile: "~/.2048/highscore",
		},
		Server: ServerConfig{
			Address:     ":2048",
			HostKey:     ".ssh/2048_ed25519",
			IdleTimeout: 10 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.2048/2048.log",
		},
	}
}
