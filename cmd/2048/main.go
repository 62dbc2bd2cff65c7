// 2048 is the sliding-tile puzzle for the terminal.
//
// Usage:
//
//	2048                 - Play (start menu unless --no-menu)
//	2048 play            - Same as above
//	2048 scores          - Show recorded scores
//	2048 serve           - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>      - Config file (default: ~/.2048/config.yaml)
//	--db <path>          - Scores database (default: ~/.2048/scores.db)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/highscore"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "2048",
	Short: "2048 - Join the tiles in your terminal",
	Long: `2048 is the sliding-tile puzzle played with the arrow keys.
Equal tiles merge when they collide; reach 2048 and keep going.

Available commands:
  play     - Play a game (default)
  scores   - View recorded scores
  serve    - Start SSH server for remote play

Examples:
  2048
  2048 --no-menu --difficulty hard
  2048 scores --limit 20
  2048 serve --ssh :2048`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig resolves the configuration and exits on failure.
func loadConfig() config.Config {
	cfg, err := resolveConfig()
	if err != nil {
		fail("%v", err)
	}
	return cfg
}

// resolveConfig layers the configuration: file, then environment, then flags.
func resolveConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	config.ApplyEnv(&cfg)

	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration:\n%w", err)
	}
	return cfg, nil
}

// newLogger builds the application logger writing to w.
func newLogger(cfg config.Config, w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "2048",
	})
	if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

// fileLogger logs to the configured log file so the TUI keeps the terminal.
// Without a usable file, logs are dropped.
func fileLogger(cfg config.Config) (*log.Logger, func()) {
	path, err := storage.ExpandPath(cfg.Log.File)
	if err != nil || path == "" {
		return newLogger(cfg, io.Discard), func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return newLogger(cfg, io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return newLogger(cfg, io.Discard), func() {}
	}
	return newLogger(cfg, f), func() { f.Close() }
}

// backend is the persistence selected by storage.backend.
type backend struct {
	store *storage.Store  // nil with the file backend
	file  *highscore.File // nil with the sqlite backend
}

// openBackend opens the configured storage. A failing store is reported
// and the game runs without persistence.
func openBackend(cfg config.Config, logger *log.Logger) backend {
	switch cfg.Storage.Backend {
	case config.BackendFile:
		f, err := highscore.NewFile(cfg.Storage.HighscoreFile)
		if err != nil {
			logger.Warn("highscore file unavailable, playing without persistence", "err", err)
			return backend{}
		}
		return backend{file: f}

	default:
		store, err := storage.Open(cfg.Storage.DBPath)
		if err != nil {
			logger.Warn("scores database unavailable, playing without persistence", "path", cfg.Storage.DBPath, "err", err)
			return backend{}
		}
		return backend{store: store}
	}
}

// services wires the backend into the TUI. Interfaces are only set for a
// backend that exists so nil checks downstream see a true nil.
func (b backend) services(logger *log.Logger, spawnFour float64) tui.Services {
	svc := tui.Services{Logger: logger, SpawnFour: &spawnFour}
	switch {
	case b.store != nil:
		svc.Highscores = b.store
		svc.Recorder = b.store
		svc.Scores = b.store
	case b.file != nil:
		svc.Highscores = b.file
	}
	return svc
}

func (b backend) Close() {
	if b.store != nil {
		b.store.Close()
	}
}

// runtimeConfig sizes the game to stdout, falling back to the default
// size when stdout is not a terminal.
func runtimeConfig(seed int64) core.RuntimeConfig {
	rcfg := core.DefaultConfig()
	rcfg.Seed = seed
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rcfg.ScreenW = w
		rcfg.ScreenH = h
	}
	return rcfg
}

// playerName is the local player recorded with scores.
func playerName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return storage.DefaultPlayer
}
