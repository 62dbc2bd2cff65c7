package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/session"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

func TestOpenBackendFile(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Backend = config.BackendFile
	cfg.Storage.HighscoreFile = filepath.Join(t.TempDir(), "highscore")

	b := openBackend(cfg, newLogger(cfg, io.Discard))
	defer b.Close()

	if b.file == nil || b.store != nil {
		t.Fatalf("file backend = %+v", b)
	}

	svc := b.services(nil, 0.1)
	if svc.Highscores == nil {
		t.Error("file backend should keep the highscore")
	}
	if svc.Scores != nil || svc.Recorder != nil {
		t.Error("file backend has no score history")
	}
}

func TestOpenBackendSQLite(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Backend = config.BackendSQLite
	cfg.Storage.DBPath = filepath.Join(t.TempDir(), "scores.db")

	b := openBackend(cfg, newLogger(cfg, io.Discard))
	defer b.Close()

	if b.store == nil {
		t.Fatal("sqlite backend should open a store")
	}

	svc := b.services(nil, 0.25)
	if svc.Highscores == nil || svc.Recorder == nil || svc.Scores == nil {
		t.Errorf("sqlite backend services = %+v", svc)
	}
	if svc.SpawnFour == nil || *svc.SpawnFour != 0.25 {
		t.Errorf("SpawnFour = %v, want 0.25", svc.SpawnFour)
	}
}

func TestPort(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{":2048", "2048"},
		{"0.0.0.0:22", "22"},
		{"[::1]:2222", "2222"},
		{"2048", "2048"},
	}

	for _, tt := range tests {
		if got := port(tt.addr); got != tt.want {
			t.Errorf("port(%q) = %q, want %q", tt.addr, got, tt.want)
		}
	}
}

// setFlags sets the global flags for one test.
func setFlags(t *testing.T, cfgPath, dbPath, logLevel string) {
	t.Helper()
	oldCfg, oldDB, oldLevel := flagConfig, flagDBPath, flagLogLevel
	t.Cleanup(func() { flagConfig, flagDBPath, flagLogLevel = oldCfg, oldDB, oldLevel })
	flagConfig, flagDBPath, flagLogLevel = cfgPath, dbPath, logLevel
}

func TestResolveConfigOrder(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir) // keep a stray .env out of ApplyEnv

	cfgPath := filepath.Join(dir, "2048.yaml")
	yaml := "storage:\n  db_path: /from/file.db\nlog:\n  level: warn\nserver:\n  address: \":1111\"\n"
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{config.EnvDB, config.EnvBackend, config.EnvLogLevel, config.EnvSSHAddr, config.EnvDifficulty} {
		t.Setenv(k, "")
	}

	tests := []struct {
		name      string
		env       map[string]string
		dbFlag    string
		levelFlag string
		wantDB    string
		wantLevel string
		wantAddr  string
	}{
		{
			name:      "file only",
			wantDB:    "/from/file.db",
			wantLevel: "warn",
			wantAddr:  ":1111",
		},
		{
			name:      "env beats file",
			env:       map[string]string{config.EnvDB: "/from/env.db", config.EnvSSHAddr: ":2222"},
			wantDB:    "/from/env.db",
			wantLevel: "warn",
			wantAddr:  ":2222",
		},
		{
			name:      "flags beat env",
			env:       map[string]string{config.EnvDB: "/from/env.db", config.EnvLogLevel: "error"},
			dbFlag:    "/from/flag.db",
			levelFlag: "debug",
			wantDB:    "/from/flag.db",
			wantLevel: "debug",
			wantAddr:  ":1111",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			setFlags(t, cfgPath, tt.dbFlag, tt.levelFlag)

			cfg, err := resolveConfig()
			if err != nil {
				t.Fatalf("resolveConfig() failed: %v", err)
			}
			if cfg.Storage.DBPath != tt.wantDB {
				t.Errorf("db_path = %q, want %q", cfg.Storage.DBPath, tt.wantDB)
			}
			if cfg.Log.Level != tt.wantLevel {
				t.Errorf("log level = %q, want %q", cfg.Log.Level, tt.wantLevel)
			}
			if cfg.Server.Address != tt.wantAddr {
				t.Errorf("address = %q, want %q", cfg.Server.Address, tt.wantAddr)
			}
		})
	}
}

func TestResolveConfigErrors(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(config.EnvLogLevel, "")

	t.Run("missing file", func(t *testing.T) {
		setFlags(t, filepath.Join(t.TempDir(), "nope.yaml"), "", "")
		if _, err := resolveConfig(); err == nil {
			t.Error("expected an error for a missing config file")
		}
	})

	t.Run("invalid flag value", func(t *testing.T) {
		cfgPath := filepath.Join(t.TempDir(), "2048.yaml")
		if err := os.WriteFile(cfgPath, []byte("game:\n  difficulty: easy\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		setFlags(t, cfgPath, "", "loud")
		_, err := resolveConfig()
		if err == nil || !strings.Contains(err.Error(), "log.level") {
			t.Errorf("resolveConfig() error = %v, want a log.level error", err)
		}
	})
}

func TestFormatFrame(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)

	grid := engine.Grid{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}

	tests := []struct {
		name  string
		frame session.Frame
		want  string
	}{
		{
			name:  "quit",
			frame: session.Frame{Grid: grid, Message: session.MsgBye, Status: engine.Playing, Quit: true},
			want:  session.MsgBye,
		},
		{
			name:  "game over",
			frame: session.Frame{Grid: grid, Message: session.MsgGameOver, Status: engine.GameOver},
			want:  session.MsgGameOver,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := formatFrame(r, tt.frame, 80, 25)

			lines := strings.Split(out, "\n")
			if got := strings.TrimSpace(lines[len(lines)-1]); got != tt.want {
				t.Errorf("last line = %q, want %q", got, tt.want)
			}
			for i, line := range lines {
				if line != strings.TrimRight(line, " ") {
					t.Errorf("line %d keeps trailing spaces: %q", i, line)
				}
			}
			if strings.Contains(out, "\x1b[") {
				t.Error("plain terminal output should carry no escapes")
			}
		})
	}
}

func TestFormatScores(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)

	when := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	out := formatScores(r, []storage.ScoreEntry{
		{Player: "ann", Score: 20480, MaxTile: 2048, Moves: 900, CreatedAt: when},
		{Player: "bob", Score: 512, MaxTile: 64, Moves: 80, CreatedAt: when},
	})

	for _, want := range []string{"Rank", "Max tile", "#1", "ann", "20480", "2048", "#2", "bob", "2024-03-01 12:30"} {
		if !strings.Contains(out, want) {
			t.Errorf("scores table is missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "ann") > strings.Index(out, "bob") {
		t.Error("rows should keep the given ranking")
	}
}

func TestFileHighscore(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		content string
		home    string
		want    int
		wantErr bool
	}{
		{name: "stored value", path: filepath.Join(dir, "ok"), content: "4096\n", want: 4096},
		{name: "missing file", path: filepath.Join(dir, "missing"), want: 0},
		{name: "corrupt file", path: filepath.Join(dir, "corrupt"), content: "lots", wantErr: true},
		{name: "no home for ~", path: "~/.2048/highscore", home: "unset", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.content != "" {
				if err := os.WriteFile(tt.path, []byte(tt.content), 0o600); err != nil {
					t.Fatal(err)
				}
			}
			if tt.home == "unset" {
				t.Setenv("HOME", "")
			}

			cfg := config.Default()
			cfg.Storage.Backend = config.BackendFile
			cfg.Storage.HighscoreFile = tt.path

			got, err := fileHighscore(cfg, newLogger(cfg, io.Discard))
			if (err != nil) != tt.wantErr {
				t.Fatalf("fileHighscore() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("fileHighscore() = %d, want %d", got, tt.want)
			}
		})
	}
}
