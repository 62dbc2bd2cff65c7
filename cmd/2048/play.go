package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/session"
	"github.com/vovakirdan/tui-2048/internal/view"
)

var (
	flagSeed       int64
	flagDifficulty string
	flagNoMenu     bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play 2048",
	Long: `Start a game of 2048.

Controls:
  Arrows/WASD/HJKL - Move tiles
  U                - Undo the last move
  R                - Restart (after game over)
  Esc/Q            - Quit
  ?                - Toggle help
  Ctrl+S           - Save a screenshot

Difficulty options:
  easy   - 5% of new tiles are fours
  normal - 10% of new tiles are fours
  hard   - 25% of new tiles are fours

Examples:
  2048 play
  2048 play --no-menu
  2048 play --difficulty hard --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

// addPlayFlags registers the play flags; the root command plays too.
func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	cmd.Flags().BoolVar(&flagNoMenu, "no-menu", false, "Start playing right away")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	preset, _ := config.ParsePreset(string(cfg.Game.Difficulty))
	spawnFour := cfg.Game.SpawnFour()
	if flagDifficulty != "" {
		p, ok := config.ParsePreset(flagDifficulty)
		if !ok {
			fail("unknown difficulty %q (use easy, normal or hard)", flagDifficulty)
		}
		preset = p
		spawnFour = config.SpawnFourForPreset(p)
	}

	logger, closeLog := fileLogger(cfg)
	defer closeLog()

	b := openBackend(cfg, logger)
	defer b.Close()

	rcfg := runtimeConfig(flagSeed)
	svc := b.services(logger, spawnFour)
	player := playerName()

	if !flagNoMenu {
		if err := tui.RunMenu(svc, rcfg, preset, player); err != nil {
			b.Close()
			fail("running game: %v", err)
		}
		return
	}

	frame, err := tui.Run(svc, rcfg, player)
	if err != nil {
		b.Close()
		fail("running game: %v", err)
	}
	// The last frame stays on the terminal once the alternate screen is gone
	fmt.Println(formatFrame(lipgloss.DefaultRenderer(), frame, rcfg.ScreenW, rcfg.ScreenH))
}

// formatFrame renders f for r without trailing blank space.
func formatFrame(r *lipgloss.Renderer, f session.Frame, width, height int) string {
	screen := core.NewScreen(width, core.Max(0, height-1))
	view.Render(screen, f)

	lines := strings.Split(tui.RenderScreen(r, screen), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
