package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagScoresTUI bool
	flagPlayer    string
	flagLimit     int
	flagClear     bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show recorded scores",
	Long: `Display the best recorded games.

With the file backend only the highscore is kept.

Examples:
  2048 scores
  2048 scores --player alice --limit 5
  2048 scores --tui
  2048 scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse scores in an interactive table")
	scoresCmd.Flags().StringVar(&flagPlayer, "player", "", "Only show this player's games")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of games to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded game")
}

func runScores(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger := newLogger(cfg, os.Stderr)

	if cfg.Storage.Backend == config.BackendFile {
		best, err := fileHighscore(cfg, logger)
		if err != nil {
			fail("reading highscore: %v", err)
		}
		fmt.Printf("Highscore: %d\n", best)
		fmt.Println("Score history is only kept with the sqlite backend.")
		return
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(); err != nil {
			store.Close()
			fail("clearing scores: %v", err)
		}
		fmt.Println("All recorded games and the highscore were deleted.")
		return
	}

	if flagScoresTUI {
		rcfg := runtimeConfig(0)
		if err := tui.RunScoreboard(store, flagPlayer, rcfg.ScreenW, rcfg.ScreenH); err != nil {
			store.Close()
			fail("running scoreboard: %v", err)
		}
		return
	}

	var scores []storage.ScoreEntry
	if flagPlayer != "" {
		scores, err = store.PlayerTopScores(flagPlayer, flagLimit)
	} else {
		scores, err = store.TopScores(flagLimit)
	}
	if err != nil {
		store.Close()
		fail("retrieving scores: %v", err)
	}

	title := "all players"
	if flagPlayer != "" {
		title = flagPlayer
	}
	fmt.Printf("High Scores - %s\n\n", title)

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play '2048' to set the first high score!")
		return
	}

	fmt.Println(formatScores(lipgloss.DefaultRenderer(), scores))

	if stats, err := store.Stats(flagPlayer); err == nil {
		fmt.Println()
		fmt.Printf("Games: %d  Best: %d  Best tile: %d  Average: %.0f\n",
			stats.GamesCount, stats.HighScore, stats.BestTile, stats.AvgScore)
	}
	if flagPlayer != "" {
		if best, err := store.HighScore(); err == nil {
			fmt.Printf("Best of all players: %d\n", best)
		}
	}
}

// fileHighscore reads the highscore kept by the file backend.
func fileHighscore(cfg config.Config, logger *log.Logger) (int, error) {
	b := openBackend(cfg, logger)
	if b.file == nil {
		return 0, fmt.Errorf("highscore file %s is unavailable", cfg.Storage.HighscoreFile)
	}
	return b.file.LoadHighscore()
}

// formatScores renders scores as a ranked table styled for r.
func formatScores(r *lipgloss.Renderer, scores []storage.ScoreEntry) string {
	header := r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Padding(0, 1)
	cell := r.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle().Foreground(lipgloss.Color("240"))).
		BorderColumn(false).
		Headers("Rank", "Player", "Score", "Max tile", "Moves", "Date").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})

	for i, e := range scores {
		t.Row(
			"#"+strconv.Itoa(i+1),
			e.Player,
			strconv.Itoa(e.Score),
			strconv.Itoa(e.MaxTile),
			strconv.Itoa(e.Moves),
			e.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	return t.String()
}
