package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/session"
	"github.com/vovakirdan/tui-2048/internal/storage"
	"github.com/vovakirdan/tui-2048/internal/view"
)

// ScoreSource is what the scoreboard reads. storage.Store implements it.
type ScoreSource interface {
	TopScores(limit int) ([]storage.ScoreEntry, error)
	PlayerTopScores(player string, limit int) ([]storage.ScoreEntry, error)
	Stats(player string) (*storage.Stats, error)
}

// Services are the shared collaborators of every game the TUI starts.
// Nil fields disable the matching feature.
type Services struct {
	Highscores session.HighscoreStore
	Recorder   session.ScoreRecorder
	Scores     ScoreSource
	Logger     *log.Logger

	// Renderer styles output for one terminal. Nil means the local
	// terminal; SSH sessions pass the renderer of their own pty.
	Renderer *lipgloss.Renderer

	SpawnFour     *float64 // Nil means the engine default
	ScreenshotDir string   // Defaults to ~/.2048/screenshots
}

func (s Services) logger() *log.Logger {
	if s.Logger == nil {
		return log.New(io.Discard)
	}
	return s.Logger
}

func (s Services) renderer() *lipgloss.Renderer {
	if s.Renderer == nil {
		return lipgloss.DefaultRenderer()
	}
	return s.Renderer
}

func (s Services) newSession(player string, seed int64) *session.Session {
	return session.New(
		session.Config{Player: player, Seed: seed, SpawnFour: s.SpawnFour},
		session.Deps{
			Highscores: s.Highscores,
			Scores:     s.Recorder,
			Logger:     s.Logger,
		},
	)
}

// GameModel is the Bubble Tea model for one 2048 session.
type GameModel struct {
	sess       *session.Session
	screen     *core.Screen
	keys       KeyMap
	help       help.Model
	footer     lipgloss.Style
	svc        Services
	config     core.RuntimeConfig
	quitOnDone bool // Standalone programs exit when the session ends
	done       bool
	forceQuit  bool
	status     string // Transient footer note, e.g. screenshot path
	tickID     int64
}

// NewGameModel creates a game model for player.
func NewGameModel(svc Services, cfg core.RuntimeConfig, player string) GameModel {
	h := newHelp(svc.renderer())
	h.Width = cfg.ScreenW

	return GameModel{
		sess:   svc.newSession(player, cfg.Seed),
		screen: core.NewScreen(cfg.ScreenW, core.Max(0, cfg.ScreenH-1)),
		keys:   DefaultKeyMap(),
		help:   h,
		footer: svc.renderer().NewStyle().Foreground(lipgloss.Color("241")),
		svc:    svc,
		config: cfg,
		tickID: time.Now().UnixNano(),
	}
}

// Init starts the playtime clock.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.tickID, clockInterval)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		// The footer takes the last line; the game itself is never reset.
		m.screen.Resize(msg.Width, core.Max(0, msg.Height-1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if m.done || msg.ID != m.tickID {
			return m, nil
		}
		return m, tickCmd(m.tickID, clockInterval)
	}

	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.done {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Screenshot):
		m.status = m.saveScreenshot()
		return m, nil

	case key.Matches(msg, m.keys.ForceQuit):
		m.forceQuit = true
	}

	m.status = ""
	action := m.keys.Action(msg)
	if action == core.ActionNone {
		return m, nil
	}

	if m.sess.Handle(action) {
		m.done = true
		if m.quitOnDone || m.forceQuit {
			return m, tea.Quit
		}
	}
	return m, nil
}

// saveScreenshot writes the current frame as plain text and returns a
// footer note describing the outcome.
func (m GameModel) saveScreenshot() string {
	view.Render(m.screen, m.sess.Frame())

	dir := m.svc.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "screenshot failed: no home directory"
		}
		dir = filepath.Join(home, ".2048", "screenshots")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.svc.logger().Error("cannot create screenshot directory", "dir", dir, "err", err)
		return "screenshot failed"
	}

	filename := fmt.Sprintf("2048_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()+"\n"), 0o600); err != nil {
		m.svc.logger().Error("cannot save screenshot", "path", path, "err", err)
		return "screenshot failed"
	}

	m.svc.logger().Info("screenshot saved", "path", path)
	return "saved " + path
}

// View renders the board and the help footer.
func (m GameModel) View() string {
	view.Render(m.screen, m.sess.Frame())

	footer := m.help.View(m.keys)
	switch {
	case m.status != "":
		footer = m.status
	case m.sess.GameOver():
		footer = m.help.ShortHelpView([]key.Binding{m.keys.Restart, m.keys.Quit})
	}
	return RenderScreen(m.svc.renderer(), m.screen) + "\n" + m.footer.Render(footer)
}

// Frame returns the current session frame.
func (m GameModel) Frame() session.Frame {
	return m.sess.Frame()
}

// Done reports whether the player left the game.
func (m GameModel) Done() bool {
	return m.done
}

// ForceQuit reports whether the player pressed ctrl+c.
func (m GameModel) ForceQuit() bool {
	return m.forceQuit
}

// Run plays a single session in the terminal and returns its last frame,
// which the caller prints after the alternate screen is gone.
func Run(svc Services, cfg core.RuntimeConfig, player string) (session.Frame, error) {
	model := NewGameModel(svc, cfg, player)
	model.quitOnDone = true

	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return model.Frame(), fmt.Errorf("tui: %w", err)
	}

	if m, ok := final.(GameModel); ok {
		return m.Frame(), nil
	}
	return model.Frame(), nil
}
