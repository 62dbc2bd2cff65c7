package tui

import (
	"fmt"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
)

type screenID int

const (
	screenMenu screenID = iota
	screenGame
	screenScores
)

// SessionModel manages the full flow: menu -> game -> menu, plus the
// scoreboard. It is the top-level model for SSH sessions and for the
// local game when the menu is enabled.
type SessionModel struct {
	svc      Services
	config   core.RuntimeConfig
	player   string
	rng      *rand.Rand // Seeds every game of this session
	current  screenID
	menu     MenuModel
	game     GameModel
	scores   ScoreboardModel
	best     int
	quitting bool
}

// NewSessionModel creates a session model for player. cfg.Seed seeds the
// whole session once; 0 seeds from the clock. Every game started from the
// menu draws a fresh seed from it.
func NewSessionModel(svc Services, cfg core.RuntimeConfig, preset config.DifficultyPreset, player string) SessionModel {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	m := SessionModel{
		svc:    svc,
		config: cfg,
		player: player,
		rng:    rand.New(rand.NewSource(seed)),
	}
	m.best = m.loadBest()
	m.menu = NewMenuModel(svc.renderer(), cfg, preset, m.best)
	return m
}

// nextSeed draws the seed of the next game. Zero is skipped because a
// session treats it as "seed from the clock".
func (m SessionModel) nextSeed() int64 {
	for {
		if seed := m.rng.Int63(); seed != 0 {
			return seed
		}
	}
}

func (m SessionModel) loadBest() int {
	if m.svc.Highscores == nil {
		return 0
	}
	v, err := m.svc.Highscores.LoadHighscore()
	if err != nil {
		m.svc.logger().Warn("cannot load highscore", "err", err)
		return 0
	}
	return v
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	switch m.menu.Choice() {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit

	case ChoiceScores:
		m.scores = NewScoreboardModel(m.svc.renderer(), m.svc.Scores, m.player, m.config.ScreenW, m.config.ScreenH)
		m.current = screenScores
		return m, m.scores.Init()

	case ChoiceNewGame:
		svc := m.svc
		p := config.SpawnFourForPreset(m.menu.Difficulty())
		svc.SpawnFour = &p
		cfg := m.config
		cfg.Seed = m.nextSeed()
		m.game = NewGameModel(svc, cfg, m.player)
		m.current = screenGame
		m.svc.logger().Debug("game started", "player", m.player, "difficulty", m.menu.Difficulty())
		return m, m.game.Init()
	}

	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	m.game = next.(GameModel)

	if m.game.ForceQuit() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.Done() {
		return m.backToMenu()
	}

	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	m.scores = next.(ScoreboardModel)

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.backToMenu()
	}

	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.best = max(m.best, m.loadBest())
	if m.current == screenGame {
		m.best = max(m.best, m.game.Frame().Highscore)
	}
	m.menu = m.menu.Reset(m.best)
	m.current = screenMenu

	// Menu and game may have seen different resizes
	size := tea.WindowSizeMsg{Width: m.config.ScreenW, Height: m.config.ScreenH}
	next, _ := m.menu.Update(size)
	m.menu = next.(MenuModel)

	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// RunMenu runs the menu-driven session in the local terminal.
func RunMenu(svc Services, cfg core.RuntimeConfig, preset config.DifficultyPreset, player string) error {
	p := tea.NewProgram(
		NewSessionModel(svc, cfg, preset, player),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
