// Package session runs one player's 2048 games: it feeds actions to the
// engine, keeps the status line and playtime, and persists the
// highscore and finished games through the configured stores.
package session

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// Status line texts.
const (
	MsgWelcome  = "Join all tiles with the arrow keys ... Good luck! :)"
	MsgHint     = "u --> undo | esc --> exit"
	MsgUndone   = "UNDONE"
	MsgGameOver = "GAME OVER!"
	MsgBye      = "Bye!"
)

// HighscoreStore persists the best score across sessions.
// storage.Store and highscore.File implement it.
type HighscoreStore interface {
	LoadHighscore() (int, error)
	SaveHighscore(value int) error
}

// ScoreRecorder records finished games. storage.Store implements it.
type ScoreRecorder interface {
	SaveScore(e storage.ScoreEntry) (int64, error)
}

// Config holds the per-session game parameters.
type Config struct {
	Player    string
	Seed      int64    // 0 seeds from the clock
	SpawnFour *float64 // nil means engine.DefaultSpawnFour
}

// Deps are the collaborators of a session. All fields are optional.
type Deps struct {
	Highscores HighscoreStore
	Scores     ScoreRecorder
	Logger     *log.Logger
	Now        func() time.Time
}

// Session is a single player's sequence of games.
// It is not safe for concurrent use; the terminal layer owns it.
type Session struct {
	cfg  Config
	deps Deps
	log  *log.Logger
	rng  *rand.Rand

	state    *engine.State
	started  time.Time
	ended    time.Time // zero while the game runs
	message  string
	recorded bool
	quit     bool
}

// New starts a session with a fresh game. The persisted highscore is
// loaded first; a failing store is logged and treated as 0.
func New(cfg Config, deps Deps) *Session {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = deps.Now().UnixNano()
	}

	s := &Session{
		cfg:  cfg,
		deps: deps,
		log:  logger,
		rng:  rand.New(rand.NewSource(seed)),
	}

	highscore := 0
	if deps.Highscores != nil {
		v, err := deps.Highscores.LoadHighscore()
		if err != nil {
			s.log.Error("cannot load highscore, starting from 0", "err", err)
		} else {
			highscore = v
		}
	}

	s.start(highscore)
	s.log.Debug("session started", "player", cfg.Player, "seed", seed, "highscore", highscore)
	return s
}

func (s *Session) start(highscore int) {
	s.state = engine.New(s.rng, engine.Config{
		Highscore: highscore,
		SpawnFour: s.cfg.SpawnFour,
	})
	s.started = s.deps.Now()
	s.ended = time.Time{}
	s.message = MsgWelcome
	s.recorded = false
}

// Handle applies one action. It returns true once the session is over
// and the caller should stop sending input.
func (s *Session) Handle(a core.Action) bool {
	if s.quit {
		return true
	}

	switch a {
	case core.ActionQuit:
		s.finish()
		s.quit = true
		s.message = MsgBye
		s.log.Debug("session quit", "player", s.cfg.Player, "score", s.state.Score())
		return true

	case core.ActionRestart:
		if s.state.Status() == engine.GameOver {
			s.start(s.state.Highscore())
		}
		return false
	}

	in, ok := toInput(a)
	if !ok {
		return false
	}

	r := s.state.Apply(in)

	if r.HighscoreChanged {
		s.saveHighscore(r.Highscore)
	}

	switch {
	case r.Status == engine.GameOver:
		if r.Effect != engine.NoOp {
			s.message = MsgGameOver
			s.finish()
		}
	case r.Effect == engine.Undone:
		s.message = MsgUndone
	case in != engine.Undo:
		s.message = MsgHint
	}

	return false
}

func toInput(a core.Action) (engine.Input, bool) {
	switch a {
	case core.ActionUp:
		return engine.MoveUp, true
	case core.ActionDown:
		return engine.MoveDown, true
	case core.ActionLeft:
		return engine.MoveLeft, true
	case core.ActionRight:
		return engine.MoveRight, true
	case core.ActionUndo:
		return engine.Undo, true
	}
	return 0, false
}

func (s *Session) saveHighscore(value int) {
	if s.deps.Highscores == nil {
		return
	}
	if err := s.deps.Highscores.SaveHighscore(value); err != nil {
		s.log.Error("cannot save highscore", "highscore", value, "err", err)
	}
}

// finish stops the clock and records the game once.
func (s *Session) finish() {
	if s.ended.IsZero() {
		s.ended = s.deps.Now()
	}
	if s.recorded {
		return
	}
	s.recorded = true

	snap := s.state.Snapshot()
	score := snap.Score
	if s.deps.Scores == nil || score == 0 {
		return
	}

	entry := storage.ScoreEntry{
		Player:  s.cfg.Player,
		Score:   score,
		MaxTile: snap.MaxTile,
		Moves:   snap.Moves,
	}
	if _, err := s.deps.Scores.SaveScore(entry); err != nil {
		s.log.Error("cannot record score", "score", score, "err", err)
		return
	}
	s.log.Info("game recorded", "player", s.cfg.Player, "score", score, "max_tile", entry.MaxTile, "moves", entry.Moves)
}

// Playtime returns the time spent in the current game.
// The clock stops when the game ends.
func (s *Session) Playtime() time.Duration {
	end := s.ended
	if end.IsZero() {
		end = s.deps.Now()
	}
	if d := end.Sub(s.started); d > 0 {
		return d
	}
	return 0
}

// FormatPlaytime renders d as HH:MM:SS. Hours are not wrapped at 24.
func FormatPlaytime(d time.Duration) string {
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total/60%60, total%60)
}

// Done reports whether the player quit.
func (s *Session) Done() bool {
	return s.quit
}

// GameOver reports whether the current game has ended.
func (s *Session) GameOver() bool {
	return s.state.Status() == engine.GameOver
}
