package engine

import "fmt"

// Status is the lifecycle state of a game.
type Status int

const (
	Playing Status = iota
	GameOver
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Input is a single command accepted by State.Apply.
type Input int

const (
	MoveUp Input = iota
	MoveDown
	MoveLeft
	MoveRight
	Undo
)

// Direction returns the move direction for a move input.
// The second result is false for Undo.
func (in Input) Direction() (Direction, bool) {
	switch in {
	case MoveUp:
		return Up, true
	case MoveDown:
		return Down, true
	case MoveLeft:
		return Left, true
	case MoveRight:
		return Right, true
	default:
		return 0, false
	}
}

// Effect describes what an applied input did to the board.
type Effect int

const (
	NoOp Effect = iota
	Moved
	Undone
)

// String returns a human-readable name for the effect.
func (e Effect) String() string {
	switch e {
	case Moved:
		return "moved"
	case Undone:
		return "undone"
	default:
		return "noop"
	}
}

// Report summarises a single Apply call for the caller.
type Report struct {
	Score            int
	Highscore        int
	HighscoreChanged bool
	Status           Status
	Effect           Effect
	Gained           int   // Score gained by merges in this move
	Spawned          *Cell // Cell filled after the move, nil if none
}

// Config holds the parameters of a new game.
type Config struct {
	// Highscore is the best score known before this game started.
	Highscore int

	// SpawnFour is the probability of a new tile being a 4.
	// Nil means DefaultSpawnFour; a zero value spawns only 2s.
	SpawnFour *float64
}

func (c Config) spawnFour() float64 {
	if c.SpawnFour == nil {
		return DefaultSpawnFour
	}
	return *c.SpawnFour
}

// snapshot is the single level of undo history.
type snapshot struct {
	grid  Grid
	score int
}

// State owns the board, the score and the undo snapshot of one game.
// It is not safe for concurrent use.
type State struct {
	src       Source
	spawnFour float64

	grid      Grid
	score     int
	highscore int
	status    Status
	prev      snapshot
	moves     int
}

// New starts a game: an empty board seeded with two spawned tiles.
func New(src Source, cfg Config) *State {
	s := &State{
		src:       src,
		spawnFour: cfg.spawnFour(),
		highscore: cfg.Highscore,
		status:    Playing,
	}

	s.spawn()
	s.spawn()
	s.prev = snapshot{grid: s.grid, score: s.score}

	return s
}

// spawn places a new tile and panics if the board is full: callers only
// spawn on a board that has just freed a cell or is new.
func (s *State) spawn() Cell {
	g, cell, err := Spawn(s.grid, s.src, s.spawnFour)
	if err != nil {
		panic(fmt.Errorf("engine: spawn on %d-tile board: %w", s.grid.TileCount(), err))
	}
	s.grid = g
	return cell
}

// Apply processes a single input and reports its effect.
// A finished game ignores all input.
func (s *State) Apply(in Input) Report {
	if s.status == GameOver {
		return s.report(NoOp, false)
	}

	if in == Undo {
		s.grid = s.prev.grid
		s.score = s.prev.score
		return s.report(Undone, false)
	}

	dir, ok := in.Direction()
	if !ok {
		return s.report(NoOp, false)
	}

	s.prev = snapshot{grid: s.grid, score: s.score}

	next, gained, changed := Move(s.grid, dir)
	if !changed {
		return s.report(NoOp, false)
	}

	s.grid = next
	s.score += gained
	s.moves++

	highscoreChanged := false
	if s.score > s.highscore {
		s.highscore = s.score
		highscoreChanged = true
	}

	cell := s.spawn()

	if s.grid.IsTerminal() {
		s.status = GameOver
	}

	r := s.report(Moved, highscoreChanged)
	r.Gained = gained
	r.Spawned = &cell
	return r
}

func (s *State) report(effect Effect, highscoreChanged bool) Report {
	return Report{
		Score:            s.score,
		Highscore:        s.highscore,
		HighscoreChanged: highscoreChanged,
		Status:           s.status,
		Effect:           effect,
	}
}

// Grid returns a copy of the current board.
func (s *State) Grid() Grid {
	return s.grid
}

// Score returns the current score.
func (s *State) Score() int {
	return s.score
}

// Highscore returns the best score seen, including this game.
func (s *State) Highscore() int {
	return s.highscore
}

// Status returns whether the game is still running.
func (s *State) Status() Status {
	return s.status
}

// Moves returns the number of moves that changed the board.
func (s *State) Moves() int {
	return s.moves
}

// Snapshot captures the complete game state for tests and replay.
type Snapshot struct {
	Board     Grid
	Score     int
	Highscore int
	MaxTile   int
	Moves     int
	State     Status
	UndoBoard Grid
	UndoScore int
}

// Snapshot returns the current game snapshot.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Board:     s.grid,
		Score:     s.score,
		Highscore: s.highscore,
		MaxTile:   s.grid.MaxTile(),
		Moves:     s.moves,
		State:     s.status,
		UndoBoard: s.prev.grid,
		UndoScore: s.prev.score,
	}
}
