package engine

import (
	"math/rand"
	"testing"
)

func TestNewGameHasTwoTiles(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		s := New(rand.New(rand.NewSource(seed)), Config{})
		g := s.Grid()

		if g.TileCount() != 2 {
			t.Fatalf("seed %d: new game has %d tiles, want 2", seed, g.TileCount())
		}
		for _, row := range g {
			for _, v := range row {
				if v != 0 && v != 2 && v != 4 {
					t.Fatalf("seed %d: new game tile %d, want 2 or 4", seed, v)
				}
			}
		}
		if s.Score() != 0 || s.Status() != Playing {
			t.Fatalf("seed %d: score=%d status=%s, want 0 playing", seed, s.Score(), s.Status())
		}
	}
}

func TestDeterministicSpawn(t *testing.T) {
	// Same seed produces the same sequence of spawns
	s1 := New(rand.New(rand.NewSource(12345)), Config{})
	s2 := New(rand.New(rand.NewSource(12345)), Config{})

	for _, in := range []Input{MoveLeft, MoveUp, MoveRight, MoveDown, MoveLeft} {
		s1.Apply(in)
		s2.Apply(in)
	}

	if s1.Grid() != s2.Grid() {
		t.Errorf("Same seed should produce same board:\n%v\nvs\n%v", s1.Grid(), s2.Grid())
	}
}

func TestApplyMove(t *testing.T) {
	s := newTestState(Grid{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, 0)

	r := s.Apply(MoveLeft)

	if r.Effect != Moved {
		t.Fatalf("Effect = %s, want moved", r.Effect)
	}
	if r.Gained != 4 || r.Score != 4 {
		t.Errorf("Gained=%d Score=%d, want 4 4", r.Gained, r.Score)
	}
	if r.Spawned == nil {
		t.Fatal("a changing move should spawn a tile")
	}

	g := s.Grid()
	if g[0][0] != 4 {
		t.Errorf("merged tile = %d, want 4", g[0][0])
	}
	if g.TileCount() != 2 {
		t.Errorf("tile count after move = %d, want 2 (merge + spawn)", g.TileCount())
	}
	if v := g[r.Spawned.Row][r.Spawned.Col]; v != 2 && v != 4 {
		t.Errorf("spawned value = %d, want 2 or 4", v)
	}
}

func TestApplyNoOpMove(t *testing.T) {
	start := Grid{
		{4, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	s := newTestState(start, 10)

	r := s.Apply(MoveLeft)

	if r.Effect != NoOp {
		t.Errorf("Effect = %s, want noop", r.Effect)
	}
	if r.Spawned != nil {
		t.Error("a no-op move must not spawn")
	}
	if s.Grid() != start || s.Score() != 10 {
		t.Errorf("no-op move changed state: %v score %d", s.Grid(), s.Score())
	}
}

func TestNoOpMoveStillTakesSnapshot(t *testing.T) {
	s := newTestState(Grid{{2, 2, 0, 0}}, 0)
	s.src = &fixedSource{ints: []int{0}}

	// Merge to [4 0 0 0], then a 2 spawns in the first empty cell (0,1)
	s.Apply(MoveLeft)
	afterMove := s.Grid()
	if afterMove[0] != [Size]int{4, 2, 0, 0} {
		t.Fatalf("row 0 after move = %v, want [4 2 0 0]", afterMove[0])
	}

	if r := s.Apply(MoveLeft); r.Effect != NoOp {
		t.Fatalf("second Move(Left) effect = %s, want noop", r.Effect)
	}

	// The no-op move replaced the snapshot, so undo now restores the
	// post-merge board rather than the original one.
	s.Apply(Undo)
	if s.Grid() != afterMove || s.Score() != 4 {
		t.Errorf("undo after no-op move = %v score %d, want post-merge board", s.Grid(), s.Score())
	}
}

func TestUndoRestoresPreviousState(t *testing.T) {
	start := Grid{
		{2, 2, 4, 4},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	s := newTestState(start, 8)

	r := s.Apply(MoveLeft)
	if r.Score != 8+12 {
		t.Fatalf("score after move = %d, want 20", r.Score)
	}

	r = s.Apply(Undo)
	if r.Effect != Undone {
		t.Errorf("Effect = %s, want undone", r.Effect)
	}
	if s.Grid() != start || s.Score() != 8 {
		t.Errorf("undo = %v score %d, want original board score 8", s.Grid(), s.Score())
	}

	// Undo twice in a row is a no-op
	s.Apply(Undo)
	if s.Grid() != start || s.Score() != 8 {
		t.Errorf("second undo = %v score %d, want unchanged", s.Grid(), s.Score())
	}
}

func TestUndoKeepsHighscore(t *testing.T) {
	s := newTestState(Grid{{2, 2, 0, 0}}, 0)

	r := s.Apply(MoveLeft)
	if !r.HighscoreChanged || r.Highscore != 4 {
		t.Fatalf("HighscoreChanged=%v Highscore=%d, want true 4", r.HighscoreChanged, r.Highscore)
	}

	r = s.Apply(Undo)
	if r.Score != 0 {
		t.Errorf("score after undo = %d, want 0", r.Score)
	}
	if r.Highscore != 4 || r.HighscoreChanged {
		t.Errorf("Highscore=%d changed=%v after undo, want 4 false", r.Highscore, r.HighscoreChanged)
	}
}

func TestHighscoreOnlyChangesWhenExceeded(t *testing.T) {
	s := newTestState(Grid{{2, 2, 0, 0}}, 0)
	s.highscore = 100

	r := s.Apply(MoveLeft)
	if r.HighscoreChanged || r.Highscore != 100 {
		t.Errorf("HighscoreChanged=%v Highscore=%d, want false 100", r.HighscoreChanged, r.Highscore)
	}
}

func TestSpawnFourProbability(t *testing.T) {
	never := 0.0
	always := 1.0

	tests := []struct {
		name string
		p4   *float64
		want int
	}{
		{"default keeps roll 0.05 a four", nil, 4},
		{"zero spawns only twos", &never, 2},
		{"one spawns only fours", &always, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fixedSource{ints: []int{0, 0}, floats: []float64{0.05, 0.05}}
			s := New(src, Config{SpawnFour: tt.p4})

			g := s.Grid()
			if g[0][0] != tt.want || g[0][1] != tt.want {
				t.Errorf("first row = %v, want two %d tiles", g[0], tt.want)
			}
		})
	}
}

func TestUndoBeforeFirstMoveIsNoOp(t *testing.T) {
	s := New(rand.New(rand.NewSource(5)), Config{})
	start := s.Grid()

	s.Apply(Undo)

	if s.Grid() != start || s.Score() != 0 {
		t.Errorf("undo before any move changed board:\n%v\nvs\n%v", start, s.Grid())
	}
}

func TestIsTerminal(t *testing.T) {
	checkerboard := Grid{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}
	if !checkerboard.IsTerminal() {
		t.Error("full board with no equal neighbours should be terminal")
	}

	// Board with no empty cells and no possible merges
	board := Grid{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4096},
		{8192, 16384, 32768, 65536},
	}
	if !board.IsTerminal() {
		t.Error("Board with no moves should be terminal")
	}

	horizontal := checkerboard
	horizontal[1][1] = 4
	if horizontal.IsTerminal() {
		t.Error("Board with a horizontal pair should not be terminal")
	}

	vertical := checkerboard
	vertical[3][3] = 4
	if vertical.IsTerminal() {
		t.Error("Board with a vertical pair should not be terminal")
	}

	// One empty cell is never terminal, whatever its neighbours
	for r := range Size {
		for c := range Size {
			withEmpty := checkerboard
			withEmpty[r][c] = 0
			if withEmpty.IsTerminal() {
				t.Errorf("Board with empty cell (%d,%d) should not be terminal", r, c)
			}
		}
	}
}

func TestTerminalMatchesNoLegalMove(t *testing.T) {
	rng := rand.New(rand.NewSource(21))

	for i := 0; i < 1000; i++ {
		var g Grid
		for r := range Size {
			for c := range Size {
				g[r][c] = 1 << (1 + rng.Intn(5))
			}
		}

		anyMove := false
		for _, d := range directions {
			if _, _, changed := Move(g, d); changed {
				anyMove = true
			}
		}
		if g.IsTerminal() == anyMove {
			t.Fatalf("IsTerminal()=%v but a legal move exists=%v for\n%v", g.IsTerminal(), anyMove, g)
		}
	}
}

func TestApplyDetectsGameOver(t *testing.T) {
	start := Grid{
		{0, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}
	s := newTestState(start, 0)
	s.src = &fixedSource{ints: []int{0}, floats: []float64{0.5}}

	// Moving left shifts row 0 to [4 2 4 0]; the spawn of a 2 at (0,3)
	// sits next to the 4 and above a 2, so the game continues.
	r := s.Apply(MoveLeft)
	if r.Effect != Moved {
		t.Fatalf("Effect = %s, want moved", r.Effect)
	}
	if r.Status != Playing {
		t.Fatalf("Status = %s, want playing with vertical pair", r.Status)
	}

	final := Grid{
		{4, 2, 4, 0},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}
	s = newTestState(final, 0)
	s.src = &fixedSource{ints: []int{0}, floats: []float64{0.5}}

	// Moving right gives [0 4 2 4]; a 2 spawned at (0,0) completes a
	// checkerboard with no pair left.
	r = s.Apply(MoveRight)
	if r.Status != GameOver {
		t.Fatalf("Status = %s, want game_over for\n%v", r.Status, s.Grid())
	}

	// A finished game ignores further input, undo included
	before := s.Grid()
	if r := s.Apply(Undo); r.Effect != NoOp || s.Grid() != before {
		t.Errorf("undo after game over = %s, want noop", r.Effect)
	}
	if r := s.Apply(MoveUp); r.Effect != NoOp {
		t.Errorf("move after game over = %s, want noop", r.Effect)
	}
}

func TestSnapshot(t *testing.T) {
	s := New(rand.New(rand.NewSource(42)), Config{Highscore: 64})

	snap := s.Snapshot()

	if snap.State != Playing {
		t.Errorf("Snapshot State = %s, want playing", snap.State)
	}
	if snap.Highscore != 64 {
		t.Errorf("Snapshot Highscore = %d, want 64", snap.Highscore)
	}
	if snap.UndoBoard != snap.Board {
		t.Error("Snapshot undo board should equal the starting board")
	}
	if snap.MaxTile != 2 && snap.MaxTile != 4 {
		t.Errorf("Snapshot MaxTile = %d, want 2 or 4", snap.MaxTile)
	}
}

func TestMaxTile(t *testing.T) {
	board := Grid{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4},
		{8, 16, 32, 64},
	}

	if got := board.MaxTile(); got != 2048 {
		t.Errorf("MaxTile = %d, want 2048", got)
	}
}

func TestEmptyCells(t *testing.T) {
	board := Grid{
		{2, 0, 8, 0},
		{0, 64, 0, 256},
		{512, 0, 2048, 0},
		{0, 16, 0, 64},
	}

	cells := board.EmptyCells()
	if len(cells) != 8 {
		t.Errorf("EmptyCells count = %d, want 8", len(cells))
	}
	if cells[0] != (Cell{Row: 0, Col: 1}) {
		t.Errorf("first empty cell = %+v, want {0 1}", cells[0])
	}
}

func TestSpawnPanicsOnFullBoard(t *testing.T) {
	s := newTestState(Grid{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}, 0)

	defer func() {
		if recover() == nil {
			t.Error("spawn on a full board should panic")
		}
	}()
	s.spawn()
}

// newTestState builds a playing state around a fixed board.
func newTestState(g Grid, score int) *State {
	return &State{
		src:       rand.New(rand.NewSource(1)),
		spawnFour: DefaultSpawnFour,
		grid:      g,
		score:     score,
		highscore: score,
		status:    Playing,
		prev:      snapshot{grid: g, score: score},
	}
}
