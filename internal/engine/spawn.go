package engine

import "errors"

// DefaultSpawnFour is the probability of spawning a 4 instead of a 2.
const DefaultSpawnFour = 0.10

// ErrBoardFull is returned by Spawn when the grid has no empty cell.
var ErrBoardFull = errors.New("engine: board full")

// Source is the randomness Spawn draws from. *rand.Rand satisfies it.
// A Source is not shared between games, so it needs no locking.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// Spawn places a new tile into a uniformly chosen empty cell.
// The tile is 4 with probability p4, otherwise 2.
// Returns the new grid and the cell that was filled.
func Spawn(g Grid, src Source, p4 float64) (Grid, Cell, error) {
	empty := g.EmptyCells()
	if len(empty) == 0 {
		return g, Cell{}, ErrBoardFull
	}

	cell := empty[src.Intn(len(empty))]

	value := 2
	if src.Float64() < p4 {
		value = 4
	}

	g[cell.Row][cell.Col] = value
	return g, cell, nil
}
