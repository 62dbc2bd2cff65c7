// Package engine implements the 2048 rules: the 4x4 grid, sliding and
// merging, tile spawns, scoring, single-level undo and game-over detection.
// It has no I/O and no dependencies outside the standard library.
package engine

import (
	"fmt"
	"strings"
)

// Size is the board dimension.
const Size = 4

// Grid is a 4x4 board in row-major order. A zero value means an empty cell.
type Grid [Size][Size]int

// Cell addresses a single board position.
type Cell struct {
	Row int
	Col int
}

// Direction represents a move direction.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// EmptyCells returns coordinates of all empty cells in row-major order.
func (g Grid) EmptyCells() []Cell {
	var cells []Cell
	for r := range Size {
		for c := range Size {
			if g[r][c] == 0 {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// HasEmptyCell returns true if there's at least one empty cell.
func (g Grid) HasEmptyCell() bool {
	for r := range Size {
		for c := range Size {
			if g[r][c] == 0 {
				return true
			}
		}
	}
	return false
}

// TileCount returns the number of non-empty cells.
func (g Grid) TileCount() int {
	n := 0
	for r := range Size {
		for c := range Size {
			if g[r][c] != 0 {
				n++
			}
		}
	}
	return n
}

// HasAdjacentPair returns true if two horizontally or vertically adjacent
// cells hold the same value.
func (g Grid) HasAdjacentPair() bool {
	for r := range Size {
		for c := range Size {
			val := g[r][c]
			if c < Size-1 && g[r][c+1] == val {
				return true
			}
			if r < Size-1 && g[r+1][c] == val {
				return true
			}
		}
	}
	return false
}

// IsTerminal reports whether no legal move remains: every cell is filled
// and no row or column holds two equal neighbours.
func (g Grid) IsTerminal() bool {
	return !g.HasEmptyCell() && !g.HasAdjacentPair()
}

// MaxTile returns the maximum tile value on the board.
func (g Grid) MaxTile() int {
	maxVal := 0
	for r := range Size {
		for c := range Size {
			if g[r][c] > maxVal {
				maxVal = g[r][c]
			}
		}
	}
	return maxVal
}

// String renders the grid as four space-separated rows.
func (g Grid) String() string {
	var sb strings.Builder
	for r := range Size {
		fmt.Fprintf(&sb, "%5d %5d %5d %5d\n", g[r][0], g[r][1], g[r][2], g[r][3])
	}
	return sb.String()
}
