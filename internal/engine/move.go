package engine

// line is a single row or column read in the direction of travel, so the
// leading edge is always index 0.
type line [Size]int

// slideLine compacts a line toward index 0 and merges equal neighbours.
// Returns the updated line and the sum of the merged values.
//
// A merge doubles c[i] and shifts the rest of the line one step toward the
// leading edge, so the scan never revisits a merged cell and trailing gaps
// never open between two merge results.
func slideLine(in line) (line, int) {
	var out line
	n := 0
	for _, v := range in {
		if v != 0 {
			out[n] = v
			n++
		}
	}

	score := 0
	for i := 0; i < Size-1; i++ {
		if out[i] == 0 || out[i] != out[i+1] {
			continue
		}
		out[i] *= 2
		score += out[i]
		copy(out[i+1:], out[i+2:])
		out[Size-1] = 0
	}

	return out, score
}

// readLine extracts line k for a move in direction d.
func readLine(g Grid, d Direction, k int) line {
	var l line
	for i := range Size {
		switch d {
		case Left:
			l[i] = g[k][i]
		case Right:
			l[i] = g[k][Size-1-i]
		case Up:
			l[i] = g[i][k]
		case Down:
			l[i] = g[Size-1-i][k]
		}
	}
	return l
}

// writeLine stores line k back at its board positions for direction d.
func writeLine(g *Grid, d Direction, k int, l line) {
	for i := range Size {
		switch d {
		case Left:
			g[k][i] = l[i]
		case Right:
			g[k][Size-1-i] = l[i]
		case Up:
			g[i][k] = l[i]
		case Down:
			g[Size-1-i][k] = l[i]
		}
	}
}

// Move slides every line of the grid in the given direction.
// Returns the new grid, the score gained from merges, and whether any cell
// changed. The input grid is not modified.
func Move(g Grid, d Direction) (Grid, int, bool) {
	if !d.Valid() {
		return g, 0, false
	}

	next := g
	total := 0
	for k := range Size {
		slid, score := slideLine(readLine(g, d, k))
		writeLine(&next, d, k, slid)
		total += score
	}

	return next, total, next != g
}
