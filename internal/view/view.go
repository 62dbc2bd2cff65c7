// Package view draws a session frame onto a core.Screen.
package view

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/session"
)

// layout is the geometry of the board in screen cells.
type layout struct {
	tileW, tileH int
	gapX, gapY   int
}

func (l layout) boardW() int { return l.gapX + engine.Size*(l.tileW+l.gapX) }
func (l layout) boardH() int { return l.gapY + engine.Size*(l.tileH+l.gapY) }

// Rows around the board: title, three stats lines, a blank line above
// the board, then a blank line and the message below it.
const (
	headerRows = 5
	footerRows = 2
)

var layouts = []layout{
	{tileW: 8, tileH: 3, gapX: 2, gapY: 1},
	{tileW: 6, tileH: 1, gapX: 1, gapY: 1},
}

// MinSize returns the smallest screen that can show a frame.
func MinSize() (w, h int) {
	l := layouts[len(layouts)-1]
	return l.boardW(), headerRows + l.boardH() + footerRows
}

func pickLayout(w, h int) (layout, bool) {
	for _, l := range layouts {
		if l.boardW() <= w && headerRows+l.boardH()+footerRows <= h {
			return l, true
		}
	}
	return layout{}, false
}

// Render clears dst and draws f centred on it.
func Render(dst *core.Screen, f session.Frame) {
	dst.Clear()

	l, ok := pickLayout(dst.Width(), dst.Height())
	if !ok {
		renderTooSmall(dst)
		return
	}

	total := headerRows + l.boardH() + footerRows
	area := core.CenteredIn(dst.Bounds(), l.boardW(), total)

	y := area.Y
	dst.DrawStyledTextCentered(y, "2048", TitleColor, core.ColorDefault)
	dst.DrawTextCentered(y+1, "Highscore: "+strconv.Itoa(f.Highscore))
	dst.DrawTextCentered(y+2, "Current score: "+strconv.Itoa(f.Score))
	dst.DrawTextCentered(y+3, "Playtime: "+f.Playtime)

	board := core.NewRect(area.X, y+headerRows, l.boardW(), l.boardH())
	drawBoard(dst, board, l, f.Grid)

	msgColor := core.ColorDefault
	if f.Status == engine.GameOver && !f.Quit {
		msgColor = AlertColor
	}
	dst.DrawStyledTextCentered(board.Bottom()+1, f.Message, msgColor, core.ColorDefault)
}

func drawBoard(dst *core.Screen, r core.Rect, l layout, g engine.Grid) {
	dst.FillRect(r, core.Cell{Rune: ' ', BG: BorderColor})
	dst.DrawBox(r, FrameColor)

	for row := range engine.Size {
		for col := range engine.Size {
			v := g[row][col]
			tile := core.NewRect(
				r.X+l.gapX+col*(l.tileW+l.gapX),
				r.Y+l.gapY+row*(l.tileH+l.gapY),
				l.tileW, l.tileH,
			)
			bg := TileColor(v)
			dst.FillRect(tile, core.Cell{Rune: ' ', BG: bg})
			if v == 0 {
				continue
			}

			text := Abbreviate(v, l.tileW)
			tx := tile.X + (tile.W-len(text)+1)/2
			ty := tile.Y + tile.H/2
			dst.DrawStyledText(tx, ty, text, TextColor, bg)
		}
	}
}

func renderTooSmall(dst *core.Screen) {
	w, h := MinSize()
	lines := []string{
		"Terminal too small",
		fmt.Sprintf("need %dx%d, have %dx%d", w, h, dst.Width(), dst.Height()),
	}
	_, cy := dst.Bounds().Center()
	y := cy - 1
	for i, line := range lines {
		dst.DrawStyledTextCentered(y+i, line, AlertColor, core.ColorDefault)
	}
}

// Abbreviate renders v in at most width characters, switching to
// k or M suffixes for large tiles.
func Abbreviate(v, width int) string {
	s := strconv.Itoa(v)
	if len(s) <= width {
		return s
	}
	if v >= 1<<20 {
		s = strconv.Itoa(v>>20) + "M"
		if len(s) <= width {
			return s
		}
	}
	return strconv.Itoa(v>>10) + "k"
}
