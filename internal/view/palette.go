package view

import "github.com/vovakirdan/tui-2048/internal/core"

// Classic 2048 colours.
const (
	BorderColor core.Color = "#bbada0"
	FrameColor  core.Color = "#8f7a66"
	TextColor   core.Color = "#000000"
	AlertColor  core.Color = core.ColorRed
	TitleColor  core.Color = core.ColorOrange
)

var tileColors = map[int]core.Color{
	0:    "#cdc0b4",
	2:    "#eee4da",
	4:    "#ede0c8",
	8:    "#f2b179",
	16:   "#f59563",
	32:   "#f67c5f",
	64:   "#f65e3b",
	128:  "#edcf72",
	256:  "#edcc61",
	512:  "#edc850",
	1024: "#edc53f",
	2048: "#edc22e",
	4096: "#ff3c3c",
}

// TileColor returns the background colour of a tile.
// Everything above 4096 shares the darkest red.
func TileColor(v int) core.Color {
	if c, ok := tileColors[v]; ok {
		return c
	}
	return "#ef1e1f"
}
