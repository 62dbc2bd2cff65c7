package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// newHelp returns a help view whose styles are bound to r.
func newHelp(r *lipgloss.Renderer) help.Model {
	keyStyle := r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#909090", Dark: "#626262"})
	descStyle := r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B2B2B2", Dark: "#4A4A4A"})
	sepStyle := r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#DDDADA", Dark: "#3C3C3C"})

	h := help.New()
	h.Styles = help.Styles{
		ShortKey:       keyStyle,
		ShortDesc:      descStyle,
		ShortSeparator: sepStyle,
		Ellipsis:       sepStyle,
		FullKey:        keyStyle,
		FullDesc:       descStyle,
		FullSeparator:  sepStyle,
	}
	return h
}

// styleCache memoises lipgloss styles per colour pair.
// Models render from a single goroutine, so no locking is needed.
type styleCache struct {
	r      *lipgloss.Renderer
	styles map[[2]core.Color]lipgloss.Style
}

func (c styleCache) get(fg, bg core.Color) lipgloss.Style {
	k := [2]core.Color{fg, bg}
	if st, ok := c.styles[k]; ok {
		return st
	}
	st := c.r.NewStyle()
	if !fg.IsDefault() {
		st = st.Foreground(lipgloss.Color(fg))
	}
	if !bg.IsDefault() {
		st = st.Background(lipgloss.Color(bg))
	}
	c.styles[k] = st
	return st
}

// RenderScreen converts a Screen buffer to a styled string for display
// on the terminal behind r. Groups adjacent cells with the same colours
// to minimize ANSI escape sequences.
func RenderScreen(r *lipgloss.Renderer, s *core.Screen) string {
	styles := styleCache{r: r, styles: map[[2]core.Color]lipgloss.Style{}}

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			// Collect consecutive cells with the same colours
			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.FG != start.FG || cell.BG != start.BG {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start.FG.IsDefault() && start.BG.IsDefault() {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styles.get(start.FG, start.BG).Render(run.String()))
		}
	}
	return sb.String()
}
