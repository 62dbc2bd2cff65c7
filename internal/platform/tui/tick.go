// Package tui provides the Bubble Tea front end for 2048: the game
// screen, start menu, scoreboard and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// clockInterval is how often the playtime display refreshes.
const clockInterval = time.Second

// TickMsg is sent to refresh the playtime clock. ID identifies the game
// that scheduled it, so ticks of a finished game die out.
type TickMsg struct {
	ID   int64
	Time time.Time
}

// tickCmd returns a Bubble Tea command that sends a tick after interval.
func tickCmd(id int64, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}
