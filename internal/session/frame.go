package session

import "github.com/vovakirdan/tui-2048/internal/engine"

// Frame is everything the renderer needs to draw one screen.
type Frame struct {
	Player    string
	Grid      engine.Grid
	Score     int
	Highscore int
	MaxTile   int
	Moves     int
	Playtime  string
	Message   string
	Status    engine.Status
	Quit      bool
}

// Frame captures the current session state for rendering.
func (s *Session) Frame() Frame {
	snap := s.state.Snapshot()
	return Frame{
		Player:    s.cfg.Player,
		Grid:      snap.Board,
		Score:     snap.Score,
		Highscore: snap.Highscore,
		MaxTile:   snap.MaxTile,
		Moves:     snap.Moves,
		Playtime:  FormatPlaytime(s.Playtime()),
		Message:   s.message,
		Status:    snap.State,
		Quit:      s.quit,
	}
}
