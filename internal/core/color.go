package core

// Color is a terminal colour: a hex RGB value ("#edc22e") or an ANSI
// 256-colour code ("208"). The empty Color is the terminal default.
type Color string

// Named colours used outside the board.
const (
	ColorDefault Color = ""
	ColorRed     Color = "1"
	ColorGreen   Color = "2"
	ColorYellow  Color = "3"
	ColorWhite   Color = "15"
	ColorGray    Color = "245"
	ColorOrange  Color = "208"
)

// IsDefault reports whether c is the terminal default colour.
func (c Color) IsDefault() bool {
	return c == ColorDefault
}
