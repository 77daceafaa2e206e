package core

// Color is the foreground color of a cell. The renderer maps each value to a
// terminal color; ColorDefault leaves the terminal's own foreground.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray

	colorCount
)

// Valid reports whether c is one of the named colors.
func (c Color) Valid() bool {
	return c < colorCount
}
