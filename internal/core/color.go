package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
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
	ColorBrown
)

// Cell is one character of the screen buffer.
// Tint and Backdrop hold "#rrggbb" true colors sampled from sprites; when set
// they take precedence over Color.
type Cell struct {
	Rune     rune
	Color    Color
	Tint     string
	Backdrop string
}

// blank is the cell a cleared screen is filled with.
var blank = Cell{Rune: ' '}
