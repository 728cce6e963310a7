package vt220

// Color is a palette index, not a concrete color. 0 means the renderer's
// default; 1-16 are the basic and bright ANSI slots; 17-256 are the
// extended palette reached through SGR 38;5 / 48;5. Mapping indices to
// pixels is entirely the renderer's business.
type Color uint16

const (
	DefaultColor Color = iota
	Black
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	BrightBlack
	BrightRed
	BrightGreen
	BrightYellow
	BrightBlue
	BrightMagenta
	BrightCyan
	BrightWhite
)

// paletteColor converts an 8-bit palette number (0-255) to a Color index.
func paletteColor(n int) Color {
	if n < 0 || n > 255 {
		return DefaultColor
	}
	return Color(n + 1)
}

// colorFrom4Bit converts an SGR 30-37/90-97/40-47/100-107 code.
func colorFrom4Bit(code int) Color {
	switch {
	case code >= 30 && code <= 37:
		return Color(code - 30 + 1)
	case code >= 40 && code <= 47:
		return Color(code - 40 + 1)
	case code >= 90 && code <= 97:
		return Color(code - 90 + 9)
	case code >= 100 && code <= 107:
		return Color(code - 100 + 9)
	}
	return DefaultColor
}
