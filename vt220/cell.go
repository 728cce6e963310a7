package vt220

// AttrMask is a bitmask of per-cell rendition flags set via SGR.
type AttrMask uint8

const (
	AttrBold AttrMask = 1 << iota
	AttrItalic
	AttrUnderline
	AttrReverse
	AttrHidden
	AttrBlink
)

// Cell is one grid position. It carries a code point, palette indices for
// foreground and background, and the rendition flags. Cells are value
// types; the grid owns them exclusively and hands copies across the flush
// boundary.
type Cell struct {
	Content rune
	FG      Color
	BG      Color
	Attrs   AttrMask
}

func (c *Cell) rune() rune {
	if c.Content == rune(0) {
		return ' '
	}
	return c.Content
}

// Erasing removes characters from the screen without affecting other
// characters on the screen. Erased characters are lost. Erasing a cell
// also erases its rendition flags and applies the passed background.
func (c *Cell) erase(bg Color) {
	c.Content = ' '
	c.FG = DefaultColor
	c.BG = bg
	c.Attrs = 0
}
