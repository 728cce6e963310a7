package jvt220

import (
	"github.com/gdamore/tcell/v2"

	"github.com/d2k2-git/jVT220/vt220"
)

// toTcellColor maps an emulator palette index onto a tcell color. Index
// zero means the surface's default; everything else lands in tcell's
// 256-entry palette.
func toTcellColor(c vt220.Color) tcell.Color {
	if c == vt220.DefaultColor {
		return tcell.ColorDefault
	}
	return tcell.PaletteColor(int(c) - 1)
}

// toStyle converts a cell's colors and rendition flags into a tcell
// style. Hidden renders as foreground equal to background since tcell
// has no conceal attribute.
func toStyle(c vt220.Cell) tcell.Style {
	st := tcell.StyleDefault.
		Foreground(toTcellColor(c.FG)).
		Background(toTcellColor(c.BG))
	if c.Attrs&vt220.AttrBold != 0 {
		st = st.Bold(true)
	}
	if c.Attrs&vt220.AttrItalic != 0 {
		st = st.Italic(true)
	}
	if c.Attrs&vt220.AttrUnderline != 0 {
		st = st.Underline(true)
	}
	if c.Attrs&vt220.AttrBlink != 0 {
		st = st.Blink(true)
	}
	if c.Attrs&vt220.AttrReverse != 0 {
		st = st.Reverse(true)
	}
	if c.Attrs&vt220.AttrHidden != 0 {
		st = st.Foreground(toTcellColor(c.BG))
	}
	return st
}
