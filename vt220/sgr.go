package vt220

// sgr applies Select Graphic Rendition parameters to the pen. Parameters
// accumulate onto the current pen; only 0 resets. Unknown parameters are
// skipped without aborting the rest of the list.
func (t *Terminal) sgr(params []int) {
	if len(params) == 0 {
		params = []int{0}
	}
	for i := 0; i < len(params); i++ {
		param := params[i]
		switch {
		case param == 0:
			t.pen = Cell{}
		case param == 1:
			t.pen.Attrs |= AttrBold
		case param == 3:
			t.pen.Attrs |= AttrItalic
		case param == 4:
			t.pen.Attrs |= AttrUnderline
		case param == 5, param == 6:
			t.pen.Attrs |= AttrBlink
		case param == 7:
			t.pen.Attrs |= AttrReverse
		case param == 8:
			t.pen.Attrs |= AttrHidden
		case param == 21, param == 22:
			t.pen.Attrs &^= AttrBold
		case param == 23:
			t.pen.Attrs &^= AttrItalic
		case param == 24:
			t.pen.Attrs &^= AttrUnderline
		case param == 25:
			t.pen.Attrs &^= AttrBlink
		case param == 27:
			t.pen.Attrs &^= AttrReverse
		case param == 28:
			t.pen.Attrs &^= AttrHidden
		case param >= 30 && param <= 37:
			t.pen.FG = colorFrom4Bit(param)
		case param == 38:
			var c Color
			c, i = extendedColor(params, i)
			if c != 0 {
				t.pen.FG = c
			}
		case param == 39:
			t.pen.FG = DefaultColor
		case param >= 40 && param <= 47:
			t.pen.BG = colorFrom4Bit(param)
		case param == 48:
			var c Color
			c, i = extendedColor(params, i)
			if c != 0 {
				t.pen.BG = c
			}
		case param == 49:
			t.pen.BG = DefaultColor
		case param >= 90 && param <= 97:
			t.pen.FG = colorFrom4Bit(param)
		case param >= 100 && param <= 107:
			t.pen.BG = colorFrom4Bit(param)
		default:
			t.logf("unhandled SGR %d", param)
		}
	}
}

// extendedColor consumes a 38/48 extended color spec starting at index i
// and returns the palette color plus the index of the last parameter
// used. 5;n selects a palette entry; 2;r;g;b is consumed but yields no
// color since the model is palette-indexed.
func extendedColor(params []int, i int) (Color, int) {
	if i+1 >= len(params) {
		return 0, i
	}
	switch params[i+1] {
	case 5:
		if i+2 >= len(params) {
			return 0, i + 1
		}
		return paletteColor(params[i+2]), i + 2
	case 2:
		end := i + 4
		if end >= len(params) {
			end = len(params) - 1
		}
		return 0, end
	}
	return 0, i + 1
}
