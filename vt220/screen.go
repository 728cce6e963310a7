package vt220

import "github.com/mattn/go-runewidth"

// print writes a character at the cursor with the current pen and
// advances. Past the last column the cursor wraps to the next row when
// autowrap is on, scrolling the region if it was on the bottom row;
// with autowrap off it stays put and overwrites.
func (t *Terminal) print(r rune) {
	if t.charsets[t.activeCharset] == decSpecialAndLineDrawing {
		if mapped, ok := decSpecial[r]; ok {
			r = mapped
		}
	}
	w := runewidth.RuneWidth(r)
	if w == 0 {
		// combining marks are not composed into cells
		return
	}

	cur := &t.active.cur

	// a wide rune that does not fit wraps whole instead of splitting
	if cur.X+w > t.cols && t.modes.AutoWrap {
		cur.X = 0
		t.index()
	}
	row := t.active.grid[cur.Y]

	if t.modes.Insert {
		for x := t.cols - 1; x >= cur.X+w; x-- {
			row[x] = row[x-w]
			t.markDirty(x, cur.Y)
		}
	}

	row[cur.X] = Cell{Content: r, FG: t.pen.FG, BG: t.pen.BG, Attrs: t.pen.Attrs}
	t.markDirty(cur.X, cur.Y)

	// trailing half of a wide rune
	for i := 1; i < w && cur.X+i < t.cols; i++ {
		row[cur.X+i] = Cell{Content: ' ', FG: t.pen.FG, BG: t.pen.BG, Attrs: t.pen.Attrs}
		t.markDirty(cur.X+i, cur.Y)
	}

	cur.X += w
	if cur.X > t.cols-1 {
		if t.modes.AutoWrap {
			cur.X = 0
			t.index()
		} else {
			cur.X = t.cols - 1
		}
	}
}

// execute applies a C0 control character.
func (t *Terminal) execute(r rune) {
	cur := &t.active.cur
	switch r {
	case 0x07: // BEL
		if bh, ok := t.frontend.(BellHandler); ok {
			bh.OnBell()
		}
	case 0x08: // BS
		if cur.X > 0 {
			cur.X--
		}
	case 0x09: // HT
		t.horizontalTab()
	case 0x0a, 0x0b, 0x0c: // LF, VT, FF
		t.index()
		if t.modes.NewLine {
			cur.X = 0
		}
	case 0x0d: // CR
		cur.X = 0
	case 0x0e: // SO - invoke G1
		t.activeCharset = 1
	case 0x0f: // SI - invoke G0
		t.activeCharset = 0
	default:
		// NUL, ENQ and the rest are absorbed
	}
}

// index moves the cursor down one row, scrolling the region up when the
// cursor sits on its bottom row.
func (t *Terminal) index() {
	cur := &t.active.cur
	if cur.Y == t.bottom {
		t.scrollUp(1)
		return
	}
	if cur.Y < t.rows-1 {
		cur.Y++
	}
}

// reverseIndex moves the cursor up one row, scrolling the region down
// when the cursor sits on its top row.
func (t *Terminal) reverseIndex() {
	cur := &t.active.cur
	if cur.Y == t.top {
		t.scrollDown(1)
		return
	}
	if cur.Y > 0 {
		cur.Y--
	}
}

// nextLine is NEL: index plus carriage return.
func (t *Terminal) nextLine() {
	t.index()
	t.active.cur.X = 0
}

func (t *Terminal) scrollUp(n int) {
	t.scrollRangeUp(t.top, t.bottom, n)
}

func (t *Terminal) scrollDown(n int) {
	t.scrollRangeDown(t.top, t.bottom, n)
}

// scrollRangeUp shifts rows [top, bottom] up by n. Rows vacated at the
// bottom edge become blank with the current background. Content outside
// the range is never touched.
func (t *Terminal) scrollRangeUp(top, bottom, n int) {
	if n < 1 {
		n = 1
	}
	if n > bottom-top+1 {
		n = bottom - top + 1
	}
	grid := t.active.grid
	for y := top; y <= bottom; y++ {
		if y+n <= bottom {
			copy(grid[y], grid[y+n])
		} else {
			t.eraseRow(y)
		}
		t.markRow(y)
	}
}

func (t *Terminal) scrollRangeDown(top, bottom, n int) {
	if n < 1 {
		n = 1
	}
	if n > bottom-top+1 {
		n = bottom - top + 1
	}
	grid := t.active.grid
	for y := bottom; y >= top; y-- {
		if y-n >= top {
			copy(grid[y], grid[y-n])
		} else {
			t.eraseRow(y)
		}
		t.markRow(y)
	}
}

// blankCell is an erased position: a space carrying the current
// background, per ECMA-48 erase semantics.
func (t *Terminal) blankCell() Cell {
	return Cell{Content: ' ', BG: t.pen.BG}
}

func (t *Terminal) eraseRow(y int) {
	row := t.active.grid[y]
	for x := range row {
		row[x].erase(t.pen.BG)
	}
	t.markRow(y)
}

func (t *Terminal) eraseCells(y, from, to int) {
	from = clamp(from, 0, t.cols-1)
	to = clamp(to, 0, t.cols-1)
	row := t.active.grid[y]
	for x := from; x <= to; x++ {
		row[x].erase(t.pen.BG)
		t.markDirty(x, y)
	}
}

// eraseDisplay is ED. 0 erases from the cursor to the end, 1 from the
// start through the cursor, 2 (and 3) the whole display.
func (t *Terminal) eraseDisplay(mode int) {
	cur := t.active.cur
	switch mode {
	case 0:
		t.eraseCells(cur.Y, cur.X, t.cols-1)
		for y := cur.Y + 1; y < t.rows; y++ {
			t.eraseRow(y)
		}
	case 1:
		for y := 0; y < cur.Y; y++ {
			t.eraseRow(y)
		}
		t.eraseCells(cur.Y, 0, cur.X)
	case 2, 3:
		for y := 0; y < t.rows; y++ {
			t.eraseRow(y)
		}
	}
}

// eraseLine is EL with the same sub-modes as ED, confined to the
// cursor's row.
func (t *Terminal) eraseLine(mode int) {
	cur := t.active.cur
	switch mode {
	case 0:
		t.eraseCells(cur.Y, cur.X, t.cols-1)
	case 1:
		t.eraseCells(cur.Y, 0, cur.X)
	case 2:
		t.eraseRow(cur.Y)
	}
}

// eraseChars is ECH: blank n cells from the cursor without shifting.
func (t *Terminal) eraseChars(n int) {
	cur := t.active.cur
	t.eraseCells(cur.Y, cur.X, cur.X+n-1)
}

// insertChars is ICH: shift the remainder of the row right, dropping
// cells pushed past the last column.
func (t *Terminal) insertChars(n int) {
	cur := t.active.cur
	if n > t.cols-cur.X {
		n = t.cols - cur.X
	}
	row := t.active.grid[cur.Y]
	for x := t.cols - 1; x >= cur.X+n; x-- {
		row[x] = row[x-n]
	}
	blank := t.blankCell()
	for x := cur.X; x < cur.X+n; x++ {
		row[x] = blank
	}
	t.markRow(cur.Y)
}

// deleteChars is DCH: shift the remainder of the row left, filling
// vacated cells at the right edge with blanks.
func (t *Terminal) deleteChars(n int) {
	cur := t.active.cur
	if n > t.cols-cur.X {
		n = t.cols - cur.X
	}
	row := t.active.grid[cur.Y]
	for x := cur.X; x < t.cols-n; x++ {
		row[x] = row[x+n]
	}
	blank := t.blankCell()
	for x := t.cols - n; x < t.cols; x++ {
		row[x] = blank
	}
	t.markRow(cur.Y)
}

// insertLines is IL. No effect when the cursor is outside the scroll
// region; otherwise lines shift down within [cursor, bottom].
func (t *Terminal) insertLines(n int) {
	cur := &t.active.cur
	if cur.Y < t.top || cur.Y > t.bottom {
		return
	}
	t.scrollRangeDown(cur.Y, t.bottom, n)
	cur.X = 0
}

// deleteLines is DL, the inverse of IL.
func (t *Terminal) deleteLines(n int) {
	cur := &t.active.cur
	if cur.Y < t.top || cur.Y > t.bottom {
		return
	}
	t.scrollRangeUp(cur.Y, t.bottom, n)
	cur.X = 0
}

// moveTo positions the cursor from CUP-style addressable coordinates:
// zero-based, with y relative to the top margin in origin mode.
func (t *Terminal) moveTo(x, y int) {
	minY, maxY := 0, t.rows-1
	if t.modes.OriginMode {
		y += t.top
		minY, maxY = t.top, t.bottom
	}
	t.active.cur.X = clamp(x, 0, t.cols-1)
	t.active.cur.Y = clamp(y, minY, maxY)
}

// moveRel moves the cursor by a delta, clamped to the scroll region in
// origin mode and to the full grid otherwise.
func (t *Terminal) moveRel(dx, dy int) {
	cur := &t.active.cur
	minY, maxY := 0, t.rows-1
	if t.modes.OriginMode {
		minY, maxY = t.top, t.bottom
	}
	cur.X = clamp(cur.X+dx, 0, t.cols-1)
	cur.Y = clamp(cur.Y+dy, minY, maxY)
}

// horizontalTab moves to the next tab stop, or the last column if none
// remains.
func (t *Terminal) horizontalTab() {
	cur := &t.active.cur
	next := t.cols - 1
	for x := cur.X + 1; x < t.cols; x++ {
		if _, ok := t.tabStops[x]; ok {
			next = x
			break
		}
	}
	cur.X = next
}

// backwardTab moves to the previous tab stop, or column zero.
func (t *Terminal) backwardTab() {
	cur := &t.active.cur
	prev := 0
	for x := cur.X - 1; x > 0; x-- {
		if _, ok := t.tabStops[x]; ok {
			prev = x
			break
		}
	}
	cur.X = prev
}

// tabSet is HTS: set a stop at the cursor column.
func (t *Terminal) tabSet() {
	t.tabStops[t.active.cur.X] = struct{}{}
}

// tabClear is TBC: 0 clears the stop at the cursor, 3 clears all.
func (t *Terminal) tabClear(mode int) {
	switch mode {
	case 0:
		delete(t.tabStops, t.active.cur.X)
	case 3:
		t.tabStops = make(map[int]struct{})
	}
}

// setScrollRegion is DECSTBM. Bounds are zero-based inclusive; an
// inverted region is ignored. The cursor homes afterwards.
func (t *Terminal) setScrollRegion(top, bottom int) {
	top = clamp(top, 0, t.rows-1)
	bottom = clamp(bottom, 0, t.rows-1)
	if top >= bottom {
		return
	}
	t.top = top
	t.bottom = bottom
	t.moveTo(0, 0)
}

// decsc saves the cursor, pen, charset and restorable modes into the
// active screen's slot.
func (t *Terminal) decsc() {
	t.active.saved = savedState{
		cur:      t.active.cur.Snapshot(),
		pen:      t.pen,
		origin:   t.modes.OriginMode,
		autoWrap: t.modes.AutoWrap,
		charset:  t.activeCharset,
	}
}

// decrc restores the slot written by decsc, clamping the position in
// case the grid shrank since the save.
func (t *Terminal) decrc() {
	s := t.active.saved
	t.active.cur = s.cur
	t.active.cur.X = clamp(t.active.cur.X, 0, t.cols-1)
	t.active.cur.Y = clamp(t.active.cur.Y, 0, t.rows-1)
	t.pen = s.pen
	t.modes.OriginMode = s.origin
	t.modes.AutoWrap = s.autoWrap
	t.modes.CursorVisible = s.cur.Visible
	t.activeCharset = s.charset
	t.markDirty(t.active.cur.X, t.active.cur.Y)
}

// enterAltScreen switches to the alternate screen, which has no
// scrollback and is cleared on every entry. The primary grid stays
// untouched underneath.
func (t *Terminal) enterAltScreen() {
	if t.modes.AltScreen {
		return
	}
	t.modes.AltScreen = true
	t.active = &t.alt
	t.active.cur = newCursor()
	t.active.cur.Visible = t.modes.CursorVisible
	for y := 0; y < t.rows; y++ {
		t.eraseRow(y)
	}
	t.markAll()
}

// exitAltScreen restores the primary screen exactly as it was left.
func (t *Terminal) exitAltScreen() {
	if !t.modes.AltScreen {
		return
	}
	t.modes.AltScreen = false
	t.active = &t.primary
	t.active.cur.Visible = t.modes.CursorVisible
	t.markAll()
}

// alignmentTest is DECALN: fill the screen with E's, reset the margins
// and home the cursor.
func (t *Terminal) alignmentTest() {
	t.top = 0
	t.bottom = t.rows - 1
	for y := range t.active.grid {
		row := t.active.grid[y]
		for x := range row {
			row[x] = Cell{Content: 'E'}
		}
	}
	t.active.cur.X = 0
	t.active.cur.Y = 0
	t.markAll()
}

// softReset is DECSTR.
func (t *Terminal) softReset() {
	t.pen = Cell{}
	t.modes.Insert = false
	t.modes.OriginMode = false
	t.modes.AutoWrap = true
	t.modes.CursorVisible = true
	t.active.cur.Visible = true
	t.top = 0
	t.bottom = t.rows - 1
	t.charsets = [2]charset{ascii, ascii}
	t.activeCharset = 0
	t.active.saved = defaultSavedState()
}

// hardReset is RIS: back to the power-on state at the current size.
func (t *Terminal) hardReset() {
	t.primary = newScreen(t.cols, t.rows)
	t.alt = newScreen(t.cols, t.rows)
	t.active = &t.primary
	t.pen = Cell{}
	t.modes = defaultModes()
	t.top = 0
	t.bottom = t.rows - 1
	t.tabStops = defaultTabStops(t.cols)
	t.charsets = [2]charset{ascii, ascii}
	t.activeCharset = 0
	t.markAll()
}
