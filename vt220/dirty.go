package vt220

// The dirty bitmap is cols*rows, row-major, matching the snapshot layout
// handed to OnUpdate. Every mutation marks the cells it touched; Flush
// hands the accumulated set to the frontend and clears it.

func (t *Terminal) markDirty(x, y int) {
	if x < 0 || x >= t.cols || y < 0 || y >= t.rows {
		return
	}
	t.dirty[y*t.cols+x] = true
}

func (t *Terminal) markRow(y int) {
	if y < 0 || y >= t.rows {
		return
	}
	base := y * t.cols
	for x := 0; x < t.cols; x++ {
		t.dirty[base+x] = true
	}
}

func (t *Terminal) markAll() {
	for i := range t.dirty {
		t.dirty[i] = true
	}
}

// Flush delivers a snapshot of the active grid and the dirty bitmap to
// the frontend, then resets the bitmap. The slices passed out are fresh
// copies; the frontend may keep them without racing later writes.
func (t *Terminal) Flush() {
	if t.frontend == nil {
		return
	}
	cells := make([]Cell, 0, t.cols*t.rows)
	for _, row := range t.active.grid {
		cells = append(cells, row...)
	}
	dirty := make([]bool, len(t.dirty))
	copy(dirty, t.dirty)
	for i := range t.dirty {
		t.dirty[i] = false
	}
	t.frontend.OnUpdate(cells, dirty)
}
