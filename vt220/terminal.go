package vt220

import (
	"fmt"
	"io"
)

const (
	defaultCols = 80
	defaultRows = 24
	tabSize     = 8
)

// Frontend is the notification boundary towards a renderer. OnResize
// fires whenever the grid dimensions change; OnUpdate delivers a
// read-only snapshot of the active grid together with the dirty bitmap
// accumulated since the previous flush.
type Frontend interface {
	OnResize(cols, rows int)
	OnUpdate(cells []Cell, dirty []bool)
}

// TitleHandler is an optional Frontend capability, discovered by type
// assertion, for OSC 0/2 window title updates.
type TitleHandler interface {
	OnTitle(title string)
}

// BellHandler is an optional Frontend capability for BEL.
type BellHandler interface {
	OnBell()
}

// screen bundles one grid with its own cursor and saved-cursor slot. The
// primary and alternate screens are two independent bundles; switching
// between them flips the active selector and never aliases cell storage.
type screen struct {
	grid  [][]Cell
	cur   Cursor
	saved savedState
}

// savedState is the DECSC slot: a cursor snapshot plus the pen, active
// character set and the mode subset that DECRC restores. Overwritten on
// every save, never stacked.
type savedState struct {
	cur      Cursor
	pen      Cell
	origin   bool
	autoWrap bool
	charset  int
}

// Terminal models a VT220. It owns the grids, cursor, scroll region,
// tab stops, saved state and mode flags, applies every parsed Sequence,
// and tracks dirty cells for the frontend.
//
// The terminal follows a single-writer discipline: Write, Resize and
// Flush must be serialized by the caller. Nothing here blocks, locks or
// suspends.
type Terminal struct {
	primary screen
	alt     screen
	active  *screen

	cols int
	rows int

	pen           Cell
	top           int // scroll region, inclusive
	bottom        int
	tabStops      map[int]struct{}
	modes         modes
	charsets      [2]charset
	activeCharset int

	dirty []bool

	parser  *Parser
	dec     decoder
	runeBuf []rune

	frontend Frontend
	output   io.Writer
	title    string
	logFn    func(string, ...interface{})
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithSize sets the initial grid dimensions. Default is 80x24.
func WithSize(cols, rows int) Option {
	return func(t *Terminal) {
		if cols > 0 && rows > 0 {
			t.cols = cols
			t.rows = rows
		}
	}
}

// WithWriter sets the write-back channel used for device status and
// attribute replies (DSR, DA). Without one, queries go unanswered.
func WithWriter(w io.Writer) Option {
	return func(t *Terminal) {
		t.output = w
	}
}

// WithFrontend attaches the renderer notification boundary.
func WithFrontend(f Frontend) Option {
	return func(t *Terminal) {
		t.frontend = f
	}
}

// WithEncoding selects the byte decoder encoding.
func WithEncoding(e Encoding) Option {
	return func(t *Terminal) {
		t.dec.encoding = e
	}
}

// WithLogger installs a printf-style logger for unhandled sequences.
func WithLogger(fn func(string, ...interface{})) Option {
	return func(t *Terminal) {
		t.logFn = fn
	}
}

// New creates a terminal session at its default size with default modes.
func New(opts ...Option) *Terminal {
	t := &Terminal{
		cols: defaultCols,
		rows: defaultRows,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.parser = NewParser(t.update)
	t.primary = newScreen(t.cols, t.rows)
	t.alt = newScreen(t.cols, t.rows)
	t.active = &t.primary
	t.modes = defaultModes()
	t.top = 0
	t.bottom = t.rows - 1
	t.tabStops = defaultTabStops(t.cols)
	t.dirty = make([]bool, t.cols*t.rows)
	if t.frontend != nil {
		t.frontend.OnResize(t.cols, t.rows)
	}
	return t
}

func newScreen(cols, rows int) screen {
	s := screen{
		grid: make([][]Cell, rows),
		cur:  newCursor(),
	}
	for y := range s.grid {
		s.grid[y] = blankRow(cols)
	}
	s.saved = defaultSavedState()
	return s
}

func blankRow(cols int) []Cell {
	row := make([]Cell, cols)
	for x := range row {
		row[x] = Cell{Content: ' '}
	}
	return row
}

func defaultSavedState() savedState {
	return savedState{
		cur:      newCursor(),
		autoWrap: true,
	}
}

func defaultTabStops(cols int) map[int]struct{} {
	stops := make(map[int]struct{})
	for x := tabSize; x < cols; x += tabSize {
		stops[x] = struct{}{}
	}
	return stops
}

// Write feeds raw bytes from the remote process into the terminal. The
// decoder buffers incomplete multi-byte input, the parser carries
// partial sequences, so chunk boundaries never change the outcome.
// A flush to the frontend follows each batch.
func (t *Terminal) Write(p []byte) (int, error) {
	t.runeBuf = t.dec.decode(p, t.runeBuf[:0])
	for _, r := range t.runeBuf {
		t.parser.Advance(r)
	}
	if t.frontend != nil {
		t.Flush()
	}
	return len(p), nil
}

// update applies one parsed Sequence to the model.
func (t *Terminal) update(seq Sequence) {
	switch seq := seq.(type) {
	case Print:
		t.print(rune(seq))
	case Execute:
		t.execute(rune(seq))
	case ESC:
		t.esc(seq)
	case CSI:
		t.csi(seq)
	case OSC:
		t.osc(seq)
	case DCS, DCSData, DCSEndOfData:
		// device control strings are consumed without model effect
	}
}

// Resize changes the grid geometry. Content keeps its top-left corner,
// clipped or padded with default-attribute blanks; text is never
// reflowed. Non-positive dimensions are rejected and the previous
// geometry is retained.
func (t *Terminal) Resize(cols, rows int) error {
	if cols <= 0 || rows <= 0 {
		return fmt.Errorf("invalid terminal size %dx%d", cols, rows)
	}
	if cols == t.cols && rows == t.rows {
		return nil
	}

	resizeScreen(&t.primary, cols, rows)
	resizeScreen(&t.alt, cols, rows)

	if t.bottom > rows-1 {
		t.bottom = rows - 1
	}
	if t.top >= t.bottom {
		t.top = 0
		t.bottom = rows - 1
	}

	for x := range t.tabStops {
		if x >= cols {
			delete(t.tabStops, x)
		}
	}
	for x := (t.cols + tabSize - 1) / tabSize * tabSize; x < cols; x += tabSize {
		t.tabStops[x] = struct{}{}
	}

	t.cols = cols
	t.rows = rows
	t.dirty = make([]bool, cols*rows)
	t.markAll()

	if t.frontend != nil {
		t.frontend.OnResize(cols, rows)
	}
	return nil
}

func resizeScreen(s *screen, cols, rows int) {
	grid := make([][]Cell, rows)
	for y := range grid {
		grid[y] = blankRow(cols)
		if y < len(s.grid) {
			copy(grid[y], s.grid[y])
		}
	}
	s.grid = grid
	s.cur.X = clamp(s.cur.X, 0, cols-1)
	s.cur.Y = clamp(s.cur.Y, 0, rows-1)
	s.saved.cur.X = clamp(s.saved.cur.X, 0, cols-1)
	s.saved.cur.Y = clamp(s.saved.cur.Y, 0, rows-1)
}

// Size returns the current grid dimensions.
func (t *Terminal) Size() (cols, rows int) {
	return t.cols, t.rows
}

// Cursor returns a snapshot of the active screen's cursor.
func (t *Terminal) Cursor() Cursor {
	return t.active.cur.Snapshot()
}

// SetCursorBlinkRate sets the blink interval of the active cursor.
func (t *Terminal) SetCursorBlinkRate(rate int) error {
	return t.active.cur.SetBlinkRate(rate)
}

// CellAt returns a copy of the cell at (x, y) of the active grid.
func (t *Terminal) CellAt(x, y int) (Cell, bool) {
	if x < 0 || x >= t.cols || y < 0 || y >= t.rows {
		return Cell{}, false
	}
	return t.active.grid[y][x], true
}

// Title returns the window title set via OSC 0/2.
func (t *Terminal) Title() string {
	return t.title
}

// AltScreenActive reports whether the alternate screen is selected.
func (t *Terminal) AltScreenActive() bool {
	return t.modes.AltScreen
}

// CursorKeysApplicationMode reports DECCKM, which a frontend needs when
// translating arrow keys.
func (t *Terminal) CursorKeysApplicationMode() bool {
	return t.modes.ApplicationCursorKeys
}

// BracketedPasteEnabled reports xterm mode 2004.
func (t *Terminal) BracketedPasteEnabled() bool {
	return t.modes.BracketedPaste
}

// String renders the active grid as plain text, one line per row.
func (t *Terminal) String() string {
	out := make([]rune, 0, t.rows*(t.cols+1))
	for y, row := range t.active.grid {
		for x := range row {
			out = append(out, row[x].rune())
		}
		if y < t.rows-1 {
			out = append(out, '\n')
		}
	}
	return string(out)
}

// reply writes a device report to the write-back channel.
func (t *Terminal) reply(s string) {
	if t.output == nil {
		return
	}
	if _, err := io.WriteString(t.output, s); err != nil {
		t.logf("reply failed: %v", err)
	}
}

func (t *Terminal) logf(format string, args ...interface{}) {
	if t.logFn == nil {
		return
	}
	t.logFn(format, args...)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
