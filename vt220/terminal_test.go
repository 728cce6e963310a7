package vt220

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feed(term *Terminal, s string) {
	_, _ = term.Write([]byte(s))
}

func TestPrintAdvancesCursor(t *testing.T) {
	term := New(WithSize(10, 3))
	feed(term, "hi")

	cell, ok := term.CellAt(0, 0)
	require.True(t, ok)
	assert.Equal(t, 'h', cell.Content)
	cell, _ = term.CellAt(1, 0)
	assert.Equal(t, 'i', cell.Content)
	assert.Equal(t, 2, term.Cursor().X)
	assert.Equal(t, 0, term.Cursor().Y)
}

func TestAutoWrapIsEager(t *testing.T) {
	term := New(WithSize(4, 3))
	feed(term, "abcd")

	// the cursor wraps as soon as it passes the last column
	assert.Equal(t, 0, term.Cursor().X)
	assert.Equal(t, 1, term.Cursor().Y)

	feed(term, "e")
	cell, _ := term.CellAt(0, 1)
	assert.Equal(t, 'e', cell.Content)
}

func TestAutoWrapDisabled(t *testing.T) {
	term := New(WithSize(4, 3))
	feed(term, "\x1b[?7labcdef")

	assert.Equal(t, 3, term.Cursor().X)
	assert.Equal(t, 0, term.Cursor().Y)
	cell, _ := term.CellAt(3, 0)
	assert.Equal(t, 'f', cell.Content)
}

func TestWrapAtBottomScrolls(t *testing.T) {
	term := New(WithSize(2, 2))
	feed(term, "abcdef")

	// the wrap after f scrolls immediately, leaving a blank bottom row
	assert.Equal(t, "ef\n  ", term.String())
	assert.Equal(t, 0, term.Cursor().X)
	assert.Equal(t, 1, term.Cursor().Y)
}

func TestEraseThenHome(t *testing.T) {
	term := New(WithSize(4, 2))
	feed(term, "A\x1b[2J\x1b[1;1HB")

	cell, _ := term.CellAt(0, 0)
	assert.Equal(t, 'B', cell.Content)
	cell, _ = term.CellAt(1, 0)
	assert.Equal(t, ' ', cell.Content)
	assert.Equal(t, "B   \n    ", term.String())
}

func TestAttributesApplyToFollowingTextOnly(t *testing.T) {
	term := New(WithSize(4, 1))
	feed(term, "\x1b[31mX\x1b[0mY")

	x, _ := term.CellAt(0, 0)
	assert.Equal(t, Red, x.FG)
	y, _ := term.CellAt(1, 0)
	assert.Equal(t, DefaultColor, y.FG)
}

func TestEraseUsesCurrentBackground(t *testing.T) {
	term := New(WithSize(4, 1))
	feed(term, "\x1b[1;41mab\x1b[K")

	cell, _ := term.CellAt(2, 0)
	assert.Equal(t, ' ', cell.Content)
	assert.Equal(t, Red, cell.BG)
	assert.Equal(t, DefaultColor, cell.FG)
	assert.Equal(t, AttrMask(0), cell.Attrs)
}

func TestEraseLineModes(t *testing.T) {
	t.Run("to end", func(t *testing.T) {
		term := New(WithSize(6, 1))
		feed(term, "abcde\x1b[1;3H\x1b[K")
		assert.Equal(t, "ab    ", term.String())
	})
	t.Run("to start", func(t *testing.T) {
		term := New(WithSize(6, 1))
		feed(term, "abcde\x1b[1;3H\x1b[1K")
		assert.Equal(t, "   de ", term.String())
	})
	t.Run("whole line", func(t *testing.T) {
		term := New(WithSize(6, 1))
		feed(term, "abcde\x1b[2K")
		assert.Equal(t, "      ", term.String())
	})
}

func TestEraseDisplayModes(t *testing.T) {
	t.Run("to end", func(t *testing.T) {
		term := New(WithSize(3, 3))
		feed(term, "ab\r\ncd\r\nef\x1b[2;1H\x1b[J")
		assert.Equal(t, "ab \n   \n   ", term.String())
	})
	t.Run("to start", func(t *testing.T) {
		term := New(WithSize(3, 3))
		feed(term, "ab\r\ncd\r\nef\x1b[2;2H\x1b[1J")
		assert.Equal(t, "   \n   \nef ", term.String())
	})
}

func TestScrollRegion(t *testing.T) {
	term := New(WithSize(4, 4))
	feed(term, "r0\r\nr1\r\nr2\r\nr3")
	feed(term, "\x1b[2;3r")

	// DECSTBM homes the cursor
	assert.Equal(t, 0, term.Cursor().X)
	assert.Equal(t, 0, term.Cursor().Y)

	feed(term, "\x1b[3;1H\n")
	assert.Equal(t, "r0  \nr2  \n    \nr3  ", term.String())
	assert.Equal(t, 2, term.Cursor().Y)
}

func TestScrollRegionReverseIndex(t *testing.T) {
	term := New(WithSize(4, 4))
	feed(term, "r0\r\nr1\r\nr2\r\nr3")
	feed(term, "\x1b[2;3r\x1b[2;1H\x1bM")

	assert.Equal(t, "r0  \n    \nr1  \nr3  ", term.String())
}

func TestInvertedScrollRegionIgnored(t *testing.T) {
	term := New(WithSize(4, 4))
	feed(term, "\x1b[3;2r\x1b[4;1H\n")

	// region untouched, LF at the true bottom scrolls the full screen
	assert.Equal(t, 3, term.Cursor().Y)
}

func TestOriginMode(t *testing.T) {
	term := New(WithSize(10, 10))
	feed(term, "\x1b[3;6r\x1b[?6h")

	assert.Equal(t, 2, term.Cursor().Y)

	feed(term, "\x1b[2;1H")
	assert.Equal(t, 3, term.Cursor().Y)

	// addressing can not leave the region
	feed(term, "\x1b[99;1H")
	assert.Equal(t, 5, term.Cursor().Y)
}

func TestCursorMovementClamps(t *testing.T) {
	term := New(WithSize(5, 3))
	feed(term, "\x1b[10A\x1b[10D")
	assert.Equal(t, 0, term.Cursor().X)
	assert.Equal(t, 0, term.Cursor().Y)

	feed(term, "\x1b[99B\x1b[99C")
	assert.Equal(t, 4, term.Cursor().X)
	assert.Equal(t, 2, term.Cursor().Y)
}

func TestColumnAndRowAddressing(t *testing.T) {
	term := New(WithSize(10, 5))
	feed(term, "\x1b[4G")
	assert.Equal(t, 3, term.Cursor().X)

	feed(term, "\x1b[3d")
	assert.Equal(t, 2, term.Cursor().Y)

	feed(term, "\x1b[2E")
	assert.Equal(t, 0, term.Cursor().X)
	assert.Equal(t, 4, term.Cursor().Y)

	feed(term, "\x1b[3;5H\x1b[1F")
	assert.Equal(t, 0, term.Cursor().X)
	assert.Equal(t, 1, term.Cursor().Y)
}

func TestTabStops(t *testing.T) {
	term := New(WithSize(20, 2))
	feed(term, "\tA")
	cell, _ := term.CellAt(8, 0)
	assert.Equal(t, 'A', cell.Content)

	// set a custom stop and return to it
	feed(term, "\r\x1b[6G\x1bH\r\t")
	assert.Equal(t, 5, term.Cursor().X)

	// back tab
	feed(term, "\x1b[12G\x1b[Z")
	assert.Equal(t, 8, term.Cursor().X)

	// clear all stops: tab goes to the last column
	feed(term, "\x1b[3g\r\t")
	assert.Equal(t, 19, term.Cursor().X)
}

func TestInsertAndDeleteChars(t *testing.T) {
	t.Run("ICH", func(t *testing.T) {
		term := New(WithSize(6, 1))
		feed(term, "abc\x1b[1;1H\x1b[2@")
		assert.Equal(t, "  abc ", term.String())
	})
	t.Run("DCH", func(t *testing.T) {
		term := New(WithSize(6, 1))
		feed(term, "abcde\x1b[1;2H\x1b[2P")
		assert.Equal(t, "ade   ", term.String())
	})
	t.Run("ECH", func(t *testing.T) {
		term := New(WithSize(6, 1))
		feed(term, "abcde\x1b[1;2H\x1b[2X")
		assert.Equal(t, "a  de ", term.String())
	})
}

func TestInsertAndDeleteLines(t *testing.T) {
	t.Run("IL", func(t *testing.T) {
		term := New(WithSize(3, 3))
		feed(term, "aa\r\nbb\r\ncc\x1b[1;1H\x1b[1L")
		assert.Equal(t, "   \naa \nbb ", term.String())
	})
	t.Run("DL", func(t *testing.T) {
		term := New(WithSize(3, 3))
		feed(term, "aa\r\nbb\r\ncc\x1b[1;1H\x1b[1M")
		assert.Equal(t, "bb \ncc \n   ", term.String())
	})
	t.Run("outside region has no effect", func(t *testing.T) {
		term := New(WithSize(3, 4))
		feed(term, "aa\r\nbb\r\ncc\r\ndd\x1b[1;2r\x1b[4;1H\x1b[M")
		assert.Equal(t, "aa \nbb \ncc \ndd ", term.String())
	})
}

func TestInsertMode(t *testing.T) {
	term := New(WithSize(5, 1))
	feed(term, "abc\x1b[1;1H\x1b[4hX")
	assert.Equal(t, "Xabc ", term.String())

	feed(term, "\x1b[4l\x1b[1;1HY")
	assert.Equal(t, "Yabc ", term.String())
}

func TestNewLineMode(t *testing.T) {
	term := New(WithSize(5, 3))
	feed(term, "A\nB")
	assert.Equal(t, 1, term.Cursor().Y)
	assert.Equal(t, 2, term.Cursor().X)

	feed(term, "\x1b[20h\nC")
	cell, _ := term.CellAt(0, 2)
	assert.Equal(t, 'C', cell.Content)
}

func TestAltScreen(t *testing.T) {
	term := New(WithSize(4, 2))
	feed(term, "hi")
	feed(term, "\x1b[?1049h")

	assert.True(t, term.AltScreenActive())
	assert.Equal(t, "    \n    ", term.String())

	feed(term, "alt")
	feed(term, "\x1b[?1049l")

	assert.False(t, term.AltScreenActive())
	assert.Equal(t, "hi  \n    ", term.String())
	assert.Equal(t, 2, term.Cursor().X)

	// the alternate screen is cleared on every entry
	feed(term, "\x1b[?1049h")
	assert.Equal(t, "    \n    ", term.String())
}

func TestSaveRestoreCursor(t *testing.T) {
	term := New(WithSize(10, 5))
	feed(term, "\x1b[3;4H\x1b[31m\x1b7")
	feed(term, "\x1b[1;1H\x1b[0mmoved")
	feed(term, "\x1b8X")

	cell, _ := term.CellAt(3, 2)
	assert.Equal(t, 'X', cell.Content)
	assert.Equal(t, Red, cell.FG)
}

func TestRestoreWithoutSaveResetsCursor(t *testing.T) {
	term := New(WithSize(10, 5))
	feed(term, "\x1b[4;5H\x1b8")
	assert.Equal(t, 0, term.Cursor().X)
	assert.Equal(t, 0, term.Cursor().Y)
}

func TestAlignmentTest(t *testing.T) {
	term := New(WithSize(3, 2))
	feed(term, "\x1b#8")
	assert.Equal(t, "EEE\nEEE", term.String())
	assert.Equal(t, 0, term.Cursor().X)
	assert.Equal(t, 0, term.Cursor().Y)
}

func TestHardReset(t *testing.T) {
	term := New(WithSize(3, 2))
	feed(term, "ab\x1b[31m\x1b[?6h\x1bc")
	assert.Equal(t, "   \n   ", term.String())
	assert.Equal(t, 0, term.Cursor().X)

	feed(term, "x")
	cell, _ := term.CellAt(0, 0)
	assert.Equal(t, DefaultColor, cell.FG)
}

func TestSoftReset(t *testing.T) {
	term := New(WithSize(10, 5))
	feed(term, "keep\x1b[2;4r\x1b[31m\x1b[?6h\x1b[!p")

	cell, _ := term.CellAt(0, 0)
	assert.Equal(t, 'k', cell.Content)

	// margins and origin mode are gone
	feed(term, "\x1b[5;1Hx")
	assert.Equal(t, 4, term.Cursor().Y)
	cell, _ = term.CellAt(0, 4)
	assert.Equal(t, DefaultColor, cell.FG)
}

func TestScrollUpAndDown(t *testing.T) {
	term := New(WithSize(3, 3))
	feed(term, "aa\r\nbb\r\ncc")

	feed(term, "\x1b[S")
	assert.Equal(t, "bb \ncc \n   ", term.String())

	feed(term, "\x1b[T")
	assert.Equal(t, "   \nbb \ncc ", term.String())
}

func TestResizePreservesTopLeft(t *testing.T) {
	term := New(WithSize(4, 2))
	feed(term, "ab\r\ncd")

	require.NoError(t, term.Resize(6, 3))
	assert.Equal(t, "ab    \ncd    \n      ", term.String())

	require.NoError(t, term.Resize(2, 1))
	assert.Equal(t, "ab", term.String())

	cols, rows := term.Size()
	assert.Equal(t, 2, cols)
	assert.Equal(t, 1, rows)
	assert.Equal(t, 0, term.Cursor().Y)

	// growing back pads with blanks; clipped content is gone for good
	require.NoError(t, term.Resize(4, 2))
	assert.Equal(t, "ab  \n    ", term.String())
}

func TestResizeAddsTabStopAtOldWidth(t *testing.T) {
	term := New(WithSize(80, 4))
	require.NoError(t, term.Resize(120, 4))

	// the stop at the old width itself must exist, like on a fresh grid
	feed(term, "\x1b[1;74H\t")
	assert.Equal(t, 80, term.Cursor().X)

	feed(term, "\t")
	assert.Equal(t, 88, term.Cursor().X)
}

func TestResizeRejectsInvalidSize(t *testing.T) {
	term := New(WithSize(4, 2))
	assert.Error(t, term.Resize(0, 5))
	assert.Error(t, term.Resize(5, -1))

	cols, rows := term.Size()
	assert.Equal(t, 4, cols)
	assert.Equal(t, 2, rows)
}

func TestDeviceReplies(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "primary DA",
			input:    "\x1b[c",
			expected: "\x1b[?62;1;2;6;8;9c",
		},
		{
			name:     "DECID",
			input:    "\x1bZ",
			expected: "\x1b[?62;1;2;6;8;9c",
		},
		{
			name:     "secondary DA",
			input:    "\x1b[>c",
			expected: "\x1b[>1;10;0c",
		},
		{
			name:     "operating status",
			input:    "\x1b[5n",
			expected: "\x1b[0n",
		},
		{
			name:     "cursor position",
			input:    "\x1b[3;7H\x1b[6n",
			expected: "\x1b[3;7R",
		},
		{
			name:     "cursor position in origin mode",
			input:    "\x1b[5;10r\x1b[?6h\x1b[2;1H\x1b[6n",
			expected: "\x1b[2;1R",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			buf := bytes.Buffer{}
			term := New(WithWriter(&buf))
			feed(term, test.input)
			assert.Equal(t, test.expected, buf.String())
		})
	}
}

func TestRepliesWithoutWriterAreDropped(t *testing.T) {
	term := New(WithSize(4, 2))
	feed(term, "\x1b[c\x1b[6n")
	assert.Equal(t, 0, term.Cursor().X)
}

func TestLineDrawingCharset(t *testing.T) {
	term := New(WithSize(4, 1))
	feed(term, "\x1b(0qx\x1b(Bq")
	assert.Equal(t, "─│q ", term.String())
}

func TestShiftInShiftOut(t *testing.T) {
	term := New(WithSize(4, 1))
	feed(term, "\x1b)0\x0eq\x0fq")
	assert.Equal(t, "─q  ", term.String())
}

func TestWideRunes(t *testing.T) {
	term := New(WithSize(6, 1), WithEncoding(EncodingUTF8))
	feed(term, "世a")

	cell, _ := term.CellAt(0, 0)
	assert.Equal(t, '世', cell.Content)
	cell, _ = term.CellAt(1, 0)
	assert.Equal(t, ' ', cell.Content)
	cell, _ = term.CellAt(2, 0)
	assert.Equal(t, 'a', cell.Content)
	assert.Equal(t, 3, term.Cursor().X)
}

func TestWideRuneAtLastColumnWrapsWhole(t *testing.T) {
	term := New(WithSize(4, 2), WithEncoding(EncodingUTF8))
	feed(term, "abc世")

	// the glyph is never split across the margin
	cell, _ := term.CellAt(3, 0)
	assert.Equal(t, ' ', cell.Content)
	cell, _ = term.CellAt(0, 1)
	assert.Equal(t, '世', cell.Content)
	cell, _ = term.CellAt(1, 1)
	assert.Equal(t, ' ', cell.Content)
	assert.Equal(t, 2, term.Cursor().X)
	assert.Equal(t, 1, term.Cursor().Y)
}

func TestChunkBoundariesDoNotChangeOutcome(t *testing.T) {
	input := "one\r\n\x1b[31;1mtwo\x1b[0m\x1b[2;4H\x1b]2;title\x07three\x1b[2K\x1b[1;1Hfour"

	whole := New(WithSize(10, 4))
	feed(whole, input)

	split := New(WithSize(10, 4))
	for i := 0; i < len(input); i++ {
		feed(split, input[i:i+1])
	}

	assert.Empty(t, cmp.Diff(whole.String(), split.String()))
	assert.Equal(t, whole.Cursor(), split.Cursor())
	assert.Equal(t, whole.Title(), split.Title())

	for y := 0; y < 4; y++ {
		for x := 0; x < 10; x++ {
			w, _ := whole.CellAt(x, y)
			s, _ := split.CellAt(x, y)
			assert.Equal(t, w, s, "cell %d,%d", x, y)
		}
	}
}

func TestMalformedInputResynchronizes(t *testing.T) {
	term := New(WithSize(10, 2))
	feed(term, "\x1b[999999999999;::garbage")
	feed(term, "\x1b[1;1Hok")

	assert.True(t, strings.HasPrefix(term.String(), "ok"))
}

func TestUnknownSequencesAreLogged(t *testing.T) {
	var logged []string
	term := New(WithSize(4, 1), WithLogger(func(format string, args ...interface{}) {
		logged = append(logged, format)
	}))
	feed(term, "\x1b[?9999hx")

	cell, _ := term.CellAt(0, 0)
	assert.Equal(t, 'x', cell.Content)
	assert.NotEmpty(t, logged)
}

func TestWindowTitle(t *testing.T) {
	term := New(WithSize(4, 1))
	feed(term, "\x1b]2;hello\x07")
	assert.Equal(t, "hello", term.Title())

	feed(term, "\x1b]0;world\x1b\\")
	assert.Equal(t, "world", term.Title())
}

type recordingFrontend struct {
	resizes [][2]int
	updates int
	cells   []Cell
	dirty   []bool
	titles  []string
	bells   int
}

func (f *recordingFrontend) OnResize(cols, rows int) {
	f.resizes = append(f.resizes, [2]int{cols, rows})
}

func (f *recordingFrontend) OnUpdate(cells []Cell, dirty []bool) {
	f.updates++
	f.cells = cells
	f.dirty = dirty
}

func (f *recordingFrontend) OnTitle(title string) {
	f.titles = append(f.titles, title)
}

func (f *recordingFrontend) OnBell() {
	f.bells++
}

func TestFrontendNotifications(t *testing.T) {
	fe := &recordingFrontend{}
	term := New(WithSize(4, 2), WithFrontend(fe))

	require.Len(t, fe.resizes, 1)
	assert.Equal(t, [2]int{4, 2}, fe.resizes[0])

	feed(term, "a")
	require.Equal(t, 1, fe.updates)
	assert.Equal(t, 'a', fe.cells[0].Content)
	assert.True(t, fe.dirty[0])

	// the dirty set resets after each flush
	feed(term, "b")
	assert.False(t, fe.dirty[0])
	assert.True(t, fe.dirty[1])

	feed(term, "\x1b]0;t\x07\a")
	assert.Equal(t, []string{"t"}, fe.titles)
	assert.Equal(t, 1, fe.bells)

	require.NoError(t, term.Resize(6, 3))
	require.Len(t, fe.resizes, 2)
}

func TestFlushSnapshotIsIndependent(t *testing.T) {
	fe := &recordingFrontend{}
	term := New(WithSize(4, 1), WithFrontend(fe))

	feed(term, "a")
	snap := fe.cells
	feed(term, "\rb")

	assert.Equal(t, 'a', snap[0].Content)
	cell, _ := term.CellAt(0, 0)
	assert.Equal(t, 'b', cell.Content)
}
