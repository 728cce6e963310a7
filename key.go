package jvt220

import "github.com/gdamore/tcell/v2"

// keyCode translates a tcell key event into the byte string a VT220-ish
// terminal sends for it. appCursor switches the arrow keys to the
// application (SS3) encodings set by DECCKM.
func keyCode(e *tcell.EventKey, appCursor bool) string {
	switch {
	case e.Modifiers()&tcell.ModCtrl != 0:
		return ctrlKeyCode(e)
	case e.Modifiers()&tcell.ModAlt != 0:
		return altKeyCode(e)
	}
	if appCursor {
		if code, ok := appCursorKeyMap[e.Key()]; ok {
			return code
		}
	}
	if code, ok := keyMap[e.Key()]; ok {
		return code
	}
	return string(e.Rune())
}

func ctrlKeyCode(e *tcell.EventKey) string {
	if code, ok := ctrlKeyMap[e.Key()]; ok {
		return code
	}
	if code, ok := ctrlRuneMap[e.Rune()]; ok {
		return code
	}
	if e.Key() == tcell.KeyRune {
		r := e.Rune()
		if r >= 'a' && r <= 'z' {
			return string(r - 'a' + 1)
		}
	}
	if code, ok := keyMap[e.Key()]; ok {
		return code
	}
	return string(e.Rune())
}

func altKeyCode(e *tcell.EventKey) string {
	if code, ok := altKeyMap[e.Key()]; ok {
		return code
	}
	if code, ok := keyMap[e.Key()]; ok {
		return "\x1b" + code
	}
	return "\x1b" + string(e.Rune())
}

var (
	keyMap = map[tcell.Key]string{
		tcell.KeyEnter:      "\r",
		tcell.KeyBackspace:  "\x7f",
		tcell.KeyBackspace2: "\x7f",
		tcell.KeyTab:        "\t",
		tcell.KeyBacktab:    "\x1b[Z",
		tcell.KeyEscape:     "\x1b",
		tcell.KeyUp:         "\x1b[A",
		tcell.KeyDown:       "\x1b[B",
		tcell.KeyRight:      "\x1b[C",
		tcell.KeyLeft:       "\x1b[D",
		tcell.KeyHome:       "\x1b[1~",
		tcell.KeyEnd:        "\x1b[4~",
		tcell.KeyPgUp:       "\x1b[5~",
		tcell.KeyPgDn:       "\x1b[6~",
		tcell.KeyDelete:     "\x1b[3~",
		tcell.KeyInsert:     "\x1b[2~",
		tcell.KeyF1:         "\x1bOP",
		tcell.KeyF2:         "\x1bOQ",
		tcell.KeyF3:         "\x1bOR",
		tcell.KeyF4:         "\x1bOS",
		tcell.KeyF5:         "\x1b[15~",
		tcell.KeyF6:         "\x1b[17~",
		tcell.KeyF7:         "\x1b[18~",
		tcell.KeyF8:         "\x1b[19~",
		tcell.KeyF9:         "\x1b[20~",
		tcell.KeyF10:        "\x1b[21~",
		tcell.KeyF11:        "\x1b[23~",
		tcell.KeyF12:        "\x1b[24~",
	}

	appCursorKeyMap = map[tcell.Key]string{
		tcell.KeyUp:    "\x1bOA",
		tcell.KeyDown:  "\x1bOB",
		tcell.KeyRight: "\x1bOC",
		tcell.KeyLeft:  "\x1bOD",
	}

	ctrlKeyMap = map[tcell.Key]string{
		tcell.KeyUp:    "\x1b[1;5A",
		tcell.KeyDown:  "\x1b[1;5B",
		tcell.KeyRight: "\x1b[1;5C",
		tcell.KeyLeft:  "\x1b[1;5D",
	}

	ctrlRuneMap = map[rune]string{
		'@':  "\x00",
		'`':  "\x00",
		'[':  "\x1b",
		'{':  "\x1b",
		'\\': "\x1c",
		'|':  "\x1c",
		']':  "\x1d",
		'}':  "\x1d",
		'^':  "\x1e",
		'~':  "\x1e",
		'_':  "\x1f",
		'?':  "\x7f",
	}

	altKeyMap = map[tcell.Key]string{
		tcell.KeyUp:    "\x1b[1;3A",
		tcell.KeyDown:  "\x1b[1;3B",
		tcell.KeyRight: "\x1b[1;3C",
		tcell.KeyLeft:  "\x1b[1;3D",
	}
)
