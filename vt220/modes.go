package vt220

// modes holds the terminal behavior flags toggled by SM/RM and
// DECSET/DECRST. Each is independent; the alternate screen flag
// additionally selects which grid is active.
type modes struct {
	Insert                bool // IRM - insert instead of replace
	NewLine               bool // LNM - LF implies CR
	OriginMode            bool // DECOM - cursor addressing relative to the margins
	AutoWrap              bool // DECAWM
	CursorVisible         bool // DECTCEM
	ApplicationCursorKeys bool // DECCKM
	AltScreen             bool // xterm 47/1047/1049
	BracketedPaste        bool // xterm 2004
}

func defaultModes() modes {
	return modes{
		AutoWrap:      true,
		CursorVisible: true,
	}
}

// sm handles CSI h, Set Mode (ANSI).
func (t *Terminal) sm(params []int) {
	for _, param := range params {
		switch param {
		case 4:
			t.modes.Insert = true
		case 20:
			t.modes.NewLine = true
		}
	}
}

// rm handles CSI l, Reset Mode (ANSI).
func (t *Terminal) rm(params []int) {
	for _, param := range params {
		switch param {
		case 4:
			t.modes.Insert = false
		case 20:
			t.modes.NewLine = false
		}
	}
}

// decset handles CSI ? h, DEC Private Mode Set.
func (t *Terminal) decset(params []int) {
	for _, param := range params {
		switch param {
		case 1:
			t.modes.ApplicationCursorKeys = true
		case 6:
			t.modes.OriginMode = true
			t.moveTo(0, 0)
		case 7:
			t.modes.AutoWrap = true
		case 25:
			t.modes.CursorVisible = true
			t.active.cur.Visible = true
		case 47, 1047:
			t.enterAltScreen()
		case 1048:
			t.decsc()
		case 1049:
			t.decsc()
			t.enterAltScreen()
		case 2004:
			t.modes.BracketedPaste = true
		default:
			t.logf("unhandled DECSET %d", param)
		}
	}
}

// decrst handles CSI ? l, DEC Private Mode Reset.
func (t *Terminal) decrst(params []int) {
	for _, param := range params {
		switch param {
		case 1:
			t.modes.ApplicationCursorKeys = false
		case 6:
			t.modes.OriginMode = false
			t.moveTo(0, 0)
		case 7:
			t.modes.AutoWrap = false
		case 25:
			t.modes.CursorVisible = false
			t.active.cur.Visible = false
		case 47, 1047:
			t.exitAltScreen()
		case 1048:
			t.decrc()
		case 1049:
			t.exitAltScreen()
			t.decrc()
		case 2004:
			t.modes.BracketedPaste = false
		default:
			t.logf("unhandled DECRST %d", param)
		}
	}
}
