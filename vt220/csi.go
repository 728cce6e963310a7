package vt220

import "fmt"

// ps returns the i-th parameter of a sequence, or def when it is absent
// or zero. Most CSI parameters treat 0 as "default".
func ps(params []int, i, def int) int {
	if i >= len(params) || params[i] == 0 {
		return def
	}
	return params[i]
}

// csi applies a completed control sequence. Unrecognized sequences are
// logged and dropped without disturbing terminal state.
func (t *Terminal) csi(seq CSI) {
	if len(seq.Intermediate) > 0 {
		switch {
		case seq.Private == 0 && string(seq.Intermediate) == "!" && seq.Final == 'p':
			t.softReset()
			return
		case seq.Private == 0 && string(seq.Intermediate) == " " && seq.Final == 'q':
			// DECSCUSR cursor styles are a rendering concern
			return
		}
		t.logf("unhandled sequence: %s", seq)
		return
	}

	switch seq.Private {
	case '?':
		switch seq.Final {
		case 'h':
			t.decset(seq.Parameters)
		case 'l':
			t.decrst(seq.Parameters)
		default:
			t.logf("unhandled sequence: %s", seq)
		}
		return
	case '>':
		if seq.Final == 'c' {
			t.reply("\x1b[>1;10;0c")
			return
		}
		t.logf("unhandled sequence: %s", seq)
		return
	case 0:
	default:
		t.logf("unhandled sequence: %s", seq)
		return
	}

	switch seq.Final {
	case 'A': // CUU
		t.moveRel(0, -ps(seq.Parameters, 0, 1))
	case 'B': // CUD
		t.moveRel(0, ps(seq.Parameters, 0, 1))
	case 'C': // CUF
		t.moveRel(ps(seq.Parameters, 0, 1), 0)
	case 'D': // CUB
		t.moveRel(-ps(seq.Parameters, 0, 1), 0)
	case 'E': // CNL
		t.moveRel(0, ps(seq.Parameters, 0, 1))
		t.active.cur.X = 0
	case 'F': // CPL
		t.moveRel(0, -ps(seq.Parameters, 0, 1))
		t.active.cur.X = 0
	case 'G', '`': // CHA, HPA
		t.active.cur.X = clamp(ps(seq.Parameters, 0, 1)-1, 0, t.cols-1)
	case 'H', 'f': // CUP, HVP
		t.moveTo(ps(seq.Parameters, 1, 1)-1, ps(seq.Parameters, 0, 1)-1)
	case 'I': // CHT
		for i := 0; i < ps(seq.Parameters, 0, 1); i++ {
			t.horizontalTab()
		}
	case 'J': // ED
		t.eraseDisplay(psRaw(seq.Parameters, 0))
	case 'K': // EL
		t.eraseLine(psRaw(seq.Parameters, 0))
	case 'L': // IL
		t.insertLines(ps(seq.Parameters, 0, 1))
	case 'M': // DL
		t.deleteLines(ps(seq.Parameters, 0, 1))
	case 'P': // DCH
		t.deleteChars(ps(seq.Parameters, 0, 1))
	case 'S': // SU
		t.scrollUp(ps(seq.Parameters, 0, 1))
	case 'T': // SD
		t.scrollDown(ps(seq.Parameters, 0, 1))
	case 'X': // ECH
		t.eraseChars(ps(seq.Parameters, 0, 1))
	case 'Z': // CBT
		for i := 0; i < ps(seq.Parameters, 0, 1); i++ {
			t.backwardTab()
		}
	case '@': // ICH
		t.insertChars(ps(seq.Parameters, 0, 1))
	case 'c': // DA1
		t.reply("\x1b[?62;1;2;6;8;9c")
	case 'd': // VPA
		t.moveTo(t.active.cur.X, ps(seq.Parameters, 0, 1)-1)
	case 'g': // TBC
		t.tabClear(psRaw(seq.Parameters, 0))
	case 'h':
		t.sm(seq.Parameters)
	case 'l':
		t.rm(seq.Parameters)
	case 'm':
		t.sgr(seq.Parameters)
	case 'n':
		t.dsr(psRaw(seq.Parameters, 0))
	case 'r': // DECSTBM
		top := ps(seq.Parameters, 0, 1) - 1
		bottom := ps(seq.Parameters, 1, t.rows) - 1
		t.setScrollRegion(top, bottom)
	case 's': // SCOSC
		t.decsc()
	case 'u': // SCORC
		t.decrc()
	default:
		t.logf("unhandled sequence: %s", seq)
	}
}

// psRaw returns the i-th parameter without default substitution, for
// selectors where 0 is meaningful (ED, EL, TBC, DSR).
func psRaw(params []int, i int) int {
	if i >= len(params) {
		return 0
	}
	return params[i]
}

// dsr answers Device Status Report queries. 5 asks for operating status,
// 6 for the cursor position, reported relative to the top margin when
// origin mode is set.
func (t *Terminal) dsr(selector int) {
	switch selector {
	case 5:
		t.reply("\x1b[0n")
	case 6:
		row := t.active.cur.Y + 1
		if t.modes.OriginMode {
			row = t.active.cur.Y - t.top + 1
		}
		t.reply(fmt.Sprintf("\x1b[%d;%dR", row, t.active.cur.X+1))
	default:
		t.logf("unhandled DSR %d", selector)
	}
}
