package vt220

// esc applies a completed non-CSI escape sequence.
func (t *Terminal) esc(seq ESC) {
	if len(seq.Intermediate) > 0 {
		switch seq.Intermediate[0] {
		case '(': // designate G0
			t.designateCharset(0, seq.Final)
		case ')': // designate G1
			t.designateCharset(1, seq.Final)
		case '#':
			if seq.Final == '8' {
				t.alignmentTest()
				return
			}
			t.logf("unhandled sequence: %s", seq)
		default:
			t.logf("unhandled sequence: %s", seq)
		}
		return
	}

	switch seq.Final {
	case '7': // DECSC
		t.decsc()
	case '8': // DECRC
		t.decrc()
	case 'D': // IND
		t.index()
	case 'E': // NEL
		t.nextLine()
	case 'H': // HTS
		t.tabSet()
	case 'M': // RI
		t.reverseIndex()
	case 'Z': // DECID, answered like DA1
		t.reply("\x1b[?62;1;2;6;8;9c")
	case 'c': // RIS
		t.hardReset()
	case '=', '>': // DECKPAM / DECKPNM, keypad modes are a frontend concern
	case '\\': // stray ST
	default:
		t.logf("unhandled sequence: %s", seq)
	}
}

func (t *Terminal) designateCharset(slot int, final rune) {
	switch final {
	case '0':
		t.charsets[slot] = decSpecialAndLineDrawing
	case 'B':
		t.charsets[slot] = ascii
	default:
		// other national sets fall back to ASCII
		t.charsets[slot] = ascii
	}
}
