package vt220

import "strings"

// osc applies an operating system command. Only the window title
// commands (0 and 2) carry model state; everything else is logged.
func (t *Terminal) osc(seq OSC) {
	payload := string(seq.Payload)
	selector, val, found := strings.Cut(payload, ";")
	if !found {
		t.logf("unhandled OSC: %s", payload)
		return
	}
	switch selector {
	case "0", "2":
		t.title = val
		if th, ok := t.frontend.(TitleHandler); ok {
			th.OnTitle(val)
		}
	default:
		t.logf("unhandled OSC: %s", payload)
	}
}
