package jvt220

import "time"

// EventTerminal is the base of all events posted by a VT. It satisfies
// tcell.Event so terminal events travel through the same queue as input.
type EventTerminal struct {
	when time.Time
	vt   *VT
}

func newEventTerminal(vt *VT) *EventTerminal {
	return &EventTerminal{
		when: time.Now(),
		vt:   vt,
	}
}

func (ev *EventTerminal) When() time.Time {
	return ev.when
}

// VT returns the terminal that posted the event.
func (ev *EventTerminal) VT() *VT {
	return ev.vt
}

// EventRedraw is posted when the screen content changed and a Draw is
// needed. At most one is outstanding; Draw rearms it.
type EventRedraw struct {
	*EventTerminal
}

// EventClosed is posted when the child process exits and the pty drains.
type EventClosed struct {
	*EventTerminal
}

// EventTitle is posted when the terminal's title changes.
type EventTitle struct {
	*EventTerminal
	title string
}

func (ev *EventTitle) Title() string {
	return ev.title
}

// EventBell is posted when the application rings the bell.
type EventBell struct {
	*EventTerminal
}
