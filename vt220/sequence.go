package vt220

import "fmt"

// Sequence is one parsed unit of terminal input. The parser emits
// Sequences; the terminal dispatches on the concrete type. Keeping the
// two steps separate is what makes both independently testable.
type Sequence interface{}

// Print is a printable character destined for the grid.
type Print rune

// Execute is a C0 control character, applied immediately even when a
// longer sequence is being collected.
type Execute rune

// ESC is a completed escape sequence without a CSI/OSC/DCS introducer.
type ESC struct {
	Intermediate []rune
	Final        rune
}

// CSI is a completed control sequence. Private holds the marker byte
// ('?', '>', '<' or '=') when present.
type CSI struct {
	Private      rune
	Intermediate []rune
	Final        rune
	Parameters   []int
}

// OSC is a completed operating system command string, terminator stripped.
type OSC struct {
	Payload []rune
}

// DCS announces a device control string; the data follows as DCSData
// sequences and ends with DCSEndOfData.
type DCS struct {
	Private      rune
	Intermediate []rune
	Final        rune
	Parameters   []int
}

// DCSData is one rune of DCS passthrough data.
type DCSData rune

// DCSEndOfData marks the string terminator of a DCS.
type DCSEndOfData struct{}

func (s ESC) String() string {
	return fmt.Sprintf("ESC %s%c", string(s.Intermediate), s.Final)
}

func (s CSI) String() string {
	private := ""
	if s.Private != 0 {
		private = string(s.Private)
	}
	return fmt.Sprintf("CSI %s%v%s%c", private, s.Parameters, string(s.Intermediate), s.Final)
}

func (s OSC) String() string {
	return fmt.Sprintf("OSC %s", string(s.Payload))
}
