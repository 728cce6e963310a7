package vt220

import "fmt"

// defaultBlinkRate is the cursor blink interval in milliseconds.
const defaultBlinkRate = 500

// Cursor is the cursor state of one screen. X and Y are zero based and
// kept within grid bounds by the terminal, not by the cursor itself.
type Cursor struct {
	X         int
	Y         int
	Visible   bool
	BlinkRate int
}

func newCursor() Cursor {
	return Cursor{
		Visible:   true,
		BlinkRate: defaultBlinkRate,
	}
}

// Snapshot returns an independent copy. Mutating the live cursor never
// affects a previously taken snapshot, and vice versa.
func (c Cursor) Snapshot() Cursor {
	return c
}

// SetBlinkRate sets the blink interval in milliseconds. Negative rates
// are rejected; zero disables blinking.
func (c *Cursor) SetBlinkRate(rate int) error {
	if rate < 0 {
		return fmt.Errorf("invalid blink rate %d", rate)
	}
	c.BlinkRate = rate
	return nil
}
