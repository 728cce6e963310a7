package jvt220

import (
	"fmt"
	"os"
	"os/exec"
	"sync"
	"syscall"

	"github.com/creack/pty"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/d2k2-git/jVT220/vt220"
)

// Surface is the drawing target of a VT, usually a tcell.Screen or a
// view clipped out of one.
type Surface interface {
	Size() (int, int)
	SetContent(x, y int, r rune, combc []rune, style tcell.Style)
}

// VT hosts a child process on a pty and renders its terminal state onto
// a Surface. The model itself lives in the vt220 package; VT is the
// tcell glue: it pumps pty output into the emulator, keeps the last
// flushed snapshot, and translates tcell input events into pty writes.
type VT struct {
	// TERM is the child's TERM environment variable. Defaults to
	// xterm-256color.
	TERM string

	mu   sync.Mutex
	term *vt220.Terminal

	cells []vt220.Cell
	dirty []bool
	cols  int
	rows  int

	redrawPending bool

	cmd          *exec.Cmd
	pty          *os.File
	surface      Surface
	eventHandler func(tcell.Event)
}

// New creates an unstarted VT.
func New() *VT {
	return &VT{
		TERM:         "xterm-256color",
		eventHandler: func(tcell.Event) {},
	}
}

// SetSurface sets the drawing target. Must be called before Start.
func (vt *VT) SetSurface(srf Surface) {
	vt.mu.Lock()
	defer vt.mu.Unlock()
	vt.surface = srf
}

// Attach registers the handler that receives EventRedraw, EventClosed,
// EventTitle and EventBell. Handlers typically forward to
// tcell.Screen.PostEvent.
func (vt *VT) Attach(fn func(ev tcell.Event)) {
	vt.mu.Lock()
	defer vt.mu.Unlock()
	vt.eventHandler = fn
}

// Detach drops the event handler.
func (vt *VT) Detach() {
	vt.mu.Lock()
	defer vt.mu.Unlock()
	vt.eventHandler = func(tcell.Event) {}
}

// Start launches cmd on a fresh pty sized to the surface and begins
// feeding its output into the emulator. It returns once the command is
// running.
func (vt *VT) Start(cmd *exec.Cmd) error {
	if cmd == nil {
		return fmt.Errorf("no command to run")
	}
	vt.mu.Lock()
	if vt.surface == nil {
		vt.mu.Unlock()
		return fmt.Errorf("no surface set")
	}
	w, h := vt.surface.Size()
	vt.mu.Unlock()

	vt.cmd = cmd
	cmd.Env = append(os.Environ(), "TERM="+vt.TERM)

	winsize := pty.Winsize{
		Cols: uint16(w),
		Rows: uint16(h),
	}
	var err error
	vt.pty, err = pty.StartWithAttrs(
		cmd,
		&winsize,
		&syscall.SysProcAttr{
			Setsid:  true,
			Setctty: true,
			Ctty:    1,
		})
	if err != nil {
		return err
	}

	vt.mu.Lock()
	vt.term = vt220.New(
		vt220.WithSize(w, h),
		vt220.WithFrontend(vt),
		vt220.WithWriter(vt.pty),
		vt220.WithEncoding(vt220.EncodingUTF8),
		vt220.WithLogger(tlog.Printf),
	)
	vt.mu.Unlock()

	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := vt.pty.Read(buf)
			if n > 0 {
				vt.mu.Lock()
				_, _ = vt.term.Write(buf[:n])
				vt.mu.Unlock()
			}
			if err != nil {
				vt.postEvent(&EventClosed{
					EventTerminal: newEventTerminal(vt),
				})
				return
			}
		}
	}()
	return nil
}

// Close terminates the child process and releases the pty.
func (vt *VT) Close() {
	vt.mu.Lock()
	defer vt.mu.Unlock()
	if vt.cmd != nil && vt.cmd.Process != nil {
		_ = vt.cmd.Process.Kill()
		_ = vt.cmd.Wait()
	}
	if vt.pty != nil {
		vt.pty.Close()
	}
}

// OnResize implements vt220.Frontend. It runs under vt.mu because the
// emulator is only driven while the lock is held.
func (vt *VT) OnResize(cols, rows int) {
	vt.cols = cols
	vt.rows = rows
	vt.cells = make([]vt220.Cell, cols*rows)
	vt.dirty = make([]bool, cols*rows)
}

// OnUpdate implements vt220.Frontend. The snapshot replaces the held
// one; dirty cells accumulate until the next Draw.
func (vt *VT) OnUpdate(cells []vt220.Cell, dirty []bool) {
	vt.cells = cells
	for i := range dirty {
		if i < len(vt.dirty) && dirty[i] {
			vt.dirty[i] = true
		}
	}
	if !vt.redrawPending {
		vt.redrawPending = true
		vt.postEvent(&EventRedraw{
			EventTerminal: newEventTerminal(vt),
		})
	}
}

// OnTitle implements vt220.TitleHandler.
func (vt *VT) OnTitle(title string) {
	vt.postEvent(&EventTitle{
		EventTerminal: newEventTerminal(vt),
		title:         title,
	})
}

// OnBell implements vt220.BellHandler.
func (vt *VT) OnBell() {
	vt.postEvent(&EventBell{
		EventTerminal: newEventTerminal(vt),
	})
}

// Draw paints the dirty cells of the held snapshot onto the surface and
// rearms redraw events.
func (vt *VT) Draw() {
	vt.mu.Lock()
	defer vt.mu.Unlock()
	vt.redrawPending = false
	if vt.surface == nil {
		return
	}
	for y := 0; y < vt.rows; y++ {
		for x := 0; x < vt.cols; {
			i := y*vt.cols + x
			c := vt.cells[i]
			if vt.dirty[i] {
				r := c.Content
				if r == 0 {
					r = ' '
				}
				vt.surface.SetContent(x, y, r, nil, toStyle(c))
				vt.dirty[i] = false
			}
			w := runewidth.RuneWidth(c.Content)
			if w < 1 {
				w = 1
			}
			x += w
		}
	}
}

// Cursor returns the cursor position and visibility for the host to
// place the hardware cursor after a Draw.
func (vt *VT) Cursor() (x, y int, visible bool) {
	vt.mu.Lock()
	defer vt.mu.Unlock()
	if vt.term == nil {
		return 0, 0, false
	}
	cur := vt.term.Cursor()
	return cur.X, cur.Y, cur.Visible
}

// Title returns the window title set by the child.
func (vt *VT) Title() string {
	vt.mu.Lock()
	defer vt.mu.Unlock()
	if vt.term == nil {
		return ""
	}
	return vt.term.Title()
}

// Resize adapts the emulator and the pty to the surface's current size.
// Call it on tcell.EventResize.
func (vt *VT) Resize() {
	vt.mu.Lock()
	defer vt.mu.Unlock()
	if vt.term == nil || vt.surface == nil {
		return
	}
	w, h := vt.surface.Size()
	if err := vt.term.Resize(w, h); err != nil {
		tlog.Printf("resize rejected: %v", err)
		return
	}
	_ = pty.Setsize(vt.pty, &pty.Winsize{
		Cols: uint16(w),
		Rows: uint16(h),
	})
}

// HandleEvent translates a tcell input event into pty writes. It reports
// whether the event was consumed.
func (vt *VT) HandleEvent(e tcell.Event) bool {
	vt.mu.Lock()
	defer vt.mu.Unlock()
	if vt.pty == nil {
		return false
	}
	switch e := e.(type) {
	case *tcell.EventKey:
		_, _ = vt.pty.WriteString(keyCode(e, vt.term.CursorKeysApplicationMode()))
		return true
	case *tcell.EventPaste:
		if !vt.term.BracketedPasteEnabled() {
			return false
		}
		if e.Start() {
			_, _ = vt.pty.WriteString("\x1b[200~")
		} else {
			_, _ = vt.pty.WriteString("\x1b[201~")
		}
		return true
	}
	return false
}

func (vt *VT) postEvent(ev tcell.Event) {
	vt.eventHandler(ev)
}
