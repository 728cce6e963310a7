package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	jvt220 "github.com/d2k2-git/jVT220"
)

func main() {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "stdin is not a terminal")
		os.Exit(1)
	}

	f, err := os.Create("jvt220.log")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	log.SetOutput(f)
	jvt220.SetLogger(log.Printf)

	s, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if err = s.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	s.EnablePaste()
	s.Clear()

	vt := jvt220.New()
	vt.SetSurface(s)
	vt.Attach(func(ev tcell.Event) {
		_ = s.PostEvent(ev)
	})

	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	if err := vt.Start(exec.Command(shell)); err != nil {
		s.Fini()
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	for {
		ev := s.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyF10 {
				vt.Close()
				s.Fini()
				return
			}
			vt.HandleEvent(ev)
		case *tcell.EventPaste:
			vt.HandleEvent(ev)
		case *tcell.EventResize:
			vt.Resize()
			s.Sync()
		case *jvt220.EventRedraw:
			vt.Draw()
			x, y, visible := vt.Cursor()
			if visible {
				s.ShowCursor(x, y)
			} else {
				s.HideCursor()
			}
			s.Show()
		case *jvt220.EventTitle:
			log.Printf("title: %s", ev.Title())
		case *jvt220.EventBell:
			s.Beep()
		case *jvt220.EventClosed:
			s.Fini()
			return
		}
	}
}
