// Copyright © 2026 scrim contributors
// SPDX-License-Identifier: MIT
//
// File: cmd/scrim-demo/main.go
// Summary: Interactive showcase of windows, colors, line drawing and mouse.

package main

import (
	"flag"
	"log"
	"time"

	"github.com/scrimlib/scrim/cellbuf"
	"github.com/scrimlib/scrim/input"
	"github.com/scrimlib/scrim/session"
)

const (
	pairFrame  = 1
	pairTitle  = 2
	pairStatus = 3
)

func main() {
	mouse := flag.Bool("mouse", true, "enable mouse reporting")
	flag.Parse()

	s, err := session.New()
	if err != nil {
		log.Fatalf("scrim-demo: %v", err)
	}
	defer s.Close()

	s.InitPair(pairFrame, 6, -1)
	s.InitPair(pairTitle, 3, 4)
	s.InitPair(pairStatus, 0, 7)
	if *mouse {
		s.EnableMouse()
	}

	width, height := s.Size()
	box := s.NewWindow(2, 1, 40, 8)
	status := s.NewWindow(0, height-1, width, 1)
	status.SetStyle(0, pairStatus)
	status.SetBlank(cellbuf.Cell{Rune: ' ', Pair: pairStatus})

	drawFrame(box, "scrim demo")
	box.SetCursor(2, 2)
	box.WriteString("arrow keys move the box")
	box.SetCursor(2, 3)
	box.WriteString("r raises it, q quits")

	setStatus(status, "ready")
	s.ShowCursor(false)
	s.Render()

	for {
		ev, ok := s.PollEvent(time.Second)
		if !ok {
			setStatus(status, time.Now().Format("15:04:05"))
			s.Render()
			continue
		}

		switch ev.Type {
		case input.EventKey:
			x, y := box.Origin()
			switch {
			case ev.Rune == 'q':
				return
			case ev.Rune == 'r':
				s.Raise(box)
			case ev.Key == input.KeyUp:
				box.Move(x, y-1)
			case ev.Key == input.KeyDown:
				box.Move(x, y+1)
			case ev.Key == input.KeyLeft:
				box.Move(x-1, y)
			case ev.Key == input.KeyRight:
				box.Move(x+1, y)
			}
			setStatus(status, "key: "+ev.String())
		case input.EventMouse:
			setStatus(status, "mouse: "+ev.String())
		case input.EventResize:
			width, height = ev.Width, ev.Height
			status.Move(0, height-1)
			status.Resize(width, 1)
		case input.EventError:
			return
		}
		s.Render()
	}
}

// drawFrame draws an ACS border with a reverse-video title bar.
func drawFrame(w *cellbuf.Window, title string) {
	wd, ht := w.Size()
	w.SetStyle(cellbuf.AttrAltCharset, pairFrame)
	for x := 1; x < wd-1; x++ {
		w.SetCell(x, 0, cellbuf.Cell{Rune: cellbuf.ACSHLine, Attr: cellbuf.AttrAltCharset, Pair: pairFrame})
		w.SetCell(x, ht-1, cellbuf.Cell{Rune: cellbuf.ACSHLine, Attr: cellbuf.AttrAltCharset, Pair: pairFrame})
	}
	for y := 1; y < ht-1; y++ {
		w.SetCell(0, y, cellbuf.Cell{Rune: cellbuf.ACSVLine, Attr: cellbuf.AttrAltCharset, Pair: pairFrame})
		w.SetCell(wd-1, y, cellbuf.Cell{Rune: cellbuf.ACSVLine, Attr: cellbuf.AttrAltCharset, Pair: pairFrame})
	}
	w.SetCell(0, 0, cellbuf.Cell{Rune: cellbuf.ACSULCorner, Attr: cellbuf.AttrAltCharset, Pair: pairFrame})
	w.SetCell(wd-1, 0, cellbuf.Cell{Rune: cellbuf.ACSURCorner, Attr: cellbuf.AttrAltCharset, Pair: pairFrame})
	w.SetCell(0, ht-1, cellbuf.Cell{Rune: cellbuf.ACSLLCorner, Attr: cellbuf.AttrAltCharset, Pair: pairFrame})
	w.SetCell(wd-1, ht-1, cellbuf.Cell{Rune: cellbuf.ACSLRCorner, Attr: cellbuf.AttrAltCharset, Pair: pairFrame})

	w.SetStyle(cellbuf.AttrBold, pairTitle)
	w.SetCursor(2, 0)
	w.WriteString(" " + title + " ")
	w.SetStyle(0, 0)
}

func setStatus(w *cellbuf.Window, msg string) {
	w.Clear()
	w.SetCursor(1, 0)
	w.WriteString(msg)
}
