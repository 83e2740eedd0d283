// Copyright © 2026 scrim contributors
// SPDX-License-Identifier: MIT
//
// File: session/tty_unix.go
// Summary: Terminal mode switching, size queries and resize signals.

package session

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

type termState = term.State

func isTerminal(fd int) bool { return term.IsTerminal(fd) }

func makeRaw(fd int) (*termState, error) { return term.MakeRaw(fd) }

func restoreTerm(fd int, st *termState) error { return term.Restore(fd, st) }

// windowSize queries the kernel's idea of the terminal dimensions.
func windowSize(fd int) (int, int, error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}

// watchResize forwards SIGWINCH into resize handling for TTY sessions.
func (s *Session) watchResize() {
	if !s.isTTY {
		return
	}
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, unix.SIGWINCH)
	s.winchCh = ch
	go func() {
		for {
			select {
			case <-s.stopCh:
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				s.handleResize()
			}
		}
	}()
}

func stopResizeWatch(ch chan os.Signal) {
	signal.Stop(ch)
}
