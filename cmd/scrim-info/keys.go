package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/scrimlib/scrim/input"
	"github.com/scrimlib/scrim/session"
)

var keysMouse bool

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Echo decoded input events until q is pressed",
	Long: `Take over the terminal and print every decoded input event as it
arrives. Useful for checking what a terminal actually sends for a
key chord. Press q to quit.`,
	Args: cobra.NoArgs,
	Run:  runKeys,
}

func init() {
	keysCmd.Flags().BoolVarP(&keysMouse, "mouse", "m", false, "also report mouse events")
}

func runKeys(cmd *cobra.Command, args []string) {
	s, err := session.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	if keysMouse {
		s.EnableMouse()
		defer s.DisableMouse()
	}

	width, height := s.Size()
	w := s.NewWindow(0, 0, width, height)
	w.SetWrap(false)

	lines := []string{"press keys; q quits"}
	redraw := func() {
		w.Clear()
		top := 0
		if len(lines) > height {
			top = len(lines) - height
		}
		for i, line := range lines[top:] {
			w.SetCursor(0, i)
			w.WriteString(line)
		}
	}
	redraw()
	s.Render()

	for {
		ev, ok := s.PollEvent(-1)
		if !ok {
			return
		}
		if ev.Type == input.EventError {
			return
		}
		if ev.Type == input.EventKey && ev.Rune == 'q' && ev.Mod == 0 {
			return
		}
		lines = append(lines, fmt.Sprintf("%s  %s", time.Now().Format("15:04:05.000"), ev.String()))
		if ev.Type == input.EventResize {
			width, height = ev.Width, ev.Height
			w.Resize(width, height)
		}
		redraw()
		s.Render()
	}
}
