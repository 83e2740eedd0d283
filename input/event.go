// Package input decodes the terminal's input byte stream into events. The
// decoder is a pure state machine fed by the caller: bytes go in through
// Feed, events come out through Next, and the ESC-disambiguation clock is
// driven explicitly so sessions and tests control time the same way.
package input

import "fmt"

// EventType distinguishes event categories.
type EventType uint8

const (
	EventKey EventType = iota
	EventMouse
	EventResize
	EventError
)

// Key identifies a special key. KeyRune means the Rune field carries a
// plain character.
type Key int16

const (
	KeyNone Key = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackTab
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDn
	KeyInsert
	KeyDelete
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

var keyNames = map[Key]string{
	KeyNone:      "None",
	KeyEscape:    "Escape",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackTab:   "BackTab",
	KeyBackspace: "Backspace",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPgUp:      "PgUp",
	KeyPgDn:      "PgDn",
	KeyInsert:    "Insert",
	KeyDelete:    "Delete",
	KeyF1:        "F1",
	KeyF2:        "F2",
	KeyF3:        "F3",
	KeyF4:        "F4",
	KeyF5:        "F5",
	KeyF6:        "F6",
	KeyF7:        "F7",
	KeyF8:        "F8",
	KeyF9:        "F9",
	KeyF10:       "F10",
	KeyF11:       "F11",
	KeyF12:       "F12",
}

// Modifier is a bitset of modifier keys decoded from a sequence.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModAlt
	ModCtrl
)

// MouseButton identifies which button an event refers to.
type MouseButton uint8

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// MouseAction is what the button or pointer did.
type MouseAction uint8

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseDrag
	MouseMotion
)

// Event is one decoded input event.
type Event struct {
	Type EventType
	Key  Key
	Rune rune
	Mod  Modifier

	// Mouse fields, 0-based screen coordinates.
	MouseX, MouseY int
	Button         MouseButton
	Action         MouseAction

	// Resize fields.
	Width, Height int

	Err error
}

// String renders the event for logs and diagnostics.
func (e Event) String() string {
	switch e.Type {
	case EventKey:
		name := keyNames[e.Key]
		if e.Key == KeyRune {
			name = string(e.Rune)
		}
		return e.Mod.prefix() + name
	case EventMouse:
		return fmt.Sprintf("%sMouse(%s %s @%d,%d)",
			e.Mod.prefix(), e.Button, e.Action, e.MouseX, e.MouseY)
	case EventResize:
		return fmt.Sprintf("Resize(%dx%d)", e.Width, e.Height)
	case EventError:
		return fmt.Sprintf("Error(%v)", e.Err)
	}
	return "Unknown"
}

func (m Modifier) prefix() string {
	s := ""
	if m&ModCtrl != 0 {
		s += "Ctrl+"
	}
	if m&ModAlt != 0 {
		s += "Alt+"
	}
	if m&ModShift != 0 {
		s += "Shift+"
	}
	return s
}

func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "left"
	case MouseMiddle:
		return "middle"
	case MouseRight:
		return "right"
	case MouseWheelUp:
		return "wheelup"
	case MouseWheelDown:
		return "wheeldown"
	}
	return "none"
}

func (a MouseAction) String() string {
	switch a {
	case MousePress:
		return "press"
	case MouseRelease:
		return "release"
	case MouseDrag:
		return "drag"
	}
	return "motion"
}
