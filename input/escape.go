// Copyright © 2026 scrim contributors
// SPDX-License-Identifier: MIT
//
// File: input/escape.go
// Summary: Escape, CSI, SS3 and SGR mouse sequence parsing.

package input

import "errors"

// ErrMalformedMouse is carried by an error event when an SGR mouse report
// has invalid syntax. Decoding resumes at the next byte after the report.
var ErrMalformedMouse = errors.New("input: malformed mouse report")

const maxSeqScan = 32

// parseEscape decodes one sequence starting at an ESC byte. It emits any
// resulting events itself and reports how many bytes it consumed; done is
// false when the sequence is incomplete and more bytes are needed.
func (d *Decoder) parseEscape(data []byte) (int, bool) {
	// Terminal-specific sequences first, longest match wins.
	limit := len(data)
	if limit > maxSeqScan {
		limit = maxSeqScan
	}
	for l := limit; l >= 2; l-- {
		if key, ok := d.seqs[string(data[:l])]; ok {
			d.emit(Event{Type: EventKey, Key: key})
			return l, true
		}
	}
	if d.prefixes[string(data)] {
		return 0, false
	}

	if len(data) < 2 {
		return 0, false
	}

	switch {
	case data[1] == 0x1b:
		d.emit(Event{Type: EventKey, Key: KeyEscape, Mod: ModAlt})
		return 2, true
	case data[1] == '[':
		return d.parseCSI(data)
	case data[1] == 'O':
		return d.parseSS3(data)
	case data[1] < 0x20 || data[1] == 0x7f:
		ev := controlEvent(data[1])
		ev.Mod |= ModAlt
		d.emit(ev)
		return 2, true
	case data[1] < 0x7f:
		d.emit(Event{Type: EventKey, Key: KeyRune, Rune: rune(data[1]), Mod: ModAlt})
		return 2, true
	}
	// ESC before a multibyte rune: deliver the escape, reprocess the rest.
	d.emit(Event{Type: EventKey, Key: KeyEscape})
	return 1, true
}

var csiFinalKeys = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
	'Z': KeyBackTab,
}

var csiTildeKeys = map[int]Key{
	1:  KeyHome,
	2:  KeyInsert,
	3:  KeyDelete,
	4:  KeyEnd,
	5:  KeyPgUp,
	6:  KeyPgDn,
	7:  KeyHome,
	8:  KeyEnd,
	11: KeyF1,
	12: KeyF2,
	13: KeyF3,
	14: KeyF4,
	15: KeyF5,
	17: KeyF6,
	18: KeyF7,
	19: KeyF8,
	20: KeyF9,
	21: KeyF10,
	23: KeyF11,
	24: KeyF12,
}

// parseCSI decodes ESC [ sequences: cursor keys, the tilde key block with
// xterm modifier parameters, and SGR mouse reports.
func (d *Decoder) parseCSI(data []byte) (int, bool) {
	if len(data) < 3 {
		return 0, false
	}
	if data[2] == '<' {
		return d.parseSGRMouse(data)
	}

	end := 2
	for end < len(data) && end < maxSeqScan {
		b := data[end]
		if b >= 0x40 && b <= 0x7e {
			end++
			break
		}
		if (b < '0' || b > '9') && b != ';' {
			// Not a sequence this decoder knows; flush it visibly.
			d.flushUnknown(data[:end+1])
			return end + 1, true
		}
		end++
	}
	final := data[end-1]
	if final < 0x40 || final > 0x7e {
		if end >= maxSeqScan {
			d.flushUnknown(data[:end])
			return end, true
		}
		return 0, false
	}

	params := parseParams(data[2 : end-1])
	mod := Modifier(0)

	switch final {
	case 'A', 'B', 'C', 'D', 'H', 'F', 'Z':
		if len(params) >= 2 {
			mod = modifierParam(params[1])
		}
		key := csiFinalKeys[final]
		if final == 'Z' {
			mod |= ModShift
		}
		d.emit(Event{Type: EventKey, Key: key, Mod: mod})
		return end, true
	case '~':
		if len(params) >= 1 {
			if key, ok := csiTildeKeys[params[0]]; ok {
				if len(params) >= 2 {
					mod = modifierParam(params[1])
				}
				d.emit(Event{Type: EventKey, Key: key, Mod: mod})
				return end, true
			}
		}
	}

	d.flushUnknown(data[:end])
	return end, true
}

var ss3Keys = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
	'P': KeyF1,
	'Q': KeyF2,
	'R': KeyF3,
	'S': KeyF4,
}

func (d *Decoder) parseSS3(data []byte) (int, bool) {
	if len(data) < 3 {
		return 0, false
	}
	if key, ok := ss3Keys[data[2]]; ok {
		d.emit(Event{Type: EventKey, Key: key})
		return 3, true
	}
	d.flushUnknown(data[:3])
	return 3, true
}

// parseSGRMouse decodes ESC [ < btn ; x ; y M|m. Coordinates arrive
// 1-based and are delivered 0-based.
func (d *Decoder) parseSGRMouse(data []byte) (int, bool) {
	end := 3
	for end < len(data) && end < maxSeqScan {
		b := data[end]
		if b == 'M' || b == 'm' {
			break
		}
		if (b < '0' || b > '9') && b != ';' {
			d.emit(Event{Type: EventError, Err: ErrMalformedMouse})
			return end + 1, true
		}
		end++
	}
	if end >= len(data) {
		return 0, false
	}
	if end >= maxSeqScan {
		d.emit(Event{Type: EventError, Err: ErrMalformedMouse})
		return end, true
	}

	params := parseParams(data[3:end])
	if len(params) != 3 || params[1] < 1 || params[2] < 1 {
		d.emit(Event{Type: EventError, Err: ErrMalformedMouse})
		return end + 1, true
	}
	btn, x, y := params[0], params[1], params[2]
	release := data[end] == 'm'

	ev := Event{Type: EventMouse, MouseX: x - 1, MouseY: y - 1}
	if btn&4 != 0 {
		ev.Mod |= ModShift
	}
	if btn&8 != 0 {
		ev.Mod |= ModAlt
	}
	if btn&16 != 0 {
		ev.Mod |= ModCtrl
	}

	motion := btn&32 != 0
	switch {
	case btn&64 != 0:
		if btn&3 == 0 {
			ev.Button = MouseWheelUp
		} else {
			ev.Button = MouseWheelDown
		}
		ev.Action = MousePress
	default:
		switch btn & 3 {
		case 0:
			ev.Button = MouseLeft
		case 1:
			ev.Button = MouseMiddle
		case 2:
			ev.Button = MouseRight
		case 3:
			ev.Button = MouseNone
		}
		switch {
		case release:
			ev.Action = MouseRelease
		case motion && ev.Button != MouseNone:
			ev.Action = MouseDrag
		case motion:
			ev.Action = MouseMotion
		default:
			ev.Action = MousePress
		}
	}
	d.emit(ev)
	return end + 1, true
}

// flushUnknown turns an unrecognized sequence into literal events: the
// escape key followed by the remaining bytes as runes.
func (d *Decoder) flushUnknown(seq []byte) {
	d.emit(Event{Type: EventKey, Key: KeyEscape})
	for _, b := range seq[1:] {
		if b >= 0x20 && b < 0x7f {
			d.emit(Event{Type: EventKey, Key: KeyRune, Rune: rune(b)})
		}
	}
}

func parseParams(data []byte) []int {
	if len(data) == 0 {
		return nil
	}
	params := make([]int, 0, 3)
	val, have := 0, false
	for _, b := range data {
		if b == ';' {
			params = append(params, val)
			val, have = 0, false
			continue
		}
		val = val*10 + int(b-'0')
		have = true
	}
	if have || len(params) > 0 {
		params = append(params, val)
	}
	return params
}

// modifierParam decodes the xterm modifier parameter: value-1 is a bitset
// of shift(1), alt(2), ctrl(4).
func modifierParam(p int) Modifier {
	if p < 2 {
		return 0
	}
	bits := p - 1
	var m Modifier
	if bits&1 != 0 {
		m |= ModShift
	}
	if bits&2 != 0 {
		m |= ModAlt
	}
	if bits&4 != 0 {
		m |= ModCtrl
	}
	return m
}
