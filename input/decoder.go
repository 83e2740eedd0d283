// Copyright © 2026 scrim contributors
// SPDX-License-Identifier: MIT
//
// File: input/decoder.go
// Summary: Streaming decoder state machine with ESC timeout handling.

package input

import (
	"sync"
	"time"
	"unicode/utf8"

	"github.com/scrimlib/scrim/terminfo"
)

// DefaultEscapeTimeout is how long a lone ESC may sit in the buffer before
// it is delivered as the escape key rather than the start of a sequence.
const DefaultEscapeTimeout = 50 * time.Millisecond

// Decoder assembles raw terminal bytes into events. Feed appends bytes and
// decodes as far as possible; an incomplete sequence stays buffered until
// more bytes arrive or ExpireTimeout flushes it. Safe for one feeder and
// one drainer concurrently.
type Decoder struct {
	mu sync.Mutex

	seqs     map[string]Key // terminal-specific sequences from terminfo
	prefixes map[string]bool

	buf      []byte
	queue    []Event
	pushback []Event

	timeout   time.Duration
	waiting   bool
	waitSince time.Time

	// flush makes incomplete sequences decode literally instead of
	// waiting. Set only for the duration of a timeout expiry.
	flush bool
}

// capKeys maps terminfo key capability names to logical keys.
var capKeys = map[string]Key{
	"kbs":   KeyBackspace,
	"kdch1": KeyDelete,
	"kich1": KeyInsert,
	"kcuu1": KeyUp,
	"kcud1": KeyDown,
	"kcub1": KeyLeft,
	"kcuf1": KeyRight,
	"khome": KeyHome,
	"kend":  KeyEnd,
	"kpp":   KeyPgUp,
	"knp":   KeyPgDn,
	"kf1":   KeyF1,
	"kf2":   KeyF2,
	"kf3":   KeyF3,
	"kf4":   KeyF4,
	"kf5":   KeyF5,
	"kf6":   KeyF6,
	"kf7":   KeyF7,
	"kf8":   KeyF8,
	"kf9":   KeyF9,
	"kf10":  KeyF10,
	"kf11":  KeyF11,
	"kf12":  KeyF12,
}

// NewDecoder builds a decoder seeded with the terminal's key sequences.
// A nil capability set still decodes the standard CSI/SS3 repertoire.
func NewDecoder(caps *terminfo.CapabilitySet) *Decoder {
	d := &Decoder{
		seqs:     map[string]Key{},
		prefixes: map[string]bool{},
		timeout:  DefaultEscapeTimeout,
		buf:      make([]byte, 0, 256),
	}
	if caps != nil {
		for name, seq := range caps.KeySequences() {
			key, ok := capKeys[name]
			if !ok || len(seq) < 2 || seq[0] != 0x1b {
				// Single-byte entries (a kbs of ^H) and the mouse
				// introducer go through the byte and CSI paths instead.
				continue
			}
			d.seqs[seq] = key
		}
	}
	for seq := range d.seqs {
		for i := 1; i < len(seq); i++ {
			d.prefixes[seq[:i]] = true
		}
	}
	return d
}

// SetEscapeTimeout overrides the ESC disambiguation window. Zero resolves
// a pending ESC on the next ExpireTimeout call.
func (d *Decoder) SetEscapeTimeout(t time.Duration) {
	d.mu.Lock()
	d.timeout = t
	d.mu.Unlock()
}

// Feed appends bytes from the terminal and decodes them.
func (d *Decoder) Feed(p []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.buf = append(d.buf, p...)
	d.decode()
	if d.waiting {
		d.waitSince = time.Now()
	}
}

// Next pops the oldest decoded event. ok is false when none is ready.
func (d *Decoder) Next() (Event, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if n := len(d.pushback); n > 0 {
		ev := d.pushback[n-1]
		d.pushback = d.pushback[:n-1]
		return ev, true
	}
	if len(d.queue) == 0 {
		return Event{}, false
	}
	ev := d.queue[0]
	d.queue = d.queue[1:]
	return ev, true
}

// Collecting reports whether bytes of an unfinished sequence are buffered,
// meaning the caller should arm the escape timer.
func (d *Decoder) Collecting() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.waiting
}

// ExpireTimeout resolves a pending ambiguous sequence if its wait window
// has passed at time now: the buffered bytes are decoded literally, ESC
// first, and decoding returns to idle.
func (d *Decoder) ExpireTimeout(now time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.waiting || now.Sub(d.waitSince) < d.timeout {
		return
	}
	d.flush = true
	d.decode()
	d.flush = false
	d.waiting = false
}

// Inject appends an out-of-band event, leaving any sequence collection in
// progress untouched. Used for resize notifications.
func (d *Decoder) Inject(ev Event) {
	d.mu.Lock()
	d.queue = append(d.queue, ev)
	d.mu.Unlock()
}

// Unget pushes an event back so the next Next returns it first.
func (d *Decoder) Unget(ev Event) {
	d.mu.Lock()
	d.pushback = append(d.pushback, ev)
	d.mu.Unlock()
}

// decode consumes as much of the buffer as possible. Called with the lock
// held.
func (d *Decoder) decode() {
	consumed := d.parse(d.buf)
	if consumed > 0 {
		d.buf = d.buf[:copy(d.buf, d.buf[consumed:])]
	}
	d.waiting = len(d.buf) > 0
}

// parse walks data emitting events, returning the number of bytes
// consumed. It stops early at an incomplete sequence unless flushing.
func (d *Decoder) parse(data []byte) int {
	i := 0
	n := len(data)
	for i < n {
		b := data[i]

		// Printable ASCII.
		if b >= 0x20 && b < 0x7f {
			d.emit(Event{Type: EventKey, Key: KeyRune, Rune: rune(b)})
			i++
			continue
		}

		if b == 0x1b {
			adv, done := d.parseEscape(data[i:])
			if !done {
				if !d.flush {
					return i
				}
				// Timeout flush: the ESC is a real escape key, the rest
				// reprocesses from idle.
				d.emit(Event{Type: EventKey, Key: KeyEscape})
				i++
				continue
			}
			i += adv
			continue
		}

		if b < 0x20 || b == 0x7f {
			d.emit(controlEvent(b))
			i++
			continue
		}

		// UTF-8 multibyte.
		if !utf8.FullRune(data[i:]) && utf8.RuneStart(b) {
			if !d.flush {
				return i
			}
			// A flushed partial rune is garbage; drop it.
			return n
		}
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			i++
			continue
		}
		d.emit(Event{Type: EventKey, Key: KeyRune, Rune: r})
		i += size
	}
	return i
}

func (d *Decoder) emit(ev Event) {
	d.queue = append(d.queue, ev)
}

// controlEvent maps a C0 byte or DEL to its key event.
func controlEvent(b byte) Event {
	switch b {
	case 0x08, 0x7f:
		return Event{Type: EventKey, Key: KeyBackspace}
	case 0x09:
		return Event{Type: EventKey, Key: KeyTab}
	case 0x0a, 0x0d:
		return Event{Type: EventKey, Key: KeyEnter}
	case 0x00:
		return Event{Type: EventKey, Key: KeyRune, Rune: ' ', Mod: ModCtrl}
	case 0x1c:
		return Event{Type: EventKey, Key: KeyRune, Rune: '\\', Mod: ModCtrl}
	case 0x1d:
		return Event{Type: EventKey, Key: KeyRune, Rune: ']', Mod: ModCtrl}
	case 0x1e:
		return Event{Type: EventKey, Key: KeyRune, Rune: '^', Mod: ModCtrl}
	case 0x1f:
		return Event{Type: EventKey, Key: KeyRune, Rune: '_', Mod: ModCtrl}
	}
	// Ctrl+letter.
	return Event{Type: EventKey, Key: KeyRune, Rune: rune('a' + b - 1), Mod: ModCtrl}
}
