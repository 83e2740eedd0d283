package session

import (
	"io"
	"time"

	"github.com/scrimlib/scrim/cellbuf"
)

// Option configures a Session at construction time.
type Option func(*config)

type config struct {
	in        io.Reader
	inFD      int
	out       io.Writer
	outFD     int
	termName  string
	escDelay  time.Duration
	clip      cellbuf.ClipMode
	altScreen bool
	width     int
	height    int
}

// WithInput sets the input stream and its file descriptor. A negative fd
// means the input is not a terminal.
func WithInput(r io.Reader, fd int) Option {
	return func(c *config) {
		c.in = r
		c.inFD = fd
	}
}

// WithOutput sets the output stream and its file descriptor. A negative fd
// means the output is not a terminal.
func WithOutput(w io.Writer, fd int) Option {
	return func(c *config) {
		c.out = w
		c.outFD = fd
	}
}

// WithTerm overrides $TERM for capability lookup.
func WithTerm(name string) Option {
	return func(c *config) { c.termName = name }
}

// WithEscapeDelay overrides the ESC disambiguation window, normally taken
// from $ESCDELAY.
func WithEscapeDelay(d time.Duration) Option {
	return func(c *config) { c.escDelay = d }
}

// WithClipMode sets the default strictness for windows the session creates.
func WithClipMode(m cellbuf.ClipMode) Option {
	return func(c *config) { c.clip = m }
}

// WithoutAltScreen keeps the session on the primary screen instead of
// entering the alternate one.
func WithoutAltScreen() Option {
	return func(c *config) { c.altScreen = false }
}

// WithSize fixes the screen size instead of querying the terminal. Mainly
// for non-TTY output.
func WithSize(width, height int) Option {
	return func(c *config) {
		c.width = width
		c.height = height
	}
}
