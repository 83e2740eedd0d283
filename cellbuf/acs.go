package cellbuf

// Line-drawing and symbol glyphs, named after the historical alternate
// character set. Cells holding one of these with AttrAltCharset set are
// translated to the terminal's acsc encoding at render time; terminals
// without an alternate charset print the Unicode glyph directly.
const (
	ACSULCorner = '┌'
	ACSURCorner = '┐'
	ACSLLCorner = '└'
	ACSLRCorner = '┘'
	ACSLTee     = '├'
	ACSRTee     = '┤'
	ACSTTee     = '┬'
	ACSBTee     = '┴'
	ACSHLine    = '─'
	ACSVLine    = '│'
	ACSPlus     = '┼'

	ACSDiamond  = '◆'
	ACSCkBoard  = '▒'
	ACSBoard    = '░'
	ACSBlock    = '█'
	ACSDegree   = '°'
	ACSPlMinus  = '±'
	ACSBullet   = '·'
	ACSLArrow   = '←'
	ACSRArrow   = '→'
	ACSUArrow   = '↑'
	ACSDArrow   = '↓'
	ACSS1       = '⎺'
	ACSS3       = '⎻'
	ACSS7       = '⎼'
	ACSS9       = '⎽'
	ACSLEqual   = '≤'
	ACSGEqual   = '≥'
	ACSPi       = 'π'
	ACSNEqual   = '≠'
	ACSSterling = '£'
)

// acsCodes maps each glyph to its VT100 alternate charset letter, the key
// used in the acsc capability string.
var acsCodes = map[rune]byte{
	ACSULCorner: 'l',
	ACSURCorner: 'k',
	ACSLLCorner: 'm',
	ACSLRCorner: 'j',
	ACSLTee:     't',
	ACSRTee:     'u',
	ACSTTee:     'w',
	ACSBTee:     'v',
	ACSHLine:    'q',
	ACSVLine:    'x',
	ACSPlus:     'n',
	ACSDiamond:  '`',
	ACSCkBoard:  'a',
	ACSBoard:    'h',
	ACSBlock:    '0',
	ACSDegree:   'f',
	ACSPlMinus:  'g',
	ACSBullet:   '~',
	ACSLArrow:   ',',
	ACSRArrow:   '+',
	ACSUArrow:   '-',
	ACSDArrow:   '.',
	ACSS1:       'o',
	ACSS3:       'p',
	ACSS7:       'r',
	ACSS9:       's',
	ACSLEqual:   'y',
	ACSGEqual:   'z',
	ACSPi:       '{',
	ACSNEqual:   '|',
	ACSSterling: '}',
}

// ACSCode returns the VT100 charset letter for a line-drawing glyph, and
// whether the glyph is part of the alternate character set at all.
func ACSCode(r rune) (byte, bool) {
	b, ok := acsCodes[r]
	return b, ok
}

// ACSFallback returns a plain-ASCII stand-in for a line-drawing glyph, for
// terminals that have neither an alternate charset nor Unicode output.
func ACSFallback(r rune) rune {
	switch r {
	case ACSULCorner, ACSURCorner, ACSLLCorner, ACSLRCorner, ACSPlus,
		ACSLTee, ACSRTee, ACSTTee, ACSBTee:
		return '+'
	case ACSHLine, ACSS1, ACSS3, ACSS7, ACSS9:
		return '-'
	case ACSVLine:
		return '|'
	case ACSDiamond, ACSBullet:
		return '*'
	case ACSCkBoard, ACSBoard, ACSBlock:
		return '#'
	case ACSDegree:
		return '\''
	case ACSPlMinus:
		return '#'
	case ACSLArrow:
		return '<'
	case ACSRArrow:
		return '>'
	case ACSUArrow:
		return '^'
	case ACSDArrow:
		return 'v'
	case ACSLEqual:
		return '<'
	case ACSGEqual:
		return '>'
	case ACSPi:
		return '*'
	case ACSNEqual:
		return '!'
	case ACSSterling:
		return 'f'
	}
	return r
}
