// Copyright © 2026 scrim contributors
// SPDX-License-Identifier: MIT
//
// File: terminfo/db.go
// Summary: Reader for compiled terminfo entries (legacy and 32-bit formats).

package terminfo

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Compiled entry layout (term(5)): a 12-byte header of six little-endian
// int16s (magic, name size, bool count, number count, string count, string
// table size), then the sections in that order. Magic 0432 stores numbers
// as int16; magic 01036 stores them as int32. An entry may carry an
// extended storage section after the string table for user-defined caps.
const (
	magicLegacy   = 0o432
	magicExtended = 0o1036
)

var errBadEntry = errors.New("terminfo: malformed compiled entry")

// Standard capability positions consumed by this library. The compiled
// format is positional; these indices follow the canonical ordering of the
// terminfo capability tables.
const (
	boolAutoMargin = 1  // am
	boolXenl       = 4  // xenl
	boolBCE        = 28 // bce

	numColumns = 0  // cols
	numLines   = 2  // lines
	numColors  = 13 // colors
	numPairs   = 14 // pairs
)

var strCapIndex = map[string]int{
	"bel":   1,
	"cr":    2,
	"clear": 5,
	"el":    6,
	"ed":    7,
	"cup":   10,
	"cud1":  11,
	"home":  12,
	"civis": 13,
	"cub1":  14,
	"cnorm": 16,
	"cuf1":  17,
	"cuu1":  19,
	"smacs": 25,
	"blink": 26,
	"bold":  27,
	"smcup": 28,
	"dim":   30,
	"invis": 32,
	"rev":   34,
	"smso":  35,
	"smul":  36,
	"rmacs": 38,
	"sgr0":  39,
	"rmcup": 40,
	"flash": 45,
	"kbs":   55,
	"kdch1": 59,
	"kcud1": 61,
	"kf1":   66,
	"kf10":  67,
	"kf2":   68,
	"kf3":   69,
	"kf4":   70,
	"kf5":   71,
	"kf6":   72,
	"kf7":   73,
	"kf8":   74,
	"kf9":   75,
	"khome": 76,
	"kich1": 77,
	"kcub1": 79,
	"knp":   81,
	"kpp":   82,
	"kcuf1": 83,
	"kcuu1": 87,
	"rmkx":  88,
	"smkx":  89,
	"cud":   107,
	"cub":   111,
	"cuf":   112,
	"cuu":   114,
	"vpa":   127,
	"acsc":  146,
	"smam":  151,
	"rmam":  152,
	"kend":  164,
	"kf11":  216,
	"kf12":  217,
	"op":    297,
	"sitm":  311,
	"kmous": 355,
	"setaf": 359,
	"setab": 360,
}

// loadCompiled searches the terminfo database directories for a compiled
// entry matching name.
func loadCompiled(name string) (*CapabilitySet, error) {
	for _, dir := range dbDirs() {
		for _, p := range entryPaths(dir, name) {
			data, err := os.ReadFile(p)
			if err != nil {
				continue
			}
			cs, err := parseCompiled(data)
			if err != nil {
				continue
			}
			return cs, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (no compiled entry)", ErrCapabilityNotFound, name)
}

func dbDirs() []string {
	var dirs []string
	if ti := os.Getenv("TERMINFO"); ti != "" {
		dirs = append(dirs, ti)
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".terminfo"))
	}
	if td := os.Getenv("TERMINFO_DIRS"); td != "" {
		for _, d := range strings.Split(td, ":") {
			if d == "" {
				d = "/usr/share/terminfo"
			}
			dirs = append(dirs, d)
		}
	}
	dirs = append(dirs,
		"/etc/terminfo",
		"/lib/terminfo",
		"/usr/share/terminfo",
		"/usr/lib/terminfo",
		"/usr/local/share/terminfo",
	)
	return dirs
}

// entryPaths returns both database layouts: the single-letter directory
// used by ncurses and the hashed hex directory used on Darwin.
func entryPaths(dir, name string) []string {
	if name == "" {
		return nil
	}
	return []string{
		filepath.Join(dir, name[0:1], name),
		filepath.Join(dir, fmt.Sprintf("%02x", name[0]), name),
	}
}

type entryReader struct {
	data []byte
	pos  int
}

func (r *entryReader) remaining() int { return len(r.data) - r.pos }

func (r *entryReader) int16LE() (int, error) {
	if r.remaining() < 2 {
		return 0, errBadEntry
	}
	v := int16(binary.LittleEndian.Uint16(r.data[r.pos:]))
	r.pos += 2
	return int(v), nil
}

func (r *entryReader) int32LE() (int, error) {
	if r.remaining() < 4 {
		return 0, errBadEntry
	}
	v := int32(binary.LittleEndian.Uint32(r.data[r.pos:]))
	r.pos += 4
	return int(v), nil
}

func (r *entryReader) bytes(n int) ([]byte, error) {
	if n < 0 || r.remaining() < n {
		return nil, errBadEntry
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// align skips the padding byte inserted to keep int16 sections on even
// offsets.
func (r *entryReader) align() {
	if r.pos%2 == 1 && r.remaining() > 0 {
		r.pos++
	}
}

func parseCompiled(data []byte) (*CapabilitySet, error) {
	r := &entryReader{data: data}

	magic, err := r.int16LE()
	if err != nil {
		return nil, err
	}
	if magic != magicLegacy && magic != magicExtended {
		return nil, fmt.Errorf("%w: bad magic %#o", errBadEntry, magic)
	}
	wideNums := magic == magicExtended

	nameSize, err := r.int16LE()
	if err != nil {
		return nil, err
	}
	boolCount, err := r.int16LE()
	if err != nil {
		return nil, err
	}
	numCount, err := r.int16LE()
	if err != nil {
		return nil, err
	}
	strCount, err := r.int16LE()
	if err != nil {
		return nil, err
	}
	tableSize, err := r.int16LE()
	if err != nil {
		return nil, err
	}

	nameBytes, err := r.bytes(nameSize)
	if err != nil {
		return nil, err
	}
	names := strings.Split(strings.TrimRight(string(nameBytes), "\x00"), "|")
	if len(names) == 0 || names[0] == "" {
		return nil, errBadEntry
	}

	bools, err := r.bytes(boolCount)
	if err != nil {
		return nil, err
	}
	r.align()

	nums := make([]int, numCount)
	for i := range nums {
		var v int
		if wideNums {
			v, err = r.int32LE()
		} else {
			v, err = r.int16LE()
		}
		if err != nil {
			return nil, err
		}
		nums[i] = v
	}

	offsets := make([]int, strCount)
	for i := range offsets {
		offsets[i], err = r.int16LE()
		if err != nil {
			return nil, err
		}
	}

	table, err := r.bytes(tableSize)
	if err != nil {
		return nil, err
	}

	getBool := func(idx int) bool {
		return idx < len(bools) && bools[idx] == 1
	}
	getNum := func(idx int) int {
		if idx < len(nums) && nums[idx] >= 0 {
			return nums[idx]
		}
		return 0
	}
	getStr := func(idx int) string {
		if idx >= len(offsets) {
			return ""
		}
		off := offsets[idx]
		if off < 0 || off >= len(table) {
			return ""
		}
		end := off
		for end < len(table) && table[end] != 0 {
			end++
		}
		return string(table[off:end])
	}
	str := func(name string) string {
		return getStr(strCapIndex[name])
	}

	cs := &CapabilitySet{
		Name:    names[0],
		Columns: getNum(numColumns),
		Lines:   getNum(numLines),
		Colors:  getNum(numColors),
		Pairs:   getNum(numPairs),

		AutoMargin:       getBool(boolAutoMargin),
		EatNewlineGlitch: getBool(boolXenl),
		BackColorErase:   getBool(boolBCE),

		Bell:  str("bel"),
		Flash: str("flash"),

		Clear:    str("clear"),
		ClearEOL: str("el"),
		ClearEOS: str("ed"),

		Home:          str("home"),
		CursorAddress: str("cup"),
		CursorUp1:     str("cuu1"),
		CursorDown1:   str("cud1"),
		CursorLeft1:   str("cub1"),
		CursorRight1:  str("cuf1"),
		CursorUp:      str("cuu"),
		CursorDown:    str("cud"),
		CursorLeft:    str("cub"),
		CursorRight:   str("cuf"),
		RowAddress:    str("vpa"),

		AttrOff:   str("sgr0"),
		Bold:      str("bold"),
		Dim:       str("dim"),
		Italic:    str("sitm"),
		Underline: str("smul"),
		Blink:     str("blink"),
		Reverse:   str("rev"),
		Invisible: str("invis"),
		Standout:  str("smso"),

		SetFg:       str("setaf"),
		SetBg:       str("setab"),
		ResetColors: str("op"),

		EnterCA:    str("smcup"),
		ExitCA:     str("rmcup"),
		HideCursor: str("civis"),
		ShowCursor: str("cnorm"),

		EnterKeypad: str("smkx"),
		ExitKeypad:  str("rmkx"),

		EnterACS: str("smacs"),
		ExitACS:  str("rmacs"),
		ACSChars: str("acsc"),

		EnableAutoMargin:  str("smam"),
		DisableAutoMargin: str("rmam"),

		KeyBackspace: str("kbs"),
		KeyDelete:    str("kdch1"),
		KeyInsert:    str("kich1"),
		KeyUp:        str("kcuu1"),
		KeyDown:      str("kcud1"),
		KeyLeft:      str("kcub1"),
		KeyRight:     str("kcuf1"),
		KeyHome:      str("khome"),
		KeyEnd:       str("kend"),
		KeyPgUp:      str("kpp"),
		KeyPgDn:      str("knp"),
		KeyF1:        str("kf1"),
		KeyF2:        str("kf2"),
		KeyF3:        str("kf3"),
		KeyF4:        str("kf4"),
		KeyF5:        str("kf5"),
		KeyF6:        str("kf6"),
		KeyF7:        str("kf7"),
		KeyF8:        str("kf8"),
		KeyF9:        str("kf9"),
		KeyF10:       str("kf10"),
		KeyF11:       str("kf11"),
		KeyF12:       str("kf12"),
		Mouse:        str("kmous"),
	}
	if len(names) > 1 {
		cs.Aliases = names[1 : len(names)-1]
	}

	// Extended storage section, if any. Parse failures here are ignored;
	// the standard tables above are already complete.
	r.align()
	if r.remaining() >= 10 {
		parseExtended(r, cs, wideNums)
	}

	return cs, nil
}

// parseExtended reads the user-defined capability section: five int16
// counts, the bool/number values, then value offsets, name offsets and one
// string table holding values followed by names.
func parseExtended(r *entryReader, cs *CapabilitySet, wideNums bool) {
	extBools, err := r.int16LE()
	if err != nil {
		return
	}
	extNums, err := r.int16LE()
	if err != nil {
		return
	}
	extStrs, err := r.int16LE()
	if err != nil {
		return
	}
	if _, err = r.int16LE(); err != nil { // total strings in table
		return
	}
	extTableSize, err := r.int16LE()
	if err != nil {
		return
	}
	if extBools < 0 || extNums < 0 || extStrs < 0 || extTableSize < 0 {
		return
	}

	bools, err := r.bytes(extBools)
	if err != nil {
		return
	}
	r.align()

	nums := make([]int, extNums)
	for i := range nums {
		if wideNums {
			nums[i], err = r.int32LE()
		} else {
			nums[i], err = r.int16LE()
		}
		if err != nil {
			return
		}
	}

	valueOffsets := make([]int, extStrs)
	for i := range valueOffsets {
		if valueOffsets[i], err = r.int16LE(); err != nil {
			return
		}
	}
	nameCount := extBools + extNums + extStrs
	for i := 0; i < nameCount; i++ {
		if _, err = r.int16LE(); err != nil {
			return
		}
	}

	table, err := r.bytes(extTableSize)
	if err != nil {
		return
	}

	// Values come first in the table, names trail. Recover names by
	// splitting off the last nameCount NUL-terminated strings.
	items := strings.Split(strings.TrimRight(string(table), "\x00"), "\x00")
	if len(items) < nameCount {
		return
	}
	names := items[len(items)-nameCount:]

	getStr := func(off int) string {
		if off < 0 || off >= len(table) {
			return ""
		}
		end := off
		for end < len(table) && table[end] != 0 {
			end++
		}
		return string(table[off:end])
	}

	cs.ExtBools = map[string]bool{}
	cs.ExtNums = map[string]int{}
	cs.ExtStrings = map[string]string{}
	for i := 0; i < extBools; i++ {
		cs.ExtBools[names[i]] = bools[i] == 1
	}
	for i := 0; i < extNums; i++ {
		cs.ExtNums[names[extBools+i]] = nums[i]
	}
	for i := 0; i < extStrs; i++ {
		cs.ExtStrings[names[extBools+extNums+i]] = getStr(valueOffsets[i])
	}
}
