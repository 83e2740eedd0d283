// Copyright © 2026 scrim contributors
// SPDX-License-Identifier: MIT
//
// File: session/encoding.go
// Summary: Output charset handling for non-UTF-8 locales.

package session

import (
	"io"
	"os"
	"strings"

	gdamore "github.com/gdamore/encoding"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// outputWriter wraps the sink with a charset encoder when the locale is
// not UTF-8. Runes the charset cannot express degrade to substitution
// characters rather than raw UTF-8 bytes the terminal would mangle.
func outputWriter(w io.Writer) io.Writer {
	name := localeCharset()
	if name == "" {
		return w
	}
	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		return &encodedWriter{w: w, enc: encoding.ReplaceUnsupported(enc.NewEncoder())}
	}
	return &encodedWriter{w: w, enc: gdamore.ASCII.NewEncoder()}
}

// localeCharset extracts the charset from the usual locale variables.
// Empty means UTF-8 (or close enough to pass runes through).
func localeCharset() string {
	locale := ""
	for _, v := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		if locale = os.Getenv(v); locale != "" {
			break
		}
	}
	if locale == "" || locale == "C" || locale == "POSIX" {
		return ""
	}
	if i := strings.IndexByte(locale, '@'); i >= 0 {
		locale = locale[:i]
	}
	i := strings.IndexByte(locale, '.')
	if i < 0 {
		return ""
	}
	charset := locale[i+1:]
	switch strings.ToLower(strings.ReplaceAll(charset, "-", "")) {
	case "", "utf8":
		return ""
	}
	return charset
}

type encodedWriter struct {
	w   io.Writer
	enc *encoding.Encoder
}

func (ew *encodedWriter) Write(p []byte) (int, error) {
	b, err := ew.enc.Bytes(p)
	if err != nil {
		return 0, err
	}
	if _, err := ew.w.Write(b); err != nil {
		return 0, err
	}
	return len(p), nil
}
