// Package ansi builds SGR (Select Graphic Rendition) escape sequences for
// color and style markup on serial terminals.
//
// An EscapeSequence is an immutable value: the Fg, Bg and Styles builders
// return modified copies. Rendering is a pure function of the value and
// the package-wide enable flag; while disabled, every sequence renders as
// the empty string so downstream text stays valid, just colorless.
package ansi

import (
	"strconv"
	"strings"
)

const (
	escapeIntro = "\x1b["
	escapeEnd   = "m"
)

// Color is the color variant used in an escape sequence: either one of
// the 16 Named terminal colors or an explicit RGB triple.
type Color interface {
	appendFg(b []byte) []byte
	appendBg(b []byte) []byte
}

// Named is one of the 16 standard terminal colors.
type Named int

const (
	Black Named = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	LightBlack
	LightRed
	LightGreen
	LightYellow
	LightBlue
	LightMagenta
	LightCyan
	LightWhite
)

// Standard colors occupy SGR 30-37 (fg) and 40-47 (bg); the bright
// variants occupy 90-97 and 100-107.
func (c Named) fgCode() int {
	if c >= LightBlack {
		return 90 + int(c-LightBlack)
	}
	return 30 + int(c)
}

func (c Named) appendFg(b []byte) []byte {
	return strconv.AppendInt(b, int64(c.fgCode()), 10)
}

func (c Named) appendBg(b []byte) []byte {
	return strconv.AppendInt(b, int64(c.fgCode()+10), 10)
}

// RGB is a 24-bit truecolor value, rendered with the extended
// 38;2;R;G;B / 48;2;R;G;B forms.
type RGB struct {
	R, G, B uint8
}

func (c RGB) appendFg(b []byte) []byte {
	return c.appendTriple(b, "38;2;")
}

func (c RGB) appendBg(b []byte) []byte {
	return c.appendTriple(b, "48;2;")
}

func (c RGB) appendTriple(b []byte, prefix string) []byte {
	b = append(b, prefix...)
	b = strconv.AppendInt(b, int64(c.R), 10)
	b = append(b, ';')
	b = strconv.AppendInt(b, int64(c.G), 10)
	b = append(b, ';')
	b = strconv.AppendInt(b, int64(c.B), 10)
	return b
}

// Style is a single SGR style token.
type Style int

const (
	Clear Style = iota
	Bold
	Dimmed
	Italic
	Underline
	Blink
	Reversed
	Hidden
	Strikethrough
)

func (s Style) code() int {
	switch s {
	case Clear:
		return 0
	case Bold:
		return 1
	case Dimmed:
		return 2
	case Italic:
		return 3
	case Underline:
		return 4
	case Blink:
		return 5
	case Reversed:
		return 7
	case Hidden:
		return 8
	case Strikethrough:
		return 9
	}
	return 0
}

// EscapeSequence is an SGR escape sequence under construction. The zero
// value renders the bare introducer and terminator.
type EscapeSequence struct {
	fg     Color
	bg     Color
	styles []Style
}

// New returns an escape sequence with no color or style information.
func New() EscapeSequence {
	return EscapeSequence{}
}

// Fg returns a copy of the sequence with the foreground color set.
func (e EscapeSequence) Fg(c Color) EscapeSequence {
	e.fg = c
	return e
}

// Bg returns a copy of the sequence with the background color set.
func (e EscapeSequence) Bg(c Color) EscapeSequence {
	e.bg = c
	return e
}

// Styles returns a copy of the sequence with the style tokens set. They
// render in the order given.
func (e EscapeSequence) Styles(styles ...Style) EscapeSequence {
	e.styles = styles
	return e
}

// String renders the sequence: introducer, foreground code, background
// code, style codes, terminator. While color output is disabled it
// renders the empty string regardless of contents.
func (e EscapeSequence) String() string {
	if !enabled {
		return ""
	}
	b := make([]byte, 0, 16)
	b = append(b, escapeIntro...)
	if e.fg != nil {
		b = e.fg.appendFg(b)
	}
	if e.bg != nil {
		b = e.bg.appendBg(b)
	}
	for _, s := range e.styles {
		b = strconv.AppendInt(b, int64(s.code()), 10)
	}
	b = append(b, escapeEnd...)
	return string(b)
}

// Strip is a helper for tests and plain-text consumers: it removes every
// SGR sequence from s.
func Strip(s string) string {
	var out strings.Builder
	for {
		i := strings.Index(s, escapeIntro)
		if i < 0 {
			out.WriteString(s)
			return out.String()
		}
		out.WriteString(s[:i])
		s = s[i+len(escapeIntro):]
		if j := strings.Index(s, escapeEnd); j >= 0 {
			s = s[j+1:]
		} else {
			return out.String()
		}
	}
}
