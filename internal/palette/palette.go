// Package palette builds raw SGR escape sequences for terminal styling.
//
// It knows nothing about markdown or labels. Callers compose the
// constants and constructors below into style prefixes; every styled
// span is expected to terminate with Reset.
package palette

import "strconv"

// Reset closes every open attribute and color.
const Reset = "\x1b[0m"

// Text attribute prefixes.
const (
	Bold      = "\x1b[1m"
	Dim       = "\x1b[2m"
	Italic    = "\x1b[3m"
	Underline = "\x1b[4m"
	Blink     = "\x1b[5m"
	Reverse   = "\x1b[7m"
	Strike    = "\x1b[9m"
)

// named maps the 8 base color names to their SGR offsets.
var named = map[string]int{
	"black":   0,
	"red":     1,
	"green":   2,
	"yellow":  3,
	"blue":    4,
	"magenta": 5,
	"cyan":    6,
	"white":   7,
}

// Foreground returns the SGR prefix for a named foreground color.
// Names are the 8 ANSI colors plus their bright_ variants.
func Foreground(name string) (string, bool) {
	if n, ok := named[name]; ok {
		return "\x1b[3" + strconv.Itoa(n) + "m", true
	}
	if rest, ok := brightName(name); ok {
		if n, ok := named[rest]; ok {
			return "\x1b[9" + strconv.Itoa(n) + "m", true
		}
	}
	return "", false
}

// Background returns the SGR prefix for a named background color.
func Background(name string) (string, bool) {
	if n, ok := named[name]; ok {
		return "\x1b[4" + strconv.Itoa(n) + "m", true
	}
	if rest, ok := brightName(name); ok {
		if n, ok := named[rest]; ok {
			return "\x1b[10" + strconv.Itoa(n) + "m", true
		}
	}
	return "", false
}

func brightName(name string) (string, bool) {
	const prefix = "bright_"
	if len(name) > len(prefix) && name[:len(prefix)] == prefix {
		return name[len(prefix):], true
	}
	return "", false
}

// Indexed returns the 256-color foreground prefix for 0..255.
func Indexed(n int) string {
	return "\x1b[38;5;" + strconv.Itoa(n) + "m"
}

// IndexedBackground returns the 256-color background prefix for 0..255.
func IndexedBackground(n int) string {
	return "\x1b[48;5;" + strconv.Itoa(n) + "m"
}

// TrueColor returns a 24-bit foreground prefix.
func TrueColor(r, g, b uint8) string {
	return "\x1b[38;2;" + strconv.Itoa(int(r)) + ";" + strconv.Itoa(int(g)) + ";" + strconv.Itoa(int(b)) + "m"
}

// TrueColorBackground returns a 24-bit background prefix.
func TrueColorBackground(r, g, b uint8) string {
	return "\x1b[48;2;" + strconv.Itoa(int(r)) + ";" + strconv.Itoa(int(g)) + ";" + strconv.Itoa(int(b)) + "m"
}

// Hex parses "#rrggbb" and returns the truecolor foreground prefix.
func Hex(s string) (string, bool) {
	r, g, b, ok := parseHex(s)
	if !ok {
		return "", false
	}
	return TrueColor(r, g, b), true
}

// HexBackground parses "#rrggbb" and returns the truecolor background prefix.
func HexBackground(s string) (string, bool) {
	r, g, b, ok := parseHex(s)
	if !ok {
		return "", false
	}
	return TrueColorBackground(r, g, b), true
}

func parseHex(s string) (r, g, b uint8, ok bool) {
	if len(s) != 7 || s[0] != '#' {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8 & 0xff), uint8(v & 0xff), true
}
