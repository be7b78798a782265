package colorspec

import (
	"regexp"
	"sort"
	"strings"
)

// escapePattern matches SGR sequences, OSC 8 hyperlink sequences and a
// bare string terminator.
var escapePattern = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]|\x1b\]8;;[^\x1b]*\x1b\\|\x1b\\`)

// Strip removes every escape sequence, leaving the visible text.
func Strip(s string) string {
	if !strings.ContainsRune(s, 0x1b) {
		return s
	}
	return escapePattern.ReplaceAllString(s, "")
}

// trailingSpacePattern matches visible trailing whitespace, allowing
// escape sequences between the whitespace and the line end.
var trailingSpacePattern = regexp.MustCompile(`[\t ]+((?:\x1b\[[0-9;]*[A-Za-z]|\x1b\]8;;[^\x1b]*\x1b\\|\x1b\\)*)(\n|$)`)

type transformFunc func(string) (string, error)

// transforms is the closed registry of post-styling text transforms.
// Entries operate on styled text and must leave escape sequences
// intact.
var transforms = map[string]transformFunc{
	"upper": func(s string) (string, error) {
		return mapVisible(s, strings.ToUpper), nil
	},
	"lower": func(s string) (string, error) {
		return mapVisible(s, strings.ToLower), nil
	},
	"trim": func(s string) (string, error) {
		return trailingSpacePattern.ReplaceAllString(s, "$1$2"), nil
	},
	"oneline": func(s string) (string, error) {
		return strings.ReplaceAll(s, "\n", " "), nil
	},
}

// Transform looks up a registered transform by name.
func Transform(name string) (transformFunc, bool) {
	fn, ok := transforms[name]
	return fn, ok
}

// Transforms returns the registered transform names, sorted.
func Transforms() []string {
	out := make([]string, 0, len(transforms))
	for name := range transforms {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// mapVisible applies f to the text between escape sequences, copying
// the sequences through untouched.
func mapVisible(s string, f func(string) string) string {
	if !strings.ContainsRune(s, 0x1b) {
		return f(s)
	}
	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, m := range escapePattern.FindAllStringIndex(s, -1) {
		b.WriteString(f(s[last:m[0]]))
		b.WriteString(s[m[0]:m[1]])
		last = m[1]
	}
	b.WriteString(f(s[last:]))
	return b.String()
}
