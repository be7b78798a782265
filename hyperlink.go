package mdtint

import (
	"os"
	"strconv"
	"strings"
)

const (
	osc8Start = "\x1b]8;;"
	osc8End   = "\x1b]8;;\x1b\\"
)

// hyperlink wraps display text in an OSC 8 hyperlink pointing at url.
// The URL goes through percent-escaping first so the sequence cannot
// be broken out of.
func hyperlink(url, display string) string {
	return osc8Start + escapeURL(url) + "\x1b\\" + display + osc8End
}

// escapeURL percent-escapes bytes outside the printable ASCII range
// plus the few characters that would terminate or confuse an OSC 8
// sequence. Already-escaped input comes through unchanged apart from
// stray % signs, which is acceptable for display-only links.
func escapeURL(url string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(url))
	for i := 0; i < len(url); i++ {
		c := url[i]
		if c <= 0x20 || c >= 0x7f || c == ';' || c == '\\' || c == '"' || c == '\'' {
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0xf])
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// DetectHyperlinkSupport returns true if the current environment
// likely supports OSC 8 hyperlinks.
func DetectHyperlinkSupport() bool {
	if os.Getenv("OSC8") == "0" {
		return false
	}
	if os.Getenv("DOMTERM") != "" {
		return true
	}
	if os.Getenv("WT_SESSION") != "" {
		return true
	}
	termProgram := os.Getenv("TERM_PROGRAM")
	if termProgram == "iTerm.app" || termProgram == "WezTerm" || termProgram == "vscode" {
		return true
	}
	if strings.Contains(strings.ToLower(os.Getenv("TERM")), "kitty") {
		return true
	}
	if vte := os.Getenv("VTE_VERSION"); vte != "" {
		if n, err := strconv.Atoi(vte); err == nil && n >= 5000 {
			return true
		}
	}
	return false
}
