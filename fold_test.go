package mdtint

import (
	"strings"
	"testing"
)

func TestFoldHangIndent(t *testing.T) {
	got := FoldLines("- alpha beta gamma delta epsilon\n", nil, 20)
	want := "- alpha beta gamma\n  delta epsilon\n"
	if got != want {
		t.Fatalf("folded:\n%q\nwant:\n%q", got, want)
	}
}

func TestFoldWidthZeroIsNoop(t *testing.T) {
	text := "- alpha beta gamma delta epsilon\n"
	if got := FoldLines(text, nil, 0); got != text {
		t.Fatalf("width 0 touched text: %q", got)
	}
}

func TestFoldSkipsNonListLines(t *testing.T) {
	text := "plain prose that runs well past the configured width limit\n"
	if got := FoldLines(text, nil, 20); got != text {
		t.Fatalf("non-list line folded: %q", got)
	}
}

func TestFoldSkipsExcludedLines(t *testing.T) {
	text := "- alpha beta gamma delta epsilon\n"
	exclude := []Region{{Name: "code_block", StartLine: 0, EndLine: 1}}
	if got := FoldLines(text, exclude, 20); got != text {
		t.Fatalf("excluded line folded: %q", got)
	}
}

func TestFoldSkipsWhenHangColumnTooDeep(t *testing.T) {
	text := "      - aaaa bbbb cccc dddd\n"
	if got := FoldLines(text, nil, 15); got != text {
		t.Fatalf("folded with no room after hang column: %q", got)
	}
}

func TestFoldHyperlinkLineCountsDisplayWidthOnly(t *testing.T) {
	line := "- " + hyperlink("https://example.com/xyz", "docs") + " alpha beta gamma delta"
	got := FoldLines(line, nil, 20)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("line count %d: %q", len(lines), got)
	}
	for i, l := range lines {
		if printWidth(l) > 20 {
			t.Fatalf("line %d over width: %d %q", i, printWidth(l), l)
		}
	}
	if !strings.Contains(lines[0], osc8Start) {
		t.Fatalf("hyperlink lost: %q", lines[0])
	}
	if lines[1] != "  gamma delta" {
		t.Fatalf("continuation: %q", lines[1])
	}
}

func TestFoldShrinksOverlongURL(t *testing.T) {
	got := FoldLines("- docs (https://example.com/very/long/path/segment)", nil, 25)
	want := "- docs\n  (https://example.com/…)"
	if got != want {
		t.Fatalf("folded:\n%q\nwant:\n%q", got, want)
	}
}

func TestListMarker(t *testing.T) {
	cases := []struct {
		line                 string
		indent, marker, rest string
		ok                   bool
	}{
		{"- a", "", "- ", "a", true},
		{"  * b", "  ", "* ", "b", true},
		{"+ c", "", "+ ", "c", true},
		{"12. item", "", "12. ", "item", true},
		{"3) x", "", "3) ", "x", true},
		{": def", "", ": ", "def", true},
		{"-nospace", "", "", "", false},
		{"- ", "", "", "", false},
		{"plain", "", "", "", false},
	}
	for _, c := range cases {
		indent, marker, rest, ok := listMarker(c.line)
		if ok != c.ok || indent != c.indent || marker != c.marker || rest != c.rest {
			t.Fatalf("listMarker(%q) = %q %q %q %v, want %q %q %q %v",
				c.line, indent, marker, rest, ok, c.indent, c.marker, c.rest, c.ok)
		}
	}
}

func TestPrintWidth(t *testing.T) {
	if w := printWidth("\x1b[1mab\x1b[0m"); w != 2 {
		t.Fatalf("styled width %d", w)
	}
	if w := printWidth(hyperlink("https://example.com/long", "ab")); w != 2 {
		t.Fatalf("hyperlink width %d", w)
	}
	if w := printWidth("日本"); w != 4 {
		t.Fatalf("wide rune width %d", w)
	}
}

func TestFitURL(t *testing.T) {
	if got := fitURL("https://example.com/abc", 15); got != "example.com/abc" {
		t.Fatalf("scheme strip: %q", got)
	}
	if got := fitURL("https://e.com", 15); got != "https://e.com" {
		t.Fatalf("short url changed: %q", got)
	}
	if got := fitURL("https://example.com/abcdef", 10); got != "https://e…" {
		t.Fatalf("truncated url: %q", got)
	}
}

func TestTruncateWithEllipsis(t *testing.T) {
	if got := truncateWithEllipsis("abcdefgh", 5); got != "abcd…" {
		t.Fatalf("truncate: %q", got)
	}
	if got := truncateWithEllipsis("ab", 5); got != "ab" {
		t.Fatalf("short input changed: %q", got)
	}
	if got := truncateWithEllipsis("abc", 1); got != "…" {
		t.Fatalf("limit one: %q", got)
	}
	if got := truncateWithEllipsis("abc", 0); got != "" {
		t.Fatalf("limit zero: %q", got)
	}
}
