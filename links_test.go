package mdtint

import (
	"strings"
	"testing"

	"pkt.systems/mdtint/internal/colorspec"
)

func TestLinkPlain(t *testing.T) {
	res := annotate(t, "see [docs](https://e.com) now\n", Config{})
	want := "see " + linkPrefix + "docs" + reset + " " + urlPrefix + "(https://e.com)" + reset + " now\n"
	if res.Text != want {
		t.Fatalf("plain link:\n got %q\nwant %q", res.Text, want)
	}
}

func TestLinkHyperlink(t *testing.T) {
	res := annotate(t, "[docs](https://e.com)\n", Config{Hyperlinks: true})
	want := osc8Start + "https://e.com" + "\x1b\\" + linkPrefix + "docs" + reset + osc8End + "\n"
	if res.Text != want {
		t.Fatalf("hyperlink:\n got %q\nwant %q", res.Text, want)
	}
	if strings.Contains(res.Text, "(https://e.com)") {
		t.Fatalf("URL tail shown alongside hyperlink: %q", res.Text)
	}
}

func TestLinkHyperlinkEscapesURL(t *testing.T) {
	res := annotate(t, "[t](https://e.com/a b;c)\n", Config{Hyperlinks: true})
	if !strings.Contains(res.Text, "https://e.com/a%20b%3Bc") {
		t.Fatalf("URL not escaped inside OSC 8: %q", res.Text)
	}
}

func TestImageAltAndURL(t *testing.T) {
	res := annotate(t, "![alt](img.png)\n", Config{})
	want := "\x1b[35m![alt]" + reset + " " + urlPrefix + "(img.png)" + reset + "\n"
	if res.Text != want {
		t.Fatalf("image:\n got %q\nwant %q", res.Text, want)
	}
}

func TestImageLinkNested(t *testing.T) {
	res := annotate(t, "[![alt](i.png)](https://t)\n", Config{Hyperlinks: true})
	if !strings.HasPrefix(res.Text, osc8Start+"https://t"+"\x1b\\") {
		t.Fatalf("outer hyperlink missing: %q", res.Text)
	}
	if !strings.Contains(res.Text, "\x1b[35m![alt]"+reset) {
		t.Fatalf("inner image styling missing: %q", res.Text)
	}
	if !strings.Contains(res.Text, urlPrefix+"(i.png)"+reset) {
		t.Fatalf("image URL tail missing: %q", res.Text)
	}
}

func TestImageLinkWithoutHyperlinks(t *testing.T) {
	res := annotate(t, "[![a](i.png)](https://t)\n", Config{})
	if got, want := colorspec.Strip(res.Text), "![a] (i.png) (https://t)\n"; got != want {
		t.Fatalf("visible text: %q want %q", got, want)
	}
}

func TestLinkBracketNesting(t *testing.T) {
	res := annotate(t, "[a [b] c](u)\n", Config{})
	if !strings.Contains(res.Text, linkPrefix+"a [b] c"+reset) {
		t.Fatalf("nested brackets broke link text: %q", res.Text)
	}
}

func TestLinkBackticksShieldBrackets(t *testing.T) {
	res := annotate(t, "[`a]`](u)\n", Config{})
	if !strings.Contains(res.Text, linkPrefix+"`a]`"+reset) {
		t.Fatalf("code span did not shield bracket: %q", res.Text)
	}
}

func TestLinkDoesNotCrossLines(t *testing.T) {
	src := "[a\nb](u)\n"
	res := annotate(t, src, Config{})
	if res.Text != src {
		t.Fatalf("link matched across a line break: %q", res.Text)
	}
}

func TestEscapedBracketNotALink(t *testing.T) {
	src := "\\[x](u)\n"
	res := annotate(t, src, Config{})
	if res.Text != src {
		t.Fatalf("escaped bracket matched: %q", res.Text)
	}
}

func TestLinkParenNesting(t *testing.T) {
	res := annotate(t, "[w](https://e.com/a_(b))\n", Config{})
	if !strings.Contains(res.Text, urlPrefix+"(https://e.com/a_(b))"+reset) {
		t.Fatalf("nested parens broke destination: %q", res.Text)
	}
}

func TestLinkSuppressedByLabel(t *testing.T) {
	res := annotate(t, "[docs](u)\n", Config{Show: []LabelShow{
		{Label: "link", Show: false},
		{Label: "url", Show: false},
	}})
	if got, want := res.Text, "docs (u)\n"; got != want {
		t.Fatalf("suppressed link: %q want %q", got, want)
	}
}
