package mdtint

import (
	"strings"
	"testing"

	"pkt.systems/mdtint/internal/colorspec"
)

func TestFenceBasic(t *testing.T) {
	res := annotate(t, "```\ncode here\n```\n", Config{})
	lines := strings.Split(res.Text, "\n")
	if lines[0] != dimPrefix+"```"+reset {
		t.Fatalf("opener: %q", lines[0])
	}
	if lines[1] != codePrefix+"code here"+reset {
		t.Fatalf("body: %q", lines[1])
	}
	if lines[2] != dimPrefix+"```"+reset {
		t.Fatalf("closer: %q", lines[2])
	}
}

func TestFenceInfoString(t *testing.T) {
	res := annotate(t, "```python nums\nx = 1\n```\n", Config{})
	if !strings.Contains(res.Text, dimPrefix+"```"+reset+"\x1b[2m\x1b[3mpython nums"+reset) {
		t.Fatalf("info string not styled: %q", res.Text)
	}
}

func TestFenceUnclosedRunsToEnd(t *testing.T) {
	res := annotate(t, "```\nrest **x**\n", Config{})
	if strings.Contains(res.Text, boldPrefix) {
		t.Fatalf("emphasis styled inside unclosed fence: %q", res.Text)
	}
	if len(res.Regions) != 1 || res.Regions[0].Name != "code_block" {
		t.Fatalf("unclosed fence region: %+v", res.Regions)
	}
}

func TestFenceCloserNeedsRunLength(t *testing.T) {
	res := annotate(t, "````\n```\n````\n", Config{})
	if !strings.Contains(res.Text, codePrefix+"```"+reset) {
		t.Fatalf("short run should be body, not closer: %q", res.Text)
	}
	if len(res.Regions) != 1 {
		t.Fatalf("expected one block, got %+v", res.Regions)
	}
}

func TestFenceMarkersDoNotMix(t *testing.T) {
	res := annotate(t, "```\n~~~\n```\n", Config{})
	if !strings.Contains(res.Text, codePrefix+"~~~"+reset) {
		t.Fatalf("tilde line should not close a backtick fence: %q", res.Text)
	}
}

func TestFenceBacktickInfoRejected(t *testing.T) {
	res := annotate(t, "```a`b\nnot a fence\n", Config{})
	if len(res.Regions) != 0 {
		t.Fatalf("backtick info string opened a fence: %+v", res.Regions)
	}
}

func TestFenceIndentPreserved(t *testing.T) {
	res := annotate(t, "  ```\n  x\n  ```\n", Config{})
	if got := colorspec.Strip(res.Text); got != "  ```\n  x\n  ```\n" {
		t.Fatalf("indent lost: %q", got)
	}
	if !strings.HasPrefix(res.Text, "  "+dimPrefix) {
		t.Fatalf("indent styled with the markers: %q", res.Text)
	}
}

func TestFenceEmptyLinesStayEmpty(t *testing.T) {
	res := annotate(t, "```\na\n\nb\n```\n", Config{})
	lines := strings.Split(res.Text, "\n")
	if lines[2] != "" {
		t.Fatalf("blank body line styled: %q", lines[2])
	}
}

func TestFenceHighlightKnownLanguage(t *testing.T) {
	res := annotate(t, "```go\npackage main\n```\n", Config{Highlight: true})
	lines := strings.Split(res.Text, "\n")
	body := lines[1]
	if !strings.Contains(body, "\x1b[") {
		t.Fatalf("highlighted body carries no escapes: %q", body)
	}
	if strings.Contains(body, codePrefix+"package main") {
		t.Fatalf("flat styling used despite highlighter: %q", body)
	}
}

func TestFenceHighlightUnknownLanguageFallsBack(t *testing.T) {
	res := annotate(t, "```nosuchlang\nplain\n```\n", Config{Highlight: true})
	if !strings.Contains(res.Text, codePrefix+"plain"+reset) {
		t.Fatalf("fallback styling missing: %q", res.Text)
	}
}

func TestFenceHighlightOffUsesFlatStyle(t *testing.T) {
	res := annotate(t, "```go\npackage main\n```\n", Config{})
	if !strings.Contains(res.Text, codePrefix+"package main"+reset) {
		t.Fatalf("flat styling missing with highlight off: %q", res.Text)
	}
}
