package mdtint

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/wordwrap"

	"pkt.systems/mdtint/internal/colorspec"
)

// FoldLines wraps overlong list and definition lines to width, with
// continuation lines hanging under the text column. Other lines, and
// every line inside an exclude region, pass through untouched, so
// code blocks, comments and formatted tables keep their shape.
func FoldLines(text string, exclude []Region, width int) string {
	if width <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	skip := excludedLines(exclude, len(lines))
	changed := false
	for i, line := range lines {
		if skip[i] || printWidth(line) <= width {
			continue
		}
		indent, marker, rest, ok := listMarker(line)
		if !ok {
			continue
		}
		hangWidth := printWidth(indent + marker)
		avail := width - hangWidth
		if avail < 8 {
			continue
		}
		wrapped := wrapVisible(rest, avail)
		hang := strings.Repeat(" ", hangWidth)
		var b strings.Builder
		b.WriteString(indent)
		b.WriteString(marker)
		for j, w := range wrapped {
			if j > 0 {
				b.WriteString("\n")
				b.WriteString(hang)
			}
			b.WriteString(w)
		}
		lines[i] = b.String()
		changed = true
	}
	if !changed {
		return text
	}
	return strings.Join(lines, "\n")
}

// printWidth measures the terminal cell width of s with every escape
// sequence, OSC 8 hyperlinks included, stripped first.
func printWidth(s string) int {
	return runewidth.StringWidth(colorspec.Strip(s))
}

func excludedLines(regions []Region, n int) []bool {
	skip := make([]bool, n)
	for _, reg := range regions {
		for i := reg.StartLine; i < reg.EndLine && i < n; i++ {
			if i >= 0 {
				skip[i] = true
			}
		}
	}
	return skip
}

// listMarker splits a list or definition line into indent, the marker
// column (marker plus following spaces) and the content after it.
func listMarker(line string) (indent, marker, rest string, ok bool) {
	n := 0
	for n < len(line) && (line[n] == ' ' || line[n] == '\t') {
		n++
	}
	m := n
	switch {
	case m < len(line) && (line[m] == '-' || line[m] == '*' || line[m] == '+' || line[m] == ':'):
		m++
	default:
		for m < len(line) && line[m] >= '0' && line[m] <= '9' {
			m++
		}
		if m == n || m >= len(line) || (line[m] != '.' && line[m] != ')') {
			return "", "", "", false
		}
		m++
	}
	spaces := m
	for spaces < len(line) && line[spaces] == ' ' {
		spaces++
	}
	if spaces == m || spaces >= len(line) {
		return "", "", "", false
	}
	return line[:n], line[n:spaces], line[spaces:], true
}

// wrapVisible wraps content to width. Lines without hyperlink
// sequences go through reflow's word wrapper; lines carrying OSC 8
// need our own measurement because their URL part must not count as
// printable.
func wrapVisible(content string, width int) []string {
	if !strings.Contains(content, osc8Start) {
		wrapped := strings.Split(wordwrap.String(content, width), "\n")
		return shrinkOverlong(wrapped, width)
	}
	return shrinkOverlong(greedyWrap(content, width), width)
}

func greedyWrap(content string, width int) []string {
	words := strings.Fields(content)
	if len(words) == 0 {
		return []string{content}
	}
	var out []string
	var line strings.Builder
	lineWidth := 0
	for _, w := range words {
		ww := printWidth(w)
		if lineWidth > 0 && lineWidth+1+ww > width {
			out = append(out, line.String())
			line.Reset()
			lineWidth = 0
		}
		if lineWidth > 0 {
			line.WriteString(" ")
			lineWidth++
		}
		line.WriteString(w)
		lineWidth += ww
	}
	out = append(out, line.String())
	return out
}

// shrinkOverlong shortens wrapped lines that still exceed width
// because of a single overlong URL word. Anything else overlong is
// left alone; dropping display text is only acceptable for URLs.
func shrinkOverlong(lines []string, width int) []string {
	for i, line := range lines {
		if printWidth(line) <= width || !strings.Contains(line, "://") {
			continue
		}
		words := strings.Split(line, " ")
		total := 0
		for _, w := range words {
			total += printWidth(w)
		}
		total += len(words) - 1
		for j, w := range words {
			ww := printWidth(w)
			if ww <= width || !strings.Contains(w, "://") {
				continue
			}
			budget := ww - (total - width)
			if budget < 10 {
				budget = 10
			}
			words[j] = shrinkURLWord(w, budget)
		}
		lines[i] = strings.Join(words, " ")
	}
	return lines
}

var (
	leadingEscapes  = regexp.MustCompile(`^(?:\x1b\[[0-9;]*[A-Za-z])+`)
	trailingEscapes = regexp.MustCompile(`(?:\x1b\[[0-9;]*[A-Za-z])+$`)
)

// shrinkURLWord rebuilds a styled (url) word with the URL fitted to
// limit, keeping the original style prefix and reset around it.
func shrinkURLWord(word string, limit int) string {
	lead := leadingEscapes.FindString(word)
	trail := trailingEscapes.FindString(word)
	visible := colorspec.Strip(word)
	prefix, url, suffix, ok := splitURLWrapper(visible)
	if !ok {
		return word
	}
	fitted := fitURL(url, limit-2)
	if fitted == url {
		return word
	}
	return lead + prefix + fitted + suffix + trail
}

func truncateWithEllipsis(text string, limit int) string {
	if ansi.PrintableRuneWidth(text) <= limit {
		return text
	}
	if limit <= 0 {
		return ""
	}
	if limit == 1 {
		return "…"
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-1]) + "…"
}

func fitURL(url string, limit int) string {
	if ansi.PrintableRuneWidth(url) <= limit {
		return url
	}
	if idx := strings.Index(url, "://"); idx != -1 {
		trimmed := url[idx+3:]
		if ansi.PrintableRuneWidth(trimmed) <= limit {
			return trimmed
		}
	}
	return truncateWithEllipsis(url, limit)
}

func splitURLWrapper(text string) (prefix, url, suffix string, ok bool) {
	runes := []rune(text)
	if len(runes) < 2 {
		return "", "", "", false
	}
	open := runes[0]
	var want rune
	switch open {
	case '(':
		want = ')'
	case '[':
		want = ']'
	case '{':
		want = '}'
	case '<':
		want = '>'
	default:
		return "", "", "", false
	}
	if runes[len(runes)-1] != want {
		return "", "", "", false
	}
	return string(open), string(runes[1 : len(runes)-1]), string(want), true
}
