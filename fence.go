package mdtint

import "strings"

// fenceOpen is a parsed fence opener line.
type fenceOpen struct {
	indent string
	marker byte
	count  int
	info   string
}

// fenceStep walks the buffer line by line, styles every fenced code
// block and protects it as a code_block exclusion region. An unclosed
// fence runs to end of input. Closing requires the same marker
// character and at least the opener's run length, so differently
// fenced blocks never close each other.
func (r *run) fenceStep() error {
	lines := strings.Split(r.buf, "\n")
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); {
		open, ok := parseFenceOpen(lines[i])
		if !ok {
			out = append(out, lines[i])
			i++
			continue
		}
		closing := -1
		for j := i + 1; j < len(lines); j++ {
			if fenceCloses(lines[j], open) {
				closing = j
				break
			}
		}
		bodyEnd := len(lines)
		closerLine := ""
		if closing >= 0 {
			bodyEnd = closing
			closerLine = lines[closing]
		}
		block := r.styleFence(open, lines[i+1:bodyEnd], closing >= 0, closerLine)
		out = append(out, r.ledger.protectRegion(block, "code_block"))
		if closing >= 0 {
			i = closing + 1
		} else {
			i = len(lines)
		}
	}
	r.buf = strings.Join(out, "\n")
	return nil
}

// parseFenceOpen matches a fence opener: up to three spaces of
// indent, a run of three or more backticks or tildes, then an info
// string. Backtick openers reject info strings containing backticks.
func parseFenceOpen(line string) (fenceOpen, bool) {
	n := 0
	for n < len(line) && n < 3 && line[n] == ' ' {
		n++
	}
	if n >= len(line) || (line[n] != '`' && line[n] != '~') {
		return fenceOpen{}, false
	}
	marker := line[n]
	count := 0
	for n+count < len(line) && line[n+count] == marker {
		count++
	}
	if count < 3 {
		return fenceOpen{}, false
	}
	info := line[n+count:]
	if marker == '`' && strings.ContainsRune(info, '`') {
		return fenceOpen{}, false
	}
	return fenceOpen{indent: line[:n], marker: marker, count: count, info: info}, true
}

// fenceCloses matches a closer for open: same marker, run at least as
// long, nothing but whitespace after.
func fenceCloses(line string, open fenceOpen) bool {
	n := 0
	for n < len(line) && n < 3 && line[n] == ' ' {
		n++
	}
	count := 0
	for n+count < len(line) && line[n+count] == open.marker {
		count++
	}
	if count < open.count {
		return false
	}
	return strings.TrimRight(line[n+count:], " \t") == ""
}

// styleFence renders the styled text of one block: fence markers and
// info string on the opener, the body either syntax-highlighted or
// flat-styled line by line, and the closer's markers when present.
func (r *run) styleFence(open fenceOpen, body []string, closed bool, closer string) string {
	var parts []string
	head := open.indent + r.apply("fence", strings.Repeat(string(open.marker), open.count))
	if strings.TrimSpace(open.info) != "" {
		head += r.apply("lang", open.info)
	} else {
		head += open.info
	}
	parts = append(parts, head)
	parts = append(parts, r.styleFenceBody(open, body)...)
	if closed {
		parts = append(parts, r.styleFenceCloser(open, closer))
	}
	return strings.Join(parts, "\n")
}

func (r *run) styleFenceBody(open fenceOpen, body []string) []string {
	if len(body) == 0 {
		return nil
	}
	if r.cfg.Highlight {
		if lang := fenceLang(open.info); lang != "" {
			src := strings.Join(body, "\n")
			if highlighted, ok := highlightCode(src, lang, r.cfg.ChromaStyle); ok {
				return []string{highlighted}
			}
		}
	}
	styled := make([]string, len(body))
	for i, line := range body {
		if line == "" {
			continue
		}
		styled[i] = r.apply("code_block", line)
	}
	return styled
}

func (r *run) styleFenceCloser(open fenceOpen, closer string) string {
	n := 0
	for n < len(closer) && n < 3 && closer[n] == ' ' {
		n++
	}
	count := 0
	for n+count < len(closer) && closer[n+count] == open.marker {
		count++
	}
	return closer[:n] + r.apply("fence", closer[n:n+count]) + closer[n+count:]
}

func fenceLang(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
