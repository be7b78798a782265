package mdtint

import "strings"

// codeSpanStep styles inline code spans and protects them. Delimiter
// runs pair with a closing run of the same length on the same line;
// an unpaired run stays literal. Ticks and content carry separate
// labels. The step always runs so later emphasis passes never reach
// into code.
func (r *run) codeSpanStep() error {
	buf := r.buf
	var b strings.Builder
	b.Grow(len(buf) + len(buf)/4)
	i := 0
	for i < len(buf) {
		switch buf[i] {
		case '\\':
			end := i + 2
			if end > len(buf) {
				end = len(buf)
			}
			b.WriteString(buf[i:end])
			i = end
		case '`':
			n := runLen(buf, i, '`')
			end, ok := skipCodeSpan(buf, i, n)
			if !ok {
				b.WriteString(buf[i : i+n])
				i += n
				continue
			}
			styled := r.apply("ticks", buf[i:i+n]) +
				r.apply("code", buf[i+n:end-n]) +
				r.apply("ticks", buf[end-n:end])
			b.WriteString(r.ledger.protect(styled))
			i = end
		default:
			b.WriteByte(buf[i])
			i++
		}
	}
	r.buf = b.String()
	return nil
}

// ruleStep styles horizontal rule lines whole and protects them so
// the emphasis passes never see their markers.
func (r *run) ruleStep() error {
	lines := strings.Split(r.buf, "\n")
	changed := false
	for i, line := range lines {
		if !isRuleLine(line) {
			continue
		}
		lines[i] = r.ledger.protect(r.apply("rule", line))
		changed = true
	}
	if changed {
		r.buf = strings.Join(lines, "\n")
	}
	return nil
}

// isRuleLine reports whether line consists only of three or more
// repeats of one of -, * or _, optionally separated by spaces or
// tabs.
func isRuleLine(line string) bool {
	var marker byte
	count := 0
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == ' ' || c == '\t' {
			continue
		}
		if c != '-' && c != '*' && c != '_' {
			return false
		}
		if marker == 0 {
			marker = c
		} else if c != marker {
			return false
		}
		count++
	}
	return count >= 3
}

func (r *run) boldStep() error {
	r.buf = scanEmphasis(r.buf, "**", false, func(span string) string { return r.apply("bold", span) })
	r.buf = scanEmphasis(r.buf, "__", true, func(span string) string { return r.apply("bold", span) })
	return nil
}

func (r *run) italicStep() error {
	r.buf = scanEmphasis(r.buf, "*", false, func(span string) string { return r.apply("italic", span) })
	r.buf = scanEmphasis(r.buf, "_", true, func(span string) string { return r.apply("italic", span) })
	return nil
}

func (r *run) strikeStep() error {
	r.buf = scanEmphasis(r.buf, "~~", false, func(span string) string { return r.apply("strike", span) })
	return nil
}

// scanEmphasis styles delimiter-paired spans, markers included. The
// edge-case policy, uniform across delimiters: a delimiter adjacent
// to a backslash, backtick or another delimiter byte never opens or
// closes; openers need a following non-space and closers a preceding
// non-space; spans stay on one line. wordBound additionally rejects
// word characters on the outside, which keeps snake_case
// identifiers literal.
func scanEmphasis(buf, delim string, wordBound bool, style func(string) string) string {
	var b strings.Builder
	b.Grow(len(buf) + len(buf)/8)
	i := 0
	for i < len(buf) {
		if buf[i] == '\\' {
			end := i + 2
			if end > len(buf) {
				end = len(buf)
			}
			b.WriteString(buf[i:end])
			i = end
			continue
		}
		if !strings.HasPrefix(buf[i:], delim) || !emphasisOpens(buf, i, delim, wordBound) {
			b.WriteByte(buf[i])
			i++
			continue
		}
		closer := findEmphasisCloser(buf, i+len(delim), delim, wordBound)
		if closer < 0 {
			b.WriteString(delim)
			i += len(delim)
			continue
		}
		b.WriteString(style(buf[i : closer+len(delim)]))
		i = closer + len(delim)
	}
	return b.String()
}

func emphasisOpens(buf string, i int, delim string, wordBound bool) bool {
	if i > 0 {
		prev := buf[i-1]
		if prev == '\\' || prev == '`' || prev == delim[0] {
			return false
		}
		if wordBound && isWordByte(prev) {
			return false
		}
	}
	next := i + len(delim)
	if next >= len(buf) {
		return false
	}
	c := buf[next]
	if c == ' ' || c == '\t' || c == '\n' || c == delim[0] {
		return false
	}
	return true
}

func findEmphasisCloser(buf string, from int, delim string, wordBound bool) int {
	for j := from; j < len(buf); {
		switch buf[j] {
		case '\\':
			j += 2
		case '\n':
			return -1
		default:
			if strings.HasPrefix(buf[j:], delim) && emphasisCloses(buf, j, delim, wordBound) {
				return j
			}
			j++
		}
	}
	return -1
}

func emphasisCloses(buf string, j int, delim string, wordBound bool) bool {
	prev := buf[j-1]
	if prev == ' ' || prev == '\t' || prev == '`' || prev == delim[0] {
		return false
	}
	next := j + len(delim)
	if next < len(buf) {
		c := buf[next]
		if c == delim[0] {
			return false
		}
		if wordBound && isWordByte(c) {
			return false
		}
	}
	return true
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
