package mdtint

import "strings"

// quoteStep styles the leading marker run of blockquote lines. It
// runs last so it sees the lines every other step produced. Only the
// contiguous run of > at column zero is styled; a space-separated
// nested marker further in counts as quoted text and stays untouched.
func (r *run) quoteStep() error {
	lines := strings.Split(r.buf, "\n")
	changed := false
	for i, line := range lines {
		n := 0
		for n < len(line) && line[n] == '>' {
			n++
		}
		if n == 0 {
			continue
		}
		lines[i] = r.apply("quote", line[:n]) + line[n:]
		changed = true
	}
	if changed {
		r.buf = strings.Join(lines, "\n")
	}
	return nil
}
