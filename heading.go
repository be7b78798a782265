package mdtint

import (
	"strconv"
	"strings"
)

// headingStep styles ATX heading lines whole, marker run included.
// Protected spans on the line are expanded back to text first so the
// heading color runs across the entire line instead of dying at the
// first inner reset, then the restyled line is protected again as a
// unit. Earlier styling survives inside because apply reopens the
// heading prefix after every inner reset.
func (r *run) headingStep() error {
	lines := strings.Split(r.buf, "\n")
	changed := false
	for i, line := range lines {
		level, ok := parseHeading(line)
		if !ok {
			continue
		}
		label := "h" + strconv.Itoa(level)
		if !r.labels.Active(label) {
			continue
		}
		expanded, err := r.ledger.expandAll(line)
		if err != nil {
			return err
		}
		if r.cfg.Hashed[level-1] && !hasTrailingHashRun(expanded) {
			expanded = strings.TrimRight(expanded, " \t") + " " + strings.Repeat("#", level)
		}
		lines[i] = r.ledger.protect(r.apply(label, expanded))
		changed = true
	}
	if changed {
		r.buf = strings.Join(lines, "\n")
	}
	return nil
}

// parseHeading matches a column-zero ATX marker: one to six hashes
// followed by a space, tab or end of line.
func parseHeading(line string) (int, bool) {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n < 1 || n > 6 {
		return 0, false
	}
	if n < len(line) && line[n] != ' ' && line[n] != '\t' {
		return 0, false
	}
	return n, true
}

// hasTrailingHashRun blocks hash appending when the line already ends
// in a hash run, whatever its length, so reannotating never stacks
// runs.
func hasTrailingHashRun(line string) bool {
	return strings.HasSuffix(strings.TrimRight(line, " \t"), "#")
}
