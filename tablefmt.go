package mdtint

import (
	"sort"
	"strings"
)

type cellAlign int

const (
	alignLeft cellAlign = iota
	alignCenter
	alignRight
)

// FormatTables rewrites pipe-table blocks with box-drawing borders
// and width-aligned columns. A block is two or more consecutive lines
// whose first non-space character is a pipe, where the second line is
// a delimiter row. Lines inside exclude regions never start or join a
// block. Returned regions are the input regions remapped to the new
// line numbers plus one table region per formatted table. Formatting
// is skipped for tables wider than width (when width is positive).
func FormatTables(text string, exclude []Region, width int) (string, []Region) {
	lines := strings.Split(text, "\n")
	skip := excludedLines(exclude, len(lines))

	var out []string
	newIndex := make([]int, len(lines)+1)
	var tables []Region

	for i := 0; i < len(lines); {
		newIndex[i] = len(out)
		if skip[i] || !isTableRow(lines[i]) {
			out = append(out, lines[i])
			i++
			continue
		}
		j := i + 1
		for j < len(lines) && !skip[j] && isTableRow(lines[j]) {
			j++
		}
		block, ok := formatTableBlock(lines[i:j], width)
		if !ok {
			for ; i < j; i++ {
				newIndex[i] = len(out)
				out = append(out, lines[i])
			}
			continue
		}
		start := len(out)
		for k := i; k < j; k++ {
			newIndex[k] = start
		}
		out = append(out, block...)
		tables = append(tables, Region{Name: "table", StartLine: start, EndLine: len(out)})
		i = j
	}
	newIndex[len(lines)] = len(out)

	regions := make([]Region, 0, len(exclude)+len(tables))
	for _, reg := range exclude {
		start := reg.StartLine
		if start < 0 {
			start = 0
		}
		if start >= len(lines) {
			start = len(lines) - 1
		}
		end := reg.EndLine
		if end <= start {
			end = start + 1
		}
		if end > len(lines) {
			end = len(lines)
		}
		regions = append(regions, Region{Name: reg.Name, StartLine: newIndex[start], EndLine: newIndex[end-1] + 1})
	}
	regions = append(regions, tables...)
	sort.Slice(regions, func(a, b int) bool { return regions[a].StartLine < regions[b].StartLine })
	return strings.Join(out, "\n"), regions
}

func isTableRow(line string) bool {
	t := strings.TrimSpace(line)
	return len(t) >= 2 && t[0] == '|'
}

// formatTableBlock renders one block, or reports false when the block
// has no delimiter second row or would not fit the terminal.
func formatTableBlock(rows []string, width int) ([]string, bool) {
	if len(rows) < 2 {
		return nil, false
	}
	aligns, ok := parseDelimiterRow(rows[1])
	if !ok {
		return nil, false
	}
	indent := rows[0][:len(rows[0])-len(strings.TrimLeft(rows[0], " \t"))]

	cells := make([][]string, 0, len(rows)-1)
	cols := len(aligns)
	for idx, row := range rows {
		if idx == 1 {
			continue
		}
		parsed := splitRow(row)
		if len(parsed) > cols {
			cols = len(parsed)
		}
		cells = append(cells, parsed)
	}
	for len(aligns) < cols {
		aligns = append(aligns, alignLeft)
	}

	widths := make([]int, cols)
	for _, row := range cells {
		for c := 0; c < cols; c++ {
			w := 1
			if c < len(row) {
				w = printWidth(row[c])
			}
			if w > widths[c] {
				widths[c] = w
			}
		}
	}
	for c, w := range widths {
		if w < 1 {
			widths[c] = 1
		}
	}

	total := printWidth(indent) + 1
	for _, w := range widths {
		total += w + 3
	}
	if width > 0 && total > width {
		return nil, false
	}

	var out []string
	out = append(out, indent+border(widths, "┌", "┬", "┐"))
	out = append(out, indent+renderRow(cells[0], widths, aligns))
	out = append(out, indent+border(widths, "├", "┼", "┤"))
	for _, row := range cells[1:] {
		out = append(out, indent+renderRow(row, widths, aligns))
	}
	out = append(out, indent+border(widths, "└", "┴", "┘"))
	return out, true
}

// parseDelimiterRow matches cells of dashes with optional colons and
// maps them to alignments.
func parseDelimiterRow(row string) ([]cellAlign, bool) {
	cells := splitRow(row)
	if len(cells) == 0 {
		return nil, false
	}
	aligns := make([]cellAlign, 0, len(cells))
	for _, cell := range cells {
		c := strings.TrimSpace(cell)
		if c == "" {
			return nil, false
		}
		left := strings.HasPrefix(c, ":")
		right := strings.HasSuffix(c, ":")
		body := strings.TrimSuffix(strings.TrimPrefix(c, ":"), ":")
		if body == "" || strings.Count(body, "-") != len(body) {
			return nil, false
		}
		switch {
		case left && right:
			aligns = append(aligns, alignCenter)
		case right:
			aligns = append(aligns, alignRight)
		default:
			aligns = append(aligns, alignLeft)
		}
	}
	return aligns, true
}

// splitRow cuts a pipe row into trimmed cells, honoring backslash
// escapes. Escape sequences inside styled cells carry no pipes, so a
// byte scan is safe.
func splitRow(row string) []string {
	t := strings.TrimSpace(row)
	t = strings.TrimPrefix(t, "|")
	t = strings.TrimSuffix(t, "|")
	var cells []string
	var b strings.Builder
	for i := 0; i < len(t); i++ {
		switch t[i] {
		case '\\':
			b.WriteByte(t[i])
			if i+1 < len(t) {
				i++
				b.WriteByte(t[i])
			}
		case '|':
			cells = append(cells, strings.TrimSpace(b.String()))
			b.Reset()
		default:
			b.WriteByte(t[i])
		}
	}
	cells = append(cells, strings.TrimSpace(b.String()))
	return cells
}

func border(widths []int, left, mid, right string) string {
	var b strings.Builder
	b.WriteString(left)
	for i, w := range widths {
		if i > 0 {
			b.WriteString(mid)
		}
		b.WriteString(strings.Repeat("─", w+2))
	}
	b.WriteString(right)
	return b.String()
}

func renderRow(cells []string, widths []int, aligns []cellAlign) string {
	var b strings.Builder
	b.WriteString("│")
	for c, w := range widths {
		cell := ""
		if c < len(cells) {
			cell = cells[c]
		}
		pad := w - printWidth(cell)
		if pad < 0 {
			pad = 0
		}
		var leftPad, rightPad int
		switch aligns[c] {
		case alignRight:
			leftPad = pad
		case alignCenter:
			leftPad = pad / 2
			rightPad = pad - leftPad
		default:
			rightPad = pad
		}
		b.WriteString(" ")
		b.WriteString(strings.Repeat(" ", leftPad))
		b.WriteString(cell)
		b.WriteString(strings.Repeat(" ", rightPad))
		b.WriteString(" │")
	}
	return b.String()
}
