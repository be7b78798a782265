package mdtint

import (
	"fmt"
	"strings"
)

// Front matter is a leading ---, +++ or ;;; line whose following line
// looks like metadata, closed by the same delimiter. Mode keep
// annotates the block like regular markdown, dim styles every line
// comment-colored and protects the block as a front_matter region,
// strip removes the block entirely. An unclosed or unlikely block is
// regular markdown.

func (r *run) frontMatterStep() error {
	mode := r.cfg.FrontMatter
	switch mode {
	case "", "dim":
		mode = "dim"
	case "keep", "strip":
	default:
		r.warn(fmt.Sprintf("unknown front matter mode %q; keeping block", r.cfg.FrontMatter))
		return nil
	}
	if mode == "keep" {
		return nil
	}
	block, rest, ok := splitFrontMatter(r.buf)
	if !ok {
		return nil
	}
	if mode == "strip" {
		r.buf = rest
		return nil
	}
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		if line == "" {
			continue
		}
		lines[i] = r.apply("comment", line)
	}
	token := r.ledger.protectRegion(strings.Join(lines, "\n"), "front_matter")
	if rest == "" {
		r.buf = token
	} else {
		r.buf = token + "\n" + rest
	}
	return nil
}

// splitFrontMatter returns the block (delimiters included, no
// trailing newline) and the remainder after the block's newline.
func splitFrontMatter(buf string) (block, rest string, ok bool) {
	first, after, more := cutLine(buf)
	delim, isDelim := frontMatterDelim(strings.TrimPrefix(first, "\ufeff"))
	if !isDelim || !more {
		return "", "", false
	}
	second, _, _ := cutLine(after)
	if !metadataLikely(second) {
		return "", "", false
	}
	search := after
	for {
		line, next, lineEnds := cutLine(search)
		if strings.TrimSpace(line) == delim {
			end := len(buf) - len(next)
			return strings.TrimSuffix(buf[:end], "\n"), buf[end:], true
		}
		if !lineEnds {
			return "", "", false
		}
		search = next
	}
}

// cutLine splits off the first line. rest follows the newline;
// hasMore is false when s held no newline.
func cutLine(s string) (line, rest string, hasMore bool) {
	i := strings.IndexByte(s, '\n')
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+1:], true
}

func frontMatterDelim(line string) (string, bool) {
	switch strings.TrimSpace(line) {
	case "---":
		return "---", true
	case "+++":
		return "+++", true
	case ";;;":
		return ";;;", true
	}
	return "", false
}

// metadataLikely guards against eating a thematic break at the top of
// a plain document: the line after the opener must smell like
// metadata.
func metadataLikely(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return true
	}
	return strings.ContainsAny(trimmed, ":=")
}
