package mdtint

import (
	"errors"
	"fmt"
	"strings"
)

// ErrLedgerCorrupt reports a placeholder token in the working buffer
// that does not resolve to a stored fragment. Restoration aborts
// rather than emit output with text missing.
var ErrLedgerCorrupt = errors.New("region ledger corrupt")

// Placeholder tokens fence a fixed-width decimal index between two
// Unicode private-use runes. The runes never occur in real input that
// survives validation, the fixed width keeps every token the same
// length, and none of the bytes involved collide with the construct
// matchers (a token is never adjacent-equal to a backslash, backtick
// or emphasis marker).
const (
	placeholderOpen  = ''
	placeholderClose = ''
	placeholderLen   = 6
)

type fragment struct {
	text string
	// region names an exclusion region for post-processing, or is
	// empty for plain protected spans.
	region string
}

// Region is a named line range in restored output that later passes
// must leave untouched. Lines are zero-based, EndLine exclusive.
type Region struct {
	Name      string
	StartLine int
	EndLine   int
}

// regionLedger stores protected fragments for one run and swaps them
// back in at the end. Fragments may contain tokens of earlier
// fragments; restore expands them recursively.
type regionLedger struct {
	frags []fragment
}

func newRegionLedger() *regionLedger {
	return &regionLedger{}
}

// protect stores text and returns its placeholder token.
func (l *regionLedger) protect(text string) string {
	return l.protectRegion(text, "")
}

// protectRegion stores text under a region name that restore reports
// as an exclusion region.
func (l *regionLedger) protectRegion(text, region string) string {
	idx := len(l.frags)
	l.frags = append(l.frags, fragment{text: text, region: region})
	return fmt.Sprintf("%c%0*d%c", placeholderOpen, placeholderLen, idx, placeholderClose)
}

// restore expands every placeholder token in buf, recursively, and
// reports the named exclusion regions as line ranges in the output.
func (l *regionLedger) restore(buf string) (string, []Region, error) {
	if !strings.ContainsRune(buf, placeholderOpen) {
		return buf, nil, nil
	}
	var b strings.Builder
	b.Grow(len(buf) * 2)
	line := 0
	var regions []Region
	if err := l.expand(buf, &b, &line, &regions, 0); err != nil {
		return "", nil, err
	}
	return b.String(), regions, nil
}

func (l *regionLedger) expand(s string, b *strings.Builder, line *int, regions *[]Region, depth int) error {
	if depth > len(l.frags) {
		return fmt.Errorf("%w: expansion depth exceeds stored fragments", ErrLedgerCorrupt)
	}
	for {
		i := strings.IndexRune(s, placeholderOpen)
		if i < 0 {
			b.WriteString(s)
			*line += strings.Count(s, "\n")
			return nil
		}
		b.WriteString(s[:i])
		*line += strings.Count(s[:i], "\n")
		frag, rest, err := l.lookup(s[i:])
		if err != nil {
			return err
		}
		start := *line
		if err := l.expand(frag.text, b, line, regions, depth+1); err != nil {
			return err
		}
		if frag.region != "" {
			*regions = append(*regions, Region{Name: frag.region, StartLine: start, EndLine: *line + 1})
		}
		s = rest
	}
}

// tokenBytes is the fixed byte length of a placeholder token: two
// 3-byte private-use runes around placeholderLen ASCII digits.
const tokenBytes = 3 + placeholderLen + 3

// lookup parses the token at the head of s and returns its fragment
// and the remainder of s.
func (l *regionLedger) lookup(s string) (fragment, string, error) {
	if len(s) < tokenBytes || s[tokenBytes-3:tokenBytes] != string(placeholderClose) {
		return fragment{}, "", fmt.Errorf("%w: malformed placeholder token", ErrLedgerCorrupt)
	}
	idx := 0
	for i := 3; i < 3+placeholderLen; i++ {
		d := s[i]
		if d < '0' || d > '9' {
			return fragment{}, "", fmt.Errorf("%w: malformed placeholder token", ErrLedgerCorrupt)
		}
		idx = idx*10 + int(d-'0')
	}
	if idx >= len(l.frags) {
		return fragment{}, "", fmt.Errorf("%w: unknown fragment index %d", ErrLedgerCorrupt, idx)
	}
	return l.frags[idx], s[tokenBytes:], nil
}

// expandAll replaces tokens in s with their stored text until none
// remain. Stored fragments are kept; callers re-protect the expanded
// text when they are done with it.
func (l *regionLedger) expandAll(s string) (string, error) {
	for round := 0; strings.ContainsRune(s, placeholderOpen); round++ {
		if round > len(l.frags) {
			return "", fmt.Errorf("%w: expansion does not terminate", ErrLedgerCorrupt)
		}
		var b strings.Builder
		b.Grow(len(s) * 2)
		rest := s
		for {
			i := strings.IndexRune(rest, placeholderOpen)
			if i < 0 {
				b.WriteString(rest)
				break
			}
			b.WriteString(rest[:i])
			frag, tail, err := l.lookup(rest[i:])
			if err != nil {
				return "", err
			}
			b.WriteString(frag.text)
			rest = tail
		}
		s = b.String()
	}
	return s, nil
}
