package mdtint

import "strings"

// The link family shares one bracket grammar: balanced square
// brackets with backslash escapes, where backtick spans shield
// brackets from matching, followed by a balanced parenthesized
// destination. Neither part crosses a line break.

// imageLinkStep protects links whose text is an image, nesting the
// protected image inside the protected link fragment.
func (r *run) imageLinkStep() error {
	r.buf = scanBuffer(r.buf, r.matchImageLink)
	return nil
}

// imageStep protects remaining standalone images.
func (r *run) imageStep() error {
	r.buf = scanBuffer(r.buf, r.matchImage)
	return nil
}

// linkStep protects remaining plain links.
func (r *run) linkStep() error {
	r.buf = scanBuffer(r.buf, r.matchLink)
	return nil
}

// scanBuffer walks buf byte-wise, skipping backslash escapes, and
// substitutes every match the matcher finds.
func scanBuffer(buf string, match func(string, int) (string, int, bool)) string {
	var b strings.Builder
	b.Grow(len(buf) + len(buf)/4)
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
		if rep, end, ok := match(buf, i); ok {
			b.WriteString(rep)
			i = end
			continue
		}
		b.WriteByte(buf[i])
		i++
	}
	return b.String()
}

func (r *run) matchImageLink(buf string, i int) (string, int, bool) {
	if buf[i] != '[' || !strings.HasPrefix(buf[i+1:], "![") {
		return "", 0, false
	}
	altEnd, ok := scanLinkText(buf, i+2)
	if !ok || altEnd >= len(buf) || buf[altEnd] != '(' {
		return "", 0, false
	}
	imgEnd, ok := scanLinkDest(buf, altEnd)
	if !ok || imgEnd+1 >= len(buf) || buf[imgEnd] != ']' || buf[imgEnd+1] != '(' {
		return "", 0, false
	}
	end, ok := scanLinkDest(buf, imgEnd+1)
	if !ok {
		return "", 0, false
	}
	alt := buf[i+3 : altEnd-1]
	imageURL := buf[altEnd+1 : imgEnd-1]
	linkURL := buf[imgEnd+2 : end-1]
	inner := r.ledger.protect(r.apply("image", "!["+alt+"]") + r.urlTail(imageURL))
	var frag string
	if r.cfg.Hyperlinks {
		frag = hyperlink(linkURL, inner)
	} else {
		frag = inner + r.urlTail(linkURL)
	}
	return r.ledger.protect(frag), end, true
}

func (r *run) matchImage(buf string, i int) (string, int, bool) {
	if buf[i] != '!' || i+1 >= len(buf) || buf[i+1] != '[' {
		return "", 0, false
	}
	altEnd, ok := scanLinkText(buf, i+1)
	if !ok || altEnd >= len(buf) || buf[altEnd] != '(' {
		return "", 0, false
	}
	end, ok := scanLinkDest(buf, altEnd)
	if !ok {
		return "", 0, false
	}
	alt := buf[i+2 : altEnd-1]
	url := buf[altEnd+1 : end-1]
	styled := r.apply("image", "!["+alt+"]") + r.urlTail(url)
	return r.ledger.protect(styled), end, true
}

func (r *run) matchLink(buf string, i int) (string, int, bool) {
	if buf[i] != '[' {
		return "", 0, false
	}
	if i > 0 && buf[i-1] == '!' {
		return "", 0, false
	}
	textEnd, ok := scanLinkText(buf, i)
	if !ok || textEnd >= len(buf) || buf[textEnd] != '(' {
		return "", 0, false
	}
	end, ok := scanLinkDest(buf, textEnd)
	if !ok {
		return "", 0, false
	}
	text := buf[i+1 : textEnd-1]
	url := buf[textEnd+1 : end-1]
	var frag string
	if r.cfg.Hyperlinks {
		frag = hyperlink(url, r.apply("link", text))
	} else {
		frag = r.apply("link", text) + r.urlTail(url)
	}
	return r.ledger.protect(frag), end, true
}

// urlTail renders the parenthesized URL shown after link text when
// hyperlinks are off, and after images always.
func (r *run) urlTail(url string) string {
	return " " + r.apply("url", "("+url+")")
}

// scanLinkText returns the index just past the ] matching the [ at
// s[i].
func scanLinkText(s string, i int) (int, bool) {
	depth := 0
	for i < len(s) {
		switch s[i] {
		case '\\':
			i += 2
			continue
		case '\n':
			return 0, false
		case '`':
			n := runLen(s, i, '`')
			if end, ok := skipCodeSpan(s, i, n); ok {
				i = end
				continue
			}
			i += n
			continue
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
		i++
	}
	return 0, false
}

// scanLinkDest returns the index just past the ) matching the ( at
// s[i].
func scanLinkDest(s string, i int) (int, bool) {
	depth := 0
	for i < len(s) {
		switch s[i] {
		case '\\':
			i += 2
			continue
		case '\n':
			return 0, false
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
		i++
	}
	return 0, false
}

// skipCodeSpan returns the index just past a backtick span opened by a
// run of n backticks at s[i]. The closing run must be exactly n long
// and on the same line.
func skipCodeSpan(s string, i, n int) (int, bool) {
	for j := i + n; j < len(s); {
		switch s[j] {
		case '\n':
			return 0, false
		case '`':
			m := runLen(s, j, '`')
			if m == n {
				return j + m, true
			}
			j += m
		default:
			j++
		}
	}
	return 0, false
}

// runLen counts the repeat run of c starting at s[i].
func runLen(s string, i int, c byte) int {
	n := 0
	for i+n < len(s) && s[i+n] == c {
		n++
	}
	return n
}
