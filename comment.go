package mdtint

import "strings"

// commentStep styles HTML comments, markers included, and protects
// each as a comment exclusion region. Comments may span lines. An
// opener immediately followed by -> is not a comment, and an
// unterminated opener is left literal.
func (r *run) commentStep() error {
	buf := r.buf
	var b strings.Builder
	b.Grow(len(buf))
	i := 0
	for {
		j := strings.Index(buf[i:], "<!--")
		if j < 0 {
			b.WriteString(buf[i:])
			break
		}
		j += i
		after := j + len("<!--")
		if strings.HasPrefix(buf[after:], "->") {
			b.WriteString(buf[i:after])
			i = after
			continue
		}
		end := strings.Index(buf[after:], "-->")
		if end < 0 {
			b.WriteString(buf[i:])
			break
		}
		end = after + end + len("-->")
		b.WriteString(buf[i:j])
		styled := r.apply("comment", buf[j:end])
		b.WriteString(r.ledger.protectRegion(styled, "comment"))
		i = end
	}
	r.buf = b.String()
	return nil
}
