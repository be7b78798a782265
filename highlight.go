package mdtint

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// highlightCode tokenizes src as lang and renders 256-color escapes.
// Returns false when the language is unknown or tokenizing fails; the
// caller then falls back to flat code_block styling.
func highlightCode(src, lang, styleName string) (string, bool) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", false
	}
	lexer = chroma.Coalesce(lexer)
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}
	iterator, err := lexer.Tokenise(nil, src)
	if err != nil {
		return "", false
	}
	var b strings.Builder
	b.Grow(len(src) * 2)
	if err := formatter.Format(&b, style, iterator); err != nil {
		return "", false
	}
	out := b.String()
	if !strings.HasSuffix(src, "\n") {
		out = strings.TrimSuffix(out, "\n")
	}
	return out, true
}
