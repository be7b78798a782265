package mdtint

import (
	"fmt"
	"strings"
)

// step is one pass over the working buffer. Steps with a label only
// run while that label is active; protection steps carry no label and
// always run so that exclusion guarantees hold regardless of styling.
type step struct {
	name  string
	label string
	fn    func(*run) error
}

// steps assembles the pipeline for this run. Protection steps come
// first in fixed order. The inline group runs after the heading step
// unless heading markup moves some or all of it before. The
// blockquote step always runs last so it sees every line the other
// steps produced.
func (r *run) steps() []step {
	protect := []step{
		{name: "front_matter", fn: (*run).frontMatterStep},
		{name: "fence", fn: (*run).fenceStep},
		{name: "comment", fn: (*run).commentStep},
		{name: "image_link", fn: (*run).imageLinkStep},
		{name: "image", fn: (*run).imageStep},
		{name: "link", fn: (*run).linkStep},
	}
	inline := []step{
		{name: "code", fn: (*run).codeSpanStep},
		{name: "rule", label: "rule", fn: (*run).ruleStep},
		{name: "bold", label: "bold", fn: (*run).boldStep},
		{name: "italic", label: "italic", fn: (*run).italicStep},
		{name: "strike", label: "strike", fn: (*run).strikeStep},
	}
	early, late := r.splitInline(inline)

	out := make([]step, 0, len(protect)+len(inline)+2)
	out = append(out, protect...)
	out = append(out, early...)
	out = append(out, step{name: "heading", fn: (*run).headingStep})
	out = append(out, late...)
	out = append(out, step{name: "quote", label: "quote", fn: (*run).quoteStep})
	return out
}

// splitInline partitions the inline group around the heading step
// according to Config.HeadingMarkup. Canonical order is preserved on
// both sides.
func (r *run) splitInline(inline []step) (early, late []step) {
	mode := strings.TrimSpace(r.cfg.HeadingMarkup)
	switch mode {
	case "", "off":
		return nil, inline
	case "all", "on":
		return inline, nil
	}
	want := make(map[string]bool)
	for _, name := range strings.Split(mode, ":") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		known := false
		for _, st := range inline {
			if st.name == name {
				known = true
				break
			}
		}
		if !known {
			r.warn(fmt.Sprintf("unknown heading markup step %q", name))
			continue
		}
		want[name] = true
	}
	for _, st := range inline {
		if want[st.name] {
			early = append(early, st)
		} else {
			late = append(late, st)
		}
	}
	return early, late
}
