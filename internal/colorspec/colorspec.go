// Package colorspec resolves label color specifications into ANSI
// styling functions.
//
// A spec is a whitespace-separated list of words: attribute names
// (bold, dim, italic, underline, blink, reverse, strike), color names
// (red, bright_cyan, ...), background forms with an on_ prefix
// (on_blue, on_bright_black), 256-color indexes (0..255), truecolor
// values (#rrggbb), and the word none which clears everything resolved
// so far. The token ${base} is substituted with the base color spec
// before compilation.
//
// Override specs may additionally start with + to append to the spec
// resolved so far instead of replacing it, and may carry one @name
// token attaching a post-styling text transform from the registry in
// transform.go.
package colorspec

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"pkt.systems/mdtint/internal/palette"
)

// Override replaces or extends the resolved spec for one label.
type Override struct {
	Label string
	Spec  string
}

// Visibility toggles one label, or every label when Label is "all".
type Visibility struct {
	Label string
	Show  bool
}

// Options collects everything Resolve needs for one run.
type Options struct {
	// Labels holds the theme's default spec per label.
	Labels map[string]string
	// Base is substituted for ${base} in every spec.
	Base string
	// Overrides apply in order after the theme defaults.
	Overrides []Override
	// Visibility entries apply in order after the overrides.
	Visibility []Visibility
}

type style struct {
	spec      string
	prefix    string
	transform transformFunc
	shown     bool
}

// Table is the resolved styling for one run. It is not safe for
// concurrent use; each run resolves its own.
type Table struct {
	styles   map[string]*style
	warnings []string
}

// Resolve builds a Table from theme defaults, ordered overrides and
// ordered visibility toggles. Unknown words and unknown transform
// names produce warnings, never errors.
func Resolve(opts Options) *Table {
	t := &Table{styles: make(map[string]*style, len(opts.Labels))}
	for label, spec := range opts.Labels {
		t.styles[label] = &style{spec: spec, shown: true}
	}
	for _, ov := range opts.Overrides {
		st := t.styles[ov.Label]
		if st == nil {
			st = &style{shown: true}
			t.styles[ov.Label] = st
		}
		t.applyOverride(ov.Label, st, ov.Spec)
	}
	for label, st := range t.styles {
		st.prefix = t.compile(label, substituteBase(st.spec, opts.Base))
	}
	for _, v := range opts.Visibility {
		if v.Label == "all" {
			for _, st := range t.styles {
				st.shown = v.Show
			}
			continue
		}
		st := t.styles[v.Label]
		if st == nil {
			st = &style{shown: true}
			t.styles[v.Label] = st
		}
		st.shown = v.Show
	}
	return t
}

// applyOverride folds one override spec into st, splitting off any
// @transform token first.
func (t *Table) applyOverride(label string, st *style, spec string) {
	spec = strings.TrimSpace(spec)
	extend := false
	if strings.HasPrefix(spec, "+") {
		extend = true
		spec = spec[1:]
	}
	var words []string
	for _, w := range strings.Fields(spec) {
		if !strings.HasPrefix(w, "@") {
			words = append(words, w)
			continue
		}
		name := w[1:]
		if name == "" {
			t.warn(fmt.Sprintf("empty transform name for label %q", label))
			continue
		}
		fn, ok := Transform(name)
		if !ok {
			t.warn(fmt.Sprintf("unknown transform %q for label %q", name, label))
			st.transform = nil
			continue
		}
		st.transform = fn
	}
	if extend {
		if len(words) > 0 {
			st.spec = strings.TrimSpace(st.spec + " " + strings.Join(words, " "))
		}
		return
	}
	st.spec = strings.Join(words, " ")
}

func substituteBase(spec, base string) string {
	if !strings.Contains(spec, "${base}") {
		return spec
	}
	return strings.ReplaceAll(spec, "${base}", base)
}

var attributes = map[string]string{
	"bold":      palette.Bold,
	"dim":       palette.Dim,
	"italic":    palette.Italic,
	"underline": palette.Underline,
	"blink":     palette.Blink,
	"reverse":   palette.Reverse,
	"strike":    palette.Strike,
}

// compile turns a resolved spec into a concatenated SGR prefix.
func (t *Table) compile(label, spec string) string {
	var b strings.Builder
	for _, w := range strings.Fields(spec) {
		switch {
		case w == "none":
			b.Reset()
		case attributes[w] != "":
			b.WriteString(attributes[w])
		default:
			if p, ok := compileColor(w); ok {
				b.WriteString(p)
				continue
			}
			t.warn(fmt.Sprintf("unknown color word %q for label %q", w, label))
		}
	}
	return b.String()
}

func compileColor(w string) (string, bool) {
	background := false
	if strings.HasPrefix(w, "on_") {
		background = true
		w = w[len("on_"):]
	}
	if strings.HasPrefix(w, "#") {
		if background {
			return palette.HexBackground(w)
		}
		return palette.Hex(w)
	}
	if n, err := strconv.Atoi(w); err == nil {
		if n < 0 || n > 255 {
			return "", false
		}
		if background {
			return palette.IndexedBackground(n), true
		}
		return palette.Indexed(n), true
	}
	if background {
		return palette.Background(w)
	}
	return palette.Foreground(w)
}

// Active reports whether label resolves to a non-empty, shown spec.
func (t *Table) Active(label string) bool {
	st := t.styles[label]
	return st != nil && st.shown && st.prefix != ""
}

// Apply styles text with the label's prefix. Inner resets are reopened
// so that already-styled content keeps the outer style running across
// it. Inactive labels return text unchanged.
func (t *Table) Apply(label, text string) string {
	st := t.styles[label]
	if st == nil || !st.shown || st.prefix == "" {
		return text
	}
	styled := applyPrefix(st.prefix, text)
	if st.transform != nil {
		out, err := st.transform(styled)
		if err != nil {
			t.warn(fmt.Sprintf("transform failed for label %q: %v", label, err))
			return styled
		}
		styled = out
	}
	return styled
}

func applyPrefix(prefix, text string) string {
	if strings.Contains(text, palette.Reset) {
		text = strings.ReplaceAll(text, palette.Reset, palette.Reset+prefix)
	}
	return prefix + text + palette.Reset
}

// Prefix exposes the compiled SGR prefix for a label. Empty for
// inactive or unknown labels.
func (t *Table) Prefix(label string) string {
	st := t.styles[label]
	if st == nil || !st.shown {
		return ""
	}
	return st.prefix
}

// Labels returns every known label, sorted.
func (t *Table) Labels() []string {
	out := make([]string, 0, len(t.styles))
	for label := range t.styles {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

// Warnings returns resolution and apply-time warnings in the order
// they were raised.
func (t *Table) Warnings() []string {
	return t.warnings
}

func (t *Table) warn(msg string) {
	t.warnings = append(t.warnings, msg)
}
