package mdtint

import (
	"errors"
	"fmt"
	"strings"

	"pkt.systems/mdtint/internal/colorspec"
)

// ErrUnknownTheme reports a theme name with no registered theme.
var ErrUnknownTheme = errors.New("unknown theme")

// ErrReservedInput reports input that already contains the private-use
// runes the region ledger reserves for placeholder tokens.
var ErrReservedInput = errors.New("input contains reserved placeholder characters")

// LabelColor overrides the color spec of one label. An empty label
// list leaves the theme defaults in place. Specs follow the grammar in
// internal/colorspec; a leading + appends to the resolved spec and an
// @name token attaches a post-styling transform.
type LabelColor struct {
	Label string
	Spec  string
}

// LabelShow toggles styling for one label, or for every label when
// Label is "all". Entries apply in order, so a later toggle wins.
type LabelShow struct {
	Label string
	Show  bool
}

// HeadingHashes selects heading levels that get a trailing hash run
// appended. Index 0 is h1.
type HeadingHashes [6]bool

// Config controls one annotation run. The zero value annotates with
// the default theme, hyperlinks off and syntax highlighting off.
type Config struct {
	// Theme names a built-in theme; empty selects the default.
	Theme string
	// Base overrides the theme's ${base} color spec.
	Base string
	// Colors apply in order after the theme defaults.
	Colors []LabelColor
	// Show toggles label visibility, in order.
	Show []LabelShow
	// Hashed appends trailing hash runs to the selected heading
	// levels.
	Hashed HeadingHashes
	// HeadingMarkup moves inline steps before the heading step:
	// "" or "off" keeps them after, "all" or "on" moves all five,
	// and a colon-separated list of step names (code, rule, bold,
	// italic, strike) moves just those.
	HeadingMarkup string
	// Hyperlinks emits OSC 8 hyperlinks for links instead of
	// appending the URL in parentheses.
	Hyperlinks bool
	// Highlight tokenizes fenced code bodies with a syntax
	// highlighter when the fence names a known language.
	Highlight bool
	// ChromaStyle names the highlighter style; empty uses the
	// fallback.
	ChromaStyle string
	// FrontMatter handles a leading metadata block: "dim" (the
	// default) styles it like a comment and protects it, "strip"
	// removes it, "keep" annotates it like any other text.
	FrontMatter string
}

// Request is the input to Annotate.
type Request struct {
	Source string
	Config Config
}

// Result carries the annotated text, the exclusion regions
// post-processing passes must skip, and any warnings raised during
// the run.
type Result struct {
	Text     string
	Regions  []Region
	Warnings []string
}

// Annotate runs the construct pipeline over req.Source and returns the
// restored, escape-annotated text. The input is never reflowed or
// reordered; only escape sequences are inserted (and heading hash runs
// appended where configured).
func Annotate(req Request) (Result, error) {
	thm, ok := ThemeByName(req.Config.Theme)
	if !ok {
		return Result{}, fmt.Errorf("annotate: %w: %q", ErrUnknownTheme, req.Config.Theme)
	}
	if strings.ContainsRune(req.Source, placeholderOpen) || strings.ContainsRune(req.Source, placeholderClose) {
		return Result{}, fmt.Errorf("annotate: %w", ErrReservedInput)
	}
	r := newRun(req.Source, req.Config, thm)
	for _, st := range r.steps() {
		if st.label != "" && !r.labels.Active(st.label) {
			continue
		}
		if err := st.fn(r); err != nil {
			return Result{}, fmt.Errorf("annotate: %w", err)
		}
	}
	text, regions, err := r.ledger.restore(r.buf)
	if err != nil {
		return Result{}, fmt.Errorf("annotate: %w", err)
	}
	warnings := append([]string(nil), r.labels.Warnings()...)
	warnings = append(warnings, r.warnings...)
	return Result{Text: text, Regions: regions, Warnings: warnings}, nil
}

// run carries the mutable state of one annotation pass. Nothing here
// outlives the call, so concurrent Annotate calls never share state.
type run struct {
	buf      string
	cfg      Config
	ledger   *regionLedger
	labels   *colorspec.Table
	warnings []string
}

func newRun(src string, cfg Config, thm Theme) *run {
	base := thm.Base()
	if cfg.Base != "" {
		base = cfg.Base
	}
	overrides := make([]colorspec.Override, 0, len(cfg.Colors))
	for _, c := range cfg.Colors {
		overrides = append(overrides, colorspec.Override{Label: c.Label, Spec: c.Spec})
	}
	visibility := make([]colorspec.Visibility, 0, len(cfg.Show))
	for _, s := range cfg.Show {
		visibility = append(visibility, colorspec.Visibility{Label: s.Label, Show: s.Show})
	}
	return &run{
		buf:    normalizeNewlines(src),
		cfg:    cfg,
		ledger: newRegionLedger(),
		labels: colorspec.Resolve(colorspec.Options{
			Labels:     thm.Labels(),
			Base:       base,
			Overrides:  overrides,
			Visibility: visibility,
		}),
	}
}

func normalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func (r *run) apply(label, text string) string {
	return r.labels.Apply(label, text)
}

func (r *run) warn(msg string) {
	r.warnings = append(r.warnings, msg)
}
