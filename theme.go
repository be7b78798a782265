package mdtint

import "sort"

// Theme provides the default color spec per label plus the base color
// substituted for ${base} in specs. Specs use the grammar documented
// in internal/colorspec.
type Theme interface {
	Name() string
	Base() string
	Labels() map[string]string
}

type theme struct {
	name   string
	base   string
	labels map[string]string
}

func (t theme) Name() string { return t.name }
func (t theme) Base() string { return t.base }

func (t theme) Labels() map[string]string {
	out := make(map[string]string, len(t.labels))
	for k, v := range t.labels {
		out[k] = v
	}
	return out
}

// NewTheme returns a Theme from a base color spec and a label spec
// map. The map is copied.
func NewTheme(name, base string, labels map[string]string) Theme {
	t := theme{name: name, base: base, labels: make(map[string]string, len(labels))}
	for k, v := range labels {
		t.labels[k] = v
	}
	return t
}

// accents is the handful of per-theme spec fragments the shared label
// layout is built from.
type accents struct {
	base    string
	code    string
	link    string
	url     string
	quote   string
	comment string
	image   string
}

func labelsFor(a accents) map[string]string {
	return map[string]string{
		"h1":         "bold underline ${base}",
		"h2":         "bold ${base}",
		"h3":         "${base}",
		"h4":         "italic ${base}",
		"h5":         "dim ${base}",
		"h6":         "dim italic ${base}",
		"bold":       "bold",
		"italic":     "italic",
		"strike":     "dim strike",
		"code":       a.code,
		"ticks":      "dim",
		"fence":      "dim",
		"lang":       "dim italic",
		"code_block": a.code,
		"comment":    a.comment,
		"image":      a.image,
		"link":       a.link,
		"url":        a.url,
		"rule":       "dim",
		"quote":      a.quote,
	}
}

func themeFor(name string, a accents) theme {
	return theme{name: name, base: a.base, labels: labelsFor(a)}
}

// monoTheme styles with attributes only, for terminals or users that
// want no color at all.
func monoTheme() theme {
	return theme{name: "mono", base: "bold", labels: map[string]string{
		"h1":         "bold underline",
		"h2":         "bold",
		"h3":         "underline",
		"h4":         "italic",
		"h5":         "dim",
		"h6":         "dim italic",
		"bold":       "bold",
		"italic":     "italic",
		"strike":     "strike",
		"code":       "bold",
		"ticks":      "dim",
		"fence":      "dim",
		"lang":       "dim",
		"code_block": "",
		"comment":    "dim",
		"image":      "underline",
		"link":       "underline",
		"url":        "dim",
		"rule":       "dim",
		"quote":      "dim",
	}}
}

var builtinThemes = map[string]theme{
	"dark": themeFor("dark", accents{
		base:    "bright_cyan",
		code:    "bright_yellow",
		link:    "underline bright_blue",
		url:     "dim cyan",
		quote:   "green",
		comment: "dim",
		image:   "magenta",
	}),
	"light": themeFor("light", accents{
		base:    "blue",
		code:    "red",
		link:    "underline blue",
		url:     "dim blue",
		quote:   "green",
		comment: "dim",
		image:   "magenta",
	}),
	"mono": monoTheme(),
	"gruvbox": themeFor("gruvbox", accents{
		base:    "#fe8019",
		code:    "#b8bb26",
		link:    "underline #83a598",
		url:     "dim #458588",
		quote:   "#8ec07c",
		comment: "#928374",
		image:   "#d3869b",
	}),
	"dracula": themeFor("dracula", accents{
		base:    "#bd93f9",
		code:    "#f1fa8c",
		link:    "underline #8be9fd",
		url:     "dim #6272a4",
		quote:   "#50fa7b",
		comment: "#6272a4",
		image:   "#ff79c6",
	}),
	"nord": themeFor("nord", accents{
		base:    "#88c0d0",
		code:    "#a3be8c",
		link:    "underline #81a1c1",
		url:     "dim #616e88",
		quote:   "#a3be8c",
		comment: "#616e88",
		image:   "#b48ead",
	}),
	"solarized-dark": themeFor("solarized-dark", accents{
		base:    "#268bd2",
		code:    "#2aa198",
		link:    "underline #268bd2",
		url:     "dim #586e75",
		quote:   "#859900",
		comment: "#586e75",
		image:   "#d33682",
	}),
	"solarized-light": themeFor("solarized-light", accents{
		base:    "#268bd2",
		code:    "#2aa198",
		link:    "underline #268bd2",
		url:     "dim #93a1a1",
		quote:   "#859900",
		comment: "#93a1a1",
		image:   "#d33682",
	}),
	"github-dark": themeFor("github-dark", accents{
		base:    "#58a6ff",
		code:    "#a5d6ff",
		link:    "underline #58a6ff",
		url:     "dim #8b949e",
		quote:   "#7ee787",
		comment: "#8b949e",
		image:   "#d2a8ff",
	}),
	"github-light": themeFor("github-light", accents{
		base:    "#0969da",
		code:    "#0a3069",
		link:    "underline #0969da",
		url:     "dim #57606a",
		quote:   "#1a7f37",
		comment: "#6e7781",
		image:   "#8250df",
	}),
}

// DefaultTheme returns the dark theme.
func DefaultTheme() Theme {
	return builtinThemes["dark"]
}

// ThemeByName looks up a built-in theme. The empty string resolves to
// the default theme.
func ThemeByName(name string) (Theme, bool) {
	if name == "" {
		return DefaultTheme(), true
	}
	t, ok := builtinThemes[name]
	if !ok {
		return nil, false
	}
	return t, true
}

// AvailableThemes lists the built-in theme names, sorted.
func AvailableThemes() []string {
	names := make([]string, 0, len(builtinThemes))
	for name := range builtinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Labels lists every label the construct matchers style, sorted.
func Labels() []string {
	labels := make([]string, 0, len(builtinThemes["dark"].labels))
	for label := range builtinThemes["dark"].labels {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
