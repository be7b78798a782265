// Package config loads mdtint configuration files and parses the
// override key syntax shared by the config file and the command line.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"pkt.systems/mdtint"
)

// ErrNotFound reports a missing configuration file.
var ErrNotFound = errors.New("config file not found")

// MaxFileSize bounds how much configuration Load will read.
const MaxFileSize = 1 << 20

// File is the on-disk configuration. Every field is optional;
// command-line flags override whatever is set here. Colors and show
// entries use the same label=value syntax as the flags and keep their
// file order.
type File struct {
	Theme         string   `yaml:"theme"`
	Base          string   `yaml:"base"`
	Colors        []string `yaml:"colors"`
	Show          []string `yaml:"show"`
	Hashed        string   `yaml:"hashed"`
	HeadingMarkup string   `yaml:"heading_markup"`
	Hyperlinks    string   `yaml:"hyperlinks"`
	ColorMode     string   `yaml:"color"`
	Width         int      `yaml:"width"`
	Tables        *bool    `yaml:"tables"`
	Fold          *bool    `yaml:"fold"`
	Highlight     *bool    `yaml:"highlight"`
	ChromaStyle   string   `yaml:"chroma_style"`
	FrontMatter   string   `yaml:"front_matter"`
}

// Load reads and strictly parses the file at path. Unknown keys are
// errors so typos do not silently disable settings.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, fmt.Errorf("config: %w: %s", ErrNotFound, path)
		}
		return File{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if len(data) > MaxFileSize {
		return File{}, fmt.Errorf("config: %s exceeds %d bytes", path, MaxFileSize)
	}
	var f File
	if err := yaml.UnmarshalWithOptions(data, &f, yaml.Strict()); err != nil {
		return File{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return f, nil
}

// DefaultPath returns the per-user config location, or "" when no
// user config directory is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "mdtint", "config.yaml")
}

// Config converts the file's annotation settings into an annotation
// config. Presentation settings (hyperlinks, color mode, width,
// tables, fold) stay on File for the caller to resolve.
func (f File) Config() (mdtint.Config, error) {
	cfg := mdtint.Config{
		Theme:         f.Theme,
		Base:          f.Base,
		HeadingMarkup: f.HeadingMarkup,
		ChromaStyle:   f.ChromaStyle,
		FrontMatter:   f.FrontMatter,
	}
	if f.Highlight != nil {
		cfg.Highlight = *f.Highlight
	}
	for _, arg := range f.Colors {
		c, err := ParseColor(arg)
		if err != nil {
			return mdtint.Config{}, err
		}
		cfg.Colors = append(cfg.Colors, c)
	}
	for _, arg := range f.Show {
		s, err := ParseShow(arg)
		if err != nil {
			return mdtint.Config{}, err
		}
		cfg.Show = append(cfg.Show, s)
	}
	hashed, err := ParseHashed(f.Hashed)
	if err != nil {
		return mdtint.Config{}, err
	}
	cfg.Hashed = hashed
	return cfg, nil
}

// ParseColor parses one label=spec override.
func ParseColor(arg string) (mdtint.LabelColor, error) {
	label, spec, ok := strings.Cut(arg, "=")
	label = strings.TrimSpace(label)
	if !ok || label == "" {
		return mdtint.LabelColor{}, fmt.Errorf("config: color override %q: want label=spec", arg)
	}
	return mdtint.LabelColor{Label: label, Spec: strings.TrimSpace(spec)}, nil
}

// ParseShow parses label, label=0|1, all or all=0|1.
func ParseShow(arg string) (mdtint.LabelShow, error) {
	label, val, has := strings.Cut(arg, "=")
	label = strings.TrimSpace(label)
	if label == "" {
		return mdtint.LabelShow{}, fmt.Errorf("config: show toggle %q: want label[=0|1]", arg)
	}
	show := true
	if has {
		switch strings.TrimSpace(val) {
		case "1", "true", "on", "yes":
		case "0", "false", "off", "no":
			show = false
		default:
			return mdtint.LabelShow{}, fmt.Errorf("config: show toggle %q: value must be 0 or 1", arg)
		}
	}
	return mdtint.LabelShow{Label: label, Show: show}, nil
}

// ParseHashed parses a comma-separated list of heading levels, or
// the word all.
func ParseHashed(arg string) (mdtint.HeadingHashes, error) {
	var h mdtint.HeadingHashes
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return h, nil
	}
	if arg == "all" {
		for i := range h {
			h[i] = true
		}
		return h, nil
	}
	for _, part := range strings.Split(arg, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 || n > 6 {
			return mdtint.HeadingHashes{}, fmt.Errorf("config: hashed level %q: want 1..6 or all", part)
		}
		h[n-1] = true
	}
	return h, nil
}

// ParseTriState normalizes auto|on|off style values.
func ParseTriState(name, arg string) (string, error) {
	switch strings.TrimSpace(arg) {
	case "", "auto":
		return "auto", nil
	case "on", "1", "true", "always":
		return "on", nil
	case "off", "0", "false", "never":
		return "off", nil
	}
	return "", fmt.Errorf("config: %s %q: want auto, on or off", name, arg)
}
