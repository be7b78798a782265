package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/mdtint"
	"pkt.systems/mdtint/internal/config"
	"pkt.systems/version"
)

const (
	defaultWidth    = 80
	watchDebounce   = 100 * time.Millisecond
	clearScreenSeq  = "\x1b[2J\x1b[H"
	defaultTriState = "auto"
)

func init() {
	version.SetDefaultModule("pkt.systems/mdtint")
}

func main() {
	var (
		themeName     string
		baseSpec      string
		colorFlags    []string
		showFlags     []string
		hashedFlag    string
		headingMarkup string
		linksFlag     string
		colorFlag     string
		widthFlag     int
		tablesFlag    bool
		foldFlag      bool
		highlightFlag bool
		chromaStyle   string
		frontMatter   string
		configPath    string
		listThemes    bool
		listLabels    bool
		outPath       string
		watchFlag     bool
	)

	flags := pflag.NewFlagSet("mdtint", pflag.ExitOnError)
	flags.StringVarP(&themeName, "theme", "t", "", "Theme name (see --list-themes; default dark)")
	flags.StringVar(&baseSpec, "base", "", "Base color spec, replaces the theme's ${base}")
	flags.StringArrayVarP(&colorFlags, "color", "c", nil, "Label color override as label=spec (repeatable)")
	flags.StringArrayVarP(&showFlags, "show", "s", nil, "Label visibility as label[=0|1] (repeatable, \"all\" allowed)")
	flags.StringVar(&hashedFlag, "hashed", "", "Heading levels to suffix with their hash run: all or e.g. 1,2")
	flags.StringVar(&headingMarkup, "heading-markup", "", "Inline styling inside headings: off|all|name:name...")
	flags.StringVarP(&linksFlag, "hyperlinks", "8", defaultTriState, "OSC 8 hyperlinks: auto|on|off")
	flags.StringVar(&colorFlag, "color-mode", defaultTriState, "Color output: auto|on|off")
	flags.IntVarP(&widthFlag, "width", "w", 0, "Output width override (0 uses terminal width if available)")
	flags.BoolVar(&tablesFlag, "tables", true, "Reformat Markdown tables with box-drawing borders")
	flags.BoolVar(&foldFlag, "fold", true, "Fold long list lines with a hanging indent")
	flags.BoolVar(&highlightFlag, "highlight", true, "Syntax-highlight fenced code blocks")
	flags.StringVar(&chromaStyle, "chroma-style", "", "Highlight style name for fenced code")
	flags.StringVar(&frontMatter, "front-matter", "", "Front matter handling: dim|keep|strip")
	flags.StringVar(&configPath, "config", "", "Config file path (default per-user config)")
	flags.BoolVar(&listThemes, "list-themes", false, "List available themes")
	flags.BoolVar(&listLabels, "list-labels", false, "List styleable labels")
	flags.StringVarP(&outPath, "output", "o", "", "Output file instead of stdout")
	flags.BoolVar(&watchFlag, "watch", false, "Re-render whenever the input files change")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintf(os.Stderr, "Usage: mdtint [flags] [inputs...]\n")
		fmt.Fprintln(os.Stderr, "\nInputs are files, - for stdin, or http(s)/file URLs, concatenated in order.")
		fmt.Fprintln(os.Stderr, "If no input is provided, Markdown is read from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	if listThemes {
		printList(mdtint.AvailableThemes())
		return
	}
	if listLabels {
		printList(mdtint.Labels())
		return
	}

	file, err := loadConfigFile(configPath, flags.Changed("config"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	cfg, err := file.Config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if flags.Changed("theme") {
		cfg.Theme = themeName
	}
	if flags.Changed("base") {
		cfg.Base = baseSpec
	}
	if flags.Changed("heading-markup") {
		cfg.HeadingMarkup = headingMarkup
	}
	if flags.Changed("chroma-style") {
		cfg.ChromaStyle = chromaStyle
	}
	if flags.Changed("front-matter") {
		cfg.FrontMatter = frontMatter
	}
	if flags.Changed("hashed") {
		hashed, err := config.ParseHashed(hashedFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(2)
		}
		cfg.Hashed = hashed
	}
	for _, arg := range colorFlags {
		c, err := config.ParseColor(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(2)
		}
		cfg.Colors = append(cfg.Colors, c)
	}
	for _, arg := range showFlags {
		s, err := config.ParseShow(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(2)
		}
		cfg.Show = append(cfg.Show, s)
	}
	cfg.Highlight = highlightFlag
	if !flags.Changed("highlight") && file.Highlight != nil {
		cfg.Highlight = *file.Highlight
	}

	tables := tablesFlag
	if !flags.Changed("tables") && file.Tables != nil {
		tables = *file.Tables
	}
	fold := foldFlag
	if !flags.Changed("fold") && file.Fold != nil {
		fold = *file.Fold
	}
	width := widthFlag
	if !flags.Changed("width") && file.Width > 0 {
		width = file.Width
	}
	width = resolveWidth(width)

	linksMode := linksFlag
	if !flags.Changed("hyperlinks") && file.Hyperlinks != "" {
		linksMode = file.Hyperlinks
	}
	linksMode, err = config.ParseTriState("hyperlinks", linksMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	colorMode := colorFlag
	if !flags.Changed("color-mode") && file.ColorMode != "" {
		colorMode = file.ColorMode
	}
	colorMode, err = config.ParseTriState("color-mode", colorMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}
	if !resolveColor(colorMode, os.Stdout) {
		cfg.Show = append(cfg.Show, mdtint.LabelShow{Label: "all", Show: false})
		cfg.Hyperlinks = false
	} else {
		switch linksMode {
		case "on":
			cfg.Hyperlinks = true
		case "off":
			cfg.Hyperlinks = false
		default:
			cfg.Hyperlinks = mdtint.DetectHyperlinkSupport()
		}
	}

	args := flags.Args()
	warn := func(msg string) {
		fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
	}

	if watchFlag {
		if err := watchAndRender(args, outPath, cfg, width, tables, fold, warn); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := renderOnce(args, outPath, cfg, width, tables, fold, warn); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func renderOnce(args []string, outPath string, cfg mdtint.Config, width int, tables, fold bool, warn func(string)) error {
	reader, closer, err := openInputs(args)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	writer, closeOut, err := resolveOutput(outPath)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	return mdtint.Render(mdtint.RenderRequest{
		Reader: reader,
		Writer: writer,
		Width:  width,
		Config: cfg,
		Options: []mdtint.RenderOption{
			mdtint.WithTables(tables),
			mdtint.WithFolding(fold),
			mdtint.WithWarningSink(warn),
		},
	})
}

// watchAndRender renders once, then re-renders whenever one of the
// input files changes. Only local file inputs can be watched.
func watchAndRender(args []string, outPath string, cfg mdtint.Config, width int, tables, fold bool, warn func(string)) error {
	if len(args) == 0 {
		return errors.New("watch: no input files (stdin cannot be watched)")
	}
	watched := make(map[string]bool, len(args))
	dirs := make(map[string]bool)
	for _, raw := range args {
		if raw == "-" {
			return errors.New("watch: stdin cannot be watched")
		}
		if u, err := url.Parse(raw); err == nil && u.Scheme != "" && u.Scheme != "file" {
			return fmt.Errorf("watch: %s: only local files can be watched", raw)
		}
		path := normalizePath(filePathOf(raw))
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("watch: %w", err)
		}
		watched[path] = true
		dirs[filepath.Dir(path)] = true
	}

	render := func() {
		if outPath == "" && term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Print(clearScreenSeq)
		}
		if err := renderOnce(args, outPath, cfg, width, tables, fold, warn); err != nil {
			fmt.Fprintf(os.Stderr, "render: %v\n", err)
		}
	}
	render()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watching the directory survives editors that replace the file
	// instead of writing it in place.
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	var pending *time.Timer
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[normalizePath(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(watchDebounce, render)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			warn(fmt.Sprintf("watch: %v", err))
		}
	}
}

// filePathOf strips a file:// scheme, leaving other args untouched.
func filePathOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "file" {
		return raw
	}
	path := u.Path
	if path == "" {
		path = u.Host
	}
	if unescaped, err := url.PathUnescape(path); err == nil {
		path = unescaped
	}
	return path
}

func loadConfigFile(path string, explicit bool) (config.File, error) {
	if !explicit {
		path = config.DefaultPath()
		if path == "" {
			return config.File{}, nil
		}
	}
	file, err := config.Load(normalizePath(path))
	if err != nil {
		if !explicit && errors.Is(err, config.ErrNotFound) {
			return config.File{}, nil
		}
		return config.File{}, err
	}
	return file, nil
}

func printList(names []string) {
	for _, name := range names {
		fmt.Fprintln(os.Stdout, name)
	}
}

func resolveWidth(width int) int {
	if width > 0 {
		return width
	}
	return terminalWidth(defaultWidth)
}

func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconvAtoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

// resolveColor decides whether escape sequences go to the writer.
// Auto mode honors NO_COLOR and CLICOLOR, colors terminals unless
// TERM says otherwise, and keeps pipes plain unless CLICOLOR_FORCE
// insists.
func resolveColor(mode string, out *os.File) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	}
	if termenv.EnvNoColor() {
		return false
	}
	if term.IsTerminal(int(out.Fd())) {
		return termenv.ColorProfile() != termenv.Ascii
	}
	force := os.Getenv("CLICOLOR_FORCE")
	return force != "" && force != "0"
}

type inputSource struct {
	open func() (io.Reader, io.Closer, error)
}

type multiInputReader struct {
	sources   []inputSource
	idx       int
	cur       io.Reader
	curCloser io.Closer
	closed    bool
}

func (m *multiInputReader) Read(p []byte) (int, error) {
	for {
		if m.closed {
			return 0, io.EOF
		}
		if m.cur == nil {
			if m.idx >= len(m.sources) {
				m.closed = true
				return 0, io.EOF
			}
			reader, closer, err := m.sources[m.idx].open()
			if err != nil {
				return 0, err
			}
			m.cur = reader
			m.curCloser = closer
			m.idx++
		}
		n, err := m.cur.Read(p)
		if n > 0 {
			return n, nil
		}
		if err == io.EOF {
			if m.curCloser != nil {
				_ = m.curCloser.Close()
			}
			m.cur = nil
			m.curCloser = nil
			continue
		}
		if err != nil {
			return 0, err
		}
	}
}

func (m *multiInputReader) Close() error {
	m.closed = true
	if m.curCloser != nil {
		return m.curCloser.Close()
	}
	return nil
}

func openInputs(args []string) (io.Reader, io.Closer, error) {
	if len(args) == 0 {
		return os.Stdin, nil, nil
	}
	sources := make([]inputSource, 0, len(args))
	for _, raw := range args {
		src, err := makeInputSource(raw)
		if err != nil {
			return nil, nil, err
		}
		sources = append(sources, src)
	}
	return &multiInputReader{sources: sources}, nil, nil
}

func makeInputSource(raw string) (inputSource, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return inputSource{}, fmt.Errorf("empty input argument")
	}
	if raw == "-" {
		return inputSource{open: func() (io.Reader, io.Closer, error) {
			return os.Stdin, nil, nil
		}}, nil
	}
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openURL(raw)
			}}, nil
		case "file":
			path := filePathOf(raw)
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openFile(path)
			}}, nil
		}
	}
	return inputSource{open: func() (io.Reader, io.Closer, error) {
		return openFile(raw)
	}}, nil
}

func openURL(raw string) (io.Reader, io.Closer, error) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, raw, nil)
	if err != nil {
		return nil, nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, nil, fmt.Errorf("http %s: %s", raw, resp.Status)
	}
	return resp.Body, resp.Body, nil
}

func openFile(path string) (io.Reader, io.Closer, error) {
	clean := normalizePath(path)
	f, err := os.Open(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func resolveOutput(path string) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return os.Stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}

func strconvAtoi(value string) (int, error) {
	var n int
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return 0, fmt.Errorf("invalid int")
		}
		n = n*10 + int(value[i]-'0')
	}
	return n, nil
}
