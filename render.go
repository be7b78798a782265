package mdtint

import (
	"fmt"
	"io"
)

// RenderRequest configures Render.
type RenderRequest struct {
	Reader  io.Reader
	Writer  io.Writer
	Width   int
	Config  Config
	Options []RenderOption
}

// Render annotates Markdown from Reader and writes the result to
// Writer. Pipe tables are reformatted with box-drawing borders, kept
// raw when a positive Width says they would not fit; a positive Width
// also folds overlong list lines. Both passes can be switched off per
// option. Input must be valid UTF-8 text.
func Render(req RenderRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("render: reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("render: writer is nil")
	}
	cfg := defaultRenderConfig()
	for _, opt := range req.Options {
		if opt != nil {
			opt(&cfg)
		}
	}
	src, err := io.ReadAll(req.Reader)
	if err != nil {
		return fmt.Errorf("render: read: %w", err)
	}
	if err := ValidateInput(src); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	res, err := Annotate(Request{Source: string(src), Config: req.Config})
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if cfg.warn != nil {
		for _, w := range res.Warnings {
			cfg.warn(w)
		}
	}
	text, regions := res.Text, res.Regions
	if cfg.tables {
		text, regions = FormatTables(text, regions, req.Width)
	}
	if cfg.folding && req.Width > 0 {
		text = FoldLines(text, regions, req.Width)
	}
	if _, err := io.WriteString(req.Writer, text); err != nil {
		return fmt.Errorf("render: write: %w", err)
	}
	return nil
}
