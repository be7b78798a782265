// Package mdtint annotates Markdown source with ANSI color for
// terminal display.
//
// The input text itself is left intact: mdtint never reflows,
// reorders, or rewrites what the author typed. It only inserts escape
// sequences around the constructs it recognizes, so the output still
// reads as the original Markdown, just tinted. Constructs are matched
// one kind at a time over a single buffer, and each finished span is
// parked behind a placeholder so later, coarser matchers cannot
// restyle it. Headings are the one exception: they reopen the spans
// inside them and layer the heading color underneath.
//
// Core properties:
//   - Source-preserving: escapes in, nothing else touched
//   - Label-driven styling with per-label overrides and visibility
//   - OSC 8 hyperlinks for links when the terminal supports them
//   - Optional post passes for table borders and list folding
//
// Example:
//
//	reader := strings.NewReader("# Hello\n\nMarkdown in, Markdown out.\n")
//	err := mdtint.Render(mdtint.RenderRequest{
//		Reader: reader,
//		Writer: os.Stdout,
//		Width:  80,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Annotate gives direct access to the annotation pass when the caller
// wants the styled text, the protected regions, and any warnings
// without the output plumbing.
package mdtint
