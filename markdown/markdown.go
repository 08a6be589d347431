// Package markdown renders Markdown documents to HTML fragments with goldmark.
//
// Documents are treated as author-trusted content: raw HTML inside a document is passed through
// unescaped and the output is meant to be inserted into a template as is.
package markdown

import (
	"bytes"
	"fmt"
	"io"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

const DefaultHighlightStyle = "github"

type options struct {
	highlightStyle string
	lineNumbers    bool
}

type Option func(*options)

// WithHighlightStyle selects the chroma style used for fenced code blocks.
func WithHighlightStyle(style string) Option {
	return func(o *options) {
		if len(style) > 0 {
			o.highlightStyle = style
		}
	}
}

// WithLineNumbers toggles line numbers in highlighted code blocks.
func WithLineNumbers(enabled bool) Option {
	return func(o *options) {
		o.lineNumbers = enabled
	}
}

// Renderer implements core.MetaRenderer on top of goldmark.
// A Renderer holds no per-document state and can be shared between requests.
type Renderer struct {
	md    goldmark.Markdown
	style string
}

func New(opts ...Option) *Renderer {
	o := options{highlightStyle: DefaultHighlightStyle}
	for _, opt := range opts {
		opt(&o)
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			meta.Meta,
			highlighting.NewHighlighting(
				highlighting.WithStyle(o.highlightStyle),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
					chromahtml.WithLineNumbers(o.lineNumbers),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	return &Renderer{md: md, style: o.highlightStyle}
}

// Render converts source into an HTML fragment. Front matter is stripped from the output.
func (r *Renderer) Render(source []byte) ([]byte, error) {
	out, _, err := r.RenderWithMeta(source)
	return out, err
}

// RenderWithMeta converts source into an HTML fragment and returns its YAML front matter.
// Front matter that is not valid YAML is ignored rather than failing the document.
func (r *Renderer) RenderWithMeta(source []byte) ([]byte, map[string]any, error) {
	var buf bytes.Buffer
	ctx := parser.NewContext()
	if err := r.md.Convert(source, &buf, parser.WithContext(ctx)); err != nil {
		return nil, nil, fmt.Errorf("cannot convert markdown: %w", err)
	}
	data, err := meta.TryGet(ctx)
	if err != nil {
		data = nil
	}
	return buf.Bytes(), data, nil
}

// WriteCSS writes the stylesheet for the renderer's highlight style to w.
// Highlighted code blocks only carry class names, so sites need this stylesheet among their styles.
func (r *Renderer) WriteCSS(w io.Writer) error {
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(w, styles.Get(r.style)); err != nil {
		return fmt.Errorf("cannot write highlight stylesheet for %q: %w", r.style, err)
	}
	return nil
}
