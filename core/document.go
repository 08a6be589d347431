package core

import (
	"bytes"
	"fmt"
	"strings"
)

// Renderer converts markup source into an HTML fragment.
// The output is trusted: it is inserted into templates without escaping.
type Renderer interface {
	Render(source []byte) ([]byte, error)
}

// MetaRenderer is a Renderer that can also report document metadata such as front matter.
type MetaRenderer interface {
	Renderer
	RenderWithMeta(source []byte) ([]byte, map[string]any, error)
}

// Document is a loaded markup file together with the values derived from it.
type Document struct {
	Source []byte
	Title  string
	HTML   string
	Meta   map[string]string
}

// ParseDocument renders source and derives its title.
// The title comes from a leading "# " heading, then from a "title" metadata entry, then from fallback.
func ParseDocument(source []byte, renderer Renderer, fallback string) (*Document, error) {
	var (
		html []byte
		meta map[string]any
		err  error
	)
	if mr, ok := renderer.(MetaRenderer); ok {
		html, meta, err = mr.RenderWithMeta(source)
	} else {
		html, err = renderer.Render(source)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot render document: %w", err)
	}

	doc := &Document{
		Source: source,
		HTML:   string(html),
		Meta:   stringMeta(meta),
	}
	if title, ok := HeadingTitle(source); ok {
		doc.Title = title
	} else if title := doc.Meta["title"]; len(title) > 0 {
		doc.Title = title
	} else {
		doc.Title = fallback
	}
	return doc, nil
}

// ExtractTitle returns the text of the top-level heading that opens the document, or fallback
// if the document does not start with one.
func ExtractTitle(text string, fallback string) string {
	if title, ok := HeadingTitle([]byte(text)); ok {
		return title
	}
	return fallback
}

// HeadingTitle reports the text following "# " on the first line of source.
// Only the very start of the document is considered and the line must not be empty after the marker.
func HeadingTitle(source []byte) (string, bool) {
	rest, ok := bytes.CutPrefix(source, []byte("# "))
	if !ok {
		return "", false
	}
	if end := bytes.IndexAny(rest, "\r\n"); end >= 0 {
		rest = rest[:end]
	}
	if len(rest) == 0 {
		return "", false
	}
	return string(rest), true
}

func stringMeta(meta map[string]any) map[string]string {
	result := make(map[string]string, len(meta))
	for key, value := range meta {
		switch v := value.(type) {
		case string:
			result[strings.ToLower(key)] = v
		case fmt.Stringer:
			result[strings.ToLower(key)] = v.String()
		case int, int64, float64, bool:
			result[strings.ToLower(key)] = fmt.Sprint(v)
		}
	}
	return result
}
