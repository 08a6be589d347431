// Package view fills HTML templates that use literal {{name}} placeholders.
package view

import (
	"strings"
)

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// Context maps placeholder names to their substitution text.
type Context map[string]string

// NewContext builds the context for a page. Extra entries never override title or content.
func NewContext(title string, content string, extra map[string]string) Context {
	ctx := make(Context, len(extra)+2)
	for key, value := range extra {
		ctx[key] = value
	}
	ctx["title"] = title
	ctx["content"] = content
	return ctx
}

// Render replaces every {{name}} token in template whose name is present in ctx.
//
// The template is scanned once from left to right. Substituted values are copied to the output
// without being scanned again and without escaping. Tokens without a matching key are kept verbatim.
func Render(template string, ctx Context) string {
	var sb strings.Builder
	sb.Grow(len(template))

	rest := template
	for {
		start := strings.Index(rest, openDelim)
		if start < 0 {
			sb.WriteString(rest)
			return sb.String()
		}
		sb.WriteString(rest[:start])
		rest = rest[start:]

		end := strings.Index(rest[len(openDelim):], closeDelim)
		if end < 0 {
			sb.WriteString(rest)
			return sb.String()
		}
		key := rest[len(openDelim) : len(openDelim)+end]
		if value, ok := ctx[key]; ok {
			sb.WriteString(value)
			rest = rest[len(openDelim)+end+len(closeDelim):]
			continue
		}
		// Not a known placeholder: keep one brace and rescan, so "{{{{title}}" still finds "{{title}}".
		sb.WriteByte(rest[0])
		rest = rest[1:]
	}
}
