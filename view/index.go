package view

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/prior-it/mdxpress/core"
)

const (
	BlogIndexTitle   = "My Blog"
	blogIndexHeading = "<h1>My Blogs</h1>"
)

// BlogIndex lists blog posts, one linked list item per entry.
func BlogIndex(entries []core.BlogIndexEntry) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString(blogIndexHeading)
		buf.WriteString("<ul>")
		for i, entry := range entries {
			if i > 0 {
				buf.WriteByte('\n')
			}
			href := templ.URL("/blog/" + entry.Slug.String())
			buf.WriteString(`<li><a href="`)
			buf.WriteString(templ.EscapeString(string(href)))
			buf.WriteString(`">`)
			buf.WriteString(templ.EscapeString(entry.DisplayName))
			buf.WriteString("</a></li>")
		}
		buf.WriteString("</ul>")
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// RenderString renders c into a string so it can fill a {{name}} placeholder.
func RenderString(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
