package view_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/prior-it/mdxpress/core"
	"github.com/prior-it/mdxpress/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	t.Run("ok: title and content are substituted", func(t *testing.T) {
		t.Parallel()
		out := view.Render(
			"<h1>{{title}}</h1><div>{{content}}</div>",
			view.Context{"title": "T", "content": "C"},
		)
		assert.Equal(t, "<h1>T</h1><div>C</div>", out)
	})

	t.Run("ok: every occurrence is replaced", func(t *testing.T) {
		t.Parallel()
		out := view.Render("<title>{{title}}</title><h1>{{title}}</h1>", view.Context{"title": "Hi"})
		assert.Equal(t, "<title>Hi</title><h1>Hi</h1>", out)
	})

	t.Run("ok: unknown placeholders are left verbatim", func(t *testing.T) {
		t.Parallel()
		out := view.Render("{{title}} {{missing}} {{ title }}", view.Context{"title": "T"})
		assert.Equal(t, "T {{missing}} {{ title }}", out)
	})

	t.Run("ok: values are not substituted twice", func(t *testing.T) {
		t.Parallel()
		out := view.Render(
			"<h1>{{title}}</h1><div>{{content}}</div>",
			view.Context{"title": "{{content}}", "content": "C"},
		)
		assert.Equal(t, "<h1>{{content}}</h1><div>C</div>", out)
	})

	t.Run("ok: values are not escaped", func(t *testing.T) {
		t.Parallel()
		out := view.Render("{{content}}", view.Context{"content": "<p>a & b</p>"})
		assert.Equal(t, "<p>a & b</p>", out)
	})

	t.Run("ok: rendering is idempotent", func(t *testing.T) {
		t.Parallel()
		ctx := view.Context{"title": "T", "content": "C"}
		template := "{{title}}|{{content}}|{{other}}"
		once := view.Render(template, ctx)
		assert.Equal(t, once, view.Render(once, ctx))
	})

	t.Run("ok: unbalanced and nested braces", func(t *testing.T) {
		t.Parallel()
		ctx := view.Context{"title": "T"}
		assert.Equal(t, "{{T", view.Render("{{{{title}}", ctx))
		assert.Equal(t, "T}", view.Render("{{title}}}", ctx))
		assert.Equal(t, "open {{title", view.Render("open {{title", ctx))
		assert.Equal(t, "", view.Render("", ctx))
	})
}

func TestNewContext(t *testing.T) {
	ctx := view.NewContext("T", "C", map[string]string{"title": "ignored", "description": "D"})
	assert.Equal(t, view.Context{"title": "T", "content": "C", "description": "D"}, ctx)
}

func renderIndex(t *testing.T, entries []core.BlogIndexEntry) string {
	t.Helper()
	out, err := view.RenderString(context.Background(), view.BlogIndex(entries))
	require.NoError(t, err)
	return out
}

func TestBlogIndex(t *testing.T) {
	t.Run("ok: one linked item per entry", func(t *testing.T) {
		t.Parallel()
		out := renderIndex(t, []core.BlogIndexEntry{
			{Slug: "first-post", DisplayName: "first post"},
			{Slug: "second", DisplayName: "second"},
		})
		assert.Equal(
			t,
			`<h1>My Blogs</h1><ul><li><a href="/blog/first-post">first post</a></li>`+"\n"+
				`<li><a href="/blog/second">second</a></li></ul>`,
			out,
		)
	})

	t.Run("ok: empty index", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "<h1>My Blogs</h1><ul></ul>", renderIndex(t, nil))
	})

	t.Run("ok: filenames are escaped", func(t *testing.T) {
		t.Parallel()
		out := renderIndex(t, []core.BlogIndexEntry{{Slug: `a"b`, DisplayName: "<b>"}})
		assert.Contains(t, out, `href="/blog/a&#34;b"`)
		assert.Contains(t, out, "&lt;b&gt;")
	})

	t.Run("ok: slugs with a colon stay relative links", func(t *testing.T) {
		t.Parallel()
		out := renderIndex(t, []core.BlogIndexEntry{{Slug: "javascript:alert", DisplayName: "x"}})
		assert.Contains(t, out, `href="/blog/javascript:alert"`)
	})

	t.Run("ok: renders into any writer", func(t *testing.T) {
		t.Parallel()
		var sb strings.Builder
		require.NoError(t, view.BlogIndex(nil).Render(context.Background(), &sb))
		assert.Equal(t, "<h1>My Blogs</h1><ul></ul>", sb.String())
	})
}

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestRenderString(t *testing.T) {
	t.Run("err: component errors are returned", func(t *testing.T) {
		t.Parallel()
		failing := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			return view.BlogIndex(nil).Render(ctx, errWriter{})
		})
		out, err := view.RenderString(context.Background(), failing)
		require.Error(t, err)
		assert.Empty(t, out)
	})
}
