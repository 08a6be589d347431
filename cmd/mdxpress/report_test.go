package main

import (
	"errors"
	"testing"

	"github.com/prior-it/mdxpress/content"
	"github.com/stretchr/testify/assert"
)

func TestRenderReport(t *testing.T) {
	t.Run("ok: healthy site", func(t *testing.T) {
		out := renderReport("public", content.Report{Posts: 3})
		assert.Contains(t, out, "Checked public")
		assert.Contains(t, out, "3 blog posts rendered")
		assert.Contains(t, out, "No problems found")
	})

	t.Run("err: lists every problem", func(t *testing.T) {
		out := renderReport("public", content.Report{
			Posts: 1,
			Problems: []content.Problem{
				{Path: "views/home.html", Err: errors.New("missing")},
				{Path: "blogs/broken.md", Err: errors.New("cannot render")},
			},
		})
		assert.Contains(t, out, "2 problems found")
		assert.Contains(t, out, "views/home.html")
		assert.Contains(t, out, "cannot render")
	})
}
